package config

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator 返回全局校验器
// 注册自定义规则 layer：字段必须是已知的渲染层名称
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("layer", validateLayerName)
		validate = v
	})
	return validate
}

func validateStruct(s interface{}) error {
	return getValidator().Struct(s)
}

func validateLayerName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" {
		return true
	}
	_, ok := ParseLayer(name)
	return ok
}
