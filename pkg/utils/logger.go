package utils

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupLogger 配置全局日志器
// 启动时调用一次，之后 NewLogger 创建的子日志器继承这里的级别和输出
func SetupLogger(verbose bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "spaza",
		Level:           level,
	}))
}

// NewLogger 创建带子系统前缀的日志器，如 NewLogger("soil")
func NewLogger(prefix string) *log.Logger {
	return log.Default().WithPrefix(prefix)
}
