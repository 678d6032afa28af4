package components

// Capability 实体能力标签
// 各系统按标签查询实体，而不是按实体类型判断
type Capability uint8

const (
	CapRenderable Capability = 1 << iota
	CapCollidable
	CapHarvestTree
	CapInteractable
	CapPlant
)

// CapabilityComponent 实体的能力标签集合
type CapabilityComponent struct {
	Tags Capability
}

// NewCapabilities 创建能力标签集合
func NewCapabilities(caps ...Capability) *CapabilityComponent {
	c := &CapabilityComponent{}
	for _, tag := range caps {
		c.Tags |= tag
	}
	return c
}

// Has 是否拥有全部指定能力
func (c *CapabilityComponent) Has(tag Capability) bool {
	return c.Tags&tag == tag
}

// Add 添加能力
func (c *CapabilityComponent) Add(tag Capability) {
	c.Tags |= tag
}

// Remove 移除能力
func (c *CapabilityComponent) Remove(tag Capability) {
	c.Tags &^= tag
}
