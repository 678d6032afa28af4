package components

// InteractionKind 交互区域类型
type InteractionKind int

const (
	InteractionBed InteractionKind = iota
	InteractionTrader
)

// InteractionComponent 玩家按交互键时检测的区域（床、商人）
type InteractionComponent struct {
	Kind InteractionKind
	Name string
}
