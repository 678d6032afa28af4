package components

// HealthComponent 可被砍伐对象（果树）的耐久
type HealthComponent struct {
	CurrentHealth int
	MaxHealth     int
}
