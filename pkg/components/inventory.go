package components

// Inventory 玩家背包：物品、种子和金钱
// 跨地图时随玩家实体一起搬运
type Inventory struct {
	Items map[string]int
	Seeds map[string]int
	Money int
}

// NewInventory 复制初始数量创建背包
func NewInventory(items, seeds map[string]int, money int) *Inventory {
	inv := &Inventory{
		Items: make(map[string]int, len(items)),
		Seeds: make(map[string]int, len(seeds)),
		Money: money,
	}
	for k, v := range items {
		inv.Items[k] = v
	}
	for k, v := range seeds {
		inv.Seeds[k] = v
	}
	return inv
}

// AddItem 增加物品
func (inv *Inventory) AddItem(name string, n int) {
	inv.Items[name] += n
}

// ConsumeSeed 消耗一颗种子，没有库存时返回 false
func (inv *Inventory) ConsumeSeed(name string) bool {
	if inv.Seeds[name] <= 0 {
		return false
	}
	inv.Seeds[name]--
	return true
}

// Sell 卖出一个物品
func (inv *Inventory) Sell(item string, price int) bool {
	if inv.Items[item] <= 0 {
		return false
	}
	inv.Items[item]--
	inv.Money += price
	return true
}

// Buy 买入一颗种子
func (inv *Inventory) Buy(seed string, price int) bool {
	if inv.Money < price {
		return false
	}
	inv.Seeds[seed]++
	inv.Money -= price
	return true
}
