package modules

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/game"
	"github.com/gonewx/spaza-valley/pkg/systems"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ShopSelectDelay 上下选择和确认之间的最短间隔（秒）
const ShopSelectDelay = 0.2

// ShopEntryKind 商店条目类型
type ShopEntryKind int

const (
	ShopSell ShopEntryKind = iota // 卖出物品
	ShopBuy                       // 买入种子
)

// ShopEntry 商店中的一行
type ShopEntry struct {
	Kind  ShopEntryKind
	Name  string
	Price int
}

// 面板布局
const (
	shopPanelWidth = 400
	shopRowHeight  = 36
	shopPadding    = 8
)

var (
	shopRowColor      = color.RGBA{R: 255, G: 255, B: 255, A: 220}
	shopSelectedColor = color.RGBA{R: 196, G: 196, B: 196, A: 240}
)

// ShopModule 商人菜单
//
// 打开期间关卡只更新本模块：上/下选择条目，确认键卖出物品或买入种子，Esc 关闭。
// 选择和确认共用一个 0.2 秒的计时器，按住按键不会每帧触发。
type ShopModule struct {
	entries     []ShopEntry
	index       int
	selectTimer *components.Timer
	input       utils.InputSource
	sound       game.SoundPlayer
	onClose     func()
	logger      *log.Logger
}

// NewShopModule 创建商店
// 条目顺序：全部可卖物品在前，可买种子在后，各自按名称排序
func NewShopModule(cfg config.ShopConfig, input utils.InputSource, sound game.SoundPlayer, onClose func()) *ShopModule {
	if sound == nil {
		sound = game.NullSound{}
	}
	return &ShopModule{
		entries:     buildShopEntries(cfg),
		selectTimer: components.NewTimer(ShopSelectDelay, nil),
		input:       input,
		sound:       sound,
		onClose:     onClose,
		logger:      utils.NewLogger("shop"),
	}
}

func buildShopEntries(cfg config.ShopConfig) []ShopEntry {
	entries := make([]ShopEntry, 0, len(cfg.SalePrices)+len(cfg.PurchasePrices))
	for _, name := range sortedKeys(cfg.SalePrices) {
		entries = append(entries, ShopEntry{Kind: ShopSell, Name: name, Price: cfg.SalePrices[name]})
	}
	for _, name := range sortedKeys(cfg.PurchasePrices) {
		entries = append(entries, ShopEntry{Kind: ShopBuy, Name: name, Price: cfg.PurchasePrices[name]})
	}
	return entries
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetInput 替换输入源
func (m *ShopModule) SetInput(input utils.InputSource) {
	m.input = input
}

// Entries 全部条目
func (m *ShopModule) Entries() []ShopEntry {
	return m.entries
}

// Selected 当前选中条目的下标
func (m *ShopModule) Selected() int {
	return m.index
}

// Open 打开商店时调用：选择回到第一行，并短暂屏蔽确认键
// 交互键和确认键可能是同一个键
func (m *ShopModule) Open() {
	m.index = 0
	m.selectTimer.Activate()
}

// Update 处理一帧菜单输入
func (m *ShopModule) Update(deltaTime float64, inv *components.Inventory) {
	m.selectTimer.Update(deltaTime)
	if m.input == nil {
		return
	}

	if m.input.JustPressed(utils.ActionMenuClose) {
		if m.onClose != nil {
			m.onClose()
		}
		return
	}
	if m.selectTimer.Active || len(m.entries) == 0 {
		return
	}

	switch {
	case m.input.Pressed(utils.ActionUp):
		m.index = (m.index - 1 + len(m.entries)) % len(m.entries)
		m.selectTimer.Activate()
	case m.input.Pressed(utils.ActionDown):
		m.index = (m.index + 1) % len(m.entries)
		m.selectTimer.Activate()
	case m.input.Pressed(utils.ActionMenuConfirm):
		m.selectTimer.Activate()
		m.Trade(inv)
	}
}

// Trade 对当前条目执行一次交易，成功返回 true
func (m *ShopModule) Trade(inv *components.Inventory) bool {
	if inv == nil || len(m.entries) == 0 {
		return false
	}
	entry := m.entries[m.index]

	var ok bool
	switch entry.Kind {
	case ShopSell:
		ok = inv.Sell(entry.Name, entry.Price)
	case ShopBuy:
		ok = inv.Buy(entry.Name, entry.Price)
	}
	if ok {
		m.sound.PlaySound(systems.SoundSuccess)
		m.logger.Debug("trade", "item", entry.Name, "kind", entry.Kind, "money", inv.Money)
	}
	return ok
}

// Draw 在屏幕中央绘制菜单和当前金钱
func (m *ShopModule) Draw(screen *ebiten.Image, inv *components.Inventory) {
	if screen == nil {
		return
	}
	sw, sh := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	total := float64(len(m.entries)) * (shopRowHeight + shopPadding)
	left := (sw - shopPanelWidth) / 2
	top := (sh - total) / 2

	money := 0
	if inv != nil {
		money = inv.Money
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("money: $%d", money), int(left), int(top)-24)

	for i, entry := range m.entries {
		y := top + float64(i)*(shopRowHeight+shopPadding)
		bg := shopRowColor
		if i == m.index {
			bg = shopSelectedColor
		}
		vector.DrawFilledRect(screen, float32(left), float32(y), shopPanelWidth, shopRowHeight, bg, false)

		verb, count := "sell", 0
		if entry.Kind == ShopBuy {
			verb = "buy"
			if inv != nil {
				count = inv.Seeds[entry.Name]
			}
		} else if inv != nil {
			count = inv.Items[entry.Name]
		}
		label := fmt.Sprintf("%-4s %-8s x%-3d $%d", verb, entry.Name, count, entry.Price)
		ebitenutil.DebugPrintAt(screen, label, int(left)+shopPadding, int(y)+shopRowHeight/2-8)
	}
}
