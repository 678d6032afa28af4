package scenes

import (
	"fmt"
	"image/color"
	"path"

	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/game"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 叠加层布局
const (
	overlayMargin      = 15
	staminaBarWidth    = 200
	staminaBarHeight   = 14
	overlayIconSpacing = 30
)

var (
	staminaBackColor = color.RGBA{R: 40, G: 40, B: 40, A: 200}
	staminaFillColor = color.RGBA{R: 70, G: 190, B: 90, A: 255}
	staminaCoolColor = color.RGBA{R: 190, G: 70, B: 70, A: 255}
)

// overlay 屏幕左下角的工具/种子图标、金钱和体力条
type overlay struct {
	tools map[string]*ebiten.Image
	seeds map[string]*ebiten.Image
}

func newOverlay(assets game.AssetProvider, cfg *config.GameConfig) *overlay {
	o := &overlay{
		tools: make(map[string]*ebiten.Image),
		seeds: make(map[string]*ebiten.Image),
	}
	if cfg.Assets.Overlay == "" {
		return o
	}
	load := func(dst map[string]*ebiten.Image, names []string) {
		for _, name := range names {
			if img, err := assets.LoadImage(path.Join(cfg.Assets.Overlay, name+".png")); err == nil && img != nil {
				dst[name] = img
			}
		}
	}
	load(o.tools, cfg.Player.Tools)
	load(o.seeds, cfg.Player.Seeds)
	return o
}

// Draw 绘制叠加层；p 为 nil（玩家不在本关卡）时不绘制
func (o *overlay) Draw(screen *ebiten.Image, p *components.PlayerComponent, raining bool) {
	if p == nil || screen == nil {
		return
	}
	h := screen.Bounds().Dy()

	tool, seed := p.SelectedTool(), p.SelectedSeed()
	o.drawIcon(screen, o.tools[tool], overlayMargin, h-overlayMargin)
	o.drawIcon(screen, o.seeds[seed], overlayMargin+overlayIconSpacing*2, h-overlayMargin)

	seeds := 0
	money := 0
	if p.Inventory != nil {
		seeds = p.Inventory.Seeds[seed]
		money = p.Inventory.Money
	}
	weather := "sunny"
	if raining {
		weather = "raining"
	}
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("tool: %s  seed: %s x%d  $%d  %s", tool, seed, seeds, money, weather),
		overlayMargin, overlayMargin)

	o.drawStamina(screen, p)
}

// drawIcon 图标底边中点对齐 (x, bottom)
func (o *overlay) drawIcon(screen, img *ebiten.Image, x, bottom int) {
	if img == nil {
		return
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x+overlayIconSpacing/2-w/2), float64(bottom-h))
	screen.DrawImage(img, op)
}

// drawStamina 体力条，冷却期间变红
func (o *overlay) drawStamina(screen *ebiten.Image, p *components.PlayerComponent) {
	if p.StaminaMax <= 0 {
		return
	}
	x := float32(overlayMargin)
	y := float32(overlayMargin + 20)
	vector.DrawFilledRect(screen, x, y, staminaBarWidth, staminaBarHeight, staminaBackColor, false)

	ratio := utils.ClampF(p.Stamina/p.StaminaMax, 0, 1)
	fill := staminaFillColor
	if p.StaminaCooldown != nil && p.StaminaCooldown.Active {
		fill = staminaCoolColor
	}
	vector.DrawFilledRect(screen, x+2, y+2, float32(ratio*(staminaBarWidth-4)), staminaBarHeight-4, fill, false)
}
