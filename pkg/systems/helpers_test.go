package systems

import (
	"github.com/gonewx/spaza-valley/pkg/components"
	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/ecs"
	"github.com/gonewx/spaza-valley/pkg/entities"
	"github.com/gonewx/spaza-valley/pkg/utils"
)

// recordingSound 记录播放过的音效
type recordingSound struct {
	played []string
}

func (r *recordingSound) PlaySound(id string) bool {
	r.played = append(r.played, id)
	return true
}

func (r *recordingSound) count(id string) int {
	n := 0
	for _, p := range r.played {
		if p == id {
			n++
		}
	}
	return n
}

// playerFixture 一个只有土壤、果树和玩家的小世界
type playerFixture struct {
	em     *ecs.EntityManager
	soil   *SoilSystem
	trees  *TreeSystem
	input  *utils.StaticInput
	sound  *recordingSound
	ps     *PlayerSystem
	player ecs.EntityID
	cfg    config.PlayerConfig
}

// newPlayerFixture 玩家朝下站立，工具作用点落在格子 (5,5) 的中心
func newPlayerFixture(farmable ...utils.TileCoord) *playerFixture {
	em := ecs.NewEntityManager()
	grid := components.NewSoilGridComponent(20, 20, testTS)
	for _, c := range farmable {
		grid.MarkFarmable(c)
	}
	f := &playerFixture{
		em:    em,
		input: utils.NewStaticInput(),
		sound: &recordingSound{},
		cfg:   config.DefaultGameConfig().Player,
	}
	f.soil = NewSoilSystem(em, grid, SoilAssets{}, testSpecies(), nil)
	f.trees = NewTreeSystem(em, 1, "apple", "wood", nil, f.sound)
	f.ps = NewPlayerSystem(em, f.input, f.cfg, f.soil, f.trees, f.sound)

	down := f.cfg.ToolOffsets["down"]
	f.player = entities.NewPlayerEntity(em, f.cfg, nil, 5*testTS+testTS/2-down.X, 5*testTS+testTS/2-down.Y)
	f.ps.Bind(f.player)
	return f
}

func (f *playerFixture) component() *components.PlayerComponent {
	p, _ := ecs.GetComponent[*components.PlayerComponent](f.em, f.player)
	return p
}

// step 推进 n 帧，每帧结束时清除“刚按下”标记
func (f *playerFixture) step(n int, dt float64) {
	for i := 0; i < n; i++ {
		f.ps.Update(dt)
		f.input.EndFrame()
	}
}

// useAndWait 按一下动作，松开后等待计时器到期
func (f *playerFixture) useAndWait(a utils.Action) {
	f.input.Press(a)
	f.step(1, 0.01)
	f.input.ReleaseAll()
	f.step(40, 0.01)
}
