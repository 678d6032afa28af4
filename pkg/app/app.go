// Package app 把关卡、资源、音频和输入组装成一个 ebiten.Game
package app

import (
	"fmt"
	"io/fs"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/game"
	"github.com/gonewx/spaza-valley/pkg/scenes"
	"github.com/gonewx/spaza-valley/pkg/systems"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/quasilyte/gdata/v2"
)

// SampleRate 音频采样率
const SampleRate = 44100

// Options 启动参数
type Options struct {
	Config *config.GameConfig
	// Assets 资源文件系统，为 nil 时使用 AssetsDir
	Assets    fs.FS
	AssetsDir string
	StartMap  string // 为空时使用 config.StartMap
	Seed      int64
	// Audio 为 false 时不创建音频上下文（测试、无声卡环境）
	Audio bool
	// Settings 为 nil 时从 gdata 打开；打开失败时进入降级模式
	Settings *game.SettingsManager
	// Input 为 nil 时使用键盘
	Input utils.InputSource
}

// Game 实现 ebiten.Game
type Game struct {
	cfg      *config.GameConfig
	scenes   *game.SceneManager
	audio    *game.AudioManager
	settings *game.SettingsManager
	input    utils.InputSource
	logger   *log.Logger
}

// volumeStep 音量热键每次调整的幅度
const volumeStep = 0.1

// New 创建游戏并进入起始地图
func New(opts Options) (*Game, error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("app: config is required")
	}
	cfg := opts.Config
	logger := utils.NewLogger("app")

	fsys := opts.Assets
	if fsys == nil {
		dir := opts.AssetsDir
		if dir == "" {
			dir = "."
		}
		fsys = os.DirFS(dir)
	}

	var audioCtx *audio.Context
	if opts.Audio {
		audioCtx = audio.NewContext(SampleRate)
	}
	rm, err := game.NewResourceManager(fsys, audioCtx, game.DefaultCacheSize)
	if err != nil {
		return nil, err
	}

	settings := opts.Settings
	if settings == nil {
		settings = openSettings(logger)
	}
	am := game.NewAudioManager(rm, settings, cfg.Sounds)

	input := opts.Input
	if input == nil {
		input = utils.NewKeyboardInput(nil)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	sm := game.NewSceneManager()
	sm.SetLevelFactory(func(mapID string) (game.Level, error) {
		return scenes.LoadLevel(mapID, scenes.LevelOptions{
			Config:   cfg,
			Assets:   rm,
			Sound:    am,
			Input:    input,
			Rand:     rng,
			Switcher: sm,
			ShowHUD:  func() bool { return settings.GetSettings().ShowHUD },
		})
	})

	start := opts.StartMap
	if start == "" {
		start = cfg.StartMap
	}
	if err := sm.StartLevel(start); err != nil {
		return nil, err
	}

	if opts.Audio {
		am.Preload([]string{systems.SoundSuccess, systems.SoundHoe, systems.SoundAxe, systems.SoundWater, systems.SoundPlant})
		am.PlayMusic(systems.SoundMusic)
	}
	logger.Info("game started", "map", start, "seed", opts.Seed)

	return &Game{
		cfg:      cfg,
		scenes:   sm,
		audio:    am,
		settings: settings,
		input:    input,
		logger:   logger,
	}, nil
}

func openSettings(logger *log.Logger) *game.SettingsManager {
	m, err := gdata.Open(gdata.Config{AppName: "spaza_valley"})
	if err != nil {
		logger.Warn("settings storage unavailable", "error", err)
		return game.NewSettingsManager(nil)
	}
	return game.NewSettingsManager(m)
}

// Scenes 场景管理器
func (g *Game) Scenes() *game.SceneManager {
	return g.scenes
}

// Settings 设置管理器
func (g *Game) Settings() *game.SettingsManager {
	return g.settings
}

// Update 实现 ebiten.Game，每个 tick 推进 1/TPS 秒
func (g *Game) Update() error {
	g.handleHotkeys()
	g.scenes.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

// handleHotkeys 处理全局设置热键，每帧最多一个
func (g *Game) handleHotkeys() {
	in, s := g.input, g.settings.GetSettings()
	switch {
	case in.JustPressed(utils.ActionToggleHUD):
		g.settings.ToggleHUD()
	case in.JustPressed(utils.ActionToggleMusic):
		g.settings.SetMusicEnabled(!s.MusicEnabled)
		if s.MusicEnabled {
			g.audio.PlayMusic(systems.SoundMusic)
		} else {
			g.audio.StopMusic()
		}
	case in.JustPressed(utils.ActionToggleSound):
		g.settings.SetSoundEnabled(!s.SoundEnabled)
	case in.JustPressed(utils.ActionToggleFullscreen):
		g.settings.SetFullscreen(!s.Fullscreen)
		ebiten.SetFullscreen(s.Fullscreen)
	case in.JustPressed(utils.ActionVolumeDown):
		g.audio.SetMusicVolume(s.MusicVolume - volumeStep)
		g.audio.SetSoundVolume(s.SoundVolume - volumeStep)
	case in.JustPressed(utils.ActionVolumeUp):
		g.audio.SetMusicVolume(s.MusicVolume + volumeStep)
		g.audio.SetSoundVolume(s.SoundVolume + volumeStep)
	default:
		return
	}
	g.logger.Debug("settings changed",
		"hud", s.ShowHUD, "music", s.MusicEnabled, "sound", s.SoundEnabled,
		"musicVolume", s.MusicVolume, "soundVolume", s.SoundVolume)
}

// Draw 实现 ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	g.scenes.Draw(screen)
}

// Layout 实现 ebiten.Game，逻辑分辨率固定为视口大小
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// Run 打开窗口并运行主循环，直到窗口关闭
func Run(g *Game) error {
	ebiten.SetWindowSize(g.cfg.Window.Width, g.cfg.Window.Height)
	ebiten.SetWindowTitle(g.cfg.Window.Title)
	ebiten.SetFullscreen(g.settings.GetSettings().Fullscreen)
	defer func() {
		if err := g.settings.Save(); err != nil {
			g.logger.Warn("failed to save settings", "error", err)
		}
	}()
	return ebiten.RunGame(g)
}
