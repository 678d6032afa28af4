package app

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/gonewx/spaza-valley/pkg/config"
	"github.com/gonewx/spaza-valley/pkg/game"
	"github.com/gonewx/spaza-valley/pkg/scenes"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	cfg := config.DefaultGameConfig()
	cfg.Maps[0].Layout = "../../data/maps/map.yaml"
	cfg.Maps[1].Layout = "../../data/maps/map2.yaml"
	return Options{
		Config:   cfg,
		Assets:   fstest.MapFS{},
		Settings: game.NewSettingsManager(nil),
		Input:    utils.NewStaticInput(),
	}
}

func TestNewStartsFirstMap(t *testing.T) {
	g, err := New(testOptions())
	require.NoError(t, err)

	level, ok := g.Scenes().GetCurrentScene().(*scenes.LevelScene)
	require.True(t, ok)
	assert.Equal(t, "map", level.MapID())
	assert.NotZero(t, level.Player())

	w, h := g.Layout(1920, 1080)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)

	assert.NoError(t, g.Update())
}

func TestNewStartMapOverride(t *testing.T) {
	opts := testOptions()
	opts.StartMap = "map2"
	g, err := New(opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"map2"}, g.Scenes().CachedLevels())

	opts.StartMap = "desert"
	_, err = New(opts)
	assert.True(t, errors.Is(err, config.ErrUnknownMap), "got %v", err)
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestHotkeysChangeSettings(t *testing.T) {
	opts := testOptions()
	in := utils.NewStaticInput()
	opts.Input = in
	g, err := New(opts)
	require.NoError(t, err)
	s := g.Settings().GetSettings()

	press := func(a utils.Action) {
		in.Press(a)
		require.NoError(t, g.Update())
		in.ReleaseAll()
	}

	press(utils.ActionToggleHUD)
	assert.False(t, s.ShowHUD)

	press(utils.ActionToggleSound)
	assert.False(t, s.SoundEnabled)

	press(utils.ActionToggleMusic)
	assert.False(t, s.MusicEnabled)

	press(utils.ActionVolumeDown)
	assert.InDelta(t, 0.6, s.MusicVolume, 1e-9)
	assert.InDelta(t, 0.7, s.SoundVolume, 1e-9)

	for i := 0; i < 10; i++ {
		press(utils.ActionVolumeUp)
	}
	assert.Equal(t, 1.0, s.MusicVolume)
	assert.Equal(t, 1.0, s.SoundVolume)

	// 无按键时不改变设置
	require.NoError(t, g.Update())
	assert.False(t, s.ShowHUD)
}
