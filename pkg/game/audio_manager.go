package game

import (
	"github.com/charmbracelet/log"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// SoundPlayer 播放音效（即发即弃）
// 玩家系统、收获和商店只依赖这个接口
type SoundPlayer interface {
	PlaySound(soundID string) bool
}

// NullSound 静音实现
type NullSound struct{}

// PlaySound 实现 SoundPlayer
func (NullSound) PlaySound(string) bool { return false }

// AudioManager 音频管理器
// 通过音效ID（game.yaml 的 sounds 表）播放音效和背景音乐，音量和开关取自 SettingsManager
type AudioManager struct {
	resourceManager *ResourceManager
	settingsManager *SettingsManager  // 可为 nil
	soundPaths      map[string]string // 音效ID -> 文件路径
	soundPlayers    map[string]*audio.Player
	currentMusic    *audio.Player
	currentMusicID  string
	logger          *log.Logger
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - rm: ResourceManager 实例（用于加载音频文件）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//   - soundPaths: 音效ID到文件路径的映射
func NewAudioManager(rm *ResourceManager, sm *SettingsManager, soundPaths map[string]string) *AudioManager {
	return &AudioManager{
		resourceManager: rm,
		settingsManager: sm,
		soundPaths:      soundPaths,
		soundPlayers:    make(map[string]*audio.Player),
		logger:          utils.NewLogger("audio"),
	}
}

// PlaySound 播放音效
// 返回是否成功播放（禁用、找不到或加载失败时返回 false）
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getPlayer(soundID, false)
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		am.logger.Warn("failed to rewind sound", "id", soundID, "error", err)
	}
	player.Play()
	return true
}

// PlayMusic 循环播放背景音乐，同一时间只有一首
func (am *AudioManager) PlayMusic(musicID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().MusicEnabled {
		return false
	}

	if am.currentMusicID == musicID && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return true
	}
	am.StopMusic()

	player := am.getPlayer(musicID, true)
	if player == nil {
		return false
	}

	volume := am.getMusicVolume()
	player.SetVolume(volume)
	if err := player.Rewind(); err != nil {
		am.logger.Warn("failed to rewind music", "id", musicID, "error", err)
	}
	player.Play()

	am.currentMusic = player
	am.currentMusicID = musicID
	am.logger.Info("playing music", "id", musicID, "volume", volume)
	return true
}

// StopMusic 停止当前背景音乐
func (am *AudioManager) StopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		am.currentMusic = nil
		am.currentMusicID = ""
	}
}

// SetSoundVolume 设置音效音量并应用到已缓存的播放器
func (am *AudioManager) SetSoundVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetSoundVolume(volume)
	}
	for id, player := range am.soundPlayers {
		if id != am.currentMusicID {
			player.SetVolume(am.getSoundVolume())
		}
	}
}

// SetMusicVolume 设置音乐音量并立即应用
func (am *AudioManager) SetMusicVolume(volume float64) {
	if am.settingsManager != nil {
		am.settingsManager.SetMusicVolume(volume)
	}
	if am.currentMusic != nil {
		am.currentMusic.SetVolume(am.getMusicVolume())
	}
}

// Preload 预加载音效，避免首次播放卡顿
func (am *AudioManager) Preload(soundIDs []string) {
	for _, id := range soundIDs {
		am.getPlayer(id, false)
	}
	am.logger.Debug("preloaded sounds", "count", len(soundIDs))
}

func (am *AudioManager) getPlayer(id string, loop bool) *audio.Player {
	if player, ok := am.soundPlayers[id]; ok {
		return player
	}
	if am.resourceManager == nil {
		return nil
	}
	p, ok := am.soundPaths[id]
	if !ok {
		am.logger.Warn("sound not found", "id", id)
		return nil
	}
	player, err := am.resourceManager.LoadSound(p, loop)
	if err != nil {
		am.logger.Warn("failed to load sound", "id", id, "error", err)
		return nil
	}
	am.soundPlayers[id] = player
	return player
}

func (am *AudioManager) getMusicVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().MusicVolume
	}
	return 0.7
}

func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8
}
