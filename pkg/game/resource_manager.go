package game

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gonewx/spaza-valley/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize 图片缓存容量（单张图片为单位）
const DefaultCacheSize = 512

// AssetProvider 图片资源提供者
// 关卡和实体工厂只依赖这个接口，测试中使用 NullAssets
type AssetProvider interface {
	// LoadImage 加载单张图片
	LoadImage(path string) (*ebiten.Image, error)
	// LoadFrames 加载目录下的全部帧（按文件名中的数字排序）
	LoadFrames(dir string) ([]*ebiten.Image, error)
}

// NullAssets 不加载任何图片的 AssetProvider
// 所有实体都没有图片，但尺寸、碰撞和排序照常工作
type NullAssets struct{}

// LoadImage 实现 AssetProvider
func (NullAssets) LoadImage(string) (*ebiten.Image, error) { return nil, nil }

// LoadFrames 实现 AssetProvider
func (NullAssets) LoadFrames(string) ([]*ebiten.Image, error) { return nil, nil }

// ResourceManager 统一加载和缓存游戏资源
//
// 资源从 fs.FS 读取（通常是 os.DirFS(资源根目录)），
// 图片和帧序列放在 LRU 缓存里，音频播放器按路径缓存。
// 只在游戏主循环中使用，不是线程安全的。
type ResourceManager struct {
	fsys         fs.FS
	audioContext *audio.Context // 可为 nil（无音频模式）

	images *lru.Cache[string, *ebiten.Image]
	frames *lru.Cache[string, []*ebiten.Image]
	sounds map[string]*audio.Player

	logger *log.Logger
}

// NewResourceManager 创建资源管理器
//
// 参数:
//   - fsys: 资源文件系统
//   - audioContext: 音频上下文，可为 nil
//   - cacheSize: 图片缓存容量，<= 0 时使用 DefaultCacheSize
func NewResourceManager(fsys fs.FS, audioContext *audio.Context, cacheSize int) (*ResourceManager, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	images, err := lru.New[string, *ebiten.Image](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create image cache: %w", err)
	}
	frames, err := lru.New[string, []*ebiten.Image](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create frame cache: %w", err)
	}
	return &ResourceManager{
		fsys:         fsys,
		audioContext: audioContext,
		images:       images,
		frames:       frames,
		sounds:       make(map[string]*audio.Player),
		logger:       utils.NewLogger("resource"),
	}, nil
}

// LoadImage 加载图片并缓存
func (rm *ResourceManager) LoadImage(p string) (*ebiten.Image, error) {
	if img, ok := rm.images.Get(p); ok {
		return img, nil
	}

	file, err := rm.fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", p, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", p, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.images.Add(p, ebitenImg)
	return ebitenImg, nil
}

// LoadFrames 加载目录下的全部图片作为动画帧
// 文件按名称中的数字排序（0.png, 1.png, ..., 10.png），没有数字的按字母序排在后面
func (rm *ResourceManager) LoadFrames(dir string) ([]*ebiten.Image, error) {
	if frames, ok := rm.frames.Get(dir); ok {
		return frames, nil
	}

	entries, err := fs.ReadDir(rm.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isImageFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sortFrameNames(names)

	frames := make([]*ebiten.Image, 0, len(names))
	for _, name := range names {
		img, err := rm.LoadImage(path.Join(dir, name))
		if err != nil {
			return nil, err
		}
		frames = append(frames, img)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames in %s", dir)
	}

	rm.frames.Add(dir, frames)
	rm.logger.Debug("loaded frames", "dir", dir, "count", len(frames))
	return frames, nil
}

// LoadSound 加载音频
// loop 为 true 时包装成无限循环流（背景音乐）
// 支持 .mp3 / .ogg / .wav
func (rm *ResourceManager) LoadSound(p string, loop bool) (*audio.Player, error) {
	if rm.audioContext == nil {
		return nil, fmt.Errorf("audio disabled: cannot load %s", p)
	}
	if player, ok := rm.sounds[p]; ok {
		return player, nil
	}

	file, err := rm.fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file %s: %w", p, err)
	}
	defer file.Close()

	// 读入内存，播放器需要可随机访问的流
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", p, err)
	}
	reader := bytes.NewReader(data)

	var stream interface {
		io.ReadSeeker
		Length() int64
	}
	switch ext := strings.ToLower(path.Ext(p)); ext {
	case ".mp3":
		stream, err = mp3.DecodeWithoutResampling(reader)
	case ".ogg":
		stream, err = vorbis.DecodeWithoutResampling(reader)
	case ".wav":
		stream, err = wav.DecodeWithoutResampling(reader)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .wav)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio %s: %w", p, err)
	}

	var src io.Reader = stream
	if loop {
		src = audio.NewInfiniteLoop(stream, stream.Length())
	}
	player, err := rm.audioContext.NewPlayer(src)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", p, err)
	}

	rm.sounds[p] = player
	return player, nil
}

// CachedImages 当前缓存的图片数量
func (rm *ResourceManager) CachedImages() int {
	return rm.images.Len()
}

func isImageFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}

// sortFrameNames 按文件名的数字部分排序
func sortFrameNames(names []string) {
	key := func(name string) (int, bool) {
		base := strings.TrimSuffix(name, path.Ext(name))
		n, err := strconv.Atoi(base)
		return n, err == nil
	}
	sort.SliceStable(names, func(i, j int) bool {
		ni, okI := key(names[i])
		nj, okJ := key(names[j])
		switch {
		case okI && okJ:
			return ni < nj
		case okI != okJ:
			return okI
		default:
			return names[i] < names[j]
		}
	})
}
