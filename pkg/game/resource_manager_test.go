package game

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"
)

// pngBytes 生成一张 w x h 的纯色 PNG
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{B: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func newTestResourceManager(t *testing.T, fsys fstest.MapFS) *ResourceManager {
	t.Helper()
	rm, err := NewResourceManager(fsys, nil, 8)
	if err != nil {
		t.Fatalf("NewResourceManager failed: %v", err)
	}
	return rm
}

func TestLoadImageCaches(t *testing.T) {
	rm := newTestResourceManager(t, fstest.MapFS{
		"graphics/soil/o.png": {Data: pngBytes(t, 4, 4)},
	})

	img1, err := rm.LoadImage("graphics/soil/o.png")
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	img2, err := rm.LoadImage("graphics/soil/o.png")
	if err != nil {
		t.Fatalf("LoadImage (cached) failed: %v", err)
	}
	if img1 != img2 {
		t.Error("expected cached image to be reused")
	}
	if rm.CachedImages() != 1 {
		t.Errorf("expected 1 cached image, got %d", rm.CachedImages())
	}
}

func TestLoadImageErrors(t *testing.T) {
	rm := newTestResourceManager(t, fstest.MapFS{
		"broken.png": {Data: []byte("not a png")},
	})

	if _, err := rm.LoadImage("missing.png"); err == nil {
		t.Error("expected error for missing image")
	}
	if _, err := rm.LoadImage("broken.png"); err == nil {
		t.Error("expected error for corrupted image")
	}
}

func TestLoadFramesNumericOrder(t *testing.T) {
	rm := newTestResourceManager(t, fstest.MapFS{
		"graphics/water/10.png":    {Data: pngBytes(t, 10, 1)},
		"graphics/water/2.png":     {Data: pngBytes(t, 2, 1)},
		"graphics/water/0.png":     {Data: pngBytes(t, 1, 1)},
		"graphics/water/notes.txt": {Data: []byte("ignored")},
	})

	frames, err := rm.LoadFrames("graphics/water")
	if err != nil {
		t.Fatalf("LoadFrames failed: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}
	wantWidths := []int{1, 2, 10}
	for i, f := range frames {
		if got := f.Bounds().Dx(); got != wantWidths[i] {
			t.Errorf("frame %d width = %d, want %d", i, got, wantWidths[i])
		}
	}
}

func TestLoadFramesEmptyOrMissing(t *testing.T) {
	rm := newTestResourceManager(t, fstest.MapFS{
		"graphics/empty/readme.txt": {Data: []byte("x")},
	})
	if _, err := rm.LoadFrames("graphics/empty"); err == nil {
		t.Error("expected error for directory without images")
	}
	if _, err := rm.LoadFrames("graphics/none"); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestSortFrameNames(t *testing.T) {
	names := []string{"b.png", "11.png", "1.png", "a.png", "3.png"}
	sortFrameNames(names)
	want := []string{"1.png", "3.png", "11.png", "a.png", "b.png"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("sortFrameNames = %v, want %v", names, want)
		}
	}
}

func TestLoadSoundWithoutAudioContext(t *testing.T) {
	rm := newTestResourceManager(t, fstest.MapFS{})
	if _, err := rm.LoadSound("audio/hoe.wav", false); err == nil {
		t.Error("expected error when audio is disabled")
	}

	am := NewAudioManager(rm, nil, map[string]string{"hoe": "audio/hoe.wav"})
	if am.PlaySound("hoe") {
		t.Error("PlaySound should fail without an audio context")
	}
	if am.PlaySound("unknown") {
		t.Error("PlaySound should fail for unknown ids")
	}
}

func TestNullAssets(t *testing.T) {
	var assets AssetProvider = NullAssets{}
	img, err := assets.LoadImage("anything.png")
	if img != nil || err != nil {
		t.Errorf("NullAssets.LoadImage = %v, %v", img, err)
	}
	frames, err := assets.LoadFrames("dir")
	if frames != nil || err != nil {
		t.Errorf("NullAssets.LoadFrames = %v, %v", frames, err)
	}
}
