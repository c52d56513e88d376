package assets

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.White)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestDirLibrary_Texture_ReadsHeader(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "assets", "ship.png"), 99, 75)

	lib := NewDirLibrary(root)
	tex, err := lib.Texture("assets/ship.png")
	if err != nil {
		t.Fatalf("Texture() error: %v", err)
	}
	if tex.URL != "assets/ship.png" || tex.Width != 99 || tex.Height != 75 {
		t.Errorf("unexpected texture %+v", tex)
	}

	again, err := lib.Texture("assets/ship.png")
	if err != nil || again != tex {
		t.Error("second lookup should hit the cache")
	}
}

func TestDirLibrary_Texture_Missing(t *testing.T) {
	lib := NewDirLibrary(t.TempDir())

	_, err := lib.Texture("assets/playerShip2_red.png")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDirLibrary_Texture_NotAnImage(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "bad.png"), []byte("nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewDirLibrary(root).Texture("bad.png")
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestMemoryLibrary(t *testing.T) {
	lib := NewMemoryLibrary(
		Texture{URL: "a.png", Width: 1, Height: 2},
		Texture{URL: "b.png", Width: 3, Height: 4},
	)

	tex, err := lib.Texture("b.png")
	if err != nil || tex.Width != 3 {
		t.Errorf("Texture(b.png) = %+v, %v", tex, err)
	}
	if _, err := lib.Texture("c.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
