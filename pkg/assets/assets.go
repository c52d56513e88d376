// Package assets locates the textures the game draws. It only reads image
// headers; uploading pixels to the GPU is the renderer's job.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when a texture does not exist.
var ErrNotFound = errors.New("asset not found")

// Texture describes an image the renderer can load by URL.
type Texture struct {
	URL    string
	Width  int
	Height int
}

// Library resolves texture paths.
type Library interface {
	Texture(path string) (*Texture, error)
}

// DirLibrary serves textures from a directory on disk and caches the result
// of every successful lookup.
type DirLibrary struct {
	root  string
	mu    sync.Mutex
	cache map[string]*Texture
}

// NewDirLibrary creates a library rooted at root.
func NewDirLibrary(root string) *DirLibrary {
	return &DirLibrary{
		root:  root,
		cache: make(map[string]*Texture),
	}
}

// Root returns the directory textures are read from.
func (l *DirLibrary) Root() string {
	return l.root
}

// Texture reads the image header at root/path.
func (l *DirLibrary) Texture(path string) (*Texture, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if tex, ok := l.cache[path]; ok {
		return tex, nil
	}

	f, err := os.Open(filepath.Join(l.root, filepath.FromSlash(path)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("texture %q: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("texture %q: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("texture %q: decode header: %w", path, err)
	}

	tex := &Texture{URL: path, Width: cfg.Width, Height: cfg.Height}
	l.cache[path] = tex
	return tex, nil
}

// MemoryLibrary is a Library backed by a fixed set of textures.
type MemoryLibrary struct {
	textures map[string]*Texture
}

// NewMemoryLibrary creates a library containing textures, keyed by URL.
func NewMemoryLibrary(textures ...Texture) *MemoryLibrary {
	l := &MemoryLibrary{textures: make(map[string]*Texture, len(textures))}
	for i := range textures {
		tex := textures[i]
		l.textures[tex.URL] = &tex
	}
	return l
}

// Texture implements Library.
func (l *MemoryLibrary) Texture(path string) (*Texture, error) {
	if tex, ok := l.textures[path]; ok {
		return tex, nil
	}
	return nil, fmt.Errorf("texture %q: %w", path, ErrNotFound)
}
