// pkg/render/engo/assets.go
package engo

import (
	"fmt"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starfighter/pkg/assets"
)

// TextureCache uploads textures through engo and hands out their drawables
type TextureCache struct {
	sprites map[string]common.Drawable
}

// NewTextureCache creates an empty cache.
func NewTextureCache() *TextureCache {
	return &TextureCache{sprites: make(map[string]common.Drawable)}
}

// Load reads every texture from the engo assets root. It must run in the
// scene's Preload, before the window draws.
func (tc *TextureCache) Load(textures ...*assets.Texture) error {
	for _, tex := range textures {
		if _, ok := tc.sprites[tex.URL]; ok {
			continue
		}
		if err := engo.Files.Load(tex.URL); err != nil {
			return fmt.Errorf("load texture %s: %w", tex.URL, err)
		}
		sprite, err := common.LoadedSprite(tex.URL)
		if err != nil {
			return fmt.Errorf("load texture %s: %w", tex.URL, err)
		}
		tc.sprites[tex.URL] = sprite
	}
	return nil
}

// Drawable returns the loaded drawable for tex.
func (tc *TextureCache) Drawable(tex *assets.Texture) (common.Drawable, bool) {
	if tex == nil {
		return nil, false
	}
	d, ok := tc.sprites[tex.URL]
	return d, ok
}

// Len returns the number of loaded textures.
func (tc *TextureCache) Len() int {
	return len(tc.sprites)
}
