// pkg/render/engo/renderer.go
package engo

import (
	"context"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/logging"
	"github.com/opd-ai/go-starfighter/pkg/physics"
)

// SpritePriority copies body positions after the physics step and before
// engo draws.
const SpritePriority = -50

type spriteEntity struct {
	basic  *ecs.BasicEntity
	sprite *entity.SpriteComponent
	body   *entity.BodyComponent
	render *common.RenderComponent
	space  *common.SpaceComponent
}

// SpriteSystem draws every entity with a SpriteComponent at the position of
// its rigid body. World units are scaled by pixelsPerUnit, and the world
// origin sits at the centre of the screen with +Y pointing up.
type SpriteSystem struct {
	renderSystem  *common.RenderSystem
	bodies        *physics.BodySet
	textures      *TextureCache
	pixelsPerUnit float32
	logger        *logging.Logger
	entities      map[uint64]*spriteEntity
}

// NewSpriteSystem creates a sprite system that feeds renderSystem.
func NewSpriteSystem(renderSystem *common.RenderSystem, bodies *physics.BodySet, textures *TextureCache, pixelsPerUnit float32, logger *logging.Logger) *SpriteSystem {
	return &SpriteSystem{
		renderSystem:  renderSystem,
		bodies:        bodies,
		textures:      textures,
		pixelsPerUnit: pixelsPerUnit,
		logger:        logger,
		entities:      make(map[uint64]*spriteEntity),
	}
}

// Priority satisfies ecs.Prioritizer.
func (r *SpriteSystem) Priority() int {
	return SpritePriority
}

// AddSprite satisfies entity.SpriteAdder.
func (r *SpriteSystem) AddSprite(basic *ecs.BasicEntity, sprite *entity.SpriteComponent, body *entity.BodyComponent) {
	drawable, ok := r.textures.Drawable(sprite.Texture)
	if !ok {
		r.logger.Warn(context.Background(), "sprite texture not loaded", "entity_id", basic.ID())
		return
	}

	scale := sprite.Scale * r.pixelsPerUnit
	e := &spriteEntity{
		basic:  basic,
		sprite: sprite,
		body:   body,
		render: &common.RenderComponent{
			Drawable: drawable,
			Scale:    engo.Point{X: scale, Y: scale},
		},
		space: &common.SpaceComponent{
			Width:  drawable.Width() * scale,
			Height: drawable.Height() * scale,
		},
	}
	e.render.SetZIndex(sprite.Depth)
	r.place(e)

	r.entities[basic.ID()] = e
	r.renderSystem.Add(basic, e.render, e.space)
}

// Remove satisfies the ecs.System interface
func (r *SpriteSystem) Remove(basic ecs.BasicEntity) {
	delete(r.entities, basic.ID())
}

// Update moves every sprite to its body.
func (r *SpriteSystem) Update(dt float32) {
	for _, e := range r.entities {
		r.place(e)
	}
}

func (r *SpriteSystem) place(e *spriteEntity) {
	body, ok := r.bodies.Get(e.body.Handle)
	if !ok {
		e.render.Hidden = true
		return
	}
	e.render.Hidden = false
	center, rotation := toScreen(body.Position, screenOrigin(), r.pixelsPerUnit)
	e.space.Rotation = rotation
	e.space.SetCenter(center)
}

func screenOrigin() engo.Point {
	return engo.Point{X: engo.GameWidth() / 2, Y: engo.GameHeight() / 2}
}

// toScreen converts a world pose to a screen centre in pixels and a
// rotation in degrees. Screen Y grows downwards and engo rotates clockwise.
func toScreen(pose physics.Isometry, origin engo.Point, pixelsPerUnit float32) (engo.Point, float32) {
	center := engo.Point{
		X: origin.X + float32(pose.Translation.X)*pixelsPerUnit,
		Y: origin.Y - float32(pose.Translation.Y)*pixelsPerUnit,
	}
	return center, float32(-pose.Rotation * 180 / math.Pi)
}
