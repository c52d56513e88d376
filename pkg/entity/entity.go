// pkg/entity/entity.go
package entity

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-starfighter/pkg/assets"
	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/opd-ai/go-starfighter/pkg/state"
)

// BodyComponent attaches an entity to a rigid body in the physics BodySet.
// The handle may go stale once the body is removed.
type BodyComponent struct {
	Handle physics.Handle
}

// SpriteComponent describes how an entity is drawn. Position is taken from
// the entity's body at render time.
type SpriteComponent struct {
	Texture *assets.Texture
	Depth   float32
	Scale   float32
}

// LifecycleComponent lists the game states an entity survives. Entering any
// other state despawns it.
type LifecycleComponent struct {
	States state.Set
}

// RetainedIn reports whether the entity survives in s.
func (l *LifecycleComponent) RetainedIn(s state.GameState) bool {
	return l.States.Contains(s)
}

// LifecycleAdder is implemented by systems that despawn entities on state
// changes.
type LifecycleAdder interface {
	AddLifecycle(basic *ecs.BasicEntity, life *LifecycleComponent, body *BodyComponent)
}

// SpriteAdder is implemented by systems that draw entities.
type SpriteAdder interface {
	AddSprite(basic *ecs.BasicEntity, sprite *SpriteComponent, body *BodyComponent)
}

// ShipAdder is implemented by systems that act on the player's ship.
type ShipAdder interface {
	AddShip(basic *ecs.BasicEntity, ship *Ship, body *BodyComponent)
}

// LaserAdder is implemented by systems that track laser projectiles.
type LaserAdder interface {
	AddLaser(basic *ecs.BasicEntity, laser *Laser, body *BodyComponent)
}

// Register hands the components of e to every system in systems that wants
// them. e must be a *ShipEntity or a *LaserEntity; anything else is ignored.
func Register(systems []ecs.System, e ecs.Identifier) {
	switch ent := e.(type) {
	case *ShipEntity:
		for _, system := range systems {
			if sys, ok := system.(ShipAdder); ok {
				sys.AddShip(&ent.BasicEntity, &ent.Ship, &ent.BodyComponent)
			}
			registerCommon(system, &ent.BasicEntity, &ent.SpriteComponent, &ent.LifecycleComponent, &ent.BodyComponent)
		}
	case *LaserEntity:
		for _, system := range systems {
			if sys, ok := system.(LaserAdder); ok {
				sys.AddLaser(&ent.BasicEntity, &ent.Laser, &ent.BodyComponent)
			}
			registerCommon(system, &ent.BasicEntity, &ent.SpriteComponent, &ent.LifecycleComponent, &ent.BodyComponent)
		}
	}
}

// Despawn removes basic from every system in w and releases its body.
func Despawn(w *ecs.World, bodies *physics.BodySet, basic ecs.BasicEntity, body *BodyComponent) {
	w.RemoveEntity(basic)
	if body != nil {
		bodies.Remove(body.Handle)
	}
}

func registerCommon(system ecs.System, basic *ecs.BasicEntity, sprite *SpriteComponent, life *LifecycleComponent, body *BodyComponent) {
	if sys, ok := system.(SpriteAdder); ok {
		sys.AddSprite(basic, sprite, body)
	}
	if sys, ok := system.(LifecycleAdder); ok {
		sys.AddLifecycle(basic, life, body)
	}
}
