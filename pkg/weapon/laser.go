// Package weapon spawns and expires the ship's laser projectiles.
package weapon

import (
	"context"
	"fmt"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-starfighter/pkg/assets"
	"github.com/opd-ai/go-starfighter/pkg/audio"
	"github.com/opd-ai/go-starfighter/pkg/config"
	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/event"
	"github.com/opd-ai/go-starfighter/pkg/logging"
	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/opd-ai/go-starfighter/pkg/state"
)

// Spawner creates a laser fired from a ship. It receives a copy of the
// ship's body so it cannot disturb the ship itself.
type Spawner interface {
	SpawnLaser(ship physics.RigidBody)
}

// laserDepth draws lasers just above the ship.
const laserDepth = -4

// LaserSpawner creates laser entities in the ECS world.
type LaserSpawner struct {
	world   *ecs.World
	bodies  *physics.BodySet
	texture *assets.Texture
	scale   float32
	audio   *audio.Output
	bus     *event.Bus
	cfg     config.LaserConfig
	logger  *logging.Logger
}

// NewLaserSpawner resolves the laser texture and returns a spawner. A
// missing texture is reported as an error wrapping assets.ErrNotFound.
func NewLaserSpawner(world *ecs.World, bodies *physics.BodySet, lib assets.Library, cfg *config.GameConfig, out *audio.Output, bus *event.Bus, logger *logging.Logger) (*LaserSpawner, error) {
	tex, err := lib.Texture(cfg.Assets.LaserTexture)
	if err != nil {
		return nil, fmt.Errorf("laser spawner: %w", err)
	}
	return &LaserSpawner{
		world:   world,
		bodies:  bodies,
		texture: tex,
		scale:   cfg.Ship.Scale,
		audio:   out,
		bus:     bus,
		cfg:     cfg.Laser,
		logger:  logger,
	}, nil
}

// SpawnLaser places a laser just ahead of the ship, moving along its
// heading on top of the ship's own velocity.
func (s *LaserSpawner) SpawnLaser(ship physics.RigidBody) {
	forward := ship.Forward()

	body := physics.NewDynamicBody(physics.Ball{Radius: s.cfg.Radius}, 1)
	body.Position = physics.Isometry{
		Translation: ship.Position.Translation.Add(forward.Scale(s.cfg.Offset)),
		Rotation:    ship.Position.Rotation,
	}
	body.LinVel = ship.LinVel.Add(forward.Scale(s.cfg.Speed))

	laser := &entity.LaserEntity{
		BasicEntity: ecs.NewBasic(),
		Laser:       entity.Laser{Remaining: s.cfg.Lifetime},
		SpriteComponent: entity.SpriteComponent{
			Texture: s.texture,
			Depth:   laserDepth,
			Scale:   s.scale,
		},
		LifecycleComponent: entity.LifecycleComponent{
			States: state.Set{state.Game, state.Pause},
		},
	}
	body.Owner = laser.ID()
	laser.BodyComponent.Handle = s.bodies.Insert(body)

	entity.Register(s.world.Systems(), laser)

	s.audio.Play(audio.LaserZap(s.audio.SampleRate()))
	s.bus.Publish(event.NewEntityEvent(event.LaserFired, s, laser.ID()))
	s.logger.Debug(context.Background(), "laser fired", "entity_id", laser.ID())
}

// LaserPriority runs laser expiry after the physics step.
const LaserPriority = 40

type laserEntry struct {
	basic *ecs.BasicEntity
	laser *entity.Laser
	body  *entity.BodyComponent
}

// LaserSystem counts down laser lifetimes and despawns expired lasers.
// Lifetimes freeze while physics is inactive.
type LaserSystem struct {
	world  *ecs.World
	bodies *physics.BodySet
	active *physics.ActiveFlag
	bus    *event.Bus
	lasers map[uint64]laserEntry
}

// NewLaserSystem creates the laser expiry system.
func NewLaserSystem(bodies *physics.BodySet, active *physics.ActiveFlag, bus *event.Bus) *LaserSystem {
	return &LaserSystem{
		bodies: bodies,
		active: active,
		bus:    bus,
		lasers: make(map[uint64]laserEntry),
	}
}

// New satisfies ecs.Initializer.
func (s *LaserSystem) New(w *ecs.World) {
	s.world = w
}

// Priority satisfies ecs.Prioritizer.
func (s *LaserSystem) Priority() int {
	return LaserPriority
}

// AddLaser satisfies entity.LaserAdder.
func (s *LaserSystem) AddLaser(basic *ecs.BasicEntity, laser *entity.Laser, body *entity.BodyComponent) {
	s.lasers[basic.ID()] = laserEntry{basic: basic, laser: laser, body: body}
}

// Remove satisfies ecs.System.
func (s *LaserSystem) Remove(basic ecs.BasicEntity) {
	delete(s.lasers, basic.ID())
}

// Len returns the number of live lasers.
func (s *LaserSystem) Len() int {
	return len(s.lasers)
}

// Update expires lasers whose lifetime ran out.
func (s *LaserSystem) Update(dt float32) {
	if !s.active.Enabled() {
		return
	}
	var expired []laserEntry
	for _, e := range s.lasers {
		e.laser.Remaining -= float64(dt)
		if e.laser.Remaining <= 0 {
			expired = append(expired, e)
		}
	}
	for _, e := range expired {
		entity.Despawn(s.world, s.bodies, *e.basic, e.body)
		s.bus.Publish(event.NewEntityEvent(event.EntityDespawned, s, e.basic.ID()))
	}
}
