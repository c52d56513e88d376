package player

import (
	"context"
	"fmt"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-starfighter/pkg/assets"
	"github.com/opd-ai/go-starfighter/pkg/config"
	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/event"
	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/opd-ai/go-starfighter/pkg/state"
)

// shipStates are the states the ship survives; entering StartMenu removes it.
var shipStates = state.Set{state.Game, state.Pause, state.GameOver}

// SpawnSystem builds the player's ship.
type SpawnSystem struct {
	world   *ecs.World
	res     Resources
	lib     assets.Library
	cfg     config.ShipConfig
	density float64
	path    string
	texture *assets.Texture
}

// NewSpawnSystem creates a spawner that registers ships with the systems of
// world.
func NewSpawnSystem(world *ecs.World, res Resources, lib assets.Library, cfg *config.GameConfig) *SpawnSystem {
	return &SpawnSystem{
		world:   world,
		res:     res,
		lib:     lib,
		cfg:     cfg.Ship,
		density: cfg.Physics.Density,
		path:    cfg.Assets.ShipTexture,
	}
}

// Preload resolves the ship texture. The game cannot run without it, so
// callers treat the error as fatal.
func (s *SpawnSystem) Preload() error {
	if s.texture != nil {
		return nil
	}
	tex, err := s.lib.Texture(s.path)
	if err != nil {
		return fmt.Errorf("spawn player: %w", err)
	}
	s.texture = tex
	return nil
}

// Spawn creates the ship at the world origin, registers it with every
// interested system and records it as the player.
func (s *SpawnSystem) Spawn() (*entity.ShipEntity, error) {
	if err := s.Preload(); err != nil {
		return nil, err
	}

	body := physics.NewDynamicBody(physics.Ball{Radius: s.cfg.ColliderRadius}, s.density)

	ship := &entity.ShipEntity{
		BasicEntity: ecs.NewBasic(),
		Ship: entity.Ship{
			RotationSpeed: s.cfg.RotationSpeed,
			Thrust:        s.cfg.Thrust,
			Life:          s.cfg.Life,
		},
		SpriteComponent: entity.SpriteComponent{
			Texture: s.texture,
			Depth:   s.cfg.Depth,
			Scale:   s.cfg.Scale,
		},
		LifecycleComponent: entity.LifecycleComponent{States: shipStates},
	}
	body.Owner = ship.ID()
	ship.BodyComponent.Handle = s.res.Bodies.Insert(body)

	entity.Register(s.world.Systems(), ship)
	s.res.Run.SetPlayer(ship.ID())

	s.res.Bus.Publish(event.NewEntityEvent(event.ShipSpawned, s, ship.ID()))
	s.res.Logger.Info(context.Background(), "player ship spawned",
		"entity_id", ship.ID(),
		"texture", s.texture.URL,
	)
	return ship, nil
}
