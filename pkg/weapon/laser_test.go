package weapon

import (
	"errors"
	"math"
	"testing"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-starfighter/pkg/assets"
	"github.com/opd-ai/go-starfighter/pkg/audio"
	"github.com/opd-ai/go-starfighter/pkg/config"
	"github.com/opd-ai/go-starfighter/pkg/event"
	"github.com/opd-ai/go-starfighter/pkg/logging"
	"github.com/opd-ai/go-starfighter/pkg/physics"
)

type fixture struct {
	world   *ecs.World
	bodies  *physics.BodySet
	active  *physics.ActiveFlag
	bus     *event.Bus
	system  *LaserSystem
	spawner *LaserSpawner
	cfg     *config.GameConfig
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.DefaultConfig()
	f := &fixture{
		world:  &ecs.World{},
		bodies: physics.NewBodySet(),
		active: physics.NewActiveFlag(true),
		bus:    event.NewEventBus(),
		cfg:    cfg,
	}
	f.system = NewLaserSystem(f.bodies, f.active, f.bus)
	f.world.AddSystem(f.system)

	lib := assets.NewMemoryLibrary(assets.Texture{URL: cfg.Assets.LaserTexture, Width: 9, Height: 37})
	spawner, err := NewLaserSpawner(f.world, f.bodies, lib, cfg, audio.Disabled(), f.bus, logging.Discard())
	if err != nil {
		t.Fatalf("NewLaserSpawner() error: %v", err)
	}
	f.spawner = spawner
	return f
}

func TestNewLaserSpawner_MissingTexture(t *testing.T) {
	_, err := NewLaserSpawner(&ecs.World{}, physics.NewBodySet(), assets.NewMemoryLibrary(),
		config.DefaultConfig(), audio.Disabled(), event.NewEventBus(), logging.Discard())
	if !errors.Is(err, assets.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLaserSpawner_SpawnLaser_FollowsShipHeading(t *testing.T) {
	f := newFixture(t)
	fired := 0
	f.bus.Subscribe(event.LaserFired, func(event.Event) { fired++ })

	ship := physics.NewDynamicBody(physics.Ball{Radius: 1}, 1)
	ship.Position.Translation = physics.Vector2D{X: 2, Y: 3}
	ship.Position.Rotation = math.Pi / 2
	ship.LinVel = physics.Vector2D{Y: 1}

	f.spawner.SpawnLaser(*ship)

	if f.bodies.Len() != 1 {
		t.Fatalf("expected one laser body, got %d", f.bodies.Len())
	}
	if f.system.Len() != 1 {
		t.Fatalf("laser not registered with the laser system")
	}
	if fired != 1 {
		t.Errorf("LaserFired published %d times, want 1", fired)
	}

	var laser *physics.RigidBody
	f.bodies.Each(func(_ physics.Handle, b *physics.RigidBody) { laser = b })

	// Facing -X after a quarter turn.
	wantPos := physics.Vector2D{X: 2 - f.cfg.Laser.Offset, Y: 3}
	if !laser.Position.Translation.ApproxEqual(wantPos, 1e-9) {
		t.Errorf("laser position = %v, want %v", laser.Position.Translation, wantPos)
	}
	wantVel := physics.Vector2D{X: -f.cfg.Laser.Speed, Y: 1}
	if !laser.LinVel.ApproxEqual(wantVel, 1e-9) {
		t.Errorf("laser velocity = %v, want %v", laser.LinVel, wantVel)
	}
	if ship.LinVel != (physics.Vector2D{Y: 1}) {
		t.Error("spawning must not modify the ship body")
	}
}

func TestLaserSystem_Update_ExpiresLasers(t *testing.T) {
	f := newFixture(t)
	despawned := 0
	f.bus.Subscribe(event.EntityDespawned, func(event.Event) { despawned++ })

	f.spawner.SpawnLaser(*physics.NewDynamicBody(physics.Ball{Radius: 1}, 1))

	f.system.Update(float32(f.cfg.Laser.Lifetime / 2))
	if f.system.Len() != 1 {
		t.Fatal("laser expired too early")
	}

	f.system.Update(float32(f.cfg.Laser.Lifetime))
	if f.system.Len() != 0 {
		t.Error("laser should have expired")
	}
	if f.bodies.Len() != 0 {
		t.Error("expired laser body should be released")
	}
	if despawned != 1 {
		t.Errorf("EntityDespawned published %d times, want 1", despawned)
	}
}

func TestLaserSystem_Update_FrozenWhilePhysicsInactive(t *testing.T) {
	f := newFixture(t)
	f.spawner.SpawnLaser(*physics.NewDynamicBody(physics.Ball{Radius: 1}, 1))

	f.active.Set(false)
	f.system.Update(float32(f.cfg.Laser.Lifetime * 10))

	if f.system.Len() != 1 {
		t.Error("laser lifetime should not run while paused")
	}
}
