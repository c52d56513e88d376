package player

import (
	"testing"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-starfighter/pkg/assets"
	"github.com/opd-ai/go-starfighter/pkg/config"
	"github.com/opd-ai/go-starfighter/pkg/entity"
	"github.com/opd-ai/go-starfighter/pkg/event"
	"github.com/opd-ai/go-starfighter/pkg/input"
	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/opd-ai/go-starfighter/pkg/state"
)

const epsilon = 1e-6

// recordingSpawner counts laser spawns and keeps the body snapshots
type recordingSpawner struct {
	shots []physics.RigidBody
}

func (r *recordingSpawner) SpawnLaser(ship physics.RigidBody) {
	r.shots = append(r.shots, ship)
}

type harness struct {
	cfg     *config.GameConfig
	res     Resources
	world   *ecs.World
	keys    *input.Keyboard
	lasers  *recordingSpawner
	input   *InputSystem
	damping *DampingSystem
	health  *HealthSystem
	spawn   *SpawnSystem
	exits   int
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		cfg:    config.DefaultConfig(),
		res:    NewResources(),
		world:  &ecs.World{},
		keys:   input.NewKeyboard(),
		lasers: &recordingSpawner{},
	}
	h.input = NewInputSystem(h.res, h.keys, h.lasers)
	h.damping = NewDampingSystem(h.res, h.cfg.Damping)
	h.health = NewHealthSystem(h.res)
	h.world.AddSystem(h.input)
	h.world.AddSystem(h.damping)
	h.world.AddSystem(h.health)

	lib := assets.NewMemoryLibrary(assets.Texture{URL: h.cfg.Assets.ShipTexture, Width: 112, Height: 75})
	h.spawn = NewSpawnSystem(h.world, h.res, lib, h.cfg)

	h.res.Bus.Subscribe(event.ExitRequested, func(event.Event) { h.exits++ })
	return h
}

// enter makes s the current state as the transition driver would
func (h *harness) enter(s state.GameState) {
	h.res.Run.RequestTransition(s)
	h.res.Run.Commit()
}

func (h *harness) spawnShip(t *testing.T) (*entity.ShipEntity, *physics.RigidBody) {
	t.Helper()
	ship, err := h.spawn.Spawn()
	if err != nil {
		t.Fatalf("Spawn() error: %v", err)
	}
	body, ok := h.res.Bodies.Get(ship.BodyComponent.Handle)
	if !ok {
		t.Fatal("spawned ship has no body")
	}
	return ship, body
}

// tick samples the held keys and runs the input system once
func (h *harness) tick(held ...input.Action) {
	h.keys.Sample(held...)
	h.input.Update(1.0 / 60)
}

func (h *harness) next(t *testing.T) (state.GameState, bool) {
	t.Helper()
	return h.res.Run.Next()
}
