// pkg/engine/game.go
package engine

import (
	"context"
	"fmt"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-starfighter/pkg/assets"
	"github.com/opd-ai/go-starfighter/pkg/audio"
	"github.com/opd-ai/go-starfighter/pkg/config"
	"github.com/opd-ai/go-starfighter/pkg/event"
	"github.com/opd-ai/go-starfighter/pkg/input"
	"github.com/opd-ai/go-starfighter/pkg/logging"
	"github.com/opd-ai/go-starfighter/pkg/physics"
	"github.com/opd-ai/go-starfighter/pkg/player"
	"github.com/opd-ai/go-starfighter/pkg/state"
	"github.com/opd-ai/go-starfighter/pkg/weapon"
)

// Options carries the collaborators a Game is built with. Zero values pick
// a sensible default: a fresh world, muted audio and a discarding logger.
type Options struct {
	World  *ecs.World
	Audio  *audio.Output
	Logger *logging.Logger
}

// Game wires the player systems, the physics step, lasers and the state
// transition driver into one ECS world.
type Game struct {
	Config    *config.GameConfig
	World     *ecs.World
	Resources player.Resources
	Keys      *input.Keyboard

	Input       *player.InputSystem
	Damping     *player.DampingSystem
	Health      *player.HealthSystem
	Spawn       *player.SpawnSystem
	Step        *physics.StepSystem
	Lasers      *weapon.LaserSystem
	Transitions *TransitionSystem

	CurrentTick uint64
	exited      bool
}

// NewGame builds a game from cfg. Textures are resolved up front, so a
// missing ship or laser texture fails here rather than mid-game. The game
// starts in StartMenu once the first tick runs.
func NewGame(cfg *config.GameConfig, lib assets.Library, opts Options) (*Game, error) {
	world := opts.World
	if world == nil {
		world = &ecs.World{}
	}
	out := opts.Audio
	if out == nil {
		out = audio.Disabled()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	res := player.NewResources()
	res.Logger = logger

	g := &Game{
		Config:    cfg,
		World:     world,
		Resources: res,
		Keys:      input.NewKeyboard(),
	}

	g.Spawn = player.NewSpawnSystem(world, res, lib, cfg)
	if err := g.Spawn.Preload(); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	lasers, err := weapon.NewLaserSpawner(world, res.Bodies, lib, cfg, out, res.Bus, logger)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	g.Input = player.NewInputSystem(res, g.Keys, lasers)
	g.Damping = player.NewDampingSystem(res, cfg.Damping)
	g.Health = player.NewHealthSystem(res)
	g.Step = physics.NewStepSystem(newPipeline(cfg.Physics), res.Bodies, res.Physics)
	g.Lasers = weapon.NewLaserSystem(res.Bodies, res.Physics, res.Bus)
	g.Transitions = NewTransitionSystem(res, g.Spawn)

	world.AddSystem(g.Input)
	world.AddSystem(g.Damping)
	world.AddSystem(g.Health)
	world.AddSystem(g.Step)
	world.AddSystem(g.Lasers)
	world.AddSystem(g.Transitions)

	g.registerEventHandlers()
	res.Run.RequestTransition(state.StartMenu)

	logger.Info(context.Background(), "game created",
		"ship_texture", cfg.Assets.ShipTexture,
		"laser_texture", cfg.Assets.LaserTexture,
		"audio", out.Enabled(),
	)
	return g, nil
}

func newPipeline(cfg config.PhysicsConfig) *physics.Pipeline {
	p := physics.DefaultPipeline()
	p.Gravity = physics.Vector2D{X: cfg.GravityX, Y: cfg.GravityY}
	p.TimeToSleep = cfg.TimeToSleep
	if cfg.SleepVelocity > 0 {
		p.SleepLinearThreshold = cfg.SleepVelocity
		p.SleepAngularThreshold = cfg.SleepVelocity
	}
	return p
}

func (g *Game) registerEventHandlers() {
	g.Resources.Bus.Subscribe(event.ExitRequested, func(event.Event) {
		g.exited = true
	})
}

// Tick advances the world by dt seconds. It returns an error once the
// player could not be spawned; the game should stop then.
func (g *Game) Tick(dt float32) error {
	g.World.Update(dt)
	g.CurrentTick++
	return g.Transitions.Err()
}

// Exited reports whether an exit was requested.
func (g *Game) Exited() bool {
	return g.exited
}

// State returns the current game state.
func (g *Game) State() (state.GameState, bool) {
	return g.Resources.Run.Current()
}

// Bus returns the game's event bus.
func (g *Game) Bus() *event.Bus {
	return g.Resources.Bus
}
