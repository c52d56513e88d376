// pkg/render/engo/scene.go
package engo

import (
	"context"
	"fmt"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-starfighter/pkg/assets"
	"github.com/opd-ai/go-starfighter/pkg/audio"
	"github.com/opd-ai/go-starfighter/pkg/config"
	"github.com/opd-ai/go-starfighter/pkg/engine"
	"github.com/opd-ai/go-starfighter/pkg/event"
	"github.com/opd-ai/go-starfighter/pkg/logging"
)

// GameScene runs a starfighter game inside an engo window
type GameScene struct {
	cfg      *config.GameConfig
	lib      assets.Library
	audio    *audio.Output
	logger   *logging.Logger
	bindings Bindings
	textures []*assets.Texture
	cache    *TextureCache

	game *engine.Game
}

// NewGameScene resolves the textures and key bindings the scene needs.
// Errors here mean the game cannot start.
func NewGameScene(cfg *config.GameConfig, lib assets.Library, out *audio.Output, logger *logging.Logger) (*GameScene, error) {
	bindings, err := ParseBindings(cfg.Keys)
	if err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}

	var textures []*assets.Texture
	for _, path := range []string{cfg.Assets.ShipTexture, cfg.Assets.LaserTexture} {
		tex, err := lib.Texture(path)
		if err != nil {
			return nil, fmt.Errorf("game scene: %w", err)
		}
		textures = append(textures, tex)
	}

	return &GameScene{
		cfg:      cfg,
		lib:      lib,
		audio:    out,
		logger:   logger,
		bindings: bindings,
		textures: textures,
		cache:    NewTextureCache(),
	}, nil
}

// Type returns the scene type (required by Engo)
func (scene *GameScene) Type() string {
	return "StarfighterScene"
}

// Preload uploads the textures (required by Engo)
func (scene *GameScene) Preload() {
	if err := scene.cache.Load(scene.textures...); err != nil {
		panic("Failed to load textures: " + err.Error())
	}
}

// Setup is called when the scene starts (required by Engo)
func (scene *GameScene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		panic("starfighter scene requires an *ecs.World updater")
	}

	common.SetBackground(color.Black)
	scene.bindings.Register()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	game, err := engine.NewGame(scene.cfg, scene.lib, engine.Options{
		World:  world,
		Audio:  scene.audio,
		Logger: scene.logger,
	})
	if err != nil {
		panic("Failed to create game: " + err.Error())
	}
	scene.game = game

	world.AddSystem(NewKeySystem(game.Keys))
	world.AddSystem(NewSpriteSystem(renderSystem, game.Resources.Bodies, scene.cache, scene.cfg.Window.PixelsPerUnit, scene.logger))
	world.AddSystem(&watchdog{game: game, logger: scene.logger})

	scene.subscribeToEvents()
}

// subscribeToEvents sets up event handlers
func (scene *GameScene) subscribeToEvents() {
	scene.game.Bus().Subscribe(event.ExitRequested, func(event.Event) {
		engo.Exit()
	})
	scene.game.Bus().Subscribe(event.StateEntered, func(e event.Event) {
		if se, ok := e.(*event.StateEvent); ok {
			engo.SetTitle(scene.cfg.Window.Title + " - " + se.To)
		}
	})
}

// Game returns the running game, or nil before Setup.
func (scene *GameScene) Game() *engine.Game {
	return scene.game
}

// Exit is called when the window closes
func (scene *GameScene) Exit() {
	scene.logger.Info(context.Background(), "window closed")
	engo.Exit()
}

// watchdogPriority runs after everything else in the frame
const watchdogPriority = -1000

// watchdog stops engo once the game reports a fatal error
type watchdog struct {
	game    *engine.Game
	logger  *logging.Logger
	stopped bool
}

func (w *watchdog) Priority() int { return watchdogPriority }

func (w *watchdog) Update(dt float32) {
	w.game.CurrentTick++
	if w.stopped {
		return
	}
	if err := w.game.Transitions.Err(); err != nil {
		w.stopped = true
		w.logger.Error(context.Background(), "game stopped", err)
		engo.Exit()
	}
}

func (w *watchdog) Remove(ecs.BasicEntity) {}
