// cmd/starfighter/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/EngoEngine/engo"
	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-starfighter/pkg/assets"
	"github.com/opd-ai/go-starfighter/pkg/audio"
	"github.com/opd-ai/go-starfighter/pkg/config"
	"github.com/opd-ai/go-starfighter/pkg/engine"
	"github.com/opd-ai/go-starfighter/pkg/logging"
	"github.com/opd-ai/go-starfighter/pkg/render"
	engorender "github.com/opd-ai/go-starfighter/pkg/render/engo"
)

func main() {
	configPath := flag.String("config", "starfighter.yaml", "Path to configuration file (.yaml or .json)")
	width := flag.Int("width", 0, "Window width (overrides config)")
	height := flag.Int("height", 0, "Window height (overrides config)")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	mute := flag.Bool("mute", false, "Disable sound")
	renderer := flag.String("renderer", "engo", "Frontend to run: engo or terminal")
	logPath := flag.String("log", "", "Write logs to this file instead of stderr")
	flag.Parse()

	gameConfig := loadConfig(*configPath)
	if *width > 0 {
		gameConfig.Window.Width = *width
	}
	if *height > 0 {
		gameConfig.Window.Height = *height
	}
	if *fullscreen {
		gameConfig.Window.Fullscreen = true
	}
	if *mute {
		gameConfig.Audio.Enabled = false
	}
	if err := gameConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	logger, closeLog := newLogger(*logPath, *renderer == "terminal")
	defer closeLog()
	logger.Info(ctx, "starting starfighter",
		"config", *configPath,
		"width", gameConfig.Window.Width,
		"height", gameConfig.Window.Height,
		"fullscreen", gameConfig.Window.Fullscreen,
	)

	out := startAudio(ctx, gameConfig.Audio, logger)
	lib := assets.NewDirLibrary(gameConfig.Assets.Root)

	switch *renderer {
	case "engo":
		runEngo(gameConfig, lib, out, logger)
	case "terminal":
		if err := runTerminal(ctx, gameConfig, lib, out, logger); err != nil {
			log.Fatalf("Terminal frontend failed: %v", err)
		}
	default:
		log.Fatalf("Unknown renderer %q", *renderer)
	}

	logger.Info(ctx, "starfighter stopped")
}

// runEngo opens a window and blocks until it is closed.
func runEngo(gameConfig *config.GameConfig, lib *assets.DirLibrary, out *audio.Output, logger *logging.Logger) {
	scene, err := engorender.NewGameScene(gameConfig, lib, out, logger)
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}

	opts := engo.RunOptions{
		Title:      gameConfig.Window.Title,
		Width:      gameConfig.Window.Width,
		Height:     gameConfig.Window.Height,
		Fullscreen: gameConfig.Window.Fullscreen,
		AssetsRoot: lib.Root(),
		VSync:      true,
	}
	engo.Run(opts, scene)
}

// runTerminal plays the game inside the terminal until it exits or Ctrl-C
// is pressed.
func runTerminal(ctx context.Context, gameConfig *config.GameConfig, lib assets.Library, out *audio.Output, logger *logging.Logger) error {
	keys, err := render.NewTerminalKeys(gameConfig.Keys, render.DefaultHoldTime)
	if err != nil {
		return err
	}
	game, err := engine.NewGame(gameConfig, terminalLibrary(ctx, gameConfig, lib, logger), engine.Options{
		Audio:  out,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	viewWidth := float64(gameConfig.Window.Width) / float64(gameConfig.Window.PixelsPerUnit)
	game.World.AddSystem(render.NewTerminalRenderer(screen, game.Resources.Bodies, game.Resources.Run, viewWidth))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return render.NewTerminalLoop(game, keys, time.Second/60, logger).Run(ctx, events)
}

// terminalLibrary resolves textures from lib when they exist. The terminal
// draws glyphs, so missing image files are replaced by empty placeholders.
func terminalLibrary(ctx context.Context, gameConfig *config.GameConfig, lib assets.Library, logger *logging.Logger) assets.Library {
	var textures []assets.Texture
	for _, path := range []string{gameConfig.Assets.ShipTexture, gameConfig.Assets.LaserTexture} {
		tex, err := lib.Texture(path)
		if err != nil {
			logger.Warn(ctx, "texture unavailable, using placeholder", "texture", path, "error", err)
			textures = append(textures, assets.Texture{URL: path})
			continue
		}
		textures = append(textures, *tex)
	}
	return assets.NewMemoryLibrary(textures...)
}

// newLogger picks the log destination. The terminal frontend owns the
// screen, so without a log file its logs are discarded.
func newLogger(path string, quiet bool) (*logging.Logger, func()) {
	var logger *logging.Logger
	closeLog := func() {}
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}
		logger = logging.NewLoggerWithWriter(f)
		closeLog = func() { f.Close() }
	case quiet:
		logger = logging.Discard()
	default:
		logger = logging.NewLogger()
	}
	return logger.With("session_id", logging.NewSessionID()), closeLog
}

// loadConfig reads the config file if it exists, falls back to defaults
// otherwise, and applies environment overrides on top.
func loadConfig(path string) *config.GameConfig {
	var gameConfig *config.GameConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("Configuration file not found, using default configuration")
		gameConfig = config.DefaultConfig()
	} else {
		gameConfig, err = config.LoadConfig(path)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if !filepath.IsAbs(gameConfig.Assets.Root) {
			gameConfig.Assets.Root = filepath.Join(filepath.Dir(path), gameConfig.Assets.Root)
		}
	}

	gameConfig, err := config.LoadConfigFromEnv(gameConfig)
	if err != nil {
		log.Fatalf("Failed to apply environment configuration: %v", err)
	}
	return gameConfig
}

// startAudio opens the speaker and plays the game's mixer through it. Any
// failure leaves the game running without sound.
func startAudio(ctx context.Context, cfg config.AudioConfig, logger *logging.Logger) *audio.Output {
	if !cfg.Enabled {
		return audio.Disabled()
	}
	rate := beep.SampleRate(cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/30)); err != nil {
		logger.Warn(ctx, "audio unavailable, continuing muted", "error", err)
		return audio.Disabled()
	}
	out := audio.NewOutput(rate, speaker.Lock, speaker.Unlock)
	speaker.Play(out.Mixer())
	return out
}
