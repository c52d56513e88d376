// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-starfighter/pkg/input"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// GameConfig contains the tunables of a starfighter session
type GameConfig struct {
	Ship    ShipConfig          `json:"ship" yaml:"ship"`
	Damping DampingConfig       `json:"damping" yaml:"damping"`
	Physics PhysicsConfig       `json:"physics" yaml:"physics"`
	Laser   LaserConfig         `json:"laser" yaml:"laser"`
	Window  WindowConfig        `json:"window" yaml:"window"`
	Assets  AssetsConfig        `json:"assets" yaml:"assets"`
	Audio   AudioConfig         `json:"audio" yaml:"audio"`
	Keys    map[string][]string `json:"keys" yaml:"keys"`
}

// ShipConfig contains the player ship tunables
type ShipConfig struct {
	RotationSpeed  float32 `json:"rotationSpeed" yaml:"rotationSpeed"`
	Thrust         float32 `json:"thrust" yaml:"thrust"`
	Life           uint32  `json:"life" yaml:"life"`
	ColliderRadius float64 `json:"colliderRadius" yaml:"colliderRadius"`
	Depth          float32 `json:"depth" yaml:"depth"`
	Scale          float32 `json:"scale" yaml:"scale"`
}

// DampingConfig holds the fraction of velocity kept after one second
type DampingConfig struct {
	Angular float64 `json:"angular" yaml:"angular"`
	Linear  float64 `json:"linear" yaml:"linear"`
}

// PhysicsConfig contains physics-related configuration
type PhysicsConfig struct {
	GravityX      float64 `json:"gravityX" yaml:"gravityX"`
	GravityY      float64 `json:"gravityY" yaml:"gravityY"`
	Density       float64 `json:"density" yaml:"density"`
	TimeToSleep   float64 `json:"timeToSleep" yaml:"timeToSleep"`
	SleepVelocity float64 `json:"sleepVelocity" yaml:"sleepVelocity"`
}

// LaserConfig contains projectile tunables
type LaserConfig struct {
	Speed    float64 `json:"speed" yaml:"speed"`
	Lifetime float64 `json:"lifetime" yaml:"lifetime"`
	Offset   float64 `json:"offset" yaml:"offset"`
	Radius   float64 `json:"radius" yaml:"radius"`
}

// WindowConfig contains presentation settings
type WindowConfig struct {
	Title         string  `json:"title" yaml:"title"`
	Width         int     `json:"width" yaml:"width"`
	Height        int     `json:"height" yaml:"height"`
	Fullscreen    bool    `json:"fullscreen" yaml:"fullscreen"`
	PixelsPerUnit float32 `json:"pixelsPerUnit" yaml:"pixelsPerUnit"`
}

// AssetsConfig locates textures on disk
type AssetsConfig struct {
	Root         string `json:"root" yaml:"root"`
	ShipTexture  string `json:"shipTexture" yaml:"shipTexture"`
	LaserTexture string `json:"laserTexture" yaml:"laserTexture"`
}

// AudioConfig contains sound settings
type AudioConfig struct {
	Enabled    bool `json:"enabled" yaml:"enabled"`
	SampleRate int  `json:"sampleRate" yaml:"sampleRate"`
}

// LoadConfig loads a configuration from a file. Files ending in .yaml or
// .yml are parsed as YAML, anything else as JSON. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves a configuration to a file, in YAML or JSON by extension
func SaveConfig(config *GameConfig, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Ship: ShipConfig{
			RotationSpeed:  0.3,
			Thrust:         60.0,
			Life:           1,
			ColliderRadius: 1.0,
			Depth:          -5.0,
			Scale:          1.0 / 37.0,
		},
		Damping: DampingConfig{
			Angular: 0.1,
			Linear:  0.8,
		},
		Physics: PhysicsConfig{
			Density:       1.0,
			TimeToSleep:   2.0,
			SleepVelocity: 0.01,
		},
		Laser: LaserConfig{
			Speed:    20.0,
			Lifetime: 1.5,
			Offset:   1.2,
			Radius:   0.25,
		},
		Window: WindowConfig{
			Title:         "Go Starfighter",
			Width:         1024,
			Height:        768,
			PixelsPerUnit: 37,
		},
		Assets: AssetsConfig{
			Root:         ".",
			ShipTexture:  "assets/playerShip2_red.png",
			LaserTexture: "assets/laserRed01.png",
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
		},
		Keys: DefaultKeys(),
	}
}

// DefaultKeys returns the default key names for every action.
func DefaultKeys() map[string][]string {
	return map[string][]string{
		input.Thrust.String():    {"W", "ArrowUp"},
		input.TurnLeft.String():  {"A", "ArrowLeft"},
		input.TurnRight.String(): {"D", "ArrowRight"},
		input.Fire.String():      {"Space"},
		input.Confirm.String():   {"Enter"},
		input.Cancel.String():    {"Escape"},
	}
}

// Validate checks that every tunable is usable.
func (c *GameConfig) Validate() error {
	var problems []string
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Sprintf(format, args...))
		}
	}

	check(c.Ship.RotationSpeed >= 0, "ship.rotationSpeed must not be negative, got %v", c.Ship.RotationSpeed)
	check(c.Ship.Thrust >= 0, "ship.thrust must not be negative, got %v", c.Ship.Thrust)
	check(c.Ship.Life > 0, "ship.life must be positive")
	check(c.Ship.ColliderRadius > 0, "ship.colliderRadius must be positive, got %v", c.Ship.ColliderRadius)
	check(c.Ship.Scale > 0, "ship.scale must be positive, got %v", c.Ship.Scale)
	check(c.Damping.Angular > 0 && c.Damping.Angular <= 1, "damping.angular must be in (0, 1], got %v", c.Damping.Angular)
	check(c.Damping.Linear > 0 && c.Damping.Linear <= 1, "damping.linear must be in (0, 1], got %v", c.Damping.Linear)
	check(c.Physics.Density > 0, "physics.density must be positive, got %v", c.Physics.Density)
	check(c.Laser.Speed > 0, "laser.speed must be positive, got %v", c.Laser.Speed)
	check(c.Laser.Lifetime > 0, "laser.lifetime must be positive, got %v", c.Laser.Lifetime)
	check(c.Laser.Radius > 0, "laser.radius must be positive, got %v", c.Laser.Radius)
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.PixelsPerUnit > 0, "window.pixelsPerUnit must be positive, got %v", c.Window.PixelsPerUnit)
	check(c.Assets.ShipTexture != "", "assets.shipTexture must be set")
	check(!c.Audio.Enabled || c.Audio.SampleRate > 0, "audio.sampleRate must be positive when audio is enabled")

	for name, keys := range c.Keys {
		_, err := input.ParseAction(name)
		check(err == nil, "keys: %v", err)
		check(len(keys) > 0, "keys.%s has no keys bound", name)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}
