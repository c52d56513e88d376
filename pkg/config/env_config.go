package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by LoadConfigFromEnv.
const (
	EnvShipRotationSpeed = "STARFIGHTER_SHIP_ROTATION_SPEED"
	EnvShipThrust        = "STARFIGHTER_SHIP_THRUST"
	EnvDampingAngular    = "STARFIGHTER_DAMPING_ANGULAR"
	EnvDampingLinear     = "STARFIGHTER_DAMPING_LINEAR"
	EnvWindowWidth       = "STARFIGHTER_WINDOW_WIDTH"
	EnvWindowHeight      = "STARFIGHTER_WINDOW_HEIGHT"
	EnvFullscreen        = "STARFIGHTER_FULLSCREEN"
	EnvAssetsRoot        = "STARFIGHTER_ASSETS_ROOT"
	EnvAudioEnabled      = "STARFIGHTER_AUDIO_ENABLED"
)

// LoadConfigFromEnv returns a copy of base with any STARFIGHTER_* variables
// applied on top, then validates it. Unset variables leave base untouched.
func LoadConfigFromEnv(base *GameConfig) (*GameConfig, error) {
	config := *base
	config.Keys = make(map[string][]string, len(base.Keys))
	for action, keys := range base.Keys {
		config.Keys[action] = append([]string(nil), keys...)
	}

	if err := overrideFloat32(EnvShipRotationSpeed, &config.Ship.RotationSpeed); err != nil {
		return nil, err
	}
	if err := overrideFloat32(EnvShipThrust, &config.Ship.Thrust); err != nil {
		return nil, err
	}
	if err := overrideFloat64(EnvDampingAngular, &config.Damping.Angular); err != nil {
		return nil, err
	}
	if err := overrideFloat64(EnvDampingLinear, &config.Damping.Linear); err != nil {
		return nil, err
	}
	if err := overrideInt(EnvWindowWidth, &config.Window.Width); err != nil {
		return nil, err
	}
	if err := overrideInt(EnvWindowHeight, &config.Window.Height); err != nil {
		return nil, err
	}
	if err := overrideBool(EnvFullscreen, &config.Window.Fullscreen); err != nil {
		return nil, err
	}
	if err := overrideBool(EnvAudioEnabled, &config.Audio.Enabled); err != nil {
		return nil, err
	}
	if root, ok := os.LookupEnv(EnvAssetsRoot); ok && root != "" {
		config.Assets.Root = root
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func overrideFloat32(key string, dst *float32) error {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = float32(v)
	return nil
}

func overrideFloat64(key string, dst *float64) error {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}

func overrideInt(key string, dst *int) error {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}

func overrideBool(key string, dst *bool) error {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = v
	return nil
}
