package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "INPUT_"

// Load reads a TOML file over the defaults and applies environment
// overrides. A missing file is not an error; the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	ApplyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes TOML bytes over the defaults without touching the
// environment.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the configuration as TOML.
func Save(cfg Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ApplyEnv overlays INPUT_-prefixed environment variables onto a
// configuration. Unparseable values are ignored.
func ApplyEnv(cfg *Config) {
	envFloat("POINTER_DRAG_THRESHOLD_PX", &cfg.Pointer.DragThresholdPx)
	envInt("TOUCH_TAP_MAX_DURATION_MS", &cfg.Touch.TapMaxDurationMs)
	envFloat("TOUCH_TAP_MAX_DISTANCE_PX", &cfg.Touch.TapMaxDistancePx)
	envInt("TOUCH_LONG_PRESS_MIN_DURATION_MS", &cfg.Touch.LongPressMinDurationMs)
	envInt("TOUCH_SWIPE_MAX_DURATION_MS", &cfg.Touch.SwipeMaxDurationMs)
	envFloat("TOUCH_SWIPE_MIN_DISTANCE_PX", &cfg.Touch.SwipeMinDistancePx)
	envInt("GESTURE_DOUBLE_TAP_WINDOW_MS", &cfg.Gesture.DoubleTapWindowMs)
	envFloat("GESTURE_DOUBLE_TAP_RADIUS_PX", &cfg.Gesture.DoubleTapRadiusPx)
	envInt("GAMEPAD_POLL_HZ", &cfg.Gamepad.PollHz)
	envFloat("FILTER_DEAD_ZONE", &cfg.Filter.DeadZone)
	envFloat("FILTER_SMOOTHING_FACTOR", &cfg.Filter.SmoothingFactor)
	envString("FILTER_RESPONSE_CURVE", &cfg.Filter.ResponseCurve)
	envString("LOG_LEVEL", &cfg.Log.Level)
	envString("PROFILE_PATH", &cfg.ProfilePath)
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envFloat(key string, dst *float64) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}
