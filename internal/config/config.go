package config

import (
	"fmt"
	"time"
)

// PointerConfig holds click-vs-drag tuning.
type PointerConfig struct {
	// DragThresholdPx is the displacement separating clicks from drags.
	DragThresholdPx float64 `toml:"drag_threshold_px"`
}

// TouchConfig holds touch classification tuning.
type TouchConfig struct {
	TapMaxDurationMs       int     `toml:"tap_max_duration_ms"`
	TapMaxDistancePx       float64 `toml:"tap_max_distance_px"`
	LongPressMinDurationMs int     `toml:"long_press_min_duration_ms"`
	SwipeMaxDurationMs     int     `toml:"swipe_max_duration_ms"`
	SwipeMinDistancePx     float64 `toml:"swipe_min_distance_px"`
}

// GestureConfig holds recognizer tuning.
type GestureConfig struct {
	DoubleTapWindowMs int     `toml:"double_tap_window_ms"`
	DoubleTapRadiusPx float64 `toml:"double_tap_radius_px"`
}

// GamepadConfig holds controller polling tuning.
type GamepadConfig struct {
	PollHz int `toml:"poll_hz"`
}

// FilterConfig holds the analog filter defaults.
type FilterConfig struct {
	DeadZone        float64 `toml:"dead_zone"`
	SmoothingFactor float64 `toml:"smoothing_factor"`

	// ResponseCurve names an easing curve applied after smoothing; empty
	// means linear.
	ResponseCurve string `toml:"response_curve"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `toml:"level"`
}

// Config is the root configuration.
type Config struct {
	Pointer PointerConfig `toml:"pointer"`
	Touch   TouchConfig   `toml:"touch"`
	Gesture GestureConfig `toml:"gesture"`
	Gamepad GamepadConfig `toml:"gamepad"`
	Filter  FilterConfig  `toml:"filter"`
	Log     LogConfig     `toml:"log"`

	// ProfilePath optionally names a binding profile to load at startup.
	ProfilePath string `toml:"profile_path"`
}

// Default returns the documented default configuration.
func Default() Config {
	return Config{
		Pointer: PointerConfig{
			DragThresholdPx: 5,
		},
		Touch: TouchConfig{
			TapMaxDurationMs:       200,
			TapMaxDistancePx:       10,
			LongPressMinDurationMs: 500,
			SwipeMaxDurationMs:     300,
			SwipeMinDistancePx:     50,
		},
		Gesture: GestureConfig{
			DoubleTapWindowMs: 300,
			DoubleTapRadiusPx: 20,
		},
		Gamepad: GamepadConfig{
			PollHz: 60,
		},
		Filter: FilterConfig{
			DeadZone:        0.1,
			SmoothingFactor: 0.2,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks value ranges, returning the first violation.
func (c Config) Validate() error {
	if c.Pointer.DragThresholdPx <= 0 {
		return fmt.Errorf("pointer.drag_threshold_px must be positive, got %v", c.Pointer.DragThresholdPx)
	}
	if c.Touch.TapMaxDurationMs <= 0 {
		return fmt.Errorf("touch.tap_max_duration_ms must be positive, got %d", c.Touch.TapMaxDurationMs)
	}
	if c.Touch.LongPressMinDurationMs <= c.Touch.TapMaxDurationMs {
		return fmt.Errorf("touch.long_press_min_duration_ms must exceed tap_max_duration_ms")
	}
	if c.Gesture.DoubleTapWindowMs <= 0 {
		return fmt.Errorf("gesture.double_tap_window_ms must be positive, got %d", c.Gesture.DoubleTapWindowMs)
	}
	if c.Gamepad.PollHz <= 0 || c.Gamepad.PollHz > 1000 {
		return fmt.Errorf("gamepad.poll_hz must be in (0, 1000], got %d", c.Gamepad.PollHz)
	}
	if c.Filter.DeadZone < 0 || c.Filter.DeadZone >= 1 {
		return fmt.Errorf("filter.dead_zone must be in [0, 1), got %v", c.Filter.DeadZone)
	}
	if c.Filter.SmoothingFactor < 0 || c.Filter.SmoothingFactor >= 1 {
		return fmt.Errorf("filter.smoothing_factor must be in [0, 1), got %v", c.Filter.SmoothingFactor)
	}
	return nil
}

// TapMaxDuration returns the tap duration cutoff.
func (c TouchConfig) TapMaxDuration() time.Duration {
	return time.Duration(c.TapMaxDurationMs) * time.Millisecond
}

// LongPressMinDuration returns the long-press duration floor.
func (c TouchConfig) LongPressMinDuration() time.Duration {
	return time.Duration(c.LongPressMinDurationMs) * time.Millisecond
}

// SwipeMaxDuration returns the swipe duration cutoff.
func (c TouchConfig) SwipeMaxDuration() time.Duration {
	return time.Duration(c.SwipeMaxDurationMs) * time.Millisecond
}

// DoubleTapWindow returns the double-tap pairing window.
func (c GestureConfig) DoubleTapWindow() time.Duration {
	return time.Duration(c.DoubleTapWindowMs) * time.Millisecond
}
