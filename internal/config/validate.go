package config

import (
	"errors"
	"fmt"
)

// ErrConfig marks configuration validation failures.
var ErrConfig = errors.New("invalid config")

var renderModes = map[string]bool{
	"text":      true,
	"fill_bg":   true,
	"fill_icon": true,
	"ripen":     true,
}

var fillDirections = map[string]bool{
	"empty_to_full": true,
	"full_to_empty": true,
}

// Validate checks the configuration for values the rest of the program
// assumes to be sane: positive phase durations, a known render mode and
// fill direction, parseable colors, and positive frame dimensions.
func (c *Config) Validate() error {
	if c.Timer.WorkMinutes <= 0 {
		return fmt.Errorf("%w: timer.work must be > 0, got %d", ErrConfig, c.Timer.WorkMinutes)
	}
	if c.Timer.ShortBreakMinutes <= 0 {
		return fmt.Errorf("%w: timer.short_break must be > 0, got %d", ErrConfig, c.Timer.ShortBreakMinutes)
	}
	if c.Timer.LongBreakMinutes <= 0 {
		return fmt.Errorf("%w: timer.long_break must be > 0, got %d", ErrConfig, c.Timer.LongBreakMinutes)
	}
	if c.Timer.PollInterval <= 0 {
		return fmt.Errorf("%w: timer.poll_interval must be > 0, got %s", ErrConfig, c.Timer.PollInterval)
	}

	if !renderModes[c.Render.Mode] {
		return fmt.Errorf("%w: unknown render.mode %q", ErrConfig, c.Render.Mode)
	}
	if !fillDirections[c.Render.FillDirection] {
		return fmt.Errorf("%w: unknown render.fill_direction %q", ErrConfig, c.Render.FillDirection)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("%w: render dimensions must be > 0, got %dx%d", ErrConfig, c.Render.Width, c.Render.Height)
	}

	for name, value := range map[string]string{
		"render.work_bg":        c.Render.WorkBG,
		"render.short_break_bg": c.Render.ShortBreakBG,
		"render.long_break_bg":  c.Render.LongBreakBG,
		"render.paused_bg":      c.Render.PausedBG,
		"render.empty_bg":       c.Render.EmptyBG,
		"render.fg":             c.Render.FG,
	} {
		if _, err := ParseColor(value); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrConfig, name, err)
		}
	}

	// Ripen has no fallback when an icon is missing, so reject the
	// combination at load time instead of failing every render of the
	// phase that lacks one.
	if c.Render.Mode == "ripen" {
		for name, path := range map[string]string{
			"render.work_icon":        c.Render.WorkIcon,
			"render.short_break_icon": c.Render.ShortBreakIcon,
			"render.long_break_icon":  c.Render.LongBreakIcon,
		} {
			if path == "" {
				return fmt.Errorf("%w: render.mode ripen requires %s", ErrConfig, name)
			}
		}
	}

	return nil
}
