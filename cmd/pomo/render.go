package main

import (
	"fmt"
	"log/slog"

	"github.com/mstead/pomo/internal/config"
	"github.com/mstead/pomo/internal/render"
	"github.com/mstead/pomo/internal/timer"
)

// buildRenderConfig converts the validated file config into the renderer's
// form: parsed colors, parsed mode, and decoded icons scaled to the frame
// size. Icons that fail to load are skipped with a warning.
func buildRenderConfig(cfg *config.Config, logger *slog.Logger) (render.Config, error) {
	mode, err := render.ParseMode(cfg.Render.Mode)
	if err != nil {
		return render.Config{}, fmt.Errorf("render mode: %w", err)
	}

	dir, err := render.ParseDirection(cfg.Render.FillDirection)
	if err != nil {
		return render.Config{}, fmt.Errorf("fill direction: %w", err)
	}

	rc := render.Config{
		Width:     cfg.Render.Width,
		Height:    cfg.Render.Height,
		Mode:      mode,
		Direction: dir,
	}

	if rc.FG, err = config.ParseColor(cfg.Render.FG); err != nil {
		return render.Config{}, fmt.Errorf("fg: %w", err)
	}
	if rc.WorkBG, err = config.ParseColor(cfg.Render.WorkBG); err != nil {
		return render.Config{}, fmt.Errorf("work_bg: %w", err)
	}
	if rc.ShortBreakBG, err = config.ParseColor(cfg.Render.ShortBreakBG); err != nil {
		return render.Config{}, fmt.Errorf("short_break_bg: %w", err)
	}
	if rc.LongBreakBG, err = config.ParseColor(cfg.Render.LongBreakBG); err != nil {
		return render.Config{}, fmt.Errorf("long_break_bg: %w", err)
	}
	if rc.PausedBG, err = config.ParseColor(cfg.Render.PausedBG); err != nil {
		return render.Config{}, fmt.Errorf("paused_bg: %w", err)
	}
	if rc.EmptyBG, err = config.ParseColor(cfg.Render.EmptyBG); err != nil {
		return render.Config{}, fmt.Errorf("empty_bg: %w", err)
	}

	// Icons only matter for the icon-based modes.
	if mode == render.ModeFillIcon || mode == render.ModeRipen {
		paths := map[timer.Phase]string{
			timer.Work:       cfg.Render.WorkIcon,
			timer.ShortBreak: cfg.Render.ShortBreakIcon,
			timer.LongBreak:  cfg.Render.LongBreakIcon,
		}
		rc.Icons = render.LoadIcons(paths, rc.Width, rc.Height, logger)
	}

	return rc, nil
}
