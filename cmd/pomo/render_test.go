package main

import (
	"image/color"
	"testing"

	"github.com/mstead/pomo/internal/config"
	"github.com/mstead/pomo/internal/render"
)

func TestBuildRenderConfig_Defaults(t *testing.T) {
	cfg := config.Default()

	rc, err := buildRenderConfig(cfg, nil)
	if err != nil {
		t.Fatalf("buildRenderConfig failed: %v", err)
	}

	if rc.Mode != render.ModeText {
		t.Errorf("mode = %v, want text", rc.Mode)
	}
	if rc.Direction != render.EmptyToFull {
		t.Errorf("direction = %v, want empty_to_full", rc.Direction)
	}
	if rc.Width != 72 || rc.Height != 72 {
		t.Errorf("size = %dx%d, want 72x72", rc.Width, rc.Height)
	}
	if rc.WorkBG != (color.RGBA{R: 0xe5, G: 0x73, B: 0x73, A: 0xff}) {
		t.Errorf("work bg = %v", rc.WorkBG)
	}
	if rc.Icons != nil {
		t.Error("text mode should not load icons")
	}
}

func TestBuildRenderConfig_BadMode(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Mode = "hologram"

	if _, err := buildRenderConfig(cfg, nil); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestBuildRenderConfig_BadColor(t *testing.T) {
	cfg := config.Default()
	cfg.Render.PausedBG = "grey"

	if _, err := buildRenderConfig(cfg, nil); err == nil {
		t.Error("expected error for unparseable color")
	}
}

func TestBuildRenderConfig_IconModeLoadsIcons(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Mode = "fill_icon"
	cfg.Render.WorkIcon = "/nonexistent/tomato.png"

	rc, err := buildRenderConfig(cfg, nil)
	if err != nil {
		t.Fatalf("buildRenderConfig failed: %v", err)
	}

	// Missing files are skipped, not fatal.
	if len(rc.Icons) != 0 {
		t.Errorf("expected no icons loaded, got %d", len(rc.Icons))
	}
}
