package config

import (
	"errors"
	"image/color"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if got := cfg.Timer.WorkDuration(); got != 25*time.Minute {
		t.Errorf("WorkDuration = %v, want 25m", got)
	}
	if got := cfg.Timer.ShortBreakDuration(); got != 5*time.Minute {
		t.Errorf("ShortBreakDuration = %v, want 5m", got)
	}
	if got := cfg.Timer.LongBreakDuration(); got != 15*time.Minute {
		t.Errorf("LongBreakDuration = %v, want 15m", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero work", func(c *Config) { c.Timer.WorkMinutes = 0 }},
		{"negative short break", func(c *Config) { c.Timer.ShortBreakMinutes = -1 }},
		{"zero long break", func(c *Config) { c.Timer.LongBreakMinutes = 0 }},
		{"zero poll interval", func(c *Config) { c.Timer.PollInterval = 0 }},
		{"unknown mode", func(c *Config) { c.Render.Mode = "sparkle" }},
		{"unknown direction", func(c *Config) { c.Render.FillDirection = "sideways" }},
		{"bad color", func(c *Config) { c.Render.WorkBG = "red" }},
		{"zero width", func(c *Config) { c.Render.Width = 0 }},
		{"ripen without icons", func(c *Config) { c.Render.Mode = "ripen" }},
		{"ripen missing break icons", func(c *Config) {
			c.Render.Mode = "ripen"
			c.Render.WorkIcon = "tomato.png"
		}},
		{"ripen missing long break icon", func(c *Config) {
			c.Render.Mode = "ripen"
			c.Render.WorkIcon = "tomato.png"
			c.Render.ShortBreakIcon = "leaf.png"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate should fail")
			}
			if !errors.Is(err, ErrConfig) {
				t.Errorf("error %v should wrap ErrConfig", err)
			}
		})
	}
}

func TestValidate_RipenWithIcons(t *testing.T) {
	cfg := Default()
	cfg.Render.Mode = "ripen"
	cfg.Render.WorkIcon = "tomato.png"
	cfg.Render.ShortBreakIcon = "leaf.png"
	cfg.Render.LongBreakIcon = "flower.png"
	if err := cfg.Validate(); err != nil {
		t.Errorf("ripen with all icons should validate, got %v", err)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{in: "#e57373", want: color.RGBA{R: 0xe5, G: 0x73, B: 0x73, A: 0xff}},
		{in: "#000000", want: color.RGBA{A: 0xff}},
		{in: "#FFFFFF", want: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{in: "e57373", wantErr: true},
		{in: "#e5737", wantErr: true},
		{in: "#e573731", wantErr: true},
		{in: "#gggggg", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
