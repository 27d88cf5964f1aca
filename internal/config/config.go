// Package config provides configuration types and defaults for pomo.
package config

import "time"

// Config holds all configuration for pomo.
type Config struct {
	Timer       TimerConfig       `yaml:"timer" mapstructure:"timer"`
	Render      RenderConfig      `yaml:"render" mapstructure:"render"`
	Sounds      SoundsConfig      `yaml:"sounds" mapstructure:"sounds"`
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
}

// TimerConfig holds phase lengths and auto-start behaviour.
type TimerConfig struct {
	WorkMinutes       int           `yaml:"work" mapstructure:"work"`               // Work phase length in minutes (> 0)
	ShortBreakMinutes int           `yaml:"short_break" mapstructure:"short_break"` // Short break length in minutes (> 0)
	LongBreakMinutes  int           `yaml:"long_break" mapstructure:"long_break"`   // Long break length in minutes (> 0)
	AutoStartWork     bool          `yaml:"auto_start_work" mapstructure:"auto_start_work"`
	AutoStartBreak    bool          `yaml:"auto_start_break" mapstructure:"auto_start_break"`
	PollInterval      time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`
}

// RenderConfig holds display settings. Colors are hex strings ("#rrggbb").
type RenderConfig struct {
	Mode           string `yaml:"mode" mapstructure:"mode"`                     // text, fill_bg, fill_icon, ripen
	FillDirection  string `yaml:"fill_direction" mapstructure:"fill_direction"` // empty_to_full, full_to_empty
	Width          int    `yaml:"width" mapstructure:"width"`
	Height         int    `yaml:"height" mapstructure:"height"`
	WorkBG         string `yaml:"work_bg" mapstructure:"work_bg"`
	ShortBreakBG   string `yaml:"short_break_bg" mapstructure:"short_break_bg"`
	LongBreakBG    string `yaml:"long_break_bg" mapstructure:"long_break_bg"`
	PausedBG       string `yaml:"paused_bg" mapstructure:"paused_bg"`
	EmptyBG        string `yaml:"empty_bg" mapstructure:"empty_bg"`
	FG             string `yaml:"fg" mapstructure:"fg"`
	WorkIcon       string `yaml:"work_icon" mapstructure:"work_icon"`
	ShortBreakIcon string `yaml:"short_break_icon" mapstructure:"short_break_icon"`
	LongBreakIcon  string `yaml:"long_break_icon" mapstructure:"long_break_icon"`
}

// SoundsConfig names the audio files played on natural phase completion.
// Empty values disable the corresponding sound.
type SoundsConfig struct {
	WorkComplete  string `yaml:"work_complete" mapstructure:"work_complete"`
	BreakComplete string `yaml:"break_complete" mapstructure:"break_complete"`
}

// PathsConfig holds file paths for state, logs, socket, and the rendered frame.
type PathsConfig struct {
	State  string `yaml:"state" mapstructure:"state"`
	Log    string `yaml:"log" mapstructure:"log"`
	Socket string `yaml:"socket" mapstructure:"socket"`
	PID    string `yaml:"pid" mapstructure:"pid"`
	Frame  string `yaml:"frame" mapstructure:"frame"`
}

// LogRotationConfig holds settings for log file rotation (lumberjack-based).
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// WorkDuration returns the configured work length.
func (t TimerConfig) WorkDuration() time.Duration {
	return time.Duration(t.WorkMinutes) * time.Minute
}

// ShortBreakDuration returns the configured short-break length.
func (t TimerConfig) ShortBreakDuration() time.Duration {
	return time.Duration(t.ShortBreakMinutes) * time.Minute
}

// LongBreakDuration returns the configured long-break length.
func (t TimerConfig) LongBreakDuration() time.Duration {
	return time.Duration(t.LongBreakMinutes) * time.Minute
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Timer: TimerConfig{
			WorkMinutes:       25,
			ShortBreakMinutes: 5,
			LongBreakMinutes:  15,
			AutoStartWork:     false,
			AutoStartBreak:    true,
			PollInterval:      time.Second,
		},
		Render: RenderConfig{
			Mode:          "text",
			FillDirection: "empty_to_full",
			Width:         72,
			Height:        72,
			WorkBG:        "#e57373",
			ShortBreakBG:  "#81c784",
			LongBreakBG:   "#81c784",
			PausedBG:      "#7f8c8d",
			EmptyBG:       "#2b2b2b",
			FG:            "#ffffff",
		},
		Sounds: SoundsConfig{},
		Paths: PathsConfig{
			State:  ".pomo/state.json",
			Log:    ".pomo/pomo.log",
			Socket: ".pomo/pomo.sock",
			PID:    ".pomo/pomo.pid",
			Frame:  ".pomo/frame.png",
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}
