// Package render turns a timer snapshot into a pixel buffer.
//
// Render is pure: no clock reads, no logging, no randomness. Identical
// state and config always produce a byte-identical image, so display
// output can be snapshot-tested.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/mstead/pomo/internal/timer"
)

// ErrIconRequired is returned by ripen mode when no icon is configured
// for the current phase. Unlike fill_icon there is no fallback.
var ErrIconRequired = errors.New("render: ripen mode requires an icon")

// Mode selects the rendering algorithm.
type Mode int

const (
	ModeText Mode = iota
	ModeFillBG
	ModeFillIcon
	ModeRipen
)

// ParseMode converts a config string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "text":
		return ModeText, nil
	case "fill_bg":
		return ModeFillBG, nil
	case "fill_icon":
		return ModeFillIcon, nil
	case "ripen":
		return ModeRipen, nil
	default:
		return ModeText, fmt.Errorf("unknown render mode %q", s)
	}
}

// Direction controls which way fill modes grow.
type Direction int

const (
	// EmptyToFull fills bottom-up as the phase progresses.
	EmptyToFull Direction = iota
	// FullToEmpty starts full and drains as the phase progresses.
	FullToEmpty
)

// ParseDirection converts a config string to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "empty_to_full":
		return EmptyToFull, nil
	case "full_to_empty":
		return FullToEmpty, nil
	default:
		return EmptyToFull, fmt.Errorf("unknown fill direction %q", s)
	}
}

// Config holds everything Render needs besides the timer state. Icons are
// pre-decoded and pre-scaled to Width x Height by the loader; a nil or
// missing entry means no icon for that phase.
type Config struct {
	Width, Height int
	Mode          Mode
	Direction     Direction

	FG           color.RGBA
	WorkBG       color.RGBA
	ShortBreakBG color.RGBA
	LongBreakBG  color.RGBA
	PausedBG     color.RGBA
	EmptyBG      color.RGBA

	Icons map[timer.Phase]*image.RGBA
}

// Render produces the display image for the given state.
func Render(st timer.State, cfg Config) (*image.RGBA, error) {
	switch cfg.Mode {
	case ModeFillBG:
		return renderFillBG(st, cfg), nil
	case ModeFillIcon:
		return renderFillIcon(st, cfg), nil
	case ModeRipen:
		return renderRipen(st, cfg)
	default:
		return renderText(st, cfg), nil
	}
}

// phaseColor returns the background for the current phase.
func phaseColor(st timer.State, cfg Config) color.RGBA {
	switch st.Phase {
	case timer.ShortBreak:
		return cfg.ShortBreakBG
	case timer.LongBreak:
		return cfg.LongBreakBG
	default:
		return cfg.WorkBG
	}
}

// newCanvas allocates a w x h image filled with bg.
func newCanvas(w, h int, bg color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(img, 0, 0, w, h, bg)
	return img
}

// fillRect paints the half-open rectangle [x0,x1) x [y0,y1).
func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	b := img.Bounds()
	if x0 < b.Min.X {
		x0 = b.Min.X
	}
	if y0 < b.Min.Y {
		y0 = b.Min.Y
	}
	if x1 > b.Max.X {
		x1 = b.Max.X
	}
	if y1 > b.Max.Y {
		y1 = b.Max.Y
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}
