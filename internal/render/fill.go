package render

import (
	"image"

	"github.com/mstead/pomo/internal/timer"
)

// renderFillBG paints a solid fill line at the progress fraction: phase
// color on the filled side, empty color on the rest.
func renderFillBG(st timer.State, cfg Config) *image.RGBA {
	w, h := cfg.Width, cfg.Height
	img := newCanvas(w, h, cfg.EmptyBG)
	fill := phaseColor(st, cfg)

	p := st.Progress()
	fillHeight := int(float64(h) * p)

	if fillHeight > 0 {
		switch cfg.Direction {
		case EmptyToFull:
			// Grow from the bottom up.
			fillRect(img, 0, h-fillHeight, w, h, fill)
		case FullToEmpty:
			// Drain downward: what remains sits at the top.
			remaining := int(float64(h) * (1 - p))
			if remaining > 0 {
				fillRect(img, 0, 0, w, remaining, fill)
			}
		}
	} else if cfg.Direction == FullToEmpty {
		// Nothing elapsed yet, so the drain starts completely full.
		fillRect(img, 0, 0, w, h, fill)
	}

	return img
}

// renderFillIcon shows the phase icon with the unfilled side reduced to
// luminance-preserving greyscale. Without an icon the output is
// byte-identical to fill_bg.
func renderFillIcon(st timer.State, cfg Config) *image.RGBA {
	icon := cfg.Icons[st.Phase]
	if icon == nil {
		return renderFillBG(st, cfg)
	}

	w, h := cfg.Width, cfg.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	copyIcon(img, icon)

	p := st.Progress()
	fillHeight := int(float64(h) * p)

	switch cfg.Direction {
	case EmptyToFull:
		// Greyscale from the top down to the fill line.
		greyscaleRows(img, 0, h-fillHeight)
	case FullToEmpty:
		// Greyscale from the bottom up by the elapsed amount.
		greyscaleRows(img, h-fillHeight, h)
	}

	return img
}

// copyIcon pastes the pre-scaled icon into the top-left of dst, forcing
// pixels fully opaque.
func copyIcon(dst *image.RGBA, icon *image.RGBA) {
	b := dst.Bounds()
	ib := icon.Bounds()
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if x >= ib.Dx() || y >= ib.Dy() {
				continue
			}
			c := icon.RGBAAt(ib.Min.X+x, ib.Min.Y+y)
			c.A = 0xff
			dst.SetRGBA(b.Min.X+x, b.Min.Y+y, c)
		}
	}
}

// greyscaleRows converts rows [y0, y1) to greyscale using Rec. 601 luma,
// preserving perceived brightness.
func greyscaleRows(img *image.RGBA, y0, y1 int) {
	b := img.Bounds()
	if y0 < b.Min.Y {
		y0 = b.Min.Y
	}
	if y1 > b.Max.Y {
		y1 = b.Max.Y
	}
	for y := y0; y < y1; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			grey := uint8(0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B) + 0.5)
			c.R, c.G, c.B = grey, grey, grey
			img.SetRGBA(x, y, c)
		}
	}
}
