package render

import (
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/mstead/pomo/internal/timer"
)

// greenHue is the target hue of the ripen effect in degrees.
const greenHue = 120.0

// renderRipen shows the phase icon with every pixel's hue rotated toward
// green along the shortest arc, scaled by how much of the phase remains.
// At progress 0 the shift is maximal ("unripe"); at progress 1 the icon is
// returned with its original colors. Saturation and lightness never change.
func renderRipen(st timer.State, cfg Config) (*image.RGBA, error) {
	icon := cfg.Icons[st.Phase]
	if icon == nil {
		return nil, ErrIconRequired
	}

	w, h := cfg.Width, cfg.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	copyIcon(img, icon)

	factor := 1 - st.Progress()
	if factor <= 0 {
		// Fully ripe: the original pixels, untouched byte-for-byte.
		return img, nil
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			c.R, c.G, c.B = shiftHueTowardGreen(c.R, c.G, c.B, factor)
			img.SetRGBA(x, y, c)
		}
	}
	return img, nil
}

// shiftHueTowardGreen rotates a pixel's hue toward greenHue by factor of
// the shortest arc between them. factor 0 leaves the color alone, factor 1
// lands exactly on green.
func shiftHueTowardGreen(r, g, b uint8, factor float64) (uint8, uint8, uint8) {
	c := colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}
	h, s, l := c.Hsl()

	// Signed shortest-arc distance to green, in (-180, 180].
	diff := math.Mod(greenHue-h+540, 360) - 180
	newH := math.Mod(h+diff*factor+360, 360)

	out := colorful.Hsl(newH, s, l).Clamped()
	return out.RGB255()
}
