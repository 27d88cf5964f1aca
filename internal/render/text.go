package render

import (
	"image"
	"image/color"

	"github.com/mstead/pomo/internal/timer"
)

// Glyphs are 3x5 bitmaps, one row per byte with the low three bits used.
// The set is closed: countdown digits, the colon, and the phase letters.
var glyphs = map[byte][5]uint8{
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	':': {0b000, 0b010, 0b000, 0b010, 0b000},
	'W': {0b101, 0b101, 0b101, 0b111, 0b101},
	'S': {0b011, 0b100, 0b010, 0b001, 0b110},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
}

const (
	glyphWidth  = 3
	glyphHeight = 5
)

// phaseLetter is the single-letter phase indicator drawn above the countdown.
func phaseLetter(p timer.Phase) byte {
	switch p {
	case timer.ShortBreak:
		return 'S'
	case timer.LongBreak:
		return 'L'
	default:
		return 'W'
	}
}

// renderText paints the countdown on a phase-colored background, with the
// paused color taking over while the timer is stopped. A small phase
// letter sits at the top and four iteration dots at the bottom.
func renderText(st timer.State, cfg Config) *image.RGBA {
	w, h := cfg.Width, cfg.Height

	bg := phaseColor(st, cfg)
	if !st.Running {
		bg = cfg.PausedBG
	}
	img := newCanvas(w, h, bg)

	countdown := st.RemainingFormatted()
	scale := textScale(countdown, w-2, h/2)
	tw := stringWidth(countdown, scale)
	drawString(img, countdown, (w-tw)/2, (h-glyphHeight*scale)/2, scale, cfg.FG)

	letterScale := max(1, scale/2)
	lw := stringWidth(string(phaseLetter(st.Phase)), letterScale)
	drawString(img, string(phaseLetter(st.Phase)), (w-lw)/2, letterScale, letterScale, cfg.FG)

	drawIterationDots(img, st, cfg.FG)
	return img
}

// textScale picks the largest integer scale that fits the string in the
// given box, never below 1.
func textScale(s string, maxW, maxH int) int {
	unitW := len(s)*(glyphWidth+1) - 1
	scale := min(maxW/unitW, maxH/glyphHeight)
	return max(1, scale)
}

// stringWidth returns the pixel width of s at the given scale, counting
// one glyph-gap between characters.
func stringWidth(s string, scale int) int {
	if len(s) == 0 {
		return 0
	}
	return (len(s)*(glyphWidth+1) - 1) * scale
}

// drawString paints s with its top-left corner at (x, y). Characters
// outside the glyph set are skipped, advancing as a space.
func drawString(img *image.RGBA, s string, x, y, scale int, c color.RGBA) {
	for i := 0; i < len(s); i++ {
		if rows, ok := glyphs[s[i]]; ok {
			drawGlyph(img, rows, x, y, scale, c)
		}
		x += (glyphWidth + 1) * scale
	}
}

func drawGlyph(img *image.RGBA, rows [5]uint8, x, y, scale int, c color.RGBA) {
	for row := 0; row < glyphHeight; row++ {
		for col := 0; col < glyphWidth; col++ {
			if rows[row]&(1<<(glyphWidth-1-col)) == 0 {
				continue
			}
			fillRect(img, x+col*scale, y+row*scale, x+(col+1)*scale, y+(row+1)*scale, c)
		}
	}
}

// drawIterationDots paints the four session-progress dots along the bottom
// edge. Filled count equals the iteration counter; during the long break
// all four show filled.
func drawIterationDots(img *image.RGBA, st timer.State, c color.RGBA) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	filled := st.Iteration
	if st.Phase == timer.LongBreak {
		filled = 4
	}

	size := max(2, h/12)
	gap := size
	total := 4*size + 3*gap
	x := (w - total) / 2
	y := h - 2*size

	for i := 0; i < 4; i++ {
		if i < filled {
			fillRect(img, x, y, x+size, y+size, c)
		} else {
			// Hollow dot: a one-pixel outline.
			fillRect(img, x, y, x+size, y+1, c)
			fillRect(img, x, y+size-1, x+size, y+size, c)
			fillRect(img, x, y, x+1, y+size, c)
			fillRect(img, x+size-1, y, x+size, y+size, c)
		}
		x += size + gap
	}
}
