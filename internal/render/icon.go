package render

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"golang.org/x/image/draw"

	"github.com/mstead/pomo/internal/timer"
)

// LoadIcon decodes a PNG and scales it to w x h. The result is what
// Render expects in Config.Icons.
func LoadIcon(path string, w, h int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open icon: %w", err)
	}
	defer func() { _ = f.Close() }()

	src, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode icon %s: %w", path, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// LoadIcons loads the configured per-phase icons. Icons that fail to load
// are logged and left out of the map, so the renderer sees them as absent.
func LoadIcons(paths map[timer.Phase]string, w, h int, logger *slog.Logger) map[timer.Phase]*image.RGBA {
	if logger == nil {
		logger = slog.Default()
	}
	icons := make(map[timer.Phase]*image.RGBA)
	for phase, path := range paths {
		if path == "" {
			continue
		}
		icon, err := LoadIcon(path, w, h)
		if err != nil {
			logger.Warn("icon unavailable", "phase", phase, "path", path, "error", err)
			continue
		}
		icons[phase] = icon
	}
	return icons
}
