// Package sound plays short notification clips on phase transitions.
package sound

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
)

// sampleRate is the speaker mixing rate.
const sampleRate beep.SampleRate = 44100

// Player decodes audio files once and plays them through the speaker.
// A failed speaker init disables audio instead of failing the daemon.
type Player struct {
	mu      sync.Mutex
	buffers map[string]*beep.Buffer
	logger  *slog.Logger
	enabled bool
}

// NewPlayer initializes the speaker and returns a Player. Audio problems
// are logged, never fatal.
func NewPlayer(logger *slog.Logger) *Player {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Player{
		buffers: make(map[string]*beep.Buffer),
		logger:  logger,
		enabled: true,
	}
	if err := speaker.Init(sampleRate, int(sampleRate)/10); err != nil {
		p.logger.Warn("audio disabled: speaker init failed", "error", err)
		p.enabled = false
	}
	return p
}

// Load decodes the file at path and caches the samples for playback.
// Supported formats: ogg/oga (vorbis), wav, mp3.
func (p *Player) Load(path string) error {
	if !p.enabled || path == "" {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.buffers[path]; ok {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open sound %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg", ".oga":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		return fmt.Errorf("unsupported sound format %q", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("decode sound %s: %w", path, err)
	}
	defer func() { _ = streamer.Close() }()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	p.buffers[path] = buffer
	return nil
}

// Play starts playback of a previously loaded clip and returns immediately.
// Unknown paths are logged and skipped.
func (p *Player) Play(path string) {
	if !p.enabled || path == "" {
		return
	}

	p.mu.Lock()
	b, ok := p.buffers[path]
	p.mu.Unlock()
	if !ok {
		p.logger.Warn("sound not loaded", "path", path)
		return
	}

	speaker.Play(b.Streamer(0, b.Len()))
}
