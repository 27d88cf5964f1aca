package sound

import (
	"log/slog"

	"github.com/mstead/pomo/internal/event"
	"github.com/mstead/pomo/internal/timer"
)

// clipPlayer is the playback surface Notifier needs; satisfied by *Player.
type clipPlayer interface {
	Load(path string) error
	Play(path string)
}

// Notifier plays a clip when a phase runs to completion. Skipped
// transitions stay silent: skipping a phase is not finishing it.
type Notifier struct {
	player     clipPlayer
	workSound  string
	breakSound string
}

// NewNotifier preloads the configured clips and returns a Notifier.
// Clips that fail to load are logged and disabled.
func NewNotifier(player clipPlayer, workSound, breakSound string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	n := &Notifier{
		player:     player,
		workSound:  workSound,
		breakSound: breakSound,
	}
	if workSound != "" {
		if err := player.Load(workSound); err != nil {
			logger.Warn("work sound unavailable", "error", err)
			n.workSound = ""
		}
	}
	if breakSound != "" {
		if err := player.Load(breakSound); err != nil {
			logger.Warn("break sound unavailable", "error", err)
			n.breakSound = ""
		}
	}
	return n
}

// Notify implements event.Notifier.
func (n *Notifier) Notify(tr *event.Transition) {
	if tr.Cause != timer.Natural {
		return
	}
	if tr.From == timer.Work {
		n.player.Play(n.workSound)
	} else {
		n.player.Play(n.breakSound)
	}
}
