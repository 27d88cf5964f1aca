package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mstead/pomo/internal/timer"
)

// View implements tea.Model. This renders the full preview display.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.width < minWidth || m.height < minHeight {
		return fmt.Sprintf("Terminal too small (need %dx%d)", minWidth, minHeight)
	}

	sections := []string{
		m.renderHeader(),
		m.renderClock(),
		m.bar.ViewAs(m.st.Progress()),
		m.renderDots(),
		"",
		m.renderFooter(),
	}

	content := strings.Join(sections, "\n")

	rendered := styles.Container.
		Width(max(1, m.width-4)).
		Render(content)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, rendered)
}

// renderHeader shows the phase label and the paused marker.
func (m model) renderHeader() string {
	label := phaseStyle(m.st.Phase).Render(phaseLabel(m.st.Phase))
	if !m.st.Running {
		label += " " + styles.Paused.Render("(paused)")
	}
	return label
}

// renderClock shows the remaining time.
func (m model) renderClock() string {
	return styles.Clock.Render(m.st.RemainingFormatted())
}

// renderDots shows one marker per work iteration in the current session,
// plus the completed session count.
func (m model) renderDots() string {
	filled := m.st.Iteration
	if m.st.Phase == timer.LongBreak {
		filled = iterationDots
	}

	var b strings.Builder
	for i := 0; i < iterationDots; i++ {
		if i > 0 {
			b.WriteByte(' ')
		}
		if i < filled {
			b.WriteString(styles.DotFilled.Render("●"))
		} else {
			b.WriteString(styles.DotEmpty.Render("○"))
		}
	}

	if m.st.SessionsCompleted > 0 {
		b.WriteString(styles.Sessions.Render(
			fmt.Sprintf("  %d session(s) done", m.st.SessionsCompleted)))
	}

	return b.String()
}

// renderFooter shows the key bindings.
func (m model) renderFooter() string {
	return styles.Footer.Render("space start/pause · n skip · r reset · q quit")
}

// phaseLabel returns the human readable phase name.
func phaseLabel(p timer.Phase) string {
	switch p {
	case timer.Work:
		return "Work"
	case timer.ShortBreak:
		return "Short break"
	case timer.LongBreak:
		return "Long break"
	default:
		return p.String()
	}
}

// phaseStyle returns the lipgloss style for the phase label.
func phaseStyle(p timer.Phase) lipgloss.Style {
	switch p {
	case timer.ShortBreak:
		return styles.ShortBreak
	case timer.LongBreak:
		return styles.LongBreak
	default:
		return styles.Work
	}
}
