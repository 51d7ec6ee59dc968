// Package tui provides the Bubble Tea shell for turrets.
// It handles the terminal UI loop, input mapping, logging, history and
// the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// flashDuration is how long a footer notice stays on screen.
const flashDuration = 3 * time.Second

// clearFlashMsg removes the footer notice with the matching sequence number.
// Older timers arriving after a newer notice are ignored.
type clearFlashMsg struct {
	seq int
}

// clearFlashCmd schedules removal of notice seq.
func clearFlashCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearFlashMsg{seq: seq}
	})
}
