package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spectra-health/spectra/internal/content"
)

// scheduledMsg carries a timer callback onto the update loop
type scheduledMsg struct {
	fn func()
}

// contentReloadMsg replaces the landing copy
type contentReloadMsg struct {
	page *content.Page
}

type tickMsg time.Time

// tick drives the dialog spinner
func tick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ContentReloaded builds the message that swaps the landing copy in place
func ContentReloaded(page *content.Page) tea.Msg {
	return contentReloadMsg{page: page}
}
