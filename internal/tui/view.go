package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#cdd6f4")).
			Background(lipgloss.Color("#45475a")).
			Padding(0, 1)

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#585b70")).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#94e2d5"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#585b70"))
)

// View renders the window. A hidden window renders nothing at all: the
// process is alive but invisible until the host asks for it again.
func (a *App) View() string {
	if !a.visible || a.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Pyblish"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("host") + fmt.Sprintf("  127.0.0.1:%d\n", a.hostPort))
	if a.beats != nil {
		last, count := a.beats.Last()
		b.WriteString(labelStyle.Render("beats") + fmt.Sprintf(" %d (last %s ago)\n", count, time.Since(last).Round(time.Second)))
	}
	state := a.pipelineState
	if state == "" {
		state = "unknown"
	}
	b.WriteString(labelStyle.Render("state") + " " + state + "\n")

	if a.status != "" {
		b.WriteString("\n" + warnStyle.Render(a.status) + "\n")
	}

	if len(a.infoLines) > 0 {
		b.WriteString("\n")
		for _, line := range a.infoLines {
			b.WriteString(infoStyle.Render("· "+line) + "\n")
		}
	}

	if a.showJournal {
		b.WriteString("\n" + labelStyle.Render("recent messages") + "\n")
		if len(a.journalEntries) == 0 {
			b.WriteString(dimStyle.Render("  (none)") + "\n")
		}
		for _, e := range a.journalEntries {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %s  %-9s %s",
				e.ReceivedAt.Format("15:04:05"), e.Kind, e.Raw)) + "\n")
		}
	}

	b.WriteString("\n" + dimStyle.Render("q close · Q force close · l message log"))
	return frameStyle.Render(b.String())
}
