package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/rwiggins1/adequate-c/internal/driver"
)

const (
	defaultWidth = 80
	statusWidth  = 8
	timeWidth    = 9
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var statusColors = map[string]lipgloss.Color{
	"done":    "2",
	"error":   "1",
	"loading": "6",
	"lexing":  "6",
	"parsing": "6",
}

func (m *progressModel) View() string {
	if len(m.files) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-timeWidth-6, 20)
	for i := range m.files {
		f := &m.files[i]
		label := statusLabel(f.stage, f.status)
		fmt.Fprintf(&b, "  %s %s", styleStatus(label).Render(fmt.Sprintf("%*s", statusWidth, label)), truncate(f.label, nameWidth))
		if f.finished() && f.elapsed > 0 {
			b.WriteString(" ")
			b.WriteString(dimStyle.Render(formatElapsed(f.elapsed)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// header: "⠋ adequate diag · 2/5 files · 1 failed"
func (m *progressModel) header() string {
	parts := []string{m.title, fmt.Sprintf("%d/%d files", m.settled, len(m.files))}
	if m.failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", m.failed))
	}
	text := strings.Join(parts, " · ")
	if m.done {
		return titleStyle.Render("done: " + text)
	}
	return m.spinner.View() + " " + titleStyle.Render(text)
}

func statusLabel(stage driver.Stage, status driver.Status) string {
	switch status {
	case driver.StatusQueued:
		return "queued"
	case driver.StatusDone:
		return "done"
	case driver.StatusError:
		return "error"
	case driver.StatusWorking:
		switch stage {
		case driver.StageLoad:
			return "loading"
		case driver.StageLex:
			return "lexing"
		case driver.StageParse:
			return "parsing"
		}
	}
	return ""
}

func styleStatus(label string) lipgloss.Style {
	if c, ok := statusColors[label]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle()
}

func formatElapsed(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
}

// truncate cuts value to width terminal cells, marking the cut with "...".
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
