package ui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rwiggins1/adequate-c/internal/driver"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.adc", 20, "short.adc"},
		{"very/long/path/to/file.adc", 10, "very/lo..."},
		{"abcdef", 3, "abc"},
		{"日本語/file.adc", 9, "日本語..."},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		stage  driver.Stage
		status driver.Status
		want   string
	}{
		{driver.StageLoad, driver.StatusQueued, "queued"},
		{driver.StageParse, driver.StatusWorking, "parsing"},
		{driver.StageLex, driver.StatusWorking, "lexing"},
		{driver.StageParse, driver.StatusDone, "done"},
		{driver.StageLoad, driver.StatusError, "error"},
	}
	for _, tt := range tests {
		if got := statusLabel(tt.stage, tt.status); got != tt.want {
			t.Errorf("statusLabel(%s, %s) = %q, want %q", tt.stage, tt.status, got, tt.want)
		}
	}
}

func TestDisplayPath(t *testing.T) {
	root := filepath.Join("proj", "src")
	tests := []struct {
		root, path, want string
	}{
		{root, filepath.Join(root, "a.adc"), "a.adc"},
		{root, filepath.Join(root, "lib", "b.adc"), "lib/b.adc"},
		{root, filepath.Join("other", "c.adc"), "other/c.adc"},
		{"", filepath.Join("x", "d.adc"), "x/d.adc"},
	}
	for _, tt := range tests {
		if got := displayPath(tt.root, tt.path); got != tt.want {
			t.Errorf("displayPath(%q, %q) = %q, want %q", tt.root, tt.path, got, tt.want)
		}
	}
}

func TestProgressModelAppliesEvents(t *testing.T) {
	events := make(chan driver.Event)
	root := filepath.Join("proj", "src")
	a, b := filepath.Join(root, "a.adc"), filepath.Join(root, "b.adc")
	m := NewProgressModel(Options{Title: "diag src", Root: root, Files: []string{a, b}}, events).(*progressModel)

	m.Update(eventMsg(driver.Event{File: a, Stage: driver.StageParse, Status: driver.StatusWorking}))
	m.Update(eventMsg(driver.Event{File: b, Stage: driver.StageParse, Status: driver.StatusError, Elapsed: 1500 * time.Microsecond}))
	m.Update(eventMsg(driver.Event{File: "unknown.adc", Stage: driver.StageParse, Status: driver.StatusDone}))

	if m.files[0].status != driver.StatusWorking || m.files[1].status != driver.StatusError {
		t.Fatalf("statuses = %q, %q", m.files[0].status, m.files[1].status)
	}
	if m.settled != 1 || m.failed != 1 {
		t.Errorf("settled=%d failed=%d", m.settled, m.failed)
	}
	if got := m.percent(); got != 0.75 {
		t.Errorf("percent = %v, want 0.75", got)
	}

	view := m.View()
	for _, want := range []string{"diag src", "1/2 files", "1 failed", "parsing", "error", "a.adc", "b.adc", "1.5ms"} {
		if !strings.Contains(view, want) {
			t.Errorf("view misses %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, filepath.ToSlash(root)+"/a.adc") {
		t.Errorf("paths must be shown relative to root:\n%s", view)
	}

	_, cmd := m.Update(doneMsg{})
	if !m.done || cmd == nil {
		t.Fatal("doneMsg must finish the model")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("doneMsg must quit the program")
	}
	if !strings.Contains(m.View(), "done: diag src") {
		t.Errorf("final view:\n%s", m.View())
	}
}

func TestFinishedFileIgnoresLateEvents(t *testing.T) {
	m := NewProgressModel(Options{Files: []string{"a.adc"}}, nil).(*progressModel)
	m.apply(driver.Event{File: "a.adc", Stage: driver.StageParse, Status: driver.StatusDone})
	m.apply(driver.Event{File: "a.adc", Stage: driver.StageParse, Status: driver.StatusError})
	if m.settled != 1 || m.failed != 0 || m.files[0].status != driver.StatusDone {
		t.Errorf("late event changed a finished file: %+v settled=%d failed=%d", m.files[0], m.settled, m.failed)
	}
}

func TestProgressModelWaitsUntilClosed(t *testing.T) {
	events := make(chan driver.Event, 1)
	m := NewProgressModel(Options{Title: "t", Files: []string{"a.adc"}}, events).(*progressModel)

	events <- driver.Event{File: "a.adc", Stage: driver.StageLoad, Status: driver.StatusQueued}
	if _, ok := m.waitEvent()().(eventMsg); !ok {
		t.Fatal("expected an event message")
	}
	close(events)
	if _, ok := m.waitEvent()().(doneMsg); !ok {
		t.Fatal("expected done after close")
	}
}
