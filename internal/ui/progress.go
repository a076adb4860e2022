// Package ui renders the live progress of directory runs in the terminal.
package ui

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rwiggins1/adequate-c/internal/driver"
)

// Options describes one progress display.
type Options struct {
	Title string
	// Root shortens displayed paths; files outside it are shown as given.
	Root  string
	Files []string
}

type fileState struct {
	path    string // ключ событий driver.Event.File
	label   string // путь для показа
	stage   driver.Stage
	status  driver.Status
	elapsed time.Duration
}

func (f *fileState) finished() bool {
	return f.status == driver.StatusDone || f.status == driver.StatusError
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	files   []fileState
	byPath  map[string]int
	settled int // файлов в done/error
	failed  int
	width   int
	done    bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model fed by events; it quits when
// events is closed.
func NewProgressModel(opts Options, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = defaultWidth - 4

	m := &progressModel{
		title:   opts.Title,
		events:  events,
		spinner: sp,
		bar:     bar,
		files:   make([]fileState, len(opts.Files)),
		byPath:  make(map[string]int, len(opts.Files)),
		width:   defaultWidth,
	}
	for i, path := range opts.Files {
		m.files[i] = fileState{path: path, label: displayPath(opts.Root, path), status: driver.StatusQueued}
		m.byPath[path] = i
	}
	return m
}

// Run shows progress on out (normally stderr) until events is closed.
func Run(opts Options, events <-chan driver.Event, out io.Writer) error {
	p := tea.NewProgram(NewProgressModel(opts, events), tea.WithOutput(out), tea.WithInput(nil))
	_, err := p.Run()
	return err
}

func displayPath(root, path string) string {
	if root == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.waitEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = max(msg.Width-4, 10)
		}
		return m, nil
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) waitEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// apply обновляет состояние файла; события по неизвестным путям игнорируются.
func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	idx, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	f := &m.files[idx]
	if f.finished() {
		return nil
	}
	f.stage, f.status = ev.Stage, ev.Status
	if ev.Elapsed > 0 {
		f.elapsed = ev.Elapsed
	}
	if f.finished() {
		m.settled++
		if f.status == driver.StatusError {
			m.failed++
		}
	}
	return m.bar.SetPercent(m.percent())
}

// percent: завершённый файл весит 1, остальные по доле пройденной стадии.
func (m *progressModel) percent() float64 {
	if len(m.files) == 0 {
		return 1
	}
	total := 0.0
	for i := range m.files {
		f := &m.files[i]
		if f.finished() {
			total++
			continue
		}
		total += stageWeight(f.stage, f.status)
	}
	return total / float64(len(m.files))
}

func stageWeight(stage driver.Stage, status driver.Status) float64 {
	if status != driver.StatusWorking {
		return 0
	}
	switch stage {
	case driver.StageLoad:
		return 0.1
	case driver.StageLex:
		return 0.3
	case driver.StageParse:
		return 0.5
	}
	return 0
}
