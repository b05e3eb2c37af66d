// Package tui provides a Bubble Tea terminal user interface for mangadl.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rokuso/mangadl/internal/config"
	"github.com/rokuso/mangadl/internal/download"
	"github.com/rokuso/mangadl/internal/export"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	chapterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateInitializing
	StateDownloading
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	chapters  []string
	err       error

	// Download context
	ctx    context.Context
	cancel context.CancelFunc

	// Download manager reference
	manager *download.Manager

	// Download progress
	chaptersTotal int32
	chaptersDone  int32
	pages         int32
	receivedBytes int64

	// Options
	format          string
	addChapterTitle bool
	verbose         bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "title ID (e.g. 100056)"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	settings := config.DefaultSettings()

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		format:    settings.SaveFormat,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when download progress updates.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// InitDoneMsg is sent when initialization completes.
	InitDoneMsg struct {
		Chapters []string
		Manager  *download.Manager
		Err      error
	}

	// DownloadDoneMsg is sent when all downloads complete.
	DownloadDoneMsg struct {
		Received      int64
		Pages         int32
		ChaptersDone  int32
		ChaptersTotal int32
		Err           error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateDownloading || m.state == StateInitializing {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StateInitializing
				return m, tea.Batch(m.initializeDownload(), m.spinner.Tick)
			}

		case "f":
			if m.state == StateInput {
				m.format = nextFormat(m.format)
			}

		case "t":
			if m.state == StateInput {
				m.addChapterTitle = !m.addChapterTitle
			}

		case "v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for new download
				m.state = StateInput
				m.logs = nil
				m.chapters = nil
				m.err = nil
				m.chaptersDone = 0
				m.chaptersTotal = 0
				m.pages = 0
				m.receivedBytes = 0
				m.manager = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == download.LevelVerbose && !m.verbose {
			return m, nil
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}

	case InitDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.chapters = msg.Chapters
			m.manager = msg.Manager
			m.state = StateDownloading
			// Start the actual download and tick for progress updates
			cmds = append(cmds, m.startDownload(), m.tickProgress())
		}

	case DownloadDoneMsg:
		m.receivedBytes = msg.Received
		m.pages = msg.Pages
		m.chaptersDone = msg.ChaptersDone
		m.chaptersTotal = msg.ChaptersTotal
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		// Update progress from manager
		if m.manager != nil && m.state == StateDownloading {
			received, pages, done, total := m.manager.GetProgress()
			m.receivedBytes = received
			m.pages = pages
			m.chaptersDone = done
			m.chaptersTotal = total

			// Calculate percentage and animate progress bar
			var percent float64
			if total > 0 {
				percent = float64(done) / float64(total)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// nextFormat cycles through the registered export formats.
func nextFormat(current string) string {
	formats := export.Formats()
	for i, f := range formats {
		if f == current {
			return formats[(i+1)%len(formats)]
		}
	}
	return formats[0]
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("📚 mangadl"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download and package manga chapters"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateInitializing:
		b.WriteString(m.viewInitializing())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter title ID(s):"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	chapterTitleCheck := "[ ]"
	if m.addChapterTitle {
		chapterTitleCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Output format: %s (f)\n", m.format))
	b.WriteString(fmt.Sprintf("  %s Add chapter titles to names (t)\n", chapterTitleCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Destination: %s", m.settings.Destination)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewInitializing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Fetching title info..."))
	b.WriteString("\n\n")

	// Show logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	// Chapters found
	if len(m.chapters) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("Queued %d chapter(s):", len(m.chapters))))
		b.WriteString("\n")
		shown := m.chapters
		if len(shown) > 8 {
			shown = shown[:8]
		}
		for _, chapter := range shown {
			b.WriteString(chapterStyle.Render(fmt.Sprintf("  • %s", chapter)))
			b.WriteString("\n")
		}
		if len(m.chapters) > len(shown) {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... and %d more", len(m.chapters)-len(shown))))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Progress bar
	var percent float64
	if m.chaptersTotal > 0 {
		percent = float64(m.chaptersDone) / float64(m.chaptersTotal)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Chapters: %d/%d | Pages: %d | Downloaded: %.2f MB",
		m.chaptersDone,
		m.chaptersTotal,
		m.pages,
		float64(m.receivedBytes)/1024/1024,
	)))
	b.WriteString("\n\n")

	// Logs
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Download Complete!\n\n"+
			"Chapters: %d\n"+
			"Pages: %d\n"+
			"Size: %.2f MB",
		m.chaptersDone,
		m.pages,
		float64(m.receivedBytes)/1024/1024,
	))
	b.WriteString(box)

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • f: format • t: chapter titles • v: verbose • esc: quit"
	case StateInitializing, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new download • q: quit"
	}
	return ""
}

// initializeDownload fetches title info and creates the manager.
func (m *Model) initializeDownload() tea.Cmd {
	return func() tea.Msg {
		input := m.textInput.Value()

		// Apply options
		settings := config.DefaultSettings()
		settings.SaveFormat = m.format
		settings.AddChapterTitle = m.addChapterTitle

		// Create manager with progress callback
		manager := download.NewManager(settings, func(event download.ProgressEvent) {
			// Progress events are collected but not sent directly;
			// the TUI polls for progress via TickMsg.
		})

		// Initialize - this fetches title info
		if err := manager.Initialize(m.ctx, input); err != nil {
			return InitDoneMsg{Err: err}
		}

		return InitDoneMsg{
			Chapters: manager.GetChapterNames(),
			Manager:  manager,
			Err:      nil,
		}
	}
}

// startDownload starts the actual download in background.
func (m *Model) startDownload() tea.Cmd {
	return func() tea.Msg {
		if m.manager == nil {
			return DownloadDoneMsg{Err: fmt.Errorf("no manager")}
		}

		err := m.manager.StartDownloads(m.ctx)
		received, pages, done, total := m.manager.GetProgress()

		return DownloadDoneMsg{
			Received:      received,
			Pages:         pages,
			ChaptersDone:  done,
			ChaptersTotal: total,
			Err:           err,
		}
	}
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
