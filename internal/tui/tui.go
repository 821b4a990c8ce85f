// Package tui provides a Bubble Tea terminal user interface for fabdl.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fabdl/fabdl/internal/auth"
	"github.com/fabdl/fabdl/internal/config"
	"github.com/fabdl/fabdl/internal/download"
	"github.com/fabdl/fabdl/internal/fab"
	"github.com/fabdl/fabdl/internal/manifest"
	"github.com/fabdl/fabdl/internal/model"
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

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	assetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateFetching
	StateDownloading
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Failed  bool
}

// batchProgress is shared between the download goroutine and the polling
// Update loop.
type batchProgress struct {
	mu        sync.Mutex
	completed int
	failed    int
	logs      []LogEntry
}

func (p *batchProgress) record(asset *model.Asset, status download.Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch status {
	case download.StatusCompleted:
		p.completed++
		p.logs = append(p.logs, LogEntry{Message: "downloaded " + asset.Title})
	case download.StatusFailed:
		p.failed++
		p.logs = append(p.logs, LogEntry{Message: "failed " + asset.Title, Failed: true})
	}
	if len(p.logs) > 10 {
		p.logs = p.logs[len(p.logs)-10:]
	}
}

func (p *batchProgress) snapshot() (completed, failed int, logs []LogEntry) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed, p.failed, append([]LogEntry(nil), p.logs...)
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model

	settings *config.Settings
	logs     []LogEntry
	err      error

	ctx    context.Context
	cancel context.CancelFunc

	assets      []*model.Asset
	totalAssets int
	completed   int
	failed      int
	batch       *batchProgress

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "path/to/settings.json"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		ctx:       ctx,
		cancel:    cancel,
		batch:     &batchProgress{},
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// FetchDoneMsg is sent when the library fetch completes.
	FetchDoneMsg struct {
		Assets   []*model.Asset
		Settings *config.Settings
		Client   *fab.Client
		Err      error
	}

	// DownloadDoneMsg is sent when the batch completes.
	DownloadDoneMsg struct {
		Outcomes []*download.Outcome
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
			if m.state == StateFetching || m.state == StateDownloading {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StateFetching
				return m, tea.Batch(m.fetchLibrary(m.textInput.Value()), m.spinner.Tick)
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m.state = StateInput
				m.logs = nil
				m.assets = nil
				m.err = nil
				m.completed = 0
				m.failed = 0
				m.totalAssets = 0
				m.batch = &batchProgress{}
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case FetchDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.assets = msg.Assets
			m.totalAssets = len(msg.Assets)
			m.settings = msg.Settings
			m.state = StateDownloading
			cmds = append(cmds, m.startDownload(msg.Client), m.tickProgress())
		}

	case DownloadDoneMsg:
		completed, failed, logs := m.batch.snapshot()
		m.completed = completed
		m.failed = failed
		m.logs = logs
		if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.state == StateDownloading {
			completed, failed, logs := m.batch.snapshot()
			m.completed = completed
			m.failed = failed
			m.logs = logs

			var percent float64
			if m.totalAssets > 0 {
				percent = float64(completed+failed) / float64(m.totalAssets)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// fetchLibrary loads settings and fetches the full library.
func (m *Model) fetchLibrary(settingsPath string) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		settings, err := config.Load(settingsPath)
		if err != nil {
			return FetchDoneMsg{Err: err}
		}

		provider, err := auth.NewCookieProvider(settings.ToCookieConfig())
		if err != nil {
			return FetchDoneMsg{Err: err}
		}
		client := fab.NewClient(provider, fab.WithRequestDelay(settings.RateLimitDelay()))

		library, err := client.GetLibrary(ctx, settings.SortBy)
		if err != nil {
			return FetchDoneMsg{Err: err}
		}

		return FetchDoneMsg{
			Assets:   library.Assets,
			Settings: settings,
			Client:   client,
		}
	}
}

// startDownload runs the batch in the background; progress is polled via
// TickMsg from the shared batchProgress.
func (m *Model) startDownload(client *fab.Client) tea.Cmd {
	ctx := m.ctx
	settings := m.settings
	assets := m.assets
	batch := m.batch
	return func() tea.Msg {
		manager := download.NewManager(client,
			manifest.NewJSONParser(settings.ValidateManifests),
			download.WithFormatCode(settings.FormatCode),
			download.WithPlatform(settings.Platform))

		outcomes := manager.DownloadManifests(ctx, assets, settings.OutputDir,
			func(asset *model.Asset, status download.Status) {
				batch.record(asset, status)
			})

		return DownloadDoneMsg{Outcomes: outcomes}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("📦 fabdl"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download manifests from your marketplace library"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateFetching:
		b.WriteString(m.viewFetching())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Settings file:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("The file supplies endpoint URLs, cookies and the output directory."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewFetching() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Fetching library..."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(fmt.Sprintf("Downloading %d manifest(s)", m.totalAssets)))
	b.WriteString("\n\n")

	var percent float64
	if m.totalAssets > 0 {
		percent = float64(m.completed+m.failed) / float64(m.totalAssets)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Done: %d/%d | Failed: %d",
		m.completed+m.failed,
		m.totalAssets,
		m.failed,
	)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	box := boxStyle.Render(fmt.Sprintf(
		"✨ Batch Complete!\n\n"+
			"Manifests: %d\n"+
			"Failed: %d\n"+
			"Output: %s",
		m.completed,
		m.failed,
		m.settings.OutputDir,
	))
	return box
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

	for _, entry := range m.logs {
		if entry.Failed {
			b.WriteString(errorStyle.Render("✗ " + entry.Message))
		} else {
			b.WriteString(assetStyle.Render("✓ " + entry.Message))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • esc: quit"
	case StateFetching, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new batch • q: quit"
	}
	return ""
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
