package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const dispatchBuffer = 8

type dispatchMsg struct {
	fn func()
}

// Model hosts update prompts inside a bubbletea program. It implements
// Presenter: functions passed to Dispatch run inside Update, so prompts and
// listeners only ever touch UI state from the event loop.
type Model struct {
	width  int
	height int

	spinner  spinner.Model
	checking bool
	status   string
	body     func() string

	dialog      *Dialog
	banner      *Banner
	bannerSeq   int
	notifier    *Notifier
	notesFormat string

	dispatch  chan func()
	done      chan struct{}
	closeOnce sync.Once
	pending   []tea.Cmd

	quitWhenIdle bool
	finished     bool
	lastAction   Action
	closed       bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithNotesFormat selects the glamour style for release notes.
func WithNotesFormat(format string) ModelOption {
	return func(m *Model) { m.notesFormat = format }
}

// WithNotifier replaces the terminal notifier.
func WithNotifier(n *Notifier) ModelOption {
	return func(m *Model) { m.notifier = n }
}

// WithBody renders host content underneath the prompts.
func WithBody(view func() string) ModelOption {
	return func(m *Model) { m.body = view }
}

// QuitWhenIdle makes the program exit once Finish has been called and no
// dialog or banner is visible.
func QuitWhenIdle() ModelOption {
	return func(m *Model) { m.quitWhenIdle = true }
}

// NewModel creates a host model in the "checking" state.
func NewModel(opts ...ModelOption) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styleSpinner
	m := &Model{
		spinner:  sp,
		checking: true,
		dispatch: make(chan func(), dispatchBuffer),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.notifier == nil {
		m.notifier = NewNotifier(nil)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForDispatch())
}

// Dispatch queues fn to run on the event loop. Calls after Close are
// dropped.
func (m *Model) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	select {
	case <-m.done:
		return
	default:
	}
	select {
	case m.dispatch <- fn:
	case <-m.done:
	}
}

// Close stops accepting dispatched work. Safe to call more than once.
func (m *Model) Close() {
	m.closeOnce.Do(func() { close(m.done) })
}

func (m *Model) waitForDispatch() tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-m.dispatch:
			return dispatchMsg{fn: fn}
		case <-m.done:
			return nil
		}
	}
}

// ShowDialog opens a modal dialog, replacing any visible prompt.
func (m *Model) ShowDialog(p Prompt) {
	m.checking = false
	m.banner = nil
	m.dialog = NewDialog(p, m.notesFormat)
	m.dialog.SetWidth(m.width)
}

// ShowBanner opens a toast, replacing any visible prompt.
func (m *Model) ShowBanner(p Prompt) {
	m.checking = false
	m.dialog = nil
	m.bannerSeq++
	m.banner = NewBanner(m.bannerSeq, p)
	if cmd := m.banner.Init(); cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

// ShowNotification posts a desktop notification and records it in the
// status line.
func (m *Model) ShowNotification(p Prompt) {
	m.checking = false
	m.notifier.Notify(p)
	m.status = strings.TrimSpace(p.Title)
}

// Dismiss closes any visible prompt without running its callbacks.
func (m *Model) Dismiss() {
	m.dialog = nil
	m.banner = nil
}

// Finish marks the check as complete and sets the status line.
func (m *Model) Finish(status string) {
	m.checking = false
	m.finished = true
	if status != "" {
		m.status = status
	}
}

// SetStatus replaces the status line.
func (m *Model) SetStatus(status string) {
	m.status = status
}

// Dialog returns the visible dialog, if any.
func (m *Model) Dialog() *Dialog { return m.dialog }

// Banner returns the visible banner, if any.
func (m *Model) Banner() *Banner { return m.banner }

// LastAction reports the button that closed the most recent prompt.
func (m *Model) LastAction() (Action, bool) { return m.lastAction, m.closed }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.dialog != nil {
			m.dialog.SetWidth(m.width)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.checking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case dispatchMsg:
		msg.fn()
		cmds := append(m.takePending(), m.waitForDispatch())
		return m, tea.Batch(append(cmds, m.quitIfIdle())...)

	case PromptClosedMsg:
		return m, m.closePrompt(msg.Action)

	case bannerTickMsg:
		if m.banner == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.banner, cmd = m.banner.Update(msg)
		return m, cmd

	case bannerExpiredMsg:
		if m.banner != nil && m.banner.id == msg.id {
			m.banner = nil
		}
		return m, m.quitIfIdle()

	case urlCopiedMsg:
		if m.dialog != nil {
			var cmd tea.Cmd
			m.dialog, cmd = m.dialog.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Close()
			return m, tea.Quit
		}
		if m.dialog != nil {
			var cmd tea.Cmd
			m.dialog, cmd = m.dialog.Update(msg)
			return m, cmd
		}
		if m.banner != nil {
			var cmd tea.Cmd
			m.banner, cmd = m.banner.Update(msg)
			if cmd != nil {
				return m, cmd
			}
		}
		if msg.String() == "q" && !m.checking {
			m.Close()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) takePending() []tea.Cmd {
	cmds := m.pending
	m.pending = nil
	return cmds
}

// closePrompt clears the visible prompt and runs the callback for action.
func (m *Model) closePrompt(action Action) tea.Cmd {
	var p Prompt
	switch {
	case m.dialog != nil:
		p = m.dialog.Prompt()
		m.dialog = nil
	case m.banner != nil:
		p = m.banner.Prompt()
		m.banner = nil
	default:
		return nil
	}
	m.lastAction, m.closed = action, true

	switch action {
	case ActionUpdate:
		call(p.OnUpdate)
	case ActionDoNotShowAgain:
		call(p.OnDoNotShowAgain)
	default:
		call(p.OnDismiss)
	}
	return tea.Batch(append(m.takePending(), m.quitIfIdle())...)
}

func (m *Model) quitIfIdle() tea.Cmd {
	if !m.quitWhenIdle || !m.finished || m.dialog != nil || m.banner != nil {
		return nil
	}
	m.Close()
	return tea.Quit
}

// View implements tea.Model.
func (m *Model) View() string {
	base := m.statusLine()
	if m.body != nil {
		base = m.body() + "\n" + base
	}

	if m.width <= 0 || m.height <= 0 {
		parts := []string{base}
		if m.dialog != nil {
			parts = append(parts, m.dialog.View())
		}
		if m.banner != nil {
			parts = append(parts, m.banner.View())
		}
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	canvas := NewCanvas(m.width, m.height)
	canvas.DrawStringAt(0, 0, base)
	if m.dialog != nil {
		canvas.centerOverlay(m.dialog.View())
	}
	if m.banner != nil {
		canvas.bottomRightOverlay(m.banner.View(), 1)
	}
	return canvas.Render()
}

func (m *Model) statusLine() string {
	if m.checking {
		return m.spinner.View() + " Checking for updates…"
	}
	return styleStatsDim.Render(m.status)
}
