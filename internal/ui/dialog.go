package ui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

const (
	dialogWidthMin = 44
	dialogWidthMax = 72
	// dialogHPadding matches the Padding(1, 2) in styleDialog. The border
	// sits outside the lipgloss Width value.
	dialogHPadding = 2
	// notesMaxLines caps the release notes section.
	notesMaxLines = 12
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// Action is the button the user picked to close a dialog or banner.
type Action int

const (
	ActionDismiss Action = iota
	ActionUpdate
	ActionDoNotShowAgain
)

func (a Action) String() string {
	switch a {
	case ActionUpdate:
		return "update"
	case ActionDoNotShowAgain:
		return "do-not-show-again"
	default:
		return "dismiss"
	}
}

// PromptClosedMsg is sent when a dialog or banner closes through one of its
// buttons.
type PromptClosedMsg struct {
	Action Action
}

type urlCopiedMsg struct {
	err error
}

// DialogKeyMap lists the dialog's bindings.
type DialogKeyMap struct {
	Update         key.Binding
	Dismiss        key.Binding
	DoNotShowAgain key.Binding
	Copy           key.Binding
}

// DefaultDialogKeyMap returns the standard dialog bindings.
func DefaultDialogKeyMap() DialogKeyMap {
	return DialogKeyMap{
		Update: key.NewBinding(
			key.WithKeys("u", "enter"),
			key.WithHelp("u", "Update"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d", "esc"),
			key.WithHelp("d/esc", "Dismiss"),
		),
		DoNotShowAgain: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Don't show again"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Copy link"),
		),
	}
}

// Dialog is a modal prompt with up to three buttons.
type Dialog struct {
	prompt      Prompt
	keys        DialogKeyMap
	width       int
	renderNotes func(string) string
	notesFormat string
	copyStatus  string
	copyFailed  bool
}

// NewDialog creates a dialog for p. notesFormat selects the glamour style
// for release notes ("dark", "light", "plain").
func NewDialog(p Prompt, notesFormat string) *Dialog {
	d := &Dialog{
		prompt:      p,
		keys:        DefaultDialogKeyMap(),
		notesFormat: notesFormat,
	}
	d.SetWidth(0)
	return d
}

// Prompt returns the prompt the dialog was built from.
func (d *Dialog) Prompt() Prompt { return d.prompt }

// SetWidth sizes the dialog for a terminal termWidth cells wide.
func (d *Dialog) SetWidth(termWidth int) {
	width := dialogWidthMax
	if termWidth > 0 && termWidth-4 < width {
		width = termWidth - 4
	}
	if width < dialogWidthMin {
		width = dialogWidthMin
	}
	if width == d.width && d.renderNotes != nil {
		return
	}
	d.width = width
	d.renderNotes = buildMarkdownRenderer(d.notesFormat, d.contentWidth())
}

func (d *Dialog) contentWidth() int {
	return d.width - 2*dialogHPadding
}

// Init implements tea.Model.
func (d *Dialog) Init() tea.Cmd {
	return nil
}

// Update handles key presses and clipboard results.
func (d *Dialog) Update(msg tea.Msg) (*Dialog, tea.Cmd) {
	switch msg := msg.(type) {
	case urlCopiedMsg:
		d.copyFailed = msg.err != nil
		if msg.err != nil {
			d.copyStatus = "Copy failed: " + msg.err.Error()
		} else {
			d.copyStatus = "Link copied to clipboard."
		}
		return d, nil
	case tea.KeyMsg:
		hasUpdate := d.prompt.HasUpdate()
		switch {
		case hasUpdate && key.Matches(msg, d.keys.Update):
			return d, closeWith(ActionUpdate)
		case hasUpdate && d.prompt.DoNotShowAgainLabel != "" && key.Matches(msg, d.keys.DoNotShowAgain):
			return d, closeWith(ActionDoNotShowAgain)
		case key.Matches(msg, d.keys.Dismiss):
			return d, closeWith(ActionDismiss)
		case !hasUpdate && msg.Type == tea.KeyEnter:
			return d, closeWith(ActionDismiss)
		case d.prompt.URL != "" && key.Matches(msg, d.keys.Copy):
			return d, copyURL(d.prompt.URL)
		}
	}
	return d, nil
}

func closeWith(action Action) tea.Cmd {
	return func() tea.Msg { return PromptClosedMsg{Action: action} }
}

func copyURL(url string) tea.Cmd {
	return func() tea.Msg {
		return urlCopiedMsg{err: writeClipboard(url)}
	}
}

// View implements tea.Model.
func (d *Dialog) View() string {
	return styleDialog.Width(d.width).Render(strings.Join(d.renderLines(), "\n"))
}

func (d *Dialog) renderLines() []string {
	width := d.contentWidth()
	divider := styleDialogDivider.Render(strings.Repeat("─", width))

	title := d.prompt.Title
	if icon := strings.TrimSpace(d.prompt.Icon); icon != "" {
		title = icon + " " + title
	}

	lines := []string{styleDialogTitle.Render(title), divider, ""}
	if desc := strings.TrimSpace(d.prompt.Description); desc != "" {
		lines = append(lines, styleDialogBody.Render(wordwrap.String(desc, width)))
	}

	if notes := strings.TrimSpace(d.prompt.ReleaseNotes); notes != "" && d.prompt.HasUpdate() {
		rendered := splitLines(d.renderNotes(notes))
		if len(rendered) > notesMaxLines {
			rendered = append(rendered[:notesMaxLines], styleStatsDim.Render("…"))
		}
		lines = append(lines, "", styleSectionLabel.Render("What's new"))
		lines = append(lines, rendered...)
	}

	if d.prompt.URL != "" && d.prompt.HasUpdate() {
		lines = append(lines, "", styleDialogURL.Render(truncateLine(d.prompt.URL, width)))
	}
	if d.copyStatus != "" {
		status := styleStatsDim.Render(d.copyStatus)
		if d.copyFailed {
			status = styleErrorText.Render(d.copyStatus)
		}
		lines = append(lines, status)
	}

	lines = append(lines, "", divider, footerLine(d.hints(), width))
	return lines
}

func (d *Dialog) hints() []footerHint {
	if !d.prompt.HasUpdate() {
		return []footerHint{{"⏎", labelOr(d.prompt.DismissLabel, "OK")}}
	}
	hints := []footerHint{
		{"u", labelOr(d.prompt.UpdateLabel, "Update")},
		{"d", labelOr(d.prompt.DismissLabel, "Dismiss")},
	}
	if d.prompt.DoNotShowAgainLabel != "" {
		hints = append(hints, footerHint{"n", d.prompt.DoNotShowAgainLabel})
	}
	if d.prompt.URL != "" {
		hints = append(hints, footerHint{"c", "Copy link"})
	}
	return hints
}

func labelOr(label, fallback string) string {
	if strings.TrimSpace(label) == "" {
		return fallback
	}
	return label
}
