package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const bannerMinWidth = 30

type bannerTickMsg struct {
	id int
}

// bannerExpiredMsg is sent once a timed banner runs out.
type bannerExpiredMsg struct {
	id int
}

func scheduleBannerTick(id int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return bannerTickMsg{id: id}
	})
}

// Banner is a transient toast anchored to the bottom-right corner. It counts
// down when the prompt has a duration and otherwise stays until dismissed.
type Banner struct {
	id      int
	prompt  Prompt
	started time.Time
	now     func() time.Time
	update  key.Binding
	dismiss key.Binding
}

// NewBanner creates a banner for p. id tags its ticks so a replaced banner's
// timers are ignored.
func NewBanner(id int, p Prompt) *Banner {
	return &Banner{
		id:      id,
		prompt:  p,
		started: time.Now(),
		now:     time.Now,
		update:  key.NewBinding(key.WithKeys("u")),
		dismiss: key.NewBinding(key.WithKeys("x", "esc")),
	}
}

// Prompt returns the prompt the banner was built from.
func (b *Banner) Prompt() Prompt { return b.prompt }

// Init starts the countdown for timed banners.
func (b *Banner) Init() tea.Cmd {
	if b.prompt.Duration <= 0 {
		return nil
	}
	return scheduleBannerTick(b.id)
}

// Remaining reports the whole seconds left, or -1 for an indefinite banner.
func (b *Banner) Remaining() int {
	if b.prompt.Duration <= 0 {
		return -1
	}
	left := b.prompt.Duration - b.now().Sub(b.started)
	if left <= 0 {
		return 0
	}
	return int((left + time.Second - 1) / time.Second)
}

// Update handles ticks and the banner's own keys.
func (b *Banner) Update(msg tea.Msg) (*Banner, tea.Cmd) {
	switch msg := msg.(type) {
	case bannerTickMsg:
		if msg.id != b.id {
			return b, nil
		}
		if b.Remaining() == 0 {
			id := b.id
			return b, func() tea.Msg { return bannerExpiredMsg{id: id} }
		}
		return b, scheduleBannerTick(b.id)
	case tea.KeyMsg:
		switch {
		case b.prompt.HasUpdate() && key.Matches(msg, b.update):
			return b, closeWith(ActionUpdate)
		case key.Matches(msg, b.dismiss):
			return b, closeWith(ActionDismiss)
		}
	}
	return b, nil
}

// View renders the toast body.
func (b *Banner) View() string {
	message := b.prompt.Description
	if strings.TrimSpace(message) == "" {
		message = b.prompt.Title
	}
	if icon := strings.TrimSpace(b.prompt.Icon); icon != "" {
		message = icon + " " + message
	}

	var hint string
	if b.prompt.HasUpdate() {
		hint = keyPill("u", labelOr(b.prompt.UpdateLabel, "Update"))
	}
	countdown := ""
	if r := b.Remaining(); r >= 0 {
		countdown = styleStatsDim.Render(fmt.Sprintf("[%ds]", r))
	}

	toastWidth := lipgloss.Width(message)
	if toastWidth < bannerMinWidth {
		toastWidth = bannerMinWidth
	}
	padding := toastWidth - lipgloss.Width(hint) - lipgloss.Width(countdown)
	if padding < 1 {
		padding = 1
	}
	content := message
	if hint != "" || countdown != "" {
		content += "\n" + hint + strings.Repeat(" ", padding) + countdown
	}

	style := styleBanner
	if !b.prompt.HasUpdate() {
		style = styleBannerUpToDate
	}
	return style.Render(content)
}
