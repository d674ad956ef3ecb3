package ui

import (
	"fmt"
	"strings"

	"appupdater/internal/ui/theme"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

var (
	styleDialog         lipgloss.Style
	styleDialogTitle    lipgloss.Style
	styleDialogDivider  lipgloss.Style
	styleDialogBody     lipgloss.Style
	styleDialogURL      lipgloss.Style
	styleSectionLabel   lipgloss.Style
	styleBanner         lipgloss.Style
	styleBannerUpToDate lipgloss.Style
	styleStatsDim       lipgloss.Style
	styleErrorText      lipgloss.Style
	styleSpinner        lipgloss.Style
	styleKeyPill        lipgloss.Style
	styleKeyDesc        lipgloss.Style
)

func init() {
	applyPalette(theme.Current())
}

// SetTheme switches prompts to a registered palette. Prompts already on
// screen pick it up on their next render.
func SetTheme(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = theme.DefaultName
	}
	if !theme.Set(name) {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(theme.Names(), ", "))
	}
	applyPalette(theme.Current())
	return nil
}

func applyPalette(p theme.Palette) {
	styleDialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)

	styleDialogTitle = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	styleDialogDivider = lipgloss.NewStyle().
		Foreground(p.Primary)

	styleDialogBody = lipgloss.NewStyle().
		Foreground(p.Text)

	styleDialogURL = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Underline(true)

	styleSectionLabel = lipgloss.NewStyle().
		Foreground(p.Muted).
		Bold(true)

	styleBanner = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Success).
		Foreground(p.Text).
		Padding(0, 1)

	styleBannerUpToDate = styleBanner.
		BorderForeground(p.Border)

	styleStatsDim = lipgloss.NewStyle().Foreground(p.Muted)
	styleErrorText = lipgloss.NewStyle().Foreground(p.Error).Bold(true)
	styleSpinner = lipgloss.NewStyle().Foreground(p.Primary)

	// Footer pills
	styleKeyPill = lipgloss.NewStyle().
		Background(p.Primary).
		Foreground(p.Text).
		Bold(true)

	styleKeyDesc = lipgloss.NewStyle().
		Foreground(p.Muted)
}

// buildMarkdownRenderer returns a glamour renderer for release notes. The
// "plain" format and renderer failures fall back to word wrapping.
func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "" || style == "rich" || style == "dark" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
