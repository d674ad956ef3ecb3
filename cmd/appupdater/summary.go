package main

import (
	"fmt"
	"io"
	"time"

	"appupdater/internal/config"
	"appupdater/internal/ui/theme"
	"appupdater/pkg/appupdater"

	"github.com/charmbracelet/lipgloss"
)

// checkSummary is printed after a check finishes or is abandoned.
type checkSummary struct {
	AppName  string
	Update   appupdater.Update
	Err      error
	Finished bool
	Elapsed  time.Duration
}

func printCheckSummary(w io.Writer, s checkSummary) {
	p := theme.Current()
	appStyle := lipgloss.NewStyle().Bold(true).Foreground(p.Primary)
	dimStyle := lipgloss.NewStyle().Foreground(p.Muted)

	header := appStyle.Render(s.AppName)
	if s.Finished && s.Err == nil {
		header += dimStyle.Render(fmt.Sprintf(" • %s • %s", s.Update.Source, formatDuration(s.Elapsed)))
	}
	_, _ = fmt.Fprintln(w, header)
	_, _ = fmt.Fprintln(w, summaryLine(s))
}

func summaryLine(s checkSummary) string {
	p := theme.Current()
	switch {
	case s.Err != nil:
		return lipgloss.NewStyle().Foreground(p.Error).
			Render(fmt.Sprintf("Check failed [%s]: %v", appupdater.CodeOf(s.Err), s.Err))
	case !s.Finished:
		return lipgloss.NewStyle().Foreground(p.Muted).Render("Check cancelled")
	case s.Update.Available:
		return lipgloss.NewStyle().Foreground(p.Warning).
			Render(fmt.Sprintf("Update available: %s → %s", s.Update.InstalledVersion, s.Update.LatestVersion))
	default:
		return lipgloss.NewStyle().Foreground(p.Success).
			Render(fmt.Sprintf("Up to date: %s", s.Update.InstalledVersion))
	}
}

// appNameFromConfig names the checked app the way prompts do.
func appNameFromConfig() string {
	if name := config.GetString(config.KeyAppName); name != "" {
		return name
	}
	if repo := config.GetString(config.KeyGitHubRepo); repo != "" {
		return repo
	}
	if id := config.GetString(config.KeyPackageID); id != "" {
		return id
	}
	return "appupdater"
}

// formatDuration formats short check durations.
func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		if secs == 0 {
			return fmt.Sprintf("%dm", mins)
		}
		return fmt.Sprintf("%dm %ds", mins, secs)
	}
}
