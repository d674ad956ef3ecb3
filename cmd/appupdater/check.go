package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"appupdater/internal/config"
	"appupdater/internal/ui"
	"appupdater/pkg/appupdater"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type checkOptions struct {
	plain       bool
	timeout     time.Duration
	notesFormat string
}

type programRunner interface {
	Run() (tea.Model, error)
}

type programFactory func(*ui.Model) programRunner

func checkCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check for a newer version and show the result",
		Long: `Fetch the latest published version and compare it with the installed one.

Examples:
  appupdater check --github acme/notes --installed 1.4.0
  appupdater check --json https://example.com/notes.json --display snackbar
  appupdater check --package-id com.acme.notes --installed 1.4.0 --plain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), opts, cmd.OutOrStdout(), func(m *ui.Model) programRunner {
				return tea.NewProgram(m)
			})
		},
	}

	f := cmd.Flags()
	f.String("source", "", "Where to read the latest version: google-play, github, xml or json")
	f.String("display", "", "How to show the result: dialog, snackbar, notification or silent")
	f.String("duration", "", "Snackbar lifetime: normal or indefinite")
	f.String("github", "", "GitHub repository as user/repo (implies --source github)")
	f.String("xml", "", "URL of an XML update descriptor")
	f.String("json", "", "URL of a JSON update descriptor")
	f.String("package-id", "", "Google Play package name")
	f.String("app-name", "", "Application name used in messages")
	f.String("installed", "", "Installed version to compare against")
	f.Int("show-every", 1, "Only prompt on every Nth check that finds an update")
	f.Bool("show-app-updated", false, "Also prompt when already up to date")
	f.String("language", "", "Message language as a BCP 47 tag")
	f.String("icon", "", "Glyph shown before titles")
	f.String("theme", "", "Prompt colors: default, dracula, gruvbox, nord or solarized")
	f.BoolVar(&opts.plain, "plain", false, "Print the result instead of running the terminal UI")
	f.DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout for the check (default 5s)")
	f.StringVar(&opts.notesFormat, "notes-format", "rich", "Release notes style: rich, light or plain")

	return cmd
}

// checkOutcome is what the listener saw. Guarded because the listener runs
// on the presenter's goroutine.
type checkOutcome struct {
	mu      sync.Mutex
	update  appupdater.Update
	err     error
	done    bool
	started time.Time
}

func (o *checkOutcome) succeed(u appupdater.Update) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.update, o.done = u, true
}

func (o *checkOutcome) fail(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.err, o.done = err, true
}

func (o *checkOutcome) summary(appName string) checkSummary {
	o.mu.Lock()
	defer o.mu.Unlock()
	return checkSummary{
		AppName:  appName,
		Update:   o.update,
		Err:      o.err,
		Finished: o.done,
		Elapsed:  time.Since(o.started),
	}
}

func runCheck(ctx context.Context, opts checkOptions, out io.Writer, factory programFactory) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ui.SetTheme(config.GetString(config.KeyTheme)); err != nil {
		return err
	}
	u, err := appupdater.FromConfig(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = u.Close() }()

	if opts.timeout > 0 {
		u.SetTimeout(opts.timeout)
	}

	outcome := &checkOutcome{started: time.Now()}
	if opts.plain {
		err = runPlain(ctx, u, outcome, out)
	} else {
		err = runInteractive(ctx, u, outcome, opts, factory)
	}
	if err != nil {
		return err
	}

	s := outcome.summary(appNameFromConfig())
	printCheckSummary(out, s)
	return s.Err
}

func runPlain(ctx context.Context, u *appupdater.Updater, outcome *checkOutcome, out io.Writer) error {
	u.SetPresenter(appupdater.NewWriterPresenter(out)).
		WithListener(appupdater.ListenerFuncs{Success: outcome.succeed, Failed: outcome.fail})
	if err := u.Start(ctx); err != nil {
		return err
	}
	u.Wait()
	return nil
}

func runInteractive(ctx context.Context, u *appupdater.Updater, outcome *checkOutcome, opts checkOptions, factory programFactory) error {
	if factory == nil {
		return fmt.Errorf("program factory is nil")
	}
	model := ui.NewModel(ui.QuitWhenIdle(), ui.WithNotesFormat(opts.notesFormat), ui.WithNotifier(ui.NewNotifier(os.Stderr)))
	defer model.Close()

	u.SetPresenter(model).WithListener(appupdater.ListenerFuncs{
		Success: func(up appupdater.Update) {
			outcome.succeed(up)
			model.Finish(statusLine(up))
		},
		Failed: func(err error) {
			outcome.fail(err)
			model.Finish("Update check failed: " + err.Error())
		},
	})
	if err := u.Start(ctx); err != nil {
		return err
	}

	prog := factory(model)
	if prog == nil {
		return fmt.Errorf("program is nil")
	}
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("run UI: %w", err)
	}
	model.Close()
	u.Stop()
	return nil
}

func statusLine(up appupdater.Update) string {
	if up.Available {
		return fmt.Sprintf("Version %s is available (installed %s)", up.LatestVersion, up.InstalledVersion)
	}
	return fmt.Sprintf("Up to date (%s)", strings.TrimSpace(up.InstalledVersion))
}
