package main

import (
	"fmt"
	"os"
	"strings"

	"appupdater/internal/config"
	"appupdater/internal/debug"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	debug      bool
	dbPath     string
}

// flagKeys maps flags that mirror configuration keys. Only flags the user
// actually set override the loaded configuration.
var flagKeys = map[string]string{
	"debug":            config.KeyDebug,
	"db-path":          config.KeyDatabasePath,
	"source":           config.KeySource,
	"display":          config.KeyDisplay,
	"duration":         config.KeyDuration,
	"xml":              config.KeyXMLURL,
	"json":             config.KeyJSONURL,
	"package-id":       config.KeyPackageID,
	"app-name":         config.KeyAppName,
	"installed":        config.KeyInstalledVersion,
	"show-every":       config.KeyShowEvery,
	"show-app-updated": config.KeyShowAppUpdated,
	"language":         config.KeyLanguage,
	"icon":             config.KeyIcon,
	"theme":            config.KeyTheme,
}

func newRootCmd() *cobra.Command {
	var global globalFlags

	root := &cobra.Command{
		Use:   "appupdater",
		Short: "Check whether a newer version of an app has been published",
		Long: `appupdater reads the latest published version of an application from
Google Play, GitHub releases, or an XML or JSON descriptor, compares it
with the installed version and shows the result as a dialog, a banner
or a desktop notification.

Settings come from ~/.appupdater/config.yaml, the nearest
.appupdater/config.yaml, AU_* environment variables and flags,
in increasing precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var opts []config.Option
			if global.configPath != "" {
				opts = append(opts, config.WithProjectConfig(global.configPath))
			}
			if err := config.Initialize(opts...); err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			overrides, err := flagOverrides(cmd)
			if err != nil {
				return err
			}
			if err := config.ApplyOverrides(overrides); err != nil {
				return fmt.Errorf("apply flags: %w", err)
			}
			return debug.Init(config.GetBool(config.KeyDebug))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			debug.Close()
		},
	}

	root.PersistentFlags().StringVar(&global.configPath, "config", "", "Path to a config file (default: nearest .appupdater/config.yaml)")
	root.PersistentFlags().BoolVar(&global.debug, "debug", false, "Write a debug log to ~/.appupdater/debug.log")
	root.PersistentFlags().StringVar(&global.dbPath, "db-path", "", `Preferences database (":memory:" keeps nothing)`)

	root.AddCommand(
		checkCmd(),
		resetCmd(),
		versionCmd(),
	)
	return root
}

// flagOverrides collects the explicitly set flags of cmd as configuration
// overrides.
func flagOverrides(cmd *cobra.Command) (map[string]any, error) {
	overrides := map[string]any{}
	flags := cmd.Flags()
	for name, key := range flagKeys {
		if !flags.Changed(name) {
			continue
		}
		overrides[key] = flags.Lookup(name).Value.String()
	}
	if flags.Lookup("github") != nil && flags.Changed("github") {
		user, repo, err := splitGitHubRepo(flags.Lookup("github").Value.String())
		if err != nil {
			return nil, err
		}
		overrides[config.KeyGitHubUser] = user
		overrides[config.KeyGitHubRepo] = repo
		if !flags.Changed("source") {
			overrides[config.KeySource] = "github"
		}
	}
	return overrides, nil
}

func splitGitHubRepo(v string) (user, repo string, err error) {
	user, repo, ok := strings.Cut(strings.TrimSpace(v), "/")
	user, repo = strings.TrimSpace(user), strings.TrimSpace(repo)
	if !ok || user == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("--github wants user/repo, got %q", v)
	}
	return user, repo, nil
}
