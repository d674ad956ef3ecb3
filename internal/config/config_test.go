package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitializeLoadsDefaults(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	userCfg := filepath.Join(tmp, "user.yaml")

	if err := Initialize(WithWorkingDir(tmp), WithUserConfig(userCfg)); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetString(KeySource); got != "google-play" {
		t.Fatalf("expected default %s to be google-play, got %q", KeySource, got)
	}
	if got := GetString(KeyDisplay); got != "dialog" {
		t.Fatalf("expected default %s to be dialog, got %q", KeyDisplay, got)
	}
	if got := GetInt(KeyShowEvery); got != DefaultShowEvery {
		t.Fatalf("expected default %s to be %d, got %d", KeyShowEvery, DefaultShowEvery, got)
	}
	if GetBool(KeyShowAppUpdated) {
		t.Fatalf("expected default %s to be false", KeyShowAppUpdated)
	}
	if got := GetString(KeyDatabasePath); got != "" {
		t.Fatalf("expected default %s to be empty, got %q", KeyDatabasePath, got)
	}
	if IsSet(KeyGitHubUser) {
		t.Fatalf("expected %s to be unset", KeyGitHubUser)
	}
}

func TestProjectConfigOverridesUser(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "repo")
	nested := filepath.Join(projectDir, "sub", "dir")
	mustMkdir(t, nested)
	projectCfg := filepath.Join(projectDir, ".appupdater", "config.yaml")
	writeFile(t, projectCfg, `
source: github
github:
  user: project-user
  repo: project-repo
show-every: 3
`)

	userCfg := filepath.Join(tmp, "user.yaml")
	writeFile(t, userCfg, `
source: xml
xml:
  url: https://example.com/update.xml
github:
  user: user-user
show-every: 5
display: snackbar
`)

	if err := Initialize(
		WithWorkingDir(nested),
		WithUserConfig(userCfg),
	); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if got := GetString(KeySource); got != "github" {
		t.Fatalf("expected project config to win for %s, got %q", KeySource, got)
	}
	if got := GetString(KeyGitHubUser); got != "project-user" {
		t.Fatalf("expected project github user, got %q", got)
	}
	if got := GetInt(KeyShowEvery); got != 3 {
		t.Fatalf("expected project show-every 3, got %d", got)
	}
	if got := GetString(KeyDisplay); got != "snackbar" {
		t.Fatalf("expected user display to survive merge, got %q", got)
	}
	if got := GetString(KeyXMLURL); got != "https://example.com/update.xml" {
		t.Fatalf("expected user xml url to survive merge, got %q", got)
	}
}

func TestEnvironmentAndOverridesPrecedence(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	projectDir := filepath.Join(tmp, "repo")
	projectCfg := filepath.Join(projectDir, ".appupdater", "config.yaml")
	writeFile(t, projectCfg, `
display: dialog
show-app-updated: false
database:
  path: /project/prefs.db
`)

	t.Setenv("AU_SHOW_APP_UPDATED", "true")
	t.Setenv("AU_DATABASE_PATH", "/env/prefs.db")

	if err := Initialize(
		WithWorkingDir(projectDir),
		WithProjectConfig(projectCfg),
		WithUserConfig(filepath.Join(tmp, "missing.yaml")),
	); err != nil {
		t.Fatalf("Initialize returned error: %v", err)
	}

	if !GetBool(KeyShowAppUpdated) {
		t.Fatalf("expected environment variable to override %s", KeyShowAppUpdated)
	}
	if got := GetString(KeyDatabasePath); got != "/env/prefs.db" {
		t.Fatalf("expected env override for %s, got %q", KeyDatabasePath, got)
	}

	overrides := map[string]any{
		KeyShowAppUpdated: false,
		KeyDisplay:        "silent",
	}
	if err := ApplyOverrides(overrides); err != nil {
		t.Fatalf("ApplyOverrides returned error: %v", err)
	}

	if GetBool(KeyShowAppUpdated) {
		t.Fatalf("expected CLI override to set %s=false", KeyShowAppUpdated)
	}
	if got := GetString(KeyDisplay); got != "silent" {
		t.Fatalf("expected override for %s = silent, got %q", KeyDisplay, got)
	}
}

func TestInitializeRejectsDirectoryConfig(t *testing.T) {
	reset()
	t.Cleanup(reset)

	tmp := t.TempDir()
	mustMkdir(t, filepath.Join(tmp, ".appupdater", "config.yaml"))

	err := Initialize(WithWorkingDir(tmp), WithUserConfig(filepath.Join(tmp, "user.yaml")))
	if err == nil {
		t.Fatal("expected error for directory config path")
	}
	if !strings.Contains(err.Error(), "is a directory") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestResetForTesting(t *testing.T) {
	cleanup := ResetForTesting(t)
	defer cleanup()

	if err := Set(KeyAppName, "Notes"); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if got := GetString(KeyAppName); got != "Notes" {
		t.Fatalf("expected app name Notes, got %q", got)
	}
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	mustMkdir(t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}
