package appupdater

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"

	"appupdater/internal/prefs"
	"appupdater/internal/ui"
	"appupdater/internal/update"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/text/language"
)

// DefaultIcon prefixes dialog titles and notifications.
const DefaultIcon = "⬆"

// settings is the configuration a run works from. Start copies it so
// setters called during a check do not race with it.
type settings struct {
	source     Source
	display    Display
	duration   Duration
	packageID  string
	githubUser string
	githubRepo string
	xmlURL     string
	jsonURL    string

	appName        string
	installed      string
	installedCode  int
	showEvery      int
	showAppUpdated bool
	icon           string
	language       string

	titleUpdate   Text
	descUpdate    Text
	titleNoUpdate Text
	descNoUpdate  Text
	btnUpdate     Text
	btnDismiss    Text
	btnDisable    Text

	onUpdateClick  ClickListener
	onDismissClick ClickListener
	onDisableClick ClickListener

	listener   Listener
	presenter  ui.Presenter
	store      prefs.Store
	httpClient *http.Client
	timeout    time.Duration
	openURL    func(string) error
}

// Updater checks for a newer version of an application and tells the user
// about it. Configure it with the Set* methods, then call Start.
//
// Setters never panic: an invalid value is recorded and reported by Err,
// Validate and Start. Setting a valid value for the same option clears the
// recorded problem.
type Updater struct {
	mu        sync.Mutex
	cfg       settings
	problems  map[string]error
	ownsStore bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New returns an Updater with defaults: Google Play source, dialog display,
// normal snackbar duration, shown on every check, in-memory preferences,
// and prompts printed to stdout. The installed version defaults to the
// main module's version when the binary carries build info.
func New() *Updater {
	return &Updater{
		cfg: settings{
			source:    GooglePlay,
			display:   Dialog,
			duration:  Normal,
			showEvery: 1,
			icon:      DefaultIcon,
			language:  "en",
			installed: buildVersion(),
			presenter: ui.NewWriterPresenter(os.Stdout),
			store:     prefs.NewMemoryStore(),
			openURL:   openInBrowser,
		},
		problems: map[string]error{},
	}
}

func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return ""
	}
	return info.Main.Version
}

// set applies fn under the lock and records or clears the problem for
// option.
func (u *Updater) set(option string, err error, fn func(*settings)) *Updater {
	u.mu.Lock()
	defer u.mu.Unlock()
	if err != nil {
		u.problems[option] = err
		return u
	}
	delete(u.problems, option)
	if fn != nil {
		fn(&u.cfg)
	}
	return u
}

func requireText(option, value string) error {
	if strings.TrimSpace(value) == "" {
		return configError(option + " must not be empty")
	}
	return nil
}

// SetDisplay selects how results are shown.
func (u *Updater) SetDisplay(d Display) *Updater {
	var err error
	if !d.valid() {
		err = configError(fmt.Sprintf("unknown display %d", d))
	}
	return u.set("display", err, func(s *settings) { s.display = d })
}

// SetUpdateFrom selects where the latest version is read from.
func (u *Updater) SetUpdateFrom(src Source) *Updater {
	var err error
	if src.String() == "unknown" {
		err = configError(fmt.Sprintf("unknown update source %d", src))
	}
	return u.set("source", err, func(s *settings) { s.source = src })
}

// SetDuration controls how long a snackbar stays visible.
func (u *Updater) SetDuration(d Duration) *Updater {
	var err error
	if !d.valid() {
		err = configError(fmt.Sprintf("unknown duration %d", d))
	}
	return u.set("duration", err, func(s *settings) { s.duration = d })
}

// SetGitHubUserAndRepo names the repository whose latest release is read
// when the source is GitHub.
func (u *Updater) SetGitHubUserAndRepo(user, repo string) *Updater {
	user, repo = strings.TrimSpace(user), strings.TrimSpace(repo)
	var err error
	if user == "" || repo == "" {
		_, err = update.NewGitHubSource(user, repo)
	}
	return u.set("github", err, func(s *settings) {
		s.githubUser, s.githubRepo = user, repo
	})
}

// SetUpdateXML sets the URL of the XML descriptor.
func (u *Updater) SetUpdateXML(rawURL string) *Updater {
	rawURL = strings.TrimSpace(rawURL)
	return u.set("xml", update.ValidateFeedURL(rawURL), func(s *settings) { s.xmlURL = rawURL })
}

// SetUpdateJSON sets the URL of the JSON descriptor.
func (u *Updater) SetUpdateJSON(rawURL string) *Updater {
	rawURL = strings.TrimSpace(rawURL)
	return u.set("json", update.ValidateFeedURL(rawURL), func(s *settings) { s.jsonURL = rawURL })
}

// SetPackageID sets the store package name, e.g. "com.example.notes".
func (u *Updater) SetPackageID(id string) *Updater {
	id = strings.TrimSpace(id)
	return u.set("package-id", requireText("package id", id), func(s *settings) { s.packageID = id })
}

// SetAppName sets the name substituted into default texts.
func (u *Updater) SetAppName(name string) *Updater {
	name = strings.TrimSpace(name)
	return u.set("app-name", requireText("app name", name), func(s *settings) { s.appName = name })
}

// SetInstalledVersion sets the version the latest one is compared against.
func (u *Updater) SetInstalledVersion(v string) *Updater {
	v = strings.TrimSpace(v)
	return u.set("installed-version", requireText("installed version", v), func(s *settings) { s.installed = v })
}

// SetInstalledVersionCode sets the installed build number. When both it and
// the source's version code are positive they decide the comparison.
func (u *Updater) SetInstalledVersionCode(code int) *Updater {
	var err error
	if code < 0 {
		err = configError("installed version code must not be negative")
	}
	return u.set("installed-version-code", err, func(s *settings) { s.installedCode = code })
}

// ShowEvery prompts only on every nth check that finds an update.
func (u *Updater) ShowEvery(n int) *Updater {
	var err error
	if n < 1 {
		err = configError(fmt.Sprintf("show every must be at least 1, got %d", n))
	}
	return u.set("show-every", err, func(s *settings) { s.showEvery = n })
}

// ShowAppUpdated also presents a prompt when the app is up to date.
func (u *Updater) ShowAppUpdated(show bool) *Updater {
	return u.set("show-app-updated", nil, func(s *settings) { s.showAppUpdated = show })
}

func (u *Updater) setText(option string, t Text, apply func(*settings, Text)) *Updater {
	return u.set(option, t.validate(), func(s *settings) { apply(s, t) })
}

// SetDialogTitleWhenUpdateAvailable sets the dialog and notification title shown for an update.
func (u *Updater) SetDialogTitleWhenUpdateAvailable(t Text) *Updater {
	return u.setText("title-update-available", t, func(s *settings, t Text) { s.titleUpdate = t })
}

// SetDialogDescriptionWhenUpdateAvailable sets the prompt body shown for an update.
func (u *Updater) SetDialogDescriptionWhenUpdateAvailable(t Text) *Updater {
	return u.setText("description-update-available", t, func(s *settings, t Text) { s.descUpdate = t })
}

// SetDialogTitleWhenUpdateNotAvailable sets the dialog title used with ShowAppUpdated.
func (u *Updater) SetDialogTitleWhenUpdateNotAvailable(t Text) *Updater {
	return u.setText("title-update-not-available", t, func(s *settings, t Text) { s.titleNoUpdate = t })
}

// SetDialogDescriptionWhenUpdateNotAvailable sets the up-to-date prompt body.
func (u *Updater) SetDialogDescriptionWhenUpdateNotAvailable(t Text) *Updater {
	return u.setText("description-update-not-available", t, func(s *settings, t Text) { s.descNoUpdate = t })
}

// SetDialogButtonUpdate sets the label of the Update button.
func (u *Updater) SetDialogButtonUpdate(t Text) *Updater {
	return u.setText("button-update", t, func(s *settings, t Text) { s.btnUpdate = t })
}

// SetDialogButtonDismiss sets the label of the Dismiss button.
func (u *Updater) SetDialogButtonDismiss(t Text) *Updater {
	return u.setText("button-dismiss", t, func(s *settings, t Text) { s.btnDismiss = t })
}

// SetDialogButtonDoNotShowAgain sets the label of the don't-show-again button.
func (u *Updater) SetDialogButtonDoNotShowAgain(t Text) *Updater {
	return u.setText("button-do-not-show-again", t, func(s *settings, t Text) { s.btnDisable = t })
}

// SetIcon sets the glyph shown before dialog titles and notifications.
func (u *Updater) SetIcon(icon string) *Updater {
	icon = strings.TrimSpace(icon)
	return u.set("icon", requireText("icon", icon), func(s *settings) { s.icon = icon })
}

// SetLanguage selects the catalog language for default and Resource texts,
// as a BCP 47 tag. Unsupported languages fall back to English.
func (u *Updater) SetLanguage(lang string) *Updater {
	lang = strings.TrimSpace(lang)
	var err error
	if _, perr := language.Parse(lang); perr != nil {
		err = configError(fmt.Sprintf("invalid language %q: %v", lang, perr))
	}
	return u.set("language", err, func(s *settings) { s.language = lang })
}

// SetButtonUpdateClickListener replaces opening the update URL.
func (u *Updater) SetButtonUpdateClickListener(fn ClickListener) *Updater {
	return u.set("update-click", nil, func(s *settings) { s.onUpdateClick = fn })
}

// SetButtonDismissClickListener runs when the prompt is dismissed.
func (u *Updater) SetButtonDismissClickListener(fn ClickListener) *Updater {
	return u.set("dismiss-click", nil, func(s *settings) { s.onDismissClick = fn })
}

// SetButtonDoNotShowAgainClickListener replaces disabling future prompts.
func (u *Updater) SetButtonDoNotShowAgainClickListener(fn ClickListener) *Updater {
	return u.set("disable-click", nil, func(s *settings) { s.onDisableClick = fn })
}

// WithListener receives every check result. Nil removes the listener.
func (u *Updater) WithListener(l Listener) *Updater {
	return u.set("listener", nil, func(s *settings) { s.listener = l })
}

// SetPresenter replaces the surface prompts are shown on.
func (u *Updater) SetPresenter(p ui.Presenter) *Updater {
	var err error
	if p == nil {
		err = configError("presenter must not be nil")
	}
	return u.set("presenter", err, func(s *settings) { s.presenter = p })
}

// SetPreferences replaces the store for the counter and the
// don't-show-again flag. The caller keeps ownership of s.
func (u *Updater) SetPreferences(store prefs.Store) *Updater {
	var err error
	if store == nil {
		err = configError("preferences store must not be nil")
	}
	u.set("preferences", err, func(s *settings) { s.store = store })
	if err == nil {
		u.mu.Lock()
		u.ownsStore = false
		u.mu.Unlock()
	}
	return u
}

// SetHTTPClient replaces the client used for fetches.
func (u *Updater) SetHTTPClient(c *http.Client) *Updater {
	var err error
	if c == nil {
		err = configError("http client must not be nil")
	}
	return u.set("http-client", err, func(s *settings) { s.httpClient = c })
}

// SetTimeout bounds each fetch. It applies on top of SetHTTPClient without
// modifying that client.
func (u *Updater) SetTimeout(d time.Duration) *Updater {
	var err error
	if d <= 0 {
		err = configError("timeout must be positive")
	}
	return u.set("timeout", err, func(s *settings) { s.timeout = d })
}

// SetURLOpener replaces how the Update button opens the update URL.
func (u *Updater) SetURLOpener(open func(url string) error) *Updater {
	var err error
	if open == nil {
		err = configError("url opener must not be nil")
	}
	return u.set("url-opener", err, func(s *settings) { s.openURL = open })
}

// Err returns the problems recorded by setters, or nil.
func (u *Updater) Err() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.problemsLocked(nil)
}

// Validate reports every outstanding configuration problem: those recorded
// by setters plus missing settings the selected source needs. It makes no
// network calls.
func (u *Updater) Validate() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	var extra []error
	if _, reported := u.problems[sourceOption(u.cfg.source)]; !reported {
		if _, err := update.NewSource(u.cfg.sourceConfig()); err != nil {
			extra = append(extra, err)
		}
	}
	if strings.TrimSpace(u.cfg.installed) == "" {
		extra = append(extra, configError("installed version not set"))
	}
	return u.problemsLocked(extra)
}

func (u *Updater) problemsLocked(extra []error) error {
	options := make([]string, 0, len(u.problems))
	for option := range u.problems {
		options = append(options, option)
	}
	sort.Strings(options)

	var merr *multierror.Error
	for _, option := range options {
		merr = multierror.Append(merr, u.problems[option])
	}
	for _, err := range extra {
		merr = multierror.Append(merr, err)
	}
	if merr == nil {
		return nil
	}
	if len(merr.Errors) == 1 {
		return merr.Errors[0]
	}
	return merr
}

// sourceOption names the setter that configures src.
func sourceOption(src Source) string {
	switch src {
	case GitHub:
		return "github"
	case XML:
		return "xml"
	case JSON:
		return "json"
	default:
		return "package-id"
	}
}

func (s settings) sourceConfig() update.SourceConfig {
	return update.SourceConfig{
		Kind:       s.source,
		PackageID:  s.packageID,
		GitHubUser: s.githubUser,
		GitHubRepo: s.githubRepo,
		XMLURL:     s.xmlURL,
		JSONURL:    s.jsonURL,
	}
}

func (s settings) sourceOptions() []update.SourceOption {
	var opts []update.SourceOption
	if s.httpClient != nil {
		opts = append(opts, update.WithHTTPClient(s.httpClient))
	}
	if s.timeout > 0 {
		opts = append(opts, update.WithTimeout(s.timeout))
	}
	return opts
}

// appDisplayName is the name substituted into default texts.
func (s settings) appDisplayName() string {
	switch {
	case s.appName != "":
		return s.appName
	case s.source == GitHub && s.githubRepo != "":
		return s.githubRepo
	case s.packageID != "":
		return s.packageID
	default:
		return "this app"
	}
}
