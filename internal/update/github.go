package update

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	appErrors "appupdater/internal/errors"
)

const defaultGitHubAPI = "https://api.github.com"

// ReleaseInfo contains information about a GitHub release.
type ReleaseInfo struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Body        string    `json:"body"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
	Prerelease  bool      `json:"prerelease"`
	Draft       bool      `json:"draft"`
}

// GitHubSource reads the latest release of user/repo.
type GitHubSource struct {
	fetcher
	user    string
	repo    string
	apiBase string
}

// NewGitHubSource creates a source for the given repository. Releases must be
// tagged vX.Y.Z or X.Y.Z.
func NewGitHubSource(user, repo string, opts ...SourceOption) (*GitHubSource, error) {
	user = strings.TrimSpace(user)
	repo = strings.TrimSpace(repo)
	if user == "" || repo == "" {
		return nil, appErrors.New(appErrors.CodeGitHubUserRepoInvalid, "github source requires both user and repo", nil)
	}
	return &GitHubSource{
		fetcher: newFetcher(opts),
		user:    user,
		repo:    repo,
		apiBase: defaultGitHubAPI,
	}, nil
}

// Kind implements Source.
func (s *GitHubSource) Kind() SourceKind { return SourceGitHub }

// Fetch implements Source.
func (s *GitHubSource) Fetch(ctx context.Context) (Update, error) {
	release, err := s.fetchLatestRelease(ctx)
	if err != nil {
		return Update{}, err
	}
	if strings.TrimSpace(release.TagName) == "" {
		return Update{}, malformed("latest release of %s/%s has no tag", s.user, s.repo)
	}

	link := release.HTMLURL
	if link == "" {
		link = fmt.Sprintf("https://github.com/%s/%s/releases", s.user, s.repo)
	}
	return newUpdate(strings.TrimPrefix(release.TagName, "v"), 0, release.Body, link), nil
}

// fetchLatestRelease fetches the latest release from GitHub API.
func (s *GitHubSource) fetchLatestRelease(ctx context.Context) (*ReleaseInfo, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", s.apiBase, s.user, s.repo)

	body, err := s.get(ctx, url, "application/vnd.github.v3+json")
	if err != nil {
		if appErrors.IsCode(err, appErrors.CodeSourceNotFound) {
			return nil, appErrors.New(appErrors.CodeSourceNotFound,
				fmt.Sprintf("github repository %s/%s has no published releases", s.user, s.repo), err)
		}
		return nil, err
	}

	var release ReleaseInfo
	if err := json.Unmarshal(body, &release); err != nil {
		return nil, appErrors.New(appErrors.CodeMalformedResponse, "decode github release", err)
	}
	return &release, nil
}
