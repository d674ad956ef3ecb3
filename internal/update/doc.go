// Package update provides version discovery and comparison.
//
// This package handles:
//   - Fetching the latest published version from Google Play, GitHub
//     releases, or a custom XML/JSON descriptor
//   - Parsing version strings into numeric components and comparing them
//   - Classifying fetch failures into the codes of internal/errors
//
// The package is isolated from UI concerns. It returns structured data
// (Update, Result) that presenters can show however they want.
//
// Example usage:
//
//	src, err := update.NewSource(update.SourceConfig{
//	    Kind:       update.SourceGitHub,
//	    GitHubUser: "owner",
//	    GitHubRepo: "repo",
//	})
//	if err != nil {
//	    // misconfiguration, no request was made
//	}
//	res, err := update.NewChecker(src).Check(ctx, "1.4.0", 0)
//	if err == nil && res.Available {
//	    // notify the user
//	}
package update
