package appupdater

import appErrors "appupdater/internal/errors"

// Error is the structured error delivered to Listener.OnFailed and returned
// by the configuration methods.
type Error = appErrors.Error

// ErrorCode classifies an Error.
type ErrorCode = appErrors.Code

const (
	ErrNetworkNotAvailable   = appErrors.CodeNetworkNotAvailable
	ErrMalformedResponse     = appErrors.CodeMalformedResponse
	ErrSourceNotFound        = appErrors.CodeSourceNotFound
	ErrUpdateVariesByDevice  = appErrors.CodeUpdateVariesByDevice
	ErrMalformedURL          = appErrors.CodeMalformedURL
	ErrGitHubUserRepoInvalid = appErrors.CodeGitHubUserRepoInvalid
	ErrConfiguration         = appErrors.CodeConfigurationError
)

// CodeOf returns the ErrorCode carried by err, or "unknown".
func CodeOf(err error) ErrorCode {
	return appErrors.CodeOf(err)
}

// IsCode reports whether err carries code.
func IsCode(err error, code ErrorCode) bool {
	return appErrors.IsCode(err, code)
}

func configError(msg string) error {
	return appErrors.New(appErrors.CodeConfigurationError, msg, nil)
}
