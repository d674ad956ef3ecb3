package errors

import "errors"

// Code identifies a structured error type used across the application.
type Code string

const (
	CodeUnknown Code = "unknown"

	// Fetch failures
	CodeNetworkNotAvailable  Code = "network_not_available"
	CodeMalformedResponse    Code = "malformed_response"
	CodeSourceNotFound       Code = "source_not_found"
	CodeUpdateVariesByDevice Code = "update_varies_by_device"

	// Setup failures
	CodeMalformedURL          Code = "malformed_url"
	CodeGitHubUserRepoInvalid Code = "github_user_repo_invalid"
	CodeConfigurationError    Code = "configuration_error"
)

// Error represents a structured error with a machine-readable code plus message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// Is matches another structured error by code, so sentinel values built with
// New can be used with errors.Is.
func (e Error) Is(target error) bool {
	var other Error
	if !errors.As(target, &other) {
		return false
	}
	return other.Code == e.Code && other.Message == "" && other.Err == nil
}

// New wraps an error with a code/message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// CodeOf walks the error chain and returns the first structured code found.
func CodeOf(err error) Code {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	return CodeUnknown
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// IsSetup reports whether the code describes a misconfiguration rather than a
// failed fetch.
func (c Code) IsSetup() bool {
	switch c {
	case CodeMalformedURL, CodeGitHubUserRepoInvalid, CodeConfigurationError:
		return true
	default:
		return false
	}
}
