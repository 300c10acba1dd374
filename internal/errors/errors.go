// Package errors provides custom error types for the roleplay chat client.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common cases
var (
	ErrMissingEnv    = errors.New("missing environment variables")
	ErrInvalidEnv    = errors.New("invalid environment variable")
	ErrCharacterLoad = errors.New("failed to load character")
	ErrEmptyUserName = errors.New("name cannot be empty")
)

// ConfigError represents a missing or malformed environment setting.
type ConfigError struct {
	Vars    []string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Missing environment variables: %s", strings.Join(e.Vars, ", "))
}

// Is allows comparison with sentinel errors
func (e *ConfigError) Is(target error) bool {
	if target == ErrMissingEnv {
		return e.Err == nil
	}
	if target == ErrInvalidEnv {
		return e.Err != nil
	}
	_, ok := target.(*ConfigError)
	return ok
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewMissingEnvError reports every required variable that is unset or empty.
func NewMissingEnvError(vars ...string) *ConfigError {
	return &ConfigError{Vars: vars}
}

// NewInvalidEnvError reports a variable whose value could not be parsed.
func NewInvalidEnvError(name, message string, cause error) *ConfigError {
	if cause == nil {
		cause = ErrInvalidEnv
	}
	return &ConfigError{Vars: []string{name}, Message: message, Err: cause}
}

// CharacterError represents a character file that could not be read or parsed
type CharacterError struct {
	Path string
	Err  error
}

func (e *CharacterError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot load %s", e.Path)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Is allows comparison with sentinel errors
func (e *CharacterError) Is(target error) bool {
	if target == ErrCharacterLoad {
		return true
	}
	_, ok := target.(*CharacterError)
	return ok
}

func (e *CharacterError) Unwrap() error {
	return e.Err
}

// NewCharacterError creates a new CharacterError
func NewCharacterError(path string, err error) *CharacterError {
	return &CharacterError{Path: path, Err: err}
}

// StreamError wraps a failure while opening or consuming a completion stream.
type StreamError struct {
	Model string
	// Opening is true when the request itself failed, false when the stream
	// broke after it was established.
	Opening bool
	Err     error
}

func (e *StreamError) Error() string {
	if e.Err == nil {
		return "stream failed"
	}
	return e.Err.Error()
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// NewStreamError creates a new StreamError
func NewStreamError(model string, opening bool, err error) *StreamError {
	return &StreamError{Model: model, Opening: opening, Err: err}
}

// HTTPStatusError is implemented by transport errors that carry a status code.
type HTTPStatusError interface {
	error
	StatusCode() int
}

// IsConfigError reports whether err is a configuration error
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// IsCharacterError reports whether err is a character load error
func IsCharacterError(err error) bool {
	var ce *CharacterError
	return errors.As(err, &ce)
}

// AsStreamError returns the StreamError in err's chain, if any.
func AsStreamError(err error) (*StreamError, bool) {
	var se *StreamError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// GetEnvVars returns the environment variables named by a ConfigError, if any.
func GetEnvVars(err error) []string {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Vars
	}
	return nil
}

// GetHTTPStatus extracts the HTTP status code from an error chain, or 0.
func GetHTTPStatus(err error) int {
	var se HTTPStatusError
	if errors.As(err, &se) {
		return se.StatusCode()
	}
	return 0
}
