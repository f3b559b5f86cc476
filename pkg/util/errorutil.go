package util

import (
	"errors"
	"fmt"
)

// FetchFailureKind classifies why a fetch did not produce data.
type FetchFailureKind string

const (
	FetchTimeout  FetchFailureKind = "TIMEOUT"
	FetchNotFound FetchFailureKind = "NOT_FOUND"
	FetchOther    FetchFailureKind = "OTHER"
)

// ConfigError reports a missing or invalid configuration value. It is fatal
// at startup, before any network or database I/O.
type ConfigError struct {
	Key     string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config: %s: %s", e.Key, e.Message)
	}
	return "config: " + e.Message
}

// NewConfigError constructs a ConfigError for the given key.
func NewConfigError(key, message string) error {
	return &ConfigError{Key: key, Message: message}
}

// FetchError reports a failed call against the source API.
type FetchError struct {
	Kind       FetchFailureKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError wraps a transport-level failure.
func NewFetchError(kind FetchFailureKind, url string, err error) error {
	return &FetchError{Kind: kind, URL: url, Err: err}
}

// NewStatusError reports a non-2xx response.
func NewStatusError(url string, statusCode int) error {
	kind := FetchOther
	if statusCode == 404 {
		kind = FetchNotFound
	}
	return &FetchError{Kind: kind, URL: url, StatusCode: statusCode}
}

// PersistenceError reports a failed batch write. The whole batch for the
// entity was rolled back.
type PersistenceError struct {
	Entity string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Entity, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError wraps a database failure for the given entity batch.
func NewPersistenceError(entity string, err error) error {
	return &PersistenceError{Entity: entity, Err: err}
}

// IsNotFound reports whether err is a 404-class fetch failure.
func IsNotFound(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == FetchNotFound
}

// IsTimeout reports whether err is a timeout-class fetch failure.
func IsTimeout(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == FetchTimeout
}
