package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusErrorClassification(t *testing.T) {
	notFound := NewStatusError("http://api/things", 404)
	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsTimeout(notFound))

	serverErr := NewStatusError("http://api/things", 500)
	assert.False(t, IsNotFound(serverErr))
	assert.Contains(t, serverErr.Error(), "status 500")
}

func TestFetchErrorTimeout(t *testing.T) {
	timeout := NewFetchError(FetchTimeout, "http://api/slow", errors.New("deadline exceeded"))
	assert.True(t, IsTimeout(timeout))
	assert.False(t, IsNotFound(timeout))
}

func TestClassifiersSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("fetching item 7: %w", NewStatusError("http://api/items/7", 404))
	assert.True(t, IsNotFound(wrapped))

	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsTimeout(nil))
}

func TestFetchErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewFetchError(FetchOther, "http://api", cause)
	assert.ErrorIs(t, err, cause)
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("SOURCE_API_TOKEN", "required")
	assert.Contains(t, err.Error(), "SOURCE_API_TOKEN")

	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("unique violation")
	err := NewPersistenceError("employees", cause)
	assert.Contains(t, err.Error(), "employees")
	assert.ErrorIs(t, err, cause)
}
