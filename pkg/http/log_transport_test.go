package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactHeadersMasksAuthorization(t *testing.T) {
	headers := http.Header{}
	headers.Set("Authorization", "Bearer secret-api-key")
	headers.Set("Content-Type", "application/json")

	redacted := redactHeaders(headers)

	assert.Equal(t, "[REDACTED]", redacted.Get("Authorization"))
	assert.Equal(t, "application/json", redacted.Get("Content-Type"))
	// The original request headers stay untouched.
	assert.Equal(t, "Bearer secret-api-key", headers.Get("Authorization"))
}

func TestRedactHeadersWithoutAuthorization(t *testing.T) {
	headers := http.Header{}
	headers.Set("Accept", "application/json")

	redacted := redactHeaders(headers)

	assert.Empty(t, redacted.Get("Authorization"))
	assert.Equal(t, "application/json", redacted.Get("Accept"))
}
