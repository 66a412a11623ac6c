package http

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseRequest_UndeclaredBodyIsBounded verifies silent truncation without Content-Length.
func TestParseRequest_UndeclaredBodyIsBounded(t *testing.T) {
	body := bytes.Repeat([]byte("a"), MaxUndeclaredBodyBytes+500)
	raw := append([]byte("POST /upload HTTP/1.1\r\nHost: x\r\n\r\n"), body...)

	req, err := ParseRequest(raw)
	require.NoError(t, err)
	require.Len(t, req.Body, 10240)
	require.Empty(t, req.Warnings)
}

// TestParseRequest_UndeclaredBodyBelowBound verifies short bodies are kept whole.
func TestParseRequest_UndeclaredBodyBelowBound(t *testing.T) {
	req, err := ParseRequest([]byte("POST / HTTP/1.1\r\n\r\nshort body"))
	require.NoError(t, err)
	require.Equal(t, []byte("short body"), req.Body)
}

// TestParseRequest_DeclaredBodyShorterThanAvailable verifies extra bytes are ignored.
func TestParseRequest_DeclaredBodyShorterThanAvailable(t *testing.T) {
	req, err := ParseRequest([]byte("POST / HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello world"))
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), req.Body)
}

// TestParseRequest_DeclaredBodyLongerThanAvailable verifies no padding or waiting.
func TestParseRequest_DeclaredBodyLongerThanAvailable(t *testing.T) {
	req, err := ParseRequest([]byte("POST / HTTP/1.1\r\nContent-Length: 50\r\n\r\nhey"))
	require.NoError(t, err)
	require.Equal(t, []byte("hey"), req.Body)

	n, ok := req.ContentLength()
	require.True(t, ok)
	require.Equal(t, 50, n)
}

// TestParseRequest_DeclaredBodyIgnoresUndeclaredBound verifies the bound only applies without Content-Length.
func TestParseRequest_DeclaredBodyIgnoresUndeclaredBound(t *testing.T) {
	size := MaxUndeclaredBodyBytes * 3
	raw := "POST / HTTP/1.1\r\nContent-Length: 30720\r\n\r\n" + strings.Repeat("b", size)

	req, err := ParseRequest([]byte(raw))
	require.NoError(t, err)
	require.Len(t, req.Body, size)
}

// TestParseRequest_ContentLengthZero verifies empty bodies with Content-Length zero.
func TestParseRequest_ContentLengthZero(t *testing.T) {
	req, err := ParseRequest([]byte("POST /empty HTTP/1.1\r\nContent-Length: 0\r\n\r\nignored"))
	require.NoError(t, err)
	require.Empty(t, req.Body)
}

// TestParseRequest_InvalidContentLengthIsWarning verifies the fallback to the bounded branch.
func TestParseRequest_InvalidContentLengthIsWarning(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "non-numeric", value: "abc"},
		{name: "negative", value: "-5"},
		{name: "signed", value: "+5"},
		{name: "fractional", value: "1.5"},
		{name: "empty", value: ""},
		{name: "overflow", value: "99999999999999999999999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Repeat("c", MaxUndeclaredBodyBytes+1)
			raw := "POST / HTTP/1.1\r\nContent-Length: " + tt.value + "\r\n\r\n" + body

			req, err := ParseRequest([]byte(raw))
			require.NoError(t, err)
			require.Len(t, req.Body, MaxUndeclaredBodyBytes)
			require.Len(t, req.Warnings, 1)
			assert.ErrorIs(t, req.Warnings[0], ErrInvalidContentLength)

			_, ok := req.ContentLength()
			assert.False(t, ok)
		})
	}
}

// TestExtractBody verifies the two-branch policy directly.
func TestExtractBody(t *testing.T) {
	rest := []byte("0123456789")

	body, err := extractBody(rest, Headers{"content-length": "4"})
	require.NoError(t, err)
	require.Equal(t, []byte("0123"), body)

	body, err = extractBody(rest, Headers{})
	require.NoError(t, err)
	require.Equal(t, rest, body)

	body, err = extractBody(rest, Headers{"content-length": "x"})
	require.ErrorIs(t, err, ErrInvalidContentLength)
	require.Equal(t, rest, body)
}
