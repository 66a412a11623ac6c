package http

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSplitHeaderBody verifies delimiter detection and the no-delimiter fallback.
func TestSplitHeaderBody(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		head string
		rest string
	}{
		{name: "crlf with body", raw: "GET / HTTP/1.1\r\nHost: x\r\n\r\nbody", head: "GET / HTTP/1.1\r\nHost: x", rest: "body"},
		{name: "crlf without body", raw: "GET / HTTP/1.1\r\n\r\n", head: "GET / HTTP/1.1", rest: ""},
		{name: "first delimiter wins", raw: "A\r\n\r\nB\r\n\r\nC", head: "A", rest: "B\r\n\r\nC"},
		{name: "bare lf", raw: "GET / HTTP/1.1\nHost: x\n\nbody", head: "GET / HTTP/1.1\nHost: x", rest: "body"},
		{name: "crlf preferred over later lf", raw: "A\r\n\r\nB\n\nC", head: "A", rest: "B\n\nC"},
		{name: "no delimiter", raw: "GET / HTTP/1.1\r\nHost: x", head: "GET / HTTP/1.1\r\nHost: x", rest: ""},
		{name: "empty", raw: "", head: "", rest: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head, rest := SplitHeaderBody([]byte(tt.raw))
			require.Equal(t, tt.head, string(head))
			require.Equal(t, tt.rest, string(rest))
		})
	}
}

// TestSplitHeaderBody_Aliases verifies the results share the input buffer.
func TestSplitHeaderBody_Aliases(t *testing.T) {
	raw := []byte("GET / HTTP/1.1\r\n\r\nabc")
	_, rest := SplitHeaderBody(raw)

	raw[len(raw)-1] = 'z'
	require.Equal(t, "abz", string(rest))
}
