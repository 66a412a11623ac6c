package http

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRequest_DerivedAccessors verifies accessors read the matching headers.
func TestRequest_DerivedAccessors(t *testing.T) {
	raw := "POST /submit HTTP/1.1\r\n" +
		"HOST: example.com\r\n" +
		"content-type: application/json\r\n" +
		"User-Agent: curl/8.0\r\n" +
		"Content-Length: 2\r\n\r\n{}"

	req, err := ParseRequest([]byte(raw))
	require.NoError(t, err)

	host, ok := req.Host()
	require.True(t, ok)
	require.Equal(t, "example.com", host)

	contentType, ok := req.ContentType()
	require.True(t, ok)
	require.Equal(t, "application/json", contentType)

	userAgent, ok := req.UserAgent()
	require.True(t, ok)
	require.Equal(t, "curl/8.0", userAgent)

	length, ok := req.ContentLength()
	require.True(t, ok)
	require.Equal(t, 2, length)
}

// TestRequest_DerivedAccessorsAbsent verifies missing headers are reported absent.
func TestRequest_DerivedAccessorsAbsent(t *testing.T) {
	req, err := ParseRequest([]byte("GET / HTTP/1.1\r\n\r\n"))
	require.NoError(t, err)

	_, ok := req.Host()
	require.False(t, ok)
	_, ok = req.ContentType()
	require.False(t, ok)
	_, ok = req.UserAgent()
	require.False(t, ok)
	_, ok = req.ContentLength()
	require.False(t, ok)
}

// TestRequest_Context verifies the Background fallback and explicit contexts.
func TestRequest_Context(t *testing.T) {
	var nilReq *Request
	require.Equal(t, context.Background(), nilReq.Context())
	require.Equal(t, context.Background(), (&Request{}).Context())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.Equal(t, ctx, (&Request{Ctx: ctx}).Context())
}

// TestHeaders_Clone verifies clones are independent.
func TestHeaders_Clone(t *testing.T) {
	original := Headers{"host": "a"}
	cloned := original.Clone()
	cloned.set("Host", "b")

	require.Equal(t, "a", original.Get("host"))
	require.Equal(t, "b", cloned.Get("HOST"))

	var empty Headers
	require.Nil(t, empty.Clone())
	require.False(t, empty.Has("host"))
}
