package http

import "context"

// Request is a parsed HTTP request. It is built once by ParseRequest and must
// be treated as read-only by handlers.
type Request struct {
	Ctx     context.Context
	Method  string
	Path    string
	Version string
	Headers Headers
	Body    []byte
	// Warnings lists non-fatal problems found while parsing.
	Warnings []error
}

// Context returns the request context or Background when unset.
func (r *Request) Context() context.Context {
	if r == nil || r.Ctx == nil {
		return context.Background()
	}
	return r.Ctx
}

// Host returns the Host header.
func (r *Request) Host() (string, bool) {
	return r.header("host")
}

// ContentType returns the Content-Type header.
func (r *Request) ContentType() (string, bool) {
	return r.header("content-type")
}

// UserAgent returns the User-Agent header.
func (r *Request) UserAgent() (string, bool) {
	return r.header("user-agent")
}

// ContentLength returns the declared body length. It reports false when the
// header is missing or its value is not a non-negative integer.
func (r *Request) ContentLength() (int, bool) {
	raw, ok := r.header(contentLengthHeader)
	if !ok {
		return 0, false
	}
	n, err := parseContentLength(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (r *Request) header(name string) (string, bool) {
	if r == nil {
		return "", false
	}
	return r.Headers.Lookup(name)
}
