package usecase

import "context"

// Handler is a transport-agnostic handler interface.
// HTTP adapters translate between HTTP and this interface.
type Handler interface {
	Handle(ctx context.Context, input RequestInput) (ResponseOutput, error)
}

// RequestInput is the input to a use case. Transport-agnostic.
type RequestInput struct {
	Method  string
	Path    string
	Version string
	// Headers are keyed by lower-cased header name.
	Headers map[string]string
	// ContentLength is the declared body length, or -1 when none was declared.
	ContentLength int
	Body          []byte
}

// Header returns a header value by its lower-cased name.
func (in RequestInput) Header(name string) (string, bool) {
	value, ok := in.Headers[name]
	return value, ok
}

// ResponseOutput is the output from a use case. Transport-agnostic.
type ResponseOutput struct {
	// ContentType defaults to UTF-8 plain text when empty.
	ContentType string
	Body        []byte
}
