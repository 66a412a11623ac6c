package http

import (
	"fmt"
	"strconv"
)

const (
	// MaxUndeclaredBodyBytes bounds the body of a request that carries no
	// usable Content-Length. Anything past it is dropped silently.
	MaxUndeclaredBodyBytes = 10 * 1024

	contentLengthHeader = "content-length"
)

// extractBody applies Content-Length to the bytes that follow the head.
// A declared length takes at most that many bytes; a missing or invalid one
// takes at most MaxUndeclaredBodyBytes. The returned error is a warning about
// an invalid Content-Length value, the body is valid either way.
func extractBody(rest []byte, headers Headers) ([]byte, error) {
	raw, ok := headers.Lookup(contentLengthHeader)
	if !ok {
		return clampBody(rest, MaxUndeclaredBodyBytes), nil
	}

	n, err := parseContentLength(raw)
	if err != nil {
		return clampBody(rest, MaxUndeclaredBodyBytes), err
	}
	return clampBody(rest, n), nil
}

// parseContentLength accepts only plain decimal digits.
func parseContentLength(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidContentLength)
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidContentLength, raw)
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidContentLength, raw)
	}
	return n, nil
}

func clampBody(rest []byte, limit int) []byte {
	if len(rest) > limit {
		return rest[:limit]
	}
	return rest
}
