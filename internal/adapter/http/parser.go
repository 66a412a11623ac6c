package http

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/indigo-web/utils/uf"
)

const maxErrorLineBytes = 128

var (
	// ErrMalformedRequestLine indicates the request line is not exactly
	// METHOD SP PATH SP VERSION.
	ErrMalformedRequestLine = errors.New("malformed request line")
	// ErrInvalidContentLength indicates a Content-Length value that is not a
	// non-negative integer. It is reported as a request warning, never as a
	// parse failure.
	ErrInvalidContentLength = errors.New("invalid Content-Length")
)

// ParseError describes why a request buffer could not be parsed.
type ParseError struct {
	Line string
	Err  error
}

// Error renders the failure with a bounded excerpt of the offending line.
func (e *ParseError) Error() string {
	line := e.Line
	if len(line) > maxErrorLineBytes {
		line = line[:maxErrorLineBytes] + "..."
	}
	return fmt.Sprintf("parse request: %v: %q", e.Err, line)
}

// Unwrap exposes the underlying sentinel for errors.Is.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseRequest parses one HTTP/1.x request from a single buffered read.
//
// The returned request references data: the caller must not modify the
// buffer afterwards. Only an unusable request line fails the parse; header
// and body problems are tolerated and, where relevant, recorded in
// Request.Warnings.
func ParseRequest(data []byte) (*Request, error) {
	head, rest := SplitHeaderBody(data)
	lines := splitLines(uf.B2S(head))

	method, path, version, err := parseRequestLine(lines[0])
	if err != nil {
		return nil, err
	}

	headers := parseHeaderLines(lines[1:])
	body, warning := extractBody(rest, headers)
	if body == nil {
		body = []byte{}
	}

	req := &Request{
		Method:  method,
		Path:    path,
		Version: version,
		Headers: headers,
		Body:    body,
	}
	if warning != nil {
		req.Warnings = append(req.Warnings, warning)
	}

	return req, nil
}

// splitLines splits the head section on LF and drops the CR of CRLF endings.
func splitLines(head string) []string {
	lines := strings.Split(head, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// parseRequestLine splits the request line into its three tokens.
func parseRequestLine(line string) (string, string, string, error) {
	trimmed := strings.TrimSpace(line)
	if !utf8.ValidString(trimmed) {
		return "", "", "", &ParseError{Line: line, Err: ErrMalformedRequestLine}
	}

	parts := strings.Split(trimmed, " ")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", &ParseError{Line: line, Err: ErrMalformedRequestLine}
	}

	return parts[0], parts[1], parts[2], nil
}

// parseHeaderLines collects header fields. Blank lines, lines without a colon
// and lines with an empty name are skipped.
func parseHeaderLines(lines []string) Headers {
	headers := make(Headers, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !utf8.ValidString(line) {
			line = strings.ToValidUTF8(line, "")
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}

		headers.set(name, strings.TrimSpace(value))
	}
	return headers
}
