package http

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

const (
	defaultVersion  = "HTTP/1.1"
	textContentType = "text/plain; charset=utf-8"
)

type headerField struct {
	name  string
	value string
}

// Response is an HTTP response builder. Setters return the same instance so
// calls can be chained; Serialize renders the wire bytes.
type Response struct {
	StatusCode int
	Body       []byte
	headers    []headerField
}

// NewResponse creates a 200 response with no headers and an empty body.
func NewResponse() *Response {
	return &Response{
		StatusCode: 200,
		Body:       []byte{},
	}
}

// SetStatus sets the status code. The reason phrase follows from it.
func (r *Response) SetStatus(code int) *Response {
	r.StatusCode = code
	return r
}

// SetHeader sets a header, replacing an existing one of the same name in any
// letter case. The field keeps its original position in the output. CR and
// LF characters are dropped from both name and value.
func (r *Response) SetHeader(name, value string) *Response {
	name, value = stripLineBreaks(name), stripLineBreaks(value)
	for i := range r.headers {
		if strcomp.EqualFold(r.headers[i].name, name) {
			r.headers[i] = headerField{name: name, value: value}
			return r
		}
	}
	r.headers = append(r.headers, headerField{name: name, value: value})
	return r
}

// Header returns the value of a header set on the response.
func (r *Response) Header(name string) (string, bool) {
	for _, field := range r.headers {
		if strcomp.EqualFold(field.name, name) {
			return field.value, true
		}
	}
	return "", false
}

// SetBody replaces the body with a copy of body.
func (r *Response) SetBody(body []byte) *Response {
	r.Body = make([]byte, len(body))
	copy(r.Body, body)
	return r
}

// SetTextBody stores text as the body and marks it as UTF-8 plain text.
func (r *Response) SetTextBody(text string) *Response {
	r.Body = []byte(text)
	return r.SetHeader("Content-Type", textContentType)
}

// StatusText returns the reason phrase of the current status code.
func (r *Response) StatusText() string {
	return statusText(r.status())
}

// Serialize renders the response in HTTP/1.1 wire format. Content-Length is
// always computed from the body; a header of that name set by the caller is
// ignored. Serialize does not modify the response.
func (r *Response) Serialize() []byte {
	var buf bytes.Buffer
	buf.Grow(64 + 32*len(r.headers) + len(r.Body))

	buf.WriteString(defaultVersion)
	buf.WriteByte(' ')
	buf.WriteString(strconv.Itoa(r.status()))
	buf.WriteByte(' ')
	buf.WriteString(r.StatusText())
	buf.WriteString("\r\n")

	for _, field := range r.headers {
		if strcomp.EqualFold(field.name, contentLengthHeader) {
			continue
		}
		writeHeaderLine(&buf, field.name, field.value)
	}
	writeHeaderLine(&buf, "Content-Length", strconv.Itoa(len(r.Body)))

	buf.WriteString("\r\n")
	buf.Write(r.Body)
	return buf.Bytes()
}

func (r *Response) status() int {
	if r.StatusCode == 0 {
		return 200
	}
	return r.StatusCode
}

func writeHeaderLine(buf *bytes.Buffer, name, value string) {
	buf.WriteString(name)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}

func stripLineBreaks(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.NewReplacer("\r", "", "\n", "").Replace(s)
}

// statusText returns a reason phrase for a status code.
func statusText(code int) string {
	switch code {
	case 100:
		return "Continue"
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 202:
		return "Accepted"
	case 204:
		return "No Content"
	case 301:
		return "Moved Permanently"
	case 302:
		return "Found"
	case 304:
		return "Not Modified"
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 405:
		return "Method Not Allowed"
	case 408:
		return "Request Timeout"
	case 411:
		return "Length Required"
	case 413:
		return "Payload Too Large"
	case 414:
		return "URI Too Long"
	case 415:
		return "Unsupported Media Type"
	case 429:
		return "Too Many Requests"
	case 500:
		return "Internal Server Error"
	case 501:
		return "Not Implemented"
	case 502:
		return "Bad Gateway"
	case 503:
		return "Service Unavailable"
	case 504:
		return "Gateway Timeout"
	case 505:
		return "HTTP Version Not Supported"
	default:
		return "Unknown"
	}
}

// textResponse builds a plain-text response with the given status.
func textResponse(code int, body string) *Response {
	return NewResponse().SetStatus(code).SetTextBody(body)
}

// badRequestResponse is written when the request line cannot be parsed.
func badRequestResponse() *Response {
	return textResponse(400, "Bad Request")
}

// internalServerErrorResponse returns a generic 500 response.
func internalServerErrorResponse() *Response {
	return textResponse(500, "Internal Server Error")
}
