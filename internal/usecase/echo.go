package usecase

import (
	"context"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

const (
	welcomeMessage  = "Welcome to the HTTP Server!"
	absentValue     = "None"
	jsonContentType = "application/json"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WelcomeHandler answers with a fixed greeting.
type WelcomeHandler struct{}

// Handle returns the greeting.
func (WelcomeHandler) Handle(ctx context.Context, _ RequestInput) (ResponseOutput, error) {
	if err := ctx.Err(); err != nil {
		return ResponseOutput{}, err
	}
	return ResponseOutput{Body: []byte(welcomeMessage)}, nil
}

// EchoHandler describes the received request as plain text.
type EchoHandler struct{}

// Handle renders the request line, the well-known headers and the body.
func (EchoHandler) Handle(ctx context.Context, input RequestInput) (ResponseOutput, error) {
	if err := ctx.Err(); err != nil {
		return ResponseOutput{}, err
	}

	var b strings.Builder
	b.WriteString("Request Information:\n")
	writeLine(&b, "Method", input.Method)
	writeLine(&b, "Path", input.Path)
	writeLine(&b, "Version", input.Version)
	writeLine(&b, "Host", headerOrAbsent(input, "host"))
	writeLine(&b, "User-Agent", headerOrAbsent(input, "user-agent"))
	writeLine(&b, "Content-Type", headerOrAbsent(input, "content-type"))
	contentLength := absentValue
	if input.ContentLength >= 0 {
		contentLength = strconv.Itoa(input.ContentLength)
	}
	writeLine(&b, "Content-Length", contentLength)
	writeLine(&b, "Body", strings.ToValidUTF8(string(input.Body), ""))

	return ResponseOutput{Body: []byte(b.String())}, nil
}

// echoDocument is the JSON form of an echoed request. Absent headers are null.
type echoDocument struct {
	Method        string  `json:"method"`
	Path          string  `json:"path"`
	Version       string  `json:"version"`
	Host          *string `json:"host"`
	UserAgent     *string `json:"user_agent"`
	ContentType   *string `json:"content_type"`
	ContentLength *int    `json:"content_length"`
	Body          string  `json:"body"`
}

// EchoJSONHandler describes the received request as a JSON object.
type EchoJSONHandler struct{}

// Handle renders the same fields as EchoHandler, encoded as JSON.
func (EchoJSONHandler) Handle(ctx context.Context, input RequestInput) (ResponseOutput, error) {
	if err := ctx.Err(); err != nil {
		return ResponseOutput{}, err
	}

	doc := echoDocument{
		Method:      input.Method,
		Path:        input.Path,
		Version:     input.Version,
		Host:        optionalHeader(input, "host"),
		UserAgent:   optionalHeader(input, "user-agent"),
		ContentType: optionalHeader(input, "content-type"),
		Body:        strings.ToValidUTF8(string(input.Body), ""),
	}
	if input.ContentLength >= 0 {
		n := input.ContentLength
		doc.ContentLength = &n
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return ResponseOutput{}, err
	}
	return ResponseOutput{ContentType: jsonContentType, Body: body}, nil
}

func writeLine(b *strings.Builder, label, value string) {
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteByte('\n')
}

func headerOrAbsent(input RequestInput, name string) string {
	if value, ok := input.Header(name); ok {
		return value
	}
	return absentValue
}

func optionalHeader(input RequestInput, name string) *string {
	value, ok := input.Header(name)
	if !ok {
		return nil
	}
	return &value
}
