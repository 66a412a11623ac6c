// Package http provides the HTTP adapter: request parsing, response
// serialization, per-connection handling, routing, middleware, and use case
// adapters. Part of the Interface Adapters layer.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/jamalishaq/rawhttp/internal/usecase"
)

// DefaultMaxReadBytes is the size of the single read that receives a request.
const DefaultMaxReadBytes = 1024 * 1024

var (
	// ErrHandlerPanic indicates a handler panicked while serving a request.
	ErrHandlerPanic = errors.New("handler panicked")
	// ErrNilResponse indicates a handler returned neither a response nor an error.
	ErrNilResponse = errors.New("handler returned nil response")
	// ErrNilHandler indicates no handler was configured.
	ErrNilHandler = errors.New("nil handler")
)

// Handler produces the response for a parsed request. A returned error is
// answered with a generic 500 response; its detail is only logged.
type Handler func(*Request) (*Response, error)

// ConnHandler serves exactly one request per connection: a single read, a
// parse, one handler call, one write, then close.
type ConnHandler struct {
	Handler      Handler
	Logger       usecase.Logger
	MaxReadBytes int
}

// HandleConn serves one request on conn with default limits and no logger.
func HandleConn(ctx context.Context, conn net.Conn, handler Handler) {
	(&ConnHandler{Handler: handler}).ServeConn(ctx, conn)
}

// ServeConn handles a single request on conn and closes it. Failures are
// converted into exactly one response and never propagate to the caller.
func (h *ConnHandler) ServeConn(ctx context.Context, conn net.Conn) {
	c := &connection{conn: conn, logger: h.Logger, state: StateAwaitingRequest}
	defer c.close()

	buffer := make([]byte, h.maxReadBytes())
	n, readErr := conn.Read(buffer)
	if n == 0 {
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			logError(h.Logger, "read failed", "remote", remoteAddr(conn), "error", readErr)
		}
		return
	}

	req, err := ParseRequest(buffer[:n])
	if err != nil {
		logInfo(h.Logger, "malformed request", "remote", remoteAddr(conn), "error", err)
		c.respond(badRequestResponse())
		return
	}
	req.Ctx = ctx
	c.advance(StateParsed)

	for _, warning := range req.Warnings {
		logInfo(h.Logger, "request parse warning",
			"method", req.Method,
			"path", req.Path,
			"warning", warning,
		)
	}

	resp, err := invokeHandler(h.Handler, req)
	if err != nil {
		logError(h.Logger, "handler failed",
			"method", req.Method,
			"path", req.Path,
			"error", err,
		)
		resp = internalServerErrorResponse()
	}
	c.advance(StateHandled)
	c.respond(resp)
}

func (h *ConnHandler) maxReadBytes() int {
	if h.MaxReadBytes <= 0 {
		return DefaultMaxReadBytes
	}
	return h.MaxReadBytes
}

// invokeHandler calls handler and turns panics and nil responses into errors.
func invokeHandler(handler Handler, req *Request) (resp *Response, err error) {
	if handler == nil {
		return nil, ErrNilHandler
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			resp, err = nil, fmt.Errorf("%w: %v", ErrHandlerPanic, recovered)
		}
	}()

	resp, err = handler(req)
	if err == nil && resp == nil {
		err = ErrNilResponse
	}
	return resp, err
}

func remoteAddr(conn net.Conn) string {
	if addr := conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}

// logInfo logs an info event when a logger is provided.
func logInfo(logger usecase.Logger, msg string, keysAndValues ...any) {
	if logger == nil {
		return
	}
	logger.Info(msg, keysAndValues...)
}

// logError logs an error event when a logger is provided.
func logError(logger usecase.Logger, msg string, keysAndValues ...any) {
	if logger == nil {
		return
	}
	logger.Error(msg, keysAndValues...)
}
