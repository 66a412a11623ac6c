package http

import (
	"net"

	"github.com/jamalishaq/rawhttp/internal/usecase"
)

// ConnState is a step of the per-connection lifecycle. States only move
// forward; there is no path back to StateAwaitingRequest, so a connection
// never serves a second request.
type ConnState int

const (
	StateAwaitingRequest ConnState = iota
	StateParsed
	StateHandled
	StateResponding
	StateClosed
)

func (s ConnState) String() string {
	switch s {
	case StateAwaitingRequest:
		return "awaiting_request"
	case StateParsed:
		return "parsed"
	case StateHandled:
		return "handled"
	case StateResponding:
		return "responding"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// connection tracks the lifecycle of one accepted connection.
type connection struct {
	conn   net.Conn
	logger usecase.Logger
	state  ConnState
}

// advance moves to next. Error paths may skip states, but a move to the same
// or an earlier state is refused.
func (c *connection) advance(next ConnState) bool {
	if next <= c.state {
		logError(c.logger, "invalid connection state transition",
			"from", c.state.String(),
			"to", next.String(),
		)
		return false
	}
	c.state = next
	return true
}

// respond writes resp as the single reply of this connection.
func (c *connection) respond(resp *Response) {
	if !c.advance(StateResponding) {
		return
	}

	resp.SetHeader("Connection", "close")
	if _, err := c.conn.Write(resp.Serialize()); err != nil {
		logError(c.logger, "write failed", "remote", remoteAddr(c.conn), "error", err)
	}
}

// close terminates the connection regardless of what the client asked for.
func (c *connection) close() {
	if c.state == StateClosed {
		return
	}
	c.state = StateClosed
	_ = c.conn.Close()
}
