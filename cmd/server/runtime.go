package main

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	httpadapter "github.com/jamalishaq/rawhttp/internal/adapter/http"
	"github.com/jamalishaq/rawhttp/internal/usecase"
)

// serverRuntime owns the accept loop and graceful shutdown lifecycle. Each
// accepted connection is served by its own goroutine.
type serverRuntime struct {
	listener         net.Listener
	logger           usecase.Logger
	connHandler      *httpadapter.ConnHandler
	readTimeout      time.Duration
	writeTimeout     time.Duration
	shutdownDeadline time.Duration

	wg    sync.WaitGroup
	mu    sync.Mutex
	conns map[net.Conn]struct{}
}

// newServerRuntime constructs a runtime with lifecycle and timeout settings.
func newServerRuntime(listener net.Listener, handler httpadapter.Handler, logger usecase.Logger, cfg serverConfig) *serverRuntime {
	return &serverRuntime{
		listener: listener,
		logger:   logger,
		connHandler: &httpadapter.ConnHandler{
			Handler:      handler,
			Logger:       logger,
			MaxReadBytes: cfg.MaxReadBytes,
		},
		readTimeout:      cfg.ReadTimeout,
		writeTimeout:     cfg.WriteTimeout,
		shutdownDeadline: cfg.ShutdownDeadline,
		conns:            make(map[net.Conn]struct{}),
	}
}

// serve accepts connections until context cancellation, then drains active work.
func (s *serverRuntime) serve(ctx context.Context) error {
	defer s.listener.Close()

	go func() {
		<-ctx.Done()
		logRuntimeInfo(s.logger, "shutdown signal received", "action", "stop_accepts")
		_ = s.listener.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				break
			}
			logRuntimeError(s.logger, "accept failed", "error", err)
			continue
		}

		s.trackConn(conn)
		s.wg.Add(1)
		go s.handleConn(ctx, conn)
	}

	logRuntimeInfo(s.logger, "waiting for in-flight connections")
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logRuntimeInfo(s.logger, "shutdown complete")
	case <-time.After(s.shutdownDeadline):
		logRuntimeError(s.logger, "shutdown deadline reached", "deadline", s.shutdownDeadline.String(), "action", "force_close_active_connections")
		s.closeTrackedConns()
		<-done
		logRuntimeInfo(s.logger, "shutdown complete after forced close")
	}

	return nil
}

// handleConn applies optional deadlines and serves the single request.
func (s *serverRuntime) handleConn(ctx context.Context, conn net.Conn) {
	defer s.wg.Done()
	defer s.untrackConn(conn)

	if s.readTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(s.readTimeout))
	}
	if s.writeTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}

	s.connHandler.ServeConn(ctx, conn)
}

// trackConn adds a connection to the active set.
func (s *serverRuntime) trackConn(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conns[conn] = struct{}{}
}

// untrackConn removes a connection from the active set.
func (s *serverRuntime) untrackConn(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

// closeTrackedConns force closes all currently tracked active connections.
func (s *serverRuntime) closeTrackedConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.Close()
	}
}

// logRuntimeInfo logs runtime lifecycle events when a logger is configured.
func logRuntimeInfo(logger usecase.Logger, msg string, keysAndValues ...any) {
	if logger == nil {
		return
	}
	logger.Info(msg, keysAndValues...)
}

// logRuntimeError logs runtime errors when a logger is configured.
func logRuntimeError(logger usecase.Logger, msg string, keysAndValues ...any) {
	if logger == nil {
		return
	}
	logger.Error(msg, keysAndValues...)
}
