// Package main runs the TCP entrypoint for the HTTP adapter server.
package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	httpadapter "github.com/jamalishaq/rawhttp/internal/adapter/http"
	logadapter "github.com/jamalishaq/rawhttp/internal/adapter/logging"
	"github.com/jamalishaq/rawhttp/internal/usecase"
)

const (
	defaultHost             = "localhost"
	defaultPort             = 8080
	defaultShutdownDeadline = 10 * time.Second
)

// serverConfig configures runtime behavior from environment values.
// Zero timeouts are disabled.
type serverConfig struct {
	ListenAddress    string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ShutdownDeadline time.Duration
	RequestTimeout   time.Duration
	MaxReadBytes     int
	LogLevel         string
	LogFormat        string
}

// main starts the TCP listener and accepts incoming HTTP connections.
func main() {
	cfg, err := loadServerConfigFromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	base, err := logadapter.NewBase(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logadapter.NewZerologLogger(base)

	listener, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}

	logger.Info("http server listening", "address", listener.Addr().String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runtime := newServerRuntime(listener, newRouter(cfg, logger).Handle, logger, cfg)
	if err := runtime.serve(ctx); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

// newRouter registers the example routes behind the middleware chain.
func newRouter(cfg serverConfig, logger usecase.Logger) *httpadapter.Router {
	router := httpadapter.NewRouter()
	router.Use(
		httpadapter.LoggingMiddleware(logger),
		httpadapter.TimeoutMiddleware(cfg.RequestTimeout),
		httpadapter.RecoveryMiddleware(logger),
	)

	router.Register("GET", "/", httpadapter.AdaptUseCaseHandler(usecase.WelcomeHandler{}))
	for _, method := range []string{"GET", "POST"} {
		router.Register(method, "/echo", httpadapter.AdaptUseCaseHandler(usecase.EchoHandler{}))
		router.Register(method, "/echo.json", httpadapter.AdaptUseCaseHandler(usecase.EchoJSONHandler{}))
	}
	return router
}

// loadServerConfigFromEnv loads runtime configuration from RAWHTTP_* vars.
func loadServerConfigFromEnv() (serverConfig, error) {
	host := strings.TrimSpace(os.Getenv("RAWHTTP_HOST"))
	if host == "" {
		host = defaultHost
	}

	port, err := parsePortEnv("RAWHTTP_PORT", defaultPort)
	if err != nil {
		return serverConfig{}, err
	}

	readTimeout, err := parseTimeoutEnv("RAWHTTP_READ_TIMEOUT")
	if err != nil {
		return serverConfig{}, err
	}
	writeTimeout, err := parseTimeoutEnv("RAWHTTP_WRITE_TIMEOUT")
	if err != nil {
		return serverConfig{}, err
	}
	requestTimeout, err := parseTimeoutEnv("RAWHTTP_REQUEST_TIMEOUT")
	if err != nil {
		return serverConfig{}, err
	}
	shutdownDeadline, err := parseDurationEnv("RAWHTTP_SHUTDOWN_DEADLINE", defaultShutdownDeadline)
	if err != nil {
		return serverConfig{}, err
	}
	maxReadBytes, err := parseSizeEnv("RAWHTTP_MAX_READ_BYTES", httpadapter.DefaultMaxReadBytes)
	if err != nil {
		return serverConfig{}, err
	}

	return serverConfig{
		ListenAddress:    net.JoinHostPort(host, strconv.Itoa(port)),
		ReadTimeout:      readTimeout,
		WriteTimeout:     writeTimeout,
		ShutdownDeadline: shutdownDeadline,
		RequestTimeout:   requestTimeout,
		MaxReadBytes:     maxReadBytes,
		LogLevel:         strings.TrimSpace(os.Getenv("RAWHTTP_LOG_LEVEL")),
		LogFormat:        strings.TrimSpace(os.Getenv("RAWHTTP_LOG_FORMAT")),
	}, nil
}

// parseDurationEnv reads a positive duration env var with fallback default.
func parseDurationEnv(envKey string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(envKey))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", envKey, raw, err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("%s: duration must be > 0", envKey)
	}
	return value, nil
}

// parseTimeoutEnv reads an optional timeout; unset or zero disables it.
func parseTimeoutEnv(envKey string) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(envKey))
	if raw == "" {
		return 0, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", envKey, raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s: duration must be >= 0", envKey)
	}
	return value, nil
}

// parsePortEnv reads and validates a TCP port env var.
func parsePortEnv(envKey string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(envKey))
	if raw == "" {
		return fallback, nil
	}

	raw = strings.TrimPrefix(raw, ":")
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid port %q", envKey, raw)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("%s: port must be between 1 and 65535", envKey)
	}
	return port, nil
}

// parseSizeEnv reads a positive byte count env var.
func parseSizeEnv(envKey string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(envKey))
	if raw == "" {
		return fallback, nil
	}

	size, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid size %q", envKey, raw)
	}
	if size <= 0 {
		return 0, fmt.Errorf("%s: size must be > 0", envKey)
	}
	return size, nil
}
