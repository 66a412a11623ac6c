// Package logging provides concrete logger adapters.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jamalishaq/rawhttp/internal/usecase"
)

const (
	// FormatJSON writes one JSON object per event.
	FormatJSON = "json"
	// FormatConsole writes human-readable lines without colors.
	FormatConsole = "console"
)

// zerologLogger adapts zerolog.Logger to the usecase.Logger port.
type zerologLogger struct {
	base zerolog.Logger
}

// NewZerologLogger creates a logger adapter backed by zerolog.
func NewZerologLogger(base zerolog.Logger) usecase.Logger {
	return &zerologLogger{base: base}
}

// NewBase builds the zerolog logger used by the server. level is a zerolog
// level name such as "debug" or "info"; format is FormatJSON or FormatConsole.
func NewBase(out io.Writer, level, format string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if strings.TrimSpace(level) != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatJSON:
	case FormatConsole:
		out = zerolog.ConsoleWriter{Out: out, NoColor: true}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", format)
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// Info logs informational events.
func (l *zerologLogger) Info(msg string, keysAndValues ...any) {
	if l == nil {
		return
	}
	write(l.base.Info(), msg, keysAndValues)
}

// Error logs error events.
func (l *zerologLogger) Error(msg string, keysAndValues ...any) {
	if l == nil {
		return
	}
	write(l.base.Error(), msg, keysAndValues)
}

// write attaches key/value pairs as event fields and emits the event.
// A disabled level yields a nil event, which zerolog treats as a no-op.
func write(event *zerolog.Event, msg string, keysAndValues []any) {
	if event == nil {
		return
	}

	for i := 0; i < len(keysAndValues); i += 2 {
		key := sanitizeKey(fmt.Sprint(keysAndValues[i]), i/2)
		value := any("<missing>")
		if i+1 < len(keysAndValues) {
			value = keysAndValues[i+1]
		}

		switch v := value.(type) {
		case error:
			event = event.AnErr(key, v)
		case fmt.Stringer:
			event = event.Str(key, v.String())
		default:
			event = event.Interface(key, v)
		}
	}
	event.Msg(msg)
}

// sanitizeKey normalizes logging keys and applies deterministic fallbacks.
func sanitizeKey(key string, index int) string {
	normalized := strings.TrimSpace(strings.ToLower(strings.ReplaceAll(key, " ", "_")))
	if normalized == "" {
		return fmt.Sprintf("field_%d", index)
	}
	return normalized
}
