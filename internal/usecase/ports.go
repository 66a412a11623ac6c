// Package usecase contains application business rules and ports (interfaces).
// Use cases depend on these interfaces, not concrete implementations.
package usecase

// Logger is a port for logging. Adapters implement this interface.
type Logger interface {
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}
