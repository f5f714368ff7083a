// Package ports defines the core interfaces for the application.
package ports

import "io"

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)

	// SetOutput redirects log output. Used by tests and by the CLI when
	// stderr is replaced.
	SetOutput(w io.Writer)

	// SetJSON switches between JSON and pretty log output.
	SetJSON(enable bool)
}
