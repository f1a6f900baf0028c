// Package application provides the application interface for delta commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            logger := app.Logger()
//	            format := app.OutputFormat()
//	            // ... diff or apply
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    OutputFormatFunc: func() string { return "json" },
//	}
//	cmd := diff.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"
)

// Application provides the application interface that commands need.
// The App struct from cmd/delta/app implements this interface.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Application interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, binary).
	// An empty string means the command picks one from the terminal.
	OutputFormat() string

	// Algorithm returns the configured ordered diff algorithm name.
	Algorithm() string

	// Strategy returns the configured collection strategy for list documents.
	Strategy() string

	// MapMode returns the configured comparison mode for map documents.
	MapMode() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
