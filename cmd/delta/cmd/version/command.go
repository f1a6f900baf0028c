// Package version provides the version command implementation.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/delta/cmd/application"
	"github.com/agentstation/delta/internal/output"
)

// Info is the build information printed by the version command.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	BuiltBy   string `json:"built_by" yaml:"built_by"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// NewInfo collects build information from the app.
func NewInfo(app application.Application) Info {
	return Info{
		Version:   app.Version(),
		Commit:    app.Commit(),
		Date:      app.Date(),
		BuiltBy:   app.BuiltBy(),
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// NewCommand creates the version command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := NewInfo(app)
			switch format := output.Format(app.OutputFormat()); format {
			case output.FormatJSON, output.FormatYAML, output.FormatTable:
				return output.NewFormatter(format).Format(cmd.OutOrStdout(), info)
			default:
				cmd.Printf("delta %s\n", info.Version)
				cmd.Printf("  commit:   %s\n", info.Commit)
				cmd.Printf("  built:    %s\n", info.Date)
				cmd.Printf("  built by: %s\n", info.BuiltBy)
				cmd.Printf("  go:       %s (%s)\n", info.GoVersion, info.Platform)
				return nil
			}
		},
	}
}
