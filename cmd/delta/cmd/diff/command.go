// Package diff provides the diff command implementation.
package diff

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/delta/cmd/application"
)

// Flags holds the diff command flags.
type Flags struct {
	Strategy  string
	Algorithm string
	MapMode   string
	Out       string
}

// NewCommand creates the diff command using app context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "diff <existing> <updated>",
		GroupID: "core",
		Short:   "Compute the changeset between two documents",
		Long: `Diff compares two YAML or JSON documents of the same shape and prints the
changeset that turns the first into the second.

Lists are compared as ordered sequences (an edit script of replace, insert and
delete operations) or, with --strategy unordered-array-like, as multisets.
Maps are compared by key; --map-mode key-only reports only added and removed
keys.

The changeset can be written as a table, JSON, YAML or hex-encoded binary and
read back by the apply command.`,
		Args: cobra.ExactArgs(2),
		Example: `  delta diff old.yaml new.yaml                          # Edit script as a table
  delta diff old.yaml new.yaml -o yaml > patch.yaml     # Save a patch
  delta diff a.json b.json --strategy unordered-array-like
  delta diff labels.yaml labels-new.yaml --map-mode key-only
  delta diff old.yaml new.yaml -o binary --out patch.hex`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, flags, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&flags.Strategy, "strategy", "", "list strategy: ordered-array-like, unordered-array-like")
	cmd.Flags().StringVar(&flags.Algorithm, "algorithm", "", "ordered diff algorithm: hirschberg, levenshtein")
	cmd.Flags().StringVar(&flags.MapMode, "map-mode", "", "map comparison: key-and-value, key-only")
	cmd.Flags().StringVar(&flags.Out, "out", "", "write the changeset to a file instead of stdout")

	return cmd
}
