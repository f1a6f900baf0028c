// Package apply provides the apply command implementation.
package apply

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/delta/cmd/application"
)

// Flags holds the apply command flags.
type Flags struct {
	PatchFormat string
	Only        string
	Out         string
}

// NewCommand creates the apply command using app context.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "apply <document> <patch>",
		GroupID: "core",
		Short:   "Apply a changeset to a document",
		Long: `Apply reads a document and a changeset written by the diff command and
prints the updated document.

The changeset format is detected from the file extension (.json, .yaml, .hex)
or its content unless --patch-format is given. Use "-" to read the changeset
from stdin.

--only narrows unordered and map changesets before they are applied:
  all             every change (default)
  additive        additions and updates, never removals
  updates-only    only keys that were both removed and inserted
  additions-only  only new items or keys
  removals-only   only removals
Edit scripts are positional and are always applied whole.`,
		Args: cobra.ExactArgs(2),
		Example: `  delta apply old.yaml patch.yaml                 # Print the updated document
  delta diff a.yaml b.yaml -o yaml | delta apply a.yaml -
  delta apply labels.yaml patch.json --only additive -o json
  delta apply old.yaml patch.hex --out new.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, app, flags, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&flags.PatchFormat, "patch-format", "", "changeset format: json, yaml, binary (default: detect)")
	cmd.Flags().StringVar(&flags.Only, "only", "", "apply strategy: all, additive, updates-only, additions-only, removals-only")
	cmd.Flags().StringVar(&flags.Out, "out", "", "write the updated document to a file instead of stdout")

	return cmd
}
