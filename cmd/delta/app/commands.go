package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/delta/cmd/delta/cmd/apply"
	"github.com/agentstation/delta/cmd/delta/cmd/diff"
	"github.com/agentstation/delta/cmd/delta/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(diff.NewCommand(a))
	rootCmd.AddCommand(apply.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
}
