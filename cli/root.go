// Package cli holds the civilquest-admin commands.
// file: cli/root.go
package cli

import (
	"github.com/spf13/cobra"
)

// Version is stamped at build time with -ldflags "-X civil-quest-admin/cli.Version=...".
var Version = "dev"

// NewRootCommand builds the command tree. Running it without a subcommand serves the dashboard.
func NewRootCommand() *cobra.Command {
	opts := &serveOptions{}
	root := &cobra.Command{
		Use:           "civilquest-admin",
		Short:         "Civil Quest admin dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	opts.bind(root)

	root.AddCommand(serveCmd(), tokenCmd(), versionCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}
