// Package cmdutil holds the flag plumbing shared by every subcommand.
package cmdutil

import (
	"github.com/spf13/cobra"

	"github.com/packsmith/minecraft-pack-manager/internal/app"
)

// RuntimeBuilder turns parsed flags into an application runtime. Command
// tests substitute one backed by an in-memory filesystem.
type RuntimeBuilder func(cmd *cobra.Command) (*app.Runtime, error)

// RuntimeFromFlags builds the production runtime from the root command's
// persistent flags.
func RuntimeFromFlags(cmd *cobra.Command) (*app.Runtime, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return nil, err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return nil, err
	}
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return nil, err
	}
	useCache, err := cmd.Flags().GetBool("use-cache")
	if err != nil {
		return nil, err
	}

	return app.Setup(app.SetupOptions{
		Dir:      dir,
		Quiet:    quiet,
		Debug:    debug,
		UseCache: useCache,
	})
}
