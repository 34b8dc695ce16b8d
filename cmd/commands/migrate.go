package commands

import (
	"fmt"

	"hospital-portal/cmd/bootstrap"

	"github.com/spf13/cobra"
)

// NewMigrateCommand opens the named database at the configured version (or
// --version), creating any missing collections, and prints the version in
// effect.
func NewMigrateCommand() *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the record store schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(cmd)
			if err != nil {
				return err
			}

			app, err := bootstrap.Open(path)
			if err != nil {
				return err
			}
			defer app.Close()

			if version == 0 {
				version = app.Config.Store.Version
			}

			handle, err := app.Manager().Open(cmd.Context(), app.Config.Store.Name, version)
			if err != nil {
				return fmt.Errorf("failed to migrate %s: %w", app.Config.Store.Name, err)
			}
			app.Store = handle

			fmt.Fprintf(cmd.OutOrStdout(), "%s is at version %d\n", handle.Name(), handle.Version())
			for _, name := range handle.Collections(cmd.Context()) {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&version, "version", 0, "schema version to open (defaults to STORE_VERSION)")

	return cmd
}
