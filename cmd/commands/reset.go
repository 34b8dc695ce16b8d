package commands

import (
	"errors"
	"fmt"

	"hospital-portal/cmd/bootstrap"

	"github.com/spf13/cobra"
)

func NewResetCommand() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop every collection of the record store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errors.New("refusing to reset without --yes")
			}

			path, err := configPath(cmd)
			if err != nil {
				return err
			}

			app, err := bootstrap.Open(path)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Manager().Reset(cmd.Context(), app.Config.Store.Name); err != nil {
				return fmt.Errorf("failed to reset %s: %w", app.Config.Store.Name, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s reset\n", app.Config.Store.Name)
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "confirm that all records will be lost")

	return cmd
}
