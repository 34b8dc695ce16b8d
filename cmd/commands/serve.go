package commands

import (
	"hospital-portal/cmd/bootstrap"

	"github.com/spf13/cobra"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(cmd)
			if err != nil {
				return err
			}

			app, err := bootstrap.New(cmd.Context(), path)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}
}
