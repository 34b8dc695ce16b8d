package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"hospital-portal/cmd/bootstrap"

	"github.com/spf13/cobra"
)

// NewExportCommand writes the appointments held in the record store and the
// fallback list as a JSON document that the fixture loader can read back.
func NewExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export-appointments",
		Short: "Export all appointments as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := configPath(cmd)
			if err != nil {
				return err
			}

			app, err := bootstrap.New(cmd.Context(), path)
			if err != nil {
				return err
			}
			defer app.Close()

			list, err := app.Usecases.Appointment.Export(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to export appointments: %w", err)
			}

			data, err := json.MarshalIndent(list, "", "  ")
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d appointments written to %s\n", list.Total, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "appointments.json", "output file, or - for stdout")

	return cmd
}
