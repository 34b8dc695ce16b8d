package commands

import (
	"fmt"
	"io"
	"strconv"

	"hospital-portal/cmd/bootstrap"
	"hospital-portal/internal/delivery/dto"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load fixture records into empty collections",
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

			report, err := app.Usecases.Seed.Seed(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to seed: %w", err)
			}

			renderSeedReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func renderSeedReport(w io.Writer, report *dto.SeedReport) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Collection", "Inserted", "Skipped", "Reason"})
	table.SetAutoWrapText(false)
	for _, c := range report.Collections {
		table.Append([]string{c.Collection, strconv.Itoa(c.Inserted), strconv.FormatBool(c.Skipped), c.Reason})
	}
	table.Render()
}
