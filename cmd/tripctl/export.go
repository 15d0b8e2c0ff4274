package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/backend/internal/app"
	"github.com/pkordes/trip-planner/backend/internal/handler"
)

func newExportCmd(g *globals) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every trip and expense as CSV or JSON to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != handler.FormatCSV && format != handler.FormatJSON {
				return fmt.Errorf("--format must be %s or %s", handler.FormatCSV, handler.FormatJSON)
			}
			return withApp(cmd, g, func(ctx context.Context, a *app.App) error {
				rows, err := a.Export.Export(ctx)
				if err != nil {
					return err
				}
				if format == handler.FormatJSON {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(handler.ToExportRows(rows))
				}
				return handler.WriteCSV(cmd.OutOrStdout(), rows)
			})
		},
	}
	cmd.Flags().StringVar(&format, "format", handler.FormatCSV, "csv or json")
	return cmd
}
