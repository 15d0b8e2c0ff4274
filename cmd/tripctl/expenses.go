package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/backend/internal/app"
)

func newExpensesCmd(g *globals) *cobra.Command {
	expenses := &cobra.Command{
		Use:   "expenses",
		Short: "Inspect trip expenses",
	}
	totals := &cobra.Command{
		Use:   "totals <tripId>",
		Short: "Print per-currency expense totals for a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(ctx context.Context, a *app.App) error {
				t, err := a.Expenses.Totals(ctx, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(t.Totals) == 0 {
					fmt.Fprintln(out, "No expenses.")
					return nil
				}
				for _, line := range t.Totals {
					fmt.Fprintf(out, "%s\t%s\n", line.Currency, line.Display)
				}
				return nil
			})
		},
	}
	expenses.AddCommand(totals)
	return expenses
}
