package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/backend/internal/app"
	"github.com/pkordes/trip-planner/backend/internal/domain"
	"github.com/pkordes/trip-planner/backend/internal/service"
)

func newTripsCmd(g *globals) *cobra.Command {
	trips := &cobra.Command{
		Use:   "trips",
		Short: "List and add trips",
	}

	var bucket string
	list := &cobra.Command{
		Use:   "list",
		Short: "List trips, upcoming first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, g, func(ctx context.Context, a *app.App) error {
				all, err := listAllTrips(ctx, a.Trips, bucket)
				if err != nil {
					return err
				}
				printTrips(cmd.OutOrStdout(), all)
				return nil
			})
		},
	}
	list.Flags().StringVar(&bucket, "bucket", "", "only upcoming or past trips")

	add := &cobra.Command{
		Use:   "add <destination> <start YYYY-MM-DD> <end YYYY-MM-DD>",
		Short: "Add a trip",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, g, func(ctx context.Context, a *app.App) error {
				trip, err := a.Trips.Create(ctx, domain.TripInput{
					Destination: args[0],
					StartDate:   args[1],
					EndDate:     args[2],
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), trip.ID)
				return nil
			})
		},
	}

	trips.AddCommand(list, add)
	return trips
}

// listAllTrips pages through the whole bucket.
func listAllTrips(ctx context.Context, trips *service.TripService, bucket string) ([]service.TripSummary, error) {
	limit := 100
	var out []service.TripSummary
	for page := 1; ; page++ {
		p := page
		items, total, err := trips.List(ctx, bucket, domain.NewPaginationParams(&p, &limit))
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
		if len(items) == 0 || len(out) >= total {
			return out, nil
		}
	}
}

func printTrips(w io.Writer, trips []service.TripSummary) {
	if len(trips) == 0 {
		fmt.Fprintln(w, "No trips found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DESTINATION\tSTART\tEND\tWHEN")
	for _, t := range trips {
		when := fmt.Sprintf("in %d days", t.DaysUntil)
		switch {
		case t.Past:
			when = "past"
		case t.DaysUntil == 0:
			when = "today"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Destination, t.StartDate, t.EndDate, when)
	}
	tw.Flush()
}
