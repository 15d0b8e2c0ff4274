package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/pkordes/trip-planner/backend/internal/app"
	"github.com/pkordes/trip-planner/backend/internal/config"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	user     string
	logLevel string
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "tripctl",
		Short: "tripctl - manage trip planner data from the command line",
		Long: `tripctl reads and writes the same trip documents as the API server.
Storage is selected with the same environment variables (STORAGE_DRIVER,
DATA_DIR, SQLITE_PATH, DATABASE_URL).`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&g.user, "user", "", "phone number whose trips to use (defaults to the signed-in user)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(newTripsCmd(g))
	root.AddCommand(newExpensesCmd(g))
	root.AddCommand(newExportCmd(g))
	root.AddCommand(newMigrateCmd(g))
	return root
}

var errNoUser = errors.New("no user: pass --user or sign in through the app first")

// withApp builds an App for one command, selects the user and closes the
// App afterwards, flushing any writes fn made.
func withApp(cmd *cobra.Command, g *globals, fn func(ctx context.Context, a *app.App) error) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	a, err := app.New(ctx, cfg, app.NewLogger(cmd.ErrOrStderr(), g.logLevel))
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, a.Close(context.WithoutCancel(ctx)))
	}()

	switch {
	case g.user != "":
		if err := a.UseIdentity(ctx, g.user); err != nil {
			return err
		}
	case a.Session.Current() == "":
		return errNoUser
	default:
		if err := a.Store.WaitHydrated(ctx); err != nil {
			return fmt.Errorf("load trips: %w", err)
		}
	}
	return fn(ctx, a)
}
