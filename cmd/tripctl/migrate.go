package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/backend/internal/app"
	"github.com/pkordes/trip-planner/backend/internal/config"
	"github.com/pkordes/trip-planner/backend/internal/repo"
)

func newMigrateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations for the sqlite or postgres driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.StorageDriver != config.DriverSQLite && cfg.StorageDriver != config.DriverPostgres {
				fmt.Fprintf(out, "storage driver %q has no schema\n", cfg.StorageDriver)
				return nil
			}
			// Opening a SQL driver applies its migrations.
			_, closeFn, err := repo.Open(cmd.Context(), cfg, app.NewLogger(cmd.ErrOrStderr(), g.logLevel))
			if err != nil {
				return err
			}
			if err := closeFn(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s schema is up to date\n", cfg.StorageDriver)
			return nil
		},
	}
}
