package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/cursomvc/internal/http/server"
)

func newMigrateCmd(load loadFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones SQL embebidas al store postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			dal, err := server.OpenStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer dal.Close()

			res, err := server.RunMigrations(ctx, dal)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied=%v skipped=%d (%s)\n", res.Applied, len(res.Skipped), res.Duration)
			return nil
		},
	}
}
