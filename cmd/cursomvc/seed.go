package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/cursomvc/internal/http/server"
	"github.com/dropDatabas3/cursomvc/internal/security/password"
	"github.com/dropDatabas3/cursomvc/internal/store/seed"
)

func newSeedCmd(load loadFunc) *cobra.Command {
	opts := seed.Defaults

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Carga datos de demostración (catálogo, un ADMIN, un cliente y un pedido)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			hasher, err := password.New(cfg.Security.PasswordHasher)
			if err != nil {
				return err
			}
			dal, err := server.OpenStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer dal.Close()

			res, err := seed.Run(ctx, dal, hasher, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin=%d client=%d order=%d categories=%d products=%d\n",
				res.AdminID, res.ClientID, res.OrderID, res.Categories, res.Products)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.AdminEmail, "admin-email", opts.AdminEmail, "Email del ADMIN")
	cmd.Flags().StringVar(&opts.AdminPassword, "admin-password", opts.AdminPassword, "Contraseña del ADMIN")
	cmd.Flags().StringVar(&opts.ClientEmail, "client-email", opts.ClientEmail, "Email del cliente")
	cmd.Flags().StringVar(&opts.ClientPassword, "client-password", opts.ClientPassword, "Contraseña del cliente")
	return cmd
}
