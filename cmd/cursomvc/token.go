package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dropDatabas3/cursomvc/internal/domain/types"
	"github.com/dropDatabas3/cursomvc/internal/http/server"
	"github.com/dropDatabas3/cursomvc/internal/security/authz"
)

func newTokenCmd(load loadFunc) *cobra.Command {
	var (
		id    int64
		mail  string
		roles []string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Emite un access token firmado (sólo desarrollo)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id <= 0 {
				return fmt.Errorf("--id es requerido")
			}
			cfg, err := load()
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return fmt.Errorf("jwt.secret no configurado: el token no sería válido para el servidor")
			}

			p := &authz.Principal{ID: id, Email: mail}
			for _, name := range roles {
				r, err := types.ParseRole(name)
				if err != nil {
					return err
				}
				p.Roles = append(p.Roles, r)
			}

			issuer, err := server.NewIssuer(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			tok, exp, err := issuer.Sign(p)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", exp.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}
	cmd.Flags().Int64Var(&id, "id", 0, "ID del cliente (claim sub)")
	cmd.Flags().StringVar(&mail, "email", "", "Email del cliente")
	cmd.Flags().StringSliceVar(&roles, "role", []string{"ROLE_CLIENTE"}, "Roles (repetible)")
	return cmd
}
