package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/internal/registrar"
	"github.com/goliatone/go-regform/pkg/server"
)

func newRegistrarCmd(a *app) *cobra.Command {
	var taken []string

	cmd := &cobra.Command{
		Use:   "registrar",
		Short: "Run a local registration endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			contract, err := regform.Contract(cmd.Context())
			if err != nil {
				return err
			}
			reg := registrar.New(contract,
				registrar.WithLogger(a.logger),
				registrar.WithTaken(taken...),
			)
			a.logger.Info("registrar ready", "path", contract.Path(), "taken", len(taken))
			return server.Run(cmd.Context(), a.cfg.RegistrarListen, reg.Routes(), a.logger, nil)
		},
	}
	cmd.Flags().String("listen", "", "address to listen on")
	cmd.Flags().StringSliceVar(&taken, "taken", nil, "usernames to treat as already registered")
	a.bind(cmd, "listen", "registrar_listen")
	return cmd
}
