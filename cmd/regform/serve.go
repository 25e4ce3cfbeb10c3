package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form as an HTML page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			renderer, err := vanilla.New(vanilla.WithStylesheet("/assets/" + vanilla.StylesheetName))
			if err != nil {
				return err
			}
			handler := server.New(a.form, regform.Model(), renderer,
				server.WithLogger(a.logger),
				server.WithAssets(vanilla.AssetsFS()),
			)
			a.logger.Info("serving form", "endpoint", a.cfg.Endpoint)
			return server.Run(cmd.Context(), a.cfg.Listen, handler.Routes(), a.logger, nil)
		},
	}
	cmd.Flags().String("listen", "", "address to listen on")
	a.bind(cmd, "listen", "listen")
	return cmd
}
