package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform/pkg/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(*cobra.Command, []string) error {
			data, err := a.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = a.stdout.Write(data)
			return err
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init <path>",
		Short: "Write the default configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := config.WriteDefault(args[0]); err != nil {
				return err
			}
			a.logger.Info("config written", "path", args[0])
			return nil
		},
	})
	return cmd
}
