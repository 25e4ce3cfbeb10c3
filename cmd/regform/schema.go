package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/pkg/openapi"
)

func newSchemaCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the registration endpoint contract",
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch format {
			case "yaml", "":
				_, err := a.stdout.Write(openapi.RegistrationDocument())
				return err
			}

			contract, err := regform.Contract(cmd.Context())
			if err != nil {
				return err
			}
			var value any
			switch format {
			case "json":
				value = contract.Spec()
			case "model":
				m, err := contract.FormModel()
				if err != nil {
					return err
				}
				value = m
			default:
				return fmt.Errorf("unknown format %q (want yaml, json or model)", format)
			}
			enc := json.NewEncoder(a.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(value)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json, model)")
	return cmd
}
