package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/pkg/validation"
)

var errInvalidPayload = errors.New("payload is invalid")

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a registration payload (JSON or YAML; stdin when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := a.readInput(args)
			if err != nil {
				return err
			}
			var payload map[string]any
			if err := yaml.Unmarshal(raw, &payload); err != nil {
				return fmt.Errorf("decode payload: %w", err)
			}
			if payload == nil {
				payload = map[string]any{}
			}

			contract, err := regform.Contract(cmd.Context())
			if err != nil {
				return err
			}

			failed := false
			schema := validation.Registration()
			errs := schema.Validate(payload)
			for _, name := range schema.Fields() {
				if msg := errs.Get(name); msg != "" {
					failed = true
					fmt.Fprintf(a.stdout, "%s: %s\n", name, msg)
				}
			}
			for _, issue := range contract.ValidatePayload(payload) {
				failed = true
				fmt.Fprintf(a.stdout, "contract %s: %s\n", issue.Field, issue.Message)
			}
			if failed {
				return errInvalidPayload
			}
			_, err = fmt.Fprintln(a.stdout, "payload is valid")
			return err
		},
	}
}

func (a *app) readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(a.stdin)
	}
	return os.ReadFile(args[0])
}
