package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
)

const dryRunMessage = "Dry run: payload not sent"

func newTUICmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Fill in and submit the form interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := tui.ParseOutputFormat(a.cfg.Output)
			if err != nil {
				return err
			}
			driver := a.driver
			if driver == nil {
				driver = tui.NewSurveyDriver(a.stdout)
			}
			renderer := tui.New(
				tui.WithPromptDriver(driver),
				tui.WithOutputFormat(format),
				tui.WithLogger(a.logger),
			)

			var captured *form.State
			f := a.form()
			if dryRun {
				f = form.New(form.SubmitterFunc(func(_ context.Context, state form.State) (string, error) {
					captured = &state
					return dryRunMessage, nil
				}), form.WithLogger(a.logger))
			}

			outcome, err := renderer.Run(cmd.Context(), f, regform.Model())
			if err != nil {
				return err
			}
			a.logger.Debug("tui session finished", "success", outcome.Success, "failure", outcome.Failure)

			if captured == nil {
				return nil
			}
			out, err := renderer.Render(cmd.Context(), regform.Model(), render.RenderOptions{
				Snapshot: &form.Snapshot{State: *captured},
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, string(out))
			return err
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the payload instead of sending it")
	cmd.Flags().StringP("output", "o", "", "dry-run payload format (json, form, pretty)")
	a.bind(cmd, "output", "output")
	return cmd
}
