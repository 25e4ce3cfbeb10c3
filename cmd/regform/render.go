package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-regform"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		sets   []string
		action string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the form, optionally after applying field changes",
		Example: `  regform render --set username=gopher --set agreement=true
  regform render --renderer tui -o pretty --set favFood=pizza`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := a.registry()
			if err != nil {
				return err
			}
			renderer, err := registry.Get(a.cfg.Renderer)
			if err != nil {
				return err
			}

			m := regform.Model()
			f := form.New(nil, form.WithLogger(a.logger))
			for _, raw := range sets {
				evt, err := changeEvent(m, raw)
				if err != nil {
					return err
				}
				if err := f.Change(evt); err != nil {
					return fmt.Errorf("apply %s: %w", raw, err)
				}
			}

			snapshot := f.Snapshot()
			out, err := renderer.Render(cmd.Context(), m, render.RenderOptions{
				Action:   action,
				Snapshot: &snapshot,
			})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, string(out))
			return err
		},
	}
	cmd.Flags().StringP("renderer", "r", "", "renderer name (vanilla, tui)")
	cmd.Flags().StringP("output", "o", "", "tui output format (json, form, pretty)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "field change as name=value (repeatable)")
	cmd.Flags().StringVar(&action, "action", "", "form action URL for HTML output")
	a.bind(cmd, "renderer", "renderer")
	a.bind(cmd, "output", "output")
	return cmd
}

func (a *app) registry() (*render.Registry, error) {
	format, err := tui.ParseOutputFormat(a.cfg.Output)
	if err != nil {
		return nil, err
	}
	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	driver := a.driver
	if driver == nil {
		driver = tui.NewSurveyDriver(a.stdout)
	}
	return render.NewRegistry(html, tui.New(tui.WithOutputFormat(format), tui.WithPromptDriver(driver)))
}

// changeEvent turns name=value into the event the matching control would
// emit.
func changeEvent(m model.FormModel, raw string) (form.ChangeEvent, error) {
	name, value, ok := strings.Cut(raw, "=")
	if !ok {
		return form.ChangeEvent{}, fmt.Errorf("invalid --set %q: want name=value", raw)
	}
	field, ok := m.Field(strings.TrimSpace(name))
	if !ok {
		return form.ChangeEvent{}, fmt.Errorf("invalid --set %q: %w", raw, form.ErrUnknownField)
	}
	if field.Control == model.ControlCheckbox {
		checked, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return form.ChangeEvent{}, fmt.Errorf("invalid --set %q: %w", raw, err)
		}
		return form.Checkbox(field.Name, checked), nil
	}
	return form.Text(field.Name, value), nil
}
