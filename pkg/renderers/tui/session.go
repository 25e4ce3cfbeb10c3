package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
)

const (
	menuSubmit = "Submit"
	menuQuit   = "Quit"
)

// Run walks every field once, then offers a menu to edit fields, submit or
// quit. Each answer is applied to f as a change event and the resulting
// validation message is shown. The session ends after a successful
// submission or when the user quits; the last outcome is returned.
func (r *Renderer) Run(ctx context.Context, f *form.Form, m model.FormModel) (form.Outcome, error) {
	if f == nil {
		return form.Outcome{}, errors.New("tui: form is required")
	}
	if m.Title != "" {
		if err := r.driver.Info(ctx, m.Title); err != nil {
			return form.Outcome{}, err
		}
	}

	for _, field := range m.Fields {
		if err := r.promptField(ctx, f, field); err != nil {
			return f.Outcome(), err
		}
	}

	for {
		choice, err := r.menu(ctx, f, m)
		if err != nil {
			return f.Outcome(), err
		}

		switch {
		case choice < len(m.Fields):
			if err := r.promptField(ctx, f, m.Fields[choice]); err != nil {
				return f.Outcome(), err
			}
		case choice == len(m.Fields):
			done, err := r.submit(ctx, f)
			if err != nil || done {
				return f.Outcome(), err
			}
		default:
			r.logger.Debug("tui session quit")
			return f.Outcome(), nil
		}
	}
}

func (r *Renderer) menu(ctx context.Context, f *form.Form, m model.FormModel) (int, error) {
	view := render.NewView(m, render.RenderOptions{Snapshot: ptr(f.Snapshot())})

	options := make([]string, 0, len(view.Fields)+2)
	for _, field := range view.Fields {
		options = append(options, fmt.Sprintf("Edit %s (%s)", fieldLabel(field), displayValue(field)))
	}
	submit := view.SubmitLabel
	if !view.Enabled {
		submit += " (disabled)"
	}
	options = append(options, submit, menuQuit)

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "What next?",
		Options:      options,
		DefaultIndex: len(view.Fields),
	})
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(options) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidChoice, idx)
	}
	return idx, nil
}

func (r *Renderer) submit(ctx context.Context, f *form.Form) (bool, error) {
	if !f.Enabled() {
		return false, r.report(ctx, f, "", "Fix the highlighted fields before submitting.")
	}

	outcome, err := f.Submit(ctx)
	switch {
	case errors.Is(err, form.ErrSubmitDisabled), errors.Is(err, form.ErrSubmitInFlight), errors.Is(err, form.ErrNoSubmitter):
		return false, err
	case err != nil:
		r.logger.Warn("tui submit failed", "error", err)
	}
	if outcome.Succeeded() {
		return true, r.info(ctx, r.theme.InfoPrefix+render.PlainText(outcome.Success))
	}
	return false, r.info(ctx, r.theme.ErrorPrefix+render.PlainText(outcome.Failure))
}

func (r *Renderer) promptField(ctx context.Context, f *form.Form, field model.Field) error {
	evt, err := r.ask(ctx, f.State(), field)
	if err != nil {
		return err
	}
	if err := f.Change(evt); err != nil {
		return fmt.Errorf("tui: apply %s: %w", field.Name, err)
	}
	return r.report(ctx, f, field.Name, "")
}

func (r *Renderer) ask(ctx context.Context, state form.State, field model.Field) (form.ChangeEvent, error) {
	label := strings.TrimSpace(field.Label)
	if label == "" {
		label = field.Name
	}

	switch field.Control {
	case model.ControlCheckbox:
		current, _ := state.Get(field.Name)
		checked, _ := current.(bool)
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: checked,
			Help:    field.Description,
		})
		if err != nil {
			return form.ChangeEvent{}, err
		}
		return form.Checkbox(field.Name, answer), nil

	case model.ControlRadio, model.ControlSelect:
		current := state.String(field.Name)
		labels := make([]string, len(field.Options))
		defaultIdx := 0
		for i, opt := range field.Options {
			labels[i] = opt.Label
			if opt.Value == current {
				defaultIdx = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         field.Description,
		})
		if err != nil {
			return form.ChangeEvent{}, err
		}
		if idx < 0 || idx >= len(field.Options) {
			return form.ChangeEvent{}, fmt.Errorf("%w: %d", ErrInvalidChoice, idx)
		}
		return form.Text(field.Name, field.Options[idx].Value), nil

	default:
		help := field.Description
		if help == "" {
			help = field.Placeholder
		}
		value, err := r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: state.String(field.Name),
			Help:    help,
		})
		if err != nil {
			return form.ChangeEvent{}, err
		}
		return form.Text(field.Name, value), nil
	}
}

// report prints the validation message for name, or every current message
// plus notice when name is empty.
func (r *Renderer) report(ctx context.Context, f *form.Form, name, notice string) error {
	errs := f.Errors()
	if name != "" {
		if msg := errs.Get(name); msg != "" {
			return r.info(ctx, r.theme.ErrorPrefix+msg)
		}
		return nil
	}

	if notice != "" {
		if err := r.info(ctx, r.theme.ErrorPrefix+notice); err != nil {
			return err
		}
	}
	for _, field := range f.Fields() {
		if msg := errs.Get(field); msg != "" {
			if err := r.info(ctx, "  "+msg); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, msg)
}

func ptr[T any](v T) *T {
	return &v
}
