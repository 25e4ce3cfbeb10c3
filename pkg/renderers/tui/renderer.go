package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
)

// Name is the registry name of the terminal renderer.
const Name = "tui"

// Renderer serializes form snapshots for the terminal and runs interactive
// prompt sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
	logger       *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render serializes the snapshot carried by opts without prompting.
func (r *Renderer) Render(ctx context.Context, m model.FormModel, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		snapshot := form.NewSnapshot(m.FieldNames())
		if opts.Snapshot != nil {
			snapshot = *opts.Snapshot
		}
		return []byte(encodeForm(snapshot.State)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(render.NewView(m, opts))), nil
	default:
		snapshot := form.NewSnapshot(m.FieldNames())
		if opts.Snapshot != nil {
			snapshot = *opts.Snapshot
		}
		return json.Marshal(snapshot.State)
	}
}

func encodeForm(state form.State) string {
	values := url.Values{}
	for key, value := range state.Values() {
		values.Set(key, fmt.Sprint(value))
	}
	return values.Encode()
}

func prettyPrint(view render.View) string {
	var b strings.Builder
	if view.Title != "" {
		fmt.Fprintln(&b, view.Title)
	}
	for _, field := range view.Fields {
		fmt.Fprintf(&b, "%s: %s\n", fieldLabel(field), displayValue(field))
		if field.Error != "" {
			fmt.Fprintf(&b, "  ! %s\n", field.Error)
		}
	}
	state := "disabled"
	if view.Enabled {
		state = "enabled"
	}
	fmt.Fprintf(&b, "%s: %s\n", view.SubmitLabel, state)
	if view.Success != "" {
		fmt.Fprintf(&b, "Success: %s\n", view.Success)
	}
	if view.Failure != "" {
		fmt.Fprintf(&b, "Error: %s\n", view.Failure)
	}
	return b.String()
}

func fieldLabel(field render.FieldView) string {
	label := strings.TrimSuffix(strings.TrimSpace(field.Label), ":")
	if label == "" {
		return field.Name
	}
	return label
}

func displayValue(field render.FieldView) string {
	switch field.Control {
	case string(model.ControlCheckbox):
		if field.Checked {
			return "yes"
		}
		return "no"
	case string(model.ControlRadio), string(model.ControlSelect):
		for _, opt := range field.Options {
			if opt.Selected && opt.Value != "" {
				return opt.Label
			}
		}
		return "-"
	default:
		if field.Value == "" {
			return "-"
		}
		return field.Value
	}
}

func errUnknownFormat(raw string) error {
	return fmt.Errorf("tui: unknown output format %q", raw)
}
