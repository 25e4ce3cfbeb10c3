package render

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
)

// View is the renderer-neutral projection of a form model and snapshot.
type View struct {
	Title       string
	SubmitLabel string
	Action      string
	Method      string
	Success     string
	Failure     string
	Enabled     bool
	Submitting  bool
	Fields      []FieldView
}

// FieldView describes a single control.
type FieldView struct {
	Name        string
	Label       string
	Control     string
	Placeholder string
	Required    bool
	Value       string
	Checked     bool
	Error       string
	Options     []OptionView
}

// OptionView is a radio or select option.
type OptionView struct {
	Label    string
	Value    string
	Selected bool
}

// NewView merges the model with the snapshot in options. Server messages
// are reduced to plain text.
func NewView(m model.FormModel, options RenderOptions) View {
	snapshot := form.NewSnapshot(m.FieldNames())
	if options.Snapshot != nil {
		snapshot = *options.Snapshot
	}

	view := View{
		Title:       m.Title,
		SubmitLabel: m.SubmitLabel,
		Action:      firstNonEmpty(options.Action, m.Endpoint),
		Method:      strings.ToUpper(firstNonEmpty(options.Method, m.Method, http.MethodPost)),
		Success:     PlainText(snapshot.Outcome.Success),
		Failure:     PlainText(snapshot.Outcome.Failure),
		Enabled:     snapshot.Enabled && !snapshot.Submitting,
		Submitting:  snapshot.Submitting,
	}
	if view.SubmitLabel == "" {
		view.SubmitLabel = "Submit"
	}

	for _, field := range m.Fields {
		fv := FieldView{
			Name:        field.Name,
			Label:       field.Label,
			Control:     string(field.Control),
			Placeholder: field.Placeholder,
			Required:    field.Required,
			Error:       snapshot.Errors.Get(field.Name),
		}
		value, _ := snapshot.State.Get(field.Name)
		switch v := value.(type) {
		case bool:
			fv.Checked = v
			if v {
				fv.Value = "true"
			}
		case string:
			fv.Value = v
		}
		for _, opt := range field.Options {
			fv.Options = append(fv.Options, OptionView{
				Label:    opt.Label,
				Value:    opt.Value,
				Selected: opt.Value == fv.Value,
			})
		}
		view.Fields = append(view.Fields, fv)
	}
	return view
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
