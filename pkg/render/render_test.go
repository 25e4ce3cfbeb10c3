package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, model.FormModel, render.RenderOptions) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry(t *testing.T) {
	registry, err := render.NewRegistry(namedRenderer("tui"), namedRenderer("vanilla"))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	if diff := cmp.Diff([]string{"tui", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	got, err := registry.Get(" vanilla ")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name() != "vanilla" {
		t.Fatalf("unexpected renderer %q", got.Name())
	}
	if err := registry.Register(namedRenderer("tui")); err == nil {
		t.Fatal("expected duplicate registration error")
	}
	if err := registry.Register(namedRenderer("")); err == nil {
		t.Fatal("expected empty name error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatal("expected nil renderer error")
	}
	if _, err := registry.Get("preact"); err == nil {
		t.Fatal("expected unknown renderer error")
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "", want: ""},
		{in: "Success! Welcome, new user!", want: "Success! Welcome, new user!"},
		{in: "<b>Sorry!</b> Username is taken", want: "Sorry! Username is taken"},
		{in: "<script>alert(1)</script>Welcome", want: "Welcome"},
		{in: "Tom &amp; Jerry", want: "Tom & Jerry"},
	}
	for _, tc := range tests {
		if got := render.PlainText(tc.in); got != tc.want {
			t.Errorf("PlainText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewView_Pristine(t *testing.T) {
	view := render.NewView(model.Registration(), render.RenderOptions{})

	if view.Title != "Create an Account" || view.SubmitLabel != "Submit" {
		t.Fatalf("unexpected chrome: %+v", view)
	}
	if view.Action != model.DefaultEndpoint || view.Method != "POST" {
		t.Fatalf("unexpected action %q %q", view.Action, view.Method)
	}
	if view.Enabled {
		t.Fatal("pristine form must not be enabled")
	}
	if len(view.Fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(view.Fields))
	}
	food := view.Fields[2]
	if food.Control != "select" || !food.Options[0].Selected {
		t.Fatalf("placeholder option should be selected: %+v", food)
	}
}

func TestNewView_Snapshot(t *testing.T) {
	snapshot := form.Snapshot{
		State: form.State{
			Username:    "ab",
			FavLanguage: "rust",
			FavFood:     "pizza",
			Agreement:   true,
		},
		Errors:  form.Errors{model.FieldUsername: "username must be at least 3 characters"},
		Outcome: form.Outcome{Failure: "<i>Sorry!</i> Username is taken"},
		Enabled: true,
	}

	view := render.NewView(model.Registration(), render.RenderOptions{
		Action:   "/",
		Method:   "post",
		Snapshot: &snapshot,
	})

	if view.Action != "/" || view.Method != "POST" {
		t.Fatalf("unexpected action %q %q", view.Action, view.Method)
	}
	if view.Failure != "Sorry! Username is taken" {
		t.Fatalf("failure not sanitized: %q", view.Failure)
	}
	if !view.Enabled {
		t.Fatal("expected enabled view")
	}

	username := view.Fields[0]
	if username.Value != "ab" || username.Error != "username must be at least 3 characters" {
		t.Fatalf("unexpected username view: %+v", username)
	}
	var selected []string
	for _, opt := range view.Fields[1].Options {
		if opt.Selected {
			selected = append(selected, opt.Value)
		}
	}
	if diff := cmp.Diff([]string{"rust"}, selected); diff != "" {
		t.Fatalf("radio selection mismatch (-want +got):\n%s", diff)
	}
	if agreement := view.Fields[3]; !agreement.Checked {
		t.Fatalf("agreement should be checked: %+v", agreement)
	}
}

func TestNewView_SubmittingDisablesSubmit(t *testing.T) {
	snapshot := form.Snapshot{Enabled: true, Submitting: true}
	view := render.NewView(model.Registration(), render.RenderOptions{Snapshot: &snapshot})
	if view.Enabled {
		t.Fatal("submit must be disabled while a submission is in flight")
	}
}
