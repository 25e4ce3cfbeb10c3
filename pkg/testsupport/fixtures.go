package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
)

// ValidState returns a form state that satisfies every rule.
func ValidState() form.State {
	return form.State{
		Username:    "gopher",
		FavLanguage: "rust",
		FavFood:     "pizza",
		Agreement:   true,
	}
}

// FillValid drives f to ValidState through change events.
func FillValid(t *testing.T, f *form.Form) {
	t.Helper()

	state := ValidState()
	events := []form.ChangeEvent{
		form.Text(model.FieldUsername, state.Username),
		form.Text(model.FieldFavLanguage, state.FavLanguage),
		form.Text(model.FieldFavFood, state.FavFood),
		form.Checkbox(model.FieldAgreement, state.Agreement),
	}
	for _, evt := range events {
		if err := f.Change(evt); err != nil {
			t.Fatalf("change %s: %v", evt.Name, err)
		}
	}
	if !f.Enabled() {
		t.Fatalf("form should be enabled after valid input: %+v", f.Errors())
	}
}

// MustLoadFormModel loads a JSON fixture into a FormModel structure.
func MustLoadFormModel(t *testing.T, path string) model.FormModel {
	t.Helper()

	m, err := LoadFormModel(path)
	if err != nil {
		t.Fatalf("load form model: %v", err)
	}
	return m
}

// LoadFormModel reads a JSON fixture into a FormModel.
func LoadFormModel(path string) (model.FormModel, error) {
	if path == "" {
		return model.FormModel{}, errors.New("testsupport: form model path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("testsupport: read form model: %w", err)
	}
	var out model.FormModel
	if err := json.Unmarshal(data, &out); err != nil {
		return model.FormModel{}, fmt.Errorf("testsupport: unmarshal form model: %w", err)
	}
	return out, nil
}

// WriteGolden writes value as indented JSON when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	writeFile(t, path, payload)
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	writeFile(t, path, data)
	return true
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureOutput runs fn against a buffer and returns both the returned
// string and what was written.
func CaptureOutput(t *testing.T, fn func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := fn(&buf)
	if err != nil {
		t.Fatalf("capture output: %v", err)
	}
	return out, buf.String()
}
