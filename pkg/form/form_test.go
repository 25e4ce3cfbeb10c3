package form

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/validation"
)

type rejection struct {
	status  int
	message string
}

func (r rejection) Error() string         { return "rejected: " + r.message }
func (r rejection) ServerMessage() string { return r.message }

type recordingSubmitter struct {
	mu      sync.Mutex
	calls   []State
	message string
	err     error
}

func (s *recordingSubmitter) Submit(_ context.Context, state State) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, state)
	return s.message, s.err
}

func fillValid(t *testing.T, f *Form) {
	t.Helper()
	events := []ChangeEvent{
		Text(model.FieldUsername, "gopher"),
		{Name: model.FieldFavLanguage, Type: "radio", Value: "rust"},
		{Name: model.FieldFavFood, Type: "select-one", Value: "pizza"},
		Checkbox(model.FieldAgreement, true),
	}
	for _, evt := range events {
		if err := f.Change(evt); err != nil {
			t.Fatalf("change %s: %v", evt.Name, err)
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	f := New(nil)
	snap := f.Snapshot()

	want := Snapshot{
		State: State{},
		Errors: Errors{
			model.FieldUsername:    "",
			model.FieldFavLanguage: "",
			model.FieldFavFood:     "",
			model.FieldAgreement:   "",
		},
	}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Fatalf("initial snapshot mismatch (-want +got):\n%s", diff)
	}
	if f.Enabled() {
		t.Fatalf("expected empty form to be disabled")
	}
}

func TestChange_InvalidThenValid(t *testing.T) {
	f := New(nil)

	cases := []struct {
		invalid ChangeEvent
		message string
		valid   ChangeEvent
	}{
		{Text(model.FieldUsername, "ab"), validation.MsgUsernameMin, Text(model.FieldUsername, "abc")},
		{Text(model.FieldUsername, "abcdefghijklmnopqrstu"), validation.MsgUsernameMax, Text(model.FieldUsername, "abcdefghijklmnopqrst")},
		{Text(model.FieldUsername, "   "), validation.MsgUsernameRequired, Text(model.FieldUsername, " gopher ")},
		{Text(model.FieldFavLanguage, "go"), validation.MsgFavLanguageOptions, Text(model.FieldFavLanguage, "javascript")},
		{Text(model.FieldFavFood, ""), validation.MsgFavFoodOptions, Text(model.FieldFavFood, "broccoli")},
		{Checkbox(model.FieldAgreement, false), validation.MsgAgreementOptions, Checkbox(model.FieldAgreement, true)},
	}

	for _, tc := range cases {
		if err := f.Change(tc.invalid); err != nil {
			t.Fatalf("change %s: %v", tc.invalid.Name, err)
		}
		if got := f.Errors().Get(tc.invalid.Name); got != tc.message {
			t.Fatalf("%s: expected %q, got %q", tc.invalid.Name, tc.message, got)
		}
		if err := f.Change(tc.valid); err != nil {
			t.Fatalf("change %s: %v", tc.valid.Name, err)
		}
		if got := f.Errors().Get(tc.valid.Name); got != "" {
			t.Fatalf("%s: expected message cleared, got %q", tc.valid.Name, got)
		}
	}
}

func TestChange_OnlyChangedFieldValidated(t *testing.T) {
	f := New(nil)
	if err := f.Change(Text(model.FieldUsername, "x")); err != nil {
		t.Fatalf("change: %v", err)
	}
	errs := f.Errors()
	if errs.Get(model.FieldUsername) != validation.MsgUsernameMin {
		t.Fatalf("expected username error, got %q", errs.Get(model.FieldUsername))
	}
	for _, name := range []string{model.FieldFavLanguage, model.FieldFavFood, model.FieldAgreement} {
		if errs.Get(name) != "" {
			t.Fatalf("untouched field %s should have no message, got %q", name, errs.Get(name))
		}
	}
}

func TestChange_EnablementTracksWholeForm(t *testing.T) {
	f := New(nil)
	fillValid(t, f)
	if !f.Enabled() {
		t.Fatalf("expected valid form to be enabled")
	}

	if err := f.Change(Checkbox(model.FieldAgreement, false)); err != nil {
		t.Fatalf("change: %v", err)
	}
	if f.Enabled() {
		t.Fatalf("expected form disabled after unchecking agreement")
	}
	if err := f.Change(Checkbox(model.FieldAgreement, true)); err != nil {
		t.Fatalf("change: %v", err)
	}
	if !f.Enabled() {
		t.Fatalf("expected form enabled again")
	}
}

func TestChange_CheckboxUsesCheckedState(t *testing.T) {
	f := New(nil)
	before := f.State()

	evt := ChangeEvent{Name: model.FieldAgreement, Type: "checkbox", Value: "on", Checked: true}
	if err := f.Change(evt); err != nil {
		t.Fatalf("change: %v", err)
	}
	after := f.State()
	if !after.Agreement {
		t.Fatalf("expected agreement to be true")
	}
	after.Agreement = before.Agreement
	if diff := cmp.Diff(before, after); diff != "" {
		t.Fatalf("checkbox toggle touched other fields (-before +after):\n%s", diff)
	}

	evt.Checked = false
	if err := f.Change(evt); err != nil {
		t.Fatalf("change: %v", err)
	}
	if f.State().Agreement {
		t.Fatalf("expected agreement to flip back to false")
	}
}

func TestChange_AgreementAsText(t *testing.T) {
	f := New(nil)
	if err := f.Change(Text(model.FieldAgreement, "true")); err != nil {
		t.Fatalf("change: %v", err)
	}
	if !f.State().Agreement {
		t.Fatalf("expected parsed agreement")
	}
	if err := f.Change(Text(model.FieldAgreement, "nope")); err != nil {
		t.Fatalf("change: %v", err)
	}
	if f.State().Agreement {
		t.Fatalf("expected unparsable agreement to store false")
	}
}

func TestChange_Rejections(t *testing.T) {
	f := New(nil)
	if err := f.Change(Text("email", "a@b.c")); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if err := f.Change(Checkbox(model.FieldUsername, true)); !errors.Is(err, ErrValueType) {
		t.Fatalf("expected ErrValueType, got %v", err)
	}
	if diff := cmp.Diff(State{}, f.State()); diff != "" {
		t.Fatalf("rejected events must not change state (-want +got):\n%s", diff)
	}
}

func TestSubmit_DisabledDoesNotSend(t *testing.T) {
	sub := &recordingSubmitter{message: "ok"}
	f := New(sub)
	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrSubmitDisabled) {
		t.Fatalf("expected ErrSubmitDisabled, got %v", err)
	}
	if len(sub.calls) != 0 {
		t.Fatalf("expected no submissions, got %d", len(sub.calls))
	}
}

func TestSubmit_NoSubmitter(t *testing.T) {
	f := New(nil)
	fillValid(t, f)
	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrNoSubmitter) {
		t.Fatalf("expected ErrNoSubmitter, got %v", err)
	}
}

func TestSubmit_SuccessResetsForm(t *testing.T) {
	sub := &recordingSubmitter{message: "Success! Welcome, new user!"}
	f := New(sub)
	fillValid(t, f)
	f.outcome = Outcome{Failure: "previous failure"}

	outcome, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	wantSent := State{Username: "gopher", FavLanguage: "rust", FavFood: "pizza", Agreement: true}
	if diff := cmp.Diff([]State{wantSent}, sub.calls); diff != "" {
		t.Fatalf("submitted payload mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Outcome{Success: "Success! Welcome, new user!"}, outcome); diff != "" {
		t.Fatalf("outcome mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(DefaultState(), f.State()); diff != "" {
		t.Fatalf("expected state reset (-want +got):\n%s", diff)
	}
	if f.Enabled() {
		t.Fatalf("expected reset form to be disabled")
	}
}

func TestSubmit_ServerErrorKeepsValues(t *testing.T) {
	sub := &recordingSubmitter{err: rejection{status: 422, message: "Sorry! Username is taken"}}
	f := New(sub)
	fillValid(t, f)
	f.outcome = Outcome{Success: "earlier success"}
	before := f.State()

	outcome, err := f.Submit(context.Background())
	if err != nil {
		t.Fatalf("server rejection should not surface as error: %v", err)
	}
	if diff := cmp.Diff(Outcome{Failure: "Sorry! Username is taken"}, outcome); diff != "" {
		t.Fatalf("outcome mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, f.State()); diff != "" {
		t.Fatalf("values must be kept on failure (-want +got):\n%s", diff)
	}
	if !f.Enabled() {
		t.Fatalf("expected form to stay enabled")
	}
}

func TestSubmit_TransportError(t *testing.T) {
	boom := errors.New("dial tcp: connection refused")
	f := New(&recordingSubmitter{err: boom})
	fillValid(t, f)

	outcome, err := f.Submit(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
	if outcome.Failure != boom.Error() || outcome.Success != "" {
		t.Fatalf("unexpected outcome %+v", outcome)
	}
	if f.State().Username != "gopher" {
		t.Fatalf("expected values to be kept")
	}
}

func TestSubmit_InFlightGuard(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	f := New(SubmitterFunc(func(ctx context.Context, _ State) (string, error) {
		close(started)
		<-release
		return "done", nil
	}))
	fillValid(t, f)

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background())
		done <- err
	}()
	<-started

	if !f.Snapshot().Submitting {
		t.Fatalf("expected snapshot to report submission in flight")
	}
	if _, err := f.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("expected ErrSubmitInFlight, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if got := f.Outcome().Success; got != "done" {
		t.Fatalf("expected success outcome, got %q", got)
	}
}

func TestReset(t *testing.T) {
	f := New(nil)
	if err := f.Change(Text(model.FieldUsername, "x")); err != nil {
		t.Fatalf("change: %v", err)
	}
	f.Reset()
	if f.Errors().Any() {
		t.Fatalf("expected messages cleared")
	}
	if diff := cmp.Diff(State{}, f.State()); diff != "" {
		t.Fatalf("expected default state (-want +got):\n%s", diff)
	}
}

func TestState_ValuesAndGet(t *testing.T) {
	s := State{Username: "gopher", FavLanguage: "rust", FavFood: "pizza", Agreement: true}
	want := map[string]any{
		"username":    "gopher",
		"favLanguage": "rust",
		"favFood":     "pizza",
		"agreement":   true,
	}
	if diff := cmp.Diff(want, s.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if got := s.String(model.FieldAgreement); got != "true" {
		t.Fatalf("expected agreement text true, got %q", got)
	}
	if _, ok := s.Get("email"); ok {
		t.Fatalf("expected unknown field lookup to fail")
	}
}
