package server

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/render"
)

// ActionSubmit is the value of the "action" field posted by the submit button.
const ActionSubmit = "submit"

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithAssets mounts files under /assets/.
func WithAssets(files fs.FS) Option {
	return func(h *Handler) {
		h.assets = files
	}
}

// WithSessionTTL sets how long an idle browser session keeps its form.
func WithSessionTTL(ttl time.Duration) Option {
	return func(h *Handler) {
		h.ttl = ttl
	}
}

// Handler renders the form on GET and applies browser posts on POST. Each
// browser session gets its own form from the factory.
type Handler struct {
	sessions *Sessions
	model    model.FormModel
	renderer render.Renderer
	assets   fs.FS
	ttl      time.Duration
	logger   *slog.Logger
}

// New builds a handler that creates forms through newForm.
func New(newForm FormFactory, m model.FormModel, renderer render.Renderer, options ...Option) *Handler {
	h := &Handler{
		model:    m,
		renderer: renderer,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	h.sessions = NewSessions(newForm, h.ttl)
	return h
}

// Sessions exposes the per-browser form store.
func (h *Handler) Sessions() *Sessions {
	return h.sessions
}

// Routes returns the mux serving the form, health probe and assets.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", h)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if h.assets != nil {
		mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(h.assets))))
	}
	return mux
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead, http.MethodPost:
	default:
		methodNotAllowedWith(w, http.MethodGet, http.MethodPost)
		return
	}

	f := h.formFor(w, r)
	status := http.StatusOK
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form payload", http.StatusBadRequest)
			return
		}
		if err := h.apply(f, r.PostForm); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("action") == ActionSubmit {
			status = h.submit(r, f)
		}
	}

	snapshot := f.Snapshot()
	if strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("format")), "json") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(snapshot); err != nil {
			h.logger.Error("write json response", "error", err)
		}
		return
	}

	output, err := h.renderer.Render(r.Context(), h.model, render.RenderOptions{
		Action:   "/",
		Method:   http.MethodPost,
		Snapshot: &snapshot,
	})
	if err != nil {
		h.logger.Error("render form", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(status)
	if _, err := w.Write(output); err != nil {
		h.logger.Error("write response", "error", err)
	}
}

// formFor returns the form of the requesting browser, starting a session
// and setting its cookie when there is none.
func (h *Handler) formFor(w http.ResponseWriter, r *http.Request) *form.Form {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if f, ok := h.sessions.Lookup(cookie.Value); ok {
			return f
		}
	}
	id, f := h.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.logger.Debug("session started", "sessions", h.sessions.Len())
	return f
}

// apply replays posted values as change events for fields whose value
// differs from the current state. An absent checkbox means unchecked; an
// absent radio group means nothing was chosen. A field posted unchanged is
// not revalidated: validation runs on change only.
func (h *Handler) apply(f *form.Form, values map[string][]string) error {
	state := f.State()
	for _, field := range h.model.Fields {
		raw, present := values[field.Name]
		value := ""
		if len(raw) > 0 {
			value = raw[0]
		}

		var evt form.ChangeEvent
		switch field.Control {
		case model.ControlCheckbox:
			checked := present && truthy(value)
			if current, _ := state.Get(field.Name); current == checked {
				continue
			}
			evt = form.Checkbox(field.Name, checked)
		default:
			if !present || state.String(field.Name) == value {
				continue
			}
			evt = form.Text(field.Name, value)
		}

		if err := f.Change(evt); err != nil {
			return err
		}
		h.logger.Debug("field changed", "field", field.Name, "error", f.Errors().Get(field.Name))
	}
	return nil
}

func (h *Handler) submit(r *http.Request, f *form.Form) int {
	outcome, err := f.Submit(r.Context())
	switch {
	case errors.Is(err, form.ErrSubmitDisabled):
		return http.StatusUnprocessableEntity
	case errors.Is(err, form.ErrSubmitInFlight):
		return http.StatusConflict
	case err != nil:
		h.logger.Warn("submit failed", "error", err)
		if outcome.Failure == "" {
			return http.StatusInternalServerError
		}
		return http.StatusBadGateway
	case outcome.Failed():
		return http.StatusUnprocessableEntity
	default:
		return http.StatusOK
	}
}

func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "yes":
		return true
	}
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}

func methodNotAllowedWith(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
