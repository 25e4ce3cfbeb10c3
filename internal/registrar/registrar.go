// Package registrar implements a local registration endpoint matching the
// embedded OpenAPI contract. It stands in for the remote API during
// development and tests.
package registrar

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/goliatone/go-regform/pkg/client"
	"github.com/goliatone/go-regform/pkg/model"
	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Messages returned in the JSON "message" field.
const (
	MessageWelcome    = "Success! Welcome, new user!"
	MessageTaken      = "Sorry! Username is taken"
	MessageBadPayload = "request body must be a JSON object"
)

const maxBodyBytes = 64 << 10

// Option configures a Registrar.
type Option func(*Registrar)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registrar) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithTaken pre-registers usernames.
func WithTaken(usernames ...string) Option {
	return func(r *Registrar) {
		for _, name := range usernames {
			r.taken[normalize(name)] = struct{}{}
		}
	}
}

// Registrar accepts registrations and remembers usernames in memory.
type Registrar struct {
	contract *openapi.Contract
	schema   *validation.Schema
	logger   *slog.Logger

	mu    sync.Mutex
	taken map[string]struct{}
}

// New builds a registrar validating requests against contract.
func New(contract *openapi.Contract, options ...Option) *Registrar {
	r := &Registrar{
		contract: contract,
		schema:   validation.Registration(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		taken:    make(map[string]struct{}),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Routes mounts the registration operation at its contract path.
func (r *Registrar) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(r.contract.Path(), r)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Registered reports whether username has been taken.
func (r *Registrar) Registered(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.taken[normalize(username)]
	return ok
}

func (r *Registrar) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != r.contract.Method() {
		w.Header().Set("Allow", r.contract.Method())
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	logger := r.logger.With("request_id", req.Header.Get(client.RequestIDHeader))

	payload, err := decode(req.Body)
	if err != nil {
		logger.Debug("rejecting undecodable payload", "error", err)
		writeMessage(w, http.StatusBadRequest, MessageBadPayload)
		return
	}

	if msg := r.firstViolation(payload); msg != "" {
		logger.Info("registration invalid", "message", msg)
		writeMessage(w, http.StatusUnprocessableEntity, msg)
		return
	}

	username, _ := payload[model.FieldUsername].(string)
	if !r.claim(username) {
		logger.Info("registration rejected", "username", username)
		writeMessage(w, http.StatusUnprocessableEntity, MessageTaken)
		return
	}

	logger.Info("registration accepted", "username", username)
	writeMessage(w, http.StatusCreated, MessageWelcome)
}

// firstViolation checks the field rules in form order first, then the
// contract, which also catches wrong JSON types.
func (r *Registrar) firstViolation(payload map[string]any) string {
	errs := r.schema.Validate(payload)
	for _, name := range r.schema.Fields() {
		if msg := errs.Get(name); msg != "" {
			return msg
		}
	}
	if issues := r.contract.ValidatePayload(payload); len(issues) > 0 {
		issue := issues[0]
		if issue.Field == "" {
			return issue.Message
		}
		return issue.Field + ": " + issue.Message
	}
	return ""
}

func (r *Registrar) claim(username string) bool {
	key := normalize(username)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.taken[key]; exists {
		return false
	}
	r.taken[key] = struct{}{}
	return true
}

func decode(body io.Reader) (map[string]any, error) {
	var payload map[string]any
	dec := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, errors.New("registrar: payload is null")
	}
	return payload, nil
}

func normalize(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
