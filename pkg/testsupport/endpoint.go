package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Reply is a canned response served by Endpoint.
type Reply struct {
	Status  int
	Message string
}

// Success is the reply the registration endpoint sends for a new user.
var Success = Reply{Status: http.StatusCreated, Message: "Success! Welcome, new user!"}

// Taken is the reply sent for a duplicate username.
var Taken = Reply{Status: http.StatusUnprocessableEntity, Message: "Sorry! Username is taken"}

// Request is a recorded call to Endpoint.
type Request struct {
	Method string
	Header http.Header
	Body   map[string]any
}

// Endpoint is a scripted registration endpoint. Replies are served in
// order; the last one repeats.
type Endpoint struct {
	*httptest.Server

	mu       sync.Mutex
	replies  []Reply
	requests []Request
}

// NewEndpoint starts an Endpoint closed automatically at test cleanup.
func NewEndpoint(t *testing.T, replies ...Reply) *Endpoint {
	t.Helper()

	if len(replies) == 0 {
		replies = []Reply{Success}
	}
	e := &Endpoint{replies: replies}
	e.Server = httptest.NewServer(http.HandlerFunc(e.serve))
	t.Cleanup(e.Server.Close)
	return e
}

func (e *Endpoint) serve(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	e.mu.Lock()
	e.requests = append(e.requests, Request{Method: r.Method, Header: r.Header.Clone(), Body: body})
	reply := e.replies[0]
	if len(e.replies) > 1 {
		e.replies = e.replies[1:]
	}
	e.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.Status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": reply.Message})
}

// Requests returns a copy of the recorded requests.
func (e *Endpoint) Requests() []Request {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Request(nil), e.requests...)
}
