package registrar_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-regform/internal/registrar"
	"github.com/goliatone/go-regform/pkg/client"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/openapi"
	"github.com/goliatone/go-regform/pkg/testsupport"
	"github.com/goliatone/go-regform/pkg/validation"
)

func newRegistrar(t *testing.T, opts ...registrar.Option) (*registrar.Registrar, *httptest.Server) {
	t.Helper()
	contract, err := openapi.LoadRegistration(context.Background())
	require.NoError(t, err)

	reg := registrar.New(contract, opts...)
	srv := httptest.NewServer(reg.Routes())
	t.Cleanup(srv.Close)
	return reg, srv
}

func postJSON(t *testing.T, url string, body string) (int, string) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload.Message
}

func TestRegistrar_Responses(t *testing.T) {
	_, srv := newRegistrar(t, registrar.WithTaken("Taken"))
	url := srv.URL + "/registration"

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{
			name:    "accepted",
			body:    `{"username":"gopher","favLanguage":"rust","favFood":"pizza","agreement":true}`,
			status:  http.StatusCreated,
			message: registrar.MessageWelcome,
		},
		{
			name:    "duplicate",
			body:    `{"username":"gopher","favLanguage":"javascript","favFood":"broccoli","agreement":true}`,
			status:  http.StatusUnprocessableEntity,
			message: registrar.MessageTaken,
		},
		{
			name:    "pre-registered ignores case",
			body:    `{"username":"  taken ","favLanguage":"rust","favFood":"pizza","agreement":true}`,
			status:  http.StatusUnprocessableEntity,
			message: registrar.MessageTaken,
		},
		{
			name:    "padded twenty character username",
			body:    `{"username":"  abcdefghijklmnopqrst  ","favLanguage":"rust","favFood":"pizza","agreement":true}`,
			status:  http.StatusCreated,
			message: registrar.MessageWelcome,
		},
		{
			name:    "first rule violation in form order",
			body:    `{"username":"ab","favLanguage":"go","favFood":"pizza","agreement":true}`,
			status:  http.StatusUnprocessableEntity,
			message: validation.MsgUsernameMin,
		},
		{
			name:    "missing field",
			body:    `{"username":"gopher2","favLanguage":"rust","favFood":"pizza"}`,
			status:  http.StatusUnprocessableEntity,
			message: validation.MsgAgreementRequired,
		},
		{
			name:   "agreement as string fails contract",
			body:   `{"username":"gopher3","favLanguage":"rust","favFood":"pizza","agreement":"true"}`,
			status: http.StatusUnprocessableEntity,
		},
		{
			name:    "not json",
			body:    `username=gopher`,
			status:  http.StatusBadRequest,
			message: registrar.MessageBadPayload,
		},
		{
			name:    "null body",
			body:    `null`,
			status:  http.StatusBadRequest,
			message: registrar.MessageBadPayload,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, message := postJSON(t, url, tc.body)
			assert.Equal(t, tc.status, status)
			if tc.message != "" {
				assert.Equal(t, tc.message, message)
			} else {
				assert.NotEmpty(t, message)
			}
		})
	}
}

func TestRegistrar_MethodNotAllowed(t *testing.T) {
	_, srv := newRegistrar(t)

	resp, err := http.Get(srv.URL + "/registration")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, http.MethodPost, resp.Header.Get("Allow"))
}

func TestRegistrar_WithClientAndForm(t *testing.T) {
	reg, srv := newRegistrar(t)
	f := form.New(client.New(client.WithEndpoint(srv.URL + "/registration")))
	testsupport.FillValid(t, f)

	outcome, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, registrar.MessageWelcome, outcome.Success)
	assert.True(t, reg.Registered("gopher"))

	testsupport.FillValid(t, f)
	outcome, err = f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, registrar.MessageTaken, outcome.Failure)
	assert.Equal(t, testsupport.ValidState(), f.State())
}

func TestRegistrar_AcceptsPaddedUsernameFromForm(t *testing.T) {
	reg, srv := newRegistrar(t)
	f := form.New(client.New(client.WithEndpoint(srv.URL + "/registration")))
	testsupport.FillValid(t, f)
	require.NoError(t, f.Change(form.Text("username", "  abcdefghijklmnopqrst  ")))
	require.True(t, f.Enabled())

	outcome, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, registrar.MessageWelcome, outcome.Success)
	assert.Empty(t, outcome.Failure)
	assert.True(t, reg.Registered("abcdefghijklmnopqrst"))
}
