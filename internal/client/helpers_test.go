package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

// fakeAPI is a scripted API server. Routes are keyed by "METHOD /path".
type fakeAPI struct {
	t      *testing.T
	server *httptest.Server
	calls  atomic.Int32

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []*recordedRequest
}

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{t: t, routes: make(map[string]http.HandlerFunc)}
	api.server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.server.Close)

	return api
}

func (a *fakeAPI) handle(method, path string, handler http.HandlerFunc) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.routes[method+" "+strings.TrimSuffix(tfe.DefaultBasePath, "/")+path] = handler
}

// respond registers a route answering with a fixed status and body.
func (a *fakeAPI) respond(method, path string, status int, body string) {
	a.handle(method, path, func(w http.ResponseWriter, _ *http.Request) {
		writeJSONAPI(w, status, body)
	})
}

func (a *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	a.calls.Add(1)

	body, _ := io.ReadAll(r.Body)

	a.mu.Lock()
	a.requests = append(a.requests, &recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
		Body:   body,
	})
	handler, ok := a.routes[r.Method+" "+r.URL.Path]
	a.mu.Unlock()

	if !ok {
		a.t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		writeJSONAPI(w, http.StatusNotFound, `{"errors":[{"status":"404","title":"not found"}]}`)

		return
	}

	handler(w, r)
}

func (a *fakeAPI) lastRequest() *recordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()

	require.NotEmpty(a.t, a.requests)

	return a.requests[len(a.requests)-1]
}

// lastDocument decodes the JSON:API document of the last request.
func (a *fakeAPI) lastDocument() *tfe.ResourceObject {
	var doc tfe.Document
	require.NoError(a.t, json.Unmarshal(a.lastRequest().Body, &doc))
	require.NotNil(a.t, doc.Data)

	return doc.Data
}

// client builds a Client with retries disabled.
func (a *fakeAPI) client() *Client {
	a.t.Helper()

	return a.clientWith(nil)
}

// clientWith builds a Client after letting configure adjust the config.
func (a *fakeAPI) clientWith(configure func(*tfe.Config)) *Client {
	a.t.Helper()

	config := &tfe.Config{
		Address:  a.server.URL,
		Token:    "test-token",
		RetryMax: -1,
	}

	if configure != nil {
		configure(config)
	}

	c, err := New(context.Background(), config)
	require.NoError(a.t, err)

	return c
}

func writeJSONAPI(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", tfe.MediaType)
	w.WriteHeader(status)

	if body != "" {
		_, _ = io.WriteString(w, body)
	}
}

// resourceDoc renders a single-resource document.
func resourceDoc(resourceType, id string, attributes string) string {
	return fmt.Sprintf(`{"data":%s}`, resourceObj(resourceType, id, attributes))
}

func resourceObj(resourceType, id string, attributes string) string {
	if attributes == "" {
		attributes = "{}"
	}

	return fmt.Sprintf(`{"id":%q,"type":%q,"attributes":%s}`, id, resourceType, attributes)
}

// listDoc renders a collection page with pagination metadata.
func listDoc(current, next int, total int, objs ...string) string {
	nextPage := "null"
	if next > 0 {
		nextPage = fmt.Sprint(next)
	}

	data := "["
	for i, obj := range objs {
		if i > 0 {
			data += ","
		}

		data += obj
	}

	data += "]"

	return fmt.Sprintf(`{"data":%s,"meta":{"pagination":{"current-page":%d,"next-page":%s,"total-count":%d}}}`,
		data, current, nextPage, total)
}

// validationCase is a call expected to fail before any request is sent.
type validationCase struct {
	Name    string
	Call    func(ctx context.Context, c *Client) error
	WantErr error
}

// RunValidationTests asserts every case fails with WantErr, matches
// tfe.ErrValidation, and never reaches the server.
func RunValidationTests(t *testing.T, tests []validationCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			t.Parallel()

			api := newFakeAPI(t)

			err := tt.Call(context.Background(), api.client())
			require.Error(t, err)
			require.ErrorIs(t, err, tt.WantErr)
			require.ErrorIs(t, err, tfe.ErrValidation)

			var validationErr *tfe.ValidationError
			require.ErrorAs(t, err, &validationErr)

			assert.Zero(t, api.calls.Load(), "validation failures must not send requests")
		})
	}
}

// RunErrorTypeTests checks that a status code surfaces as the expected error
// class through a resource call.
func RunErrorTypeTests(t *testing.T, method, path string, call func(ctx context.Context, c *Client) error) {
	t.Helper()

	tests := []struct {
		status int
		target error
	}{
		{http.StatusUnauthorized, tfe.ErrUnauthorized},
		{http.StatusForbidden, tfe.ErrForbidden},
		{http.StatusNotFound, tfe.ErrNotFound},
		{http.StatusConflict, tfe.ErrConflict},
		{http.StatusUnprocessableEntity, tfe.ErrValidation},
		{http.StatusInternalServerError, tfe.ErrServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			api := newFakeAPI(t)
			api.respond(method, path, tt.status, `{"errors":[{"status":"`+fmt.Sprint(tt.status)+`","title":"failed"}]}`)

			err := call(context.Background(), api.client())
			require.ErrorIs(t, err, tt.target)

			var respErr *tfe.ResponseError
			require.ErrorAs(t, err, &respErr)
			assert.Equal(t, tt.status, respErr.StatusCode)
		})
	}
}
