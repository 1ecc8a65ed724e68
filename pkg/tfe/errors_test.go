package tfe_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

var errorClasses = []error{
	tfe.ErrValidation, tfe.ErrAuth, tfe.ErrNotFound, tfe.ErrConflict,
	tfe.ErrRateLimited, tfe.ErrServer, tfe.ErrUnexpectedStatus, tfe.ErrDecode,
	tfe.ErrPagination, tfe.ErrTransport,
}

func matchingClasses(err error) []error {
	var matched []error

	for _, class := range errorClasses {
		if errors.Is(err, class) {
			matched = append(matched, class)
		}
	}

	return matched
}

func TestErrorFromResponse_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		class  error
		extra  error
	}{
		{http.StatusUnauthorized, tfe.ErrAuth, tfe.ErrUnauthorized},
		{http.StatusForbidden, tfe.ErrAuth, tfe.ErrForbidden},
		{http.StatusNotFound, tfe.ErrNotFound, nil},
		{http.StatusConflict, tfe.ErrConflict, nil},
		{http.StatusUnprocessableEntity, tfe.ErrValidation, nil},
		{http.StatusTooManyRequests, tfe.ErrRateLimited, nil},
		{http.StatusInternalServerError, tfe.ErrServer, nil},
		{http.StatusBadGateway, tfe.ErrServer, nil},
		{http.StatusBadRequest, tfe.ErrUnexpectedStatus, nil},
		{http.StatusTeapot, tfe.ErrUnexpectedStatus, nil},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			err := tfe.ErrorFromResponse(http.MethodGet, "workspaces/ws-1", tt.status, nil, nil)
			require.Error(t, err)
			assert.Equal(t, []error{tt.class}, matchingClasses(err), "exactly one class matches")

			if tt.extra != nil {
				require.ErrorIs(t, err, tt.extra)
			}

			var respErr *tfe.ResponseError
			require.ErrorAs(t, err, &respErr)
			assert.Equal(t, tt.status, respErr.StatusCode)
		})
	}

	for _, status := range []int{200, 201, 204} {
		assert.NoError(t, tfe.ErrorFromResponse(http.MethodGet, "x", status, nil, nil))
	}
}

func TestErrorFromResponse_Body(t *testing.T) {
	t.Parallel()

	body := []byte(`{"errors":[
		{"status":"422","title":"invalid attribute","detail":"Name has already been taken","source":{"pointer":"/data/attributes/name"}},
		{"status":"422","title":"invalid attribute","detail":"Name is too short","source":{"pointer":"/data/attributes/name"}},
		"legacy message"
	]}`)

	err := tfe.ErrorFromResponse(http.MethodPost, "organizations/acme/workspaces", http.StatusUnprocessableEntity, nil, body)

	var respErr *tfe.ResponseError
	require.ErrorAs(t, err, &respErr)
	require.Len(t, respErr.Errors, 3)
	assert.Equal(t, "legacy message", respErr.Errors[2].Detail)
	assert.Equal(t, map[string][]string{
		"name": {
			"invalid attribute: Name has already been taken",
			"invalid attribute: Name is too short",
		},
	}, respErr.FieldErrors())

	assert.Equal(t,
		"POST organizations/acme/workspaces: invalid attribute: Name has already been taken; "+
			"invalid attribute: Name is too short; legacy message (status: 422)",
		err.Error())

	err = tfe.ErrorFromResponse(http.MethodGet, "ping", http.StatusBadGateway, nil, []byte("<html>bad gateway</html>"))
	assert.Equal(t, "GET ping: Bad Gateway (status: 502)", err.Error())
}

func TestErrorFromResponse_RetryAfter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   time.Duration
	}{
		{"3", 3 * time.Second},
		{"0.5", 500 * time.Millisecond},
		{"", 0},
		{"soon", 0},
		{"-1", 0},
	}

	for _, tt := range tests {
		header := http.Header{}
		header.Set("Retry-After", tt.header)

		err := tfe.ErrorFromResponse(http.MethodGet, "x", http.StatusTooManyRequests, header, nil)

		var respErr *tfe.ResponseError
		require.ErrorAs(t, err, &respErr)
		assert.Equal(t, tt.want, respErr.RetryAfter, tt.header)
	}
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "title: detail", tfe.APIError{Title: "title", Detail: "detail"}.Error())
	assert.Equal(t, "detail", tfe.APIError{Detail: "detail"}.Error())
	assert.Equal(t, "title", tfe.APIError{Title: "title"}.Error())
	assert.Empty(t, tfe.APIError{}.Field())
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := error(&tfe.ValidationError{Resource: "workspace", Field: "name", Err: tfe.ErrRequiredName})
	assert.Equal(t, "name is required (workspace.name)", err.Error())
	require.ErrorIs(t, err, tfe.ErrRequiredField)
	require.ErrorIs(t, err, tfe.ErrValidation)
	assert.NotErrorIs(t, err, tfe.ErrInvalidResourceID)
	assert.Equal(t, []error{tfe.ErrValidation}, matchingClasses(err))

	err = &tfe.ValidationError{Resource: "run", Field: "id", Value: "ws-1", Err: tfe.ErrInvalidRunID}
	assert.Equal(t, `invalid value for run ID (run.id="ws-1")`, err.Error())
	require.ErrorIs(t, err, tfe.ErrInvalidResourceID)
	assert.NotErrorIs(t, err, tfe.ErrRequiredField)

	err = &tfe.ValidationError{Err: tfe.ErrMissingOptions}
	assert.Equal(t, "options are required", err.Error())
}

func TestDecodeError(t *testing.T) {
	t.Parallel()

	cause := errors.New("bad number")
	err := error(&tfe.DecodeError{Resource: "workspaces", ID: "ws-1", Field: "auto-apply", Err: cause})

	assert.Equal(t, `decoding workspaces ws-1 field "auto-apply": bad number`, err.Error())
	require.ErrorIs(t, err, tfe.ErrDecode)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, []error{tfe.ErrDecode}, matchingClasses(err))
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	err := error(&tfe.TransportError{Method: "GET", Path: "ping", Timeout: true, Err: context.DeadlineExceeded})
	require.ErrorIs(t, err, tfe.ErrTransport)
	require.ErrorIs(t, err, tfe.ErrTimeout)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, tfe.IsTimeout(err))
	assert.Contains(t, err.Error(), "request timed out")
	assert.Equal(t, []error{tfe.ErrTransport}, matchingClasses(err))

	refused := errors.New("connection refused")
	err = &tfe.TransportError{Method: "GET", Path: "ping", Err: refused}
	assert.False(t, tfe.IsTimeout(err))
	require.ErrorIs(t, err, refused)
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	build := func(status int) error {
		return tfe.ErrorFromResponse(http.MethodGet, "x", status, nil, nil)
	}

	assert.True(t, tfe.IsNotFound(build(http.StatusNotFound)))
	assert.True(t, tfe.IsUnauthorized(build(http.StatusUnauthorized)))
	assert.True(t, tfe.IsForbidden(build(http.StatusForbidden)))
	assert.True(t, tfe.IsConflict(build(http.StatusConflict)))
	assert.True(t, tfe.IsServerError(build(http.StatusServiceUnavailable)))

	assert.False(t, tfe.IsNotFound(build(http.StatusForbidden)))
	assert.False(t, tfe.IsUnauthorized(build(http.StatusForbidden)))
	assert.False(t, tfe.IsServerError(nil))
}
