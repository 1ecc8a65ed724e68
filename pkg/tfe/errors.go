package tfe

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Error classes. Every error returned by this package or by a resource client
// matches exactly one of these through errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrAuth             = errors.New("authentication failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrRateLimited      = errors.New("rate limited")
	ErrServer           = errors.New("server error")
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrDecode           = errors.New("unable to decode response")
	ErrPagination       = errors.New("pagination aborted")
	ErrTransport        = errors.New("transport error")
	ErrTimeout          = errors.New("request timed out")
)

// Identifier errors. Each ID sentinel also matches ErrInvalidResourceID.
var (
	ErrInvalidResourceID       = errors.New("invalid value for resource ID")
	ErrInvalidOrganization     = errors.New("invalid value for organization")
	ErrInvalidWorkspaceID      = errors.New("invalid value for workspace ID")
	ErrInvalidWorkspaceName    = errors.New("invalid value for workspace name")
	ErrInvalidProjectID        = errors.New("invalid value for project ID")
	ErrInvalidVariableID       = errors.New("invalid value for variable ID")
	ErrInvalidPolicyID         = errors.New("invalid value for policy ID")
	ErrInvalidPolicySetID      = errors.New("invalid value for policy set ID")
	ErrInvalidRunID            = errors.New("invalid value for run ID")
	ErrInvalidReservedTagKeyID = errors.New("invalid value for reserved tag key ID")
	ErrInvalidAgentPoolID      = errors.New("invalid value for agent pool ID")
)

// Option errors.
var (
	ErrRequiredField            = errors.New("required field missing")
	ErrRequiredName             = errors.New("name is required")
	ErrRequiredKey              = errors.New("key is required")
	ErrRequiredCategory         = errors.New("category is required")
	ErrRequiredQuery            = errors.New("query is required for OPA policies")
	ErrRequiredEnforcementLevel = errors.New("enforcement level is required")
	ErrRequiredWorkspace        = errors.New("workspace is required")
	ErrUnsupportedQuery         = errors.New("query is only supported for OPA policies")
	ErrInvalidName              = errors.New("invalid value for name")
	ErrInvalidPageSize          = errors.New("invalid page size")
	ErrInvalidPageNumber        = errors.New("invalid page number")
	ErrInvalidFilter            = errors.New("invalid filter")
	ErrInvalidInclude           = errors.New("invalid include")
	ErrInvalidEnforcementLevel  = errors.New("invalid enforcement level")
	ErrInvalidCategory          = errors.New("invalid category")
	ErrInvalidExecutionMode     = errors.New("invalid execution mode")
	ErrInvalidPolicyKind        = errors.New("invalid policy kind")
	ErrMissingOptions           = errors.New("options are required")
)

// ValidationError is returned when a precondition fails on the client side,
// before any request is sent. It is never retried.
type ValidationError struct {
	Resource string
	Field    string
	Value    string
	Err      error
}

func (e *ValidationError) Error() string {
	var b strings.Builder

	b.WriteString(e.Err.Error())

	if e.Resource != "" || e.Field != "" {
		b.WriteString(" (")
		b.WriteString(strings.TrimPrefix(e.Resource+"."+e.Field, "."))

		if e.Value != "" {
			b.WriteString("=")
			b.WriteString(strconv.Quote(e.Value))
		}

		b.WriteString(")")
	}

	return b.String()
}

// Unwrap exposes the specific sentinel plus the ErrValidation class.
func (e *ValidationError) Unwrap() []error {
	errs := []error{e.Err, ErrValidation}
	if isIDSentinel(e.Err) {
		errs = append(errs, ErrInvalidResourceID)
	}

	if isRequiredSentinel(e.Err) {
		errs = append(errs, ErrRequiredField)
	}

	return errs
}

func isIDSentinel(err error) bool {
	switch err {
	case ErrInvalidOrganization, ErrInvalidWorkspaceID, ErrInvalidWorkspaceName,
		ErrInvalidProjectID, ErrInvalidVariableID, ErrInvalidPolicyID,
		ErrInvalidPolicySetID, ErrInvalidRunID, ErrInvalidReservedTagKeyID,
		ErrInvalidAgentPoolID:
		return true
	}

	return false
}

func isRequiredSentinel(err error) bool {
	switch err {
	case ErrRequiredName, ErrRequiredKey, ErrRequiredCategory, ErrRequiredQuery,
		ErrRequiredEnforcementLevel, ErrRequiredWorkspace, ErrMissingOptions:
		return true
	}

	return false
}

func newValidationError(resource, field, value string, err error) *ValidationError {
	return &ValidationError{Resource: resource, Field: field, Value: value, Err: err}
}

// APIError is a single JSON:API error object.
type APIError struct {
	Status string          `json:"status,omitempty"`
	Title  string          `json:"title,omitempty"`
	Detail string          `json:"detail,omitempty"`
	Source *APIErrorSource `json:"source,omitempty"`
}

// APIErrorSource points at the offending part of the request document.
type APIErrorSource struct {
	Pointer   string `json:"pointer,omitempty"`
	Parameter string `json:"parameter,omitempty"`
}

func (e APIError) Error() string {
	switch {
	case e.Title != "" && e.Detail != "":
		return e.Title + ": " + e.Detail
	case e.Detail != "":
		return e.Detail
	default:
		return e.Title
	}
}

// Field returns the attribute named by the error's source pointer, if any.
func (e APIError) Field() string {
	if e.Source == nil || e.Source.Pointer == "" {
		return ""
	}

	parts := strings.Split(e.Source.Pointer, "/")

	return parts[len(parts)-1]
}

// ResponseError is returned for every non-2xx response.
type ResponseError struct {
	StatusCode int
	Method     string
	Path       string
	Errors     []APIError
	RetryAfter time.Duration
}

func (e *ResponseError) Error() string {
	msg := http.StatusText(e.StatusCode)
	if len(e.Errors) > 0 {
		details := make([]string, 0, len(e.Errors))
		for _, apiErr := range e.Errors {
			details = append(details, apiErr.Error())
		}

		msg = strings.Join(details, "; ")
	}

	return fmt.Sprintf("%s %s: %s (status: %d)", e.Method, e.Path, msg, e.StatusCode)
}

// Unwrap maps the status code onto the error classes.
func (e *ResponseError) Unwrap() []error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return []error{ErrAuth, ErrUnauthorized}
	case e.StatusCode == http.StatusForbidden:
		return []error{ErrAuth, ErrForbidden}
	case e.StatusCode == http.StatusNotFound:
		return []error{ErrNotFound}
	case e.StatusCode == http.StatusConflict:
		return []error{ErrConflict}
	case e.StatusCode == http.StatusUnprocessableEntity:
		return []error{ErrValidation}
	case e.StatusCode == http.StatusTooManyRequests:
		return []error{ErrRateLimited}
	case e.StatusCode >= http.StatusInternalServerError:
		return []error{ErrServer}
	default:
		return []error{ErrUnexpectedStatus}
	}
}

// FieldErrors groups server-reported validation errors by attribute name.
func (e *ResponseError) FieldErrors() map[string][]string {
	fields := make(map[string][]string)

	for _, apiErr := range e.Errors {
		if field := apiErr.Field(); field != "" {
			fields[field] = append(fields[field], apiErr.Error())
		}
	}

	return fields
}

// ErrorFromResponse builds the error for a response, or returns nil for 2xx.
// It is the single place status codes are translated.
func ErrorFromResponse(method, path string, statusCode int, header http.Header, body []byte) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	respErr := &ResponseError{
		StatusCode: statusCode,
		Method:     method,
		Path:       path,
	}

	var payload struct {
		Errors []json.RawMessage `json:"errors"`
	}

	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		for _, raw := range payload.Errors {
			var apiErr APIError
			if json.Unmarshal(raw, &apiErr) == nil {
				respErr.Errors = append(respErr.Errors, apiErr)

				continue
			}

			// Older endpoints return bare strings.
			var detail string
			if json.Unmarshal(raw, &detail) == nil {
				respErr.Errors = append(respErr.Errors, APIError{Detail: detail})
			}
		}
	}

	if statusCode == http.StatusTooManyRequests && header != nil {
		respErr.RetryAfter = parseRetryAfter(header.Get("Retry-After"))
	}

	return respErr
}

func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}

	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil || seconds < 0 {
		return 0
	}

	return time.Duration(seconds * float64(time.Second))
}

// DecodeError is returned when a response does not match the expected shape.
type DecodeError struct {
	Resource string
	ID       string
	Field    string
	Err      error
}

func (e *DecodeError) Error() string {
	target := e.Resource
	if e.ID != "" {
		target += " " + e.ID
	}

	if e.Field != "" {
		target += " field " + strconv.Quote(e.Field)
	}

	if e.Err == nil {
		return "decoding " + target
	}

	return fmt.Sprintf("decoding %s: %v", target, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDecode}
	}

	return []error{ErrDecode, e.Err}
}

// PaginationError is returned when the page loop guard trips.
type PaginationError struct {
	Path     string
	Page     int
	NextPage int
	MaxPages int
}

func (e *PaginationError) Error() string {
	if e.NextPage > 0 && e.NextPage <= e.Page {
		return fmt.Sprintf("listing %s: server returned next page %d after page %d", e.Path, e.NextPage, e.Page)
	}

	return fmt.Sprintf("listing %s: exceeded maximum of %d pages", e.Path, e.MaxPages)
}

func (e *PaginationError) Unwrap() error {
	return ErrPagination
}

// TransportError wraps a failure to complete an exchange, including requests
// an interceptor or the token source stopped before sending. The cause is
// preserved.
type TransportError struct {
	Method  string
	Path    string
	Timeout bool
	Err     error
}

func (e *TransportError) Error() string {
	kind := "request failed"
	if e.Timeout {
		kind = "request timed out"
	}

	return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, kind, e.Err)
}

func (e *TransportError) Unwrap() []error {
	if e.Timeout {
		return []error{ErrTransport, ErrTimeout, e.Err}
	}

	return []error{ErrTransport, e.Err}
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden reports whether err is a 403 from the API.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsConflict reports whether err is a 409 from the API.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsServerError reports whether err is a 5xx from the API.
func IsServerError(err error) bool {
	return errors.Is(err, ErrServer)
}

// IsTimeout reports whether err is a transport timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}
