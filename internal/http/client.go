// Package http is the transport used by the resource clients. It speaks
// JSON:API over go-retryablehttp and translates non-2xx responses into the
// tfe error taxonomy.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/fivetwenty-io/tfe-client/internal/auth"
	"github.com/fivetwenty-io/tfe-client/internal/constants"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

const tracerName = "github.com/fivetwenty-io/tfe-client/internal/http"

// Request describes one API call. Body is JSON-encoded unless RawBody is set.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Headers     map[string]string
	Body        interface{}
	RawBody     []byte
	ContentType string
	Accept      string
}

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the HTTP transport. It is safe for concurrent use.
type Client struct {
	baseURL           string
	tokenManager      auth.TokenManager
	httpClient        *retryablehttp.Client
	logger            tfe.Logger
	debug             bool
	userAgent         string
	retryServerErrors bool
	interceptors      *tfe.InterceptorChain
	tracer            trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger tfe.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithRetryConfig sets the retry count and backoff bounds. A negative
// retryMax disables retries.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		if retryMax < 0 {
			retryMax = 0
		}

		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = waitMin
		c.httpClient.RetryWaitMax = waitMax
	}
}

// WithRetryServerErrors makes 5xx responses retryable.
func WithRetryServerErrors(retry bool) Option {
	return func(c *Client) {
		c.retryServerErrors = retry
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient.Timeout = timeout
	}
}

// WithInterceptors installs an interceptor chain.
func WithInterceptors(chain *tfe.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// WithTracerProvider records a client span for every request.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		if tp != nil {
			c.tracer = tp.Tracer(tracerName)
		}
	}
}

// NewClient creates a transport rooted at baseURL. tokenManager may be nil
// for unauthenticated requests.
func NewClient(baseURL string, tokenManager auth.TokenManager, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = constants.DefaultRetryMax
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokenManager: tokenManager,
		httpClient:   retryClient,
		userAgent:    tfe.DefaultUserAgent,
		logger:       tfe.NopLogger{},
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient.CheckRetry = client.checkRetry

	if client.debug {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// BaseURL returns the URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// checkRetry retries connection errors and 429s, and 5xx only when enabled.
// Timeouts and cancellations are never retried.
func (c *Client) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		if isTimeout(err) {
			return false, err
		}

		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return true, nil
	case resp.StatusCode >= http.StatusInternalServerError && resp.StatusCode != http.StatusNotImplemented:
		return c.retryServerErrors, nil
	default:
		return false, nil
	}
}

// Do executes the request. For non-2xx responses both the response and a
// *tfe.ResponseError are returned.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	ireq := &tfe.Request{
		Method:  req.Method,
		Path:    req.Path,
		Headers: make(http.Header),
	}

	for key, value := range req.Headers {
		ireq.Headers.Set(key, value)
	}

	if c.interceptors != nil {
		err := c.interceptors.ExecuteRequestInterceptors(ctx, ireq)
		if err != nil {
			return nil, classify(req, err)
		}
	}

	if c.tracer != nil {
		var span trace.Span

		ctx, span = c.tracer.Start(ctx, "tfe "+req.Method,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("http.request.method", req.Method),
				attribute.String("url.path", req.Path),
			),
		)
		defer span.End()
	}

	start := time.Now()
	resp, err := c.do(ctx, req, ireq.Headers)
	elapsed := time.Since(start)

	c.finishSpan(ctx, resp, err)

	if c.interceptors != nil {
		iresp := &tfe.Response{Duration: elapsed, Error: err}
		if resp != nil {
			iresp.StatusCode = resp.StatusCode
			iresp.Headers = resp.Headers
			iresp.Body = resp.Body
		}

		interceptErr := c.interceptors.ExecuteResponseInterceptors(ctx, ireq, iresp)
		if interceptErr != nil && err == nil {
			err = interceptErr
		}
	}

	return resp, classify(req, err)
}

func (c *Client) do(ctx context.Context, req *Request, headers http.Header) (*Response, error) {
	body, err := c.encodeBody(req)
	if err != nil {
		return nil, err
	}

	rreq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, c.buildURL(req), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	err = c.setHeaders(ctx, rreq, req, headers, body != nil)
	if err != nil {
		return nil, err
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    rreq.URL.String(),
		})
	}

	httpResp, err := c.httpClient.Do(rreq)
	if err != nil {
		if httpResp != nil && httpResp.Body != nil {
			_ = httpResp.Body.Close()
		}

		return nil, &tfe.TransportError{
			Method:  req.Method,
			Path:    req.Path,
			Timeout: isTimeout(err),
			Err:     err,
		}
	}

	defer func() {
		_ = httpResp.Body.Close()
	}()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &tfe.TransportError{
			Method:  req.Method,
			Path:    req.Path,
			Timeout: isTimeout(err),
			Err:     fmt.Errorf("reading response body: %w", err),
		}
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":      req.Method,
			"url":         rreq.URL.String(),
			"status_code": resp.StatusCode,
		})
	}

	return resp, tfe.ErrorFromResponse(req.Method, req.Path, resp.StatusCode, resp.Headers, resp.Body)
}

func (c *Client) encodeBody(req *Request) ([]byte, error) {
	if req.RawBody != nil {
		return req.RawBody, nil
	}

	if req.Body == nil {
		return nil, nil
	}

	body, err := json.Marshal(req.Body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	return body, nil
}

func (c *Client) buildURL(req *Request) string {
	u := c.baseURL + "/" + strings.TrimPrefix(req.Path, "/")
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	return u
}

func (c *Client) setHeaders(ctx context.Context, rreq *retryablehttp.Request, req *Request, headers http.Header, hasBody bool) error {
	accept := req.Accept
	if accept == "" {
		accept = tfe.MediaType
	}

	rreq.Header.Set("Accept", accept)
	rreq.Header.Set("User-Agent", c.userAgent)

	if hasBody {
		contentType := req.ContentType
		if contentType == "" {
			contentType = tfe.MediaType
		}

		rreq.Header.Set("Content-Type", contentType)
	}

	if c.tokenManager != nil {
		token, err := c.tokenManager.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("getting token: %w", err)
		}

		if token != "" {
			rreq.Header.Set("Authorization", "Bearer "+token)
		}
	}

	for key, values := range headers {
		for _, value := range values {
			rreq.Header.Set(key, value)
		}
	}

	return nil
}

func (c *Client) finishSpan(ctx context.Context, resp *Response, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if resp != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return
	}

	span.SetStatus(codes.Ok, "")
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

var errorClasses = []error{
	tfe.ErrValidation,
	tfe.ErrAuth,
	tfe.ErrNotFound,
	tfe.ErrConflict,
	tfe.ErrRateLimited,
	tfe.ErrServer,
	tfe.ErrUnexpectedStatus,
	tfe.ErrDecode,
	tfe.ErrPagination,
	tfe.ErrTransport,
}

// classify wraps a failure that matches no error class in a
// *tfe.TransportError, so interceptor and token failures still carry one.
func classify(req *Request, err error) error {
	if err == nil {
		return nil
	}

	for _, class := range errorClasses {
		if errors.Is(err, class) {
			return err
		}
	}

	return &tfe.TransportError{
		Method:  req.Method,
		Path:    req.Path,
		Timeout: isTimeout(err),
		Err:     err,
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}

// leveledLogger routes retryablehttp's retry logging to a tfe.Logger.
type leveledLogger struct {
	logger tfe.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, kvFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, kvFields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, kvFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, kvFields(keysAndValues))
}

func kvFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}

var _ retryablehttp.LeveledLogger = (*leveledLogger)(nil)
