package tfe

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired  = errors.New("config is required")
	ErrAddressRequired = errors.New("address is required")
	ErrInvalidAddress  = errors.New("address must be an absolute http or https URL")
)

// Default connection settings.
const (
	DefaultAddress   = "https://app.terraform.io"
	DefaultBasePath  = "/api/v2/"
	DefaultUserAgent = "tfe-client-go"
)

// ResourceClients provides access to the resource-specific clients.
type ResourceClients interface {
	Organizations() OrganizationsClient
	Projects() ProjectsClient
	Workspaces() WorkspacesClient
	Variables() VariablesClient
	Policies() PoliciesClient
	Runs() RunsClient
	ReservedTagKeys() ReservedTagKeysClient
	AgentPools() AgentPoolsClient
}

// MetadataClient exposes what the server reports about itself.
type MetadataClient interface {
	// Ping fetches the API metadata headers and refreshes the cached values.
	Ping(ctx context.Context) (*Metadata, error)
	// Metadata returns the values from the last successful Ping.
	Metadata() *Metadata
	IsCloud() bool
	IsEnterprise() bool
	RemoteAPIVersion() string
}

// Client is the API client returned by tfeclient.New.
type Client interface {
	ResourceClients
	MetadataClient
}

// Metadata is what the server reports in the headers of /ping.
type Metadata struct {
	APIVersion string `json:"api_version" yaml:"api_version"`
	TFEVersion string `json:"tfe_version" yaml:"tfe_version"`
	AppName    string `json:"app_name"    yaml:"app_name"`
}

// CloudAppName is the app name reported by HCP Terraform.
const CloudAppName = "HCP Terraform"

// IsCloud reports whether the server is HCP Terraform.
func (m *Metadata) IsCloud() bool {
	return m != nil && m.AppName == CloudAppName
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}

// Config represents client configuration for building a tfe.Client.
//
// # Resolution
//
// tfeclient.New resolves the configuration once, at construction. Each field
// follows the same precedence: a value set here wins, then the environment
// (TFE_ADDRESS, TFE_HOST, TFE_TOKEN, TFE_BASE_PATH), then the defaults
// (https://app.terraform.io and /api/v2/). The resolved client never reads
// the environment again.
//
// # Retries
//
// Connection errors and 429 responses are retried up to RetryMax times,
// honouring Retry-After. 5xx responses are only retried when
// RetryServerErrors is set. Timeouts are never retried.
type Config struct {
	// Address: scheme and host of the API (e.g., "https://tfe.example.com").
	Address string
	// BasePath: path prefix of the V2 API. Defaults to /api/v2/.
	BasePath string
	// Token: API token sent as a Bearer credential.
	Token string
	// Headers: extra headers sent with every request.
	Headers map[string]string
	// UserAgent: overrides the default User-Agent header.
	UserAgent string

	// HTTPTimeout: per-attempt timeout. Contexts passed to client methods
	// bound the whole call including retries.
	HTTPTimeout time.Duration
	// RetryMax: maximum number of retries. Zero uses the default, a negative
	// value disables retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries.
	RetryWaitMax time.Duration
	// RetryServerErrors: retry 5xx responses as well.
	RetryServerErrors bool
	// RateLimit: client-side request rate limit per second. Zero disables it.
	RateLimit float64
	// CircuitBreaker: when set, requests are rejected with
	// ErrCircuitBreakerOpen after repeated transport or 5xx failures.
	CircuitBreaker *CircuitBreakerConfig

	// MaxPages: page loop guard for list calls. Zero uses DefaultMaxPages,
	// a negative value disables the guard.
	MaxPages int

	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the transport.
	Logger Logger
	// TracerProvider: when set, a span is recorded for every request.
	TracerProvider trace.TracerProvider
	// MetricsRegisterer: when set, request counters and latencies are
	// registered on it.
	MetricsRegisterer prometheus.Registerer

	// FetchMetadataOnInit: when true, New calls Ping before returning.
	FetchMetadataOnInit bool
}

// Pagination returns the pagination options derived from the config.
func (c *Config) Pagination() *PaginationOptions {
	opts := DefaultPaginationOptions()
	if c != nil && c.MaxPages != 0 {
		opts.MaxPages = c.MaxPages
	}

	return opts
}
