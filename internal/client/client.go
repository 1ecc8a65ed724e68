package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fivetwenty-io/tfe-client/internal/auth"
	"github.com/fivetwenty-io/tfe-client/internal/constants"
	"github.com/fivetwenty-io/tfe-client/internal/http"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

// Client implements the tfe.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       tfe.Logger

	mu       sync.RWMutex
	metadata *tfe.Metadata

	// Resource clients
	organizations   tfe.OrganizationsClient
	projects        tfe.ProjectsClient
	workspaces      tfe.WorkspacesClient
	variables       tfe.VariablesClient
	policies        tfe.PoliciesClient
	runs            tfe.RunsClient
	reservedTagKeys tfe.ReservedTagKeysClient
	agentPools      tfe.AgentPoolsClient
}

var _ tfe.Client = (*Client)(nil)

// New creates a client from a resolved configuration. The token in config is
// served as is.
func New(ctx context.Context, config *tfe.Config) (*Client, error) {
	if config == nil {
		return nil, tfe.ErrConfigRequired
	}

	return NewWithTokenManager(ctx, config, auth.NewStaticTokenManager(config.Token))
}

// NewWithTokenManager creates a client whose requests take their token from
// tokenManager.
func NewWithTokenManager(ctx context.Context, config *tfe.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, tfe.ErrConfigRequired
	}

	if config.Address == "" {
		return nil, tfe.ErrAddressRequired
	}

	httpOpts, err := createHTTPClientOptions(config)
	if err != nil {
		return nil, err
	}

	baseURL := joinBaseURL(config.Address, config.BasePath)

	logger := config.Logger
	if logger == nil {
		logger = tfe.NopLogger{}
	}

	client := &Client{
		httpClient:   http.NewClient(baseURL, tokenManager, httpOpts...),
		tokenManager: tokenManager,
		baseURL:      baseURL,
		logger:       logger,
	}

	client.initializeResourceClients(config.Pagination())

	if config.FetchMetadataOnInit {
		pingCtx, cancel := context.WithTimeout(ctx, constants.PingTimeout)
		defer cancel()

		_, err = client.Ping(pingCtx)
		if err != nil {
			return nil, err
		}
	}

	return client, nil
}

func joinBaseURL(address, basePath string) string {
	if basePath == "" {
		basePath = tfe.DefaultBasePath
	}

	return strings.TrimSuffix(address, "/") + "/" + strings.Trim(basePath, "/")
}

// createHTTPClientOptions translates the config into transport options and
// the interceptor chain.
func createHTTPClientOptions(config *tfe.Config) ([]http.Option, error) {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax != 0 || config.RetryWaitMin > 0 || config.RetryWaitMax > 0 {
		retryMax := config.RetryMax
		if retryMax == 0 {
			retryMax = constants.DefaultRetryMax
		}

		retryWaitMin := durationOr(config.RetryWaitMin, constants.DefaultRetryWaitMin)
		retryWaitMax := durationOr(config.RetryWaitMax, constants.DefaultRetryWaitMax)

		httpOpts = append(httpOpts, http.WithRetryConfig(retryMax, retryWaitMin, retryWaitMax))
	}

	if config.RetryServerErrors {
		httpOpts = append(httpOpts, http.WithRetryServerErrors(true))
	}

	if config.TracerProvider != nil {
		httpOpts = append(httpOpts, http.WithTracerProvider(config.TracerProvider))
	}

	chain, err := createInterceptorChain(config)
	if err != nil {
		return nil, err
	}

	httpOpts = append(httpOpts, http.WithInterceptors(chain))

	return httpOpts, nil
}

func createInterceptorChain(config *tfe.Config) (*tfe.InterceptorChain, error) {
	chain := tfe.NewInterceptorChain()
	chain.AddRequestInterceptor(tfe.RequestIDInterceptor())

	if len(config.Headers) > 0 {
		chain.AddRequestInterceptor(tfe.HeaderInterceptor(config.Headers))
	}

	if config.CircuitBreaker != nil {
		breaker := tfe.NewCircuitBreaker(config.CircuitBreaker)
		chain.AddRequestInterceptor(tfe.CircuitBreakerRequestInterceptor(breaker))
		chain.AddResponseInterceptor(tfe.CircuitBreakerResponseInterceptor(breaker))
	}

	if config.RateLimit > 0 {
		chain.AddRequestInterceptor(tfe.RateLimitInterceptor(config.RateLimit, 1))
	}

	if config.MetricsRegisterer != nil {
		metrics, err := tfe.NewPrometheusMetrics(config.MetricsRegisterer)
		if err != nil {
			return nil, err
		}

		chain.AddRequestInterceptor(metrics.RequestInterceptor())
		chain.AddResponseInterceptor(metrics.ResponseInterceptor())
	}

	if config.Logger != nil {
		chain.AddRequestInterceptor(tfe.LoggingInterceptor(config.Logger))
		chain.AddResponseInterceptor(tfe.LoggingResponseInterceptor(config.Logger))
	}

	return chain, nil
}

func durationOr(value, fallback time.Duration) time.Duration {
	if value > 0 {
		return value
	}

	return fallback
}

// initializeResourceClients initializes all resource clients.
func (c *Client) initializeResourceClients(pagination *tfe.PaginationOptions) {
	c.organizations = NewOrganizationsClient(c.httpClient, pagination)
	c.projects = NewProjectsClient(c.httpClient, pagination)
	c.workspaces = NewWorkspacesClient(c.httpClient, pagination)
	c.variables = NewVariablesClient(c.httpClient, pagination)
	c.policies = NewPoliciesClient(c.httpClient, pagination)
	c.runs = NewRunsClient(c.httpClient, pagination)
	c.reservedTagKeys = NewReservedTagKeysClient(c.httpClient, pagination)
	c.agentPools = NewAgentPoolsClient(c.httpClient, pagination)
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// BaseURL returns the URL API paths are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping implements tfe.MetadataClient.Ping. The metadata lives in the response
// headers of /ping.
func (c *Client) Ping(ctx context.Context) (*tfe.Metadata, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: "GET",
		Path:   constants.PingPath,
		Accept: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("fetching API metadata: %w", err)
	}

	metadata := &tfe.Metadata{
		APIVersion: resp.Headers.Get(constants.HeaderAPIVersion),
		TFEVersion: resp.Headers.Get(constants.HeaderTFEVersion),
		AppName:    resp.Headers.Get(constants.HeaderAppName),
	}

	c.mu.Lock()
	c.metadata = metadata
	c.mu.Unlock()

	c.logger.Debug("API metadata", map[string]interface{}{
		"api_version": metadata.APIVersion,
		"tfe_version": metadata.TFEVersion,
		"app_name":    metadata.AppName,
	})

	copied := *metadata

	return &copied, nil
}

// Metadata implements tfe.MetadataClient.Metadata. It is nil until Ping
// succeeds.
func (c *Client) Metadata() *tfe.Metadata {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.metadata == nil {
		return nil
	}

	copied := *c.metadata

	return &copied
}

// IsCloud implements tfe.MetadataClient.IsCloud.
func (c *Client) IsCloud() bool {
	return c.Metadata().IsCloud()
}

// IsEnterprise implements tfe.MetadataClient.IsEnterprise.
func (c *Client) IsEnterprise() bool {
	metadata := c.Metadata()

	return metadata != nil && !metadata.IsCloud()
}

// RemoteAPIVersion implements tfe.MetadataClient.RemoteAPIVersion.
func (c *Client) RemoteAPIVersion() string {
	metadata := c.Metadata()
	if metadata == nil {
		return ""
	}

	return metadata.APIVersion
}

// Resource client accessors

// Organizations implements tfe.Client.Organizations.
func (c *Client) Organizations() tfe.OrganizationsClient {
	return c.organizations
}

// Projects implements tfe.Client.Projects.
func (c *Client) Projects() tfe.ProjectsClient {
	return c.projects
}

// Workspaces implements tfe.Client.Workspaces.
func (c *Client) Workspaces() tfe.WorkspacesClient {
	return c.workspaces
}

// Variables implements tfe.Client.Variables.
func (c *Client) Variables() tfe.VariablesClient {
	return c.variables
}

// Policies implements tfe.Client.Policies.
func (c *Client) Policies() tfe.PoliciesClient {
	return c.policies
}

// Runs implements tfe.Client.Runs.
func (c *Client) Runs() tfe.RunsClient {
	return c.runs
}

// ReservedTagKeys implements tfe.Client.ReservedTagKeys.
func (c *Client) ReservedTagKeys() tfe.ReservedTagKeysClient {
	return c.reservedTagKeys
}

// AgentPools implements tfe.Client.AgentPools.
func (c *Client) AgentPools() tfe.AgentPoolsClient {
	return c.agentPools
}
