package client

import (
	"context"

	"github.com/fivetwenty-io/tfe-client/internal/http"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

// AgentPoolsClient implements tfe.AgentPoolsClient.
type AgentPoolsClient struct {
	base resourceBase[tfe.AgentPool]
}

// NewAgentPoolsClient creates a new agent pools client.
func NewAgentPoolsClient(httpClient *http.Client, pagination *tfe.PaginationOptions) *AgentPoolsClient {
	return &AgentPoolsClient{
		base: newResourceBase(httpClient, tfe.AgentPoolMapping, "agent pool", pagination),
	}
}

// List implements tfe.AgentPoolsClient.List.
func (c *AgentPoolsClient) List(ctx context.Context, organization string, opts *tfe.ListOptions) (*tfe.Iterator[tfe.AgentPool], error) {
	err := tfe.ValidateIdentifier(organization, tfe.KindOrganization)
	if err != nil {
		return nil, err
	}

	err = validateList("agent pool", opts, tfe.AgentPoolIncludes)
	if err != nil {
		return nil, err
	}

	return c.base.list(ctx, resourcePath("organizations", organization, "agent-pools"), opts), nil
}

// Read implements tfe.AgentPoolsClient.Read.
func (c *AgentPoolsClient) Read(ctx context.Context, agentPoolID string) (*tfe.AgentPool, error) {
	err := tfe.ValidateIdentifier(agentPoolID, tfe.KindAgentPool)
	if err != nil {
		return nil, err
	}

	return c.base.read(ctx, resourcePath("agent-pools", agentPoolID), nil)
}

// Create implements tfe.AgentPoolsClient.Create.
func (c *AgentPoolsClient) Create(ctx context.Context, organization string, opts *tfe.AgentPoolCreateOptions) (*tfe.AgentPool, error) {
	err := tfe.ValidateIdentifier(organization, tfe.KindOrganization)
	if err != nil {
		return nil, err
	}

	err = opts.Validate()
	if err != nil {
		return nil, err
	}

	doc, err := opts.Document()
	if err != nil {
		return nil, err
	}

	return c.base.create(ctx, resourcePath("organizations", organization, "agent-pools"), doc)
}

// Update implements tfe.AgentPoolsClient.Update.
func (c *AgentPoolsClient) Update(ctx context.Context, agentPoolID string, opts *tfe.AgentPoolUpdateOptions) (*tfe.AgentPool, error) {
	err := tfe.ValidateIdentifier(agentPoolID, tfe.KindAgentPool)
	if err != nil {
		return nil, err
	}

	err = opts.Validate()
	if err != nil {
		return nil, err
	}

	doc, err := opts.Document(agentPoolID)
	if err != nil {
		return nil, err
	}

	return c.base.update(ctx, resourcePath("agent-pools", agentPoolID), doc)
}

// Delete implements tfe.AgentPoolsClient.Delete.
func (c *AgentPoolsClient) Delete(ctx context.Context, agentPoolID string) error {
	err := tfe.ValidateIdentifier(agentPoolID, tfe.KindAgentPool)
	if err != nil {
		return err
	}

	return c.base.delete(ctx, resourcePath("agent-pools", agentPoolID))
}
