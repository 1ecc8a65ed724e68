package tfe

import "time"

// TypeAgentPools is the JSON:API type of agent pools.
const TypeAgentPools = "agent-pools"

// AgentPoolIncludes are the related resources an agent pool list can
// side-load.
var AgentPoolIncludes = []string{"workspaces"}

// AgentPool is a group of self-hosted agents.
type AgentPool struct {
	ID                 string        `json:"id"                            yaml:"id"`
	Name               *string       `json:"name,omitempty"                yaml:"name,omitempty"`
	OrganizationScoped *bool         `json:"organization_scoped,omitempty" yaml:"organization_scoped,omitempty"`
	AgentCount         *int          `json:"agent_count,omitempty"         yaml:"agent_count,omitempty"`
	CreatedAt          *time.Time    `json:"created_at,omitempty"          yaml:"created_at,omitempty"`
	Organization       *ResourceRef  `json:"organization,omitempty"        yaml:"organization,omitempty"`
	Workspaces         []ResourceRef `json:"workspaces,omitempty"          yaml:"workspaces,omitempty"`
	AllowedWorkspaces  []ResourceRef `json:"allowed_workspaces,omitempty"  yaml:"allowed_workspaces,omitempty"`
}

// AgentPoolMapping decodes agent pool resource objects.
var AgentPoolMapping = NewMapping(TypeAgentPools,
	func(p *AgentPool) *string { return &p.ID },
	Attr("name", "name", func(p *AgentPool) **string { return &p.Name }),
	Attr("organization_scoped", "organization-scoped", func(p *AgentPool) **bool { return &p.OrganizationScoped }),
	Attr("agent_count", "agent-count", func(p *AgentPool) **int { return &p.AgentCount }),
	Attr("created_at", "created-at", func(p *AgentPool) **time.Time { return &p.CreatedAt }),
	ToOneRel("organization", "organization", func(p *AgentPool) **ResourceRef { return &p.Organization }),
	ToManyRel("workspaces", "workspaces", func(p *AgentPool) *[]ResourceRef { return &p.Workspaces }),
	ToManyRel("allowed_workspaces", "allowed-workspaces", func(p *AgentPool) *[]ResourceRef { return &p.AllowedWorkspaces }),
)

// AgentPoolCreateOptions are the options for creating an agent pool.
type AgentPoolCreateOptions struct {
	Name                *string
	OrganizationScoped  *bool
	AllowedWorkspaceIDs []string
}

// Validate checks the options.
func (o *AgentPoolCreateOptions) Validate() error {
	if o == nil {
		return newValidationError("agent pool", "", "", ErrMissingOptions)
	}

	if err := requireString("agent pool", "name", o.Name, ErrRequiredName); err != nil {
		return err
	}

	return validateWorkspaceIDs(o.AllowedWorkspaceIDs)
}

func allowedWorkspacesRel(ids []string) (Relationship, bool) {
	if ids == nil {
		return Relationship{}, false
	}

	return ToMany(TypeWorkspaces, ids...), true
}

var agentPoolCreateEncoder = NewEncoder(TypeAgentPools,
	Opt("name", func(o *AgentPoolCreateOptions) *string { return o.Name }),
	Opt("organization-scoped", func(o *AgentPoolCreateOptions) *bool { return o.OrganizationScoped }),
	Rel("allowed-workspaces", func(o *AgentPoolCreateOptions) (Relationship, bool) {
		return allowedWorkspacesRel(o.AllowedWorkspaceIDs)
	}),
)

// Document encodes the options as a request document.
func (o *AgentPoolCreateOptions) Document() (*Document, error) {
	return agentPoolCreateEncoder.Encode("", o)
}

// AgentPoolUpdateOptions are the options for updating an agent pool. A nil
// AllowedWorkspaceIDs leaves the list unchanged, an empty one clears it.
type AgentPoolUpdateOptions struct {
	Name                *string
	OrganizationScoped  *bool
	AllowedWorkspaceIDs []string
}

// Validate checks the options.
func (o *AgentPoolUpdateOptions) Validate() error {
	if o == nil {
		return newValidationError("agent pool", "", "", ErrMissingOptions)
	}

	if o.Name != nil {
		if err := requireString("agent pool", "name", o.Name, ErrRequiredName); err != nil {
			return err
		}
	}

	return validateWorkspaceIDs(o.AllowedWorkspaceIDs)
}

var agentPoolUpdateEncoder = NewEncoder(TypeAgentPools,
	Opt("name", func(o *AgentPoolUpdateOptions) *string { return o.Name }),
	Opt("organization-scoped", func(o *AgentPoolUpdateOptions) *bool { return o.OrganizationScoped }),
	Rel("allowed-workspaces", func(o *AgentPoolUpdateOptions) (Relationship, bool) {
		return allowedWorkspacesRel(o.AllowedWorkspaceIDs)
	}),
)

// Document encodes the options as a request document.
func (o *AgentPoolUpdateOptions) Document(id string) (*Document, error) {
	return agentPoolUpdateEncoder.Encode(id, o)
}

func validateWorkspaceIDs(ids []string) error {
	for _, id := range ids {
		if err := ValidateIdentifier(id, KindWorkspace); err != nil {
			return err
		}
	}

	return nil
}
