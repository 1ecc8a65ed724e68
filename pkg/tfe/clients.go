package tfe

import "context"

// Every List validates its arguments and returns before any request is made.
// The returned iterator fetches pages lazily as it is consumed.

// OrganizationsClient manages organizations.
type OrganizationsClient interface {
	List(ctx context.Context, opts *ListOptions) (*Iterator[Organization], error)
	Read(ctx context.Context, name string) (*Organization, error)
	Create(ctx context.Context, opts *OrganizationCreateOptions) (*Organization, error)
	Update(ctx context.Context, name string, opts *OrganizationUpdateOptions) (*Organization, error)
	Delete(ctx context.Context, name string) error
}

// ProjectsClient manages projects.
type ProjectsClient interface {
	List(ctx context.Context, organization string, opts *ListOptions) (*Iterator[Project], error)
	Read(ctx context.Context, projectID string) (*Project, error)
	Create(ctx context.Context, organization string, opts *ProjectCreateOptions) (*Project, error)
	Update(ctx context.Context, projectID string, opts *ProjectUpdateOptions) (*Project, error)
	Delete(ctx context.Context, projectID string) error
}

// WorkspacesClient manages workspaces.
type WorkspacesClient interface {
	List(ctx context.Context, organization string, opts *ListOptions) (*Iterator[Workspace], error)
	Read(ctx context.Context, organization, name string) (*Workspace, error)
	ReadByID(ctx context.Context, workspaceID string) (*Workspace, error)
	Create(ctx context.Context, organization string, opts *WorkspaceCreateOptions) (*Workspace, error)
	Update(ctx context.Context, organization, name string, opts *WorkspaceUpdateOptions) (*Workspace, error)
	UpdateByID(ctx context.Context, workspaceID string, opts *WorkspaceUpdateOptions) (*Workspace, error)
	Delete(ctx context.Context, organization, name string) error
	DeleteByID(ctx context.Context, workspaceID string) error
	Lock(ctx context.Context, workspaceID string, opts *WorkspaceLockOptions) (*Workspace, error)
	Unlock(ctx context.Context, workspaceID string) (*Workspace, error)
}

// VariablesClient manages workspace variables.
type VariablesClient interface {
	List(ctx context.Context, workspaceID string, opts *ListOptions) (*Iterator[Variable], error)
	Read(ctx context.Context, workspaceID, variableID string) (*Variable, error)
	Create(ctx context.Context, workspaceID string, opts *VariableCreateOptions) (*Variable, error)
	Update(ctx context.Context, workspaceID, variableID string, opts *VariableUpdateOptions) (*Variable, error)
	Delete(ctx context.Context, workspaceID, variableID string) error
}

// PoliciesClient manages Sentinel and OPA policies.
type PoliciesClient interface {
	List(ctx context.Context, organization string, opts *ListOptions) (*Iterator[Policy], error)
	Read(ctx context.Context, policyID string) (*Policy, error)
	Create(ctx context.Context, organization string, opts PolicyCreateOptions) (*Policy, error)
	Update(ctx context.Context, policyID string, opts *PolicyUpdateOptions) (*Policy, error)
	Delete(ctx context.Context, policyID string) error
	Upload(ctx context.Context, policyID string, content []byte) error
	Download(ctx context.Context, policyID string) ([]byte, error)
}

// RunsClient manages runs.
type RunsClient interface {
	List(ctx context.Context, workspaceID string, opts *ListOptions) (*Iterator[Run], error)
	Read(ctx context.Context, runID string) (*Run, error)
	Create(ctx context.Context, opts *RunCreateOptions) (*Run, error)
	Apply(ctx context.Context, runID string, opts *RunActionOptions) error
	Cancel(ctx context.Context, runID string, opts *RunActionOptions) error
	Discard(ctx context.Context, runID string, opts *RunActionOptions) error
}

// ReservedTagKeysClient manages reserved tag keys.
type ReservedTagKeysClient interface {
	List(ctx context.Context, organization string, opts *ListOptions) (*Iterator[ReservedTagKey], error)
	Create(ctx context.Context, organization string, opts *ReservedTagKeyCreateOptions) (*ReservedTagKey, error)
	Update(ctx context.Context, reservedTagKeyID string, opts *ReservedTagKeyUpdateOptions) (*ReservedTagKey, error)
	Delete(ctx context.Context, reservedTagKeyID string) error
}

// AgentPoolsClient manages agent pools.
type AgentPoolsClient interface {
	List(ctx context.Context, organization string, opts *ListOptions) (*Iterator[AgentPool], error)
	Read(ctx context.Context, agentPoolID string) (*AgentPool, error)
	Create(ctx context.Context, organization string, opts *AgentPoolCreateOptions) (*AgentPool, error)
	Update(ctx context.Context, agentPoolID string, opts *AgentPoolUpdateOptions) (*AgentPool, error)
	Delete(ctx context.Context, agentPoolID string) error
}
