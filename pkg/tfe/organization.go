package tfe

import "time"

// TypeOrganizations is the JSON:API type of organizations.
const TypeOrganizations = "organizations"

// Organization is an HCP Terraform organization. Its ID is its name.
type Organization struct {
	Name                       string         `json:"name"                                    yaml:"name"`
	Email                      *string        `json:"email,omitempty"                         yaml:"email,omitempty"`
	ExternalID                 *string        `json:"external_id,omitempty"                   yaml:"external_id,omitempty"`
	CollaboratorAuthPolicy     *string        `json:"collaborator_auth_policy,omitempty"      yaml:"collaborator_auth_policy,omitempty"`
	CostEstimationEnabled      *bool          `json:"cost_estimation_enabled,omitempty"       yaml:"cost_estimation_enabled,omitempty"`
	AssessmentsEnforced        *bool          `json:"assessments_enforced,omitempty"          yaml:"assessments_enforced,omitempty"`
	DefaultExecutionMode       *ExecutionMode `json:"default_execution_mode,omitempty"        yaml:"default_execution_mode,omitempty"`
	SAMLEnabled                *bool          `json:"saml_enabled,omitempty"                  yaml:"saml_enabled,omitempty"`
	SessionRemember            *int           `json:"session_remember,omitempty"              yaml:"session_remember,omitempty"`
	SessionTimeout             *int           `json:"session_timeout,omitempty"               yaml:"session_timeout,omitempty"`
	TwoFactorConformant        *bool          `json:"two_factor_conformant,omitempty"         yaml:"two_factor_conformant,omitempty"`
	AllowForceDeleteWorkspaces *bool          `json:"allow_force_delete_workspaces,omitempty" yaml:"allow_force_delete_workspaces,omitempty"`
	CreatedAt                  *time.Time     `json:"created_at,omitempty"                    yaml:"created_at,omitempty"`
	DefaultProject             *ResourceRef   `json:"default_project,omitempty"               yaml:"default_project,omitempty"`
	DefaultAgentPool           *ResourceRef   `json:"default_agent_pool,omitempty"            yaml:"default_agent_pool,omitempty"`
}

// OrganizationMapping decodes organization resource objects.
var OrganizationMapping = NewMapping(TypeOrganizations,
	func(o *Organization) *string { return &o.Name },
	Attr("name", "name", func(o *Organization) *string { return &o.Name }),
	Attr("email", "email", func(o *Organization) **string { return &o.Email }),
	Attr("external_id", "external-id", func(o *Organization) **string { return &o.ExternalID }),
	Attr("collaborator_auth_policy", "collaborator-auth-policy", func(o *Organization) **string { return &o.CollaboratorAuthPolicy }),
	Attr("cost_estimation_enabled", "cost-estimation-enabled", func(o *Organization) **bool { return &o.CostEstimationEnabled }),
	Attr("assessments_enforced", "assessments-enforced", func(o *Organization) **bool { return &o.AssessmentsEnforced }),
	Attr("default_execution_mode", "default-execution-mode", func(o *Organization) **ExecutionMode { return &o.DefaultExecutionMode }),
	Attr("saml_enabled", "saml-enabled", func(o *Organization) **bool { return &o.SAMLEnabled }),
	Attr("session_remember", "session-remember", func(o *Organization) **int { return &o.SessionRemember }),
	Attr("session_timeout", "session-timeout", func(o *Organization) **int { return &o.SessionTimeout }),
	Attr("two_factor_conformant", "two-factor-conformant", func(o *Organization) **bool { return &o.TwoFactorConformant }),
	Attr("allow_force_delete_workspaces", "allow-force-delete-workspaces", func(o *Organization) **bool { return &o.AllowForceDeleteWorkspaces }),
	Attr("created_at", "created-at", func(o *Organization) **time.Time { return &o.CreatedAt }),
	ToOneRel("default_project", "default-project", func(o *Organization) **ResourceRef { return &o.DefaultProject }),
	ToOneRel("default_agent_pool", "default-agent-pool", func(o *Organization) **ResourceRef { return &o.DefaultAgentPool }),
)

// OrganizationCreateOptions are the options for creating an organization.
type OrganizationCreateOptions struct {
	Name                       *string
	Email                      *string
	CollaboratorAuthPolicy     *string
	CostEstimationEnabled      *bool
	AssessmentsEnforced        *bool
	DefaultExecutionMode       *ExecutionMode
	SessionRemember            *int
	SessionTimeout             *int
	AllowForceDeleteWorkspaces *bool
}

// Validate checks the options.
func (o *OrganizationCreateOptions) Validate() error {
	if o == nil {
		return newValidationError("organization", "", "", ErrMissingOptions)
	}

	if err := requireString("organization", "name", o.Name, ErrRequiredName); err != nil {
		return err
	}

	if !ValidName(*o.Name) {
		return newValidationError("organization", "name", *o.Name, ErrInvalidName)
	}

	if err := requireString("organization", "email", o.Email, ErrRequiredField); err != nil {
		return err
	}

	return validateExecutionMode("organization", "default_execution_mode", o.DefaultExecutionMode)
}

var organizationCreateEncoder = NewEncoder(TypeOrganizations,
	Opt("name", func(o *OrganizationCreateOptions) *string { return o.Name }),
	Opt("email", func(o *OrganizationCreateOptions) *string { return o.Email }),
	Opt("collaborator-auth-policy", func(o *OrganizationCreateOptions) *string { return o.CollaboratorAuthPolicy }),
	Opt("cost-estimation-enabled", func(o *OrganizationCreateOptions) *bool { return o.CostEstimationEnabled }),
	Opt("assessments-enforced", func(o *OrganizationCreateOptions) *bool { return o.AssessmentsEnforced }),
	Opt("default-execution-mode", func(o *OrganizationCreateOptions) *ExecutionMode { return o.DefaultExecutionMode }),
	Opt("session-remember", func(o *OrganizationCreateOptions) *int { return o.SessionRemember }),
	Opt("session-timeout", func(o *OrganizationCreateOptions) *int { return o.SessionTimeout }),
	Opt("allow-force-delete-workspaces", func(o *OrganizationCreateOptions) *bool { return o.AllowForceDeleteWorkspaces }),
)

// Document encodes the options as a request document.
func (o *OrganizationCreateOptions) Document() (*Document, error) {
	return organizationCreateEncoder.Encode("", o)
}

// OrganizationUpdateOptions are the options for updating an organization.
// Nil fields are left unchanged.
type OrganizationUpdateOptions struct {
	Name                       *string
	Email                      *string
	CollaboratorAuthPolicy     *string
	CostEstimationEnabled      *bool
	AssessmentsEnforced        *bool
	DefaultExecutionMode       *ExecutionMode
	SessionRemember            *int
	SessionTimeout             *int
	AllowForceDeleteWorkspaces *bool
}

// Validate checks the options.
func (o *OrganizationUpdateOptions) Validate() error {
	if o == nil {
		return newValidationError("organization", "", "", ErrMissingOptions)
	}

	if o.Name != nil && !ValidName(*o.Name) {
		return newValidationError("organization", "name", *o.Name, ErrInvalidName)
	}

	return validateExecutionMode("organization", "default_execution_mode", o.DefaultExecutionMode)
}

var organizationUpdateEncoder = NewEncoder(TypeOrganizations,
	Opt("name", func(o *OrganizationUpdateOptions) *string { return o.Name }),
	Opt("email", func(o *OrganizationUpdateOptions) *string { return o.Email }),
	Opt("collaborator-auth-policy", func(o *OrganizationUpdateOptions) *string { return o.CollaboratorAuthPolicy }),
	Opt("cost-estimation-enabled", func(o *OrganizationUpdateOptions) *bool { return o.CostEstimationEnabled }),
	Opt("assessments-enforced", func(o *OrganizationUpdateOptions) *bool { return o.AssessmentsEnforced }),
	Opt("default-execution-mode", func(o *OrganizationUpdateOptions) *ExecutionMode { return o.DefaultExecutionMode }),
	Opt("session-remember", func(o *OrganizationUpdateOptions) *int { return o.SessionRemember }),
	Opt("session-timeout", func(o *OrganizationUpdateOptions) *int { return o.SessionTimeout }),
	Opt("allow-force-delete-workspaces", func(o *OrganizationUpdateOptions) *bool { return o.AllowForceDeleteWorkspaces }),
)

// Document encodes the options as a request document.
func (o *OrganizationUpdateOptions) Document(name string) (*Document, error) {
	return organizationUpdateEncoder.Encode(name, o)
}

func validateExecutionMode(resource, field string, mode *ExecutionMode) error {
	if mode != nil && !mode.Valid() {
		return newValidationError(resource, field, string(*mode), ErrInvalidExecutionMode)
	}

	return nil
}
