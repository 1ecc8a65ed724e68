package tfe

import "time"

// TypeWorkspaces is the JSON:API type of workspaces.
const TypeWorkspaces = "workspaces"

// WorkspaceIncludes are the related resources a workspace list or read can
// side-load.
var WorkspaceIncludes = []string{
	"organization",
	"current_configuration_version",
	"current_configuration_version.ingress_attributes",
	"current_run",
	"current_run.plan",
	"current_run.configuration_version",
	"current_run.configuration_version.ingress_attributes",
	"current_state_version",
	"locked_by",
	"readme",
	"outputs",
	"project",
}

// Workspace is a Terraform workspace.
type Workspace struct {
	ID                   string         `json:"id"                               yaml:"id"`
	Name                 *string        `json:"name,omitempty"                   yaml:"name,omitempty"`
	Description          *string        `json:"description,omitempty"            yaml:"description,omitempty"`
	ExecutionMode        *ExecutionMode `json:"execution_mode,omitempty"         yaml:"execution_mode,omitempty"`
	AutoApply            *bool          `json:"auto_apply,omitempty"             yaml:"auto_apply,omitempty"`
	AllowDestroyPlan     *bool          `json:"allow_destroy_plan,omitempty"     yaml:"allow_destroy_plan,omitempty"`
	FileTriggersEnabled  *bool          `json:"file_triggers_enabled,omitempty"  yaml:"file_triggers_enabled,omitempty"`
	GlobalRemoteState    *bool          `json:"global_remote_state,omitempty"    yaml:"global_remote_state,omitempty"`
	QueueAllRuns         *bool          `json:"queue_all_runs,omitempty"         yaml:"queue_all_runs,omitempty"`
	SpeculativeEnabled   *bool          `json:"speculative_enabled,omitempty"    yaml:"speculative_enabled,omitempty"`
	Locked               *bool          `json:"locked,omitempty"                 yaml:"locked,omitempty"`
	TerraformVersion     *string        `json:"terraform_version,omitempty"      yaml:"terraform_version,omitempty"`
	WorkingDirectory     *string        `json:"working_directory,omitempty"      yaml:"working_directory,omitempty"`
	Environment          *string        `json:"environment,omitempty"            yaml:"environment,omitempty"`
	ResourceCount        *int           `json:"resource_count,omitempty"         yaml:"resource_count,omitempty"`
	RunsCount            *int           `json:"runs_count,omitempty"             yaml:"runs_count,omitempty"`
	RunFailures          *int           `json:"run_failures,omitempty"           yaml:"run_failures,omitempty"`
	PolicyCheckFailures  *int           `json:"policy_check_failures,omitempty"  yaml:"policy_check_failures,omitempty"`
	ApplyDurationAverage *float64       `json:"apply_duration_average,omitempty" yaml:"apply_duration_average,omitempty"`
	PlanDurationAverage  *float64       `json:"plan_duration_average,omitempty"  yaml:"plan_duration_average,omitempty"`
	TriggerPrefixes      []string       `json:"trigger_prefixes,omitempty"       yaml:"trigger_prefixes,omitempty"`
	TriggerPatterns      []string       `json:"trigger_patterns,omitempty"       yaml:"trigger_patterns,omitempty"`
	TagNames             []string       `json:"tag_names,omitempty"              yaml:"tag_names,omitempty"`
	SourceName           *string        `json:"source_name,omitempty"            yaml:"source_name,omitempty"`
	SourceURL            *string        `json:"source_url,omitempty"             yaml:"source_url,omitempty"`
	AutoDestroyAt        *time.Time     `json:"auto_destroy_at,omitempty"        yaml:"auto_destroy_at,omitempty"`
	CreatedAt            *time.Time     `json:"created_at,omitempty"             yaml:"created_at,omitempty"`
	UpdatedAt            *time.Time     `json:"updated_at,omitempty"             yaml:"updated_at,omitempty"`

	Organization                *ResourceRef  `json:"organization,omitempty"                  yaml:"organization,omitempty"`
	Project                     *ResourceRef  `json:"project,omitempty"                       yaml:"project,omitempty"`
	AgentPool                   *ResourceRef  `json:"agent_pool,omitempty"                    yaml:"agent_pool,omitempty"`
	CurrentRun                  *ResourceRef  `json:"current_run,omitempty"                   yaml:"current_run,omitempty"`
	CurrentStateVersion         *ResourceRef  `json:"current_state_version,omitempty"         yaml:"current_state_version,omitempty"`
	CurrentConfigurationVersion *ResourceRef  `json:"current_configuration_version,omitempty" yaml:"current_configuration_version,omitempty"`
	LockedBy                    *ResourceRef  `json:"locked_by,omitempty"                     yaml:"locked_by,omitempty"`
	Outputs                     []ResourceRef `json:"outputs,omitempty"                       yaml:"outputs,omitempty"`
}

// WorkspaceMapping decodes workspace resource objects.
var WorkspaceMapping = NewMapping(TypeWorkspaces,
	func(w *Workspace) *string { return &w.ID },
	Attr("name", "name", func(w *Workspace) **string { return &w.Name }),
	Attr("description", "description", func(w *Workspace) **string { return &w.Description }),
	Attr("execution_mode", "execution-mode", func(w *Workspace) **ExecutionMode { return &w.ExecutionMode }),
	Attr("auto_apply", "auto-apply", func(w *Workspace) **bool { return &w.AutoApply }),
	Attr("allow_destroy_plan", "allow-destroy-plan", func(w *Workspace) **bool { return &w.AllowDestroyPlan }),
	Attr("file_triggers_enabled", "file-triggers-enabled", func(w *Workspace) **bool { return &w.FileTriggersEnabled }),
	Attr("global_remote_state", "global-remote-state", func(w *Workspace) **bool { return &w.GlobalRemoteState }),
	Attr("queue_all_runs", "queue-all-runs", func(w *Workspace) **bool { return &w.QueueAllRuns }),
	Attr("speculative_enabled", "speculative-enabled", func(w *Workspace) **bool { return &w.SpeculativeEnabled }),
	Attr("locked", "locked", func(w *Workspace) **bool { return &w.Locked }),
	Attr("terraform_version", "terraform-version", func(w *Workspace) **string { return &w.TerraformVersion }),
	Attr("working_directory", "working-directory", func(w *Workspace) **string { return &w.WorkingDirectory }),
	Attr("environment", "environment", func(w *Workspace) **string { return &w.Environment }),
	Attr("resource_count", "resource-count", func(w *Workspace) **int { return &w.ResourceCount }),
	Attr("runs_count", "workspace-kpis-runs-count", func(w *Workspace) **int { return &w.RunsCount }),
	Attr("run_failures", "run-failures", func(w *Workspace) **int { return &w.RunFailures }),
	Attr("policy_check_failures", "policy-check-failures", func(w *Workspace) **int { return &w.PolicyCheckFailures }),
	Attr("apply_duration_average", "apply-duration-average", func(w *Workspace) **float64 { return &w.ApplyDurationAverage }),
	Attr("plan_duration_average", "plan-duration-average", func(w *Workspace) **float64 { return &w.PlanDurationAverage }),
	Attr("trigger_prefixes", "trigger-prefixes", func(w *Workspace) *[]string { return &w.TriggerPrefixes }),
	Attr("trigger_patterns", "trigger-patterns", func(w *Workspace) *[]string { return &w.TriggerPatterns }),
	Attr("tag_names", "tag-names", func(w *Workspace) *[]string { return &w.TagNames }),
	Attr("source_name", "source-name", func(w *Workspace) **string { return &w.SourceName }),
	Attr("source_url", "source-url", func(w *Workspace) **string { return &w.SourceURL }),
	Attr("auto_destroy_at", "auto-destroy-at", func(w *Workspace) **time.Time { return &w.AutoDestroyAt }),
	Attr("created_at", "created-at", func(w *Workspace) **time.Time { return &w.CreatedAt }),
	Attr("updated_at", "updated-at", func(w *Workspace) **time.Time { return &w.UpdatedAt }),
	ToOneRel("organization", "organization", func(w *Workspace) **ResourceRef { return &w.Organization }),
	ToOneRel("project", "project", func(w *Workspace) **ResourceRef { return &w.Project }),
	ToOneRel("agent_pool", "agent-pool", func(w *Workspace) **ResourceRef { return &w.AgentPool }),
	ToOneRel("current_run", "current-run", func(w *Workspace) **ResourceRef { return &w.CurrentRun }),
	ToOneRel("current_state_version", "current-state-version", func(w *Workspace) **ResourceRef { return &w.CurrentStateVersion }),
	ToOneRel("current_configuration_version", "current-configuration-version", func(w *Workspace) **ResourceRef { return &w.CurrentConfigurationVersion }),
	ToOneRel("locked_by", "locked-by", func(w *Workspace) **ResourceRef { return &w.LockedBy }),
	ToManyRel("outputs", "outputs", func(w *Workspace) *[]ResourceRef { return &w.Outputs }),
)

// WorkspaceCreateOptions are the options for creating a workspace.
type WorkspaceCreateOptions struct {
	Name                *string
	Description         *string
	ExecutionMode       *ExecutionMode
	AgentPoolID         *string
	AutoApply           *bool
	AllowDestroyPlan    *bool
	FileTriggersEnabled *bool
	GlobalRemoteState   *bool
	QueueAllRuns        *bool
	SpeculativeEnabled  *bool
	TerraformVersion    *string
	WorkingDirectory    *string
	TriggerPrefixes     []string
	TriggerPatterns     []string
	TagNames            []string
	SourceName          *string
	SourceURL           *string
	ProjectID           *string
}

// Validate checks the options.
func (o *WorkspaceCreateOptions) Validate() error {
	if o == nil {
		return newValidationError("workspace", "", "", ErrMissingOptions)
	}

	if err := requireString("workspace", "name", o.Name, ErrRequiredName); err != nil {
		return err
	}

	if !ValidName(*o.Name) {
		return newValidationError("workspace", "name", *o.Name, ErrInvalidName)
	}

	if err := validateWorkspaceExecution(o.ExecutionMode, o.AgentPoolID); err != nil {
		return err
	}

	if o.ProjectID != nil {
		return ValidateIdentifier(*o.ProjectID, KindProject)
	}

	return nil
}

var workspaceCreateEncoder = NewEncoder(TypeWorkspaces,
	Opt("name", func(o *WorkspaceCreateOptions) *string { return o.Name }),
	Opt("description", func(o *WorkspaceCreateOptions) *string { return o.Description }),
	Opt("execution-mode", func(o *WorkspaceCreateOptions) *ExecutionMode { return o.ExecutionMode }),
	Opt("agent-pool-id", func(o *WorkspaceCreateOptions) *string { return o.AgentPoolID }),
	Opt("auto-apply", func(o *WorkspaceCreateOptions) *bool { return o.AutoApply }),
	Opt("allow-destroy-plan", func(o *WorkspaceCreateOptions) *bool { return o.AllowDestroyPlan }),
	Opt("file-triggers-enabled", func(o *WorkspaceCreateOptions) *bool { return o.FileTriggersEnabled }),
	Opt("global-remote-state", func(o *WorkspaceCreateOptions) *bool { return o.GlobalRemoteState }),
	Opt("queue-all-runs", func(o *WorkspaceCreateOptions) *bool { return o.QueueAllRuns }),
	Opt("speculative-enabled", func(o *WorkspaceCreateOptions) *bool { return o.SpeculativeEnabled }),
	Opt("terraform-version", func(o *WorkspaceCreateOptions) *string { return o.TerraformVersion }),
	Opt("working-directory", func(o *WorkspaceCreateOptions) *string { return o.WorkingDirectory }),
	OptSlice("trigger-prefixes", func(o *WorkspaceCreateOptions) []string { return o.TriggerPrefixes }),
	OptSlice("trigger-patterns", func(o *WorkspaceCreateOptions) []string { return o.TriggerPatterns }),
	OptSlice("tag-names", func(o *WorkspaceCreateOptions) []string { return o.TagNames }),
	Opt("source-name", func(o *WorkspaceCreateOptions) *string { return o.SourceName }),
	Opt("source-url", func(o *WorkspaceCreateOptions) *string { return o.SourceURL }),
	Rel("project", func(o *WorkspaceCreateOptions) (Relationship, bool) {
		if o.ProjectID == nil {
			return Relationship{}, false
		}

		return ToOne(TypeProjects, *o.ProjectID), true
	}),
)

// Document encodes the options as a request document.
func (o *WorkspaceCreateOptions) Document() (*Document, error) {
	return workspaceCreateEncoder.Encode("", o)
}

// WorkspaceUpdateOptions are the options for updating a workspace. Nil fields
// are left unchanged; a Null description or working directory clears it.
type WorkspaceUpdateOptions struct {
	Name                *string
	Description         *Nullable[string]
	ExecutionMode       *ExecutionMode
	AgentPoolID         *string
	AutoApply           *bool
	AllowDestroyPlan    *bool
	FileTriggersEnabled *bool
	GlobalRemoteState   *bool
	QueueAllRuns        *bool
	SpeculativeEnabled  *bool
	TerraformVersion    *string
	WorkingDirectory    *Nullable[string]
	TriggerPrefixes     []string
	TriggerPatterns     []string
	ProjectID           *string
}

// Validate checks the options.
func (o *WorkspaceUpdateOptions) Validate() error {
	if o == nil {
		return newValidationError("workspace", "", "", ErrMissingOptions)
	}

	if o.Name != nil && !ValidName(*o.Name) {
		return newValidationError("workspace", "name", *o.Name, ErrInvalidName)
	}

	if err := validateWorkspaceExecution(o.ExecutionMode, o.AgentPoolID); err != nil {
		return err
	}

	if o.ProjectID != nil {
		return ValidateIdentifier(*o.ProjectID, KindProject)
	}

	return nil
}

var workspaceUpdateEncoder = NewEncoder(TypeWorkspaces,
	Opt("name", func(o *WorkspaceUpdateOptions) *string { return o.Name }),
	Opt("description", func(o *WorkspaceUpdateOptions) *Nullable[string] { return o.Description }),
	Opt("execution-mode", func(o *WorkspaceUpdateOptions) *ExecutionMode { return o.ExecutionMode }),
	Opt("agent-pool-id", func(o *WorkspaceUpdateOptions) *string { return o.AgentPoolID }),
	Opt("auto-apply", func(o *WorkspaceUpdateOptions) *bool { return o.AutoApply }),
	Opt("allow-destroy-plan", func(o *WorkspaceUpdateOptions) *bool { return o.AllowDestroyPlan }),
	Opt("file-triggers-enabled", func(o *WorkspaceUpdateOptions) *bool { return o.FileTriggersEnabled }),
	Opt("global-remote-state", func(o *WorkspaceUpdateOptions) *bool { return o.GlobalRemoteState }),
	Opt("queue-all-runs", func(o *WorkspaceUpdateOptions) *bool { return o.QueueAllRuns }),
	Opt("speculative-enabled", func(o *WorkspaceUpdateOptions) *bool { return o.SpeculativeEnabled }),
	Opt("terraform-version", func(o *WorkspaceUpdateOptions) *string { return o.TerraformVersion }),
	Opt("working-directory", func(o *WorkspaceUpdateOptions) *Nullable[string] { return o.WorkingDirectory }),
	OptSlice("trigger-prefixes", func(o *WorkspaceUpdateOptions) []string { return o.TriggerPrefixes }),
	OptSlice("trigger-patterns", func(o *WorkspaceUpdateOptions) []string { return o.TriggerPatterns }),
	Rel("project", func(o *WorkspaceUpdateOptions) (Relationship, bool) {
		if o.ProjectID == nil {
			return Relationship{}, false
		}

		return ToOne(TypeProjects, *o.ProjectID), true
	}),
)

// Document encodes the options as a request document.
func (o *WorkspaceUpdateOptions) Document(id string) (*Document, error) {
	return workspaceUpdateEncoder.Encode(id, o)
}

// WorkspaceLockOptions are the options for locking a workspace.
type WorkspaceLockOptions struct {
	Reason *string `json:"reason,omitempty"`
}

func validateWorkspaceExecution(mode *ExecutionMode, agentPoolID *string) error {
	if err := validateExecutionMode("workspace", "execution_mode", mode); err != nil {
		return err
	}

	agentMode := mode != nil && *mode == ExecutionModeAgent

	switch {
	case agentMode && agentPoolID == nil:
		return newValidationError("workspace", "agent_pool_id", "", ErrRequiredField)
	case agentPoolID != nil && mode != nil && !agentMode:
		return newValidationError("workspace", "agent_pool_id", *agentPoolID, ErrInvalidExecutionMode)
	case agentPoolID != nil:
		return ValidateIdentifier(*agentPoolID, KindAgentPool)
	}

	return nil
}
