package tfe

import "time"

// TypeRuns is the JSON:API type of runs.
const TypeRuns = "runs"

// RunIncludes are the related resources a run list or read can side-load.
var RunIncludes = []string{
	"plan",
	"apply",
	"created_by",
	"cost_estimate",
	"configuration_version",
	"configuration_version.ingress_attributes",
	"workspace",
	"task_stages",
}

// Run is a single plan, and optionally apply, of a workspace.
type Run struct {
	ID                    string       `json:"id"                                yaml:"id"`
	Status                *RunStatus   `json:"status,omitempty"                  yaml:"status,omitempty"`
	Message               *string      `json:"message,omitempty"                 yaml:"message,omitempty"`
	Source                *string      `json:"source,omitempty"                  yaml:"source,omitempty"`
	IsDestroy             *bool        `json:"is_destroy,omitempty"              yaml:"is_destroy,omitempty"`
	AutoApply             *bool        `json:"auto_apply,omitempty"              yaml:"auto_apply,omitempty"`
	PlanOnly              *bool        `json:"plan_only,omitempty"               yaml:"plan_only,omitempty"`
	HasChanges            *bool        `json:"has_changes,omitempty"             yaml:"has_changes,omitempty"`
	TerraformVersion      *string      `json:"terraform_version,omitempty"       yaml:"terraform_version,omitempty"`
	TargetAddrs           []string     `json:"target_addrs,omitempty"            yaml:"target_addrs,omitempty"`
	ReplaceAddrs          []string     `json:"replace_addrs,omitempty"           yaml:"replace_addrs,omitempty"`
	CreatedAt             *time.Time   `json:"created_at,omitempty"              yaml:"created_at,omitempty"`
	Workspace             *ResourceRef `json:"workspace,omitempty"               yaml:"workspace,omitempty"`
	ConfigurationVersion  *ResourceRef `json:"configuration_version,omitempty"   yaml:"configuration_version,omitempty"`
	Plan                  *ResourceRef `json:"plan,omitempty"                    yaml:"plan,omitempty"`
	Apply                 *ResourceRef `json:"apply,omitempty"                   yaml:"apply,omitempty"`
	CreatedBy             *ResourceRef `json:"created_by,omitempty"              yaml:"created_by,omitempty"`
	CostEstimate          *ResourceRef `json:"cost_estimate,omitempty"           yaml:"cost_estimate,omitempty"`
	PositionInQueue       *int         `json:"position_in_queue,omitempty"       yaml:"position_in_queue,omitempty"`
	AllowEmptyApply       *bool        `json:"allow_empty_apply,omitempty"       yaml:"allow_empty_apply,omitempty"`
	RefreshOnly           *bool        `json:"refresh_only,omitempty"            yaml:"refresh_only,omitempty"`
	SavePlan              *bool        `json:"save_plan,omitempty"               yaml:"save_plan,omitempty"`
	TriggerReason         *string      `json:"trigger_reason,omitempty"          yaml:"trigger_reason,omitempty"`
	AutoApplyRunTrigger   *bool        `json:"auto_apply_run_trigger,omitempty"  yaml:"auto_apply_run_trigger,omitempty"`
	AllowConfigGeneration *bool        `json:"allow_config_generation,omitempty" yaml:"allow_config_generation,omitempty"`
}

// RunMapping decodes run resource objects.
var RunMapping = NewMapping(TypeRuns,
	func(r *Run) *string { return &r.ID },
	Attr("status", "status", func(r *Run) **RunStatus { return &r.Status }),
	Attr("message", "message", func(r *Run) **string { return &r.Message }),
	Attr("source", "source", func(r *Run) **string { return &r.Source }),
	Attr("is_destroy", "is-destroy", func(r *Run) **bool { return &r.IsDestroy }),
	Attr("auto_apply", "auto-apply", func(r *Run) **bool { return &r.AutoApply }),
	Attr("plan_only", "plan-only", func(r *Run) **bool { return &r.PlanOnly }),
	Attr("has_changes", "has-changes", func(r *Run) **bool { return &r.HasChanges }),
	Attr("terraform_version", "terraform-version", func(r *Run) **string { return &r.TerraformVersion }),
	Attr("target_addrs", "target-addrs", func(r *Run) *[]string { return &r.TargetAddrs }),
	Attr("replace_addrs", "replace-addrs", func(r *Run) *[]string { return &r.ReplaceAddrs }),
	Attr("created_at", "created-at", func(r *Run) **time.Time { return &r.CreatedAt }),
	Attr("position_in_queue", "position-in-queue", func(r *Run) **int { return &r.PositionInQueue }),
	Attr("allow_empty_apply", "allow-empty-apply", func(r *Run) **bool { return &r.AllowEmptyApply }),
	Attr("refresh_only", "refresh-only", func(r *Run) **bool { return &r.RefreshOnly }),
	Attr("save_plan", "save-plan", func(r *Run) **bool { return &r.SavePlan }),
	Attr("trigger_reason", "trigger-reason", func(r *Run) **string { return &r.TriggerReason }),
	Attr("auto_apply_run_trigger", "auto-apply-run-trigger", func(r *Run) **bool { return &r.AutoApplyRunTrigger }),
	Attr("allow_config_generation", "allow-config-generation", func(r *Run) **bool { return &r.AllowConfigGeneration }),
	ToOneRel("workspace", "workspace", func(r *Run) **ResourceRef { return &r.Workspace }),
	ToOneRel("configuration_version", "configuration-version", func(r *Run) **ResourceRef { return &r.ConfigurationVersion }),
	ToOneRel("plan", "plan", func(r *Run) **ResourceRef { return &r.Plan }),
	ToOneRel("apply", "apply", func(r *Run) **ResourceRef { return &r.Apply }),
	ToOneRel("created_by", "created-by", func(r *Run) **ResourceRef { return &r.CreatedBy }),
	ToOneRel("cost_estimate", "cost-estimate", func(r *Run) **ResourceRef { return &r.CostEstimate }),
)

// RunCreateOptions are the options for queuing a run.
type RunCreateOptions struct {
	WorkspaceID            string
	ConfigurationVersionID *string
	Message                *string
	IsDestroy              *bool
	AutoApply              *bool
	PlanOnly               *bool
	RefreshOnly            *bool
	SavePlan               *bool
	AllowEmptyApply        *bool
	TerraformVersion       *string
	TargetAddrs            []string
	ReplaceAddrs           []string
}

// Validate checks the options.
func (o *RunCreateOptions) Validate() error {
	if o == nil {
		return newValidationError("run", "", "", ErrMissingOptions)
	}

	if o.WorkspaceID == "" {
		return newValidationError("run", "workspace", "", ErrRequiredWorkspace)
	}

	return ValidateIdentifier(o.WorkspaceID, KindWorkspace)
}

var runCreateEncoder = NewEncoder(TypeRuns,
	Opt("message", func(o *RunCreateOptions) *string { return o.Message }),
	Opt("is-destroy", func(o *RunCreateOptions) *bool { return o.IsDestroy }),
	Opt("auto-apply", func(o *RunCreateOptions) *bool { return o.AutoApply }),
	Opt("plan-only", func(o *RunCreateOptions) *bool { return o.PlanOnly }),
	Opt("refresh-only", func(o *RunCreateOptions) *bool { return o.RefreshOnly }),
	Opt("save-plan", func(o *RunCreateOptions) *bool { return o.SavePlan }),
	Opt("allow-empty-apply", func(o *RunCreateOptions) *bool { return o.AllowEmptyApply }),
	Opt("terraform-version", func(o *RunCreateOptions) *string { return o.TerraformVersion }),
	OptSlice("target-addrs", func(o *RunCreateOptions) []string { return o.TargetAddrs }),
	OptSlice("replace-addrs", func(o *RunCreateOptions) []string { return o.ReplaceAddrs }),
	Rel("workspace", func(o *RunCreateOptions) (Relationship, bool) {
		return ToOne(TypeWorkspaces, o.WorkspaceID), true
	}),
	Rel("configuration-version", func(o *RunCreateOptions) (Relationship, bool) {
		if o.ConfigurationVersionID == nil {
			return Relationship{}, false
		}

		return ToOne("configuration-versions", *o.ConfigurationVersionID), true
	}),
)

// Document encodes the options as a request document.
func (o *RunCreateOptions) Document() (*Document, error) {
	return runCreateEncoder.Encode("", o)
}

// RunActionOptions are the options for apply, cancel and discard.
type RunActionOptions struct {
	Comment *string `json:"comment,omitempty"`
}
