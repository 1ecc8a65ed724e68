package tfe

import "slices"

// ExecutionMode is where runs of a workspace execute.
type ExecutionMode string

const (
	ExecutionModeRemote  ExecutionMode = "remote"
	ExecutionModeAgent   ExecutionMode = "agent"
	ExecutionModeLocal   ExecutionMode = "local"
	ExecutionModeUnknown ExecutionMode = "unknown"
)

var executionModes = []ExecutionMode{ExecutionModeRemote, ExecutionModeAgent, ExecutionModeLocal}

// Valid reports whether m is a value the API accepts.
func (m ExecutionMode) Valid() bool {
	return slices.Contains(executionModes, m)
}

func (m *ExecutionMode) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, ExecutionModeUnknown, executionModes...)
	if err != nil {
		return err
	}

	*m = v

	return nil
}

// RunStatus is the state of a run.
type RunStatus string

const (
	RunPending            RunStatus = "pending"
	RunFetching           RunStatus = "fetching"
	RunFetchingCompleted  RunStatus = "fetching_completed"
	RunPrePlanRunning     RunStatus = "pre_plan_running"
	RunPrePlanCompleted   RunStatus = "pre_plan_completed"
	RunQueuing            RunStatus = "queuing"
	RunPlanQueued         RunStatus = "plan_queued"
	RunPlanning           RunStatus = "planning"
	RunPlanned            RunStatus = "planned"
	RunCostEstimating     RunStatus = "cost_estimating"
	RunCostEstimated      RunStatus = "cost_estimated"
	RunPolicyChecking     RunStatus = "policy_checking"
	RunPolicyOverride     RunStatus = "policy_override"
	RunPolicySoftFailed   RunStatus = "policy_soft_failed"
	RunPolicyChecked      RunStatus = "policy_checked"
	RunConfirmed          RunStatus = "confirmed"
	RunPostPlanRunning    RunStatus = "post_plan_running"
	RunPostPlanCompleted  RunStatus = "post_plan_completed"
	RunPlannedAndFinished RunStatus = "planned_and_finished"
	RunPlannedAndSaved    RunStatus = "planned_and_saved"
	RunApplyQueued        RunStatus = "apply_queued"
	RunApplying           RunStatus = "applying"
	RunApplied            RunStatus = "applied"
	RunDiscarded          RunStatus = "discarded"
	RunErrored            RunStatus = "errored"
	RunCanceled           RunStatus = "canceled"
	RunForceCanceled      RunStatus = "force_canceled"
	RunStatusUnknown      RunStatus = "unknown"
)

var runStatuses = []RunStatus{
	RunPending, RunFetching, RunFetchingCompleted, RunPrePlanRunning,
	RunPrePlanCompleted, RunQueuing, RunPlanQueued, RunPlanning, RunPlanned,
	RunCostEstimating, RunCostEstimated, RunPolicyChecking, RunPolicyOverride,
	RunPolicySoftFailed, RunPolicyChecked, RunConfirmed, RunPostPlanRunning,
	RunPostPlanCompleted, RunPlannedAndFinished, RunPlannedAndSaved,
	RunApplyQueued, RunApplying, RunApplied, RunDiscarded, RunErrored,
	RunCanceled, RunForceCanceled,
}

// Final reports whether no further transitions are expected.
func (s RunStatus) Final() bool {
	switch s {
	case RunApplied, RunDiscarded, RunErrored, RunCanceled, RunForceCanceled,
		RunPlannedAndFinished, RunPlannedAndSaved:
		return true
	}

	return false
}

func (s *RunStatus) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, RunStatusUnknown, runStatuses...)
	if err != nil {
		return err
	}

	*s = v

	return nil
}

// CategoryType is the kind of a variable.
type CategoryType string

const (
	CategoryEnv       CategoryType = "env"
	CategoryPolicySet CategoryType = "policy-set"
	CategoryTerraform CategoryType = "terraform"
	CategoryUnknown   CategoryType = "unknown"
)

var categoryTypes = []CategoryType{CategoryEnv, CategoryPolicySet, CategoryTerraform}

// Valid reports whether c is a value the API accepts.
func (c CategoryType) Valid() bool {
	return slices.Contains(categoryTypes, c)
}

func (c *CategoryType) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, CategoryUnknown, categoryTypes...)
	if err != nil {
		return err
	}

	*c = v

	return nil
}

// PolicyKind is the policy language.
type PolicyKind string

const (
	PolicyKindSentinel PolicyKind = "sentinel"
	PolicyKindOPA      PolicyKind = "opa"
	PolicyKindUnknown  PolicyKind = "unknown"
)

func (k *PolicyKind) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, PolicyKindUnknown, PolicyKindSentinel, PolicyKindOPA)
	if err != nil {
		return err
	}

	*k = v

	return nil
}

// EnforcementLevel is how a failing policy affects a run.
type EnforcementLevel string

const (
	EnforcementAdvisory  EnforcementLevel = "advisory"
	EnforcementSoft      EnforcementLevel = "soft-mandatory"
	EnforcementHard      EnforcementLevel = "hard-mandatory"
	EnforcementMandatory EnforcementLevel = "mandatory"
	EnforcementUnknown   EnforcementLevel = "unknown"
)

var enforcementLevels = []EnforcementLevel{EnforcementAdvisory, EnforcementSoft, EnforcementHard, EnforcementMandatory}

func (l *EnforcementLevel) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, EnforcementUnknown, enforcementLevels...)
	if err != nil {
		return err
	}

	*l = v

	return nil
}

// validFor reports whether l can be used with the given policy kind. OPA
// policies take advisory or mandatory, Sentinel the three-level scale.
func (l EnforcementLevel) validFor(kind PolicyKind) bool {
	switch kind {
	case PolicyKindOPA:
		return l == EnforcementAdvisory || l == EnforcementMandatory
	case PolicyKindSentinel:
		return l == EnforcementAdvisory || l == EnforcementSoft || l == EnforcementHard
	}

	return false
}
