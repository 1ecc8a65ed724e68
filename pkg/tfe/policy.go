package tfe

import (
	"strings"
	"time"
)

// TypePolicies is the JSON:API type of policies.
const TypePolicies = "policies"

// Policy is a Sentinel or OPA policy.
type Policy struct {
	ID               string            `json:"id"                          yaml:"id"`
	Name             *string           `json:"name,omitempty"              yaml:"name,omitempty"`
	Description      *string           `json:"description,omitempty"       yaml:"description,omitempty"`
	Kind             *PolicyKind       `json:"kind,omitempty"              yaml:"kind,omitempty"`
	Query            *string           `json:"query,omitempty"             yaml:"query,omitempty"`
	EnforcementLevel *EnforcementLevel `json:"enforcement_level,omitempty" yaml:"enforcement_level,omitempty"`
	PolicySetCount   *int              `json:"policy_set_count,omitempty"  yaml:"policy_set_count,omitempty"`
	UpdatedAt        *time.Time        `json:"updated_at,omitempty"        yaml:"updated_at,omitempty"`
	Organization     *ResourceRef      `json:"organization,omitempty"      yaml:"organization,omitempty"`
	PolicySets       []ResourceRef     `json:"policy_sets,omitempty"       yaml:"policy_sets,omitempty"`
}

// PolicyMapping decodes policy resource objects.
var PolicyMapping = NewMapping(TypePolicies,
	func(p *Policy) *string { return &p.ID },
	Attr("name", "name", func(p *Policy) **string { return &p.Name }),
	Attr("description", "description", func(p *Policy) **string { return &p.Description }),
	Attr("kind", "kind", func(p *Policy) **PolicyKind { return &p.Kind }),
	Attr("query", "query", func(p *Policy) **string { return &p.Query }),
	Attr("enforcement_level", "enforcement-level", func(p *Policy) **EnforcementLevel { return &p.EnforcementLevel }),
	Attr("policy_set_count", "policy-set-count", func(p *Policy) **int { return &p.PolicySetCount }),
	Attr("updated_at", "updated-at", func(p *Policy) **time.Time { return &p.UpdatedAt }),
	ToOneRel("organization", "organization", func(p *Policy) **ResourceRef { return &p.Organization }),
	ToManyRel("policy_sets", "policy-sets", func(p *Policy) *[]ResourceRef { return &p.PolicySets }),
)

// PolicyCreateOptions is implemented by SentinelPolicyCreateOptions and
// OPAPolicyCreateOptions only. The kind decides which fields exist, so an OPA
// policy without a query, or a Sentinel policy with one, cannot be built.
type PolicyCreateOptions interface {
	Kind() PolicyKind
	Validate() error
	Document() (*Document, error)

	policyCreateOptions()
}

// SentinelPolicyCreateOptions creates a Sentinel policy.
type SentinelPolicyCreateOptions struct {
	Name             string
	Description      *string
	EnforcementLevel EnforcementLevel
	PolicySetIDs     []string
}

// OPAPolicyCreateOptions creates an OPA policy. Query is required.
type OPAPolicyCreateOptions struct {
	Name             string
	Description      *string
	Query            string
	EnforcementLevel EnforcementLevel
	PolicySetIDs     []string
}

func (*SentinelPolicyCreateOptions) policyCreateOptions() {}
func (*OPAPolicyCreateOptions) policyCreateOptions()      {}

// Kind returns PolicyKindSentinel.
func (*SentinelPolicyCreateOptions) Kind() PolicyKind { return PolicyKindSentinel }

// Kind returns PolicyKindOPA.
func (*OPAPolicyCreateOptions) Kind() PolicyKind { return PolicyKindOPA }

// Validate checks the options.
func (o *SentinelPolicyCreateOptions) Validate() error {
	if o == nil {
		return newValidationError("policy", "", "", ErrMissingOptions)
	}

	return validatePolicyCommon(PolicyKindSentinel, o.Name, o.EnforcementLevel, o.PolicySetIDs)
}

// Validate checks the options.
func (o *OPAPolicyCreateOptions) Validate() error {
	if o == nil {
		return newValidationError("policy", "", "", ErrMissingOptions)
	}

	if err := validatePolicyCommon(PolicyKindOPA, o.Name, o.EnforcementLevel, o.PolicySetIDs); err != nil {
		return err
	}

	return requireString("policy", "query", &o.Query, ErrRequiredQuery)
}

func validatePolicyCommon(kind PolicyKind, name string, level EnforcementLevel, policySetIDs []string) error {
	if err := requireString("policy", "name", &name, ErrRequiredName); err != nil {
		return err
	}

	if level == "" {
		return newValidationError("policy", "enforcement_level", "", ErrRequiredEnforcementLevel)
	}

	if !level.validFor(kind) {
		return newValidationError("policy", "enforcement_level", string(level), ErrInvalidEnforcementLevel)
	}

	for _, id := range policySetIDs {
		if err := ValidateIdentifier(id, KindPolicySet); err != nil {
			return err
		}
	}

	return nil
}

func policySetsRel(ids []string) (Relationship, bool) {
	if ids == nil {
		return Relationship{}, false
	}

	return ToMany("policy-sets", ids...), true
}

var sentinelPolicyEncoder = NewEncoder(TypePolicies,
	Always("name", func(o *SentinelPolicyCreateOptions) string { return o.Name }),
	Opt("description", func(o *SentinelPolicyCreateOptions) *string { return o.Description }),
	Always("kind", func(o *SentinelPolicyCreateOptions) PolicyKind { return PolicyKindSentinel }),
	Always("enforcement-level", func(o *SentinelPolicyCreateOptions) EnforcementLevel { return o.EnforcementLevel }),
	Rel("policy-sets", func(o *SentinelPolicyCreateOptions) (Relationship, bool) { return policySetsRel(o.PolicySetIDs) }),
)

var opaPolicyEncoder = NewEncoder(TypePolicies,
	Always("name", func(o *OPAPolicyCreateOptions) string { return o.Name }),
	Opt("description", func(o *OPAPolicyCreateOptions) *string { return o.Description }),
	Always("kind", func(o *OPAPolicyCreateOptions) PolicyKind { return PolicyKindOPA }),
	Always("query", func(o *OPAPolicyCreateOptions) string { return o.Query }),
	Always("enforcement-level", func(o *OPAPolicyCreateOptions) EnforcementLevel { return o.EnforcementLevel }),
	Rel("policy-sets", func(o *OPAPolicyCreateOptions) (Relationship, bool) { return policySetsRel(o.PolicySetIDs) }),
)

// Document encodes the options as a request document.
func (o *SentinelPolicyCreateOptions) Document() (*Document, error) {
	return sentinelPolicyEncoder.Encode("", o)
}

// Document encodes the options as a request document.
func (o *OPAPolicyCreateOptions) Document() (*Document, error) {
	return opaPolicyEncoder.Encode("", o)
}

// NewPolicyCreateOptions builds create options from loosely typed input such
// as command line flags. A query is only accepted for OPA policies.
func NewPolicyCreateOptions(kind PolicyKind, name, query string, level EnforcementLevel) (PolicyCreateOptions, error) {
	switch kind {
	case PolicyKindOPA:
		return &OPAPolicyCreateOptions{Name: name, Query: query, EnforcementLevel: level}, nil
	case PolicyKindSentinel:
		if strings.TrimSpace(query) != "" {
			return nil, newValidationError("policy", "query", query, ErrUnsupportedQuery)
		}

		return &SentinelPolicyCreateOptions{Name: name, EnforcementLevel: level}, nil
	default:
		return nil, newValidationError("policy", "kind", string(kind), ErrInvalidPolicyKind)
	}
}

// PolicyUpdateOptions are the options for updating a policy.
type PolicyUpdateOptions struct {
	Description      *Nullable[string]
	Query            *string
	EnforcementLevel *EnforcementLevel
}

// Validate checks the options.
func (o *PolicyUpdateOptions) Validate() error {
	if o == nil {
		return newValidationError("policy", "", "", ErrMissingOptions)
	}

	if o.Query != nil {
		if err := requireString("policy", "query", o.Query, ErrRequiredQuery); err != nil {
			return err
		}
	}

	if o.EnforcementLevel != nil && !o.EnforcementLevel.validFor(PolicyKindOPA) && !o.EnforcementLevel.validFor(PolicyKindSentinel) {
		return newValidationError("policy", "enforcement_level", string(*o.EnforcementLevel), ErrInvalidEnforcementLevel)
	}

	return nil
}

var policyUpdateEncoder = NewEncoder(TypePolicies,
	Opt("description", func(o *PolicyUpdateOptions) *Nullable[string] { return o.Description }),
	Opt("query", func(o *PolicyUpdateOptions) *string { return o.Query }),
	Opt("enforcement-level", func(o *PolicyUpdateOptions) *EnforcementLevel { return o.EnforcementLevel }),
)

// Document encodes the options as a request document.
func (o *PolicyUpdateOptions) Document(id string) (*Document, error) {
	return policyUpdateEncoder.Encode(id, o)
}
