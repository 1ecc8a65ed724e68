package tfe

import (
	"regexp"
	"slices"
	"strings"
)

// stringIDPattern matches the API's name-like identifiers (organization and
// workspace names).
var stringIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]{2,}$`)

// IDKind describes how an identifier of one resource kind is checked.
type IDKind struct {
	Name   string
	Prefix string
	Err    error
}

// Identifier kinds.
var (
	KindOrganization   = IDKind{Name: "organization", Err: ErrInvalidOrganization}
	KindWorkspaceName  = IDKind{Name: "workspace", Err: ErrInvalidWorkspaceName}
	KindWorkspace      = IDKind{Name: "workspace", Prefix: "ws-", Err: ErrInvalidWorkspaceID}
	KindProject        = IDKind{Name: "project", Prefix: "prj-", Err: ErrInvalidProjectID}
	KindVariable       = IDKind{Name: "variable", Prefix: "var-", Err: ErrInvalidVariableID}
	KindPolicy         = IDKind{Name: "policy", Prefix: "pol-", Err: ErrInvalidPolicyID}
	KindPolicySet      = IDKind{Name: "policy set", Prefix: "polset-", Err: ErrInvalidPolicySetID}
	KindRun            = IDKind{Name: "run", Prefix: "run-", Err: ErrInvalidRunID}
	KindReservedTagKey = IDKind{Name: "reserved tag key", Prefix: "rtk-", Err: ErrInvalidReservedTagKeyID}
	KindAgentPool      = IDKind{Name: "agent pool", Prefix: "apool-", Err: ErrInvalidAgentPoolID}
)

// ValidateIdentifier checks an identifier before it is placed in a request
// path. Kinds with a prefix require it plus a non-empty suffix; kinds without
// one must look like an API name.
func ValidateIdentifier(value string, kind IDKind) error {
	if strings.TrimSpace(value) == "" {
		return newValidationError(kind.Name, "id", value, kind.Err)
	}

	if kind.Prefix == "" {
		if !stringIDPattern.MatchString(value) {
			return newValidationError(kind.Name, "id", value, kind.Err)
		}

		return nil
	}

	suffix, ok := strings.CutPrefix(value, kind.Prefix)
	if !ok || suffix == "" || strings.ContainsAny(suffix, "/?#% ") {
		return newValidationError(kind.Name, "id", value, kind.Err)
	}

	return nil
}

// ValidName reports whether v is a valid API name.
func ValidName(v string) bool {
	return stringIDPattern.MatchString(v)
}

// ValidateIncludes checks that every include is one the resource supports.
func ValidateIncludes(resource string, include []string, allowed ...string) error {
	for _, name := range include {
		if !slices.Contains(allowed, name) {
			return newValidationError(resource, "include", name, ErrInvalidInclude)
		}
	}

	return nil
}

func requireString(resource, field string, value *string, err error) error {
	if value == nil || strings.TrimSpace(*value) == "" {
		return newValidationError(resource, field, "", err)
	}

	return nil
}
