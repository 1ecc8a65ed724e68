package tfe_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

func TestValidateIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		kind  tfe.IDKind
		err   error
	}{
		{"acme", tfe.KindOrganization, nil},
		{"acme_corp-2", tfe.KindOrganization, nil},
		{"ab", tfe.KindOrganization, tfe.ErrInvalidOrganization},
		{"-acme", tfe.KindOrganization, tfe.ErrInvalidOrganization},
		{"acme corp", tfe.KindOrganization, tfe.ErrInvalidOrganization},
		{"", tfe.KindOrganization, tfe.ErrInvalidOrganization},
		{"prod", tfe.KindWorkspaceName, nil},
		{"prod/../x", tfe.KindWorkspaceName, tfe.ErrInvalidWorkspaceName},
		{"ws-abc123", tfe.KindWorkspace, nil},
		{"ws-", tfe.KindWorkspace, tfe.ErrInvalidWorkspaceID},
		{"prod", tfe.KindWorkspace, tfe.ErrInvalidWorkspaceID},
		{"ws-a/b", tfe.KindWorkspace, tfe.ErrInvalidWorkspaceID},
		{"ws-a?b", tfe.KindWorkspace, tfe.ErrInvalidWorkspaceID},
		{"   ", tfe.KindWorkspace, tfe.ErrInvalidWorkspaceID},
		{"prj-1", tfe.KindProject, nil},
		{"ws-1", tfe.KindProject, tfe.ErrInvalidProjectID},
		{"var-1", tfe.KindVariable, nil},
		{"pol-1", tfe.KindPolicy, nil},
		{"polset-1", tfe.KindPolicySet, nil},
		{"pol-1", tfe.KindPolicySet, tfe.ErrInvalidPolicySetID},
		{"run-1", tfe.KindRun, nil},
		{"rtk-1", tfe.KindReservedTagKey, nil},
		{"apool-1", tfe.KindAgentPool, nil},
		{"pool-1", tfe.KindAgentPool, tfe.ErrInvalidAgentPoolID},
	}

	for _, tt := range tests {
		t.Run(tt.kind.Name+"/"+tt.value, func(t *testing.T) {
			t.Parallel()

			err := tfe.ValidateIdentifier(tt.value, tt.kind)
			if tt.err == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tt.err)
			require.ErrorIs(t, err, tfe.ErrInvalidResourceID)
			require.ErrorIs(t, err, tfe.ErrValidation)

			var validationErr *tfe.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.kind.Name, validationErr.Resource)
		})
	}
}

func TestValidName(t *testing.T) {
	t.Parallel()

	assert.True(t, tfe.ValidName("abc"))
	assert.True(t, tfe.ValidName("A_b-9"))
	assert.False(t, tfe.ValidName("ab"))
	assert.False(t, tfe.ValidName("_abc"))
	assert.False(t, tfe.ValidName("a.bc"))
}

func TestValidateIncludes(t *testing.T) {
	t.Parallel()

	require.NoError(t, tfe.ValidateIncludes("workspace", nil, tfe.WorkspaceIncludes...))
	require.NoError(t, tfe.ValidateIncludes("workspace", tfe.WorkspaceIncludes, tfe.WorkspaceIncludes...))

	err := tfe.ValidateIncludes("workspace", []string{"organization", "bogus"}, tfe.WorkspaceIncludes...)
	require.ErrorIs(t, err, tfe.ErrInvalidInclude)
	assert.Contains(t, err.Error(), `"bogus"`)

	err = tfe.ValidateIncludes("agent pool", []string{"workspaces"}, tfe.AgentPoolIncludes...)
	require.NoError(t, err)
}

func TestListOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts *tfe.ListOptions
		err  error
	}{
		{"nil", nil, nil},
		{"empty", tfe.NewListOptions(), nil},
		{"bounds", tfe.NewListOptions().WithPageSize(tfe.MaxPageSize).WithPageNumber(3), nil},
		{"min page size", tfe.NewListOptions().WithPageSize(tfe.MinPageSize), nil},
		{"page size too large", tfe.NewListOptions().WithPageSize(tfe.MaxPageSize + 1), tfe.ErrInvalidPageSize},
		{"negative page size", tfe.NewListOptions().WithPageSize(-1), tfe.ErrInvalidPageSize},
		{"negative page number", tfe.NewListOptions().WithPageNumber(-1), tfe.ErrInvalidPageNumber},
		{"blank filter key", tfe.NewListOptions().WithFilter(" ", "x"), tfe.ErrInvalidFilter},
		{"blank search key", tfe.NewListOptions().WithSearch("", "x"), tfe.ErrInvalidFilter},
		{"blank include", tfe.NewListOptions().WithInclude(""), tfe.ErrInvalidInclude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.opts.Validate()
			if tt.err == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tt.err)
			require.ErrorIs(t, err, tfe.ErrValidation)
		})
	}
}

func TestListOptions_ToValues(t *testing.T) {
	t.Parallel()

	opts := tfe.NewListOptions().
		WithPageNumber(2).
		WithPageSize(50).
		WithFilter("status", "applied").
		WithSearch("name", "prod").
		WithInclude("organization", "current_run")

	values := opts.ToValues()
	assert.Equal(t, "2", values.Get("page[number]"))
	assert.Equal(t, "50", values.Get("page[size]"))
	assert.Equal(t, "applied", values.Get("filter[status]"))
	assert.Equal(t, "prod", values.Get("search[name]"))
	assert.Equal(t, "organization,current_run", values.Get("include"))

	assert.Empty(t, tfe.NewListOptions().ToValues())

	var nilOpts *tfe.ListOptions
	assert.Empty(t, nilOpts.ToValues())
}

func TestListOptions_Clone(t *testing.T) {
	t.Parallel()

	opts := tfe.NewListOptions().WithFilter("a", "1").WithSearch("name", "x").WithInclude("organization")
	cloned := opts.Clone()

	cloned.Filters["a"] = "2"
	cloned.Search["name"] = "y"
	cloned.Include[0] = "project"

	assert.Equal(t, "1", opts.Filters["a"])
	assert.Equal(t, "x", opts.Search["name"])
	assert.Equal(t, []string{"organization"}, opts.Include)

	var nilOpts *tfe.ListOptions
	assert.NotNil(t, nilOpts.Clone())
}
