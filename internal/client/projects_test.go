package client

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

func TestProjectsClient_Create(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.respond(http.MethodPost, "/organizations/acme/projects", http.StatusCreated,
		`{"data":{"id":"prj-1","type":"projects","attributes":{"name":"platform","default-execution-mode":"remote"},
		"relationships":{"organization":{"data":{"id":"acme","type":"organizations"}}}}}`)

	project, err := api.client().Projects().Create(context.Background(), "acme", &tfe.ProjectCreateOptions{
		Name: "platform",
	})
	require.NoError(t, err)
	assert.Equal(t, "prj-1", project.ID)
	assert.Equal(t, tfe.ExecutionModeRemote, *project.DefaultExecutionMode)
	assert.Equal(t, "acme", project.Organization.ID)

	doc := api.lastDocument()
	assert.Equal(t, tfe.TypeProjects, doc.Type)
	assert.Empty(t, doc.ID)
	assert.JSONEq(t, `{"name":"platform"}`, mustJSON(t, doc.Attributes))
}

func TestProjectsClient_ReadUpdateDelete(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.respond(http.MethodGet, "/projects/prj-1", http.StatusOK, resourceDoc("projects", "prj-1", `{"name":"platform","workspace-count":4}`))
	api.respond(http.MethodPatch, "/projects/prj-1", http.StatusOK, resourceDoc("projects", "prj-1", `{"name":"platform","description":null}`))
	api.respond(http.MethodDelete, "/projects/prj-1", http.StatusNoContent, "")

	c := api.client()

	project, err := c.Projects().Read(context.Background(), "prj-1")
	require.NoError(t, err)
	assert.Equal(t, 4, *project.WorkspaceCount)

	project, err = c.Projects().Update(context.Background(), "prj-1", &tfe.ProjectUpdateOptions{
		Description:                 tfe.Null[string](),
		AutoDestroyActivityDuration: tfe.NullableOf("14d"),
	})
	require.NoError(t, err)
	assert.Nil(t, project.Description)
	assert.JSONEq(t, `{"description":null,"auto-destroy-activity-duration":"14d"}`, mustJSON(t, api.lastDocument().Attributes))

	require.NoError(t, c.Projects().Delete(context.Background(), "prj-1"))
}

func TestProjectsClient_List(t *testing.T) {
	t.Parallel()

	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/organizations/acme/projects", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page[number]") {
		case "1":
			writeJSONAPI(w, http.StatusOK, listDoc(1, 2, 3,
				resourceObj("projects", "prj-1", `{"name":"one"}`),
				resourceObj("projects", "prj-2", `{"name":"two"}`)))
		default:
			writeJSONAPI(w, http.StatusOK, listDoc(2, 0, 3, resourceObj("projects", "prj-3", `{"name":"three"}`)))
		}
	})

	it, err := api.client().Projects().List(context.Background(), "acme", &tfe.ListOptions{PageSize: 2})
	require.NoError(t, err)

	projects, err := it.All()
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, "prj-3", projects[2].ID)
	assert.Equal(t, 2, it.PagesFetched())
	assert.Equal(t, 3, it.Pagination().TotalCount)
}

func TestProjectsClient_Validation(t *testing.T) {
	t.Parallel()

	RunValidationTests(t, []validationCase{
		{
			Name: "read with workspace ID",
			Call: func(ctx context.Context, c *Client) error {
				_, err := c.Projects().Read(ctx, "ws-1")
				return err
			},
			WantErr: tfe.ErrInvalidProjectID,
		},
		{
			Name: "create with short name",
			Call: func(ctx context.Context, c *Client) error {
				_, err := c.Projects().Create(ctx, "acme", &tfe.ProjectCreateOptions{Name: "ab"})
				return err
			},
			WantErr: tfe.ErrInvalidName,
		},
		{
			Name: "create with long name",
			Call: func(ctx context.Context, c *Client) error {
				_, err := c.Projects().Create(ctx, "acme", &tfe.ProjectCreateOptions{Name: strings.Repeat("p", tfe.MaxProjectNameLength+1)})
				return err
			},
			WantErr: tfe.ErrInvalidName,
		},
		{
			Name: "create with blank name",
			Call: func(ctx context.Context, c *Client) error {
				_, err := c.Projects().Create(ctx, "acme", &tfe.ProjectCreateOptions{Name: "  "})
				return err
			},
			WantErr: tfe.ErrRequiredName,
		},
		{
			Name: "update without options",
			Call: func(ctx context.Context, c *Client) error {
				_, err := c.Projects().Update(ctx, "prj-1", nil)
				return err
			},
			WantErr: tfe.ErrMissingOptions,
		},
		{
			Name: "list with oversized page",
			Call: func(ctx context.Context, c *Client) error {
				_, err := c.Projects().List(ctx, "acme", &tfe.ListOptions{PageSize: tfe.MaxPageSize + 1})
				return err
			},
			WantErr: tfe.ErrInvalidPageSize,
		},
	})
}

func TestProjectsClient_ErrorTypes(t *testing.T) {
	t.Parallel()

	RunErrorTypeTests(t, http.MethodGet, "/projects/prj-1", func(ctx context.Context, c *Client) error {
		_, err := c.Projects().Read(ctx, "prj-1")
		return err
	})
}
