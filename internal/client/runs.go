package client

import (
	"context"
	"fmt"
	"net/http"

	internalhttp "github.com/fivetwenty-io/tfe-client/internal/http"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

// RunsClient implements tfe.RunsClient.
type RunsClient struct {
	base resourceBase[tfe.Run]
}

// NewRunsClient creates a new runs client.
func NewRunsClient(httpClient *internalhttp.Client, pagination *tfe.PaginationOptions) *RunsClient {
	return &RunsClient{
		base: newResourceBase(httpClient, tfe.RunMapping, "run", pagination),
	}
}

// List implements tfe.RunsClient.List.
func (c *RunsClient) List(ctx context.Context, workspaceID string, opts *tfe.ListOptions) (*tfe.Iterator[tfe.Run], error) {
	err := tfe.ValidateIdentifier(workspaceID, tfe.KindWorkspace)
	if err != nil {
		return nil, err
	}

	err = validateList("run", opts, tfe.RunIncludes)
	if err != nil {
		return nil, err
	}

	return c.base.list(ctx, resourcePath("workspaces", workspaceID, "runs"), opts), nil
}

// Read implements tfe.RunsClient.Read.
func (c *RunsClient) Read(ctx context.Context, runID string) (*tfe.Run, error) {
	err := tfe.ValidateIdentifier(runID, tfe.KindRun)
	if err != nil {
		return nil, err
	}

	return c.base.read(ctx, resourcePath("runs", runID), nil)
}

// Create implements tfe.RunsClient.Create.
func (c *RunsClient) Create(ctx context.Context, opts *tfe.RunCreateOptions) (*tfe.Run, error) {
	err := opts.Validate()
	if err != nil {
		return nil, err
	}

	doc, err := opts.Document()
	if err != nil {
		return nil, err
	}

	return c.base.create(ctx, "runs", doc)
}

// Apply implements tfe.RunsClient.Apply.
func (c *RunsClient) Apply(ctx context.Context, runID string, opts *tfe.RunActionOptions) error {
	return c.action(ctx, runID, "apply", opts)
}

// Cancel implements tfe.RunsClient.Cancel.
func (c *RunsClient) Cancel(ctx context.Context, runID string, opts *tfe.RunActionOptions) error {
	return c.action(ctx, runID, "cancel", opts)
}

// Discard implements tfe.RunsClient.Discard.
func (c *RunsClient) Discard(ctx context.Context, runID string, opts *tfe.RunActionOptions) error {
	return c.action(ctx, runID, "discard", opts)
}

// action queues a run action. The server answers 202 with no body.
func (c *RunsClient) action(ctx context.Context, runID, action string, opts *tfe.RunActionOptions) error {
	err := tfe.ValidateIdentifier(runID, tfe.KindRun)
	if err != nil {
		return err
	}

	if opts == nil {
		opts = &tfe.RunActionOptions{}
	}

	_, err = c.base.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   resourcePath("runs", runID, "actions", action),
		Body:   opts,
	})
	if err != nil {
		return fmt.Errorf("%s run: %w", action, err)
	}

	return nil
}
