package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	internalhttp "github.com/fivetwenty-io/tfe-client/internal/http"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

// resourceBase holds the request/decode plumbing shared by every resource
// client. T is the domain model a response decodes into.
type resourceBase[T any] struct {
	httpClient *internalhttp.Client
	mapping    *tfe.Mapping[T]
	noun       string
	pagination *tfe.PaginationOptions
}

func newResourceBase[T any](httpClient *internalhttp.Client, mapping *tfe.Mapping[T], noun string, pagination *tfe.PaginationOptions) resourceBase[T] {
	if pagination == nil {
		pagination = tfe.DefaultPaginationOptions()
	}

	return resourceBase[T]{
		httpClient: httpClient,
		mapping:    mapping,
		noun:       noun,
		pagination: pagination,
	}
}

// read fetches and decodes a single resource.
func (b *resourceBase[T]) read(ctx context.Context, path string, query url.Values) (*T, error) {
	resp, err := b.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", b.noun, err)
	}

	return b.decode(resp.Body)
}

// send issues a write with a JSON:API document and decodes the resource in
// the response.
func (b *resourceBase[T]) send(ctx context.Context, method, path string, doc *tfe.Document, action string) (*T, error) {
	resp, err := b.httpClient.Do(ctx, &internalhttp.Request{
		Method: method,
		Path:   path,
		Body:   doc,
	})
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", action, b.noun, err)
	}

	return b.decode(resp.Body)
}

func (b *resourceBase[T]) create(ctx context.Context, path string, doc *tfe.Document) (*T, error) {
	return b.send(ctx, http.MethodPost, path, doc, "creating")
}

func (b *resourceBase[T]) update(ctx context.Context, path string, doc *tfe.Document) (*T, error) {
	return b.send(ctx, http.MethodPatch, path, doc, "updating")
}

func (b *resourceBase[T]) delete(ctx context.Context, path string) error {
	_, err := b.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", b.noun, err)
	}

	return nil
}

// list returns a lazy iterator over the collection at path. Callers validate
// opts first.
func (b *resourceBase[T]) list(ctx context.Context, path string, opts *tfe.ListOptions) *tfe.Iterator[T] {
	fetch := func(ctx context.Context, page *tfe.ListOptions) (*tfe.Page[T], error) {
		resp, err := b.httpClient.Get(ctx, path, page.ToValues())
		if err != nil {
			return nil, fmt.Errorf("listing %ss: %w", b.noun, err)
		}

		items, err := tfe.DecodePage(b.mapping, resp.Body)
		if err != nil {
			return nil, fmt.Errorf("parsing %ss list response: %w", b.noun, err)
		}

		return items, nil
	}

	return tfe.NewIterator(ctx, path, fetch, opts, b.pagination)
}

func (b *resourceBase[T]) decode(body []byte) (*T, error) {
	model, err := b.mapping.DecodeBody(body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", b.noun, err)
	}

	return model, nil
}

// validateList checks list options and, when allowed is non-nil, the
// requested includes.
func validateList(resource string, opts *tfe.ListOptions, allowed []string) error {
	err := opts.Validate()
	if err != nil {
		return err
	}

	if opts != nil && allowed != nil {
		return tfe.ValidateIncludes(resource, opts.Include, allowed...)
	}

	return nil
}

// resourcePath joins escaped path segments.
func resourcePath(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, segment := range segments {
		escaped[i] = url.PathEscape(segment)
	}

	return strings.Join(escaped, "/")
}
