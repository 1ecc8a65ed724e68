package tfe

import (
	"context"
	"errors"
	"iter"
)

// ErrNoMoreItems is returned by Next once the iterator is exhausted.
var ErrNoMoreItems = errors.New("no more items")

// DefaultMaxPages is the page loop guard applied to every list call.
const DefaultMaxPages = 1000

// PageFetcher fetches the page named by opts.PageNumber.
type PageFetcher[T any] func(ctx context.Context, opts *ListOptions) (*Page[T], error)

// PaginationOptions tune how an iterator walks pages.
type PaginationOptions struct {
	// MaxPages caps the number of pages fetched. Zero means DefaultMaxPages,
	// a negative value disables the guard.
	MaxPages int
	// DefaultPageSize is sent when the caller did not set a page size.
	DefaultPageSize int
}

// DefaultPaginationOptions returns the options used when none are given.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		MaxPages:        DefaultMaxPages,
		DefaultPageSize: DefaultPageSize,
	}
}

// Iterator lazily walks a paginated collection. Pages are fetched one at a
// time, in increasing order, and only when the caller asks for an item past
// the end of the current page. An Iterator is single-pass and not safe for
// concurrent use.
type Iterator[T any] struct {
	ctx      context.Context
	path     string
	fetch    PageFetcher[T]
	opts     *ListOptions
	maxPages int

	items     []*T
	index     int
	nextPage  int
	lastPage  int
	pages     int
	last      *Pagination
	done      bool
	err       error
	errserved bool
}

// NewIterator returns an iterator over the collection at path. No request is
// made until HasNext or Next is called.
func NewIterator[T any](ctx context.Context, path string, fetch PageFetcher[T], opts *ListOptions, pagination *PaginationOptions) *Iterator[T] {
	if pagination == nil {
		pagination = DefaultPaginationOptions()
	}

	cloned := opts.Clone()
	if cloned.PageSize == 0 {
		cloned.PageSize = pagination.DefaultPageSize
		if cloned.PageSize == 0 {
			cloned.PageSize = DefaultPageSize
		}
	}

	start := cloned.PageNumber
	if start < 1 {
		start = 1
	}

	maxPages := pagination.MaxPages
	if maxPages == 0 {
		maxPages = DefaultMaxPages
	}

	return &Iterator[T]{
		ctx:      ctx,
		path:     path,
		fetch:    fetch,
		opts:     cloned,
		maxPages: maxPages,
		nextPage: start,
	}
}

// HasNext reports whether Next will return an item or a pending error. It
// fetches the next page when the current one is used up.
func (it *Iterator[T]) HasNext() bool {
	if it.index < len(it.items) {
		return true
	}

	if it.err != nil {
		return !it.errserved
	}

	if it.done {
		return false
	}

	it.fetchNext()

	return it.index < len(it.items) || it.err != nil
}

// Next returns the next item.
func (it *Iterator[T]) Next() (*T, error) {
	if !it.HasNext() {
		return nil, ErrNoMoreItems
	}

	if it.index >= len(it.items) {
		it.errserved = true

		return nil, it.err
	}

	item := it.items[it.index]
	it.items[it.index] = nil
	it.index++

	return item, nil
}

// Err returns the error that stopped the iteration, if any.
func (it *Iterator[T]) Err() error {
	return it.err
}

// Pagination returns the metadata of the last page fetched.
func (it *Iterator[T]) Pagination() *Pagination {
	return it.last
}

// PagesFetched returns the number of page requests made so far.
func (it *Iterator[T]) PagesFetched() int {
	return it.pages
}

// All drains the iterator. Items yielded before an error are returned with it.
func (it *Iterator[T]) All() ([]*T, error) {
	var all []*T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return all, err
		}

		all = append(all, item)
	}

	return all, nil
}

// ForEach calls fn for every item, stopping at the first error.
func (it *Iterator[T]) ForEach(fn func(*T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		if err := fn(item); err != nil {
			return err
		}
	}

	return nil
}

// Seq adapts the iterator for range loops. Breaking out of the loop stops
// further requests.
func (it *Iterator[T]) Seq() iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		for it.HasNext() {
			item, err := it.Next()
			if !yield(item, err) || err != nil {
				return
			}
		}
	}
}

func (it *Iterator[T]) fetchNext() {
	if it.lastPage > 0 && it.nextPage <= it.lastPage {
		it.err = &PaginationError{Path: it.path, Page: it.lastPage, NextPage: it.nextPage}

		return
	}

	if it.maxPages > 0 && it.pages >= it.maxPages {
		it.err = &PaginationError{Path: it.path, Page: it.lastPage, MaxPages: it.maxPages}

		return
	}

	opts := it.opts.Clone()
	opts.PageNumber = it.nextPage

	it.pages++

	page, err := it.fetch(it.ctx, opts)
	if err != nil {
		it.err = err

		return
	}

	it.items = page.Items
	it.index = 0
	it.last = page.Pagination
	it.lastPage = opts.PageNumber

	switch {
	case len(page.Items) == 0:
		it.done = true
	case page.Pagination == nil:
		if len(page.Items) < opts.PageSize {
			it.done = true
		} else {
			it.nextPage = opts.PageNumber + 1
		}
	case page.Pagination.NextPage == nil:
		it.done = true
	default:
		it.nextPage = *page.Pagination.NextPage
	}
}

// CollectAll drains it into a slice.
func CollectAll[T any](it *Iterator[T]) ([]*T, error) {
	return it.All()
}
