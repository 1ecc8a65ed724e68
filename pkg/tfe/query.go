package tfe

import (
	"maps"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// Page size bounds accepted by the API.
const (
	MinPageSize     = 1
	MaxPageSize     = 100
	DefaultPageSize = 20
)

// ListOptions are the common options of every list operation.
type ListOptions struct {
	// PageNumber is the first page to fetch. Zero means page 1.
	PageNumber int
	// PageSize is the number of items per page. Zero lists with the iterator's
	// default page size, DefaultPageSize unless PaginationOptions says otherwise.
	PageSize int
	// Filters are sent as filter[key]=value.
	Filters map[string]string
	// Search terms are sent as search[key]=value.
	Search map[string]string
	// Include names related resources to side-load.
	Include []string
}

// NewListOptions returns empty list options.
func NewListOptions() *ListOptions {
	return &ListOptions{}
}

// WithPageSize sets the page size.
func (o *ListOptions) WithPageSize(size int) *ListOptions {
	o.PageSize = size

	return o
}

// WithPageNumber sets the first page to fetch.
func (o *ListOptions) WithPageNumber(number int) *ListOptions {
	o.PageNumber = number

	return o
}

// WithFilter adds a filter[key]=value parameter.
func (o *ListOptions) WithFilter(key, value string) *ListOptions {
	if o.Filters == nil {
		o.Filters = make(map[string]string)
	}

	o.Filters[key] = value

	return o
}

// WithSearch adds a search[key]=value parameter.
func (o *ListOptions) WithSearch(key, value string) *ListOptions {
	if o.Search == nil {
		o.Search = make(map[string]string)
	}

	o.Search[key] = value

	return o
}

// WithInclude adds related resources to side-load.
func (o *ListOptions) WithInclude(include ...string) *ListOptions {
	o.Include = append(o.Include, include...)

	return o
}

// Clone returns a deep copy. Lists work on a clone so later changes by the
// caller have no effect on a running iteration.
func (o *ListOptions) Clone() *ListOptions {
	if o == nil {
		return &ListOptions{}
	}

	return &ListOptions{
		PageNumber: o.PageNumber,
		PageSize:   o.PageSize,
		Filters:    maps.Clone(o.Filters),
		Search:     maps.Clone(o.Search),
		Include:    slices.Clone(o.Include),
	}
}

// ToValues renders the options as query parameters. Page parameters are
// added by the paginator.
func (o *ListOptions) ToValues() url.Values {
	values := url.Values{}
	if o == nil {
		return values
	}

	if o.PageNumber > 0 {
		values.Set("page[number]", strconv.Itoa(o.PageNumber))
	}

	if o.PageSize > 0 {
		values.Set("page[size]", strconv.Itoa(o.PageSize))
	}

	for key, value := range o.Filters {
		values.Set("filter["+key+"]", value)
	}

	for key, value := range o.Search {
		values.Set("search["+key+"]", value)
	}

	if len(o.Include) > 0 {
		values.Set("include", strings.Join(o.Include, ","))
	}

	return values
}

// Validate checks the options without side effects.
func (o *ListOptions) Validate() error {
	if o == nil {
		return nil
	}

	if o.PageNumber < 0 {
		return newValidationError("list", "page_number", strconv.Itoa(o.PageNumber), ErrInvalidPageNumber)
	}

	if o.PageSize != 0 && (o.PageSize < MinPageSize || o.PageSize > MaxPageSize) {
		return newValidationError("list", "page_size", strconv.Itoa(o.PageSize), ErrInvalidPageSize)
	}

	for key := range o.Filters {
		if strings.TrimSpace(key) == "" {
			return newValidationError("list", "filters", key, ErrInvalidFilter)
		}
	}

	for key := range o.Search {
		if strings.TrimSpace(key) == "" {
			return newValidationError("list", "search", key, ErrInvalidFilter)
		}
	}

	for _, name := range o.Include {
		if strings.TrimSpace(name) == "" {
			return newValidationError("list", "include", name, ErrInvalidInclude)
		}
	}

	return nil
}
