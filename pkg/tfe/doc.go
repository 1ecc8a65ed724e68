// Package tfe provides types, interfaces, and helpers for working with the
// Terraform Enterprise and HCP Terraform API.
//
// # Overview
//
// The tfe package defines the domain types (Organization, Workspace, Run,
// Variable, Policy and friends), the option structs used to create and update
// them, and the resource client interfaces (WorkspacesClient, RunsClient, ...).
// The concrete implementation lives behind the tfeclient package, which wires
// configuration, transport, authentication and interceptors.
//
//	ctx := context.Background()
//	cli, err := tfeclient.NewWithToken(ctx, "https://app.terraform.io", token)
//	if err != nil { log.Fatal(err) }
//
//	ws, err := cli.Workspaces().Read(ctx, "acme", "prod")
//	if err != nil { log.Fatal(err) }
//	_ = ws
//
// # Lists and pagination
//
// Every List call validates its arguments up front and returns an Iterator.
// Pages are fetched lazily while the iterator is consumed, and the page
// cursor always moves forward:
//
//	opts := tfe.NewListOptions().WithPageSize(50).WithSearch("name", "prod")
//	it, err := cli.Workspaces().List(ctx, "acme", opts)
//	if err != nil { log.Fatal(err) }
//	for ws, err := range it.Seq() {
//	  if err != nil { break }
//	  _ = ws
//	}
//
// # Documents
//
// Resources travel as JSON:API documents. Mapping decodes a resource object
// into a domain struct field by field, and Encoder builds request documents
// from option structs, emitting only the fields that were set. Nullable
// distinguishes an explicit null from an omitted attribute.
//
// # Errors
//
// Failures are classified by sentinel: ErrValidation, ErrAuth, ErrNotFound,
// ErrConflict, ErrRateLimited, ErrServer, ErrUnexpectedStatus, ErrDecode,
// ErrPagination and ErrTransport. Test with errors.Is, or errors.As against
// ValidationError, ResponseError, DecodeError, PaginationError and
// TransportError for the details.
package tfe
