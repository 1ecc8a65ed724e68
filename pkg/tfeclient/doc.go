// Package tfeclient is the entry point for building an HCP Terraform or
// Terraform Enterprise API client that implements the tfe.Client interface.
//
// New resolves the configuration once, builds the transport and returns a
// client whose resource accessors (Organizations(), Workspaces(), Runs(),
// ...) share it.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/tfe-client/pkg/tfe"
//	  "github.com/fivetwenty-io/tfe-client/pkg/tfeclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Address and token from TFE_ADDRESS / TFE_TOKEN, or the defaults.
//	  cli, err := tfeclient.New(ctx, &tfe.Config{})
//	  if err != nil { log.Fatal(err) }
//
//	  it, err := cli.Workspaces().List(ctx, "acme", tfe.NewListOptions().WithPageSize(50))
//	  if err != nil { log.Fatal(err) }
//
//	  for ws, err := range it.Seq() {
//	    if err != nil { log.Fatal(err) }
//	    log.Println(*ws.Name)
//	  }
//	}
//
// Configuration precedence
//
// Each setting is taken from the first source that provides it: the field
// set on tfe.Config, then the environment, then the default.
//
//	Address   TFE_ADDRESS, then TFE_HOST as https://<host>, then https://app.terraform.io
//	Token     TFE_TOKEN
//	BasePath  TFE_BASE_PATH, then /api/v2/
//
// The environment is read only while New runs.
package tfeclient
