package commands_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/tfe-client/cmd/tfe/commands"
	"github.com/fivetwenty-io/tfe-client/internal/constants"
	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

// These tests share viper's global state and the process environment, so
// none of them run in parallel.

type request struct {
	Method string
	Path   string
	Query  url.Values
	Auth   string
	Body   string
}

type cli struct {
	t          *testing.T
	configPath string
	server     *httptest.Server

	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	requests []request
}

func newCLI(t *testing.T) *cli {
	t.Helper()

	for _, name := range []string{
		"TFE_ADDRESS", "TFE_HOST", "TFE_TOKEN", "TFE_BASE_PATH",
		"TFE_ORGANIZATION", "TFE_OUTPUT", "TFE_CONFIG", "TFE_VERBOSE",
	} {
		t.Setenv(name, "")
	}

	c := &cli{
		t:          t,
		configPath: filepath.Join(t.TempDir(), "config.yml"),
		routes:     make(map[string]http.HandlerFunc),
	}
	c.server = httptest.NewServer(http.HandlerFunc(c.serve))
	t.Cleanup(c.server.Close)

	return c
}

func (c *cli) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	c.mu.Lock()
	c.requests = append(c.requests, request{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Auth:   r.Header.Get("Authorization"),
		Body:   string(body),
	})
	handler, ok := c.routes[r.Method+" "+r.URL.Path]
	c.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"errors":[{"status":"404","title":"not found"}]}`)

		return
	}

	handler(w, r)
}

func (c *cli) respond(method, path string, status int, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.routes[method+" /api/v2"+path] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", tfe.MediaType)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func (c *cli) recorded() []request {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]request(nil), c.requests...)
}

// run executes the CLI against the fake server with stdin as input.
func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()

	viper.Reset()

	root := commands.NewRootCommand("1.2.3", "abc123", "2026-01-01")

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", c.configPath}, args...))

	err := root.Execute()

	return out.String(), err
}

// api runs a command authenticated against the fake server.
func (c *cli) api(args ...string) (string, error) {
	c.t.Helper()

	return c.run("", append([]string{"--address", c.server.URL, "--token", "test-token"}, args...)...)
}

func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, sub := range cmd.Commands() {
		if sub.Name() == name {
			return sub
		}
	}

	return nil
}

func TestNewRootCommand(t *testing.T) {
	viper.Reset()

	root := commands.NewRootCommand("dev", "none", "unknown")
	assert.Equal(t, "tfe", root.Use)

	for _, flag := range []string{"config", "address", "token", "organization", "output", "verbose"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}

	groups := map[string][]string{
		"config":            {"show", "set", "unset", "set-token"},
		"orgs":              {"list", "get"},
		"projects":          {"list", "get"},
		"workspaces":        {"list", "get", "lock", "unlock", "delete"},
		"variables":         {"list", "create", "delete"},
		"runs":              {"list", "get", "create", "apply", "cancel", "discard"},
		"policies":          {"list", "get", "create", "upload", "download", "delete"},
		"reserved-tag-keys": {"list", "create", "delete"},
		"agent-pools":       {"list", "get"},
		"version":           nil,
		"info":              nil,
	}

	for group, subs := range groups {
		cmd := findSubcommand(root, group)
		require.NotNil(t, cmd, group)

		for _, sub := range subs {
			assert.NotNil(t, findSubcommand(cmd, sub), group+" "+sub)
		}
	}

	ws := findSubcommand(root, "workspaces")
	assert.Contains(t, ws.Aliases, "ws")
}

func TestVersionCommand(t *testing.T) {
	c := newCLI(t)

	out, err := c.run("", "version", "--output", "json")
	require.NoError(t, err)

	var info commands.VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, commands.VersionInfo{Version: "1.2.3", Commit: "abc123", Built: "2026-01-01"}, info)

	out, err = c.run("", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")

	_, err = c.run("", "version", "--output", "xml")
	require.ErrorIs(t, err, constants.ErrUnsupportedFormat)
}

func TestConfigCommands(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("", "config", "set", "organization", "acme")
	require.NoError(t, err)

	_, err = c.run("", "config", "set", "address", "https://tfe.example.com/")
	require.NoError(t, err)

	_, err = c.run("", "config", "set", "output", "yaml")
	require.NoError(t, err)

	data, err := os.ReadFile(c.configPath)
	require.NoError(t, err)

	var config commands.Config
	require.NoError(t, yaml.Unmarshal(data, &config))
	assert.Equal(t, "acme", config.Organization)
	assert.Equal(t, "https://tfe.example.com", config.Address)
	assert.Equal(t, "yaml", config.Output)

	info, err := os.Stat(c.configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())

	_, err = c.run("", "config", "unset", "output")
	require.NoError(t, err)

	out, err := c.run("", "config", "show", "--output", "json")
	require.NoError(t, err)

	var shown commands.Config
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "acme", shown.Organization)
	assert.Empty(t, shown.Output)
}

func TestConfigCommands_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		err  error
	}{
		{"unknown set key", []string{"config", "set", "colour", "blue"}, constants.ErrUnknownConfigKey},
		{"unknown unset key", []string{"config", "unset", "colour"}, constants.ErrUnknownConfigKey},
		{"bad output", []string{"config", "set", "output", "xml"}, constants.ErrUnsupportedFormat},
		{"bad organization", []string{"config", "set", "organization", "a b"}, tfe.ErrInvalidOrganization},
		{"bad address", []string{"config", "set", "address", "tfe.example.com"}, tfe.ErrInvalidAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCLI(t)

			_, err := c.run("", tt.args...)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestSetToken(t *testing.T) {
	c := newCLI(t)
	c.respond(http.MethodGet, "/organizations/acme", http.StatusOK,
		`{"data":{"id":"acme","type":"organizations","attributes":{"name":"acme","email":"ops@acme.test"}}}`)

	out, err := c.run("stored-token\n", "--address", c.server.URL, "config", "set-token")
	require.NoError(t, err)

	host := strings.TrimPrefix(c.server.URL, "http://")
	assert.Contains(t, out, host)

	data, err := os.ReadFile(c.configPath)
	require.NoError(t, err)

	var config commands.Config
	require.NoError(t, yaml.Unmarshal(data, &config))
	require.Contains(t, config.Credentials, host)
	assert.Equal(t, "stored-token", config.Credentials[host].Token)

	out, err = c.run("", "--address", c.server.URL, "--output", "json", "orgs", "get", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, "ops@acme.test")

	requests := c.recorded()
	require.Len(t, requests, 1)
	assert.Equal(t, "Bearer stored-token", requests[0].Auth)

	out, err = c.run("", "config", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "stored-token")
	assert.Contains(t, out, constants.MaskedSecret)
}

func TestSetToken_Errors(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("\n", "--address", c.server.URL, "config", "set-token")
	require.ErrorIs(t, err, constants.ErrEmptyToken)

	_, err = c.run("token\n", "--address", c.server.URL, "config", "set-token", "--expires-at", "tomorrow")
	require.Error(t, err)

	_, err = c.run("token\n", "--address", c.server.URL, "config", "set-token", "--expires-at", "2000-01-01T00:00:00Z")
	require.NoError(t, err)

	_, err = c.run("", "--address", c.server.URL, "orgs", "get", "acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
	assert.Empty(t, c.recorded())
}

func TestCommands_NoToken(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("", "--address", c.server.URL, "orgs", "list")
	require.ErrorIs(t, err, constants.ErrNoTokenConfigured)
}

func TestCommands_OrganizationRequired(t *testing.T) {
	for _, args := range [][]string{
		{"workspaces", "list"},
		{"projects", "list"},
		{"policies", "list"},
		{"reserved-tag-keys", "list"},
		{"agent-pools", "list"},
		{"orgs", "get"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			c := newCLI(t)

			_, err := c.api(args...)
			require.ErrorIs(t, err, constants.ErrOrganizationRequired)
			assert.Empty(t, c.recorded())
		})
	}
}

func TestInfoCommand(t *testing.T) {
	c := newCLI(t)
	c.mu.Lock()
	c.routes["GET /api/v2/ping"] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(constants.HeaderAppName, tfe.CloudAppName)
		w.Header().Set(constants.HeaderAPIVersion, "2.6")
		w.WriteHeader(http.StatusNoContent)
	}
	c.mu.Unlock()

	out, err := c.api("info", "--output", "json")
	require.NoError(t, err)

	var info commands.ServerInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.True(t, info.Cloud)
	assert.Equal(t, "2.6", info.APIVersion)
	assert.Equal(t, c.server.URL, info.Address)
}

const workspaceList = `{
	"data": [
		{"id":"ws-1","type":"workspaces","attributes":{"name":"prod","execution-mode":"remote","locked":true}},
		{"id":"ws-2","type":"workspaces","attributes":{"name":"staging","execution-mode":"agent"}}
	],
	"meta": {"pagination": {"current-page":1,"next-page":null,"total-pages":1,"total-count":2}}
}`

func TestWorkspacesList(t *testing.T) {
	c := newCLI(t)
	c.respond(http.MethodGet, "/organizations/acme/workspaces", http.StatusOK, workspaceList)

	out, err := c.api("-o", "acme", "--output", "json", "workspaces", "list", "--search", "pro", "--page-size", "50")
	require.NoError(t, err)

	var workspaces []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &workspaces))
	require.Len(t, workspaces, 2)
	assert.Equal(t, "prod", workspaces[0]["name"])
	assert.Equal(t, "agent", workspaces[1]["execution_mode"])

	requests := c.recorded()
	require.Len(t, requests, 1)
	assert.Equal(t, "pro", requests[0].Query.Get("search[name]"))
	assert.Equal(t, "50", requests[0].Query.Get("page[size]"))
	assert.Equal(t, "Bearer test-token", requests[0].Auth)

	out, err = c.api("-o", "acme", "workspaces", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "staging")
	assert.Contains(t, out, "ws-2")
}

func TestVerboseLogger_SyncedAfterRun(t *testing.T) {
	c := newCLI(t)
	c.respond(http.MethodGet, "/organizations/acme/workspaces", http.StatusOK, workspaceList)

	out, err := c.api("--verbose", "-o", "acme", "--output", "json", "workspaces", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "staging")
	assert.Zero(t, commands.PendingLoggers())

	_, err = c.api("--verbose", "workspaces", "get", "ws-missing")
	require.ErrorIs(t, err, tfe.ErrNotFound)
	assert.Zero(t, commands.PendingLoggers())
}

func TestWorkspacesList_InvalidInclude(t *testing.T) {
	c := newCLI(t)

	_, err := c.api("-o", "acme", "workspaces", "list", "--include", "bogus")
	require.ErrorIs(t, err, tfe.ErrInvalidInclude)
	assert.Empty(t, c.recorded())
}

func TestWorkspacesGet(t *testing.T) {
	body := `{"data":{"id":"ws-abc","type":"workspaces","attributes":{"name":"prod"}}}`

	tests := []struct {
		name string
		args []string
		path string
	}{
		{"by name", []string{"-o", "acme", "workspaces", "get", "prod"}, "/api/v2/organizations/acme/workspaces/prod"},
		{"by ID", []string{"workspaces", "get", "ws-abc"}, "/api/v2/workspaces/ws-abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCLI(t)
			c.respond(http.MethodGet, strings.TrimPrefix(tt.path, "/api/v2"), http.StatusOK, body)

			out, err := c.api(tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, "ws-abc")

			requests := c.recorded()
			require.Len(t, requests, 1)
			assert.Equal(t, tt.path, requests[0].Path)
		})
	}
}

func TestWorkspacesLock(t *testing.T) {
	c := newCLI(t)
	c.respond(http.MethodGet, "/organizations/acme/workspaces/prod", http.StatusOK,
		`{"data":{"id":"ws-abc","type":"workspaces","attributes":{"name":"prod"}}}`)
	c.respond(http.MethodPost, "/workspaces/ws-abc/actions/lock", http.StatusOK,
		`{"data":{"id":"ws-abc","type":"workspaces","attributes":{"name":"prod","locked":true}}}`)

	out, err := c.api("-o", "acme", "workspaces", "lock", "prod", "--reason", "maintenance")
	require.NoError(t, err)
	assert.Contains(t, out, "locked")

	requests := c.recorded()
	require.Len(t, requests, 2)
	assert.JSONEq(t, `{"reason":"maintenance"}`, requests[1].Body)
}

func TestWorkspacesDelete(t *testing.T) {
	t.Run("aborted", func(t *testing.T) {
		c := newCLI(t)

		_, err := c.run("n\n", "--address", c.server.URL, "--token", "t", "workspaces", "delete", "ws-abc")
		require.ErrorIs(t, err, constants.ErrConfirmationAborted)
		assert.Empty(t, c.recorded())
	})

	t.Run("confirmed", func(t *testing.T) {
		c := newCLI(t)
		c.respond(http.MethodDelete, "/workspaces/ws-abc", http.StatusNoContent, "")

		_, err := c.run("yes\n", "--address", c.server.URL, "--token", "t", "workspaces", "delete", "ws-abc")
		require.NoError(t, err)
		require.Len(t, c.recorded(), 1)
	})

	t.Run("forced by name", func(t *testing.T) {
		c := newCLI(t)
		c.respond(http.MethodDelete, "/organizations/acme/workspaces/prod", http.StatusNoContent, "")

		_, err := c.api("-o", "acme", "workspaces", "delete", "prod", "--force")
		require.NoError(t, err)
		require.Len(t, c.recorded(), 1)
	})
}

func TestVariablesList(t *testing.T) {
	c := newCLI(t)
	c.respond(http.MethodGet, "/workspaces/ws-abc/vars", http.StatusOK, `{
		"data": [
			{"id":"var-1","type":"vars","attributes":{"key":"region","value":"eu-west-1","category":"terraform","sensitive":false}},
			{"id":"var-2","type":"vars","attributes":{"key":"secret","value":null,"category":"env","sensitive":true}}
		],
		"meta": {"pagination": {"current-page":1,"next-page":null,"total-pages":1,"total-count":2}}
	}`)

	out, err := c.api("variables", "list", "--workspace", "ws-abc")
	require.NoError(t, err)
	assert.Contains(t, out, "eu-west-1")
	assert.Contains(t, out, tfe.RedactedPlaceholder)

	_, err = c.api("variables", "list")
	require.ErrorIs(t, err, constants.ErrWorkspaceRequired)
}

func TestRunActions(t *testing.T) {
	for _, action := range []string{"apply", "cancel", "discard"} {
		t.Run(action, func(t *testing.T) {
			c := newCLI(t)
			c.respond(http.MethodPost, "/runs/run-1/actions/"+action, http.StatusAccepted, "")

			out, err := c.api("runs", action, "run-1", "--comment", "ship it")
			require.NoError(t, err)
			assert.Contains(t, out, "run-1")

			requests := c.recorded()
			require.Len(t, requests, 1)
			assert.JSONEq(t, `{"comment":"ship it"}`, requests[0].Body)
		})
	}

	t.Run("invalid ID", func(t *testing.T) {
		c := newCLI(t)

		_, err := c.api("runs", "apply", "ws-1")
		require.ErrorIs(t, err, tfe.ErrInvalidRunID)
		assert.Empty(t, c.recorded())
	})
}

func TestPoliciesCreate(t *testing.T) {
	t.Run("OPA with upload", func(t *testing.T) {
		c := newCLI(t)
		c.respond(http.MethodPost, "/organizations/acme/policies", http.StatusCreated,
			`{"data":{"id":"pol-1","type":"policies","attributes":{"name":"no-public","kind":"opa"}}}`)
		c.respond(http.MethodPut, "/policies/pol-1/upload", http.StatusOK, "")

		file := filepath.Join(t.TempDir(), "policy.rego")
		require.NoError(t, os.WriteFile(file, []byte("package terraform"), 0o600))

		out, err := c.api("-o", "acme", "policies", "create",
			"--name", "no-public", "--kind", "opa", "--query", "data.terraform.deny",
			"--enforcement-level", "mandatory", "--file", file)
		require.NoError(t, err)
		assert.Contains(t, out, "pol-1")

		requests := c.recorded()
		require.Len(t, requests, 2)

		var doc struct {
			Data struct {
				Attributes map[string]any `json:"attributes"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(requests[0].Body), &doc))
		assert.Equal(t, "opa", doc.Data.Attributes["kind"])
		assert.Equal(t, "data.terraform.deny", doc.Data.Attributes["query"])
		assert.Equal(t, "package terraform", requests[1].Body)
	})

	tests := []struct {
		name string
		args []string
		err  error
	}{
		{"unknown kind", []string{"--name", "p1x", "--kind", "rego"}, constants.ErrInvalidPolicyKind},
		{"sentinel with query", []string{"--name", "p1x", "--kind", "sentinel", "--query", "q"}, tfe.ErrUnsupportedQuery},
		{"opa without query", []string{"--name", "p1x", "--kind", "opa", "--enforcement-level", "advisory"}, tfe.ErrRequiredQuery},
		{"sentinel with opa level", []string{"--name", "p1x", "--enforcement-level", "mandatory"}, tfe.ErrInvalidEnforcementLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCLI(t)

			_, err := c.api(append([]string{"-o", "acme", "policies", "create"}, tt.args...)...)
			require.ErrorIs(t, err, tt.err)
			assert.Empty(t, c.recorded())
		})
	}
}

func TestPoliciesDownload(t *testing.T) {
	c := newCLI(t)
	c.mu.Lock()
	c.routes["GET /api/v2/policies/pol-1/download"] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "main = rule { true }")
	}
	c.mu.Unlock()

	out, err := c.api("policies", "download", "pol-1")
	require.NoError(t, err)
	assert.Equal(t, "main = rule { true }", out)
}

func TestConfigFileOutput(t *testing.T) {
	c := newCLI(t)
	c.respond(http.MethodGet, "/organizations/acme/agent-pools", http.StatusOK, `{
		"data": [{"id":"apool-1","type":"agent-pools","attributes":{"name":"default","agent-count":3}}],
		"meta": {"pagination": {"current-page":1,"next-page":null,"total-pages":1,"total-count":1}}
	}`)

	_, err := c.run("", "config", "set", "output", "yaml")
	require.NoError(t, err)

	_, err = c.run("", "config", "set", "organization", "acme")
	require.NoError(t, err)

	out, err := c.api("agent-pools", "list")
	require.NoError(t, err)

	var pools []map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &pools))
	require.Len(t, pools, 1)
	assert.Equal(t, "apool-1", pools[0]["id"])
	assert.Equal(t, 3, pools[0]["agent_count"])
}
