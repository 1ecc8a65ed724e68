package tfe

import (
	"time"
	"unicode/utf8"
)

// TypeProjects is the JSON:API type of projects.
const TypeProjects = "projects"

// Project name length limits.
const (
	MinProjectNameLength = 3
	MaxProjectNameLength = 40
)

// Project groups workspaces within an organization.
type Project struct {
	ID                          string         `json:"id"                                       yaml:"id"`
	Name                        *string        `json:"name,omitempty"                           yaml:"name,omitempty"`
	Description                 *string        `json:"description,omitempty"                    yaml:"description,omitempty"`
	DefaultExecutionMode        *ExecutionMode `json:"default_execution_mode,omitempty"         yaml:"default_execution_mode,omitempty"`
	AutoDestroyActivityDuration *string        `json:"auto_destroy_activity_duration,omitempty" yaml:"auto_destroy_activity_duration,omitempty"`
	WorkspaceCount              *int           `json:"workspace_count,omitempty"                yaml:"workspace_count,omitempty"`
	CreatedAt                   *time.Time     `json:"created_at,omitempty"                     yaml:"created_at,omitempty"`
	UpdatedAt                   *time.Time     `json:"updated_at,omitempty"                     yaml:"updated_at,omitempty"`
	Organization                *ResourceRef   `json:"organization,omitempty"                   yaml:"organization,omitempty"`
}

// ProjectMapping decodes project resource objects.
var ProjectMapping = NewMapping(TypeProjects,
	func(p *Project) *string { return &p.ID },
	Attr("name", "name", func(p *Project) **string { return &p.Name }),
	Attr("description", "description", func(p *Project) **string { return &p.Description }),
	Attr("default_execution_mode", "default-execution-mode", func(p *Project) **ExecutionMode { return &p.DefaultExecutionMode }),
	Attr("auto_destroy_activity_duration", "auto-destroy-activity-duration", func(p *Project) **string { return &p.AutoDestroyActivityDuration }),
	Attr("workspace_count", "workspace-count", func(p *Project) **int { return &p.WorkspaceCount }),
	Attr("created_at", "created-at", func(p *Project) **time.Time { return &p.CreatedAt }),
	Attr("updated_at", "updated-at", func(p *Project) **time.Time { return &p.UpdatedAt }),
	ToOneRel("organization", "organization", func(p *Project) **ResourceRef { return &p.Organization }),
)

// ProjectCreateOptions are the options for creating a project.
type ProjectCreateOptions struct {
	Name                        string
	Description                 *string
	AutoDestroyActivityDuration *string
}

// Validate checks the options.
func (o *ProjectCreateOptions) Validate() error {
	if o == nil {
		return newValidationError("project", "", "", ErrMissingOptions)
	}

	if err := requireString("project", "name", &o.Name, ErrRequiredName); err != nil {
		return err
	}

	return validateProjectName(o.Name)
}

var projectCreateEncoder = NewEncoder(TypeProjects,
	Always("name", func(o *ProjectCreateOptions) string { return o.Name }),
	Opt("description", func(o *ProjectCreateOptions) *string { return o.Description }),
	Opt("auto-destroy-activity-duration", func(o *ProjectCreateOptions) *string { return o.AutoDestroyActivityDuration }),
)

// Document encodes the options as a request document.
func (o *ProjectCreateOptions) Document() (*Document, error) {
	return projectCreateEncoder.Encode("", o)
}

// ProjectUpdateOptions are the options for updating a project. A Null
// description clears it.
type ProjectUpdateOptions struct {
	Name                        *string
	Description                 *Nullable[string]
	AutoDestroyActivityDuration *Nullable[string]
}

// Validate checks the options.
func (o *ProjectUpdateOptions) Validate() error {
	if o == nil {
		return newValidationError("project", "", "", ErrMissingOptions)
	}

	if o.Name != nil {
		return validateProjectName(*o.Name)
	}

	return nil
}

var projectUpdateEncoder = NewEncoder(TypeProjects,
	Opt("name", func(o *ProjectUpdateOptions) *string { return o.Name }),
	Opt("description", func(o *ProjectUpdateOptions) *Nullable[string] { return o.Description }),
	Opt("auto-destroy-activity-duration", func(o *ProjectUpdateOptions) *Nullable[string] { return o.AutoDestroyActivityDuration }),
)

// Document encodes the options as a request document.
func (o *ProjectUpdateOptions) Document(id string) (*Document, error) {
	return projectUpdateEncoder.Encode(id, o)
}

func validateProjectName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < MinProjectNameLength || n > MaxProjectNameLength {
		return newValidationError("project", "name", name, ErrInvalidName)
	}

	return nil
}
