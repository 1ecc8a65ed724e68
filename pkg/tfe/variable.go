package tfe

// TypeVars is the JSON:API type of workspace variables.
const TypeVars = "vars"

// Variable is a workspace variable. The value of a sensitive variable is
// always Redacted.
type Variable struct {
	ID          string         `json:"id"                    yaml:"id"`
	Key         *string        `json:"key,omitempty"         yaml:"key,omitempty"`
	Value       SensitiveValue `json:"value"                 yaml:"value"`
	Description *string        `json:"description,omitempty" yaml:"description,omitempty"`
	Category    *CategoryType  `json:"category,omitempty"    yaml:"category,omitempty"`
	HCL         *bool          `json:"hcl,omitempty"         yaml:"hcl,omitempty"`
	Sensitive   *bool          `json:"sensitive,omitempty"   yaml:"sensitive,omitempty"`
	VersionID   *string        `json:"version_id,omitempty"  yaml:"version_id,omitempty"`
	Workspace   *ResourceRef   `json:"workspace,omitempty"   yaml:"workspace,omitempty"`
}

// VariableMapping decodes variable resource objects.
var VariableMapping = NewMapping(TypeVars,
	func(v *Variable) *string { return &v.ID },
	Attr("key", "key", func(v *Variable) **string { return &v.Key }),
	Attr("value", "value", func(v *Variable) *SensitiveValue { return &v.Value }),
	Attr("description", "description", func(v *Variable) **string { return &v.Description }),
	Attr("category", "category", func(v *Variable) **CategoryType { return &v.Category }),
	Attr("hcl", "hcl", func(v *Variable) **bool { return &v.HCL }),
	Attr("sensitive", "sensitive", func(v *Variable) **bool { return &v.Sensitive }),
	Attr("version_id", "version-id", func(v *Variable) **string { return &v.VersionID }),
	ToOneRel("workspace", "configurable", func(v *Variable) **ResourceRef { return &v.Workspace }),
).AfterDecode(func(v *Variable) {
	if v.Sensitive != nil && *v.Sensitive {
		v.Value = Redacted
	}
})

// VariableCreateOptions are the options for creating a variable.
type VariableCreateOptions struct {
	Key         *string
	Value       *string
	Description *string
	Category    *CategoryType
	HCL         *bool
	Sensitive   *bool
}

// Validate checks the options.
func (o *VariableCreateOptions) Validate() error {
	if o == nil {
		return newValidationError("variable", "", "", ErrMissingOptions)
	}

	if err := requireString("variable", "key", o.Key, ErrRequiredKey); err != nil {
		return err
	}

	if o.Category == nil {
		return newValidationError("variable", "category", "", ErrRequiredCategory)
	}

	return validateCategory(*o.Category)
}

var variableCreateEncoder = NewEncoder(TypeVars,
	Opt("key", func(o *VariableCreateOptions) *string { return o.Key }),
	Opt("value", func(o *VariableCreateOptions) *string { return o.Value }),
	Opt("description", func(o *VariableCreateOptions) *string { return o.Description }),
	Opt("category", func(o *VariableCreateOptions) *CategoryType { return o.Category }),
	Opt("hcl", func(o *VariableCreateOptions) *bool { return o.HCL }),
	Opt("sensitive", func(o *VariableCreateOptions) *bool { return o.Sensitive }),
)

// Document encodes the options as a request document.
func (o *VariableCreateOptions) Document() (*Document, error) {
	return variableCreateEncoder.Encode("", o)
}

// VariableUpdateOptions are the options for updating a variable.
type VariableUpdateOptions struct {
	Key         *string
	Value       *string
	Description *Nullable[string]
	Category    *CategoryType
	HCL         *bool
	Sensitive   *bool
}

// Validate checks the options.
func (o *VariableUpdateOptions) Validate() error {
	if o == nil {
		return newValidationError("variable", "", "", ErrMissingOptions)
	}

	if o.Key != nil {
		if err := requireString("variable", "key", o.Key, ErrRequiredKey); err != nil {
			return err
		}
	}

	if o.Category != nil {
		return validateCategory(*o.Category)
	}

	return nil
}

var variableUpdateEncoder = NewEncoder(TypeVars,
	Opt("key", func(o *VariableUpdateOptions) *string { return o.Key }),
	Opt("value", func(o *VariableUpdateOptions) *string { return o.Value }),
	Opt("description", func(o *VariableUpdateOptions) *Nullable[string] { return o.Description }),
	Opt("category", func(o *VariableUpdateOptions) *CategoryType { return o.Category }),
	Opt("hcl", func(o *VariableUpdateOptions) *bool { return o.HCL }),
	Opt("sensitive", func(o *VariableUpdateOptions) *bool { return o.Sensitive }),
)

// Document encodes the options as a request document.
func (o *VariableUpdateOptions) Document(id string) (*Document, error) {
	return variableUpdateEncoder.Encode(id, o)
}

func validateCategory(c CategoryType) error {
	if !c.Valid() {
		return newValidationError("variable", "category", string(c), ErrInvalidCategory)
	}

	return nil
}
