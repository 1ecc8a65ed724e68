package tfe_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/tfe-client/pkg/tfe"
)

type widget struct {
	ID       string
	Name     *string
	Size     *int
	Mode     *tfe.ExecutionMode
	Labels   []string
	Owner    *tfe.ResourceRef
	Parts    []tfe.ResourceRef
	Finished bool
}

var widgetMapping = tfe.NewMapping("widgets",
	func(w *widget) *string { return &w.ID },
	tfe.Attr("name", "name", func(w *widget) **string { return &w.Name }),
	tfe.Attr("size", "size-in-mb", func(w *widget) **int { return &w.Size }),
	tfe.Attr("mode", "execution-mode", func(w *widget) **tfe.ExecutionMode { return &w.Mode }),
	tfe.Attr("labels", "labels", func(w *widget) *[]string { return &w.Labels }),
	tfe.ToOneRel("owner", "owner", func(w *widget) **tfe.ResourceRef { return &w.Owner }),
	tfe.ToManyRel("parts", "parts", func(w *widget) *[]tfe.ResourceRef { return &w.Parts }),
).AfterDecode(func(w *widget) { w.Finished = true })

func TestMapping_Decode(t *testing.T) {
	t.Parallel()

	w, err := widgetMapping.DecodeBody([]byte(`{"data":{
		"id":"wdg-1","type":"widgets",
		"attributes":{"name":"gear","size-in-mb":12,"execution-mode":"remote","labels":["a","b"],"ignored":true},
		"relationships":{
			"owner":{"data":{"id":"org-1","type":"organizations"}},
			"parts":{"data":[{"id":"p-1","type":"parts"},{"id":"p-2","type":"parts"}]}
		}
	}}`))
	require.NoError(t, err)

	assert.Equal(t, "wdg-1", w.ID)
	assert.Equal(t, "gear", *w.Name)
	assert.Equal(t, 12, *w.Size)
	assert.Equal(t, tfe.ExecutionModeRemote, *w.Mode)
	assert.Equal(t, []string{"a", "b"}, w.Labels)
	assert.Equal(t, &tfe.ResourceRef{ID: "org-1", Type: "organizations"}, w.Owner)
	assert.Len(t, w.Parts, 2)
	assert.True(t, w.Finished)
}

func TestMapping_DecodeAbsentAndNull(t *testing.T) {
	t.Parallel()

	w, err := widgetMapping.DecodeBody([]byte(`{"data":{
		"id":"wdg-1","type":"widgets",
		"attributes":{"name":null},
		"relationships":{"owner":{"data":null},"parts":{"data":[]}}
	}}`))
	require.NoError(t, err)

	assert.Nil(t, w.Name, "null decodes to nil")
	assert.Nil(t, w.Size, "absent stays nil")
	assert.Nil(t, w.Mode)
	assert.Nil(t, w.Owner)
	assert.NotNil(t, w.Parts, "empty to-many is an empty slice")
	assert.Empty(t, w.Parts)
}

func TestMapping_DecodeUnknownEnum(t *testing.T) {
	t.Parallel()

	w, err := widgetMapping.DecodeBody([]byte(`{"data":{"id":"wdg-1","type":"widgets","attributes":{"execution-mode":"quantum"}}}`))
	require.NoError(t, err)
	assert.Equal(t, tfe.ExecutionModeUnknown, *w.Mode)
}

func TestMapping_DecodeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		body  string
		id    string
		field string
	}{
		{"wrong attribute type", `{"data":{"id":"wdg-1","type":"widgets","attributes":{"size-in-mb":"big"}}}`, "wdg-1", "size-in-mb"},
		{"wrong type", `{"data":{"id":"wdg-1","type":"gadgets"}}`, "wdg-1", ""},
		{"missing id", `{"data":{"type":"widgets"}}`, "", ""},
		{"list envelope", `{"data":[]}`, "", ""},
		{"null data", `{"data":null}`, "", ""},
		{"not json", `<html>`, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := widgetMapping.DecodeBody([]byte(tt.body))
			require.ErrorIs(t, err, tfe.ErrDecode)

			var decodeErr *tfe.DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, "widgets", decodeErr.Resource)
			assert.Equal(t, tt.id, decodeErr.ID)
			assert.Equal(t, tt.field, decodeErr.Field)
		})
	}

	_, err := widgetMapping.Decode(nil)
	require.ErrorIs(t, err, tfe.ErrDecode)
}

func TestMapping_FreshValues(t *testing.T) {
	t.Parallel()

	obj := &tfe.ResourceObject{
		ID:         "wdg-1",
		Type:       "widgets",
		Attributes: map[string]json.RawMessage{"labels": json.RawMessage(`["a"]`)},
	}

	first, err := widgetMapping.Decode(obj)
	require.NoError(t, err)

	first.Labels[0] = "changed"

	second, err := widgetMapping.Decode(obj)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, second.Labels)
	assert.NotSame(t, first, second)
}

func TestMapping_WireKey(t *testing.T) {
	t.Parallel()

	wire, ok := widgetMapping.WireKey("size")
	assert.True(t, ok)
	assert.Equal(t, "size-in-mb", wire)

	_, ok = widgetMapping.WireKey("weight")
	assert.False(t, ok)

	assert.Len(t, widgetMapping.Fields(), 6)
}

type widgetOptions struct {
	Name        *string
	Description *tfe.Nullable[string]
	Labels      []string
	Size        int
	OwnerID     string
}

var widgetEncoder = tfe.NewEncoder("widgets",
	tfe.Opt("name", func(o *widgetOptions) *string { return o.Name }),
	tfe.Opt("description", func(o *widgetOptions) *tfe.Nullable[string] { return o.Description }),
	tfe.OptSlice("labels", func(o *widgetOptions) []string { return o.Labels }),
	tfe.Always("size", func(o *widgetOptions) int { return o.Size }),
	tfe.Rel("owner", func(o *widgetOptions) (tfe.Relationship, bool) {
		return tfe.ToOne("organizations", o.OwnerID), o.OwnerID != ""
	}),
)

func TestEncoder_Encode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   string
		opts *widgetOptions
		want string
	}{
		{
			name: "only set fields",
			opts: &widgetOptions{Name: tfe.Ptr("gear")},
			want: `{"data":{"type":"widgets","attributes":{"name":"gear","size":0}}}`,
		},
		{
			name: "explicit null and empty slice",
			id:   "wdg-1",
			opts: &widgetOptions{Description: tfe.Null[string](), Labels: []string{}, Size: 3},
			want: `{"data":{"id":"wdg-1","type":"widgets","attributes":{"description":null,"labels":[],"size":3}}}`,
		},
		{
			name: "relationship",
			opts: &widgetOptions{Description: tfe.NullableOf("x"), OwnerID: "org-1"},
			want: `{"data":{"type":"widgets","attributes":{"description":"x","size":0},` +
				`"relationships":{"owner":{"data":{"id":"org-1","type":"organizations"}}}}}`,
		},
		{
			name: "nil options",
			id:   "wdg-1",
			want: `{"data":{"id":"wdg-1","type":"widgets"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := widgetEncoder.Encode(tt.id, tt.opts)
			require.NoError(t, err)

			body, err := json.Marshal(doc)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(body))
		})
	}
}

func TestRelationship_JSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rel  tfe.Relationship
		want string
	}{
		{"to-one", tfe.ToOne("projects", "prj-1"), `{"data":{"id":"prj-1","type":"projects"}}`},
		{"empty to-one", tfe.Relationship{}, `{"data":null}`},
		{"to-many", tfe.ToMany("workspaces", "ws-1", "ws-2"), `{"data":[{"id":"ws-1","type":"workspaces"},{"id":"ws-2","type":"workspaces"}]}`},
		{"empty to-many", tfe.ToMany("workspaces"), `{"data":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			body, err := json.Marshal(tt.rel)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(body))

			var decoded tfe.Relationship
			require.NoError(t, json.Unmarshal(body, &decoded))
			assert.Equal(t, tt.rel.ToMany, decoded.ToMany)
			assert.Equal(t, tt.rel.One, decoded.One)
			assert.Len(t, decoded.Many, len(tt.rel.Many))
		})
	}

	var rel tfe.Relationship
	require.Error(t, json.Unmarshal([]byte(`{"data":"ws-1"}`), &rel))
}

func TestDecodePage(t *testing.T) {
	t.Parallel()

	page, err := tfe.DecodePage(widgetMapping, []byte(`{
		"data":[{"id":"wdg-1","type":"widgets"},{"id":"wdg-2","type":"widgets"}],
		"meta":{"pagination":{"current-page":2,"prev-page":1,"next-page":null,"total-pages":2,"total-count":22}}
	}`))
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "wdg-2", page.Items[1].ID)
	require.NotNil(t, page.Pagination)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
	assert.Equal(t, 1, *page.Pagination.PreviousPage)
	assert.Nil(t, page.Pagination.NextPage)
	assert.Equal(t, 22, page.Pagination.TotalCount)

	page, err = tfe.DecodePage(widgetMapping, []byte(`{"data":[]}`))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Nil(t, page.Pagination)

	_, err = tfe.DecodePage(widgetMapping, []byte(`{"data":{"id":"wdg-1","type":"widgets"}}`))
	require.ErrorIs(t, err, tfe.ErrDecode)

	_, err = tfe.DecodePage(widgetMapping, []byte(`{"data":[{"id":"wdg-1","type":"gadgets"}]}`))
	require.ErrorIs(t, err, tfe.ErrDecode)
}

func TestDecodeDocument_Timestamps(t *testing.T) {
	t.Parallel()

	ws, err := tfe.WorkspaceMapping.DecodeBody([]byte(`{"data":{"id":"ws-1","type":"workspaces",
		"attributes":{"created-at":"2024-05-01T10:00:00.000Z"}}}`))
	require.NoError(t, err)
	require.NotNil(t, ws.CreatedAt)
	assert.True(t, ws.CreatedAt.Equal(time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)))
}
