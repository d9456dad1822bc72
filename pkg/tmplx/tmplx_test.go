package tmplx

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		data any
		want string
	}{
		{
			name: "escapes html",
			text: `<p>{{.Name}}</p>`,
			data: map[string]any{"Name": "<b>Laptop</b>"},
			want: `<p>&lt;b&gt;Laptop&lt;/b&gt;</p>`,
		},
		{
			name: "default on empty",
			text: `{{default "n/a" .Description}}`,
			data: map[string]any{"Description": ""},
			want: `n/a`,
		},
		{
			name: "default keeps value",
			text: `{{default "n/a" .Description}}`,
			data: map[string]any{"Description": "Wireless"},
			want: `Wireless`,
		},
		{
			name: "price",
			text: `{{price .Price}}`,
			data: map[string]any{"Price": 10.5},
			want: `10.50`,
		},
		{
			name: "has prefix",
			text: `{{if hasPrefix .Path "/products"}}edit{{end}}`,
			data: map[string]any{"Path": "/products/1"},
			want: `edit`,
		},
		{
			name: "has suffix",
			text: `{{if hasSuffix .Path "product"}}add{{end}}`,
			data: map[string]any{"Path": "/add-product"},
			want: `add`,
		},
		{
			name: "encode query",
			text: `/?{{encodeUrlQuery "action" "edit" "id" .ID}}`,
			data: map[string]any{"ID": 2},
			want: `/?action=edit&amp;id=2`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Parse(tt.name, tt.text)
			require.NoError(t, err)

			buf, err := tmpl.Render(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestJSONFunc(t *testing.T) {
	t.Parallel()
	tmpl := MustParse("json", `<script>var title = {{json .}};</script>`)
	buf, err := tmpl.Render("Products")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `Products`)
}

func TestParseError(t *testing.T) {
	t.Parallel()
	_, err := Parse("broken", `{{if}}`)
	assert.ErrorIs(t, err, ErrParseTemplate)

	assert.Panics(t, func() {
		MustParse("broken", `{{.Name`)
	})
}

func TestRenderError(t *testing.T) {
	t.Parallel()
	tmpl := MustParse("price", `{{price .}}`)
	_, err := tmpl.Render("not a number")
	assert.ErrorIs(t, err, ErrRenderTemplate)
}

func TestWithTemplateFunc(t *testing.T) {
	t.Parallel()
	tmpl := MustParse("upper", `{{upper .}}`, WithTemplateFunc("upper", strings.ToUpper))
	buf, err := tmpl.Render("products")
	require.NoError(t, err)
	assert.Equal(t, "PRODUCTS", buf.String())

	_, err = Parse("nil", `x`, WithTemplateFunc("nil", nil))
	assert.ErrorIs(t, err, ErrParseTemplate)
}

func TestParseFS(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"templates/layout.html": {Data: []byte(`{{define "layout"}}<h1>{{.Title}}</h1>{{template "content" .}}{{end}}`)},
		"templates/list.html":   {Data: []byte(`{{define "content"}}<ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>{{end}}`)},
	}

	tmpl, err := ParseFS(fsys, []string{"templates/layout.html", "templates/list.html"})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "layout", map[string]any{"Title": "Products", "Items": []string{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, `<h1>Products</h1><ul><li>a</li><li>b</li></ul>`, buf.String())

	var failed bytes.Buffer
	err = tmpl.ExecuteTemplate(&failed, "missing", nil)
	assert.ErrorIs(t, err, ErrRenderTemplate)
	assert.Zero(t, failed.Len())

	_, err = ParseFS(fsys, nil)
	assert.ErrorIs(t, err, ErrParseTemplate)
}
