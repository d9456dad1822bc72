package tmplx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

var (
	ErrRenderTemplate = errors.New("tmplx: render error")
	ErrParseTemplate  = errors.New("tmplx: parse error")
)

// Template is an HTML template set with the default helper functions.
type Template struct {
	tmpl *template.Template
}

type Options struct {
	funcs template.FuncMap
}

type Option func(*Options) error

// defaultFuncs returns the default template functions
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		"default":        defaultFunc,
		"json":           jsonFunc,
		"hasSuffix":      hasSuffix,
		"hasPrefix":      hasPrefix,
		"encodeUrlQuery": encodeUrlQuery,
		"price":          priceFunc,
	}
}

// WithTemplateFunc adds a single custom template function
func WithTemplateFunc(name string, fn any) Option {
	return func(t *Options) error {
		if fn == nil {
			return fmt.Errorf("%w: nil function %q", ErrParseTemplate, name)
		}
		t.funcs[name] = fn
		return nil
	}
}

func newOptions(args []Option) (*Options, error) {
	opts := &Options{
		funcs: defaultFuncs(),
	}
	for _, arg := range args {
		if err := arg(opts); err != nil {
			return nil, err
		}
	}
	return opts, nil
}

func MustParse(name string, text string, opts ...Option) *Template {
	t, err := Parse(name, text, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse creates a new Template with the given name and text, applying any options
func Parse(name string, text string, args ...Option) (*Template, error) {
	opts, err := newOptions(args)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(name).
		Option("missingkey=zero").
		Funcs(opts.funcs).
		Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseTemplate, err)
	}

	return &Template{tmpl: tmpl}, nil
}

// ParseFS parses the files matching patterns into one set. The first file
// names the set.
func ParseFS(fsys fs.FS, patterns []string, args ...Option) (*Template, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: no patterns", ErrParseTemplate)
	}
	opts, err := newOptions(args)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(baseName(patterns[0])).
		Option("missingkey=zero").
		Funcs(opts.funcs).
		ParseFS(fsys, patterns...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseTemplate, err)
	}

	return &Template{tmpl: tmpl}, nil
}

func baseName(pattern string) string {
	if i := strings.LastIndex(pattern, "/"); i >= 0 {
		return pattern[i+1:]
	}
	return pattern
}

func (t *Template) Render(data any) (*bytes.Buffer, error) {
	buf := new(bytes.Buffer)
	if err := t.tmpl.Execute(buf, data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderTemplate, err)
	}
	return buf, nil
}

// ExecuteTemplate renders the named template of the set into w. Output is
// buffered so a failed render writes nothing.
func (t *Template) ExecuteTemplate(w io.Writer, name string, data any) error {
	buf := new(bytes.Buffer)
	if err := t.tmpl.ExecuteTemplate(buf, name, data); err != nil {
		return fmt.Errorf("%w: %w", ErrRenderTemplate, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func hasSuffix(a, b any) bool {
	s1 := cast.ToString(a)
	s2 := cast.ToString(b)
	return strings.HasSuffix(s1, s2)
}

func hasPrefix(a, b any) bool {
	s1 := cast.ToString(a)
	s2 := cast.ToString(b)
	return strings.HasPrefix(s1, s2)
}

func defaultFunc(def any, value any) any {
	if value != nil && value != "" {
		return value
	}
	return def
}

func jsonFunc(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// priceFunc formats a price with two decimals.
func priceFunc(value any) (string, error) {
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%.2f", f), nil
}

func encodeUrlQuery(queries ...any) string {
	query := url.Values{}
	for i := 0; i < len(queries); i += 2 {
		value := ""
		if i+1 < len(queries) {
			value = cast.ToString(queries[i+1])
		}
		query.Add(cast.ToString(queries[i]), value)
	}
	return query.Encode()
}
