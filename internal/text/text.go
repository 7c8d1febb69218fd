package text

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// Template is a compiled message template.
type Template struct {
	name string
	tmpl *template.Template
}

// Parse compiles a message template. Referencing a field the data does not
// have is an error at render time.
func Parse(name, tmplStr string) (*Template, error) {
	tmpl, err := template.New(name).Funcs(templateFuncs).Option("missingkey=error").Parse(tmplStr)
	if err != nil {
		return nil, fmt.Errorf("parsing template %q: %w", name, err)
	}
	return &Template{name: name, tmpl: tmpl}, nil
}

// Compile is Parse for package-level message tables; it panics on a
// malformed template.
func Compile(name, tmplStr string) *Template {
	t, err := Parse(name, tmplStr)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Template) Name() string {
	return t.name
}

// Render executes the template with data.
func (t *Template) Render(data any) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %q: %w", t.name, err)
	}
	return buf.String(), nil
}

// Expand renders text that may carry template actions, such as a sign
// written by a world builder. Text without actions comes back unchanged.
func Expand(name, tmplStr string, data any) (string, error) {
	if !strings.Contains(tmplStr, "{{") {
		return tmplStr, nil
	}
	t, err := Parse(name, tmplStr)
	if err != nil {
		return "", err
	}
	return t.Render(data)
}
