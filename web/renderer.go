// Package web holds the embedded page templates and static assets.
package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

//go:embed templates
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

var pages = []string{
	"index.html",
	"program.html",
	"admin-dashboard.html",
	"admin-input.html",
	"post-edit.html",
	"error.html",
}

// TemplateRegistry renders a page template inside base.html and minifies the result.
type TemplateRegistry struct {
	templates map[string]*template.Template
	minifier  *minify.M
}

func NewTemplateRegistry() (*TemplateRegistry, error) {
	t := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, err
		}
		t[name] = tmpl
	}
	m := minify.New()
	m.AddFunc("text/html", html.Minify)
	return &TemplateRegistry{templates: t, minifier: m}, nil
}

func (t *TemplateRegistry) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return errors.New("template not found: " + name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return err
	}
	return t.minifier.Minify("text/html", w, &buf)
}

// Assets serves the embedded static files.
func Assets() fs.FS {
	sub, err := fs.Sub(assetFS, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

var funcs = template.FuncMap{
	"joinNames": func(names []string) string {
		return strings.Join(names, " / ")
	},
}
