// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the site. Page
// templates are paired with the base layout; auth pages render standalone;
// small fragments (typeahead suggestions, ranked page lists) render without
// any layout so they can be swapped into the DOM by the front-end.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"linkshelf/internal/middleware"
	"linkshelf/internal/session"
)

//go:embed templates/site
var siteFS embed.FS

// PageData holds all data passed to site templates.
type PageData struct {
	Title     string         // Page title for <title> tag
	Session   *session.Data  // Current session (nil if none loaded)
	CSRFToken string         // CSRF token for forms
	Data      map[string]any // Page-specific data
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	fragments map[string]*template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates lists templates that render as full HTML pages
// without the base layout (they have their own <html>, <head>, etc.).
var standaloneTemplates = map[string]bool{
	"login":        true,
	"login_verify": true,
	"register":     true,
}

// New creates a Renderer by parsing all site templates from the embedded
// filesystem. When devMode is true, templates may reference CDN-hosted
// assets instead of compiled local static files.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		fragments: make(map[string]*template.Template),
		funcMap: template.FuncMap{
			// deref safely dereferences a string pointer for use in templates.
			"deref": func(s *string) string {
				if s == nil {
					return ""
				}
				return *s
			},
			"isDev": func() bool {
				return devMode
			},
			// raw marks pre-rendered, sanitized HTML (Markdown output) as safe.
			"raw": func(s string) template.HTML {
				return template.HTML(s)
			},
			"lower": strings.ToLower,
		},
	}

	pages, err := siteFS.ReadDir("templates/site")
	if err != nil {
		return nil, fmt.Errorf("read embedded templates: %w", err)
	}

	for _, e := range pages {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == "base.html" {
			continue
		}
		tmplName := name[:len(name)-len(".html")]

		var tmpl *template.Template
		var parseErr error
		if standaloneTemplates[tmplName] {
			tmpl, parseErr = template.New(name).Funcs(r.funcMap).ParseFS(
				siteFS, "templates/site/"+name,
			)
		} else {
			tmpl, parseErr = template.New("base.html").Funcs(r.funcMap).ParseFS(
				siteFS, "templates/site/base.html", "templates/site/"+name,
			)
		}
		if parseErr != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, parseErr)
		}
		r.templates[tmplName] = tmpl
	}

	frags, err := siteFS.ReadDir("templates/site/fragments")
	if err != nil {
		return nil, fmt.Errorf("read embedded fragments: %w", err)
	}
	for _, e := range frags {
		name := e.Name()
		tmpl, parseErr := template.New(name).Funcs(r.funcMap).ParseFS(
			siteFS, "templates/site/fragments/"+name,
		)
		if parseErr != nil {
			return nil, fmt.Errorf("parse fragment %s: %w", name, parseErr)
		}
		r.fragments[strings.TrimSuffix(name, filepath.Ext(name))] = tmpl
	}

	return r, nil
}

// Page renders a full site page. The CSRF token and session are injected
// from the request context (set by the CSRF and LoadSession middleware).
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.GetCSRFToken(r)
	if data.Session == nil {
		data.Session = middleware.SessionFromCtx(r.Context())
	}

	execName := "base.html"
	if standaloneTemplates[name] {
		execName = name + ".html"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := executeTemplate(w, tmpl, execName, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// Fragment renders a layout-less partial (suggestions list, page list).
func (rn *Renderer) Fragment(w http.ResponseWriter, name string, data any) {
	html, err := rn.FragmentBytes(name, data)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// FragmentBytes renders a fragment to a byte slice. Used where the result
// is cached before being written out.
func (rn *Renderer) FragmentBytes(name string, data any) ([]byte, error) {
	tmpl, ok := rn.fragments[name]
	if !ok {
		return nil, fmt.Errorf("fragment %q not found", name)
	}

	var buf bytes.Buffer
	if err := executeTemplate(&buf, tmpl, name+".html", data); err != nil {
		return nil, fmt.Errorf("execute fragment %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}
