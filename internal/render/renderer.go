// Package render maps content records to HTML fragments and mounts them
// into named containers. Rendering a container always replaces its prior
// content wholesale.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"
)

//go:embed templates
var templateFS embed.FS

// Fragment is one rendered view unit for a single record.
type Fragment = template.HTML

// TemplateFn maps a record to its fragment.
type TemplateFn func(record any) (Fragment, error)

// Renderer holds the parsed template set. It carries no per-request
// state: handlers stage content in a ContainerSet of their own.
type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("fragments").Funcs(template.FuncMap{
		"formatDate": formatDate,
		"truncate":   truncate,
		"hostname":   hostname,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// ContainerSet stages rendered content per container id for one request.
// Containers are disjoint; rendering one never touches another, and two
// sets never share content even under the same container id.
type ContainerSet struct {
	r          *Renderer
	containers map[string][]Fragment
}

// Containers returns a fresh, empty container set.
func (r *Renderer) Containers() *ContainerSet {
	return &ContainerSet{
		r:          r,
		containers: make(map[string][]Fragment),
	}
}

// Render replaces containerID's content with one fragment per record, in
// the records' given order. Re-rendering is idempotent: the container
// afterwards holds exactly the given records' fragments, nothing carried
// over from earlier renders.
func (s *ContainerSet) Render(containerID string, records []any, fn TemplateFn) error {
	fragments := make([]Fragment, 0, len(records))
	for i, rec := range records {
		frag, err := fn(rec)
		if err != nil {
			return fmt.Errorf("render %s record %d: %w", containerID, i, err)
		}
		fragments = append(fragments, frag)
	}

	s.containers[containerID] = fragments
	return nil
}

// RenderError replaces a container with a single error notice. A failed
// panel renders its notice while every other panel stays intact.
func (s *ContainerSet) RenderError(containerID, message string) {
	frag, err := s.r.fragment("load_error", message)
	if err != nil {
		frag = Fragment(template.HTMLEscapeString(message))
	}
	s.containers[containerID] = []Fragment{frag}
}

// Container returns the container's current content as one HTML blob.
func (s *ContainerSet) Container(containerID string) template.HTML {
	var b strings.Builder
	for _, f := range s.containers[containerID] {
		b.WriteString(string(f))
	}
	return template.HTML(b.String()) // #nosec G203 -- fragments are template output
}

// Fragments returns a copy of the container's fragments.
func (s *ContainerSet) Fragments(containerID string) []Fragment {
	return append([]Fragment(nil), s.containers[containerID]...)
}

func (r *Renderer) fragment(name string, data any) (Fragment, error) {
	var b strings.Builder
	if err := r.tmpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return Fragment(b.String()), nil // #nosec G203 -- html/template escapes data
}

// formatDate renders an ISO date as a readable long date. Unparseable
// input passes through unchanged so partial dates like "2024-06" survive.
func formatDate(s string) string {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return s
}

// truncate cuts on runes, not bytes, so multi-byte text never ends in a
// mangled partial character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

func hostname(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
