package render

import (
	"fmt"
	"html/template"
	"io"
)

// PublicPage is the data for the public site: every section's container
// rendered in display order.
type PublicPage struct {
	Title    string
	Theme    Theme
	Sections []PublicSection
}

// Theme carries the visitor's saved appearance settings. Zero values
// fall back to the stylesheet defaults.
type Theme struct {
	Primary   string
	Secondary string
	Accent    string
	Avatar    string
}

type PublicSection struct {
	ID      string
	Heading string
	Content template.HTML
}

// AdminPage is the data for one admin section view: the active section's
// record list plus an optional form panel.
type AdminPage struct {
	Section      string
	SectionTitle string
	Sections     []string
	List         template.HTML
	Panel        *FormPanelView
	Notice       string
}

// FormPanelView describes a visible create or edit form.
type FormPanelView struct {
	Mode          string // "create" or "edit"
	Section       string
	Action        string
	RecordID      int64
	Fields        []FormField
	PendingImages []string
	FormSession   string
	Uploads       bool
}

// FormField is one input in a generated admin form.
type FormField struct {
	Name    string
	Label   string
	Type    string // "text", "textarea", "number", "date", "url"
	Value   string
	Options []string
}

// WritePublicPage executes the public page template.
func (r *Renderer) WritePublicPage(w io.Writer, page PublicPage) error {
	if err := r.tmpl.ExecuteTemplate(w, "public_page", page); err != nil {
		return fmt.Errorf("render public page: %w", err)
	}
	return nil
}

// WriteAdminPage executes the admin section template.
func (r *Renderer) WriteAdminPage(w io.Writer, page AdminPage) error {
	if err := r.tmpl.ExecuteTemplate(w, "admin_page", page); err != nil {
		return fmt.Errorf("render admin page: %w", err)
	}
	return nil
}

// SettingsPage is the data for the appearance settings view.
type SettingsPage struct {
	Theme  Theme
	Notice string
}

// WriteSettingsPage executes the settings template.
func (r *Renderer) WriteSettingsPage(w io.Writer, page SettingsPage) error {
	if err := r.tmpl.ExecuteTemplate(w, "settings_page", page); err != nil {
		return fmt.Errorf("render settings page: %w", err)
	}
	return nil
}

// WriteLoginPage executes the admin login template. message is an
// optional failure notice from a previous attempt.
func (r *Renderer) WriteLoginPage(w io.Writer, message string) error {
	if err := r.tmpl.ExecuteTemplate(w, "login_page", message); err != nil {
		return fmt.Errorf("render login page: %w", err)
	}
	return nil
}
