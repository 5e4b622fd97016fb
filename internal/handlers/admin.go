package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NKTHUAN-2K5/portfolio/internal/client"
	"github.com/NKTHUAN-2K5/portfolio/internal/events"
	"github.com/NKTHUAN-2K5/portfolio/internal/forms"
	"github.com/NKTHUAN-2K5/portfolio/internal/logger"
	"github.com/NKTHUAN-2K5/portfolio/internal/render"
	"github.com/NKTHUAN-2K5/portfolio/internal/view"
)

// AdminHome redirects to the default section.
func (h *Handler) AdminHome(c *gin.Context) {
	c.Redirect(http.StatusFound, "/admin/"+h.view.Active())
}

// AdminSection renders the active section: its record list plus the form
// panel when one is open. Plain navigation to a section cancels any open
// panel; new/edit are the only ways to open one.
func (h *Handler) AdminSection(c *gin.Context) {
	section := c.Param("section")
	if err := h.view.Activate(section); err != nil {
		c.String(http.StatusNotFound, "unknown section %q", section)
		return
	}

	page := render.AdminPage{
		Section:      section,
		SectionTitle: sectionSpecs[section].title,
		Sections:     h.view.Sections(),
		Notice:       h.popNotice(c),
	}

	if section == "profile" {
		h.renderProfileSection(c, page)
		return
	}

	e := h.entry(section)
	h.mu.Lock()
	if e.panel.Visible() {
		panel := &render.FormPanelView{
			Mode:        e.panel.State().String(),
			Section:     section,
			Action:      "/admin/" + section + "/save",
			RecordID:    e.panel.RecordID(),
			Fields:      e.fields,
			FormSession: e.formSession,
			Uploads:     sectionSpecs[section].uploads,
		}
		if e.formSession != "" {
			if pending, ok := h.sessions.Get(e.formSession); ok {
				panel.PendingImages = pending.Snapshot()
			}
		}
		page.Panel = panel
	}
	h.mu.Unlock()

	items, err := h.listItems(c.Request.Context(), section)
	cs := h.renderer.Containers()
	containerID := section + "-list"
	if err != nil {
		h.log.Error("Failed to load section",
			logger.String("section", section),
			logger.Error(err),
		)
		cs.RenderError(containerID, "Failed to load "+section+".")
	} else if err := cs.Render(containerID, items, h.renderer.AdminItemCard); err != nil {
		cs.RenderError(containerID, "Failed to display "+section+".")
	}
	page.List = cs.Container(containerID)

	c.Status(http.StatusOK)
	if err := h.renderer.WriteAdminPage(c.Writer, page); err != nil {
		h.log.Error("Failed to render admin page", logger.Error(err))
	}
}

// renderProfileSection shows the always-open profile form. The profile is
// a singleton: no list, no create, edits replace it wholesale.
func (h *Handler) renderProfileSection(c *gin.Context, page render.AdminPage) {
	profile, err := h.client.Profile(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to load profile", logger.Error(err))
		cs := h.renderer.Containers()
		cs.RenderError("profile-list", "Failed to load profile.")
		page.List = cs.Container("profile-list")
	} else {
		page.Panel = &render.FormPanelView{
			Mode:    "edit",
			Section: "profile",
			Action:  "/admin/profile/save",
			Fields:  profileFields(profile),
		}
	}

	c.Status(http.StatusOK)
	if err := h.renderer.WriteAdminPage(c.Writer, page); err != nil {
		h.log.Error("Failed to render admin page", logger.Error(err))
	}
}

// OpenCreate opens an empty form panel for the section.
func (h *Handler) OpenCreate(c *gin.Context) {
	section := c.Param("section")
	spec, ok := sectionSpecs[section]
	if !ok || section == "profile" {
		c.String(http.StatusNotFound, "unknown section %q", section)
		return
	}

	h.closePanel(section)
	e := h.entry(section)
	h.mu.Lock()
	e.panel.Open()
	e.fields = blankFields(section)
	if spec.uploads {
		e.formSession, _ = h.sessions.Open(nil)
	}
	h.mu.Unlock()

	c.Redirect(http.StatusFound, "/admin/"+section)
}

// OpenEdit fetches the record and opens a pre-populated form panel. The
// record comes from the live backend only; editing stale fallback data
// would silently overwrite newer records.
func (h *Handler) OpenEdit(c *gin.Context) {
	section := c.Param("section")
	spec, ok := sectionSpecs[section]
	if !ok || section == "profile" {
		c.String(http.StatusNotFound, "unknown section %q", section)
		return
	}
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "invalid record id")
		return
	}

	fields, images, err := h.editRecord(c.Request.Context(), section, id)
	if err != nil {
		h.log.Error("Failed to load record for edit",
			logger.String("section", section),
			logger.Int64("record_id", id),
			logger.Error(err),
		)
		h.setNotice(c, "Could not load that record for editing.")
		c.Redirect(http.StatusFound, "/admin/"+section)
		return
	}

	h.closePanel(section)
	e := h.entry(section)
	h.mu.Lock()
	e.panel.Edit(id)
	e.fields = fields
	if spec.uploads {
		e.formSession, _ = h.sessions.Open(images)
	}
	h.mu.Unlock()

	c.Redirect(http.StatusFound, "/admin/"+section)
}

// SaveSection persists a submitted form. Presence of a record id selects
// update over create. On success the panel closes and the section reloads
// from the backend; on validation failure the panel stays open with the
// submitted values.
func (h *Handler) SaveSection(c *gin.Context) {
	section := c.Param("section")
	if _, ok := sectionSpecs[section]; !ok {
		c.String(http.StatusNotFound, "unknown section %q", section)
		return
	}
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "malformed form")
		return
	}
	v := c.Request.PostForm

	if section == "profile" {
		h.saveProfile(c)
		return
	}

	var images []string
	formSession := v.Get("form_session")
	if formSession != "" {
		if pending, ok := h.sessions.Get(formSession); ok {
			images = pending.Snapshot()
		}
	}

	record, id, err := parseRecord(section, v, images)
	if err != nil {
		if errors.Is(err, forms.ErrValidation) {
			h.keepSubmittedValues(section, v)
			h.setNotice(c, err.Error())
			c.Redirect(http.StatusFound, "/admin/"+section)
			return
		}
		c.String(http.StatusBadRequest, "bad request")
		return
	}

	col := sectionSpecs[section].collection
	outcome, err := h.mutator.Submit(c.Request.Context(), col, id, record)
	if err != nil {
		h.keepSubmittedValues(section, v)
		h.setNotice(c, "Save failed. Check the form and try again.")
		c.Redirect(http.StatusFound, "/admin/"+section)
		return
	}

	eventType := events.ContentUpdated
	if outcome.Created {
		eventType = events.ContentCreated
	}
	h.publish(eventType, col, outcome.RecordID)

	h.mu.Lock()
	if e := h.panels[section]; e != nil {
		if e.formSession != "" {
			h.sessions.Close(e.formSession)
			e.formSession = ""
		}
		e.panel.SubmitSuccess()
		e.fields = nil
	}
	h.mu.Unlock()

	h.setNotice(c, "Saved.")
	c.Redirect(http.StatusFound, "/admin/"+section)
}

func (h *Handler) saveProfile(c *gin.Context) {
	profile, err := forms.ParseProfile(c.Request.PostForm)
	if err != nil {
		h.setNotice(c, err.Error())
		c.Redirect(http.StatusFound, "/admin/profile")
		return
	}
	if err := h.mutator.SubmitProfile(c.Request.Context(), profile); err != nil {
		h.setNotice(c, "Profile save failed.")
		c.Redirect(http.StatusFound, "/admin/profile")
		return
	}
	h.publish(events.ContentUpdated, client.CollectionProfile, 0)
	h.setNotice(c, "Profile saved.")
	c.Redirect(http.StatusFound, "/admin/profile")
}

// keepSubmittedValues re-seeds the open panel's fields from the failed
// submission so the admin can correct them instead of retyping.
func (h *Handler) keepSubmittedValues(section string, v map[string][]string) {
	e := h.entry(section)
	h.mu.Lock()
	defer h.mu.Unlock()
	if !e.panel.Visible() {
		return
	}
	fields := make([]render.FormField, len(e.fields))
	copy(fields, e.fields)
	for i, f := range fields {
		if vals, ok := v[f.Name]; ok && len(vals) > 0 {
			fields[i].Value = vals[0]
		}
	}
	e.fields = fields
}

// DeleteRecord removes a record after explicit confirmation. A declined
// confirmation never issues a request; the list is left untouched.
func (h *Handler) DeleteRecord(c *gin.Context) {
	section := c.Param("section")
	spec, ok := sectionSpecs[section]
	if !ok || section == "profile" {
		c.String(http.StatusNotFound, "unknown section %q", section)
		return
	}
	id, err := strconv.ParseInt(c.PostForm("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "invalid record id")
		return
	}
	confirmed := c.PostForm("confirm") == "true"

	err = h.mutator.Delete(c.Request.Context(), spec.collection, id, confirmed)
	switch {
	case errors.Is(err, forms.ErrNotConfirmed):
		c.Redirect(http.StatusFound, "/admin/"+section)
		return
	case err != nil:
		h.setNotice(c, "Delete failed.")
		c.Redirect(http.StatusFound, "/admin/"+section)
		return
	}

	h.publish(events.ContentDeleted, spec.collection, id)

	// The deleted record may be the one open in the panel.
	h.mu.Lock()
	e := h.panels[section]
	stale := e != nil && e.panel.State() == view.PanelEdit && e.panel.RecordID() == id
	h.mu.Unlock()
	if stale {
		h.closePanel(section)
	}

	h.setNotice(c, "Deleted.")
	c.Redirect(http.StatusFound, "/admin/"+section)
}
