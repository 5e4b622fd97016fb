package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/NKTHUAN-2K5/portfolio/internal/logger"
	"github.com/NKTHUAN-2K5/portfolio/internal/render"
)

const (
	themeKeyPrimary   = "theme_primary"
	themeKeySecondary = "theme_secondary"
	themeKeyAccent    = "theme_accent"
	themeKeyAvatar    = "theme_avatar"
)

// SettingsPage shows the saved appearance settings.
func (h *Handler) SettingsPage(c *gin.Context) {
	page := render.SettingsPage{
		Theme:  h.theme(c),
		Notice: h.popNotice(c),
	}
	c.Status(http.StatusOK)
	if err := h.renderer.WriteSettingsPage(c.Writer, page); err != nil {
		h.log.Error("Failed to render settings page", logger.Error(err))
	}
}

// SaveSettings stores theme colors and avatar in the browser session.
// Settings are per-browser presentation state, not backend content.
func (h *Handler) SaveSettings(c *gin.Context) {
	s := sessions.Default(c)
	s.Set(themeKeyPrimary, c.PostForm("primary"))
	s.Set(themeKeySecondary, c.PostForm("secondary"))
	s.Set(themeKeyAccent, c.PostForm("accent"))
	s.Set(themeKeyAvatar, c.PostForm("avatar"))
	if err := s.Save(); err != nil {
		h.log.Error("Failed to save settings", logger.Error(err))
		h.setNotice(c, "Could not save settings.")
		c.Redirect(http.StatusFound, "/admin/settings")
		return
	}
	h.setNotice(c, "Settings saved.")
	c.Redirect(http.StatusFound, "/admin/settings")
}

// ResetSettings clears all saved appearance settings at once.
func (h *Handler) ResetSettings(c *gin.Context) {
	s := sessions.Default(c)
	for _, key := range []string{themeKeyPrimary, themeKeySecondary, themeKeyAccent, themeKeyAvatar} {
		s.Delete(key)
	}
	if err := s.Save(); err != nil {
		h.log.Error("Failed to reset settings", logger.Error(err))
	}
	h.setNotice(c, "Settings reset to defaults.")
	c.Redirect(http.StatusFound, "/admin/settings")
}
