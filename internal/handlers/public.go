package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/NKTHUAN-2K5/portfolio/internal/logger"
	"github.com/NKTHUAN-2K5/portfolio/internal/render"
)

type publicSectionDef struct {
	id      string
	heading string
	load    func(h *Handler, c *gin.Context, cs *render.ContainerSet, containerID string) error
}

// Each section loads and renders independently. One failed section shows
// an inline error in its own container and never blanks the others.
var publicSectionDefs = []publicSectionDef{
	{"profile", "", func(h *Handler, c *gin.Context, cs *render.ContainerSet, id string) error {
		p, err := h.client.Profile(c.Request.Context())
		if err != nil {
			return err
		}
		return cs.Render(id, []any{p}, h.renderer.ProfileCard)
	}},
	{"stories", "My Stories", func(h *Handler, c *gin.Context, cs *render.ContainerSet, id string) error {
		records, err := h.client.Stories(c.Request.Context())
		if err != nil {
			return err
		}
		return cs.Render(id, anySlice(records), h.renderer.StoryCard)
	}},
	{"gallery", "Gallery", func(h *Handler, c *gin.Context, cs *render.ContainerSet, id string) error {
		records, err := h.client.Gallery(c.Request.Context())
		if err != nil {
			return err
		}
		return cs.Render(id, anySlice(records), h.renderer.GalleryCard)
	}},
	{"projects", "Projects", func(h *Handler, c *gin.Context, cs *render.ContainerSet, id string) error {
		records, err := h.client.Projects(c.Request.Context())
		if err != nil {
			return err
		}
		return cs.Render(id, anySlice(records), h.renderer.ProjectCard)
	}},
	{"skills", "Skills", func(h *Handler, c *gin.Context, cs *render.ContainerSet, id string) error {
		records, err := h.client.Skills(c.Request.Context())
		if err != nil {
			return err
		}
		return cs.Render(id, anySlice(records), h.renderer.SkillBar)
	}},
	{"experience", "Experience", func(h *Handler, c *gin.Context, cs *render.ContainerSet, id string) error {
		records, err := h.client.Experience(c.Request.Context())
		if err != nil {
			return err
		}
		return cs.Render(id, anySlice(records), h.renderer.ExperienceItem)
	}},
	{"education", "Education", func(h *Handler, c *gin.Context, cs *render.ContainerSet, id string) error {
		records, err := h.client.Education(c.Request.Context())
		if err != nil {
			return err
		}
		return cs.Render(id, anySlice(records), h.renderer.EducationCard)
	}},
	{"awards", "Honors & Awards", func(h *Handler, c *gin.Context, cs *render.ContainerSet, id string) error {
		records, err := h.client.Awards(c.Request.Context())
		if err != nil {
			return err
		}
		return cs.Render(id, anySlice(records), h.renderer.AwardCard)
	}},
	{"links", "Links & Articles", func(h *Handler, c *gin.Context, cs *render.ContainerSet, id string) error {
		records, err := h.client.Links(c.Request.Context())
		if err != nil {
			return err
		}
		return cs.Render(id, anySlice(records), h.renderer.LinkCard)
	}},
}

func anySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i := range in {
		out[i] = in[i]
	}
	return out
}

// Home renders the full public site, section by section.
func (h *Handler) Home(c *gin.Context) {
	page := render.PublicPage{
		Title: "Portfolio",
		Theme: h.theme(c),
	}
	cs := h.renderer.Containers()

	for _, def := range publicSectionDefs {
		containerID := def.id + "-container"
		if err := def.load(h, c, cs, containerID); err != nil {
			h.log.Error("Failed to load public section",
				logger.String("section", def.id),
				logger.Error(err),
			)
			cs.RenderError(containerID, "This section could not be loaded.")
		}
		page.Sections = append(page.Sections, render.PublicSection{
			ID:      def.id,
			Heading: def.heading,
			Content: cs.Container(containerID),
		})
	}

	c.Status(http.StatusOK)
	if err := h.renderer.WritePublicPage(c.Writer, page); err != nil {
		h.log.Error("Failed to render public page", logger.Error(err))
	}
}

// StoryDetail renders one story with its full image set.
func (h *Handler) StoryDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "invalid story id")
		return
	}

	story, err := h.client.Story(c.Request.Context(), id)
	if err != nil {
		c.String(http.StatusNotFound, "story not found")
		return
	}

	cs := h.renderer.Containers()
	containerID := "story-detail-container"
	if err := cs.Render(containerID, []any{*story}, h.renderer.StoryDetail); err != nil {
		h.log.Error("Failed to render story", logger.Int64("story_id", id), logger.Error(err))
		cs.RenderError(containerID, "This story could not be displayed.")
	}

	page := render.PublicPage{
		Title: story.Title,
		Theme: h.theme(c),
		Sections: []render.PublicSection{
			{ID: "story-detail", Content: cs.Container(containerID)},
		},
	}

	c.Status(http.StatusOK)
	if err := h.renderer.WritePublicPage(c.Writer, page); err != nil {
		h.log.Error("Failed to render story page", logger.Error(err))
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (h *Handler) theme(c *gin.Context) render.Theme {
	s := sessions.Default(c)
	get := func(key string) string {
		v, _ := s.Get(key).(string)
		return v
	}
	return render.Theme{
		Primary:   get(themeKeyPrimary),
		Secondary: get(themeKeySecondary),
		Accent:    get(themeKeyAccent),
		Avatar:    get(themeKeyAvatar),
	}
}
