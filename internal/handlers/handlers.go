// Package handlers implements the HTTP surface: the public site, the
// admin panel, authentication and uploads. Handlers never patch views
// in place; every successful mutation redirects back to a page that
// reloads its collection from the backend.
package handlers

import (
	"sync"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/NKTHUAN-2K5/portfolio/internal/client"
	"github.com/NKTHUAN-2K5/portfolio/internal/config"
	"github.com/NKTHUAN-2K5/portfolio/internal/events"
	"github.com/NKTHUAN-2K5/portfolio/internal/forms"
	"github.com/NKTHUAN-2K5/portfolio/internal/logger"
	"github.com/NKTHUAN-2K5/portfolio/internal/render"
	"github.com/NKTHUAN-2K5/portfolio/internal/uploads"
	"github.com/NKTHUAN-2K5/portfolio/internal/view"
)

const (
	sessionKeyAuth   = "authenticated"
	sessionKeyNotice = "notice"
)

// Deps carries everything a Handler needs. All fields except Publisher
// are required; a nil Publisher disables event publishing.
type Deps struct {
	Client    *client.Client
	Renderer  *render.Renderer
	Mutator   *forms.Mutator
	Uploader  *uploads.Adapter
	Sessions  *uploads.Sessions
	Publisher *events.Publisher
	Config    *config.Config
	Log       logger.Logger
}

// Handler serves both the public site and the admin panel.
type Handler struct {
	client    *client.Client
	renderer  *render.Renderer
	mutator   *forms.Mutator
	uploader  *uploads.Adapter
	sessions  *uploads.Sessions
	publisher *events.Publisher
	view      *view.Controller
	log       logger.Logger

	jwtSecret []byte
	tokenTTL  time.Duration
	maxUpload int64

	// Admin form panel state, one entry per section. The panel is
	// explicit state, not an artifact of which URL was last hit: it
	// opens on new/edit, survives failed submits, and closes only on
	// cancel or a successful submit.
	mu     sync.Mutex
	panels map[string]*panelEntry
}

type panelEntry struct {
	panel       *view.FormPanel
	formSession string
	fields      []render.FormField
}

func New(d Deps) *Handler {
	h := &Handler{
		client:    d.Client,
		renderer:  d.Renderer,
		mutator:   d.Mutator,
		uploader:  d.Uploader,
		sessions:  d.Sessions,
		publisher: d.Publisher,
		view:      view.NewController(adminSections()),
		log:       d.Log,
		jwtSecret: []byte(d.Config.Auth.JWTSecret),
		tokenTTL:  d.Config.Auth.TokenTTL,
		maxUpload: d.Config.Uploads.MaxSizeBytes,
		panels:    make(map[string]*panelEntry),
	}
	return h
}

func (h *Handler) entry(section string) *panelEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.panels[section]
	if !ok {
		e = &panelEntry{panel: &view.FormPanel{}}
		h.panels[section] = e
	}
	return e
}

// closePanel discards the section's form state, releasing its upload
// session if one is open.
func (h *Handler) closePanel(section string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.panels[section]
	if !ok {
		return
	}
	if e.formSession != "" {
		h.sessions.Close(e.formSession)
	}
	e.panel.Cancel()
	e.formSession = ""
	e.fields = nil
}

func (h *Handler) setNotice(c *gin.Context, msg string) {
	s := sessions.Default(c)
	s.Set(sessionKeyNotice, msg)
	if err := s.Save(); err != nil {
		h.log.Warn("Failed to save session notice", logger.Error(err))
	}
}

func (h *Handler) popNotice(c *gin.Context) string {
	s := sessions.Default(c)
	v := s.Get(sessionKeyNotice)
	if v == nil {
		return ""
	}
	s.Delete(sessionKeyNotice)
	if err := s.Save(); err != nil {
		h.log.Warn("Failed to clear session notice", logger.Error(err))
	}
	msg, _ := v.(string)
	return msg
}

func (h *Handler) publish(eventType events.EventType, col client.Collection, recordID int64) {
	if h.publisher == nil {
		return
	}
	h.publisher.PublishAsync(events.ContentEvent{
		EventType:  eventType,
		Collection: string(col),
		RecordID:   recordID,
	})
}
