package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/NKTHUAN-2K5/portfolio/internal/config"
	"github.com/NKTHUAN-2K5/portfolio/internal/handlers"
	"github.com/NKTHUAN-2K5/portfolio/internal/logger"
	"github.com/NKTHUAN-2K5/portfolio/internal/metrics"
)

const (
	corsMaxAgeHours  = 12
	sessionName      = "portfolio_admin"
	sessionMaxAgeSec = 12 * 60 * 60
)

// NewRouter wires all routes: the public site, the admin panel behind
// session auth, and the JSON login endpoint for token clients.
func NewRouter(cfg *config.Config, h *handlers.Handler, m *metrics.Metrics, log logger.Logger) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"Authorization", "accept", "origin", "Cache-Control", "X-Requested-With",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	}))

	// Middleware
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	if m != nil {
		router.Use(m.Middleware())
		router.GET("/metrics", m.Handler())
	}

	store := cookie.NewStore([]byte(cfg.Auth.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAgeSec,
		HttpOnly: true,
	})
	router.Use(sessions.Sessions(sessionName, store))

	router.GET("/health", h.Health)
	router.Static("/static", "./static")

	// Public site
	router.GET("/", h.Home)
	router.GET("/stories/:id", h.StoryDetail)

	// Login is the only unauthenticated admin route
	router.GET("/admin/login", h.LoginPage)
	router.POST("/admin/login", h.Login)
	router.POST("/api/admin/login", h.APILogin)

	admin := router.Group("/admin", h.AuthRequired())
	admin.GET("", h.AdminHome)
	admin.POST("/logout", h.Logout)
	admin.GET("/settings", h.SettingsPage)
	admin.POST("/settings", h.SaveSettings)
	admin.POST("/settings/reset", h.ResetSettings)
	admin.POST("/uploads", h.UploadImages)
	admin.POST("/uploads/remove", h.RemoveImage)
	admin.GET("/:section", h.AdminSection)
	admin.GET("/:section/new", h.OpenCreate)
	admin.GET("/:section/edit", h.OpenEdit)
	admin.POST("/:section/save", h.SaveSection)
	admin.POST("/:section/delete", h.DeleteRecord)

	return router
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", statusCode),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", duration),
		)
	}
}
