package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/NKTHUAN-2K5/portfolio/internal/logger"
)

// LoginPage shows the admin login form.
func (h *Handler) LoginPage(c *gin.Context) {
	if isAuthenticated(c) {
		c.Redirect(http.StatusFound, "/admin")
		return
	}
	c.Status(http.StatusOK)
	if err := h.renderer.WriteLoginPage(c.Writer, h.popNotice(c)); err != nil {
		h.log.Error("Failed to render login page", logger.Error(err))
	}
}

// Login verifies credentials against the backend and opens an admin
// session. Credentials are never checked locally.
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	if err := h.client.Login(c.Request.Context(), username, password); err != nil {
		h.log.Warn("Login rejected",
			logger.String("username", username),
			logger.Error(err),
		)
		h.setNotice(c, "Invalid username or password.")
		c.Redirect(http.StatusFound, "/admin/login")
		return
	}

	s := sessions.Default(c)
	s.Set(sessionKeyAuth, true)
	if err := s.Save(); err != nil {
		h.log.Error("Failed to save login session", logger.Error(err))
		c.String(http.StatusInternalServerError, "session error")
		return
	}

	h.log.Info("Admin logged in", logger.String("username", username))
	c.Redirect(http.StatusFound, "/admin")
}

// Logout clears the admin session.
func (h *Handler) Logout(c *gin.Context) {
	s := sessions.Default(c)
	s.Clear()
	if err := s.Save(); err != nil {
		h.log.Warn("Failed to clear session", logger.Error(err))
	}
	c.Redirect(http.StatusFound, "/admin/login")
}

// APILogin authenticates a JSON client and returns a bearer token for
// subsequent API calls.
func (h *Handler) APILogin(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "username and password are required"})
		return
	}

	if err := h.client.Login(c.Request.Context(), req.Username, req.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid credentials"})
		return
	}

	token, err := h.issueToken(req.Username)
	if err != nil {
		h.log.Error("Failed to issue token", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "token error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

func (h *Handler) issueToken(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.tokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.jwtSecret)
}

func (h *Handler) verifyToken(raw string) error {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return h.jwtSecret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}

// AuthRequired gates admin routes. Browser traffic authenticates by
// session; API clients by bearer token. Unauthenticated API requests get
// 401, browsers get the login page.
func (h *Handler) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isAuthenticated(c) {
			c.Next()
			return
		}

		if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			raw := strings.TrimPrefix(auth, "Bearer ")
			if err := h.verifyToken(raw); err == nil {
				c.Next()
				return
			}
		}

		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authentication required"})
			return
		}
		c.Redirect(http.StatusFound, "/admin/login")
		c.Abort()
	}
}

func isAuthenticated(c *gin.Context) bool {
	v := sessions.Default(c).Get(sessionKeyAuth)
	authed, _ := v.(bool)
	return authed
}
