package handlers

import (
	"errors"
	"net/http"
	"strings"

	"visioncare/middleware"
	userService "visioncare/services/user"
	"visioncare/utils"

	"github.com/gin-gonic/gin"
)

// RegisterHandler creates a profile and its linked clinical record.
func (hb *HandlerBundle) RegisterHandler(c *gin.Context) {
	var req userService.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	u, err := hb.Users.Register(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, userService.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, userService.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

// LoginHandler verifies credentials and returns the token plus the resolved
// session viewer.
func (hb *HandlerBundle) LoginHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	res, err := hb.Users.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, userService.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// LogoutHandler discards the viewer session for the presented token.
func (hb *HandlerBundle) LogoutHandler(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	if err := hb.Users.Logout(utils.HashToken(token)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signed out"})
}

// MeHandler returns the session viewer together with the profile.
func (hb *HandlerBundle) MeHandler(c *gin.Context) {
	viewer, ok := middleware.ViewerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session viewer"})
		return
	}

	u, err := hb.Users.GetByID(c.Request.Context(), viewer.UserID)
	if err != nil {
		if errors.Is(err, userService.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "viewer": viewer})
}
