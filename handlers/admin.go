package handlers

import (
	"errors"
	"net/http"

	userService "visioncare/services/user"

	"github.com/gin-gonic/gin"
)

// GetAllUsersHandler returns every profile, newest first. Admin only.
func (hb *HandlerBundle) GetAllUsersHandler(c *gin.Context) {
	users, err := hb.Users.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// UpdateUserRoleHandler changes a user's role. Admin only. The change takes
// full effect on the user's next sign-in.
func (hb *HandlerBundle) UpdateUserRoleHandler(c *gin.Context) {
	var input struct {
		Role string `json:"rol" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Users.UpdateRole(c.Request.Context(), c.Param("id"), input.Role); err != nil {
		switch {
		case errors.Is(err, userService.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, userService.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update role", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
