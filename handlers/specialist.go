package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListSpecialistsHandler returns all specialists with their display names,
// as shown in the scheduling dropdown.
func (hb *HandlerBundle) ListSpecialistsHandler(c *gin.Context) {
	views, err := hb.Users.ListSpecialists(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list specialists", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"specialists": views})
}
