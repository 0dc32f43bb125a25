package handlers

import (
	"errors"
	"net/http"

	"visioncare/middleware"
	"visioncare/models"
	referralService "visioncare/services/referral"

	"github.com/gin-gonic/gin"
)

// ListReferralsHandler returns the referrals the viewer may see.
func (hb *HandlerBundle) ListReferralsHandler(c *gin.Context) {
	viewer, ok := middleware.ViewerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session viewer"})
		return
	}

	views, err := hb.Referrals.List(c.Request.Context(), viewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list referrals", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"referrals": views})
}

// CreateReferralHandler registers a new referral.
func (hb *HandlerBundle) CreateReferralHandler(c *gin.Context) {
	var referral models.Referral
	if err := c.ShouldBindJSON(&referral); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Referrals.Create(c.Request.Context(), &referral); err != nil {
		respondReferralError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"referral": referral})
}

// UpdateReferralHandler applies a partial edit keyed by visible form-field
// names, including the status dropdown.
func (hb *HandlerBundle) UpdateReferralHandler(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Referrals.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		respondReferralError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// DeleteReferralHandler removes a referral.
func (hb *HandlerBundle) DeleteReferralHandler(c *gin.Context) {
	if err := hb.Referrals.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondReferralError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func respondReferralError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, referralService.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, referralService.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "referral operation failed", "details": err.Error()})
	}
}
