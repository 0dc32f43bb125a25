package handlers

import (
	"errors"
	"net/http"

	"visioncare/middleware"
	appointmentService "visioncare/services/appointment"

	"github.com/gin-gonic/gin"
)

// ListAppointmentsHandler returns the appointments the viewer may see.
func (hb *HandlerBundle) ListAppointmentsHandler(c *gin.Context) {
	viewer, ok := middleware.ViewerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session viewer"})
		return
	}

	views, err := hb.Appointments.List(c.Request.Context(), viewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list appointments", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": views})
}

// AvailabilityHandler returns the free slots for a specialist on a date.
func (hb *HandlerBundle) AvailabilityHandler(c *gin.Context) {
	specialistID := c.Query("especialista_id")
	date := c.Query("fecha")

	slots, err := hb.Appointments.Availability(c.Request.Context(), specialistID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute availability", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// ScheduleAppointmentHandler books a slot for the viewer.
func (hb *HandlerBundle) ScheduleAppointmentHandler(c *gin.Context) {
	viewer, ok := middleware.ViewerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session viewer"})
		return
	}

	var req appointmentService.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := hb.Appointments.Schedule(c.Request.Context(), viewer, req)
	if err != nil {
		respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"appointment": appt})
}

// CancelAppointmentHandler cancels (deletes) an appointment.
func (hb *HandlerBundle) CancelAppointmentHandler(c *gin.Context) {
	viewer, ok := middleware.ViewerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session viewer"})
		return
	}

	var input struct {
		Reason string `json:"motivo"`
	}
	// The reason may arrive in the body or as a query parameter.
	if err := c.ShouldBindJSON(&input); err != nil || input.Reason == "" {
		input.Reason = c.Query("motivo")
	}

	if err := hb.Appointments.Cancel(c.Request.Context(), viewer, c.Param("id"), input.Reason); err != nil {
		respondAppointmentError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func respondAppointmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, appointmentService.ErrSlotTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, appointmentService.ErrNotPermitted):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, appointmentService.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, appointmentService.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "appointment operation failed", "details": err.Error()})
	}
}
