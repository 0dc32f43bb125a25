package handlers

import (
	"errors"
	"net/http"

	"visioncare/models"
	patientService "visioncare/services/patient"

	"github.com/gin-gonic/gin"
)

// ListPatientsHandler returns the patient listing used by staff screens.
func (hb *HandlerBundle) ListPatientsHandler(c *gin.Context) {
	patients, err := hb.Patients.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list patients", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

// SearchPatientsHandler finds patients by name, falling back to document
// number.
func (hb *HandlerBundle) SearchPatientsHandler(c *gin.Context) {
	patients, err := hb.Patients.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "patient search failed", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

// CreatePatientHandler registers a new patient record.
func (hb *HandlerBundle) CreatePatientHandler(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Patients.Create(c.Request.Context(), &patient); err != nil {
		respondPatientError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"patient": patient})
}

// UpdatePatientHandler applies a partial edit keyed by visible form-field
// names.
func (hb *HandlerBundle) UpdatePatientHandler(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Patients.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		respondPatientError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// DeletePatientHandler removes a patient record.
func (hb *HandlerBundle) DeletePatientHandler(c *gin.Context) {
	if err := hb.Patients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondPatientError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func respondPatientError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, patientService.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, patientService.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "patient operation failed", "details": err.Error()})
	}
}
