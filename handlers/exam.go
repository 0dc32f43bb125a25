package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"visioncare/middleware"
	"visioncare/models"
	examService "visioncare/services/exam"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListExamsHandler returns the exams the viewer may see.
func (hb *HandlerBundle) ListExamsHandler(c *gin.Context) {
	viewer, ok := middleware.ViewerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session viewer"})
		return
	}

	views, err := hb.Exams.List(c.Request.Context(), viewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list exams", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"exams": views})
}

// CreateExamHandler registers an exam. The request is multipart: the record
// fields arrive as form values and the PDF, when present, as the "archivo"
// file part.
func (hb *HandlerBundle) CreateExamHandler(c *gin.Context) {
	exam := models.Exam{
		PatientID:    c.PostForm("paciente_id"),
		SpecialistID: c.PostForm("especialista_id"),
		Date:         c.PostForm("fecha"),
		Notes:        c.PostForm("notas"),
	}

	localPath := ""
	if file, err := c.FormFile("archivo"); err == nil {
		if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF files are accepted"})
			return
		}
		localPath = filepath.Join(os.TempDir(), uuid.New().String()+"_"+filepath.Base(file.Filename))
		if err := c.SaveUploadedFile(file, localPath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to receive file", "details": err.Error()})
			return
		}
		defer os.Remove(localPath)
	}

	if err := hb.Exams.Create(c.Request.Context(), &exam, localPath); err != nil {
		respondExamError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"exam": exam})
}

// UpdateExamHandler applies a partial edit keyed by visible form-field
// names.
func (hb *HandlerBundle) UpdateExamHandler(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Exams.Update(c.Request.Context(), c.Param("id"), fields); err != nil {
		respondExamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// DeleteExamHandler removes an exam and its stored PDF.
func (hb *HandlerBundle) DeleteExamHandler(c *gin.Context) {
	if err := hb.Exams.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondExamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ExamFileURLHandler returns a short-lived signed URL for the exam's PDF.
func (hb *HandlerBundle) ExamFileURLHandler(c *gin.Context) {
	viewer, ok := middleware.ViewerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no session viewer"})
		return
	}

	url, err := hb.Exams.FileURL(c.Request.Context(), viewer, c.Param("id"))
	if err != nil {
		respondExamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func respondExamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, examService.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, examService.ErrNotPermitted):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, examService.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "exam operation failed", "details": err.Error()})
	}
}
