package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"job-aggregator/internal/resume"
)

// UploadResume is POST /resume with the file in multipart field "resume".
// Only the file name is kept.
func (h *Handler) UploadResume(c *gin.Context) {
	file, err := c.FormFile("resume")
	if errors.Is(err, http.ErrMissingFile) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No resume file provided"})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload resume"})
		return
	}

	rec := h.resumes.Save(resume.NewRecord(file.Filename, h.now()))
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Resume uploaded successfully",
		"resume":  rec,
	})
}

// GetResume is GET /resume.
func (h *Handler) GetResume(c *gin.Context) {
	rec, err := h.resumes.Get()
	if errors.Is(err, resume.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No resume found"})
		return
	}
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load resume"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"resume": rec})
}
