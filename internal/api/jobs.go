package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"job-aggregator/internal/logger"
	"job-aggregator/internal/models"
)

type ApplyRequest struct {
	JobID    string `json:"jobId"`
	JobTitle string `json:"jobTitle" binding:"required"`
	Company  string `json:"company" binding:"required"`
	Location string `json:"location"`
}

// SearchJobs is GET /jobs?q=&contractType=&country=&isRemote=
func (h *Handler) SearchJobs(c *gin.Context) {
	query := c.Query("q")
	filters := models.SearchFilters{
		ContractType: c.DefaultQuery("contractType", models.DefaultContractType),
		Country:      c.DefaultQuery("country", models.DefaultCountry),
		RemoteOnly:   c.Query("isRemote") == "true",
	}
	// An explicitly empty value falls back to the default as well.
	if filters.ContractType == "" {
		filters.ContractType = models.DefaultContractType
	}
	if filters.Country == "" {
		filters.Country = models.DefaultCountry
	}

	jobs, err := h.searcher.SearchAll(c.Request.Context(), query, filters)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch jobs"})
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// Apply is POST /jobs. jobTitle and company are required; a body missing
// either is answered with 500 like any other unparseable body. The
// acknowledgement is only sent once the notification has been delivered.
func (h *Handler) Apply(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		return
	}

	notification := models.ApplicationNotification{
		JobTitle:        req.JobTitle,
		Company:         req.Company,
		Location:        req.Location,
		ApplicationDate: h.now(),
		Status:          models.StatusApplied,
	}
	if err := h.sender.SendApplicationNotification(c.Request.Context(), notification); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit application"})
		return
	}

	log := logger.Get()
	log.Info().Str("job_id", req.JobID).Str("company", req.Company).Msg("Application submitted")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Application submitted successfully",
	})
}
