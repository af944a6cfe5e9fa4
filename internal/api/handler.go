package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"job-aggregator/internal/models"
)

type JobSearcher interface {
	SearchAll(ctx context.Context, query string, filters models.SearchFilters) ([]models.Job, error)
}

type NotificationSender interface {
	SendApplicationNotification(ctx context.Context, n models.ApplicationNotification) error
}

type ResumeStore interface {
	Save(rec models.ResumeRecord) models.ResumeRecord
	Get() (models.ResumeRecord, error)
}

type Handler struct {
	searcher JobSearcher
	sender   NotificationSender
	resumes  ResumeStore
	now      func() time.Time
}

func NewHandler(searcher JobSearcher, sender NotificationSender, resumes ResumeStore) *Handler {
	return &Handler{
		searcher: searcher,
		sender:   sender,
		resumes:  resumes,
		now:      time.Now,
	}
}

// Register mounts the job and resume routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/jobs", h.SearchJobs)
	r.POST("/jobs", h.Apply)
	r.GET("/resume", h.GetResume)
	r.POST("/resume", h.UploadResume)
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
