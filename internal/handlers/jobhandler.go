package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/habte-job-portal/internal/dtos"
	"github.com/justsurfingit/habte-job-portal/internal/services"
)

type JobHandler struct {
	JobService *services.JobService
	Logger     *slog.Logger
}

func NewJobHandler(j *services.JobService, logger *slog.Logger) *JobHandler {
	return &JobHandler{JobService: j, Logger: logger}
}

// CreateJob is POST /jobs. Payment completes asynchronously.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	job, err := h.JobService.CreateJob(c.Request.Context(), currentUser(c), &req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	respondOK(c, http.StatusCreated, gin.H{
		"message": "Job posted successfully. Processing payment...",
		"job":     job,
	})
}

// ListJobs is GET /jobs.
func (h *JobHandler) ListJobs(c *gin.Context) {
	var params dtos.JobListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, h.Logger, bindingError(err))
		return
	}
	q, err := services.ParseJobQuery(params)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	page, err := h.JobService.ListJobs(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"jobs": page.Jobs,
		"pagination": gin.H{
			"currentPage": page.Page,
			"totalPages":  page.TotalPages,
			"totalJobs":   page.Total,
			"limit":       page.Limit,
		},
	})
}

// GetJob accepts either an id or a shareable link.
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.JobService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"job": job})
}

func (h *JobHandler) MyJobs(c *gin.Context) {
	jobs, err := h.JobService.ListEmployerJobs(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs)})
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dtos.JobUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	job, err := h.JobService.UpdateJob(c.Request.Context(), currentUser(c), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Job updated successfully.", "job": job})
}

func (h *JobHandler) DeleteJob(c *gin.Context) {
	if err := h.JobService.DeleteJob(c.Request.Context(), currentUser(c), c.Param("id")); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"message": "Job deleted successfully."})
}
