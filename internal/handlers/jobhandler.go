package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jobtrackr/jobtrackr/internal/dtos"
	"github.com/jobtrackr/jobtrackr/internal/metrics"
	"github.com/jobtrackr/jobtrackr/internal/repositories"
	"github.com/jobtrackr/jobtrackr/internal/services"
	"github.com/jobtrackr/jobtrackr/internal/validation"
)

const maxPageSize = 100

type JobHandler struct {
	JobService *services.JobService
	Activities *repositories.Activities
}

// NewJobHandler creates the handler with dependencies
func NewJobHandler(jobs *services.JobService, activities *repositories.Activities) *JobHandler {
	return &JobHandler{
		JobService: jobs,
		Activities: activities,
	}
}

// ListJobs is the GET /jobs endpoint: filter, sort, paginate.
func (h *JobHandler) ListJobs(c *gin.Context) {
	var query dtos.ListJobsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid query parameters: "+err.Error())
		return
	}

	if query.Page < 1 || query.Limit < 1 || query.Limit > maxPageSize {
		respondError(c, http.StatusBadRequest, "Invalid pagination parameters")
		return
	}
	if !repositories.SortableBy(query.SortBy) {
		respondError(c, http.StatusBadRequest, "Invalid sortBy field: "+query.SortBy)
		return
	}
	if query.SortOrder != "asc" && query.SortOrder != "desc" {
		respondError(c, http.StatusBadRequest, "sortOrder must be asc or desc")
		return
	}

	jobs, pagination, err := h.JobService.List(c.Request.Context(), repositories.ListOptions{
		Page:      query.Page,
		Limit:     query.Limit,
		Status:    query.Status,
		Priority:  query.Priority,
		Type:      query.Type,
		Company:   query.Company,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       jobs,
		"pagination": pagination,
	})
}

// GetJob is the GET /jobs/:id endpoint. A malformed id is a client
// error, distinct from the 404 of a well-formed unknown id.
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	job, err := h.JobService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			respondError(c, http.StatusNotFound, "Job not found")
			return
		}
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
	})
}

// CreateJob is the POST /jobs endpoint.
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	if fieldErrors := validation.ValidateCreate(&req); fieldErrors != nil {
		respondValidationErrors(c, fieldErrors)
		return
	}

	job, err := h.JobService.Create(c.Request.Context(), &req)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	metrics.JobsCreatedCounter.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    job,
		"message": "Job created successfully",
	})
}

// UpdateJob is the PUT /jobs/:id endpoint. Only supplied fields are
// replaced.
func (h *JobHandler) UpdateJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	var req dtos.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}

	if fieldErrors := validation.ValidateUpdate(&req); fieldErrors != nil {
		respondValidationErrors(c, fieldErrors)
		return
	}

	job, err := h.JobService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			respondError(c, http.StatusNotFound, "Job not found")
			return
		}
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    job,
		"message": "Job updated successfully",
	})
}

// DeleteJob is the DELETE /jobs/:id endpoint. Hard delete; the
// response confirms rather than echoes the removed record.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	err := h.JobService.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			respondError(c, http.StatusNotFound, "Job not found")
			return
		}
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Job deleted successfully",
	})
}

// GetStats is the GET /jobs/stats/summary endpoint, aggregating over
// the whole collection.
func (h *JobHandler) GetStats(c *gin.Context) {
	stats, err := h.JobService.Stats(c.Request.Context())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

// GetActivity is the GET /jobs/:id/activity endpoint, newest-first.
func (h *JobHandler) GetActivity(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	activities, err := h.Activities.ListByJob(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    activities,
	})
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Job tracker API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func jobID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid job id format")
		return "", false
	}
	return id, true
}
