package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jobtrackr/jobtrackr/internal/metrics"
)

// Routes registers every API endpoint on the engine. Shared between
// cmd/api and the HTTP tests so both exercise the same routing.
func Routes(r *gin.Engine, jobHandler *JobHandler) {
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", HealthCheck)

		api.GET("/jobs", jobHandler.ListJobs)
		api.POST("/jobs", jobHandler.CreateJob)
		// The literal stats segment takes precedence over :id.
		api.GET("/jobs/stats/summary", jobHandler.GetStats)
		api.GET("/jobs/:id", jobHandler.GetJob)
		api.PUT("/jobs/:id", jobHandler.UpdateJob)
		api.DELETE("/jobs/:id", jobHandler.DeleteJob)
		api.GET("/jobs/:id/activity", jobHandler.GetActivity)
	}
}
