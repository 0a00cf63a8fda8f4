package main

import (
	"fmt"

	"github.com/asaskevich/EventBus"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/jobtrackr/jobtrackr/internal/config"
	"github.com/jobtrackr/jobtrackr/internal/handlers"
	"github.com/jobtrackr/jobtrackr/internal/logger"
	"github.com/jobtrackr/jobtrackr/internal/metrics"
	"github.com/jobtrackr/jobtrackr/internal/middleware"
	"github.com/jobtrackr/jobtrackr/internal/repositories"
	"github.com/jobtrackr/jobtrackr/internal/services"
)

func main() {
	// A local .env is optional; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg := config.Get()

	metrics.Register()
	logger.Setup(cfg.Logger)

	dbContext, err := repositories.NewDbContext(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	jobs := repositories.NewJobsRepository(dbContext.DB)
	activities := repositories.NewActivitiesRepository(dbContext.DB)

	bus := EventBus.New()

	recorder, err := services.NewActivityRecorder(activities, bus)
	if err != nil {
		log.Fatalf("can't create activity recorder: %v", err)
	}
	defer recorder.Stop()

	sweeper, err := services.NewFollowUpSweeper(jobs, cfg.Server.FollowUpSweepAt)
	if err != nil {
		log.Fatalf("can't create follow-up sweeper: %v", err)
	}
	defer sweeper.Stop()

	jobService := services.NewJobService(jobs, bus)
	jobHandler := handlers.NewJobHandler(jobService, activities)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Metrics())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	handlers.Routes(r, jobHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Infof("server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server failed to start: %v", err)
	}
}
