// Manually runs the scheduled course jobs once: due re-releases and pending auto-lock retries.
//
// The server runs both on its cron schedule. This is for operators after an outage
// or a bulk import, when waiting for the next tick is not acceptable.
//
// Usage: go run scripts/run_course_jobs.go

package main

import (
	"context"
	"humaniq_backend/internal/catalog"
	"humaniq_backend/internal/config"
	"humaniq_backend/internal/repository"
	"humaniq_backend/internal/service"
	"humaniq_backend/pkg/database"
	"humaniq_backend/pkg/logger"
	"log"
	"time"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode, false)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("redis connection failed: %v", err)
	}
	if rdb == nil {
		// the in-process queue of a running server is not reachable from here
		log.Println("redis disabled, only scheduled releases will run")
	}

	cat, err := catalog.LoadOrDefault(cfg.Courses.CatalogPath)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	store := repository.NewGormStore(db)
	gate := service.NewAvailabilityService(store, cat, cfg.Courses.AvailabilityBypass)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	released, err := gate.ReleaseDue(ctx)
	if err != nil {
		log.Fatalf("release failed: %v", err)
	}
	log.Printf("released %d courses", released)

	if rdb != nil {
		followUps := service.NewFollowUpService(gate, service.NewRedisFollowUpQueue(rdb), cfg.Scheduler.FollowUpMaxRetries)
		done, err := followUps.ProcessPending(ctx)
		if err != nil {
			log.Fatalf("follow-up retry failed: %v", err)
		}
		log.Printf("applied %d pending auto-locks", done)
	}
}
