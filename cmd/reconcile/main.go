package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/workbridge/unified-identity/internal/config"
	"github.com/workbridge/unified-identity/internal/database"
	"github.com/workbridge/unified-identity/internal/logging"
	"github.com/workbridge/unified-identity/internal/platform/career"
	"github.com/workbridge/unified-identity/internal/platform/freelancer"
	"github.com/workbridge/unified-identity/internal/reconcile"
	"github.com/workbridge/unified-identity/internal/store"
)

// Single-pass batch job: backfills canonical identities for platform
// accounts that predate the unified store and links them. Idempotent; a
// clean rerun creates no new rows. Configured entirely through the
// MASTER_URL / FREELANCER_URL / CAREER_URL env vars and their
// *_SERVICE_KEY companions.
func main() {
	logging.Setup()

	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	masterDB, err := database.Connect("master", cfg.Master.DSN())
	if err != nil {
		slog.Error("master store connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(masterDB)

	freelancerDB, err := database.Connect("freelancer", cfg.Freelancer.DSN())
	if err != nil {
		slog.Error("freelancer store connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(freelancerDB)

	careerDB, err := database.Connect("career_copilot", cfg.Career.DSN())
	if err != nil {
		slog.Error("career store connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(careerDB)

	masterStore := store.New(masterDB)
	if err := masterStore.Migrate(); err != nil {
		slog.Error("master store migration failed", "error", err)
		os.Exit(1)
	}

	job := reconcile.New(masterStore, freelancer.New(freelancerDB), career.New(careerDB))

	summary, err := job.Run(ctx)
	if err != nil {
		slog.Error("reconciliation failed", "error", err)
		os.Exit(1)
	}

	slog.Info("done",
		"total_unified_users", summary.TotalUsers,
		"total_platform_links", summary.TotalLinks,
	)
}
