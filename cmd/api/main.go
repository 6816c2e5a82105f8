package main

import (
	"context"
	"log"

	"fleet-tracker/internal/core/config"
	"fleet-tracker/internal/core/logger"
	"fleet-tracker/internal/core/redisdb"
	"fleet-tracker/internal/core/server"
	checkpointadapter "fleet-tracker/internal/features/checkpoints/adapters"
	checkpointdomain "fleet-tracker/internal/features/checkpoints/domain"
	checkpointhandler "fleet-tracker/internal/features/checkpoints/handler"
	"fleet-tracker/internal/features/checkpoints/registry"
	fleetadapter "fleet-tracker/internal/features/fleet/adapters"
	fleetdomain "fleet-tracker/internal/features/fleet/domain"
	fleethandler "fleet-tracker/internal/features/fleet/handler"
	"fleet-tracker/internal/features/fleet/parser"
	"fleet-tracker/internal/features/fleet/resolver"
	fleetservice "fleet-tracker/internal/features/fleet/service"

	"go.uber.org/zap"
)

// @title Fleet Tracker API
// @version 1.0
// @description Ingests truck fleet status reports and serves checkpoint-resolved fleet snapshots for the Mombasa–Kampala corridor.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	ctx := context.Background()
	client, err := redisdb.Connect(ctx, cfg.Redis.URL)
	if err != nil {
		l.Fatal("Redis connection failed", zap.Error(err))
	}
	defer client.Close()
	l.Info("Redis connection verified")

	// Checkpoint taxonomy: repository, seeded corridor, cached registry.
	checkpointRepo := checkpointadapter.NewRedisCheckpointRepository(client)
	if err := checkpointRepo.Seed(ctx, checkpointdomain.DefaultCorridor()); err != nil {
		l.Fatal("Checkpoint seeding failed", zap.Error(err))
	}
	checkpointRegistry := registry.New(checkpointRepo)
	checkpointHdl := checkpointhandler.NewCheckpointHandler(checkpointRepo, checkpointRegistry)

	// Fleet ingestion and query pipeline.
	snapshotRepo := fleetadapter.NewRedisSnapshotRepository(client)
	classifier := fleetdomain.NewKeywordClassifier(fleetdomain.DefaultKeywordRules())
	ingestSvc := fleetservice.NewIngestService(
		parser.New(cfg.Upload.Sheet),
		resolver.New(checkpointRegistry, classifier),
		snapshotRepo,
	)
	querySvc := fleetservice.NewQueryService(snapshotRepo)
	fleetHdl := fleethandler.NewFleetHandler(ingestSvc, querySvc, cfg.MaxUploadBytes())

	srv := server.New(cfg)

	// Register Routes
	checkpoints := srv.App.Group("/checkpoints")
	checkpoints.Get("/", checkpointHdl.ListCheckpoints)
	checkpoints.Post("/", checkpointHdl.CreateCheckpoint)
	checkpoints.Post("/reload", checkpointHdl.ReloadRegistry)
	checkpoints.Put("/:name", checkpointHdl.UpdateCheckpoint)
	checkpoints.Delete("/:name", checkpointHdl.DeleteCheckpoint)

	fleet := srv.App.Group("/fleet-tracking")
	fleet.Post("/upload", fleetHdl.Upload)
	fleet.Get("/snapshots", fleetHdl.ListSnapshots)
	fleet.Get("/latest", fleetHdl.LatestSnapshot)
	fleet.Get("/positions", fleetHdl.Positions)
	fleet.Get("/checkpoint/:name", fleetHdl.TrucksAtCheckpoint)
	fleet.Get("/checkpoint/:name/copy", fleetHdl.CopyableList)
	fleet.Delete("/snapshots/:id", fleetHdl.DeleteSnapshot)
	fleet.Get("/stats/distribution", fleetHdl.CheckpointDistribution)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
