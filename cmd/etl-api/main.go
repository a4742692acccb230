// Package main provides the HTTP API entry point for the fitness data ETL.
package main

import (
	"os"

	_ "fitness-data-pipeline/docs"
	"fitness-data-pipeline/internal/api"
	"fitness-data-pipeline/internal/api/handler"
	"fitness-data-pipeline/internal/config"
	"fitness-data-pipeline/internal/logger"
	"fitness-data-pipeline/internal/store"
)

// @title Fitness Data Pipeline API
// @version 1.0
// @description API for running and tracking fitness dataset processing runs.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.SetLevelFromString(cfg.LogLevel)

	if err := store.InitDB(cfg.DBPath); err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	handler.Init(cfg)

	r := api.NewRouter()
	if err := r.Start(cfg.HTTPAddr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
