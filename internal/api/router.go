// Package api wires the HTTP routes of the pipeline API.
package api

import (
	httpSwagger "github.com/swaggo/http-swagger"

	"fitness-data-pipeline/internal/api/handler"
	"fitness-data-pipeline/pkg/router"
)

// NewRouter builds the API router with all routes registered.
func NewRouter() *router.Router {
	r := router.New()
	RegisterRoutes(r)
	return r
}

// RegisterRoutes registers the run endpoints and the swagger UI.
func RegisterRoutes(r *router.Router) {
	r.POST("/api/v1/runs", handler.CreateRun)
	r.GET("/api/v1/runs", handler.ListRuns)
	// More specific routes first
	r.GET("/api/v1/runs/*/errors", handler.GetRunErrors)
	r.GET("/api/v1/runs/*/stats", handler.GetRunStats)
	r.GET("/api/v1/runs/*/files", handler.GetRunFiles)
	r.GET("/api/v1/runs/*", handler.GetRun)
	r.GET("/api/v1/download/*/*", handler.DownloadFile)
	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))
}
