// Package handler implements the HTTP handlers for pipeline runs.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"fitness-data-pipeline/internal/config"
	"fitness-data-pipeline/internal/logger"
	"fitness-data-pipeline/internal/pipeline"
	"fitness-data-pipeline/internal/store"
	"fitness-data-pipeline/pkg/utils"
)

var (
	cfg     config.Config
	outputs *utils.OutputManager
)

// Init wires the handlers to the loaded configuration. Must be called
// before the router serves requests.
func Init(c config.Config) {
	cfg = c
	outputs = utils.NewOutputManager(c.ProcessedDataDir)
}

// RunRequest is the payload of POST /api/v1/runs.
type RunRequest struct {
	Dataset string `json:"dataset"` // exercises, members or all
	Format  string `json:"format"`  // json, csv, xlsx or both (default both)
}

// CreateRun starts a new processing run
// @Summary Start a processing run
// @Description Process the newest raw dataset file(s) through the full pipeline
// @Tags runs
// @Accept json
// @Produce json
// @Param run body RunRequest true "Run configuration"
// @Success 200 {object} map[string]interface{} "Run created"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [post]
func CreateRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.Format == "" {
		req.Format = "both"
	}
	switch req.Dataset {
	case "exercises", "members", "all":
	default:
		http.Error(w, "dataset must be exercises, members or all", http.StatusBadRequest)
		return
	}

	runID := uuid.New().String()
	if err := store.SaveRun(runID, req.Dataset, req.Format); err != nil {
		http.Error(w, "Failed to save run", http.StatusInternalServerError)
		return
	}

	go executeRun(runID, req)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"message":   "Run created successfully",
		"runID":     runID,
		"status":    "pending",
		"createdAt": time.Now().UTC(),
	})
}

// executeRun drives one background run. Each dataset within the run
// owns its own stats and batches; a dataset failure fails the run.
func executeRun(runID string, req RunRequest) {
	log := logger.WithRun(runID)
	ctx := context.Background()

	store.UpdateRunStatus(runID, "running")
	outDir, err := outputs.CreateRunDir(runID)
	if err != nil {
		failRun(runID, err)
		return
	}

	datasets := []string{req.Dataset}
	if req.Dataset == "all" {
		datasets = []string{"exercises", "members"}
	}

	for _, dataset := range datasets {
		var result pipeline.Result
		var runErr error

		switch dataset {
		case "exercises":
			var input string
			input, runErr = utils.LatestMatch(cfg.RawDataDir, "exercisedb_raw_*.json")
			if runErr == nil {
				result, runErr = pipeline.RunExercises(ctx, pipeline.Options{
					InputPath: input, Format: req.Format, OutDir: outDir,
				})
			}
		case "members":
			var input string
			input, runErr = utils.LatestMatch(cfg.RawDataDir, "gym_members_raw_*.csv")
			if runErr == nil {
				result, runErr = pipeline.RunMembers(ctx, pipeline.Options{
					InputPath: input, Format: req.Format, OutDir: outDir,
				})
			}
		}

		if runErr != nil {
			log.Error("run failed", "dataset", dataset, "error", runErr)
			failRun(runID, runErr)
			return
		}
		store.SaveRunStats(runID, dataset, result.Stats)
		store.SaveRunFiles(runID, dataset, result.Files)
	}

	store.UpdateRunStatus(runID, "completed")
	log.Info("run completed")
}

func failRun(runID string, err error) {
	store.SaveRunError(runID, err)
	store.UpdateRunStatus(runID, "failed")
}

// ListRuns lists all processing runs
// @Summary List runs
// @Description List all processing runs with their current status
// @Tags runs
// @Produce json
// @Success 200 {array} map[string]interface{} "List of runs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /runs [get]
func ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := store.ListRuns()
	if err != nil {
		http.Error(w, "Failed to fetch runs", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(runs)
}

// GetRun retrieves one run
// @Summary Get run
// @Description Retrieve status and statistics of one processing run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run details"
// @Failure 404 {object} map[string]interface{} "Run not found"
// @Router /runs/{id} [get]
func GetRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r.URL.Path, "")
	if !ok {
		return
	}
	run, err := store.GetRun(runID)
	if err != nil {
		http.Error(w, "Run not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(run)
}

// GetRunErrors retrieves run errors
// @Summary Get run errors
// @Description Retrieve all errors recorded for a run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run errors"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Router /runs/{id}/errors [get]
func GetRunErrors(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r.URL.Path, "/errors")
	if !ok {
		return
	}
	errs, err := store.GetRunErrors(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"run_id": runID,
		"errors": errs,
		"count":  len(errs),
	})
}

// GetRunStats retrieves run statistics
// @Summary Get run statistics
// @Description Retrieve per-dataset processing statistics of a run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run statistics"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Router /runs/{id}/stats [get]
func GetRunStats(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r.URL.Path, "/stats")
	if !ok {
		return
	}
	stats, err := store.GetRunStats(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve stats", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"run_id": runID,
		"stats":  stats,
	})
}

// GetRunFiles lists a run's exported files
// @Summary Get run files
// @Description List the exported files of a run with download URLs
// @Tags runs
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} map[string]interface{} "Run files"
// @Failure 400 {object} map[string]interface{} "Invalid run ID"
// @Router /runs/{id}/files [get]
func GetRunFiles(w http.ResponseWriter, r *http.Request) {
	runID, ok := runIDFromPath(w, r.URL.Path, "/files")
	if !ok {
		return
	}
	files, err := store.GetRunFiles(runID)
	if err != nil {
		http.Error(w, "Failed to retrieve files", http.StatusInternalServerError)
		return
	}

	type fileInfo struct {
		store.RunFile
		DownloadURL string `json:"download_url"`
	}
	infos := make([]fileInfo, len(files))
	for i, f := range files {
		infos[i] = fileInfo{RunFile: f, DownloadURL: outputs.DownloadURL(runID, f.Path)}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"run_id": runID,
		"files":  infos,
		"count":  len(infos),
	})
}

// DownloadFile serves an exported run file
// @Summary Download an exported file
// @Description Download one exported output file of a run
// @Tags runs
// @Produce octet-stream
// @Param id path string true "Run ID"
// @Param file path string true "File name"
// @Success 200 {file} file "Exported file"
// @Failure 404 {object} map[string]interface{} "File not found"
// @Router /download/{id}/{file} [get]
func DownloadFile(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/download/")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		http.Error(w, "Run ID and file name are required", http.StatusBadRequest)
		return
	}
	http.ServeFile(w, r, outputs.FilePath(parts[0], parts[1]))
}

// runIDFromPath extracts the run ID from /api/v1/runs/{id}{suffix},
// writing a 400 response when the path is malformed.
func runIDFromPath(w http.ResponseWriter, path, suffix string) (string, bool) {
	prefix := "/api/v1/runs/"
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return "", false
	}
	runID := path[len(prefix) : len(path)-len(suffix)]
	if runID == "" || strings.Contains(runID, "/") {
		http.Error(w, "Run ID is required", http.StatusBadRequest)
		return "", false
	}
	return runID, true
}
