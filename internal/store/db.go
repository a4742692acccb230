// Package store persists pipeline run tracking in SQLite: run status,
// per-dataset processing statistics, errors and exported file
// locations. The processed datasets themselves are never stored
// relationally; they live in the exported files.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"fitness-data-pipeline/internal/model"
)

var db *sql.DB

// InitDB opens the SQLite database and creates the tracking tables.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			dataset TEXT,
			format TEXT,
			status TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS run_stats (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			dataset TEXT,
			stats TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS run_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			error_message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS run_files (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT,
			dataset TEXT,
			format TEXT,
			path TEXT,
			created_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun records a new pipeline run in pending state.
func SaveRun(runID, dataset, format string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`INSERT INTO runs (id, dataset, format, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, dataset, format, "pending", now, now)
	return err
}

// UpdateRunStatus moves a run through its lifecycle
// (pending -> running -> completed/failed).
func UpdateRunStatus(runID, status string) error {
	_, err := db.Exec(`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), runID)
	return err
}

// SaveRunStats stores the audit counters of one dataset within a run.
func SaveRunStats(runID, dataset string, stats model.Stats) error {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO run_stats (run_id, dataset, stats, created_at) VALUES (?, ?, ?, ?)`,
		runID, dataset, string(statsJSON), time.Now().UTC())
	return err
}

// SaveRunError records an error for a run.
func SaveRunError(runID string, runErr error) error {
	if runErr == nil {
		return nil
	}
	_, err := db.Exec(`INSERT INTO run_errors (run_id, error_message, created_at) VALUES (?, ?, ?)`,
		runID, runErr.Error(), time.Now().UTC())
	return err
}

// SaveRunFiles records the exported files of one dataset within a run.
func SaveRunFiles(runID, dataset string, files map[string]string) error {
	now := time.Now().UTC()
	for format, path := range files {
		if _, err := db.Exec(`INSERT INTO run_files (run_id, dataset, format, path, created_at) VALUES (?, ?, ?, ?, ?)`,
			runID, dataset, format, path, now); err != nil {
			return err
		}
	}
	return nil
}

// ListRuns returns all runs, newest first.
func ListRuns() ([]map[string]any, error) {
	rows, err := db.Query(`SELECT id, dataset, format, status, created_at, updated_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []map[string]any
	for rows.Next() {
		var id, dataset, format, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &dataset, &format, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, map[string]any{
			"id":        id,
			"dataset":   dataset,
			"format":    format,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return runs, rows.Err()
}

// GetRun fetches one run with its per-dataset stats.
func GetRun(runID string) (map[string]any, error) {
	var dataset, format, status string
	var createdAt, updatedAt time.Time
	err := db.QueryRow(`SELECT dataset, format, status, created_at, updated_at FROM runs WHERE id = ?`, runID).
		Scan(&dataset, &format, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	stats, err := GetRunStats(runID)
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"id":        runID,
		"dataset":   dataset,
		"format":    format,
		"status":    status,
		"stats":     stats,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// GetRunStats returns the audit counters per dataset for a run.
func GetRunStats(runID string) (map[string]model.Stats, error) {
	rows, err := db.Query(`SELECT dataset, stats FROM run_stats WHERE run_id = ? ORDER BY created_at`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]model.Stats)
	for rows.Next() {
		var dataset, statsJSON string
		if err := rows.Scan(&dataset, &statsJSON); err != nil {
			return nil, err
		}
		var s model.Stats
		if err := json.Unmarshal([]byte(statsJSON), &s); err != nil {
			return nil, fmt.Errorf("corrupt stats for run %s: %w", runID, err)
		}
		stats[dataset] = s
	}
	return stats, rows.Err()
}

// GetRunErrors returns the recorded errors for a run, oldest first.
func GetRunErrors(runID string) ([]map[string]any, error) {
	rows, err := db.Query(`SELECT error_message, created_at FROM run_errors WHERE run_id = ? ORDER BY created_at`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errs []map[string]any
	for rows.Next() {
		var msg string
		var createdAt time.Time
		if err := rows.Scan(&msg, &createdAt); err != nil {
			return nil, err
		}
		errs = append(errs, map[string]any{"message": msg, "createdAt": createdAt})
	}
	return errs, rows.Err()
}

// RunFile is one exported output of a run.
type RunFile struct {
	Dataset string `json:"dataset"`
	Format  string `json:"format"`
	Path    string `json:"path"`
}

// GetRunFiles returns the exported files for a run.
func GetRunFiles(runID string) ([]RunFile, error) {
	rows, err := db.Query(`SELECT dataset, format, path FROM run_files WHERE run_id = ? ORDER BY created_at`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []RunFile
	for rows.Next() {
		var f RunFile
		if err := rows.Scan(&f.Dataset, &f.Format, &f.Path); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
