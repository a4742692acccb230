// Package fetch downloads the raw datasets the pipelines consume: the
// public ExerciseDB JSON dump over HTTP and the Kaggle gym-members
// dataset through the kaggle CLI. Fetchers either deliver a complete
// raw file or fail; there is no partial data.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"fitness-data-pipeline/internal/config"
	"fitness-data-pipeline/internal/logger"
	"fitness-data-pipeline/internal/model"
	"fitness-data-pipeline/pkg/utils"
)

// ExerciseDBFetcher downloads the free-exercise-db dump and stores it
// with provenance metadata in the raw data directory.
type ExerciseDBFetcher struct {
	Client     *http.Client
	URL        string
	UserAgent  string
	MaxRetries int
	RetryDelay time.Duration
	RawDir     string
}

// NewExerciseDBFetcher builds a fetcher from the fetch configuration.
func NewExerciseDBFetcher(cfg config.FetchConfig, rawDir string) *ExerciseDBFetcher {
	return &ExerciseDBFetcher{
		Client:     &http.Client{Timeout: cfg.Timeout()},
		URL:        cfg.ExerciseDBURL,
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RequestDelay(),
		RawDir:     rawDir,
	}
}

// Fetch downloads the exercise list, wraps it with metadata and writes
// exercisedb_raw_<timestamp>.json. It returns the saved path.
func (f *ExerciseDBFetcher) Fetch(ctx context.Context) (string, error) {
	exercises, err := f.download(ctx)
	if err != nil {
		return "", err
	}

	now := time.Now()
	payload := map[string]any{
		"metadata": model.Metadata{
			"source":          "ExerciseDB",
			"source_url":      f.URL,
			"scraped_at":      now.Format(time.RFC3339),
			"total_exercises": len(exercises),
		},
		"exercises": exercises,
	}

	path := filepath.Join(f.RawDir, utils.FilenameAt("exercisedb_raw", "json", now))
	if err := utils.SaveJSON(path, payload); err != nil {
		return "", fmt.Errorf("save raw exercises: %w", err)
	}
	logger.Info("fetched exercises", "url", f.URL, "records", len(exercises), "path", path)
	return path, nil
}

// download GETs the exercise list with bounded retries. Retrying lives
// here, at the network boundary; the pipeline itself never retries.
func (f *ExerciseDBFetcher) download(ctx context.Context) ([]json.RawMessage, error) {
	var lastErr error
	attempts := f.MaxRetries
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(f.RetryDelay):
			}
		}
		exercises, err := f.get(ctx)
		if err == nil {
			return exercises, nil
		}
		lastErr = err
		logger.Warn("exercise download failed", "attempt", attempt, "error", err)
	}
	return nil, fmt.Errorf("download exercises after %d attempts: %w", attempts, lastErr)
}

func (f *ExerciseDBFetcher) get(ctx context.Context) ([]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var exercises []json.RawMessage
	if err := json.Unmarshal(body, &exercises); err != nil {
		return nil, fmt.Errorf("decode exercise list: %w", err)
	}
	return exercises, nil
}
