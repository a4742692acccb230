package fetch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"fitness-data-pipeline/internal/config"
	"fitness-data-pipeline/internal/logger"
	"fitness-data-pipeline/pkg/utils"
)

// KaggleFetcher downloads the gym-members dataset through the kaggle
// CLI, which must be installed and configured with API credentials
// (~/.kaggle/kaggle.json).
type KaggleFetcher struct {
	Dataset string
	RawDir  string
}

// NewKaggleFetcher builds a fetcher from the fetch configuration.
func NewKaggleFetcher(cfg config.FetchConfig, rawDir string) *KaggleFetcher {
	return &KaggleFetcher{Dataset: cfg.KaggleDataset, RawDir: rawDir}
}

// Fetch runs `kaggle datasets download --unzip` into the raw data
// directory and renames the extracted CSV to a timestamped raw file.
// It returns the saved path.
func (f *KaggleFetcher) Fetch(ctx context.Context) (string, error) {
	if _, err := exec.LookPath("kaggle"); err != nil {
		return "", fmt.Errorf("kaggle CLI not found, install it and configure ~/.kaggle/kaggle.json: %w", err)
	}
	if err := os.MkdirAll(f.RawDir, 0755); err != nil {
		return "", fmt.Errorf("create raw data directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, "kaggle", "datasets", "download",
		"-d", f.Dataset, "-p", f.RawDir, "--unzip")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("kaggle download failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	latest, err := utils.LatestMatch(f.RawDir, "*.csv")
	if err != nil {
		return "", fmt.Errorf("kaggle download produced no CSV: %w", err)
	}
	if strings.HasPrefix(filepath.Base(latest), "gym_members_raw") {
		return latest, nil
	}

	dest := filepath.Join(f.RawDir, utils.FilenameAt("gym_members_raw", "csv", time.Now()))
	if err := os.Rename(latest, dest); err != nil {
		return "", fmt.Errorf("rename downloaded CSV: %w", err)
	}
	logger.Info("fetched members", "dataset", f.Dataset, "path", dest)
	return dest, nil
}
