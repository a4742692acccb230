package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputManager organizes processed output files under per-run
// directories and generates download URLs for the API.
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager.
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{BaseOutputDir: baseOutputDir}
}

// CreateRunDir creates (if needed) and returns the output directory
// for a run.
func (om *OutputManager) CreateRunDir(runID string) (string, error) {
	runDir := filepath.Join(om.BaseOutputDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create run output directory: %w", err)
	}
	return runDir, nil
}

// FilePath returns the absolute path of a file inside a run directory.
// The file name is stripped of any path components first.
func (om *OutputManager) FilePath(runID, fileName string) string {
	return filepath.Join(om.BaseOutputDir, runID, filepath.Base(fileName))
}

// DownloadURL generates the API download URL for a run file.
func (om *OutputManager) DownloadURL(runID, fileName string) string {
	return fmt.Sprintf("/api/v1/download/%s/%s", runID, filepath.Base(fileName))
}

// FileType determines the export format from a file extension.
func (om *OutputManager) FileType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	case ".xlsx", ".xls":
		return "xlsx"
	default:
		return "unknown"
	}
}
