package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SaveJSON writes v as indented JSON, creating parent directories as
// needed.
func SaveJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// LoadJSON reads a JSON file into v.
func LoadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

// Filename generates a timestamped file name such as
// exercises_processed_20250101_153000.json.
func Filename(base, ext string) string {
	return FilenameAt(base, ext, time.Now())
}

// FilenameAt is Filename with an explicit timestamp.
func FilenameAt(base, ext string, t time.Time) string {
	return fmt.Sprintf("%s_%s.%s", base, t.Format("20060102_150405"), ext)
}
