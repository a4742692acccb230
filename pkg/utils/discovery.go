package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// LatestMatch returns the most recently modified file in dir matching
// the glob pattern. Ties break on modification time descending.
func LatestMatch(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no file matching %q in %s", pattern, dir)
	}

	var latest string
	var latestMod int64
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); latest == "" || mod > latestMod {
			latest = m
			latestMod = mod
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no readable file matching %q in %s", pattern, dir)
	}
	return latest, nil
}
