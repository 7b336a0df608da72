package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading "~" and any environment variables in path and
// returns the absolute form. An empty result or a failed expansion is
// reported as an error so callers can drop the candidate.
func ExpandPath(path string) (string, error) {
	expanded := os.ExpandEnv(path)

	if expanded == "~" || strings.HasPrefix(expanded, "~/") || strings.HasPrefix(expanded, "~\\") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if expanded == "~" {
			expanded = home
		} else {
			expanded = filepath.Join(home, expanded[2:])
		}
	}

	return filepath.Abs(expanded)
}

// PathExists reports whether path exists on disk.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// SplitPathList splits entries that may themselves be comma-separated path
// lists and trims whitespace, dropping empty elements.
func SplitPathList(entries []string) []string {
	var out []string
	for _, entry := range entries {
		for _, part := range strings.Split(entry, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
