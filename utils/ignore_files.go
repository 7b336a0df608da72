package utils

import (
	"strings"
)

// IsDefaultIgnored reports whether a relative path should be skipped when
// scanning for package roots. These directories generate high-frequency
// noise and never contain snippet packages of their own.
func IsDefaultIgnored(path string) bool {
	ignorePatterns := []string{
		".git",
		".idea",
		".vscode",
		".cache",
		"node_modules",
		"__pycache__",
		"bin",
		"obj",
	}

	for _, pattern := range ignorePatterns {
		if path == pattern || strings.HasPrefix(path, pattern+"/") || strings.Contains(path, "/"+pattern+"/") {
			return true
		}
	}

	return false
}
