package snippet_loader

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/snipd-dev/snipd/utils"
)

// DiscoverOptions selects the candidate sources for package roots. When
// Paths is non-empty it is used verbatim (entries may be comma-separated
// lists); otherwise every directory under SearchPaths that contains a
// manifest file is a candidate.
type DiscoverOptions struct {
	Paths        []string
	SearchPaths  []string
	ManifestName string
}

// DiscoverRoots enumerates every package root reachable under the configured
// search scope. Candidate paths are home/env expanded and deduplicated;
// paths that fail to expand to a real location are dropped. No ordering is
// guaranteed beyond encounter order.
func DiscoverRoots(opts DiscoverOptions) []string {
	var candidates []string

	if len(opts.Paths) > 0 {
		candidates = utils.SplitPathList(opts.Paths)
	} else {
		for _, searchPath := range opts.SearchPaths {
			candidates = append(candidates, scanForManifests(searchPath, opts.ManifestName)...)
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	var roots []string
	for _, candidate := range candidates {
		expanded, err := utils.ExpandPath(candidate)
		if err != nil || !utils.IsDir(expanded) {
			continue
		}
		if _, dup := seen[expanded]; dup {
			continue
		}
		seen[expanded] = struct{}{}
		roots = append(roots, expanded)
	}

	return roots
}

// scanForManifests walks dir and collects every directory containing a
// manifest file. Inaccessible entries are skipped rather than aborting the
// walk.
func scanForManifests(dir, manifestName string) []string {
	var roots []string

	expanded, err := utils.ExpandPath(dir)
	if err != nil || !utils.IsDir(expanded) {
		return roots
	}

	filepath.WalkDir(expanded, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		relativePath, relErr := filepath.Rel(expanded, path)
		if relErr != nil {
			return nil
		}
		relativePath = strings.ReplaceAll(relativePath, "\\", "/")

		if d.IsDir() && utils.IsDefaultIgnored(relativePath) {
			return filepath.SkipDir
		}

		if !d.IsDir() && d.Name() == manifestName {
			roots = append(roots, filepath.Dir(path))
		}

		return nil
	})

	return roots
}
