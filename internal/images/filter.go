// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/pkg/types"
)

// Filter returns the files in dir worth carrying into the bundle: a known
// image extension and at least MinFileBytes of content. Files below the
// size threshold are decorative rules and spacer graphics; both filters
// skip silently. Subdirectories are not descended into.
func Filter(dir string, cfg types.EnhancementConfig) ([]types.ImageCandidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading images directory: %w", err)
	}

	var candidates []types.ImageCandidate
	for _, entry := range entries {
		if entry.IsDir() || !allowedExt(entry.Name(), cfg.Extensions) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.Size() < cfg.MinFileBytes {
			continue
		}
		candidates = append(candidates, types.ImageCandidate{
			Path:     filepath.Join(dir, entry.Name()),
			ByteSize: info.Size(),
		})
	}
	return candidates, nil
}

func allowedExt(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
