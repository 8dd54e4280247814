// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stage assembles the final bundle directory and tears down the
// transient workspace.
package stage

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/fsutil"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/progress"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/pkg/types"
)

// ManifestName is the metadata file written into each bundle.
const ManifestName = "metadata.yaml"

// EnsureBundleDir creates the bundle directory for folderName under
// outputDir and returns its path. An existing directory is reused.
func EnsureBundleDir(outputDir, folderName string) (string, error) {
	dir := filepath.Join(outputDir, folderName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating bundle directory: %w", err)
	}
	return dir, nil
}

// CopyPDF places the source PDF into bundleDir as baseName.pdf and
// returns the destination path.
func CopyPDF(pdfPath, bundleDir, baseName string) (string, error) {
	dst := filepath.Join(bundleDir, baseName+".pdf")
	if err := fsutil.CopyFile(pdfPath, dst); err != nil {
		return "", fmt.Errorf("copying pdf into bundle: %w", err)
	}
	return dst, nil
}

// WriteManifest serializes the run manifest into bundleDir as
// metadata.yaml.
func WriteManifest(bundleDir string, m types.BundleManifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(bundleDir, ManifestName), data, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Cleanup removes the transient workspace. The bundle is complete by the
// time this runs, so failure is reported as a warning and swallowed.
func Cleanup(workDir string, sink progress.Sink) {
	if err := os.RemoveAll(workDir); err != nil {
		progress.Warnf(sink, progress.StageCleanedUp, "removing workspace %s: %v", workDir, err)
	}
}
