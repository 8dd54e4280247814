// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract drives the MinerU command-line tool over a downloaded
// PDF and locates the artifacts it leaves behind. MinerU's output layout
// shifts between releases, so artifact discovery probes the known layouts
// in order and falls back to walking the whole output tree.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/fsutil"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/progress"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/title"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/pkg/types"
)

var (
	// ErrToolMissing reports that the extraction tool is not installed.
	ErrToolMissing = errors.New("extraction tool not found")

	// ErrToolFailed reports that the extraction tool ran and exited
	// non-zero.
	ErrToolFailed = errors.New("extraction tool failed")
)

// outputSubdir is the directory under the workspace that the tool writes
// its output tree into.
const outputSubdir = "mineru_output"

// Extractor runs the external tool and resolves its output artifacts.
// The Runner is injected so tests can simulate tool behavior.
type Extractor struct {
	runner Runner
	cfg    types.ExtractionConfig
	titles types.TitleConfig
}

// New returns an Extractor that invokes the tool through runner.
func New(runner Runner, cfg types.ExtractionConfig, titles types.TitleConfig) *Extractor {
	return &Extractor{runner: runner, cfg: cfg, titles: titles}
}

// Run converts the PDF at pdfPath inside workDir and locates the images
// directory and transcript the tool produced. When the tool produces no
// images directory at all, an empty one is synthesized under workDir and
// a warning is published, so downstream stages always have a directory
// to read. Title inference failing is not an error; the returned
// artifacts carry a zero InferredTitle and callers fall back to the
// document identifier.
func (e *Extractor) Run(ctx context.Context, pdfPath, workDir string, sink progress.Sink) (types.ExtractionArtifacts, error) {
	outDir := filepath.Join(workDir, outputSubdir)
	bin, args := Command(pdfPath, outDir, e.cfg)

	if _, err := e.runner.LookPath(bin); err != nil {
		return types.ExtractionArtifacts{}, fmt.Errorf(
			"%w: install MinerU and make sure %q is on PATH", ErrToolMissing, bin)
	}

	stderr, err := e.runner.Run(ctx, bin, args)
	if err != nil {
		if msg := strings.TrimSpace(stderr); msg != "" {
			return types.ExtractionArtifacts{}, fmt.Errorf("%w: %v: %s", ErrToolFailed, err, msg)
		}
		return types.ExtractionArtifacts{}, fmt.Errorf("%w: %v", ErrToolFailed, err)
	}

	docName := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))

	imagesDir, ok := FindImagesDir(outDir, docName)
	if !ok {
		imagesDir = filepath.Join(workDir, imagesDirName)
		if err := os.MkdirAll(imagesDir, 0o755); err != nil {
			return types.ExtractionArtifacts{}, fmt.Errorf("creating fallback images directory: %w", err)
		}
		progress.Warnf(sink, progress.StageExtracted,
			"tool produced no images directory, continuing with empty %s", imagesDir)
	}

	artifacts := types.ExtractionArtifacts{ImagesDir: imagesDir}
	artifacts.TranscriptPath, artifacts.Title = e.inferTitle(outDir, docName)
	return artifacts, nil
}

// inferTitle probes the transcript candidates in order and returns the
// first file whose content yields a title, along with that title. A
// candidate that does not exist, cannot be read, or yields nothing moves
// the scan to the next one.
func (e *Extractor) inferTitle(outDir, docName string) (string, types.InferredTitle) {
	for _, path := range FindTranscripts(outDir, docName) {
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		raw := strings.TrimSpace(title.Infer(string(content), e.titles))
		if raw == "" {
			continue
		}
		return path, types.InferredTitle{Raw: raw, Sanitized: fsutil.SanitizeName(raw)}
	}
	return "", types.InferredTitle{}
}
