// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires one end-to-end paper run: resolve the reference,
// download the PDF, drive the extraction tool, infer a title, enhance the
// images, and stage the bundle. Fatal errors abort the run and tear down
// the transient workspace; soft failures surface as warnings and the run
// continues with a documented fallback.
package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/acquire"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/extract"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/fsutil"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/images"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/progress"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/stage"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/pkg/types"
)

// workspaceDir is the transient working directory created under the
// output directory for each run.
const workspaceDir = ".tmp"

// Options configures one run. Nil dependency fields fall back to the
// production implementations; tests inject fakes.
type Options struct {
	// Reference is the user-supplied arXiv URL.
	Reference string

	// OutputDir is where the bundle directory is created.
	OutputDir string

	// Config carries all stage settings.
	Config types.PipelineConfig

	// Client makes the download and metadata requests.
	Client *http.Client

	// Runner invokes the extraction tool.
	Runner extract.Runner

	// Enhancer upscales extracted images.
	Enhancer images.Enhancer

	// Sink receives progress events.
	Sink progress.Sink
}

func (o *Options) fillDefaults() {
	if o.Client == nil {
		o.Client = &http.Client{Timeout: o.Config.Acquire.Timeout}
	}
	if o.Runner == nil {
		o.Runner = extract.ExecRunner{}
	}
	if o.Enhancer == nil {
		o.Enhancer = images.NewAdvanced(o.Config.Enhancement)
	}
	if o.Sink == nil {
		o.Sink = progress.Discard
	}
}

// Run executes one end-to-end paper run and returns the staged bundle.
// The returned error preserves the stage sentinels (acquire and extract
// package errors) for errors.Is checks.
func Run(ctx context.Context, opts Options) (*types.OutputBundle, error) {
	opts.fillDefaults()
	sink := opts.Sink
	cfg := opts.Config

	ref, err := acquire.Resolve(opts.Reference)
	if err != nil {
		return nil, err
	}
	progress.Infof(sink, progress.StageResolved, "resolved %s", ref.Identifier)

	workDir := filepath.Join(opts.OutputDir, workspaceDir)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	// fail aborts the run: the workspace must not survive in a state that
	// blocks a re-run.
	fail := func(err error) (*types.OutputBundle, error) {
		progress.Warnf(sink, progress.StageFailed, "processing failed: %v", err)
		if !cfg.KeepWorkspace {
			stage.Cleanup(workDir, sink)
		}
		return nil, err
	}

	safeID := fsutil.SanitizeName(ref.Identifier)
	pdfPath := filepath.Join(workDir, safeID+".pdf")

	if err := acquire.DownloadPDF(ctx, opts.Client, ref.SourceURL, pdfPath, cfg.Acquire); err != nil {
		return fail(err)
	}
	progress.Infof(sink, progress.StageDownloaded, "downloaded %s", ref.SourceURL)

	var meta *types.ArxivMetadata
	if cfg.Acquire.FetchMetadata {
		meta, err = acquire.FetchArxivMetadata(ctx, opts.Client, ref.Identifier, cfg.Acquire)
		if err != nil {
			progress.Warnf(sink, progress.StageDownloaded, "arxiv metadata unavailable: %v", err)
			meta = nil
		}
	}

	extractor := extract.New(opts.Runner, cfg.Extraction, cfg.Title)
	artifacts, err := extractor.Run(ctx, pdfPath, workDir, sink)
	if err != nil {
		return fail(err)
	}
	progress.Infof(sink, progress.StageExtracted, "extracted images to %s", artifacts.ImagesDir)

	// A missing, unusable, or filename-echoing title falls back to the
	// sanitized identifier so the bundle always has a stable name.
	title := artifacts.Title
	if title.Raw == "" || title.Raw == safeID || title.Sanitized == "" {
		title = types.InferredTitle{Raw: safeID, Sanitized: safeID}
	}
	progress.Infof(sink, progress.StageTitled, "title: %s", title.Raw)

	bundleDir, err := stage.EnsureBundleDir(opts.OutputDir, title.Sanitized)
	if err != nil {
		return fail(err)
	}

	produced, err := images.Process(artifacts.ImagesDir, bundleDir, opts.Enhancer, cfg.Enhancement, sink)
	if err != nil {
		return fail(err)
	}
	enhanced := 0
	for _, c := range produced {
		if c.Enhanced {
			enhanced++
		}
	}
	progress.Infof(sink, progress.StageImagesProcessed,
		"processed %d images (%d enhanced)", len(produced), enhanced)

	pdfDst, err := stage.CopyPDF(pdfPath, bundleDir, title.Sanitized)
	if err != nil {
		return fail(err)
	}

	if cfg.WriteManifest {
		manifest := types.BundleManifest{
			Identifier: ref.Identifier,
			SourceURL:  ref.SourceURL,
			Title:      title.Raw,
			FolderName: title.Sanitized,
			PDFFile:    filepath.Base(pdfDst),
			ImageCount: len(produced),
			Tool:       cfg.Extraction.Tool,
			CreatedAt:  time.Now().UTC(),
			Arxiv:      meta,
		}
		if err := stage.WriteManifest(bundleDir, manifest); err != nil {
			progress.Warnf(sink, progress.StageStaged, "manifest not written: %v", err)
		}
	}
	progress.Infof(sink, progress.StageStaged, "saved bundle to %s", bundleDir)

	if !cfg.KeepWorkspace {
		stage.Cleanup(workDir, sink)
		progress.Infof(sink, progress.StageCleanedUp, "workspace removed")
	}

	return &types.OutputBundle{
		Directory:  bundleDir,
		PDFPath:    pdfDst,
		ImageCount: len(produced),
	}, nil
}
