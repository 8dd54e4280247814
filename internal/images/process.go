// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package images filters the extracted figure files and enhances each one
// for reading quality. Every candidate is processed in isolation: an image
// that cannot be enhanced is copied unmodified, and an image that cannot
// even be copied is skipped with a warning. The batch never aborts.
package images

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/fsutil"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/internal/progress"
	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/pkg/types"
)

// enhancedSuffix marks outputs that went through the enhancement path, as
// opposed to fallback copies which keep their original name.
const enhancedSuffix = "_enhanced"

// Process enhances every qualifying image in srcDir into dstDir and
// returns the files it produced, with Enhanced set on those that went
// through the enhancement path rather than the copy fallback. A candidate
// is dropped only when both enhancement and the raw copy fail.
func Process(srcDir, dstDir string, enh Enhancer, cfg types.EnhancementConfig, sink progress.Sink) ([]types.ImageCandidate, error) {
	candidates, err := Filter(srcDir, cfg)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating image output directory: %w", err)
	}

	var produced []types.ImageCandidate
	for _, c := range candidates {
		base := filepath.Base(c.Path)
		c.Enhanced = true

		if err := enhanceOne(c.Path, dstDir, enh, cfg); err != nil {
			progress.Warnf(sink, progress.StageImagesProcessed,
				"enhancing %s: %v, copying original", base, err)
			c.Enhanced = false

			if err := fsutil.CopyFile(c.Path, filepath.Join(dstDir, base)); err != nil {
				progress.Warnf(sink, progress.StageImagesProcessed, "copying %s: %v", base, err)
				continue
			}
		}
		produced = append(produced, c)
	}
	return produced, nil
}

// enhanceOne decodes one image, upscales it through the enhancer, applies
// the fixed enhancement sequence, and saves the result losslessly next to
// the other outputs. Any error leaves dstDir without the enhanced file.
func enhanceOne(srcPath, dstDir string, enh Enhancer, cfg types.EnhancementConfig) error {
	img, err := imaging.Open(srcPath)
	if err != nil {
		return fmt.Errorf("decoding: %w", err)
	}

	up, err := enh.Upscale(img)
	if err != nil {
		return fmt.Errorf("upscaling: %w", err)
	}

	out := imaging.Sharpen(up, cfg.SharpenSigma)
	out = imaging.AdjustContrast(out, cfg.ContrastPercent)
	out = imaging.AdjustSaturation(out, cfg.SaturationPercent)
	out = imaging.Blur(out, cfg.SmoothSigma)

	base := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	dst := filepath.Join(dstDir, base+enhancedSuffix+".png")
	if err := imaging.Save(out, dst, imaging.PNGCompressionLevel(png.NoCompression)); err != nil {
		return fmt.Errorf("saving: %w", err)
	}
	return nil
}
