// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strconv"

	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/pkg/types"
)

// Command assembles the binary name and argument list for one MinerU run
// over pdfPath, writing into outputDir. The DPI and quality flags pin the
// tool to lossless output; downstream enhancement assumes no compression
// artifacts in the extracted images.
func Command(pdfPath, outputDir string, cfg types.ExtractionConfig) (string, []string) {
	args := []string{
		"-p", pdfPath,
		"-o", outputDir,
		"-m", cfg.Mode,
		"--render-dpi", strconv.Itoa(cfg.RenderDPI),
		"--image-dpi", strconv.Itoa(cfg.ImageDPI),
		"--image-quality", strconv.Itoa(cfg.ImageQuality),
	}
	if cfg.KeepVector {
		args = append(args, "--keep-vector")
	}
	if cfg.NoCompress {
		args = append(args, "--no-compress")
	}
	if cfg.Lang != "" {
		args = append(args, "--lang", cfg.Lang)
	}
	return cfg.Tool, args
}
