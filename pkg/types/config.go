// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-analyzer/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries is the number of retry attempts for rate-limited requests.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// AcquireConfig holds settings for reference resolution and PDF download.
type AcquireConfig struct {
	HTTPConfig `yaml:",inline"`

	// FetchMetadata controls the best-effort arXiv metadata lookup after
	// a successful download.
	FetchMetadata bool `json:"fetch_metadata" yaml:"fetch_metadata"`
}

// ExtractionConfig holds settings for the external parsing tool invocation.
// The defaults favor maximum rendering fidelity.
type ExtractionConfig struct {
	// Tool is the parsing tool binary, looked up on PATH.
	Tool string `json:"tool" yaml:"tool"`

	// Mode is the tool's layout-analysis mode (default "auto").
	Mode string `json:"mode" yaml:"mode"`

	// RenderDPI is the page rendering resolution.
	RenderDPI int `json:"render_dpi" yaml:"render_dpi"`

	// ImageDPI is the extracted-image resolution.
	ImageDPI int `json:"image_dpi" yaml:"image_dpi"`

	// ImageQuality is the 0-100 output quality setting.
	ImageQuality int `json:"image_quality" yaml:"image_quality"`

	// KeepVector preserves vector graphics instead of rasterizing them.
	KeepVector bool `json:"keep_vector" yaml:"keep_vector"`

	// NoCompress disables output compression.
	NoCompress bool `json:"no_compress" yaml:"no_compress"`

	// Lang is an optional language hint passed to the tool; empty omits it.
	Lang string `json:"lang" yaml:"lang"`
}

// TitleConfig holds the bounds and stoplist for title inference. All length
// bounds are exclusive and counted in runes.
type TitleConfig struct {
	// HeadingScanLines is how many leading transcript lines the heading
	// scan inspects.
	HeadingScanLines int `json:"heading_scan_lines" yaml:"heading_scan_lines"`

	// PlainScanLines is how many leading lines the plain-line heuristic inspects.
	PlainScanLines int `json:"plain_scan_lines" yaml:"plain_scan_lines"`

	// BoldScanChars is the size of the leading window searched for bold spans.
	BoldScanChars int `json:"bold_scan_chars" yaml:"bold_scan_chars"`

	// HeadingMinLen is the minimum heading-title length.
	HeadingMinLen int `json:"heading_min_len" yaml:"heading_min_len"`

	// PlainMinLen is the minimum plain-line length.
	PlainMinLen int `json:"plain_min_len" yaml:"plain_min_len"`

	// BoldMinLen is the minimum bold-span length.
	BoldMinLen int `json:"bold_min_len" yaml:"bold_min_len"`

	// MaxLen is the maximum accepted title length for all heuristics.
	MaxLen int `json:"max_len" yaml:"max_len"`

	// ColonGuard is the prefix length checked for a colon; lines like
	// "Abstract: ..." are rejected by this guard.
	ColonGuard int `json:"colon_guard" yaml:"colon_guard"`

	// MaxPeriods rejects lines with this many periods or more (prose filter).
	MaxPeriods int `json:"max_periods" yaml:"max_periods"`

	// Stopwords are generic section words rejected as titles
	// (case-insensitive substring match).
	Stopwords []string `json:"stopwords" yaml:"stopwords"`
}

// EnhancementConfig holds the image filter thresholds and enhancement
// parameters.
type EnhancementConfig struct {
	// MinFileBytes filters out likely-decorative graphics below this size.
	MinFileBytes int64 `json:"min_file_bytes" yaml:"min_file_bytes"`

	// Extensions lists accepted image extensions (lowercase, with dot).
	Extensions []string `json:"extensions" yaml:"extensions"`

	// UpscaleThresholdPx gates the upscale tier: only images with fewer
	// pixels than this are upscaled.
	UpscaleThresholdPx int `json:"upscale_threshold_px" yaml:"upscale_threshold_px"`

	// SuperResScale is the fixed multiplier for the advanced upscale path.
	SuperResScale int `json:"super_res_scale" yaml:"super_res_scale"`

	// AdvancedBudgetPx and AdvancedMaxScale parameterize the advanced
	// enhancer's resample fallback: scale = floor(sqrt(budget/pixels)),
	// clamped to the max.
	AdvancedBudgetPx int `json:"advanced_budget_px" yaml:"advanced_budget_px"`
	AdvancedMaxScale int `json:"advanced_max_scale" yaml:"advanced_max_scale"`

	// BasicBudgetPx and BasicMaxScale parameterize the basic resample.
	BasicBudgetPx int `json:"basic_budget_px" yaml:"basic_budget_px"`
	BasicMaxScale int `json:"basic_max_scale" yaml:"basic_max_scale"`

	// SharpenSigma controls the post-upscale sharpening pass.
	SharpenSigma float64 `json:"sharpen_sigma" yaml:"sharpen_sigma"`

	// ContrastPercent is the contrast boost (percentage points).
	ContrastPercent float64 `json:"contrast_percent" yaml:"contrast_percent"`

	// SaturationPercent is the saturation boost (percentage points).
	SaturationPercent float64 `json:"saturation_percent" yaml:"saturation_percent"`

	// SmoothSigma controls the final mild smoothing pass.
	SmoothSigma float64 `json:"smooth_sigma" yaml:"smooth_sigma"`
}

// PipelineConfig groups all stage configurations for an end-to-end run.
type PipelineConfig struct {
	Acquire     AcquireConfig     `json:"acquire" yaml:"acquire"`
	Extraction  ExtractionConfig  `json:"extraction" yaml:"extraction"`
	Title       TitleConfig       `json:"title" yaml:"title"`
	Enhancement EnhancementConfig `json:"enhancement" yaml:"enhancement"`

	// WriteManifest controls writing metadata.yaml into the bundle.
	WriteManifest bool `json:"write_manifest" yaml:"write_manifest"`

	// KeepWorkspace leaves the transient workspace behind for debugging.
	KeepWorkspace bool `json:"keep_workspace" yaml:"keep_workspace"`
}

// DefaultHTTPConfig returns the standard HTTP settings.
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Timeout:    60 * time.Second,
		UserAgent:  "paper-analyzer/0.1 (+https://github.com/dejavudd/demo-mineru-arxivpaper-analyzer)",
		MaxRetries: 3,
	}
}

// DefaultAcquireConfig returns the standard acquisition settings.
func DefaultAcquireConfig() AcquireConfig {
	return AcquireConfig{
		HTTPConfig:    DefaultHTTPConfig(),
		FetchMetadata: true,
	}
}

// DefaultExtractionConfig returns the maximum-fidelity tool settings.
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		Tool:         "mineru",
		Mode:         "auto",
		RenderDPI:    1200,
		ImageDPI:     1200,
		ImageQuality: 100,
		KeepVector:   true,
		NoCompress:   true,
		Lang:         "en",
	}
}

// DefaultTitleConfig returns the standard heuristic bounds.
func DefaultTitleConfig() TitleConfig {
	return TitleConfig{
		HeadingScanLines: 50,
		PlainScanLines:   20,
		BoldScanChars:    2000,
		HeadingMinLen:    10,
		PlainMinLen:      20,
		BoldMinLen:       20,
		MaxLen:           200,
		ColonGuard:       20,
		MaxPeriods:       3,
		Stopwords:        []string{"abstract", "introduction", "content", "table", "figure"},
	}
}

// DefaultEnhancementConfig returns the standard filter and enhancement
// parameters.
func DefaultEnhancementConfig() EnhancementConfig {
	return EnhancementConfig{
		MinFileBytes:       5000,
		Extensions:         []string{".png", ".jpg", ".jpeg", ".gif", ".svg"},
		UpscaleThresholdPx: 1_000_000,
		SuperResScale:      2,
		AdvancedBudgetPx:   2_000_000,
		AdvancedMaxScale:   4,
		BasicBudgetPx:      1_500_000,
		BasicMaxScale:      3,
		SharpenSigma:       0.8,
		ContrastPercent:    15,
		SaturationPercent:  5,
		SmoothSigma:        0.5,
	}
}

// DefaultPipelineConfig returns the full default configuration.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Acquire:       DefaultAcquireConfig(),
		Extraction:    DefaultExtractionConfig(),
		Title:         DefaultTitleConfig(),
		Enhancement:   DefaultEnhancementConfig(),
		WriteManifest: true,
	}
}
