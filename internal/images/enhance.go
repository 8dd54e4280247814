// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package images

import (
	"errors"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/dejavudd/demo-mineru-arxivpaper-analyzer/pkg/types"
)

// sharpenKernel is the 3x3 high-boost convolution applied after the
// super-resolution resize. Weights sum to 1 so overall brightness is
// preserved.
var sharpenKernel = [9]float64{
	-1, -1, -1,
	-1, 9, -1,
	-1, -1, -1,
}

// Enhancer upscales one decoded image. Implementations are selected at
// construction time from configuration, not probed per call.
type Enhancer interface {
	// Name identifies the enhancer in progress output.
	Name() string

	// Upscale returns an upscaled rendition of img, or img itself when
	// it is already large enough.
	Upscale(img image.Image) (image.Image, error)
}

// NewEnhancer returns the enhancer for the given mode ("advanced" or
// "basic").
func NewEnhancer(mode string, cfg types.EnhancementConfig) (Enhancer, error) {
	switch mode {
	case "advanced":
		return NewAdvanced(cfg), nil
	case "basic":
		return NewBasic(cfg), nil
	default:
		return nil, errors.New("unknown enhancer mode: " + mode)
	}
}

// NewAdvanced returns the super-resolution enhancer.
func NewAdvanced(cfg types.EnhancementConfig) AdvancedEnhancer {
	return AdvancedEnhancer{cfg: cfg}
}

// NewBasic returns the budget-resample enhancer.
func NewBasic(cfg types.EnhancementConfig) BasicEnhancer {
	return BasicEnhancer{cfg: cfg}
}

// AdvancedEnhancer doubles small images with Catmull-Rom interpolation and
// a sharpening convolution. When the super-resolution pass cannot run it
// degrades to the same budget resample the basic enhancer uses, with a
// larger pixel budget.
type AdvancedEnhancer struct {
	cfg types.EnhancementConfig
}

func (e AdvancedEnhancer) Name() string { return "advanced" }

func (e AdvancedEnhancer) Upscale(img image.Image) (image.Image, error) {
	if pixelCount(img) >= e.cfg.UpscaleThresholdPx {
		return img, nil
	}
	up, err := superResolve(img, e.cfg.SuperResScale)
	if err != nil {
		return budgetResample(img, e.cfg.AdvancedBudgetPx, e.cfg.AdvancedMaxScale), nil
	}
	return up, nil
}

// BasicEnhancer upscales small images by an integer factor chosen to land
// near a fixed pixel budget, using Lanczos resampling.
type BasicEnhancer struct {
	cfg types.EnhancementConfig
}

func (e BasicEnhancer) Name() string { return "basic" }

func (e BasicEnhancer) Upscale(img image.Image) (image.Image, error) {
	if pixelCount(img) >= e.cfg.UpscaleThresholdPx {
		return img, nil
	}
	return budgetResample(img, e.cfg.BasicBudgetPx, e.cfg.BasicMaxScale), nil
}

// superResolve scales img up by the fixed factor with Catmull-Rom
// interpolation and applies the sharpening convolution. Degenerate images
// with no pixels cannot be resized and are rejected.
func superResolve(img image.Image, scale int) (image.Image, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errors.New("image has no pixels")
	}
	up := imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.CatmullRom)
	return imaging.Convolve3x3(up, sharpenKernel, nil), nil
}

// budgetResample upscales img by the integer factor that keeps the result
// near budgetPx pixels, clamped to maxScale. Images where the computed
// factor is 1 or less are returned unchanged.
func budgetResample(img image.Image, budgetPx, maxScale int) image.Image {
	scale := resampleScale(pixelCount(img), budgetPx, maxScale)
	if scale <= 1 {
		return img
	}
	b := img.Bounds()
	return imaging.Resize(img, b.Dx()*scale, b.Dy()*scale, imaging.Lanczos)
}

// resampleScale is floor(sqrt(budgetPx/pixels)) clamped to maxScale.
func resampleScale(pixels, budgetPx, maxScale int) int {
	if pixels <= 0 {
		return 1
	}
	scale := int(math.Sqrt(float64(budgetPx) / float64(pixels)))
	if scale > maxScale {
		return maxScale
	}
	return scale
}

func pixelCount(img image.Image) int {
	b := img.Bounds()
	return b.Dx() * b.Dy()
}
