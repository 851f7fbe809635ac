package processor

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"pixpress/internal/models"
)

// applyResize applies the run's resize policy to one decoded image.
//
// Max-dimension mode scales down only; images already within the bound are
// passed through untouched (they are still re-encoded). Exact mode with
// aspect preservation letterboxes onto a black canvas instead of stretching.
// The image is composited over the canvas, so translucent sources pick up
// the same black fill as the bars.
func applyResize(img image.Image, cfg *models.JobConfig) image.Image {
	switch cfg.ResizeMode {
	case models.ResizeMaxDim:
		return imaging.Fit(img, cfg.MaxDimension, cfg.MaxDimension, imaging.Lanczos)
	case models.ResizeExact:
		if !cfg.KeepAspect {
			return imaging.Resize(img, cfg.Width, cfg.Height, imaging.Lanczos)
		}
		fitted := imaging.Fit(img, cfg.Width, cfg.Height, imaging.Lanczos)
		canvas := imaging.New(cfg.Width, cfg.Height, color.Black)
		return imaging.OverlayCenter(canvas, fitted, 1.0)
	default:
		return img
	}
}

// flatten composites a non-opaque image onto a white background.
func flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	bounds := img.Bounds()
	background := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.OverlayCenter(background, img, 1.0)
}
