package processor

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/webp"
)

func encodeImage(w io.Writer, img image.Image, format string, quality int) error {
	switch format {
	case "jpeg":
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case "png":
		return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(pngCompression(quality)))
	case "webp":
		return webp.Encode(w, img, webp.Options{Quality: quality})
	case "bmp":
		return imaging.Encode(w, img, imaging.BMP)
	case "tiff":
		return imaging.Encode(w, img, imaging.TIFF)
	default:
		return fmt.Errorf("unsupported encode format %q", format)
	}
}

// pngLevel maps quality 1-100 onto the conventional 0-9 PNG compression
// scale. PNG is lossless, so "quality" trades encode effort for size:
// quality 100 gives level 0 (fastest, largest), quality 1 gives level 9
// (slowest, smallest). Monotone non-increasing in quality.
func pngLevel(quality int) int {
	return 9 - quality*9/100
}

// pngCompression buckets the 0-9 level onto the levels image/png actually
// supports.
func pngCompression(quality int) png.CompressionLevel {
	switch level := pngLevel(quality); {
	case level <= 2:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}
