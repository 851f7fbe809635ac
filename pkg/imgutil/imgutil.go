package imgutil

import (
	"path/filepath"
	"strings"
)

var supportedExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// IsSupported reports whether the file's extension is a recognized image
// type. Recognition is by extension only; content is validated at decode.
func IsSupported(path string) bool {
	return supportedExts[strings.ToLower(filepath.Ext(path))]
}

// EncodeFormatForExt maps an output file extension to the encoder name used
// for it. Returns ok=false for extensions no encoder covers.
func EncodeFormatForExt(ext string) (string, bool) {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return "jpeg", true
	case ".png":
		return "png", true
	case ".webp":
		return "webp", true
	case ".bmp":
		return "bmp", true
	case ".tif", ".tiff":
		return "tiff", true
	default:
		return "", false
	}
}
