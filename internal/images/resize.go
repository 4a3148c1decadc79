package images

import (
	"bytes"

	"github.com/disintegration/imaging"
)

// downscale returns a re-encoded copy when data is a raster image in a
// format imaging can write and wider than maxWidth.
func downscale(data []byte, name string, maxWidth int) ([]byte, bool) {
	if maxWidth <= 0 {
		return nil, false
	}

	format, err := imaging.FormatFromFilename(name)
	if err != nil {
		return nil, false
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, false
	}
	if img.Bounds().Dx() <= maxWidth {
		return nil, false
	}

	resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format, imaging.JPEGQuality(85)); err != nil {
		return nil, false
	}

	return buf.Bytes(), true
}
