package pdfsource

import (
	"fmt"
	"image"
	"os"

	// Raster formats seen in extracted PDF assets. DecodeConfig only reads
	// headers, so registration is cheap.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pagestitch/pagestitch/model"
)

// RasterFromFile builds a raster MediaRegion from an extracted image asset.
// The region is anchored at (left, top) on the page; its extent comes from
// the image header scaled by the given points-per-pixel factor. A scale of
// zero means 1 point per pixel.
func RasterFromFile(id, path string, page int, left, top, scale float64) (model.MediaRegion, error) {
	width, height, err := SniffDimensions(path)
	if err != nil {
		return model.MediaRegion{}, err
	}

	if scale <= 0 {
		scale = 1.0
	}

	return model.MediaRegion{
		ID:      id,
		Type:    model.MediaTypeRaster,
		Page:    page,
		FileRef: path,
		BBox: model.NewBBox(left, top,
			float64(width)*scale, float64(height)*scale),
	}, nil
}

// SniffDimensions reads an image file's pixel dimensions from its header
// without decoding the pixel data
func SniffDimensions(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("pdfsource: open image %s: %w", path, err)
	}
	defer f.Close()

	config, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("pdfsource: decode image header %s: %w", path, err)
	}
	return config.Width, config.Height, nil
}
