package ioutils

import (
	"bytes"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// ImageInfo describes a decoded page image without decoding its pixels.
type ImageInfo struct {
	// Width and Height are the pixel dimensions.
	Width  int
	Height int

	// Format is the registered decoder name: "jpeg", "png" or "gif".
	Format string
}

// ImageService provides image processing operations for page images.
//
// ImageService is used to:
//   - Inspect page dimensions and encoding (for PDF page sizing)
//   - Convert pages to JPEG (for formats the PDF writer cannot embed)
//   - Downscale oversized pages (optional, to cap output size)
//
// Example usage:
//
//	svc := NewImageService()
//
//	info, _ := svc.Describe(pageData)
//	if info.Format != "jpeg" {
//	    pageData, _ = svc.ConvertToJPEG(pageData)
//	}
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Describe returns the dimensions and encoding of an image without
// decoding the full pixel data.
//
// Returns an error if the bytes are not a recognized image format.
func (s *ImageService) Describe(data []byte) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, err
	}
	return ImageInfo{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// ConvertToJPEG re-encodes an image as JPEG with 90% quality.
//
// The document exporter uses this for pages whose source encoding the
// PDF writer cannot embed directly.
func (s *ImageService) ConvertToJPEG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Resize scales an image down to fit within the specified maximum
// dimensions, preserving aspect ratio. Images already within bounds are
// still re-encoded as JPEG.
//
// The Catmull-Rom algorithm is used for high-quality scaling.
//
// Example:
//
//	// Cap page height at 2048px, maintaining aspect ratio
//	resized, err := svc.Resize(pageData, 2048, 2048)
func (s *ImageService) Resize(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxWidth || height > maxHeight {
		ratio := float64(width) / float64(height)
		if float64(maxWidth)/float64(maxHeight) > ratio {
			// Height is the limiting factor
			width = int(float64(maxHeight) * ratio)
			height = maxHeight
		} else {
			// Width is the limiting factor
			height = int(float64(maxWidth) / ratio)
			width = maxWidth
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
