package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// ImageService processes cover art fetched from the storefront.
//
// Header images arrive as JPEG or PNG at arbitrary sizes; ResizeToJPEG
// normalizes them to a bounded JPEG suitable for saving beside a note.
//
// Example usage:
//
//	svc := NewImageService()
//	data, _ := client.DownloadBytes(ctx, headerImageURL)
//	cover, err := svc.ResizeToJPEG(ctx, data, 1000)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// ResizeToJPEG decodes an image, scales it to fit within maxDim on the
// longer side while preserving aspect ratio, and re-encodes it as JPEG
// with 90% quality. Images already within bounds are re-encoded without
// scaling.
//
// The Catmull-Rom algorithm is used for high-quality resizing.
func (s *ImageService) ResizeToJPEG(ctx context.Context, data []byte, maxDim int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width > maxDim || height > maxDim {
		ratio := float64(width) / float64(height)
		if ratio >= 1 {
			width = maxDim
			height = int(float64(maxDim) / ratio)
		} else {
			height = maxDim
			width = int(float64(maxDim) * ratio)
		}

		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
