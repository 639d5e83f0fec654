package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PixelSink receives one traced color per pixel. It is called synchronously
// and exactly once per pixel of a frame.
type PixelSink func(x, y int, color core.Vec3)

// ImageSink collects a frame into an RGBA image. The image is
// (width+1) x (height+1) to hold the inclusive pixel grid, and rows are
// flipped so view-plane up is image up.
type ImageSink struct {
	img    *image.RGBA
	height int
	gamma  float64
}

// NewImageSink creates a sink for a screen of width x height
func NewImageSink(width, height int) *ImageSink {
	return &ImageSink{
		img:    image.NewRGBA(image.Rect(0, 0, width+1, height+1)),
		height: height,
		gamma:  1.0,
	}
}

// SetGamma sets the gamma applied before quantization (1 disables correction)
func (s *ImageSink) SetGamma(gamma float64) {
	if gamma > 0 {
		s.gamma = gamma
	}
}

// Set stores one pixel; s.Set satisfies PixelSink
func (s *ImageSink) Set(x, y int, c core.Vec3) {
	s.img.SetRGBA(x, s.height-y, vec3ToColor(c, s.gamma))
}

// Image returns the collected image
func (s *ImageSink) Image() *image.RGBA {
	return s.img
}

// vec3ToColor converts a Vec3 color to RGBA with clamping and gamma correction
func vec3ToColor(colorVec core.Vec3, gamma float64) color.RGBA {
	// Negative components would turn into NaN under a fractional power
	colorVec = colorVec.Clamp(0.0, 1.0)
	if gamma != 1.0 {
		colorVec = colorVec.GammaCorrect(gamma)
	}

	return color.RGBA{
		R: uint8(255*colorVec.X + 0.5),
		G: uint8(255*colorVec.Y + 0.5),
		B: uint8(255*colorVec.Z + 0.5),
		A: 255,
	}
}

// CountScanlines wraps next so that onScanline receives the number of
// completed scanlines each time a full row of width+1 pixels has passed
// through. The frame drivers deliver rows whole, so the count is exact even
// when scanlines finish out of order.
func CountScanlines(next PixelSink, width int, onScanline func(done int)) PixelSink {
	rowPixels := width + 1
	pixels := 0
	return func(x, y int, c core.Vec3) {
		next(x, y, c)
		pixels++
		if pixels%rowPixels == 0 {
			onScanline(pixels / rowPixels)
		}
	}
}
