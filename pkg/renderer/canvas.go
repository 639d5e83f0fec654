package renderer

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CanvasSink draws a frame onto a gg drawing context, which can then be
// annotated or saved as PNG
type CanvasSink struct {
	ctx    *gg.Context
	height int
	gamma  float64
}

// NewCanvasSink creates a canvas for a screen of width x height.
// Like ImageSink it holds the inclusive (width+1) x (height+1) grid.
func NewCanvasSink(width, height int) *CanvasSink {
	return &CanvasSink{
		ctx:    gg.NewContext(width+1, height+1),
		height: height,
		gamma:  1.0,
	}
}

// SetGamma sets the gamma applied before drawing (1 disables correction)
func (s *CanvasSink) SetGamma(gamma float64) {
	if gamma > 0 {
		s.gamma = gamma
	}
}

// Set draws one pixel; s.Set satisfies PixelSink
func (s *CanvasSink) Set(x, y int, c core.Vec3) {
	c = c.Clamp(0.0, 1.0)
	if s.gamma != 1.0 {
		c = c.GammaCorrect(s.gamma)
	}
	s.ctx.SetRGB(c.X, c.Y, c.Z)
	s.ctx.SetPixel(x, s.height-y)
}

// Image returns the canvas contents
func (s *CanvasSink) Image() image.Image {
	return s.ctx.Image()
}

// SavePNG writes the canvas to a PNG file
func (s *CanvasSink) SavePNG(path string) error {
	return s.ctx.SavePNG(path)
}
