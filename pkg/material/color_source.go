package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns the color at a 3D point
	Evaluate(point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of position
func (s *SolidColor) Evaluate(point core.Vec3) core.Vec3 {
	return s.Color
}

// Checkerboard alternates two colors on a square grid in the XZ plane.
// It is meant for ground planes; the Y coordinate is ignored.
type Checkerboard struct {
	Color1    core.Vec3
	Color2    core.Vec3
	CheckSize float64
}

// NewCheckerboard creates a checkerboard color source
func NewCheckerboard(color1, color2 core.Vec3, checkSize float64) *Checkerboard {
	if checkSize <= 0 {
		checkSize = 1
	}
	return &Checkerboard{Color1: color1, Color2: color2, CheckSize: checkSize}
}

// Evaluate returns Color1 or Color2 depending on which check contains the point
func (c *Checkerboard) Evaluate(point core.Vec3) core.Vec3 {
	checkX := int(math.Floor(point.X / c.CheckSize))
	checkZ := int(math.Floor(point.Z / c.CheckSize))
	if (checkX+checkZ)%2 == 0 {
		return c.Color1
	}
	return c.Color2
}
