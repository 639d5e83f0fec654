package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const sphereGridSize = 6

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// NewSphereGridScene creates a grid of spheres whose hue varies along one
// axis and whose glossiness varies along the other
func NewSphereGridScene(width, height int) (*Scene, error) {
	center := float64(sphereGridSize-1) / 2
	cameraConfig := CameraConfig{
		Position:   core.NewVec3(center, 5, -8),
		Up:         core.NewVec3(0, 1, 0),
		FocusPoint: core.NewVec3(center, 0.5, center),
		VFov:       45.0,
	}

	s, err := NewScene("spheregrid", cameraConfig, width, height)
	if err != nil {
		return nil, err
	}
	s.Level = 3
	s.Background = core.NewVec3(0.5, 0.7, 1.0)

	floorConfig := material.DefaultPhongConfig()
	floorConfig.Specular = 0
	s.AddObjects(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0),
		material.NewPhong(core.NewVec3(0.6, 0.6, 0.6), floorConfig)))

	for row := 0; row < sphereGridSize; row++ {
		for col := 0; col < sphereGridSize; col++ {
			hue := float64(col) / sphereGridSize * 360
			config := material.DefaultPhongConfig()
			config.Glossiness = float64(row) / float64(sphereGridSize-1)

			mat := material.NewPhong(oklchToRGB(0.7, 0.15, hue), config)
			s.AddObjects(geometry.NewSphere(core.NewVec3(float64(col), 0.4, float64(row)), 0.4, mat))
		}
	}

	s.AddLights(
		lights.NewPointLight(core.NewVec3(-5, 10, -5), core.NewVec3(0.7, 0.7, 0.7)),
		lights.NewPointLight(core.NewVec3(10, 6, -2), core.NewVec3(0.3, 0.3, 0.3)),
	)

	return s, nil
}
