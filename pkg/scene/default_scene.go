package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates three colored spheres joined by a triangle,
// standing above a checkerboard floor
func NewDefaultScene(width, height int) (*Scene, error) {
	cameraConfig := CameraConfig{
		Position:   core.NewVec3(0, 1.8, 10),
		Up:         core.NewVec3(0, 1, 0),
		FocusPoint: core.NewVec3(0, 3, 0),
		VFov:       45.0,
	}

	s, err := NewScene("default", cameraConfig, width, height)
	if err != nil {
		return nil, err
	}
	s.Level = 2

	glossy := material.DefaultPhongConfig()
	glossy.Glossiness = 0.3

	red := material.NewPhong(core.NewVec3(1, 0, 0), glossy)
	green := material.NewPhong(core.NewVec3(0, 1, 0), glossy)
	blue := material.NewPhong(core.NewVec3(0, 0, 1), glossy)
	yellow := material.NewPhong(core.NewVec3(1, 1, 0), material.DefaultPhongConfig())

	floorConfig := material.DefaultPhongConfig()
	floorConfig.Specular = 0
	floorConfig.Glossiness = 0.2
	floor := material.NewTexturedPhong(
		material.NewCheckerboard(core.NewVec3(1, 1, 1), core.NewVec3(0, 0, 0), 1.0),
		floorConfig,
	)

	redCenter := core.NewVec3(2.5, 3, -10)
	greenCenter := core.NewVec3(-2.5, 3, -10)
	blueCenter := core.NewVec3(0, 7, -10)

	s.AddObjects(
		geometry.NewSphere(redCenter, 2, red),
		geometry.NewSphere(greenCenter, 2, green),
		geometry.NewSphere(blueCenter, 2, blue),
		geometry.NewTriangle(redCenter, blueCenter, greenCenter, yellow),
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), floor),
	)
	s.AddLights(lights.NewPointLight(core.NewVec3(30, 30, 10), core.White))

	return s, nil
}
