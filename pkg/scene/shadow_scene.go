package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewShadowScene creates a sphere on a floor lit by two colored lights, with
// an occluder hanging between the sphere and the red light
func NewShadowScene(width, height int) (*Scene, error) {
	cameraConfig := CameraConfig{
		Position:   core.NewVec3(0, 4, -8),
		Up:         core.NewVec3(0, 1, 0),
		FocusPoint: core.NewVec3(0, 1, 0),
		VFov:       50.0,
	}

	s, err := NewScene("shadow", cameraConfig, width, height)
	if err != nil {
		return nil, err
	}
	s.Level = 0

	matte := material.DefaultPhongConfig()
	matte.Specular = 0

	s.AddObjects(
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0),
			material.NewPhong(core.NewVec3(0.8, 0.8, 0.8), matte)),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1,
			material.NewPhong(core.NewVec3(0.9, 0.9, 0.9), material.DefaultPhongConfig())),
		geometry.NewSphere(core.NewVec3(-2, 4, 0), 0.6,
			material.NewPhong(core.NewVec3(0.2, 0.2, 0.2), matte)),
	)
	s.AddLights(
		lights.NewPointLight(core.NewVec3(-6, 10, 0), core.NewVec3(0.8, 0.2, 0.2)),
		lights.NewPointLight(core.NewVec3(6, 8, -4), core.NewVec3(0.2, 0.2, 0.8)),
	)

	return s, nil
}
