package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewMirrorScene creates a sphere between two facing mirror panels, producing a
// corridor of reflections whose length is the reflection level
func NewMirrorScene(width, height int) (*Scene, error) {
	cameraConfig := CameraConfig{
		Position:   core.NewVec3(0, 1.5, 3.5),
		Up:         core.NewVec3(0, 1, 0),
		FocusPoint: core.NewVec3(0.6, 1, -4),
		VFov:       60.0,
	}

	s, err := NewScene("mirrors", cameraConfig, width, height)
	if err != nil {
		return nil, err
	}
	s.Level = 8
	s.Background = core.NewVec3(0.05, 0.05, 0.1)

	mirror := material.NewMirror(core.NewVec3(0.9, 0.9, 1.0))
	floorConfig := material.DefaultPhongConfig()
	floorConfig.Specular = 0
	floor := material.NewTexturedPhong(
		material.NewCheckerboard(core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.2, 0.2), 0.5),
		floorConfig,
	)
	ball := material.NewPhong(core.NewVec3(1.0, 0.5, 0.1), material.DefaultPhongConfig())

	// Finite panels lower than the light, so shadow rays continuing past the
	// light leave the corridor over the mirrors
	s.AddObjects(mirrorPanel(core.NewVec3(-8, 0, -5), core.NewVec3(16, 0, 0), core.NewVec3(0, 5, 0), mirror)...)
	s.AddObjects(mirrorPanel(core.NewVec3(8, 0, 5), core.NewVec3(-16, 0, 0), core.NewVec3(0, 5, 0), mirror)...)
	s.AddObjects(
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), floor),
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, ball),
	)
	s.AddLights(lights.NewPointLight(core.NewVec3(1, 10, 1), core.NewVec3(0.9, 0.9, 0.9)))

	return s, nil
}

// mirrorPanel returns the rectangle corner, corner+u, corner+u+v, corner+v
// as two triangles facing u × v
func mirrorPanel(corner, u, v core.Vec3, mat core.Material) []core.Object {
	p1 := corner.Add(u)
	p2 := p1.Add(v)
	p3 := corner.Add(v)
	return []core.Object{
		geometry.NewTriangle(corner, p1, p2, mat),
		geometry.NewTriangle(corner, p2, p3, mat),
	}
}
