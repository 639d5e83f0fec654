package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DummyMaterial satisfies core.Material for shape tests
type DummyMaterial struct{}

func (DummyMaterial) BaseColorAt(point core.Vec3) core.Vec3 { return core.Black }
func (DummyMaterial) RenderColor(lightRay core.Ray, normal, lightColor, viewDir core.Vec3) core.Vec3 {
	return core.Black
}
func (DummyMaterial) Glossiness() float64 { return 0 }

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}
