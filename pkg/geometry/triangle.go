package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 core.Vec3     // The three vertices
	Material   core.Material // Material of the triangle
	normal     core.Vec3     // Cached normal vector
	edge1      core.Vec3
	edge2      core.Vec3
}

// NewTriangle creates a new triangle from three vertices.
// The normal follows the winding order: (v1-v0) × (v2-v0).
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: material,
		edge1:    v1.Subtract(v0),
		edge2:    v2.Subtract(v0),
	}
	t.normal = t.edge1.Cross(t.edge2).Normalize()
	return t
}

// Intersect tests the ray against the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Intersect(ray core.Ray) (float64, bool) {
	const epsilon = 1e-8

	h := ray.Direction.Cross(t.edge2)
	a := t.edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if a > -epsilon && a < epsilon {
		return 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(t.edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	dist := f * t.edge2.Dot(q)
	if dist <= hitEpsilon {
		return 0, false
	}

	return dist, true
}

// NormalAt returns the triangle's face normal
func (t *Triangle) NormalAt(point core.Vec3) core.Vec3 {
	return t.normal
}

// GetMaterial returns the triangle's material
func (t *Triangle) GetMaterial() core.Material {
	return t.Material
}
