package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	Point    core.Vec3     // A point on the plane
	Normal   core.Vec3     // Unit normal vector
	Material core.Material // Material of the plane
}

// NewPlane creates a new plane
func NewPlane(point, normal core.Vec3, material core.Material) *Plane {
	return &Plane{
		Point:    point,
		Normal:   normal.Normalize(), // Ensure normal is normalized
		Material: material,
	}
}

// Intersect returns the distance along the ray to the plane
func (p *Plane) Intersect(ray core.Ray) (float64, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return 0, false
	}

	// t = (point_on_plane - ray_origin) · normal / (ray_direction · normal)
	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if t <= hitEpsilon {
		return 0, false
	}

	return t, true
}

// NormalAt returns the plane normal, which is the same everywhere
func (p *Plane) NormalAt(point core.Vec3) core.Vec3 {
	return p.Normal
}

// GetMaterial returns the plane's material
func (p *Plane) GetMaterial() core.Material {
	return p.Material
}
