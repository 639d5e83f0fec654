package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Object is anything a ray can hit
type Object interface {
	// Intersect returns the distance along the ray to the nearest surface
	// point in front of the origin. ok is false when the ray misses; a
	// returned distance is always > 0 when ok is true.
	Intersect(ray Ray) (t float64, ok bool)

	// NormalAt returns the unit surface normal at a point on the surface
	NormalAt(point Vec3) Vec3

	GetMaterial() Material
}

// Material computes the local color of a surface
type Material interface {
	// BaseColorAt returns the unlit color at a surface point
	BaseColorAt(point Vec3) Vec3

	// RenderColor returns the contribution of one unoccluded light.
	// lightRay starts at the surface and points toward the light, viewDir is
	// the direction of the ray that hit the surface.
	RenderColor(lightRay Ray, normal, lightColor, viewDir Vec3) Vec3

	// Glossiness in [0,1] scales the color arriving by reflection
	Glossiness() float64
}

// Light is a point light source
type Light interface {
	GetPosition() Vec3
	GetColor() Vec3
}
