package core

import "errors"

// ErrZeroDirection is returned when a ray is built from a zero-length direction
var ErrZeroDirection = errors.New("ray direction must not be the zero vector")

// Ray is an origin and a unit-length direction. Rays are values and never
// mutated; operations that "change" a ray return a new one.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay creates a ray, normalizing the direction.
// The direction must not be the zero vector; use NewRayChecked when the
// caller cannot guarantee that.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// NewRayChecked is NewRay with the zero-direction precondition enforced
func NewRayChecked(origin, direction Vec3) (Ray, error) {
	if direction.IsZero() {
		return Ray{}, ErrZeroDirection
	}
	return NewRay(origin, direction), nil
}

// At returns the point at signed distance t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Reflect returns the ray mirrored about a unit normal, keeping the origin
func (r Ray) Reflect(normal Vec3) Ray {
	return r.ReflectFrom(normal, r.Origin)
}

// ReflectFrom returns the ray mirrored about a unit normal, starting at newOrigin
func (r Ray) ReflectFrom(normal, newOrigin Vec3) Ray {
	return NewRay(newOrigin, r.Direction.Reflect(normal))
}
