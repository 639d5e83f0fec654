package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight is an infinitely small light emitting uniformly in all directions
type PointLight struct {
	Position core.Vec3
	Color    core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, color core.Vec3) *PointLight {
	return &PointLight{Position: position, Color: color}
}

// GetPosition returns the light position
func (l *PointLight) GetPosition() core.Vec3 {
	return l.Position
}

// GetColor returns the light color
func (l *PointLight) GetColor() core.Vec3 {
	return l.Color
}
