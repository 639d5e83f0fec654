package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// MockObject implements core.Object with fixed answers
type MockObject struct {
	dist     float64
	hit      bool
	normal   core.Vec3
	material core.Material
	calls    int
}

func (m *MockObject) Intersect(ray core.Ray) (float64, bool) {
	m.calls++
	return m.dist, m.hit
}

func (m *MockObject) NormalAt(point core.Vec3) core.Vec3 { return m.normal }
func (m *MockObject) GetMaterial() core.Material         { return m.material }

// MockMaterial implements core.Material and counts how often it is shaded
type MockMaterial struct {
	base       core.Vec3
	lit        core.Vec3
	gloss      float64
	baseCalls  int
	renderCall int
}

func (m *MockMaterial) BaseColorAt(point core.Vec3) core.Vec3 {
	m.baseCalls++
	return m.base
}

func (m *MockMaterial) RenderColor(lightRay core.Ray, normal, lightColor, viewDir core.Vec3) core.Vec3 {
	m.renderCall++
	return m.lit.MultiplyVec(lightColor)
}

func (m *MockMaterial) Glossiness() float64 { return m.gloss }

// MockLight implements core.Light
type MockLight struct {
	position core.Vec3
	color    core.Vec3
}

func (l MockLight) GetPosition() core.Vec3 { return l.position }
func (l MockLight) GetColor() core.Vec3    { return l.color }
