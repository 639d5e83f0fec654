package core

import (
	"errors"
	"math"
	"testing"
)

func TestNewRay_NormalizesDirection(t *testing.T) {
	directions := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(10, 0, 0),
		NewVec3(1e-6, 2e-6, -3e-6),
		NewVec3(-300, 400, 1200),
	}

	for _, d := range directions {
		ray := NewRay(NewVec3(1, 2, 3), d)
		if math.Abs(ray.Direction.Length()-1) > tolerance {
			t.Errorf("Direction %v: expected unit length, got %f", d, ray.Direction.Length())
		}
	}
}

func TestNewRayChecked(t *testing.T) {
	if _, err := NewRayChecked(Vec3{}, Vec3{}); !errors.Is(err, ErrZeroDirection) {
		t.Errorf("Expected ErrZeroDirection, got %v", err)
	}

	ray, err := NewRayChecked(Vec3{}, NewVec3(0, 2, 0))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !vecNear(ray.Direction, NewVec3(0, 1, 0)) {
		t.Errorf("Expected (0,1,0), got %v", ray.Direction)
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 1, 1), NewVec3(0, 0, 5))

	if !vecNear(ray.At(0), ray.Origin) {
		t.Errorf("At(0) should equal origin, got %v", ray.At(0))
	}

	t1, t2 := 1.5, 2.25
	step := ray.At(t1).Add(ray.Direction.Multiply(t2))
	if !vecNear(ray.At(t1+t2), step) {
		t.Errorf("At(t1+t2) = %v, expected %v", ray.At(t1+t2), step)
	}

	behind := ray.At(-2)
	if !vecNear(behind, NewVec3(1, 1, -1)) {
		t.Errorf("At(-2) = %v, expected (1,1,-1)", behind)
	}
}

func TestRay_ReflectTwiceIsIdentity(t *testing.T) {
	normals := []Vec3{
		NewVec3(0, 1, 0),
		NewVec3(1, 1, 0).Normalize(),
		NewVec3(-0.3, 0.2, 0.9).Normalize(),
	}
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(1, -2, 3))

	for _, n := range normals {
		twice := ray.Reflect(n).Reflect(n)
		if !vecNear(twice.Direction, ray.Direction) {
			t.Errorf("Normal %v: expected %v, got %v", n, ray.Direction, twice.Direction)
		}
	}
}

func TestRay_ReflectFrom(t *testing.T) {
	ray := NewRay(NewVec3(0, 5, 0), NewVec3(1, -1, 0))
	hit := NewVec3(5, 0, 0)

	reflected := ray.ReflectFrom(NewVec3(0, 1, 0), hit)
	if reflected.Origin != hit {
		t.Errorf("Expected origin %v, got %v", hit, reflected.Origin)
	}
	if !vecNear(reflected.Direction, NewVec3(1, 1, 0).Normalize()) {
		t.Errorf("Unexpected reflected direction %v", reflected.Direction)
	}
	if ray.Origin != NewVec3(0, 5, 0) {
		t.Errorf("Reflect must not modify the source ray")
	}
}

func TestRay_ReflectFromLeavesSurface(t *testing.T) {
	normal := NewVec3(0, 0, 1)
	tests := []struct {
		name string
		dir  Vec3
	}{
		{"head on", NewVec3(0, 0, -1)},
		{"oblique", NewVec3(1, 2, -3)},
		{"grazing", NewVec3(1, 0, -0.01)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := NewRay(NewVec3(0, 0, 5), tt.dir)
			reflected := ray.ReflectFrom(normal, NewVec3(0, 0, 0))
			if reflected.Direction.Dot(normal) <= 0 {
				t.Errorf("Reflected direction %v points into the surface", reflected.Direction)
			}
			// Only the normal component flips
			if math.Abs(reflected.Direction.Dot(normal)+ray.Direction.Dot(normal)) > tolerance {
				t.Errorf("Normal component not mirrored: %v vs %v", reflected.Direction, ray.Direction)
			}
		})
	}
}
