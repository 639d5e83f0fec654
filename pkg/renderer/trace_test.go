package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var testRay = core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

func isFinite(c core.Vec3) bool {
	for _, v := range []float64{c.X, c.Y, c.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func TestNearestHit(t *testing.T) {
	near := &MockObject{dist: 2, hit: true}
	far := &MockObject{dist: 5, hit: true}
	behind := &MockObject{dist: -1, hit: true}
	zero := &MockObject{dist: 0, hit: true}
	miss := &MockObject{dist: 1, hit: false}
	tie := &MockObject{dist: 2, hit: true}

	tests := []struct {
		name     string
		objects  []core.Object
		expected core.Object
		dist     float64
		found    bool
	}{
		{"empty", nil, nil, 0, false},
		{"only misses", []core.Object{miss}, nil, 0, false},
		{"non-positive excluded", []core.Object{behind, zero}, nil, 0, false},
		{"nearest wins", []core.Object{far, near}, near, 2, true},
		{"skips behind", []core.Object{behind, far}, far, 5, true},
		{"tie goes to first", []core.Object{near, tie}, near, 2, true},
		{"tie order dependent", []core.Object{tie, near}, tie, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, found := NearestHit(testRay, tt.objects)
			if found != tt.found {
				t.Fatalf("Expected found=%t, got %t", tt.found, found)
			}
			if !found {
				return
			}
			if hit.Object != tt.expected {
				t.Errorf("Wrong object returned")
			}
			if hit.Distance != tt.dist || hit.Distance <= 0 {
				t.Errorf("Expected distance %f, got %f", tt.dist, hit.Distance)
			}
		})
	}
}

func TestNearestHit_OverlappingSpheres(t *testing.T) {
	mat := &MockMaterial{}
	big := geometry.NewSphere(core.NewVec3(0, 0, 10), 3, mat)
	small := geometry.NewSphere(core.NewVec3(0, 0, 11), 1, mat)

	hit, ok := NearestHit(testRay, []core.Object{small, big})
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.Object != big || math.Abs(hit.Distance-7) > 1e-9 {
		t.Errorf("Expected big sphere at t=7, got t=%f", hit.Distance)
	}
}

func TestInShadow(t *testing.T) {
	occluder := &MockObject{dist: 3, hit: true}
	twin := &MockObject{dist: 3, hit: true}
	behind := &MockObject{dist: -2, hit: true}
	miss := &MockObject{hit: false}

	if dist, blocked := InShadow(nil, testRay); blocked || dist != 0 {
		t.Errorf("Empty scene must not shadow, got (%f, %t)", dist, blocked)
	}

	if dist, blocked := InShadow([]core.Object{occluder}, testRay); !blocked || dist != 3 {
		t.Errorf("Expected blocked at 3, got (%f, %t)", dist, blocked)
	}

	if _, blocked := InShadow([]core.Object{miss, behind}, testRay); blocked {
		t.Errorf("Misses and hits behind the origin must not shadow")
	}

	if _, blocked := InShadow([]core.Object{occluder}, testRay, occluder); blocked {
		t.Errorf("Ignored object must not shadow")
	}

	// Identity, not value equality: an equal but distinct object still blocks
	if _, blocked := InShadow([]core.Object{occluder, twin}, testRay, occluder); !blocked {
		t.Errorf("Distinct object with equal fields must still shadow")
	}
}

func TestInShadow_StopsAtFirstBlocker(t *testing.T) {
	first := &MockObject{dist: 9, hit: true}
	second := &MockObject{dist: 1, hit: true}

	dist, blocked := InShadow([]core.Object{first, second}, testRay)
	if !blocked || dist != 9 {
		t.Errorf("Expected first blocker distance 9, got (%f, %t)", dist, blocked)
	}
	if second.calls != 0 {
		t.Errorf("Scan should stop at the first blocker, second was queried %d times", second.calls)
	}
}

func TestLocalColor(t *testing.T) {
	mat := &MockMaterial{base: core.NewVec3(0.1, 0.1, 0.1), lit: core.NewVec3(0.5, 0.5, 0.5)}
	surface := &MockObject{dist: 1, hit: true, material: mat}
	point := core.NewVec3(0, 0, 0)
	normal := core.NewVec3(0, 1, 0)

	red := MockLight{position: core.NewVec3(0, 5, 0), color: core.NewVec3(1, 0, 0)}
	blue := MockLight{position: core.NewVec3(0, 5, 5), color: core.NewVec3(0, 0, 1)}
	atPoint := MockLight{position: point, color: core.NewVec3(0, 1, 0)}

	t.Run("all lights visible", func(t *testing.T) {
		color := LocalColor([]core.Object{surface}, []core.Light{red, blue}, testRay.Direction, point, surface, normal)
		expected := core.NewVec3(0.6, 0.1, 0.6)
		if !vecNear(color, expected, 1e-9) {
			t.Errorf("Expected %v, got %v", expected, color)
		}
	})

	t.Run("shadowed light skipped", func(t *testing.T) {
		occluder := &MockObject{dist: 2, hit: true}
		color := LocalColor([]core.Object{surface, occluder}, []core.Light{red}, testRay.Direction, point, surface, normal)
		if !vecNear(color, mat.base, 1e-9) {
			t.Errorf("Expected base color only, got %v", color)
		}
	})

	t.Run("light at point skipped", func(t *testing.T) {
		color := LocalColor([]core.Object{surface}, []core.Light{atPoint}, testRay.Direction, point, surface, normal)
		if !vecNear(color, mat.base, 1e-9) {
			t.Errorf("Expected base color only, got %v", color)
		}
	})

	t.Run("no clamping", func(t *testing.T) {
		bright := MockLight{position: core.NewVec3(0, 5, 0), color: core.NewVec3(4, 4, 4)}
		color := LocalColor([]core.Object{surface}, []core.Light{bright, bright}, testRay.Direction, point, surface, normal)
		if color.X <= 1 {
			t.Errorf("Accumulated color should exceed 1, got %v", color)
		}
	})
}

func TestRenderRay_Miss(t *testing.T) {
	background := core.NewVec3(0.2, 0.3, 0.4)

	tests := []struct {
		name    string
		objects []core.Object
	}{
		{"no objects", nil},
		{"miss", []core.Object{&MockObject{hit: false}}},
		{"within epsilon", []core.Object{&MockObject{dist: Epsilon / 2, hit: true, material: &MockMaterial{}}}},
		{"exactly epsilon", []core.Object{&MockObject{dist: Epsilon, hit: true, material: &MockMaterial{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := RenderRay(tt.objects, nil, testRay, background, 3)
			if color != background {
				t.Errorf("Expected background %v, got %v", background, color)
			}
		})
	}
}

func TestRenderRay_Glossiness(t *testing.T) {
	background := core.NewVec3(0.2, 0.4, 0.6)
	mirrorMat := &MockMaterial{base: core.NewVec3(0.1, 0.1, 0.1), gloss: 0.5}
	// Plane facing the ray; the reflected ray leaves toward -z and escapes
	mirror := geometry.NewPlane(core.NewVec3(0, 0, 4), core.NewVec3(0, 0, -1), mirrorMat)

	level0 := RenderRay([]core.Object{mirror}, nil, testRay, background, 0)
	if !vecNear(level0, mirrorMat.base, 1e-9) {
		t.Errorf("Level 0 should return local color, got %v", level0)
	}

	level1 := RenderRay([]core.Object{mirror}, nil, testRay, background, 1)
	expected := mirrorMat.base.Add(background.Multiply(0.5))
	if !vecNear(level1, expected, 1e-9) {
		t.Errorf("Expected %v, got %v", expected, level1)
	}
}

func TestRenderRay_FacingMirrorsTerminate(t *testing.T) {
	tests := []struct {
		level         int
		expectedShade int
	}{
		{0, 1},
		{1, 2},
		{5, 6},
		{20, 21},
	}

	for _, tt := range tests {
		mat := &MockMaterial{base: core.NewVec3(0.1, 0.1, 0.1), gloss: 1.0}
		front := geometry.NewPlane(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), mat)
		back := geometry.NewPlane(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), mat)
		objects := []core.Object{front, back}

		color := RenderRay(objects, nil, testRay, core.Black, tt.level)
		if !isFinite(color) {
			t.Errorf("Level %d: expected finite color, got %v", tt.level, color)
		}
		if mat.baseCalls != tt.expectedShade {
			t.Errorf("Level %d: expected %d shaded hits, got %d", tt.level, tt.expectedShade, mat.baseCalls)
		}

		// Every bounce adds the base color with full gloss
		expected := mat.base.Multiply(float64(tt.expectedShade))
		if !vecNear(color, expected, 1e-9) {
			t.Errorf("Level %d: expected %v, got %v", tt.level, expected, color)
		}
	}
}

func TestRenderRay_NegativeLevelActsAsZero(t *testing.T) {
	mat := &MockMaterial{base: core.NewVec3(0.1, 0.1, 0.1), gloss: 1.0}
	front := geometry.NewPlane(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1), mat)
	back := geometry.NewPlane(core.NewVec3(0, 0, -1), core.NewVec3(0, 0, 1), mat)

	RenderRay([]core.Object{front, back}, nil, testRay, core.Black, -3)
	if mat.baseCalls != 1 {
		t.Errorf("Expected a single shaded hit, got %d", mat.baseCalls)
	}
}

func TestRenderRay_SingleSphereScenario(t *testing.T) {
	sphere := geometry.NewSphere(core.NewVec3(0, 0, 0), 1,
		material.NewPhong(core.NewVec3(1, 0, 0), material.DefaultPhongConfig()))
	light := lights.NewPointLight(core.NewVec3(0, 5, 0), core.White)
	objects := []core.Object{sphere}
	lightList := []core.Light{light}

	camera := newTestCamera(t, 101, 101)

	center, _ := camera.BuildRay(50, 50)
	color := RenderRay(objects, lightList, center, core.Black, 0)
	if color == core.Black {
		t.Errorf("Center pixel should see the sphere, got black")
	}

	corner, _ := camera.BuildRay(0, 0)
	if color := RenderRay(objects, lightList, corner, core.Black, 0); color != core.Black {
		t.Errorf("Corner pixel should be background, got %v", color)
	}
}

func TestRenderRay_OccluderDimsSurface(t *testing.T) {
	floorMat := material.NewPhong(core.NewVec3(0.8, 0.8, 0.8), material.DefaultPhongConfig())
	floor := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), floorMat)
	occluder := geometry.NewSphere(core.NewVec3(0, 5, 0), 1,
		material.NewPhong(core.NewVec3(0, 0, 1), material.DefaultPhongConfig()))
	light := lights.NewPointLight(core.NewVec3(0, 10, 0), core.White)

	// View ray from the side onto the floor point directly under the light
	eye := core.NewVec3(0, 3, -3)
	ray := core.NewRay(eye, core.NewVec3(0, 0, 0).Subtract(eye))

	lit := RenderRay([]core.Object{floor}, []core.Light{light}, ray, core.Black, 0)
	shadowed := RenderRay([]core.Object{floor, occluder}, []core.Light{light}, ray, core.Black, 0)

	if !(shadowed.X < lit.X && shadowed.Y < lit.Y && shadowed.Z < lit.Z) {
		t.Errorf("Occluded floor should be strictly dimmer: lit %v, shadowed %v", lit, shadowed)
	}

	ambientOnly := floorMat.BaseColorAt(core.NewVec3(0, 0, 0))
	if !vecNear(shadowed, ambientOnly, 1e-9) {
		t.Errorf("Occluded floor should show only its base color %v, got %v", ambientOnly, shadowed)
	}
}
