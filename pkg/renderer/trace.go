package renderer

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Epsilon is the nearest distance RenderRay accepts as a hit. Closer hits
// are treated as self-intersection of a ray spawned on a surface.
const Epsilon = 0.001

// Hit is the nearest intersection found along a ray
type Hit struct {
	Distance float64
	Object   core.Object
}

// NearestHit scans objects in order and returns the closest strictly positive
// intersection. Ties go to the object that comes first in the slice, so the
// result depends on object order when two surfaces coincide.
func NearestHit(ray core.Ray, objects []core.Object) (Hit, bool) {
	var nearest Hit
	found := false

	for _, obj := range objects {
		dist, ok := obj.Intersect(ray)
		if !ok || dist <= 0 {
			continue
		}
		if !found || dist < nearest.Distance {
			nearest = Hit{Distance: dist, Object: obj}
			found = true
		}
	}

	return nearest, found
}

// InShadow reports whether any object other than the ignored ones blocks
// lightRay. It stops at the first blocker in slice order, so the returned
// distance belongs to that blocker and is not necessarily the nearest one;
// only the boolean is meaningful.
//
// Ignored objects are matched by identity, which requires comparable
// dynamic types (pointer receivers in practice).
func InShadow(objects []core.Object, lightRay core.Ray, ignored ...core.Object) (float64, bool) {
	for _, obj := range objects {
		if isIgnored(obj, ignored) {
			continue
		}
		if dist, ok := obj.Intersect(lightRay); ok && dist > 0 {
			return dist, true
		}
	}
	return 0, false
}

func isIgnored(obj core.Object, ignored []core.Object) bool {
	for _, other := range ignored {
		if obj == other {
			return true
		}
	}
	return false
}

// LocalColor returns the color at point without reflections: the material's
// base color plus the contribution of every light visible from point.
// Lights located exactly at point are skipped.
func LocalColor(objects []core.Object, lights []core.Light, rayDir, point core.Vec3, obj core.Object, normal core.Vec3) core.Vec3 {
	mat := obj.GetMaterial()
	color := mat.BaseColorAt(point)

	for _, light := range lights {
		toLight := light.GetPosition().Subtract(point)
		if toLight.IsZero() {
			continue
		}

		lightRay := core.NewRay(point, toLight)
		if _, blocked := InShadow(objects, lightRay, obj); blocked {
			continue
		}
		color = color.Add(mat.RenderColor(lightRay, normal, light.GetColor(), rayDir))
	}

	return color
}

// RenderRay returns the color seen along ray, following up to level
// mirror bounces. level 0 disables reflections. Colors are not clamped.
func RenderRay(objects []core.Object, lights []core.Light, ray core.Ray, background core.Vec3, level int) core.Vec3 {
	hit, ok := NearestHit(ray, objects)
	if !ok || hit.Distance <= Epsilon {
		return background
	}

	point := ray.At(hit.Distance)
	normal := hit.Object.NormalAt(point)
	color := LocalColor(objects, lights, ray.Direction, point, hit.Object, normal)

	if level <= 0 {
		return color
	}

	gloss := hit.Object.GetMaterial().Glossiness()
	reflected := ray.ReflectFrom(normal, point)
	reflectedColor := RenderRay(objects, lights, reflected, background, level-1)

	return color.Add(reflectedColor.Multiply(gloss))
}
