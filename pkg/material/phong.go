package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Phong is a local illumination material: ambient + Lambert diffuse + Phong specular
type Phong struct {
	Color     ColorSource // Surface color (solid or textured)
	Ambient   float64     // Fraction of the base color visible without light
	Diffuse   float64     // Diffuse coefficient
	Specular  float64     // Specular coefficient
	Shininess float64     // Specular exponent
	gloss     float64
}

// PhongConfig holds the coefficients for a Phong material
type PhongConfig struct {
	Ambient    float64
	Diffuse    float64
	Specular   float64
	Shininess  float64
	Glossiness float64
}

// DefaultPhongConfig returns the coefficients used by the built-in scenes
func DefaultPhongConfig() PhongConfig {
	return PhongConfig{
		Ambient:    0.1,
		Diffuse:    0.7,
		Specular:   0.4,
		Shininess:  32,
		Glossiness: 0.0,
	}
}

// NewPhong creates a Phong material with a solid color
func NewPhong(color core.Vec3, config PhongConfig) *Phong {
	return NewTexturedPhong(NewSolidColor(color), config)
}

// NewTexturedPhong creates a Phong material with a color source
func NewTexturedPhong(color ColorSource, config PhongConfig) *Phong {
	// Clamp glossiness to valid range
	gloss := max(0.0, min(1.0, config.Glossiness))
	return &Phong{
		Color:     color,
		Ambient:   config.Ambient,
		Diffuse:   config.Diffuse,
		Specular:  config.Specular,
		Shininess: config.Shininess,
		gloss:     gloss,
	}
}

// NewMirror creates a fully glossy material with no local shading beyond ambient
func NewMirror(color core.Vec3) *Phong {
	return NewPhong(color, PhongConfig{
		Ambient:    0.05,
		Specular:   0.5,
		Shininess:  64,
		Glossiness: 1.0,
	})
}

// BaseColorAt returns the ambient term at a point
func (p *Phong) BaseColorAt(point core.Vec3) core.Vec3 {
	return p.Color.Evaluate(point).Multiply(p.Ambient)
}

// RenderColor returns the diffuse and specular contribution of one light
func (p *Phong) RenderColor(lightRay core.Ray, normal, lightColor, viewDir core.Vec3) core.Vec3 {
	lightDir := lightRay.Direction
	cosTheta := lightDir.Dot(normal)
	if cosTheta <= 0 {
		return core.Black // Light is below the surface
	}

	base := p.Color.Evaluate(lightRay.Origin)
	color := base.MultiplyVec(lightColor).Multiply(p.Diffuse * cosTheta)

	if p.Specular > 0 {
		// Reflecting the light direction gives a vector pointing away from the
		// light; its alignment with the view ray is the highlight strength.
		cosAlpha := lightDir.Reflect(normal).Dot(viewDir)
		if cosAlpha > 0 {
			color = color.Add(lightColor.Multiply(p.Specular * math.Pow(cosAlpha, p.Shininess)))
		}
	}

	return color
}

// Glossiness returns how much reflected color is added on top of local shading
func (p *Phong) Glossiness() float64 {
	return p.gloss
}
