package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Vec3Cfg is a vector written as a JSON array [x, y, z]
type Vec3Cfg [3]float64

func (v Vec3Cfg) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// CameraCfg is the camera section of a scene file
type CameraCfg struct {
	Position   Vec3Cfg  `json:"position"`
	Up         *Vec3Cfg `json:"up,omitempty"` // Defaults to +Y
	FocusPoint Vec3Cfg  `json:"focusPoint"`
	FOV        float64  `json:"fov"` // Degrees
}

// CheckerCfg turns a material's color into a checkerboard
type CheckerCfg struct {
	Color2 Vec3Cfg `json:"color2"`
	Size   float64 `json:"size,omitempty"`
}

// MaterialCfg describes a Phong material. Omitted coefficients take the
// values of material.DefaultPhongConfig.
type MaterialCfg struct {
	Color      Vec3Cfg     `json:"color"`
	Checker    *CheckerCfg `json:"checker,omitempty"`
	Ambient    *float64    `json:"ambient,omitempty"`
	Diffuse    *float64    `json:"diffuse,omitempty"`
	Specular   *float64    `json:"specular,omitempty"`
	Shininess  *float64    `json:"shininess,omitempty"`
	Glossiness *float64    `json:"glossiness,omitempty"`
}

// LightCfg describes a point light
type LightCfg struct {
	Position Vec3Cfg `json:"position"`
	Color    Vec3Cfg `json:"color"`
}

// ObjectCfg describes one object. Type selects which fields apply:
// "sphere" uses center and radius, "plane" uses point and normal,
// "triangle" uses vertices.
type ObjectCfg struct {
	Type     string    `json:"type"`
	Material string    `json:"material"`
	Center   Vec3Cfg   `json:"center,omitempty"`
	Radius   float64   `json:"radius,omitempty"`
	Point    Vec3Cfg   `json:"point,omitempty"`
	Normal   Vec3Cfg   `json:"normal,omitempty"`
	Vertices []Vec3Cfg `json:"vertices,omitempty"`
}

// Config is the root of a JSON scene file
type Config struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Width       int                    `json:"width"`
	Height      int                    `json:"height"`
	Level       int                    `json:"level"`
	Background  Vec3Cfg                `json:"background"`
	Camera      CameraCfg              `json:"camera"`
	Materials   map[string]MaterialCfg `json:"materials"`
	Lights      []LightCfg             `json:"lights"`
	Objects     []ObjectCfg            `json:"objects"` // In intersection order
}

// Resolution used when a scene file omits width or height
const (
	defaultFileWidth  = 400
	defaultFileHeight = 300
)

// LoadFile reads and builds a scene from a JSON file
func LoadFile(path string) (*Scene, error) {
	cfg, err := readConfig(path)
	if err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = fileSceneID(path)
	}
	s, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func readConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read scene file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: parse scene: %w", path, err)
	}
	return cfg, nil
}

// Parse builds a scene from JSON
func Parse(data []byte) (*Scene, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return cfg.Build()
}

// Build validates the configuration and creates the scene
func (cfg Config) Build() (*Scene, error) {
	if cfg.Name == "" {
		cfg.Name = "custom"
	}
	if cfg.Width == 0 {
		cfg.Width = defaultFileWidth
	}
	if cfg.Height == 0 {
		cfg.Height = defaultFileHeight
	}
	if cfg.Level < 0 {
		return nil, fmt.Errorf("invalid level %d: must not be negative", cfg.Level)
	}

	up := Vec3Cfg{0, 1, 0}
	if cfg.Camera.Up != nil {
		up = *cfg.Camera.Up
	}
	cameraConfig := CameraConfig{
		Position:   cfg.Camera.Position.vec(),
		Up:         up.vec(),
		FocusPoint: cfg.Camera.FocusPoint.vec(),
		VFov:       cfg.Camera.FOV,
	}

	s, err := NewScene(cfg.Name, cameraConfig, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	s.Level = cfg.Level
	s.Background = cfg.Background.vec()

	materials := make(map[string]core.Material, len(cfg.Materials))
	for name, mc := range cfg.Materials {
		materials[name] = mc.build()
	}

	for i, oc := range cfg.Objects {
		mat, ok := materials[oc.Material]
		if !ok {
			return nil, fmt.Errorf("object %d: unknown material %q", i, oc.Material)
		}
		obj, err := oc.build(mat)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		s.AddObjects(obj)
	}

	for _, lc := range cfg.Lights {
		s.AddLights(lights.NewPointLight(lc.Position.vec(), lc.Color.vec()))
	}

	return s, nil
}

func (mc MaterialCfg) build() core.Material {
	config := material.DefaultPhongConfig()
	setIf(&config.Ambient, mc.Ambient)
	setIf(&config.Diffuse, mc.Diffuse)
	setIf(&config.Specular, mc.Specular)
	setIf(&config.Shininess, mc.Shininess)
	setIf(&config.Glossiness, mc.Glossiness)

	if mc.Checker != nil {
		checker := material.NewCheckerboard(mc.Color.vec(), mc.Checker.Color2.vec(), mc.Checker.Size)
		return material.NewTexturedPhong(checker, config)
	}
	return material.NewPhong(mc.Color.vec(), config)
}

func setIf(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func (oc ObjectCfg) build(mat core.Material) (core.Object, error) {
	switch oc.Type {
	case "sphere":
		if oc.Radius <= 0 {
			return nil, fmt.Errorf("invalid sphere radius %f: must be positive", oc.Radius)
		}
		return geometry.NewSphere(oc.Center.vec(), oc.Radius, mat), nil
	case "plane":
		if oc.Normal.vec().IsZero() {
			return nil, fmt.Errorf("plane normal must not be zero")
		}
		return geometry.NewPlane(oc.Point.vec(), oc.Normal.vec(), mat), nil
	case "triangle":
		if len(oc.Vertices) != 3 {
			return nil, fmt.Errorf("triangle needs 3 vertices, got %d", len(oc.Vertices))
		}
		v0, v1, v2 := oc.Vertices[0].vec(), oc.Vertices[1].vec(), oc.Vertices[2].vec()
		if v1.Subtract(v0).Cross(v2.Subtract(v0)).IsZero() {
			return nil, fmt.Errorf("triangle vertices are collinear")
		}
		return geometry.NewTriangle(v0, v1, v2, mat), nil
	default:
		return nil, fmt.Errorf("unsupported object type %q", oc.Type)
	}
}
