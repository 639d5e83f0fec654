package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	Camera       *renderer.Camera
	CameraConfig CameraConfig
	Objects      []core.Object // Objects in the scene, in intersection order
	Lights       []core.Light  // Lights in the scene
	Background   core.Vec3     // Color of rays that hit nothing
	Level        int           // Reflection bounces, 0 = none
	Width        int           // Screen width in pixels
	Height       int           // Screen height in pixels
}

// CameraConfig describes the view of a scene
type CameraConfig struct {
	Position   core.Vec3
	Up         core.Vec3
	FocusPoint core.Vec3
	VFov       float64 // Field of view in degrees
}

// NewScene creates an empty scene with its camera set up for width x height
func NewScene(name string, cameraConfig CameraConfig, width, height int) (*Scene, error) {
	s := &Scene{
		Name:         name,
		CameraConfig: cameraConfig,
		Objects:      make([]core.Object, 0),
		Lights:       make([]core.Light, 0),
		Background:   core.Black,
		Level:        1,
		Width:        width,
		Height:       height,
	}
	if err := s.buildCamera(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scene) buildCamera() error {
	cfg := s.CameraConfig
	camera, err := renderer.NewCamera(cfg.Position, cfg.Up, cfg.FocusPoint, cfg.VFov*math.Pi/180.0)
	if err != nil {
		return fmt.Errorf("scene %q: invalid camera: %w", s.Name, err)
	}
	if err := camera.SetScreenSize(s.Width, s.Height); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	s.Camera = camera
	return nil
}

// SetScreenSize changes the output resolution
func (s *Scene) SetScreenSize(width, height int) error {
	if err := s.Camera.SetScreenSize(width, height); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	s.Width = width
	s.Height = height
	return nil
}

// SetCamera replaces the view, keeping the current resolution
func (s *Scene) SetCamera(cameraConfig CameraConfig) error {
	previous := s.CameraConfig
	s.CameraConfig = cameraConfig
	if err := s.buildCamera(); err != nil {
		s.CameraConfig = previous
		return err
	}
	return nil
}

// Validate checks that the scene can be rendered
func (s *Scene) Validate() error {
	if s.Camera == nil {
		return fmt.Errorf("scene %q has no camera", s.Name)
	}
	if _, ok := s.Camera.Viewport(); !ok {
		return fmt.Errorf("scene %q: %w", s.Name, renderer.ErrNoViewport)
	}
	if s.Level < 0 {
		return fmt.Errorf("scene %q: reflection level %d must not be negative", s.Name, s.Level)
	}
	for i, obj := range s.Objects {
		if obj == nil || obj.GetMaterial() == nil {
			return fmt.Errorf("scene %q: object %d has no material", s.Name, i)
		}
	}
	return nil
}

// AddObjects appends objects to the scene
func (s *Scene) AddObjects(objects ...core.Object) {
	s.Objects = append(s.Objects, objects...)
}

// AddLights appends lights to the scene
func (s *Scene) AddLights(lights ...core.Light) {
	s.Lights = append(s.Lights, lights...)
}

func (s *Scene) GetCamera() *renderer.Camera   { return s.Camera }
func (s *Scene) GetObjects() []core.Object     { return s.Objects }
func (s *Scene) GetLights() []core.Light       { return s.Lights }
func (s *Scene) GetBackgroundColor() core.Vec3 { return s.Background }
func (s *Scene) GetLevel() int                 { return s.Level }
