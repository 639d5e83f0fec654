package renderer

import (
	"context"
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetObjects() []core.Object
	GetLights() []core.Light
	GetBackgroundColor() core.Vec3
	GetLevel() int
}

// RenderConfig contains frame driver settings
type RenderConfig struct {
	Workers int     // 0 = serial frame loop, < 0 = one goroutine per CPU
	Gamma   float64 // Gamma for image output, 1 = none
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Workers: -1,
		Gamma:   1.0,
	}
}

// Raytracer renders a scene whose camera screen size is already set
type Raytracer struct {
	scene  Scene
	config RenderConfig
	logger core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(scene Scene, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = discardLogger{}
	}
	return &Raytracer{
		scene:  scene,
		config: DefaultRenderConfig(),
		logger: logger,
	}
}

// SetRenderConfig updates the render configuration
func (rt *Raytracer) SetRenderConfig(config RenderConfig) {
	rt.config = config
}

// RenderTo traces the scene into sink using the configured frame driver
func (rt *Raytracer) RenderTo(ctx context.Context, sink PixelSink) (RenderStats, error) {
	camera := rt.scene.GetCamera()
	objects := rt.scene.GetObjects()
	lights := rt.scene.GetLights()
	background := rt.scene.GetBackgroundColor()
	level := rt.scene.GetLevel()

	rt.logger.Printf("Rendering %d objects, %d lights, reflection level %d\n", len(objects), len(lights), level)

	var stats RenderStats
	var err error
	if rt.config.Workers == 0 {
		stats, err = camera.RenderContext(ctx, sink, objects, lights, background, level)
	} else {
		stats, err = camera.RenderParallel(ctx, sink, objects, lights, background, level, rt.config.Workers)
	}
	if err != nil {
		rt.logger.Printf("Render stopped after %d scanlines: %v\n", stats.Scanlines, err)
		return stats, err
	}

	rt.logger.Printf("Rendered %d pixels in %v using %d workers (%.0f pixels/s)\n",
		stats.TotalPixels, stats.Duration, stats.Workers, stats.PixelsPerSecond())
	return stats, nil
}

// RenderImage traces the scene into a new RGBA image
func (rt *Raytracer) RenderImage(ctx context.Context) (*image.RGBA, RenderStats, error) {
	vp, ok := rt.scene.GetCamera().Viewport()
	if !ok {
		return nil, RenderStats{}, ErrNoViewport
	}

	sink := NewImageSink(vp.Width, vp.Height)
	sink.SetGamma(rt.config.Gamma)

	stats, err := rt.RenderTo(ctx, sink.Set)
	if err != nil {
		return nil, stats, err
	}
	return sink.Image(), stats, nil
}

// RenderCanvas traces the scene onto a new gg canvas
func (rt *Raytracer) RenderCanvas(ctx context.Context) (*CanvasSink, RenderStats, error) {
	vp, ok := rt.scene.GetCamera().Viewport()
	if !ok {
		return nil, RenderStats{}, ErrNoViewport
	}

	canvas := NewCanvasSink(vp.Width, vp.Height)
	canvas.SetGamma(rt.config.Gamma)

	stats, err := rt.RenderTo(ctx, canvas.Set)
	if err != nil {
		return nil, stats, err
	}
	return canvas, stats, nil
}
