package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

var (
	// ErrDegenerateBasis is returned when the focus point equals the position
	// or the up vector is parallel to the view direction
	ErrDegenerateBasis = errors.New("degenerate camera basis")

	// ErrInvalidFieldOfView is returned for a field of view outside (0, π)
	ErrInvalidFieldOfView = errors.New("field of view must be in (0, pi) radians")

	// ErrScreenTooSmall is returned when width or height is below 2 pixels
	ErrScreenTooSmall = errors.New("screen size must be at least 2x2")

	// ErrNoViewport is returned when rendering before SetScreenSize
	ErrNoViewport = errors.New("screen size not set")
)

// Basis is the camera-local orthonormal frame: X right, Y up, Z forward
type Basis struct {
	X, Y, Z core.Vec3
}

// Viewport is the view-plane geometry derived from a camera basis and a
// screen size. It is computed as a whole and never updated in place.
type Viewport struct {
	Width, Height   int
	HalfSceneWidth  float64
	HalfSceneHeight float64
	PixelWidth      float64
	PixelHeight     float64

	PixelWidthVec      core.Vec3
	PixelHeightVec     core.Vec3
	HalfSceneWidthVec  core.Vec3
	HalfSceneHeightVec core.Vec3
}

// Camera generates primary rays through a pixel grid
type Camera struct {
	position    core.Vec3
	up          core.Vec3
	focusPoint  core.Vec3
	fieldOfView float64 // radians

	basis    Basis
	viewport *Viewport // nil until SetScreenSize
}

// NewCamera creates a camera at position looking at focusPoint.
// fieldOfView is in radians and must be in (0, π).
func NewCamera(position, up, focusPoint core.Vec3, fieldOfView float64) (*Camera, error) {
	if !(fieldOfView > 0 && fieldOfView < math.Pi) {
		return nil, fmt.Errorf("%w: got %f", ErrInvalidFieldOfView, fieldOfView)
	}

	basis, err := computeBasis(position, up, focusPoint)
	if err != nil {
		return nil, err
	}

	return &Camera{
		position:    position,
		up:          up,
		focusPoint:  focusPoint,
		fieldOfView: fieldOfView,
		basis:       basis,
	}, nil
}

func computeBasis(position, up, focusPoint core.Vec3) (Basis, error) {
	view := focusPoint.Subtract(position)
	if view.Length() < 1e-12 {
		return Basis{}, fmt.Errorf("%w: focus point equals position %v", ErrDegenerateBasis, position)
	}
	z := view.Normalize()

	side := z.Cross(up)
	if side.Length() < 1e-12*max(1, up.Length()) {
		return Basis{}, fmt.Errorf("%w: up %v is parallel to view direction %v", ErrDegenerateBasis, up, z)
	}
	x := side.Normalize()

	// x and z are orthonormal, so y is already unit length
	y := x.Cross(z)

	return Basis{X: x, Y: y, Z: z}, nil
}

// LookAt moves the camera, recomputing the basis and, if a screen size was
// set, the viewport. On error the camera is left unchanged.
func (c *Camera) LookAt(position, up, focusPoint core.Vec3) error {
	basis, err := computeBasis(position, up, focusPoint)
	if err != nil {
		return err
	}

	var viewport *Viewport
	if c.viewport != nil {
		vp := newViewport(basis, c.fieldOfView, c.viewport.Width, c.viewport.Height)
		viewport = &vp
	}

	c.position = position
	c.up = up
	c.focusPoint = focusPoint
	c.basis = basis
	c.viewport = viewport
	return nil
}

// SetScreenSize computes the viewport for a width x height screen.
// Both dimensions must be at least 2. Must be called before rendering and
// again whenever the resolution changes.
func (c *Camera) SetScreenSize(width, height int) error {
	if width < 2 || height < 2 {
		return fmt.Errorf("%w: got %dx%d", ErrScreenTooSmall, width, height)
	}

	vp := newViewport(c.basis, c.fieldOfView, width, height)
	c.viewport = &vp
	return nil
}

func newViewport(basis Basis, fieldOfView float64, width, height int) Viewport {
	ratio := float64(width) / float64(height)
	halfSceneHeight := math.Tan(fieldOfView / 2)
	halfSceneWidth := ratio * halfSceneHeight
	pixelWidth := halfSceneWidth / float64(width-1) * 2
	pixelHeight := halfSceneHeight / float64(height-1) * 2

	return Viewport{
		Width:              width,
		Height:             height,
		HalfSceneWidth:     halfSceneWidth,
		HalfSceneHeight:    halfSceneHeight,
		PixelWidth:         pixelWidth,
		PixelHeight:        pixelHeight,
		PixelWidthVec:      basis.X.Multiply(pixelWidth),
		PixelHeightVec:     basis.Y.Multiply(pixelHeight),
		HalfSceneWidthVec:  basis.X.Multiply(halfSceneWidth),
		HalfSceneHeightVec: basis.Y.Multiply(halfSceneHeight),
	}
}

// Position returns the camera position
func (c *Camera) Position() core.Vec3 {
	return c.position
}

// FieldOfView returns the field of view in radians
func (c *Camera) FieldOfView() float64 {
	return c.fieldOfView
}

// Basis returns the camera's orthonormal frame
func (c *Camera) Basis() Basis {
	return c.basis
}

// Viewport returns the current viewport, or false if SetScreenSize was never called
func (c *Camera) Viewport() (Viewport, bool) {
	if c.viewport == nil {
		return Viewport{}, false
	}
	return *c.viewport, true
}

// BuildRay returns the primary ray through pixel (x, y).
// Valid coordinates are x in [0, width] and y in [0, height], both inclusive:
// (0,0) maps to the lower left corner of the view plane and (width, height)
// to the upper right.
func (c *Camera) BuildRay(x, y int) (core.Ray, error) {
	f, err := c.snapshot()
	if err != nil {
		return core.Ray{}, err
	}
	return f.buildRay(x, y), nil
}

// frame is an immutable copy of the state needed to generate primary rays,
// taken once per render so SetScreenSize cannot tear a frame.
type frame struct {
	position core.Vec3
	forward  core.Vec3
	viewport Viewport
}

func (c *Camera) snapshot() (frame, error) {
	if c.viewport == nil {
		return frame{}, ErrNoViewport
	}
	return frame{
		position: c.position,
		forward:  c.basis.Z,
		viewport: *c.viewport,
	}, nil
}

func (f frame) buildRay(x, y int) core.Ray {
	vp := &f.viewport
	xComp := vp.PixelWidthVec.Multiply(float64(x)).Subtract(vp.HalfSceneWidthVec)
	yComp := vp.PixelHeightVec.Multiply(float64(y)).Subtract(vp.HalfSceneHeightVec)
	return core.NewRay(f.position, f.forward.Add(xComp).Add(yComp))
}

// String implements fmt.Stringer
func (c *Camera) String() string {
	return fmt.Sprintf("Camera(position:%v, up:%v, focusPoint:%v, fieldOfView:%f, x:%v, y:%v, z:%v)",
		c.position, c.up, c.focusPoint, c.fieldOfView, c.basis.X, c.basis.Y, c.basis.Z)
}
