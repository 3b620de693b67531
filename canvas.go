package blitrepro

import (
	"errors"

	"github.com/gogpu/gg"
)

// Canvas errors.
var (
	// ErrFinished is returned when an operation is added after Finish.
	ErrFinished = errors.New("blitrepro: canvas already finished")

	// ErrNilImage is returned when a blit references no image.
	ErrNilImage = errors.New("blitrepro: nil image")

	// ErrInvalidSize is returned by Scene rendering for a non-positive canvas.
	ErrInvalidSize = errors.New("blitrepro: invalid canvas size")
)

// CanvasOption configures a Canvas during creation.
//
// Example:
//
//	cv := blitrepro.NewCanvas(500, 500,
//	    blitrepro.WithBackground(gg.Black),
//	    blitrepro.WithInterpolation(gg.InterpBicubic))
type CanvasOption func(*canvasOptions)

type canvasOptions struct {
	background    *gg.RGBA
	interpolation gg.InterpolationMode
}

func defaultCanvasOptions() canvasOptions {
	white := gg.White
	return canvasOptions{
		background:    &white,
		interpolation: gg.InterpBilinear,
	}
}

// WithBackground sets the colour the canvas is filled with before any other
// operation.
func WithBackground(c gg.RGBA) CanvasOption {
	return func(o *canvasOptions) {
		o.background = &c
	}
}

// WithoutBackground leaves the canvas transparent until the first operation.
func WithoutBackground() CanvasOption {
	return func(o *canvasOptions) {
		o.background = nil
	}
}

// WithInterpolation sets the sampling mode recorded for every blit.
func WithInterpolation(mode gg.InterpolationMode) CanvasOption {
	return func(o *canvasOptions) {
		o.interpolation = mode
	}
}

// Canvas accumulates drawing operations in order.
// Operations are only recorded here; nothing is rasterized until the
// finished Scene is rendered.
//
// Canvas is NOT safe for concurrent use.
type Canvas struct {
	width, height int
	interpolation gg.InterpolationMode
	ops           []Op
	scene         *Scene
}

// NewCanvas creates a canvas of the given logical size.
// Unless WithoutBackground is passed, the first operation is a fill of the
// whole canvas with the background colour (white by default).
func NewCanvas(width, height int, opts ...CanvasOption) *Canvas {
	o := defaultCanvasOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Canvas{
		width:         width,
		height:        height,
		interpolation: o.interpolation,
		ops:           make([]Op, 0, 8),
	}
	if o.background != nil {
		c.ops = append(c.ops, Op{
			Kind:  OpFill,
			Dst:   RectFromImage(width, height),
			Color: *o.background,
		})
	}
	return c
}

// Size returns the canvas dimensions.
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// Len returns the number of operations recorded so far.
func (c *Canvas) Len() int {
	return len(c.ops)
}

// FillRect records a solid fill of r.
func (c *Canvas) FillRect(r Rect, col gg.RGBA) error {
	if c.scene != nil {
		return ErrFinished
	}
	c.ops = append(c.ops, Op{Kind: OpFill, Dst: r, Color: col})
	return nil
}

// DrawSubImage records a blit of the src region of img onto dst.
// Neither rectangle is validated; see Scene.Check.
func (c *Canvas) DrawSubImage(img *gg.ImageBuf, src, dst Rect) error {
	if c.scene != nil {
		return ErrFinished
	}
	if img == nil {
		return ErrNilImage
	}
	c.ops = append(c.ops, Op{
		Kind:          OpBlit,
		Dst:           dst,
		Image:         img,
		Src:           src,
		Interpolation: c.interpolation,
	})
	return nil
}

// DrawImage records a blit of the whole of img onto dst.
func (c *Canvas) DrawImage(img *gg.ImageBuf, dst Rect) error {
	if c.scene != nil {
		return ErrFinished
	}
	if img == nil {
		return ErrNilImage
	}
	w, h := img.Bounds()
	return c.DrawSubImage(img, RectFromImage(w, h), dst)
}

// Finish freezes the canvas and returns its scene.
// Further calls return the same scene; further drawing returns ErrFinished.
func (c *Canvas) Finish() *Scene {
	if c.scene == nil {
		ops := make([]Op, len(c.ops))
		copy(ops, c.ops)
		c.scene = &Scene{width: c.width, height: c.height, ops: ops}
		Logger().Debug("blitrepro: scene finished",
			"width", c.width, "height", c.height, "ops", len(ops))
	}
	return c.scene
}
