package reference

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/blitrepro"
	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// ErrEmptyScene is returned for a scene with a non-positive size.
var ErrEmptyScene = errors.New("reference: empty scene")

// Interpolator returns the x/image/draw interpolator matching a gg mode.
func Interpolator(mode gg.InterpolationMode) draw.Interpolator {
	switch mode {
	case gg.InterpNearest:
		return draw.NearestNeighbor
	case gg.InterpBicubic:
		return draw.CatmullRom
	default:
		return draw.BiLinear
	}
}

// Compose renders scene on the CPU following the package rules.
func Compose(scene *blitrepro.Scene) (*image.RGBA, error) {
	w, h := scene.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyScene, w, h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))

	sources := make(map[*gg.ImageBuf]image.Image)
	for _, op := range scene.Ops() {
		if op.Dst.Empty() {
			continue
		}
		switch op.Kind {
		case blitrepro.OpFill:
			dr := op.Dst.Pixels().Intersect(dst.Bounds())
			draw.Draw(dst, dr, image.NewUniform(op.Color.Color()), image.Point{}, draw.Over)
		case blitrepro.OpBlit:
			src, ok := sources[op.Image]
			if !ok {
				src = op.Image.ToStdImage()
				sources[op.Image] = src
			}
			blit(dst, src, op)
		}
	}
	return dst, nil
}

// blit stretches the visible part of op.Src onto the matching part of op.Dst.
func blit(dst *image.RGBA, src image.Image, op blitrepro.Op) {
	if op.Src.Empty() {
		return
	}
	b := src.Bounds()
	visible := op.Src.Intersect(blitrepro.RectFromImage(b.Dx(), b.Dy()))
	if visible.Empty() {
		return
	}

	sx, sy := op.Src.Scale(op.Dst)
	// s2d maps source pixel coordinates to canvas coordinates.
	s2d := f64.Aff3{
		sx, 0, op.Dst.X - op.Src.X*sx,
		0, sy, op.Dst.Y - op.Src.Y*sy,
	}
	sr := image.Rect(
		int(math.Ceil(visible.X)),
		int(math.Ceil(visible.Y)),
		int(math.Floor(visible.MaxX())),
		int(math.Floor(visible.MaxY())),
	)
	if sr.Empty() {
		return
	}
	Interpolator(op.Interpolation).Transform(dst, s2d, src, sr, draw.Over, nil)
}

// SourceRegion returns the integer pixel region a blit may sample from.
func SourceRegion(op blitrepro.Op) image.Rectangle {
	w, h := op.Image.Bounds()
	return op.Src.Pixels().Intersect(image.Rect(0, 0, w, h))
}

// DestRegion returns the pixels fully covered by a blit's destination,
// clipped to the canvas.
func DestRegion(op blitrepro.Op, canvas image.Rectangle) image.Rectangle {
	r := image.Rect(
		int(math.Ceil(op.Dst.X)),
		int(math.Ceil(op.Dst.Y)),
		int(math.Floor(op.Dst.MaxX())),
		int(math.Floor(op.Dst.MaxY())),
	)
	return r.Intersect(canvas)
}
