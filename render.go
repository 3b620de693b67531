package blitrepro

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// Render replays the scene onto dc in order.
//
// Fills are rasterized as paths. Blits go through gg's DrawImageEx with the
// source rectangle as SrcRect and the destination size as DstWidth and
// DstHeight, at full opacity with normal blending. Operations with an empty
// destination are skipped. dc is not cleared first.
func (s *Scene) Render(dc *gg.Context) error {
	if s.width <= 0 || s.height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, s.width, s.height)
	}

	log := Logger()
	for i, op := range s.ops {
		if op.Dst.Empty() {
			continue
		}
		switch op.Kind {
		case OpFill:
			dc.SetRGBA(op.Color.R, op.Color.G, op.Color.B, op.Color.A)
			dc.DrawRectangle(op.Dst.X, op.Dst.Y, op.Dst.W, op.Dst.H)
			if err := dc.Fill(); err != nil {
				return fmt.Errorf("blitrepro: op %d: fill: %w", i, err)
			}
			// Blits write straight into the pixmap; queued GPU fills must
			// land first or they would paint over them.
			if err := dc.FlushGPU(); err != nil {
				return fmt.Errorf("blitrepro: op %d: flush: %w", i, err)
			}
		case OpBlit:
			src := op.Src.Pixels()
			dc.DrawImageEx(op.Image, gg.DrawImageOptions{
				X:             op.Dst.X,
				Y:             op.Dst.Y,
				DstWidth:      op.Dst.W,
				DstHeight:     op.Dst.H,
				SrcRect:       &src,
				Interpolation: op.Interpolation,
				Opacity:       1.0,
				BlendMode:     gg.BlendNormal,
			})
		}
		log.Debug("blitrepro: rendered op", "index", i, "op", op.String())
	}
	return nil
}

// RenderImage renders the scene onto a fresh software context of the scene
// size and returns the resulting pixels.
func (s *Scene) RenderImage() (*image.RGBA, error) {
	if s.width <= 0 || s.height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, s.width, s.height)
	}

	dc := gg.NewContext(s.width, s.height)
	defer func() { _ = dc.Close() }()

	if err := s.Render(dc); err != nil {
		return nil, err
	}
	return toRGBA(dc.Image()), nil
}

// toRGBA returns img as *image.RGBA, converting only when needed.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
