package reference

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/blitrepro"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	panelGap    = 8
	labelHeight = 20
	labelSize   = 13
)

var (
	faceOnce sync.Once
	face     text.Face
)

// labelFace returns the Go Regular face used for annotations, or nil if it
// cannot be parsed.
func labelFace() text.Face {
	faceOnce.Do(func() {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			blitrepro.Logger().Warn("reference: label font unavailable", "err", err)
			return
		}
		face = src.Face(labelSize)
	})
	return face
}

// DiffImage lays out the actual rendering, the reference and the mismatch
// mask side by side. Every blit region is outlined and numbered with its
// operation index; failing blits are outlined in red.
func (r *Report) DiffImage() image.Image {
	b := r.expected.Bounds()
	pw, ph := b.Dx(), b.Dy()
	dc := gg.NewContext(3*pw+2*panelGap, ph+labelHeight)
	defer func() { _ = dc.Close() }()

	dc.ClearWithColor(gg.RGB(0.15, 0.15, 0.15))

	panels := []struct {
		title string
		img   image.Image
	}{
		{"gg", r.actual},
		{"reference", r.expected},
		{fmt.Sprintf("diff (tol %d, %d px)", r.Options.Tolerance, r.Mismatched), r.maskImage()},
	}

	failed := make(map[int]bool)
	for _, f := range r.Failed() {
		failed[f.Index] = true
	}

	lf := labelFace()
	if lf != nil {
		dc.SetFont(lf)
	}
	for i, p := range panels {
		x := float64(i * (pw + panelGap))
		y := float64(labelHeight)
		dc.DrawImage(gg.ImageBufFromImage(p.img), x, y)

		dc.SetRGB(0.9, 0.9, 0.9)
		dc.DrawString(p.title, x+4, labelHeight-6)

		for _, res := range r.Blits {
			reg := res.Region
			if reg.Empty() {
				continue
			}
			if failed[res.Index] {
				dc.SetRGBA(1, 0.2, 0.2, 1)
			} else {
				dc.SetRGBA(0.2, 0.9, 0.3, 1)
			}
			dc.SetLineWidth(1)
			dc.DrawRectangle(x+float64(reg.Min.X)+0.5, y+float64(reg.Min.Y)+0.5,
				float64(reg.Dx())-1, float64(reg.Dy())-1)
			_ = dc.Stroke()
			dc.DrawString(fmt.Sprint(res.Index), x+float64(reg.Min.X)+3, y+float64(reg.Min.Y)+labelSize)
		}
	}
	_ = dc.FlushGPU()
	return dc.Image()
}

// maskImage renders the reference dimmed to grey with mismatches in red.
func (r *Report) maskImage() image.Image {
	b := r.expected.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, r.expected, b.Min, draw.Src)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r.mask.AlphaAt(x, y).A != 0 {
				out.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
				continue
			}
			c := out.RGBAAt(x, y)
			g := uint8((uint16(c.R) + uint16(c.G) + uint16(c.B)) / 6)
			out.SetRGBA(x, y, color.RGBA{R: g, G: g, B: g, A: 255})
		}
	}
	return out
}

// SaveDiffPNG writes DiffImage to path.
func (r *Report) SaveDiffPNG(path string) error {
	dc := gg.NewContextForImage(r.DiffImage())
	defer func() { _ = dc.Close() }()
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("reference: save diff: %w", err)
	}
	return nil
}
