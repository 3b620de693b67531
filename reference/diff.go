package reference

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/blitrepro"
	"golang.org/x/image/draw"
)

// DefaultTolerance is the per-channel difference, in 8-bit units, below
// which two pixels count as equal.
const DefaultTolerance = 16

// Options controls Compare.
type Options struct {
	// Tolerance is the per-channel difference allowed before a pixel
	// counts as mismatched or as an outlier.
	Tolerance uint8

	// MaxMismatchRatio is the fraction of a blit's pixels that may mismatch
	// before the blit fails. Outliers always fail.
	MaxMismatchRatio float64
}

// DefaultOptions returns Options with DefaultTolerance and a 1% mismatch
// allowance.
func DefaultOptions() Options {
	return Options{
		Tolerance:        DefaultTolerance,
		MaxMismatchRatio: 0.01,
	}
}

// BlitResult is the comparison for one blit.
type BlitResult struct {
	// Index is the position of the blit in the scene's operation list.
	Index int
	Op    blitrepro.Op

	// Region is the destination region compared, in canvas pixels.
	Region image.Rectangle

	// Pixels is the number of pixels in Region not painted over by a later
	// operation.
	Pixels int

	// Mismatched counts pixels differing from the reference by more than
	// the tolerance.
	Mismatched int

	// Outliers counts pixels whose colour lies outside the colour range of
	// the source region.
	Outliers int

	// MaxDelta is the largest per-channel difference seen.
	MaxDelta uint8
}

// MismatchRatio returns Mismatched / Pixels, or 0 for an empty region.
func (r BlitResult) MismatchRatio() float64 {
	if r.Pixels == 0 {
		return 0
	}
	return float64(r.Mismatched) / float64(r.Pixels)
}

// String formats the result for logs.
func (r BlitResult) String() string {
	return fmt.Sprintf("op %d %v: %d/%d mismatched (%.1f%%), %d outliers, max delta %d",
		r.Index, r.Op, r.Mismatched, r.Pixels, 100*r.MismatchRatio(), r.Outliers, r.MaxDelta)
}

// Report is the result of Compare.
type Report struct {
	Options Options
	Blits   []BlitResult

	// Mismatched counts mismatched pixels over the whole canvas.
	Mismatched int

	actual, expected *image.RGBA
	mask             *image.Alpha
}

// Failed returns the blits exceeding the options' limits.
func (r *Report) Failed() []BlitResult {
	var failed []BlitResult
	for _, b := range r.Blits {
		if b.Outliers > 0 || b.MismatchRatio() > r.Options.MaxMismatchRatio {
			failed = append(failed, b)
		}
	}
	return failed
}

// Pass reports whether every blit is within the limits.
func (r *Report) Pass() bool {
	return len(r.Failed()) == 0
}

// Compare measures actual against expected for every blit of scene.
// Both images must have the scene's size.
func Compare(actual, expected image.Image, scene *blitrepro.Scene, opts Options) (*Report, error) {
	w, h := scene.Size()
	canvas := image.Rect(0, 0, w, h)
	if actual.Bounds().Size() != canvas.Size() || expected.Bounds().Size() != canvas.Size() {
		return nil, fmt.Errorf("reference: size mismatch: actual %v, expected %v, scene %v",
			actual.Bounds().Size(), expected.Bounds().Size(), canvas.Size())
	}

	a := asRGBA(actual)
	e := asRGBA(expected)
	report := &Report{
		Options:  opts,
		actual:   a,
		expected: e,
		mask:     image.NewAlpha(canvas),
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if delta(a.RGBAAt(x, y), e.RGBAAt(x, y)) > opts.Tolerance {
				report.Mismatched++
				report.mask.SetAlpha(x, y, color.Alpha{A: 255})
			}
		}
	}

	owner := ownership(scene, canvas)
	for i, op := range scene.Ops() {
		if op.Kind != blitrepro.OpBlit {
			continue
		}
		report.Blits = append(report.Blits, compareBlit(a, e, report.mask, owner, i, op, canvas, opts.Tolerance))
	}

	log := blitrepro.Logger()
	for _, b := range report.Failed() {
		log.Warn("reference: blit differs from reference", "result", b.String())
	}
	return report, nil
}

// ownership maps every canvas pixel to the index of the last operation that
// fully covers it. A pixel whose last touching operation covers it only
// partly is owned by nobody (-1), as is a pixel no operation covers.
func ownership(scene *blitrepro.Scene, canvas image.Rectangle) []int {
	owner := make([]int, canvas.Dx()*canvas.Dy())
	for i := range owner {
		owner[i] = -1
	}
	for i, op := range scene.Ops() {
		full := DestRegion(op, canvas)
		touched := op.Dst.Pixels().Intersect(canvas)
		for y := touched.Min.Y; y < touched.Max.Y; y++ {
			for x := touched.Min.X; x < touched.Max.X; x++ {
				if image.Pt(x, y).In(full) {
					owner[y*canvas.Dx()+x] = i
				} else {
					owner[y*canvas.Dx()+x] = -1
				}
			}
		}
	}
	return owner
}

func compareBlit(a, e *image.RGBA, mask *image.Alpha, owner []int, index int, op blitrepro.Op, canvas image.Rectangle, tol uint8) BlitResult {
	res := BlitResult{Index: index, Op: op, Region: DestRegion(op, canvas)}
	lo, hi, ok := colorRange(op)

	for y := res.Region.Min.Y; y < res.Region.Max.Y; y++ {
		for x := res.Region.Min.X; x < res.Region.Max.X; x++ {
			if owner[y*canvas.Dx()+x] != index {
				continue
			}
			res.Pixels++

			got := a.RGBAAt(x, y)
			d := delta(got, e.RGBAAt(x, y))
			res.MaxDelta = max(res.MaxDelta, d)
			if mask.AlphaAt(x, y).A != 0 {
				res.Mismatched++
			}
			if ok && outside(got, lo, hi, tol) {
				res.Outliers++
			}
		}
	}
	return res
}

// colorRange returns the per-channel bounds of the blit's source region.
// ok is false when the region is empty.
func colorRange(op blitrepro.Op) (lo, hi color.RGBA, ok bool) {
	r := SourceRegion(op)
	if r.Empty() {
		return lo, hi, false
	}
	lo = color.RGBA{255, 255, 255, 255}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb, _ := op.Image.GetRGBA(x, y)
			lo.R, hi.R = min(lo.R, cr), max(hi.R, cr)
			lo.G, hi.G = min(lo.G, cg), max(hi.G, cg)
			lo.B, hi.B = min(lo.B, cb), max(hi.B, cb)
		}
	}
	return lo, hi, true
}

func outside(c, lo, hi color.RGBA, tol uint8) bool {
	t := int(tol)
	check := func(v, l, h uint8) bool {
		return int(v)+t < int(l) || int(v) > int(h)+t
	}
	return check(c.R, lo.R, hi.R) || check(c.G, lo.G, hi.G) || check(c.B, lo.B, hi.B)
}

func delta(a, b color.RGBA) uint8 {
	d := func(x, y uint8) uint8 {
		if x > y {
			return x - y
		}
		return y - x
	}
	return max(d(a.R, b.R), d(a.G, b.G), d(a.B, b.B), d(a.A, b.A))
}

func asRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
