package blitrepro

import (
	"errors"
	"testing"

	"github.com/gogpu/gg"
)

// solidImage returns a w×h RGBA8 image filled with one colour.
func solidImage(t *testing.T, w, h int, r, g, b uint8) *gg.ImageBuf {
	t.Helper()
	img, err := gg.NewImageBuf(w, h, gg.FormatRGBA8)
	if err != nil {
		t.Fatalf("NewImageBuf: %v", err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			_ = img.SetRGBA(x, y, r, g, b, 255)
		}
	}
	return img
}

func TestNewCanvasBackground(t *testing.T) {
	cv := NewCanvas(500, 500)
	if cv.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (background fill)", cv.Len())
	}
	scene := cv.Finish()
	op := scene.Op(0)
	if op.Kind != OpFill {
		t.Errorf("first op kind = %v, want fill", op.Kind)
	}
	if op.Dst != R(0, 0, 500, 500) {
		t.Errorf("background dst = %v, want whole canvas", op.Dst)
	}
	if op.Color != gg.White {
		t.Errorf("background colour = %+v, want white", op.Color)
	}
}

func TestCanvasOptions(t *testing.T) {
	img := solidImage(t, 4, 4, 255, 0, 0)

	cv := NewCanvas(10, 10, WithoutBackground(), WithInterpolation(gg.InterpBicubic))
	if cv.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 without background", cv.Len())
	}
	if err := cv.DrawImage(img, R(0, 0, 4, 4)); err != nil {
		t.Fatalf("DrawImage: %v", err)
	}
	if got := cv.Finish().Op(0).Interpolation; got != gg.InterpBicubic {
		t.Errorf("Interpolation = %v, want bicubic", got)
	}

	cv = NewCanvas(10, 10, WithBackground(gg.Black))
	if got := cv.Finish().Op(0).Color; got != gg.Black {
		t.Errorf("background = %+v, want black", got)
	}
}

func TestCanvasPreservesBlitOrder(t *testing.T) {
	img := solidImage(t, 400, 400, 0, 0, 255)

	const n = 25
	cv := NewCanvas(500, 500)
	for i := 0; i < n; i++ {
		src := R(float64(i), float64(2*i), 10, 10)
		dst := R(float64(3*i), float64(i), 20, 20)
		if err := cv.DrawSubImage(img, src, dst); err != nil {
			t.Fatalf("DrawSubImage %d: %v", i, err)
		}
	}
	scene := cv.Finish()

	blits := scene.Blits()
	if len(blits) != n {
		t.Fatalf("len(Blits()) = %d, want %d", len(blits), n)
	}
	if scene.Len() != n+1 {
		t.Errorf("Len() = %d, want %d", scene.Len(), n+1)
	}
	for i, op := range blits {
		if op.Src.X != float64(i) || op.Dst.X != float64(3*i) {
			t.Errorf("blit %d = %v, out of order", i, op)
		}
		if op.Image != img {
			t.Errorf("blit %d references a different image", i)
		}
	}
}

func TestCanvasDrawImageUsesWholeSource(t *testing.T) {
	img := solidImage(t, 64, 32, 0, 255, 0)
	cv := NewCanvas(100, 100)
	if err := cv.DrawImage(img, R(5, 5, 10, 10)); err != nil {
		t.Fatal(err)
	}
	op := cv.Finish().Blits()[0]
	if op.Src != R(0, 0, 64, 32) {
		t.Errorf("Src = %v, want whole image", op.Src)
	}
}

func TestCanvasErrors(t *testing.T) {
	img := solidImage(t, 2, 2, 0, 0, 0)
	cv := NewCanvas(10, 10)

	if err := cv.DrawSubImage(nil, R(0, 0, 1, 1), R(0, 0, 1, 1)); !errors.Is(err, ErrNilImage) {
		t.Errorf("DrawSubImage(nil) = %v, want ErrNilImage", err)
	}
	if err := cv.DrawImage(nil, R(0, 0, 1, 1)); !errors.Is(err, ErrNilImage) {
		t.Errorf("DrawImage(nil) = %v, want ErrNilImage", err)
	}

	first := cv.Finish()
	if err := cv.DrawSubImage(img, R(0, 0, 1, 1), R(0, 0, 1, 1)); !errors.Is(err, ErrFinished) {
		t.Errorf("DrawSubImage after Finish = %v, want ErrFinished", err)
	}
	if err := cv.FillRect(R(0, 0, 1, 1), gg.Red); !errors.Is(err, ErrFinished) {
		t.Errorf("FillRect after Finish = %v, want ErrFinished", err)
	}
	if err := cv.DrawImage(img, R(0, 0, 1, 1)); !errors.Is(err, ErrFinished) {
		t.Errorf("DrawImage after Finish = %v, want ErrFinished", err)
	}
	// Finished takes precedence over a nil image.
	if err := cv.DrawImage(nil, R(0, 0, 1, 1)); !errors.Is(err, ErrFinished) {
		t.Errorf("DrawImage(nil) after Finish = %v, want ErrFinished", err)
	}
	if err := cv.DrawSubImage(nil, R(0, 0, 1, 1), R(0, 0, 1, 1)); !errors.Is(err, ErrFinished) {
		t.Errorf("DrawSubImage(nil) after Finish = %v, want ErrFinished", err)
	}
	if cv.Finish() != first {
		t.Error("Finish() should return the same scene")
	}
	if first.Len() != 1 {
		t.Errorf("scene changed after Finish: Len() = %d", first.Len())
	}
}

func TestSceneOpsAreCopies(t *testing.T) {
	img := solidImage(t, 2, 2, 0, 0, 0)
	cv := NewCanvas(10, 10)
	_ = cv.DrawImage(img, R(0, 0, 2, 2))
	scene := cv.Finish()

	ops := scene.Ops()
	ops[1].Dst = R(9, 9, 9, 9)
	blits := scene.Blits()
	blits[0].Src = R(1, 1, 1, 1)

	if scene.Op(1).Dst != R(0, 0, 2, 2) || scene.Op(1).Src != R(0, 0, 2, 2) {
		t.Errorf("scene was modified through a returned slice: %v", scene.Op(1))
	}
}
