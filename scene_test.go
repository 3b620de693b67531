package blitrepro

import (
	"errors"
	"testing"

	"github.com/gogpu/gg"
)

func TestReproSceneShape(t *testing.T) {
	img := solidImage(t, 1280, 853, 10, 20, 30)
	scene, err := ReproScene(img)
	if err != nil {
		t.Fatalf("ReproScene: %v", err)
	}

	w, h := scene.Size()
	if w != ReproSize || h != ReproSize {
		t.Errorf("Size() = %dx%d, want %dx%d", w, h, ReproSize, ReproSize)
	}
	blits := scene.Blits()
	if len(blits) != len(ReproBlits) {
		t.Fatalf("len(Blits()) = %d, want %d", len(blits), len(ReproBlits))
	}
	for i, b := range ReproBlits {
		if blits[i].Dst != b.Dst {
			t.Errorf("blit %d dst = %v, want %v", i, blits[i].Dst, b.Dst)
		}
	}
	if last := blits[len(blits)-1]; last.Src != R(0, 0, 1280, 853) {
		t.Errorf("whole-image blit src = %v, want image bounds", last.Src)
	}
}

func TestSceneCheckReproScene(t *testing.T) {
	img := solidImage(t, 1280, 853, 0, 0, 0)
	scene, err := ReproScene(img)
	if err != nil {
		t.Fatal(err)
	}

	findings := scene.Check()
	if len(findings) != len(ReproBlits) {
		t.Fatalf("Check() = %v, want one finding per blit", findings)
	}
	for i, f := range findings {
		if f.Kind != FindingNonUniformScale {
			t.Errorf("finding %d kind = %v, want non-uniform-scale", i, f.Kind)
		}
		if f.Op != i+1 {
			t.Errorf("finding %d op = %d, want %d", i, f.Op, i+1)
		}
	}
}

func TestSceneCheckBounds(t *testing.T) {
	img := solidImage(t, 100, 100, 0, 0, 0)
	cv := NewCanvas(50, 50)
	_ = cv.DrawSubImage(img, R(0, 0, 10, 10), R(0, 0, 10, 10))   // 1: clean
	_ = cv.DrawSubImage(img, R(90, 90, 20, 20), R(5, 5, 20, 20)) // 2: src outside
	_ = cv.DrawSubImage(img, R(0, 0, 10, 10), R(45, 45, 10, 10)) // 3: dst outside
	_ = cv.DrawSubImage(img, R(0, 0, 0, 10), R(0, 0, 10, 10))    // 4: empty src
	_ = cv.DrawSubImage(img, R(0, 0, 10, 10), R(0, 0, 10, 0))    // 5: empty dst
	_ = cv.FillRect(R(-5, 0, 10, 10), gg.Red)                    // 6: fill outside
	scene := cv.Finish()

	want := []Finding{
		{Op: 2, Kind: FindingSrcOutsideImage},
		{Op: 3, Kind: FindingDstOutsideCanvas},
		{Op: 4, Kind: FindingEmptySrc},
		{Op: 5, Kind: FindingEmptyDst},
		{Op: 6, Kind: FindingDstOutsideCanvas},
	}
	got := scene.Check()
	if len(got) != len(want) {
		t.Fatalf("Check() = %v, want %d findings", got, len(want))
	}
	for i := range want {
		if got[i].Op != want[i].Op || got[i].Kind != want[i].Kind {
			t.Errorf("finding %d = %v, want op %d %v", i, got[i], want[i].Op, want[i].Kind)
		}
		if got[i].Detail == "" {
			t.Errorf("finding %d has no detail", i)
		}
	}
}

func TestComposeStopsOnError(t *testing.T) {
	_, err := Compose(nil, 10, 10, []Blit{{Dst: R(0, 0, 1, 1)}})
	if !errors.Is(err, ErrNilImage) {
		t.Errorf("Compose(nil) = %v, want ErrNilImage", err)
	}
}

func TestKindStrings(t *testing.T) {
	if OpFill.String() != "fill" || OpBlit.String() != "blit" || OpKind(9).String() != "unknown" {
		t.Error("unexpected OpKind strings")
	}
	if FindingSrcOutsideImage.String() != "src-outside-image" || FindingKind(99).String() != "unknown" {
		t.Error("unexpected FindingKind strings")
	}
}
