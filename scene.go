package blitrepro

import (
	"fmt"
	"math"
)

// Scene is the immutable result of Canvas.Finish: an ordered list of
// operations and the canvas size they target. Later operations paint over
// earlier ones.
//
// Scene is safe for concurrent read access. The images it references are
// shared, not copied, and must not be modified while the scene is in use.
type Scene struct {
	width, height int
	ops           []Op
}

// Size returns the canvas dimensions.
func (s *Scene) Size() (width, height int) {
	return s.width, s.height
}

// Bounds returns the canvas rectangle.
func (s *Scene) Bounds() Rect {
	return RectFromImage(s.width, s.height)
}

// Len returns the number of operations, fills included.
func (s *Scene) Len() int {
	return len(s.ops)
}

// Op returns the i-th operation.
func (s *Scene) Op(i int) Op {
	return s.ops[i]
}

// Ops returns a copy of all operations in order.
func (s *Scene) Ops() []Op {
	ops := make([]Op, len(s.ops))
	copy(ops, s.ops)
	return ops
}

// Blits returns a copy of the blit operations in order.
func (s *Scene) Blits() []Op {
	blits := make([]Op, 0, len(s.ops))
	for _, op := range s.ops {
		if op.Kind == OpBlit {
			blits = append(blits, op)
		}
	}
	return blits
}

// FindingKind classifies a Finding.
type FindingKind uint8

const (
	// FindingEmptyDst marks a blit or fill whose destination has no area.
	FindingEmptyDst FindingKind = iota

	// FindingEmptySrc marks a blit whose source has no area.
	FindingEmptySrc

	// FindingSrcOutsideImage marks a blit whose source leaves the image.
	FindingSrcOutsideImage

	// FindingDstOutsideCanvas marks an operation whose destination leaves
	// the canvas. The part outside is clipped.
	FindingDstOutsideCanvas

	// FindingNonUniformScale marks a blit whose source and destination have
	// different aspect ratios, so the source is stretched unevenly.
	FindingNonUniformScale
)

// String returns a string representation of the kind.
func (k FindingKind) String() string {
	switch k {
	case FindingEmptyDst:
		return "empty-dst"
	case FindingEmptySrc:
		return "empty-src"
	case FindingSrcOutsideImage:
		return "src-outside-image"
	case FindingDstOutsideCanvas:
		return "dst-outside-canvas"
	case FindingNonUniformScale:
		return "non-uniform-scale"
	default:
		return "unknown"
	}
}

// Finding describes a questionable but legal operation in a scene.
type Finding struct {
	// Op is the index of the operation in the scene.
	Op     int
	Kind   FindingKind
	Detail string
}

// String formats the finding for logs.
func (f Finding) String() string {
	return fmt.Sprintf("op %d: %s: %s", f.Op, f.Kind, f.Detail)
}

// aspectEpsilon is the relative difference between scale factors below which
// a blit counts as uniformly scaled.
const aspectEpsilon = 1e-6

// Check inspects every operation and reports rectangles that are empty, leave
// their image or canvas, or stretch unevenly. It never fails: none of these
// are errors, they are the cases a renderer has to decide on.
func (s *Scene) Check() []Finding {
	var findings []Finding
	canvas := s.Bounds()

	for i, op := range s.ops {
		if op.Dst.Empty() {
			findings = append(findings, Finding{Op: i, Kind: FindingEmptyDst, Detail: op.Dst.String()})
			continue
		}
		if !canvas.Contains(op.Dst) {
			findings = append(findings, Finding{
				Op:     i,
				Kind:   FindingDstOutsideCanvas,
				Detail: fmt.Sprintf("%v not inside canvas %v", op.Dst, canvas),
			})
		}
		if op.Kind != OpBlit {
			continue
		}

		if op.Src.Empty() {
			findings = append(findings, Finding{Op: i, Kind: FindingEmptySrc, Detail: op.Src.String()})
			continue
		}
		w, h := op.Image.Bounds()
		if img := RectFromImage(w, h); !img.Contains(op.Src) {
			findings = append(findings, Finding{
				Op:     i,
				Kind:   FindingSrcOutsideImage,
				Detail: fmt.Sprintf("%v not inside image %v", op.Src, img),
			})
		}
		sx, sy := op.Src.Scale(op.Dst)
		if math.Abs(sx-sy) > aspectEpsilon*math.Max(sx, sy) {
			findings = append(findings, Finding{
				Op:     i,
				Kind:   FindingNonUniformScale,
				Detail: fmt.Sprintf("scale %.4g×%.4g", sx, sy),
			})
		}
	}
	return findings
}
