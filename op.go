package blitrepro

import (
	"fmt"

	"github.com/gogpu/gg"
)

// OpKind identifies a drawing operation.
type OpKind uint8

const (
	// OpFill fills Dst with Color.
	OpFill OpKind = iota

	// OpBlit copies the Src region of Image onto Dst.
	OpBlit
)

// String returns a string representation of the kind.
func (k OpKind) String() string {
	switch k {
	case OpFill:
		return "fill"
	case OpBlit:
		return "blit"
	default:
		return "unknown"
	}
}

// Op is a single recorded drawing operation.
type Op struct {
	Kind OpKind

	// Dst is the destination rectangle in canvas units.
	Dst Rect

	// Color is the fill colour. Only used by OpFill.
	Color gg.RGBA

	// Image is the source image. Only used by OpBlit.
	Image *gg.ImageBuf

	// Src is the region of Image to copy, in image pixels. Only used by OpBlit.
	Src Rect

	// Interpolation is the sampling mode requested for OpBlit.
	Interpolation gg.InterpolationMode
}

// String describes the operation for logs and reports.
func (op Op) String() string {
	switch op.Kind {
	case OpFill:
		return fmt.Sprintf("fill %v rgba(%.2f,%.2f,%.2f,%.2f)",
			op.Dst, op.Color.R, op.Color.G, op.Color.B, op.Color.A)
	case OpBlit:
		return fmt.Sprintf("blit %v -> %v (%v)", op.Src, op.Dst, op.Interpolation)
	default:
		return op.Kind.String()
	}
}
