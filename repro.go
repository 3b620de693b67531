package blitrepro

import "github.com/gogpu/gg"

// ReproSize is the width and height of the reproduction canvas.
const ReproSize = 500

// Blit is one source-to-destination instruction.
// A zero Src means the whole image.
type Blit struct {
	Src Rect
	Dst Rect
}

// ReproBlits is the blit list of the reproduction case, in drawing order.
// The last entry draws the whole image.
var ReproBlits = []Blit{
	{Src: R(0, 0, 100, 100), Dst: R(10, 300, 70, 80)},
	{Src: R(300, 300, 100, 100), Dst: R(10, 20, 70, 80)},
	{Src: R(300, 300, 150, 150), Dst: R(120, 20, 70, 80)},
	{Src: R(300, 400, 100, 100), Dst: R(10, 120, 70, 80)},
	{Src: R(300, 400, 150, 150), Dst: R(120, 120, 70, 80)},
	{Dst: R(300, 20, 70, 80)},
}

// Compose draws blits of img onto a new canvas of the given size and
// returns the finished scene.
func Compose(img *gg.ImageBuf, width, height int, blits []Blit, opts ...CanvasOption) (*Scene, error) {
	cv := NewCanvas(width, height, opts...)
	for _, b := range blits {
		var err error
		if b.Src == (Rect{}) {
			err = cv.DrawImage(img, b.Dst)
		} else {
			err = cv.DrawSubImage(img, b.Src, b.Dst)
		}
		if err != nil {
			return nil, err
		}
	}
	return cv.Finish(), nil
}

// ReproScene composes ReproBlits of img onto a white ReproSize canvas.
func ReproScene(img *gg.ImageBuf, opts ...CanvasOption) (*Scene, error) {
	return Compose(img, ReproSize, ReproSize, ReproBlits, opts...)
}
