// Package blitrepro reproduces sub-image blitting with the gg 2D graphics
// library.
//
// # Overview
//
// The package composes a fixed list of drawing operations into an immutable
// Scene: a background fill followed by blits that copy a source rectangle of
// a decoded image onto a destination rectangle of the canvas. The scene is
// then replayed onto a gg.Context, either headless or inside a window driven
// by the present package.
//
//	img, err := imageload.Load("photo.jpg")
//	if err != nil {
//	    return err
//	}
//	cv := blitrepro.NewCanvas(500, 500)
//	_ = cv.DrawSubImage(img, blitrepro.R(0, 0, 100, 100), blitrepro.R(10, 300, 70, 80))
//	scene := cv.Finish()
//
//	dc := gg.NewContext(500, 500)
//	if err := scene.Render(dc); err != nil {
//	    return err
//	}
//
// # Rectangles
//
// Rect is an origin plus a size in canvas units, the same convention used by
// the program this package reproduces. A blit stretches its source rectangle
// onto its destination rectangle. Destination rectangles are never validated
// against the canvas and source rectangles are never validated against the
// image; Scene.Check reports such cases instead of rejecting them.
//
// # Sub-packages
//
//   - imageload: decodes the single input image into a gg.ImageBuf
//   - present: render-on-expose state machine
//   - reference: CPU reference compositor and pixel diff
//   - backend/shiny: window backend on golang.org/x/exp/shiny
//   - integration/gpuwindow: window backend on gogpu with ggcanvas
package blitrepro
