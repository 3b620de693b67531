// Package reference states what a scene is expected to look like and
// measures how far a rendering is from it.
//
// Compose rasterizes a blitrepro.Scene on the CPU with golang.org/x/image/draw,
// independently of gg. Its rules for blits are:
//
//   - the source rectangle is stretched onto the destination rectangle,
//     independently in x and y;
//   - the destination is clipped to the canvas;
//   - source area outside the image contributes nothing (it never wraps
//     or clamps to the image edge);
//   - only pixels inside the source rectangle are ever sampled.
//
// Compare then checks an actual rendering against the reference, blit by
// blit. Besides plain pixel differences it counts containment outliers:
// pixels in a blit's destination whose colour lies outside the colour range
// of the blit's source region. An outlier means the renderer sampled from
// outside the requested source rectangle.
package reference
