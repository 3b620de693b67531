// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpuwindow presents a blitrepro scene in a gogpu window.
//
// The scene is rendered into a ggcanvas.Canvas created from the window's
// GPU device and drawn to the surface on every redraw. The window runs
// event-driven (ContinuousRender off), so frames are only produced when the
// window system asks for them.
//
// Architecture:
//
//	blitrepro.Scene → gg.Context → ggcanvas.Canvas → gogpu window
//
// gogpu owns the event loop: redraw, key and close callbacks are fed to a
// present.Loop. When the loop terminates on Escape or a render failure, the
// configured Exit function ends the process.
package gpuwindow
