// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shiny presents a blitrepro scene in a desktop window opened
// through golang.org/x/exp/shiny.
//
// The window owns a screen buffer and a software gg context of the canvas
// size. Each paint event renders the scene into the context, copies the
// pixels into the buffer and publishes it.
//
// Usage:
//
//	err := shiny.Main(shiny.DefaultConfig().WithSize(500, 500), func(w *shiny.Window) error {
//	    return present.New(scene, w).Run(w)
//	})
//
// Window implements both present.EventSource and present.Presenter.
package shiny
