// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shiny

import (
	"fmt"
	"image"

	"github.com/gogpu/blitrepro"
	"github.com/gogpu/blitrepro/present"
	"github.com/gogpu/gg"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/draw"
)

// target is the part of screen.Window the presenter uses.
type target interface {
	NextEvent() any
	Upload(dp image.Point, src screen.Buffer, sr image.Rectangle)
	Publish() screen.PublishResult
	Release()
}

// Window is an open shiny window with its buffer and graphics context.
// It is not safe for concurrent use.
type Window struct {
	win target
	buf screen.Buffer
	dc  *gg.Context

	released bool
}

// Main runs fn on the shiny driver with a window opened from cfg.
// The window is released when fn returns. Main returns the first error from
// opening the window or from fn.
func Main(cfg Config, fn func(*Window) error) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	var err error
	driver.Main(func(s screen.Screen) {
		var w *Window
		w, err = open(s, cfg)
		if err != nil {
			return
		}
		defer w.Release()
		err = fn(w)
	})
	return err
}

func open(s screen.Screen, cfg Config) (*Window, error) {
	size := image.Pt(cfg.Width, cfg.Height)
	buf, err := s.NewBuffer(size)
	if err != nil {
		return nil, fmt.Errorf("shiny: new buffer %v: %w", size, err)
	}
	win, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  cfg.Width,
		Height: cfg.Height,
		Title:  cfg.Title,
	})
	if err != nil {
		buf.Release()
		return nil, fmt.Errorf("shiny: new window: %w", err)
	}

	blitrepro.Logger().Info("shiny: window opened", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	return newWindow(win, buf), nil
}

func newWindow(win target, buf screen.Buffer) *Window {
	size := buf.Size()
	return &Window{
		win: win,
		buf: buf,
		dc:  gg.NewContext(size.X, size.Y),
	}
}

// NextEvent blocks until the next window event and translates it.
func (w *Window) NextEvent() present.Event {
	return translate(w.win.NextEvent())
}

// Present renders scene into the window's graphics context, uploads the
// pixels and publishes the frame.
func (w *Window) Present(scene *blitrepro.Scene) error {
	if w.released {
		return ErrReleased
	}
	if err := scene.Render(w.dc); err != nil {
		return err
	}

	dst := w.buf.RGBA()
	img := w.dc.Image()
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)

	w.win.Upload(image.Point{}, w.buf, w.buf.Bounds())
	w.win.Publish()
	return nil
}

// Release closes the graphics context, the buffer and the window.
// It is safe to call more than once.
func (w *Window) Release() {
	if w.released {
		return
	}
	w.released = true
	_ = w.dc.Close()
	w.buf.Release()
	w.win.Release()
	blitrepro.Logger().Debug("shiny: window released")
}
