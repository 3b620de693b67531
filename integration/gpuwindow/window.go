// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpuwindow

import (
	"errors"
	"fmt"

	"github.com/gogpu/blitrepro"
	"github.com/gogpu/blitrepro/present"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
)

// ErrNoDevice is returned when a frame is requested before the window has a
// GPU device.
var ErrNoDevice = errors.New("gpuwindow: no GPU device")

// Run opens a window from cfg and presents scene on every redraw until the
// window is closed or the loop terminates. opts configure the present.Loop.
//
// Run returns the render failure that closed the window, or nil.
func Run(cfg Config, scene *blitrepro.Scene, opts ...present.Option) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(false))

	p := &presenter{width: cfg.Width, height: cfg.Height}
	s := newSession(present.New(scene, p, opts...), cfg.exit(), p.close)

	device := func() gpucontext.DeviceProvider {
		if provider := app.GPUContextProvider(); provider != nil {
			return provider
		}
		return nil
	}
	app.OnDraw(func(dc *gogpu.Context) {
		s.draw(p, device, dc.AsTextureDrawer(), dc.Width(), dc.Height())
	})

	app.EventSource().OnKeyPress(func(k gpucontext.Key, _ gpucontext.Modifiers) {
		s.handle(present.KeyPress(translateKey(k)))
	})

	app.OnClose(func() {
		s.close()
		// Drain GPU work while the device is still alive.
		gg.CloseAccelerator()
	})

	blitrepro.Logger().Info("gpuwindow: running", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	if err := app.Run(); err != nil {
		return fmt.Errorf("gpuwindow: %w", err)
	}
	return s.err
}

// presenter renders scenes through a lazily created ggcanvas.Canvas.
type presenter struct {
	width, height int

	provider gpucontext.DeviceProvider
	target   gpucontext.TextureDrawer
	canvas   *ggcanvas.Canvas
}

func (p *presenter) Present(scene *blitrepro.Scene) error {
	if p.canvas == nil {
		if p.provider == nil {
			return ErrNoDevice
		}
		c, err := ggcanvas.New(p.provider, p.width, p.height)
		if err != nil {
			return fmt.Errorf("gpuwindow: canvas: %w", err)
		}
		p.canvas = c
	}

	var renderErr error
	if err := p.canvas.Draw(func(cc *gg.Context) {
		renderErr = scene.Render(cc)
	}); err != nil {
		return err
	}
	if renderErr != nil {
		return renderErr
	}
	return p.canvas.RenderTo(p.target)
}

// attach binds the presenter to the current frame. It reports false while
// the surface is empty or the window has no GPU device yet; such frames are
// skipped rather than presented.
func (p *presenter) attach(device func() gpucontext.DeviceProvider, target gpucontext.TextureDrawer, width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if p.provider == nil {
		p.provider = device()
		if p.provider == nil {
			return false
		}
	}
	p.target = target
	return true
}

func (p *presenter) close() {
	if p.canvas != nil {
		_ = p.canvas.Close()
		p.canvas = nil
	}
}

// session feeds window callbacks to a loop.
type session struct {
	loop    *present.Loop
	exit    func(error)
	release func()

	err    error
	closed bool
}

func newSession(loop *present.Loop, exit func(error), release func()) *session {
	return &session{loop: loop, exit: exit, release: release}
}

// handle applies ev and calls exit once the loop has terminated.
func (s *session) handle(ev present.Event) {
	if s.closed {
		return
	}
	if err := s.loop.Handle(ev); err != nil && s.err == nil {
		s.err = err
	}
	if s.loop.Done() {
		s.closed = true
		s.release()
		s.exit(s.err)
	}
}

// draw handles a redraw request from the window.
func (s *session) draw(p *presenter, device func() gpucontext.DeviceProvider, target gpucontext.TextureDrawer, width, height int) {
	if s.closed {
		return
	}
	if !p.attach(device, target, width, height) {
		blitrepro.Logger().Debug("gpuwindow: frame skipped, window not ready",
			"width", width, "height", height)
		return
	}
	s.handle(present.Expose())
}

// close handles the window closing. exit is not called: the app's Run is
// already returning.
func (s *session) close() {
	if s.closed {
		return
	}
	s.closed = true
	_ = s.loop.Handle(present.Quit())
	s.release()
}

func translateKey(k gpucontext.Key) present.Key {
	switch k {
	case gpucontext.KeyEscape:
		return present.KeyEscape
	case gpucontext.KeySpace:
		return present.KeySpace
	default:
		return present.KeyUnknown
	}
}
