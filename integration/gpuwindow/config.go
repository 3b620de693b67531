// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpuwindow

import (
	"errors"
	"fmt"
	"os"

	"github.com/gogpu/blitrepro"
	"github.com/gogpu/gg"
)

// ErrInvalidConfig is returned by Run for a config with an empty size.
var ErrInvalidConfig = errors.New("gpuwindow: invalid config")

// Config describes the window to open.
type Config struct {
	Title  string
	Width  int
	Height int

	// Exit is called once when the loop terminates while the window is
	// still open (Escape or a render failure). err is the render failure
	// or nil. Nil means exitProcess.
	Exit func(err error)
}

// DefaultConfig returns a 500×500 window titled "blitrepro".
func DefaultConfig() Config {
	return Config{
		Title:  "blitrepro",
		Width:  500,
		Height: 500,
	}
}

// WithTitle returns a copy of c with the window title set.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize returns a copy of c with the window size set.
func (c Config) WithSize(width, height int) Config {
	c.Width = width
	c.Height = height
	return c
}

// WithExit returns a copy of c with the exit function set.
func (c Config) WithExit(fn func(err error)) Config {
	c.Exit = fn
	return c
}

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	return nil
}

func (c Config) exit() func(error) {
	if c.Exit != nil {
		return c.Exit
	}
	return exitProcess
}

// exitProcess ends the process with status 1 for a render failure and 0
// otherwise.
func exitProcess(err error) {
	gg.CloseAccelerator()
	if err != nil {
		blitrepro.Logger().Error("gpuwindow: render failed", "err", err)
		os.Exit(1)
	}
	os.Exit(0)
}
