// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shiny

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is returned by Main for a config with an empty size.
	ErrInvalidConfig = errors.New("shiny: invalid config")

	// ErrReleased is returned by Present after Release.
	ErrReleased = errors.New("shiny: window released")
)

// Config describes the window to open.
type Config struct {
	Title  string
	Width  int
	Height int
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

func (c Config) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	return nil
}
