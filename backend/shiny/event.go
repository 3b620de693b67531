// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shiny

import (
	"github.com/gogpu/blitrepro/present"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
)

// translate maps a shiny event to a loop event.
func translate(e any) present.Event {
	switch e := e.(type) {
	case paint.Event:
		return present.Expose()
	case lifecycle.Event:
		if e.To == lifecycle.StageDead {
			return present.Quit()
		}
	case key.Event:
		if e.Direction == key.DirPress {
			return present.KeyPress(translateKey(e.Code))
		}
	}
	return present.Other()
}

func translateKey(code key.Code) present.Key {
	switch code {
	case key.CodeEscape:
		return present.KeyEscape
	case key.CodeSpacebar:
		return present.KeySpace
	default:
		return present.KeyUnknown
	}
}
