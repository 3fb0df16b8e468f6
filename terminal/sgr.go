// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "github.com/digilog/poderosa/util"

// The 38/48 color forms spread one assignment over several parameters, so
// a small state machine threads through the parameter list:
//
//	38;5;Pn        indexed foreground
//	38;2;Pr;Pg;Pb  direct RGB foreground
//	48;...         the same for the background
//
// A sequence that ends mid-assignment keeps whatever was already applied;
// there is no rollback.
const (
	sgrIdle = iota
	sgrReadKind  // after 38/48: expect 5 or 2
	sgrReadIndex // after 38;5: expect the palette index
	sgrReadR
	sgrReadG
	sgrReadB
)

// CSI Pm m  Select Graphic Rendition.
func hdl_csi_sgr(emu *Emulator, params csiParams) {
	if params.count() == 0 {
		emu.attrs.buildRendition(0)
		return
	}

	state := sgrIdle
	targetBg := false
	var r, g int

	setIndexed := func(index int) {
		if index < 0 || index >= PaletteSize {
			return
		}
		if targetBg {
			emu.attrs.SetBackgroundColor(index)
		} else {
			emu.attrs.SetForegroundColor(index)
		}
	}
	setRGB := func(r, g, b int) {
		if targetBg {
			emu.attrs.SetBgColor(r, g, b)
		} else {
			emu.attrs.SetFgColor(r, g, b)
		}
	}
	channelOK := func(v int) bool { return v >= 0 && v <= 255 }

	for i := 0; i < params.count(); i++ {
		code := params.itemOrZero(i)

		switch state {
		case sgrIdle:
			switch code {
			case 38:
				state = sgrReadKind
				targetBg = false
			case 48:
				state = sgrReadKind
				targetBg = true
			default:
				if !emu.attrs.buildRendition(code) {
					util.Logger.Trace("SGR: unhandled attribute", "code", code)
				}
			}
		case sgrReadKind:
			switch code {
			case 5:
				state = sgrReadIndex
			case 2:
				state = sgrReadR
			default:
				// not a color form after all; reprocess as plain code
				state = sgrIdle
				i--
			}
		case sgrReadIndex:
			setIndexed(code)
			state = sgrIdle
		case sgrReadR:
			r = code
			state = sgrReadG
		case sgrReadG:
			g = code
			state = sgrReadB
		case sgrReadB:
			if channelOK(r) && channelOK(g) && channelOK(code) {
				setRGB(r, g, code)
			}
			state = sgrIdle
		}
	}
}
