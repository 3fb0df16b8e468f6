// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import (
	"fmt"
	"unicode/utf8"
)

// MouseTrackingMode is the tracking state selected by DECSET 1000/1002/1003.
type MouseTrackingMode int

const (
	MouseModeOff MouseTrackingMode = iota
	MouseModeNormal
	MouseModeDrag
	MouseModeAny
)

// MouseProtocol is the report encoding selected by DECSET 1005/1006/1015.
type MouseProtocol int

const (
	MouseProtoNormal MouseProtocol = iota
	MouseProtoUtf8
	MouseProtoUrxvt
	MouseProtoSgr
)

// MouseAction is what the pointing device did.
type MouseAction int

const (
	MouseButtonDown MouseAction = iota
	MouseButtonUp
	MouseWheelUp
	MouseWheelDown
	MouseMove
)

// MouseButton identifies the physical button of a press or release.
type MouseButton int

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
)

// modifier bits OR-ed into the status byte
const (
	mouseModShift   = 0x04
	mouseModMeta    = 0x08
	mouseModControl = 0x10
)

// coordinate clamp limits; the classic protocol runs out of byte space
// first
const (
	mouseLimitNormal   = 255 - 32
	mouseLimitExtended = 2047 - 32
)

// mouseTracking is the per-terminal tracking state. mode and protocol are
// written by the dispatcher thread and read by the UI thread; FeedMouse
// reads both exactly once on entry so a concurrent change only takes
// effect on the next event.
type mouseTracking struct {
	mode     MouseTrackingMode
	protocol MouseProtocol

	pressed MouseButton // button currently held, MouseButtonNone otherwise
	lastX   int         // last reported column, -1 before any report
	lastY   int
}

func (mt *mouseTracking) reset() {
	mt.pressed = MouseButtonNone
	mt.lastX = -1
	mt.lastY = -1
}

func (emu *Emulator) setMouseTrackingMode(mode MouseTrackingMode, set bool) {
	if !set {
		mode = MouseModeOff
	}
	emu.mouseTrk.mode = mode
}

func (emu *Emulator) setMouseTrackingProtocol(proto MouseProtocol, set bool) {
	if !set {
		proto = MouseProtoNormal
	}
	emu.mouseTrk.protocol = proto
}

func buttonBits(b MouseButton) int {
	switch b {
	case MouseButtonMiddle:
		return 0x01
	case MouseButtonRight:
		return 0x02
	default:
		return 0x00
	}
}

// FeedMouse consumes one pointer event from the UI thread. It reports
// whether tracking consumed the event; with tracking off the caller keeps
// the event for local selection handling. row and col are 0-based window
// coordinates.
func (emu *Emulator) FeedMouse(action MouseAction, button MouseButton,
	mods KeyModifiers, row, col int) bool {
	// read once: the dispatcher may flip these under our feet
	mode := emu.mouseTrk.mode
	protocol := emu.mouseTrk.protocol

	if mode == MouseModeOff {
		emu.mouseTrk.reset()
		return false
	}

	limit := mouseLimitExtended
	if protocol == MouseProtoNormal {
		limit = mouseLimitNormal
	}
	col = max(0, min(col, limit))
	row = max(0, min(row, limit))

	bits := 0
	release := false
	switch action {
	case MouseButtonDown:
		if emu.mouseTrk.pressed != MouseButtonNone {
			return true // a second button while one is held is dropped
		}
		emu.mouseTrk.pressed = button
		bits = buttonBits(button)
	case MouseButtonUp:
		release = true
		if protocol == MouseProtoSgr {
			bits = buttonBits(button)
		} else {
			bits = 0x03
		}
		emu.mouseTrk.pressed = MouseButtonNone
	case MouseWheelUp:
		bits = 0x40
	case MouseWheelDown:
		bits = 0x41
	case MouseMove:
		dragging := mode == MouseModeDrag && emu.mouseTrk.pressed != MouseButtonNone
		if mode != MouseModeAny && !dragging {
			return true
		}
		if row == emu.mouseTrk.lastY && col == emu.mouseTrk.lastX {
			return true
		}
		bits = 0x20 + buttonBits(emu.mouseTrk.pressed)
	}

	if mods&ModShift != 0 {
		bits |= mouseModShift
	}
	if mods&ModMeta != 0 {
		bits |= mouseModMeta
	}
	if mods&ModControl != 0 {
		bits |= mouseModControl
	}

	if protocol != MouseProtoSgr {
		bits += 0x20
	}

	emu.mouseTrk.lastX = col
	emu.mouseTrk.lastY = row

	switch protocol {
	case MouseProtoNormal:
		emu.writeHostBytes([]byte{0x1B, '[', 'M', byte(bits),
			classicCoord(col, limit), classicCoord(row, limit)})
	case MouseProtoUtf8:
		out := []byte{0x1B, '[', 'M', byte(bits)}
		out = utf8Coord(out, col)
		out = utf8Coord(out, row)
		emu.writeHostBytes(out)
	case MouseProtoUrxvt:
		emu.writeHost(fmt.Sprintf("\x1B[%d;%d;%dM", bits, col+1, row+1))
	case MouseProtoSgr:
		final := byte('M')
		if release {
			final = 'm'
		}
		emu.writeHost(fmt.Sprintf("\x1B[<%d;%d;%d%c", bits, col+1, row+1, final))
	}
	return true
}

// classicCoord encodes one coordinate of the classic protocol. At the
// clamp limit the +1+0x20 bias overflows the byte; xterm sends a zero
// byte there and so do we.
func classicCoord(coord, limit int) byte {
	if coord == limit {
		return 0
	}
	return byte(coord + 1 + 0x20)
}

// utf8Coord encodes one coordinate of the 1005 protocol: a single byte
// while the biased value stays below 127, a two-byte UTF-8 rune beyond.
func utf8Coord(out []byte, coord int) []byte {
	v := coord + 1 + 0x20
	if v < 127 {
		return append(out, byte(v))
	}
	return utf8.AppendRune(out, rune(v))
}
