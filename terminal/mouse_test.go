// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "testing"

func TestMouseTrackingOff(t *testing.T) {
	emu := NewEmulator(80, 24, 0)

	if emu.FeedMouse(MouseButtonDown, MouseButtonLeft, 0, 1, 1) {
		t.Error("expect the event to stay with the caller when tracking is off")
	}
	if got := emu.ReadOctetsToHost(); got != "" {
		t.Errorf("expect no bytes, got %q", got)
	}
}

func TestMouseClassicEncoding(t *testing.T) {
	tc := []struct {
		name     string
		action   MouseAction
		button   MouseButton
		mods     KeyModifiers
		row, col int
		expect   string
	}{
		{"left press", MouseButtonDown, MouseButtonLeft, 0, 2, 4, "\x1B[M\x20\x25\x23"},
		{"middle press", MouseButtonDown, MouseButtonMiddle, 0, 0, 0, "\x1B[M\x21\x21\x21"},
		{"right press with ctrl", MouseButtonDown, MouseButtonRight, ModControl, 0, 0, "\x1B[M\x32\x21\x21"},
		{"wheel up", MouseWheelUp, MouseButtonNone, 0, 0, 0, "\x1B[M\x60\x21\x21"},
		{"wheel down", MouseWheelDown, MouseButtonNone, 0, 0, 0, "\x1B[M\x61\x21\x21"},
	}

	for _, v := range tc {
		emu := NewEmulator(80, 24, 0)
		emu.HandleStream("\x1B[?1000h")
		emu.FeedMouse(v.action, v.button, v.mods, v.row, v.col)
		if got := emu.ReadOctetsToHost(); got != v.expect {
			t.Errorf("%s: expect %q, got %q", v.name, v.expect, got)
		}
	}
}

func TestMouseReleaseEncodings(t *testing.T) {
	// classic release reports 0x03 regardless of button; SGR names the
	// button and uses the lowercase final
	emu := NewEmulator(80, 24, 0)
	emu.HandleStream("\x1B[?1000h")
	emu.FeedMouse(MouseButtonDown, MouseButtonRight, 0, 0, 0)
	emu.ReadOctetsToHost()
	emu.FeedMouse(MouseButtonUp, MouseButtonRight, 0, 0, 0)
	if got := emu.ReadOctetsToHost(); got != "\x1B[M\x23\x21\x21" {
		t.Errorf("classic release: expect %q, got %q", "\x1B[M\x23\x21\x21", got)
	}

	emu.HandleStream("\x1B[?1006h")
	emu.FeedMouse(MouseButtonDown, MouseButtonRight, 0, 4, 2)
	if got := emu.ReadOctetsToHost(); got != "\x1B[<2;3;5M" {
		t.Errorf("sgr press: expect %q, got %q", "\x1B[<2;3;5M", got)
	}
	emu.FeedMouse(MouseButtonUp, MouseButtonRight, 0, 4, 2)
	if got := emu.ReadOctetsToHost(); got != "\x1B[<2;3;5m" {
		t.Errorf("sgr release: expect %q, got %q", "\x1B[<2;3;5m", got)
	}
}

func TestMouseSecondButtonDropped(t *testing.T) {
	emu := NewEmulator(80, 24, 0)
	emu.HandleStream("\x1B[?1000h")
	emu.FeedMouse(MouseButtonDown, MouseButtonLeft, 0, 0, 0)
	emu.ReadOctetsToHost()

	if !emu.FeedMouse(MouseButtonDown, MouseButtonRight, 0, 0, 0) {
		t.Error("expect the event consumed even when dropped")
	}
	if got := emu.ReadOctetsToHost(); got != "" {
		t.Errorf("expect no report for a second press, got %q", got)
	}
}

func TestMouseMoveFiltering(t *testing.T) {
	// drag mode reports motion only while a button is down, and only for
	// a new position
	emu := NewEmulator(80, 24, 0)
	emu.HandleStream("\x1B[?1002h")

	emu.FeedMouse(MouseMove, MouseButtonNone, 0, 3, 3)
	if got := emu.ReadOctetsToHost(); got != "" {
		t.Errorf("expect no motion report without a button, got %q", got)
	}

	emu.FeedMouse(MouseButtonDown, MouseButtonLeft, 0, 3, 3)
	emu.ReadOctetsToHost()
	emu.FeedMouse(MouseMove, MouseButtonNone, 0, 3, 4)
	if got := emu.ReadOctetsToHost(); got != "\x1B[M\x40\x25\x24" {
		t.Errorf("expect a drag report, got %q", got)
	}

	// the same position again is suppressed
	emu.FeedMouse(MouseMove, MouseButtonNone, 0, 3, 4)
	if got := emu.ReadOctetsToHost(); got != "" {
		t.Errorf("expect the duplicate suppressed, got %q", got)
	}
}

func TestMouseAnyReportsAllMotion(t *testing.T) {
	emu := NewEmulator(80, 24, 0)
	emu.HandleStream("\x1B[?1003h")

	emu.FeedMouse(MouseMove, MouseButtonNone, 0, 1, 1)
	if got := emu.ReadOctetsToHost(); got != "\x1B[M\x40\x22\x22" {
		t.Errorf("expect motion with no button held, got %q", got)
	}
}

func TestMouseCoordinateClamping(t *testing.T) {
	// classic protocol clamps to 223 and substitutes a zero byte at the
	// limit, matching the xterm overflow behavior
	emu := NewEmulator(80, 24, 0)
	emu.HandleStream("\x1B[?1000h")
	emu.FeedMouse(MouseButtonDown, MouseButtonLeft, 0, 500, 500)

	if got := emu.ReadOctetsToHost(); got != "\x1B[M\x20\x00\x00" {
		t.Errorf("expect zero bytes at the clamp limit, got %q", got)
	}
}

func TestMouseUtf8Encoding(t *testing.T) {
	emu := NewEmulator(80, 24, 0)
	emu.HandleStream("\x1B[?1000h\x1B[?1005h")
	emu.FeedMouse(MouseButtonDown, MouseButtonLeft, 0, 300, 200)

	// 200+33=233 and 300+33=333 both need two UTF-8 bytes
	expect := "\x1B[M\x20" + string(rune(233)) + string(rune(333))
	if got := emu.ReadOctetsToHost(); got != expect {
		t.Errorf("expect %q, got %q", expect, got)
	}
}

func TestMouseUrxvtEncoding(t *testing.T) {
	emu := NewEmulator(80, 24, 0)
	emu.HandleStream("\x1B[?1000h\x1B[?1015h")
	emu.FeedMouse(MouseButtonDown, MouseButtonLeft, ModShift, 9, 19)

	if got := emu.ReadOctetsToHost(); got != "\x1B[36;20;10M" {
		t.Errorf("expect %q, got %q", "\x1B[36;20;10M", got)
	}
}

func TestMouseModeReset(t *testing.T) {
	emu := NewEmulator(80, 24, 0)
	emu.HandleStream("\x1B[?1003h\x1B[?1003l")

	if emu.FeedMouse(MouseMove, MouseButtonNone, 0, 1, 1) {
		t.Error("expect tracking off after reset")
	}
}
