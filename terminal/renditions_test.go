// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "testing"

func TestSgrAttributes(t *testing.T) {
	tc := []struct {
		name  string
		seq   string
		check func(r Renditions) bool
	}{
		{"bold", "\x1B[1m", func(r Renditions) bool { return r.bold }},
		{"underline", "\x1B[4m", func(r Renditions) bool { return r.underline }},
		{"blink", "\x1B[5m", func(r Renditions) bool { return r.blink }},
		{"rapid blink maps to blink", "\x1B[6m", func(r Renditions) bool { return r.blink }},
		{"inverse", "\x1B[7m", func(r Renditions) bool { return r.inverse }},
		{"hidden", "\x1B[8m", func(r Renditions) bool { return r.invisible }},
		{"underline off", "\x1B[4m\x1B[24m", func(r Renditions) bool { return !r.underline }},
		{"blink off", "\x1B[5m\x1B[25m", func(r Renditions) bool { return !r.blink }},
		{"inverse off", "\x1B[7m\x1B[27m", func(r Renditions) bool { return !r.inverse }},
		{"hidden off", "\x1B[8m\x1B[28m", func(r Renditions) bool { return !r.invisible }},
		{"combined", "\x1B[1;4;31m", func(r Renditions) bool {
			return r.bold && r.underline && r.fgColor == PaletteColor(1)
		}},
	}

	for _, v := range tc {
		emu := NewEmulator(10, 5, 0)
		emu.HandleStream(v.seq)
		if !v.check(emu.GetRenditions()) {
			t.Errorf("%s: check failed for %q", v.name, v.seq)
		}
	}
}

func TestSgrResetLaw(t *testing.T) {
	// any SGR 0 resets the decoration regardless of history; 22 is the
	// historic alias
	tc := []string{
		"\x1B[1;4;5;7;8;31;42m\x1B[0m",
		"\x1B[38;2;1;2;3m\x1B[m",
		"\x1B[31m\x1B[22m",
	}

	for _, seq := range tc {
		emu := NewEmulator(10, 5, 0)
		emu.HandleStream(seq)
		if emu.GetRenditions() != (Renditions{}) {
			t.Errorf("expect default renditions after %q, got %+v", seq, emu.GetRenditions())
		}
	}
}

func TestSgrColorSelection(t *testing.T) {
	tc := []struct {
		name   string
		seq    string
		fg, bg Color
	}{
		{"ansi pair", "\x1B[31;42m", PaletteColor(1), PaletteColor(2)},
		{"bright fg", "\x1B[91m", PaletteColor(9), ColorDefault},
		{"bright bg", "\x1B[103m", ColorDefault, PaletteColor(11)},
		{"defaults", "\x1B[31;42m\x1B[39;49m", ColorDefault, ColorDefault},
		{"indexed 256 fg", "\x1B[38;5;200m", PaletteColor(200), ColorDefault},
		{"indexed 256 bg", "\x1B[48;5;100m", ColorDefault, PaletteColor(100)},
		{"direct fg", "\x1B[38;2;10;20;30m", NewRGBColor(10, 20, 30), ColorDefault},
		{"direct bg", "\x1B[48;2;4;5;6m", ColorDefault, NewRGBColor(4, 5, 6)},
		{"both forms", "\x1B[38;5;11;48;2;1;2;3m", PaletteColor(11), NewRGBColor(1, 2, 3)},
	}

	for _, v := range tc {
		emu := NewEmulator(10, 5, 0)
		emu.HandleStream(v.seq)
		r := emu.GetRenditions()
		if r.fgColor != v.fg || r.bgColor != v.bg {
			t.Errorf("%s: expect fg=%v bg=%v, got fg=%v bg=%v",
				v.name, v.fg, v.bg, r.fgColor, r.bgColor)
		}
	}
}

func TestSgrTruncatedColorForm(t *testing.T) {
	// a sequence ending mid-assignment keeps what was already applied
	emu := NewEmulator(10, 5, 0)
	emu.HandleStream("\x1B[31m\x1B[38;2;10m")

	if got := emu.GetRenditions().fgColor; got != PaletteColor(1) {
		t.Errorf("expect the earlier color kept, got %v", got)
	}
}

func TestSgrMalformedKindAborts(t *testing.T) {
	// 38 followed by neither 5 nor 2 reprocesses the code as plain SGR
	emu := NewEmulator(10, 5, 0)
	emu.HandleStream("\x1B[38;1m")

	if !emu.GetRenditions().bold {
		t.Error("expect the trailing 1 applied as bold")
	}
}

func TestSgrOutOfRangeChannelIgnored(t *testing.T) {
	emu := NewEmulator(10, 5, 0)
	emu.HandleStream("\x1B[38;2;300;0;0m")

	if got := emu.GetRenditions().fgColor; got != ColorDefault {
		t.Errorf("expect the invalid channel to void the assignment, got %v", got)
	}
}

func TestSgrAppliedToCells(t *testing.T) {
	emu := NewEmulator(10, 5, 0)
	emu.HandleStream("\x1B[1;33mA\x1B[0mB")

	a := emu.GetCell(0, 0).GetRenditions()
	if !a.bold || a.fgColor != PaletteColor(3) {
		t.Errorf("expect bold yellow A, got %+v", a)
	}
	b := emu.GetCell(0, 1).GetRenditions()
	if b != (Renditions{}) {
		t.Errorf("expect default B, got %+v", b)
	}
}
