// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "testing"

func TestFocusReporting(t *testing.T) {
	emu := NewEmulator(80, 24, 0)

	// disabled: events are swallowed
	emu.FeedFocus(true)
	emu.FeedFocus(false)
	if got := emu.ReadOctetsToHost(); got != "" {
		t.Errorf("expect focus events swallowed, got %q", got)
	}

	emu.HandleStream("\x1B[?1004h")
	emu.FeedFocus(true)
	if got := emu.ReadOctetsToHost(); got != "\x1B[I" {
		t.Errorf("expect focus-in, got %q", got)
	}
	emu.FeedFocus(false)
	if got := emu.ReadOctetsToHost(); got != "\x1B[O" {
		t.Errorf("expect focus-out, got %q", got)
	}

	emu.HandleStream("\x1B[?1004l")
	emu.FeedFocus(true)
	if got := emu.ReadOctetsToHost(); got != "" {
		t.Errorf("expect reporting off again, got %q", got)
	}
}

func TestBracketedPaste(t *testing.T) {
	emu := NewEmulator(80, 24, 0)

	// disabled: empty envelopes, data untouched
	if got := string(emu.WrapPaste([]byte("data"))); got != "data" {
		t.Errorf("expect bare data, got %q", got)
	}

	emu.HandleStream("\x1B[?2004h")
	if got := string(emu.PasteLeader()); got != "\x1B[200~" {
		t.Errorf("expect the paste leader, got %q", got)
	}
	if got := string(emu.PasteTrailer()); got != "\x1B[201~" {
		t.Errorf("expect the paste trailer, got %q", got)
	}
	if got := string(emu.WrapPaste([]byte("a\x1Bb"))); got != "\x1B[200~a\x1Bb\x1B[201~" {
		t.Errorf("expect the pasted bytes unmutated inside the envelope, got %q", got)
	}

	emu.HandleStream("\x1B[?2004l")
	if got := len(emu.PasteLeader()) + len(emu.PasteTrailer()); got != 0 {
		t.Errorf("expect empty envelopes when disabled, got %d bytes", got)
	}
}
