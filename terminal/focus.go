// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// FeedFocus reports a focus change to the peer when focus reporting is
// enabled (DECSET 1004); otherwise the event is swallowed.
func (emu *Emulator) FeedFocus(gained bool) {
	if !emu.focusReporting {
		return
	}
	if gained {
		emu.writeHost("\x1B[I")
	} else {
		emu.writeHost("\x1B[O")
	}
}

// PasteLeader returns the bytes that precede pasted data: the bracketed
// paste opener when the mode is on, nothing otherwise.
func (emu *Emulator) PasteLeader() []byte {
	if emu.bracketedPasteMode {
		return []byte("\x1B[200~")
	}
	return []byte{}
}

// PasteTrailer returns the bytes that follow pasted data.
func (emu *Emulator) PasteTrailer() []byte {
	if emu.bracketedPasteMode {
		return []byte("\x1B[201~")
	}
	return []byte{}
}

// WrapPaste envelopes pasted bytes for transmission. The pasted bytes
// themselves are never altered.
func (emu *Emulator) WrapPaste(data []byte) []byte {
	out := make([]byte, 0, len(data)+16)
	out = append(out, emu.PasteLeader()...)
	out = append(out, data...)
	out = append(out, emu.PasteTrailer()...)
	return out
}
