// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "fmt"

// KeyModifiers is the modifier chord held with a key or mouse event.
type KeyModifiers uint

const (
	ModShift KeyModifiers = 1 << iota
	ModMeta               // Alt/Meta
	ModControl
)

// xtermModifier returns the xterm modifier parameter:
// 1 + shift + 2*alt + 4*ctrl.
func (m KeyModifiers) xtermModifier() int {
	v := 1
	if m&ModShift != 0 {
		v += 1
	}
	if m&ModMeta != 0 {
		v += 2
	}
	if m&ModControl != 0 {
		v += 4
	}
	return v
}

// VtKey names the keys the encoder understands.
type VtKey int

const (
	KeyUp VtKey = iota
	KeyDown
	KeyRight
	KeyLeft

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyInsert
	KeyHome
	KeyPageUp
	KeyDelete
	KeyEnd
	KeyPageDown
)

var cursorKeyFinal = map[VtKey]byte{
	KeyUp:    'A',
	KeyDown:  'B',
	KeyRight: 'C',
	KeyLeft:  'D',
}

// F1-F4 use the SS3 P/Q/R/S finals; F5 onward use tilde codes with the
// historic gaps.
var fnKeyFinal = map[VtKey]byte{
	KeyF1: 'P', KeyF2: 'Q', KeyF3: 'R', KeyF4: 'S',
}

var fnKeyCode = map[VtKey]int{
	KeyF5: 15, KeyF6: 17, KeyF7: 18, KeyF8: 19,
	KeyF9: 20, KeyF10: 21, KeyF11: 23, KeyF12: 24,
}

// primary xterm encoding of the editing keypad
var editKeyCode = map[VtKey]int{
	KeyInsert: 2, KeyHome: 7, KeyPageUp: 5,
	KeyDelete: 3, KeyEnd: 8, KeyPageDown: 6,
}

// legacy shifted encoding of the editing keypad
var editKeyCodeLegacy = map[VtKey]int{
	KeyInsert: 1, KeyHome: 2, KeyPageUp: 3,
	KeyDelete: 4, KeyEnd: 5, KeyPageDown: 6,
}

// EncodeKey renders a cursor, function or editing key into the byte
// sequence the peer expects under the current modes. Unknown keys encode
// to an empty string.
func (emu *Emulator) EncodeKey(key VtKey, mods KeyModifiers) string {
	if final, ok := cursorKeyFinal[key]; ok {
		return emu.encodeCursorKey(final, mods)
	}
	if final, ok := fnKeyFinal[key]; ok {
		if m := mods.xtermModifier(); m > 1 {
			return fmt.Sprintf("\x1B[1;%d%c", m, final)
		}
		return fmt.Sprintf("\x1BO%c", final)
	}
	if code, ok := fnKeyCode[key]; ok {
		if m := mods.xtermModifier(); m > 1 {
			return fmt.Sprintf("\x1B[%d;%d~", code, m)
		}
		return fmt.Sprintf("\x1B[%d~", code)
	}
	if code, ok := editKeyCode[key]; ok {
		if emu.legacyEditKeys {
			code = editKeyCodeLegacy[key]
		}
		return fmt.Sprintf("\x1B[%d~", code)
	}
	return ""
}

// encodeCursorKey applies the modifyCursorKeys resource, then DECCKM.
func (emu *Emulator) encodeCursorKey(final byte, mods KeyModifiers) string {
	m := mods.xtermModifier()
	if m >= 2 && m <= 7 {
		switch emu.modifyCursorKeys {
		case 2:
			return fmt.Sprintf("\x1B[1;%d%c", m, final)
		case 3:
			return fmt.Sprintf("\x1B[>1;%d%c", m, final)
		}
	}
	if emu.cursorKeyMode == CursorKeyModeApplication {
		return fmt.Sprintf("\x1BO%c", final)
	}
	return fmt.Sprintf("\x1B[%c", final)
}
