// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// SavedCursor is the DECSC/1048 snapshot. One exists per screen buffer;
// switching buffers switches which one is active.
type SavedCursor struct {
	row   int
	col   int
	attrs Renditions

	originMode   bool
	autoWrapMode bool
	isSet        bool
}

// savedCursorSCO is the ANSI.SYS flavor used by CSI s / CSI u.
type savedCursorSCO struct {
	row   int
	col   int
	isSet bool
}

// saveCursor records position, decoration and the positioning modes into
// the active buffer's slot.
func (emu *Emulator) saveCursor() {
	sc := emu.savedCursor
	sc.row = emu.doc.CursorRow()
	sc.col = emu.manip.CaretColumn()
	sc.attrs = emu.attrs
	sc.originMode = emu.originMode
	sc.autoWrapMode = emu.autoWrapMode
	sc.isSet = true
}

// restoreCursor puts back the saved state. Without a prior save the
// cursor homes and the modes return to defaults, like a fresh buffer.
func (emu *Emulator) restoreCursor() {
	sc := emu.savedCursor
	if !sc.isSet {
		emu.moveCursorTo(0, 0)
		emu.originMode = false
		emu.autoWrapMode = true
		return
	}
	emu.attrs = sc.attrs
	emu.originMode = sc.originMode
	emu.autoWrapMode = sc.autoWrapMode
	emu.moveCursorTo(sc.row, sc.col)
}

// switchScreenBuffer moves between the main and the alternate buffer.
// Entering snapshots the visible window line by line; leaving re-expands
// the snapshot to the current width and puts it back. While the alternate
// buffer is active the window is exactly terminalHeight rows, scrollback
// is suppressed, and the scrolling region spans the full window.
func (emu *Emulator) switchScreenBuffer(toAlternate, clearScreen bool) {
	if emu.altScreenBufferMode == toAlternate {
		return
	}
	emu.flushLine()

	if toAlternate {
		height := emu.doc.TerminalHeight()
		emu.mainSnapshot = emu.mainSnapshot[:0]
		for row := 0; row < height; row++ {
			emu.mainSnapshot = append(emu.mainSnapshot, emu.doc.Line(row).clone())
		}

		emu.doc.ClearScrollingRegion()
		emu.doc.SetApplicationMode(true)
		emu.altScreenBufferMode = true
		emu.savedCursor = &emu.savedCursorAlt

		if clearScreen {
			emu.doc.ClearRange(0, height-1, emu.attrs)
		}
	} else {
		emu.doc.SetApplicationMode(false)
		emu.altScreenBufferMode = false
		emu.savedCursorAlt.isSet = false
		emu.savedCursor = &emu.savedCursorPri

		height := emu.doc.TerminalHeight()
		if len(emu.mainSnapshot) == 0 {
			// no snapshot: treat the restore as a fresh blank buffer,
			// and drop the blank tail the alternate session left so it
			// does not pad the scrollback
			emu.doc.ClearRange(0, height-1, emu.attrs)
			emu.trimBlankTail()
		} else {
			width := emu.doc.TerminalWidth()
			for row := 0; row < height && row < len(emu.mainSnapshot); row++ {
				saved := emu.mainSnapshot[row]
				saved.Resize(width, Renditions{})
				emu.doc.Replace(row, saved)
			}
			emu.mainSnapshot = emu.mainSnapshot[:0]
		}
	}

	emu.doc.InvalidateAll()
	emu.loadLine()
}

// trimBlankTail removes wholly blank rows trailing the window, keeping at
// least the cursor row.
func (emu *Emulator) trimBlankTail() {
	height := emu.doc.TerminalHeight()
	last := height - 1
	for last > emu.doc.CursorRow() && emu.doc.Line(last).IsBlank() {
		last--
	}
	if last < height-1 {
		emu.doc.RemoveAfter(emu.doc.Line(last).ID())
	}
}
