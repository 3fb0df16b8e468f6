// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/digilog/poderosa/util"
)

/* C0 / C1 controls */

// Carriage Return (CR is Ctrl-M). Under the CR-only line feed rule the
// peer never sends LF, so CR advances the line as well.
func hdl_c0_cr(emu *Emulator) {
	emu.manip.CarriageReturn()
	emu.lastCol = false
	emu.lastWasCR = true
	if emu.settings.LineFeedRule == LineFeedRuleCROnly {
		emu.lineFeed()
	}
}

// LF, VT, FF all feed the line. Under the LF-only rule the peer never
// sends CR, so the caret returns to column 0 first.
func hdl_c0_lf(emu *Emulator) {
	if emu.settings.LineFeedRule == LineFeedRuleLFOnly {
		emu.manip.CarriageReturn()
	}
	emu.lineFeed()
}

// Bell (BEL is Ctrl-G).
func hdl_c0_bel(emu *Emulator) {
	emu.doc.RingBell()
}

// Backspace. At column 0 the caret may step back onto the previous row
// when that row wrapped into this one.
func hdl_c0_bs(emu *Emulator) {
	emu.lastCol = false
	if emu.manip.CaretColumn() > 0 {
		emu.manip.BackCaret()
		return
	}

	row := emu.doc.CursorRow()
	if row == 0 {
		return
	}
	prev := emu.doc.Line(row - 1)
	if prev.EOL() != EOLContinue {
		return
	}

	emu.flushLine()
	emu.doc.SetCursorRow(row - 1)
	emu.loadLine()
	emu.manip.SetCaretColumn(emu.doc.TerminalWidth() - 1)
	emu.doc.invalidateRows(row-1, row)
}

// Horizontal Tab (HT is Ctrl-I). A tab preserves but does not set the
// pending-wrap state.
func hdl_c0_ht(emu *Emulator) {
	wrapStateSave := emu.lastCol
	col := emu.tabStops.GetNextTabStop(emu.manip.CaretColumn(), emu.doc.TerminalWidth())
	emu.manip.SetCaretColumn(col)
	emu.lastCol = wrapStateSave
}

/* ESC finals */

// ESC E  Next Line (NEL).
func hdl_esc_nel(emu *Emulator) {
	emu.manip.CarriageReturn()
	emu.lineFeed()
}

// ESC D  Index (IND).
func hdl_esc_ind(emu *Emulator) {
	emu.lineFeed()
}

// ESC M  Reverse Index (RI), a backwards line feed.
func hdl_esc_ri(emu *Emulator) {
	emu.reverseLineFeed()
}

// ESC 7  Save Cursor (DECSC).
func hdl_esc_decsc(emu *Emulator) {
	emu.saveCursor()
}

// ESC 8  Restore Cursor (DECRC).
func hdl_esc_decrc(emu *Emulator) {
	emu.restoreCursor()
}

// ESC c  Full Reset (RIS).
func hdl_esc_ris(emu *Emulator) {
	emu.FullReset()
}

// ESC H  Tab Set (HTS): tab stop at the caret column.
func hdl_esc_hts(emu *Emulator) {
	emu.tabStops.Set(emu.manip.CaretColumn())
}

// ESC # 8  DEC Screen Alignment Test (DECALN): fill the window with E.
func hdl_esc_decaln(emu *Emulator) {
	emu.flushLine()
	for row := 0; row < emu.doc.TerminalHeight(); row++ {
		r := emu.doc.Line(row)
		for col := 0; col < r.Width(); col++ {
			cell := r.At(col)
			cell.Reset(Renditions{})
			cell.Append('E')
		}
	}
	emu.doc.InvalidateAll()
	emu.loadLine()
}

/* CSI cursor movement */

// CSI Ps A  Cursor Up (CUU).
func hdl_csi_cuu(emu *Emulator, num int) {
	emu.cursorVertical(-num)
}

// CSI Ps B  Cursor Down (CUD).
func hdl_csi_cud(emu *Emulator, num int) {
	emu.cursorVertical(num)
}

// CSI Ps C  Cursor Forward (CUF).
func hdl_csi_cuf(emu *Emulator, num int) {
	emu.lastCol = false
	emu.manip.SetCaretColumn(emu.manip.CaretColumn() + num)
}

// CSI Ps D  Cursor Backward (CUB).
func hdl_csi_cub(emu *Emulator, num int) {
	emu.lastCol = false
	emu.manip.SetCaretColumn(emu.manip.CaretColumn() - num)
}

// CSI Ps E  Cursor Next Line (CNL): column 1, down Ps rows.
func hdl_csi_cnl(emu *Emulator, num int) {
	emu.manip.CarriageReturn()
	emu.cursorVertical(num)
}

// CSI Ps F  Cursor Preceding Line (CPL): column 1, up Ps rows.
func hdl_csi_cpl(emu *Emulator, num int) {
	emu.manip.CarriageReturn()
	emu.cursorVertical(-num)
}

// CSI Ps ; Ps H  Cursor Position (CUP); CSI f (HVP) is the same. The wire
// is 1-based; origin mode offsets rows by the scrolling top.
func hdl_csi_cup(emu *Emulator, row, col int) {
	target := row - 1
	if emu.originMode {
		target += emu.doc.ScrollingTop()
	}
	emu.moveCursorTo(target, col-1)
}

// CSI Ps d  Line Position Absolute (VPA).
func hdl_csi_vpa(emu *Emulator, row int) {
	target := row - 1
	if emu.originMode {
		target += emu.doc.ScrollingTop()
	}
	emu.setCursorRow(target)
}

// CSI Ps G / `  Cursor Character Absolute (CHA/HPA).
func hdl_csi_cha(emu *Emulator, col int) {
	emu.lastCol = false
	emu.manip.SetCaretColumn(col - 1)
}

/* CSI erase and edit */

// CSI Ps J  Erase in Display (ED).
//
//	Ps = 0: below, from the caret; at (top,0) this is the whole window.
//	Ps = 1: above, through the caret; at (bottom,right) the whole window.
//	Ps = 2: the whole window.
func hdl_csi_ed(emu *Emulator, cmd int) {
	width := emu.doc.TerminalWidth()
	height := emu.doc.TerminalHeight()
	row := emu.doc.CursorRow()
	col := emu.manip.CaretColumn()

	// both partial modes alias to a full clear at their far corner
	if cmd == 0 && row == 0 && col == 0 {
		cmd = 2
	}
	if cmd == 1 && row == height-1 && col == width-1 {
		cmd = 2
	}

	switch cmd {
	case 0:
		emu.manip.FillSpace(col, width, emu.attrs)
		emu.flushLine()
		if row+1 < height {
			emu.doc.ClearRange(row+1, height-1, emu.attrs)
		}
		emu.loadLine()
	case 1:
		if row > 0 {
			emu.doc.ClearRange(0, row-1, emu.attrs)
		}
		emu.manip.FillSpace(0, col+1, emu.attrs)
		emu.flushLine()
		emu.loadLine()
	case 2:
		emu.flushLine()
		emu.doc.ClearRange(0, height-1, emu.attrs)
		emu.loadLine()
		if !emu.attrs.GetBgColor().IsDefault() {
			emu.doc.SetApplicationModeBackColor(emu.attrs.GetBgColor())
		}
	}
}

// CSI Ps K  Erase in Line (EL).
func hdl_csi_el(emu *Emulator, cmd int) {
	width := emu.doc.TerminalWidth()
	col := emu.manip.CaretColumn()

	switch cmd {
	case 0:
		emu.manip.FillSpace(col, width, emu.attrs)
	case 1:
		emu.manip.FillSpace(0, col+1, emu.attrs)
	case 2:
		emu.manip.FillSpace(0, width, emu.attrs)
	}
	emu.flushLine()
	emu.loadLine()
}

// CSI Ps L  Insert Lines (IL), anchored at the caret row, inside the
// scrolling region.
func hdl_csi_il(emu *Emulator, lines int) {
	top := emu.doc.ScrollingTop()
	bottom := emu.doc.ScrollingBottom()
	row := emu.doc.CursorRow()
	if row < top || row > bottom {
		return
	}

	emu.flushLine()
	emu.doc.ScrollDown(row, bottom, lines, emu.attrs)
	emu.loadLine()
	emu.manip.CarriageReturn()
}

// CSI Ps M  Delete Lines (DL).
func hdl_csi_dl(emu *Emulator, lines int) {
	top := emu.doc.ScrollingTop()
	bottom := emu.doc.ScrollingBottom()
	row := emu.doc.CursorRow()
	if row < top || row > bottom {
		return
	}

	emu.flushLine()
	emu.doc.ScrollUp(row, bottom, lines, emu.attrs)
	emu.loadLine()
	emu.manip.CarriageReturn()
}

// CSI Ps S  Scroll Up (SU) inside the region.
func hdl_csi_su(emu *Emulator, lines int) {
	emu.flushLine()
	emu.doc.ScrollUp(emu.doc.ScrollingTop(), emu.doc.ScrollingBottom(), lines, emu.attrs)
	emu.loadLine()
}

// CSI Ps T  Scroll Down (SD) inside the region.
func hdl_csi_sd(emu *Emulator, lines int) {
	emu.flushLine()
	emu.doc.ScrollDown(emu.doc.ScrollingTop(), emu.doc.ScrollingBottom(), lines, emu.attrs)
	emu.loadLine()
}

// CSI Ps X  Erase Characters (ECH): blank Ps cells at the caret, cursor
// unchanged.
func hdl_csi_ech(emu *Emulator, num int) {
	col := emu.manip.CaretColumn()
	emu.manip.FillSpace(col, col+num, emu.attrs)
}

// CSI Ps P  Delete Characters (DCH): shift the tail of the row left.
func hdl_csi_dch(emu *Emulator, num int) {
	emu.manip.DeleteChars(num, emu.attrs)
}

// CSI Ps @  Insert Blank Characters (ICH).
func hdl_csi_ich(emu *Emulator, num int) {
	emu.manip.InsertBlanks(num, emu.attrs)
}

/* CSI tabs */

// CSI Ps I  Cursor Forward Tabulation (CHT).
func hdl_csi_cht(emu *Emulator, count int) {
	for i := 0; i < count; i++ {
		hdl_c0_ht(emu)
	}
}

// CSI Ps Z  Cursor Backward Tabulation (CBT).
func hdl_csi_cbt(emu *Emulator, count int) {
	col := emu.manip.CaretColumn()
	for i := 0; i < count; i++ {
		col = emu.tabStops.GetPreviousTabStop(col)
	}
	emu.manip.SetCaretColumn(col)
}

// CSI Ps g  Tab Clear (TBC): 0 clears the caret column, 3 clears all.
func hdl_csi_tbc(emu *Emulator, cmd int) {
	switch cmd {
	case 0:
		emu.tabStops.Clear(emu.manip.CaretColumn())
	case 3:
		emu.tabStops.ClearAll()
	}
}

/* CSI region, reports, save/restore */

// CSI Ps ; Ps r  Set Scrolling Region (DECSTBM). Defaults span the full
// window; an inverted pair is swapped.
func hdl_csi_decstbm(emu *Emulator, params csiParams) {
	top := params.item(0, 1)
	bottom := params.item(1, emu.doc.TerminalHeight())
	emu.doc.SetScrollingRegion(top-1, bottom-1)
}

// CSI s  Save Cursor (SCOSC), the ANSI.SYS form.
func hdl_csi_scosc(emu *Emulator) {
	emu.savedCursorSCO.row = emu.doc.CursorRow()
	emu.savedCursorSCO.col = emu.manip.CaretColumn()
	emu.savedCursorSCO.isSet = true
}

// CSI u  Restore Cursor (SCORC).
func hdl_csi_scorc(emu *Emulator) {
	if !emu.savedCursorSCO.isSet {
		util.Logger.Warn("asked to restore cursor (SCORC) but it has not been saved")
		return
	}
	emu.moveCursorTo(emu.savedCursorSCO.row, emu.savedCursorSCO.col)
	emu.savedCursorSCO.isSet = false
}

// CSI c  Primary Device Attributes.
func hdl_csi_da1(emu *Emulator) {
	emu.writeHost("\x1B[?1;2c")
}

// CSI > Ps c  Secondary Device Attributes.
func hdl_csi_da2(emu *Emulator, params csiParams, seq string) error {
	if params.itemOrZero(0) != 0 {
		return unsupportedSeq(seq)
	}
	emu.writeHost("\x1B[>82;1;0c")
	return nil
}

// CSI Ps n  Device Status Report. 5 reports status OK, 6 reports the
// cursor position, 1-based, relative to the visible window.
func hdl_csi_dsr(emu *Emulator, cmd int, seq string) error {
	switch cmd {
	case 5:
		emu.writeHost("\x1B[0n")
	case 6:
		row := emu.doc.CursorRow() + 1
		col := emu.manip.CaretColumn() + 1
		emu.writeHost(fmt.Sprintf("\x1B[%d;%dR", row, col))
	default:
		return unsupportedSeq(seq)
	}
	return nil
}

/* OSC */

// OSC 0/2: window title. The caption lives in shared settings, so the
// write is queued until the input lock exits.
func hdl_osc_title(emu *Emulator, arg string) {
	title := arg
	emu.deferAction(func() {
		emu.settings.Caption = title
	})
}

// OSC 1: icon name, stored but otherwise unused.
func hdl_osc_icon(emu *Emulator, arg string) {
	emu.iconName = arg
}

// OSC 4: install palette entries. The argument is a sequence of
// index;spec pairs; each spec is a #-hex triple or an rgb:R/G/B form.
func hdl_osc_palette(emu *Emulator, arg string) {
	parts := strings.Split(arg, ";")
	for i := 0; i+1 < len(parts); i += 2 {
		index, err := strconv.Atoi(parts[i])
		if err != nil || index < 0 || index >= PaletteSize {
			util.Logger.Trace("OSC 4: malformed palette index", "index", parts[i])
			continue
		}
		r, g, b, ok := parseColorSpec(parts[i+1])
		if !ok {
			util.Logger.Trace("OSC 4: malformed color spec", "spec", parts[i+1])
			continue
		}
		emu.palette.Set(index, r, g, b)
	}
	emu.doc.InvalidateAll()
}
