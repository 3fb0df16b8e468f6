// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import (
	"bytes"
	"errors"
	"io"

	"github.com/rivo/uniseg"

	"github.com/digilog/poderosa/util"
)

// CursorKeyMode selects the encoding of the arrow keys (DECCKM).
type CursorKeyMode int

const (
	CursorKeyModeNormal CursorKeyMode = iota
	CursorKeyModeApplication
)

// TerminalMode is the keypad mode toggled by ESC = / ESC >.
type TerminalMode int

const (
	TerminalModeNormal TerminalMode = iota
	TerminalModeApplication
)

// maxDeferredActions bounds the after-parse action queue.
const maxDeferredActions = 32

// Emulator is the terminal core: it parses the incoming character stream,
// interprets control sequences against the grid, and produces reply bytes
// for the peer. The parser and dispatcher run single-threaded on the
// input thread; they are the sole mutators of grid, cursor, tab stops and
// mode flags. Mouse and focus events may arrive from a UI thread (see
// FeedMouse).
type Emulator struct {
	doc    *Document
	manip  *Manipulator
	parser *Parser

	palette  *Palette
	attrs    Renditions
	tabStops *TabStops

	// terminal state; keep ResetInternal in sync with this
	insertMode         bool
	autoWrapMode       bool
	originMode         bool
	reverseVideo       bool
	showCursorMode     bool
	bracketedPasteMode bool
	focusReporting     bool
	legacyEditKeys     bool
	cursorKeyMode      CursorKeyMode
	terminalMode       TerminalMode

	altScreenBufferMode     bool
	savedIsAlternateBuffer  bool
	mainSnapshot            []*Row
	savedCursorPri          SavedCursor
	savedCursorAlt          SavedCursor
	savedCursor             *SavedCursor
	savedCursorSCO          savedCursorSCO

	mouseTrk mouseTracking

	lastCol   bool // pending wrap: the caret sits on the last column, filled
	lastWasCR bool

	modifyCursorKeys int

	settings *Settings
	iconName string

	terminalToHost bytes.Buffer
	transmitter    io.Writer

	deferred []func()

	// observer for each printable character, when installed
	charObserver func(rune)
}

// NewEmulator builds a terminal of nCols x nRows with saveLines rows of
// scrollback.
func NewEmulator(nCols, nRows, saveLines int) *Emulator {
	emu := &Emulator{}
	emu.doc = NewDocument(nCols, nRows, saveLines)
	emu.manip = NewManipulator()
	emu.parser = NewParser()
	emu.palette = NewPalette()
	emu.tabStops = NewTabStops(nCols)
	emu.settings = NewSettings()
	emu.savedCursor = &emu.savedCursorPri
	emu.modifyCursorKeys = 2

	emu.resetModes()
	emu.loadLine()
	return emu
}

func (emu *Emulator) resetModes() {
	emu.insertMode = false
	emu.autoWrapMode = true
	emu.originMode = false
	emu.reverseVideo = false
	emu.showCursorMode = true
	emu.bracketedPasteMode = false
	emu.focusReporting = false
	emu.cursorKeyMode = CursorKeyModeNormal
	emu.terminalMode = TerminalModeNormal
	emu.attrs = Renditions{}
	emu.lastCol = false
	emu.lastWasCR = false
	emu.mouseTrk = mouseTracking{}
	emu.mouseTrk.reset()
}

// ResetInternal reinitializes the parser and the mode flags. The grid is
// preserved.
func (emu *Emulator) ResetInternal() {
	emu.flushLine()
	emu.parser.Reset()
	emu.resetModes()
	emu.loadLine()
}

// FullReset additionally reinitializes the tab stops, the palette, the
// saved cursors and the grid itself.
func (emu *Emulator) FullReset() {
	emu.parser.Reset()
	emu.resetModes()
	emu.tabStops.Reset(emu.doc.TerminalWidth())
	emu.palette.Reset()
	emu.savedCursorPri = SavedCursor{}
	emu.savedCursorAlt = SavedCursor{}
	emu.savedCursor = &emu.savedCursorPri
	emu.savedCursorSCO = savedCursorSCO{}
	emu.savedIsAlternateBuffer = false
	emu.mainSnapshot = emu.mainSnapshot[:0]
	emu.altScreenBufferMode = false
	emu.doc.SetApplicationMode(false)
	emu.doc.ClearScrollingRegion()
	emu.doc.ClearRange(0, emu.doc.TerminalHeight()-1, Renditions{})
	emu.doc.SetCursorRow(0)
	emu.manip.Reset(emu.doc.TerminalWidth(), Renditions{})
	emu.loadLine()
	emu.doc.InvalidateAll()
}

func (emu *Emulator) GetParser() *Parser      { return emu.parser }
func (emu *Emulator) GetDocument() *Document  { return emu.doc }
func (emu *Emulator) GetPalette() *Palette    { return emu.palette }
func (emu *Emulator) GetSettings() *Settings  { return emu.settings }
func (emu *Emulator) GetRenditions() Renditions { return emu.attrs }
func (emu *Emulator) GetIconName() string     { return emu.iconName }

// SetTransmitter installs the byte sink toward the peer. Without one the
// replies accumulate until ReadOctetsToHost drains them.
func (emu *Emulator) SetTransmitter(w io.Writer) { emu.transmitter = w }

// SetCharacterObserver installs a hook receiving every printable
// character, used by modal input tasks.
func (emu *Emulator) SetCharacterObserver(fn func(rune)) { emu.charObserver = fn }

// SetModifyCursorKeys sets the xterm modifyCursorKeys resource; the value
// must be positive.
func (emu *Emulator) SetModifyCursorKeys(v int) {
	if v > 0 {
		emu.modifyCursorKeys = v
	}
}

// SetLegacyEditKeys switches the editing keypad to the shifted legacy
// codes.
func (emu *Emulator) SetLegacyEditKeys(on bool) { emu.legacyEditKeys = on }

// GetCursorRow returns the window-relative cursor row, 0-based.
func (emu *Emulator) GetCursorRow() int { return emu.doc.CursorRow() }

// GetCursorCol returns the caret column, 0-based.
func (emu *Emulator) GetCursorCol() int { return emu.manip.CaretColumn() }

// GetCell returns a copy of the cell at window-relative (row, col).
func (emu *Emulator) GetCell(row, col int) Cell {
	if row == emu.doc.CursorRow() {
		emu.flushLine()
	}
	return *emu.doc.Line(row).At(col)
}

// RowText returns the visible text of a window row, trailing blanks
// trimmed.
func (emu *Emulator) RowText(row int) string {
	if row == emu.doc.CursorRow() {
		emu.flushLine()
	}
	return emu.doc.Line(row).String()
}

// ReadOctetsToHost drains the pending reply bytes.
func (emu *Emulator) ReadOctetsToHost() string {
	ret := emu.terminalToHost.String()
	emu.terminalToHost.Reset()
	return ret
}

func (emu *Emulator) writeHost(resp string) {
	if emu.transmitter != nil {
		io.WriteString(emu.transmitter, resp)
		return
	}
	emu.terminalToHost.WriteString(resp)
}

func (emu *Emulator) writeHostBytes(resp []byte) {
	if emu.transmitter != nil {
		emu.transmitter.Write(resp)
		return
	}
	emu.terminalToHost.Write(resp)
}

// deferAction queues a settings mutation to run after the current parse
// step returns, outside the input critical section. The queue is bounded;
// overflow drops the action with a diagnostic.
func (emu *Emulator) deferAction(fn func()) {
	if len(emu.deferred) >= maxDeferredActions {
		util.Logger.Warn("deferred action queue full, dropping")
		return
	}
	emu.deferred = append(emu.deferred, fn)
}

func (emu *Emulator) flushDeferred() {
	for _, fn := range emu.deferred {
		fn()
	}
	emu.deferred = emu.deferred[:0]
}

// HandleStream processes a chunk of decoded characters. Grapheme clusters
// print as one cell; everything else feeds the recognizer rune by rune.
// Bad sequences produce one diagnostic each and processing resumes at the
// next character.
func (emu *Emulator) HandleStream(seq string) {
	graphemes := uniseg.NewGraphemes(seq)
	for graphemes.Next() {
		rs := graphemes.Runes()
		if len(rs) > 1 && emu.parser.inGround() && rs[0] >= 0x20 && rs[0] != 0x7F {
			emu.printGrapheme(rs)
			continue
		}
		for _, r := range rs {
			emu.feedRune(r)
		}
	}
	emu.flushDeferred()
}

func (emu *Emulator) feedRune(r rune) {
	for _, ev := range emu.parser.Feed(r) {
		switch ev.kind {
		case eventChar:
			emu.handleChar(ev.ch)
		case eventSequence:
			if err := dispatchSequence(emu, ev.seq); err != nil {
				var unknown *UnknownSequenceError
				if errors.As(err, &unknown) {
					util.Logger.Warn("unknown escape sequence", "seq", unknown.Seq)
				} else {
					util.Logger.Warn("escape dispatch failed", "error", err)
				}
				// a failed dispatch must never leave the terminal stuck
				// mid-sequence
				emu.parser.Reset()
			}
		case eventIncomplete:
			util.Logger.Trace("incomplete escape sequence dropped", "seq", ev.seq)
		}
	}
}

// handleChar processes one character outside a sequence.
func (emu *Emulator) handleChar(ch rune) {
	switch ch {
	case '\x00', '\x05', '\x0E', '\x0F':
		// NUL, ENQ, SO, SI: charset shifts are handled upstream
	case ST:
		// a bare string terminator with nothing to terminate
	case '\x0D':
		hdl_c0_cr(emu)
	case '\x0A', '\x0B', '\x0C':
		hdl_c0_lf(emu)
	case '\x07':
		hdl_c0_bel(emu)
	case '\x08':
		hdl_c0_bs(emu)
	case '\x09':
		hdl_c0_ht(emu)
	default:
		if ch < 0x20 || ch == 0x7F || (0x80 <= ch && ch <= 0x9F) {
			util.Logger.Trace("unsupported control character", "ch", int(ch))
			return
		}
		emu.printGrapheme([]rune{ch})
	}
}

// printGrapheme places one grapheme at the caret, deciding wrap first.
func (emu *Emulator) printGrapheme(chs []rune) {
	if emu.charObserver != nil {
		for _, r := range chs {
			emu.charObserver(r)
		}
	}
	emu.lastWasCR = false

	width := emu.doc.TerminalWidth()
	chWidth := runesWidth(chs)

	if chWidth == 0 {
		// zero-width mark: joins the previous cell
		emu.manip.AppendToPrevious(chs...)
		return
	}

	if emu.autoWrapMode && emu.lastCol {
		emu.wrapLine()
	} else if emu.autoWrapMode && chWidth == 2 &&
		emu.manip.CaretColumn() == width-1 {
		// no room for a 2-cell char at the edge: wrap early
		emu.wrapLine()
	} else if !emu.autoWrapMode &&
		emu.manip.CaretColumn()+chWidth > width {
		// wrap disabled: overprint the last columns
		emu.manip.SetCaretColumn(width - chWidth)
	}

	emu.manip.PutChar(chs, chWidth, emu.attrs, emu.insertMode)

	if emu.manip.CaretColumn() >= width {
		emu.manip.SetCaretColumn(width - 1)
		emu.lastCol = true
	} else {
		emu.lastCol = false
	}
	emu.doc.invalidateRows(emu.doc.CursorRow(), emu.doc.CursorRow())
}

// wrapLine closes the current row as a continuation and opens the next.
func (emu *Emulator) wrapLine() {
	emu.manip.SetEOLType(EOLContinue)
	emu.lineFeed()
	emu.manip.CarriageReturn()
}

// lineFeed flushes the current row and advances through the scrolling
// region. The EOL tag records how the row ended.
func (emu *Emulator) lineFeed() {
	if emu.manip.EOLType() != EOLContinue {
		switch {
		case emu.lastWasCR && emu.settings.LineFeedRule == LineFeedRuleCROnly:
			emu.manip.SetEOLType(EOLCR)
		case emu.lastWasCR:
			emu.manip.SetEOLType(EOLCRLF)
		default:
			emu.manip.SetEOLType(EOLLF)
		}
	}
	emu.flushLine()
	emu.doc.LineFeed(emu.attrs)
	emu.loadLine()
	emu.lastCol = false
	emu.lastWasCR = false
}

// reverseLineFeed moves up one row, scrolling the region down at its top.
func (emu *Emulator) reverseLineFeed() {
	emu.flushLine()
	row := emu.doc.CursorRow()
	top := emu.doc.ScrollingTop()
	if row == top {
		emu.doc.ScrollDown(top, emu.doc.ScrollingBottom(), 1, emu.attrs)
	} else {
		emu.doc.SetCursorRow(row - 1)
	}
	emu.loadLine()
	emu.lastCol = false
}

// cursorVertical moves the cursor up or down, clamped to the window,
// keeping the caret column.
func (emu *Emulator) cursorVertical(delta int) {
	emu.flushLine()
	emu.doc.SetCursorRow(emu.doc.CursorRow() + delta)
	emu.loadLine()
	emu.lastCol = false
}

// setCursorRow moves to an absolute window row, keeping the column.
func (emu *Emulator) setCursorRow(row int) {
	emu.flushLine()
	emu.doc.SetCursorRow(row)
	emu.loadLine()
	emu.lastCol = false
}

// moveCursorTo places the cursor at window-relative (row, col), clamped.
func (emu *Emulator) moveCursorTo(row, col int) {
	emu.flushLine()
	emu.doc.SetCursorRow(row)
	emu.loadLine()
	emu.manip.SetCaretColumn(col)
	emu.lastCol = false
}

// loadLine (re)loads the cursor row into the manipulator, keeping the
// caret column.
func (emu *Emulator) loadLine() {
	col := emu.manip.CaretColumn()
	emu.manip.Load(emu.doc.CurrentLine(), emu.doc.TerminalWidth())
	emu.manip.SetCaretColumn(col)
}

// flushLine writes the manipulator buffer back to its row. The row is
// found by id so a scrolled grid still lands the edit on the right line.
func (emu *Emulator) flushLine() {
	if !emu.manip.IsLoaded() {
		return
	}
	cells, eol := emu.manip.Export()
	target := emu.doc.FindLineOrEdge(emu.manip.LineID())
	if target.id == emu.doc.CurrentLineNumber() {
		emu.doc.UpdateCurrentLine(cells, eol)
		return
	}
	n := copy(target.cells, cells)
	for ; n < len(target.cells); n++ {
		target.cells[n].Reset(Renditions{})
	}
	target.eol = eol
}

// Resize changes the terminal geometry, preserving content and clamping
// the cursor back into the window.
func (emu *Emulator) Resize(nCols, nRows int) {
	if nCols == emu.doc.TerminalWidth() && nRows == emu.doc.TerminalHeight() {
		return
	}
	emu.flushLine()
	col := emu.manip.CaretColumn()
	emu.doc.Resize(nCols, nRows, Renditions{})
	emu.tabStops.Reset(nCols)
	emu.manip.Reset(nCols, Renditions{})
	emu.loadLine()
	emu.manip.SetCaretColumn(min(col, nCols-1))
	emu.lastCol = false
}
