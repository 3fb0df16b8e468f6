// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// Manipulator is a scratch view over a single row: it loads the cursor
// row, applies cursor-local edits, and is flushed back into the document
// before the cursor leaves the row. Only one row is loaded at a time.
type Manipulator struct {
	cells  []Cell
	caret  int
	eol    EOLKind
	lineID int64
	loaded bool
}

func NewManipulator() *Manipulator {
	return new(Manipulator)
}

// Load copies a row into the scratch buffer, expanded to width columns.
// The caret is preserved across loads; callers reposition it explicitly.
func (m *Manipulator) Load(row *Row, width int) {
	m.cells = m.cells[:0]
	m.cells = append(m.cells, row.cells...)
	m.ExpandBuffer(width)
	m.eol = row.eol
	m.lineID = row.id
	m.loaded = true
}

// Export returns the edited cells and EOL tag for flushing.
func (m *Manipulator) Export() ([]Cell, EOLKind) {
	return m.cells, m.eol
}

func (m *Manipulator) LineID() int64 { return m.lineID }
func (m *Manipulator) IsLoaded() bool { return m.loaded }

func (m *Manipulator) CaretColumn() int { return m.caret }

// SetCaretColumn moves the caret, clamped to the buffer.
func (m *Manipulator) SetCaretColumn(col int) {
	m.caret = max(0, min(col, len(m.cells)-1))
}

func (m *Manipulator) BufferSize() int { return len(m.cells) }

func (m *Manipulator) EOLType() EOLKind     { return m.eol }
func (m *Manipulator) SetEOLType(k EOLKind) { m.eol = k }

// Reset drops the content and rebuilds a blank buffer of width columns.
func (m *Manipulator) Reset(width int, rend Renditions) {
	m.cells = m.cells[:0]
	m.ExpandBuffer(width)
	for i := range m.cells {
		m.cells[i].Reset(rend)
	}
	m.caret = 0
	m.eol = EOLHard
	m.loaded = false
}

// ExpandBuffer grows the buffer to at least size blank columns.
func (m *Manipulator) ExpandBuffer(size int) {
	for len(m.cells) < size {
		var c Cell
		c.Reset(Renditions{})
		m.cells = append(m.cells, c)
	}
}

// PutChar writes a grapheme at the caret and advances it by the grapheme
// width. In insert mode the tail of the row shifts right first. Halves of
// overwritten wide pairs are blanked so no orphan half survives.
func (m *Manipulator) PutChar(chs []rune, width int, rend Renditions, insert bool) {
	if insert {
		for i := 0; i < width; i++ {
			m.insertBlank(m.caret, rend)
		}
	}

	m.clearWideAt(m.caret, rend)
	cell := &m.cells[m.caret]
	cell.Reset(rend)
	for _, r := range chs {
		cell.Append(r)
	}
	cell.SetWide(width == 2)

	if width == 2 && m.caret+1 < len(m.cells) {
		m.clearWideAt(m.caret+1, rend)
		m.cells[m.caret+1].Reset(rend)
	}

	m.caret = min(m.caret+width, len(m.cells))
}

// AppendToPrevious attaches a zero-width mark to the cell before the caret.
func (m *Manipulator) AppendToPrevious(chs ...rune) {
	if m.caret == 0 {
		return
	}
	cell := &m.cells[m.caret-1]
	for _, r := range chs {
		cell.Append(r)
	}
}

// clearWideAt blanks the partner cell when col holds half of a wide pair.
func (m *Manipulator) clearWideAt(col int, rend Renditions) {
	if col < len(m.cells) && m.cells[col].IsWide() && col+1 < len(m.cells) {
		m.cells[col+1].Reset(rend)
	}
	if col > 0 && m.cells[col-1].IsWide() {
		m.cells[col-1].Reset(rend)
	}
}

// BackCaret steps the caret one column left, stopping at column 0.
func (m *Manipulator) BackCaret() {
	if m.caret > 0 {
		m.caret--
	}
}

func (m *Manipulator) CarriageReturn() {
	m.caret = 0
}

// InsertBlanks shifts the cells at and right of the caret by count,
// dropping overflow past the row end. The caret does not move.
func (m *Manipulator) InsertBlanks(count int, rend Renditions) {
	for i := 0; i < count; i++ {
		m.insertBlank(m.caret, rend)
	}
}

func (m *Manipulator) insertBlank(col int, rend Renditions) {
	if col >= len(m.cells) {
		return
	}
	copy(m.cells[col+1:], m.cells[col:])
	m.cells[col].Reset(rend)
}

// DeleteChars removes count cells at the caret, shifting the remainder of
// the row left and blanking the vacated tail.
func (m *Manipulator) DeleteChars(count int, rend Renditions) {
	count = min(count, len(m.cells)-m.caret)
	if count <= 0 {
		return
	}
	copy(m.cells[m.caret:], m.cells[m.caret+count:])
	for i := len(m.cells) - count; i < len(m.cells); i++ {
		m.cells[i].Reset(rend)
	}
}

// FillSpace writes blank cells with the given decoration over
// [from, to), clamped into the buffer. The caret does not move.
func (m *Manipulator) FillSpace(from, to int, rend Renditions) {
	from = max(0, from)
	to = min(to, len(m.cells))
	for col := from; col < to; col++ {
		m.clearWideAt(col, rend)
		m.cells[col].Reset(rend)
		m.cells[col].Append(' ')
	}
}
