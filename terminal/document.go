// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// InvalidRect is the row span a renderer must repaint, window-relative.
type InvalidRect struct {
	Top    int
	Bottom int
	All    bool
}

// Document is the grid: an ordered list of rows of which the last
// terminalHeight form the visible window, plus the scrolling region and
// invalidation bookkeeping. Rows before the window top are scrollback;
// scrollback growth is suppressed while application (alternate buffer)
// mode is active.
type Document struct {
	lines []*Row
	top   int // index of the window's first row in lines
	cur   int // index of the cursor row, top <= cur < top+height

	width  int
	height int

	// scrolling region, window-relative inclusive offsets; -1 when unset
	regionTop    int
	regionBottom int

	nextID     int64
	maxHistory int

	appMode      bool
	appBackColor Color

	inv       InvalidRect
	invSet    bool
	bellCount int
}

func NewDocument(width, height, maxHistory int) *Document {
	doc := &Document{
		width:        width,
		height:       height,
		maxHistory:   maxHistory,
		regionTop:    -1,
		regionBottom: -1,
	}
	for i := 0; i < height; i++ {
		doc.lines = append(doc.lines, doc.newLine(Renditions{}))
	}
	return doc
}

func (doc *Document) newLine(rend Renditions) *Row {
	r := newRow(doc.nextID, doc.width, rend)
	doc.nextID++
	return r
}

func (doc *Document) TerminalWidth() int  { return doc.width }
func (doc *Document) TerminalHeight() int { return doc.height }

// ScrollingTop returns the top row offset of the scrolling region, 0 when
// no region is set.
func (doc *Document) ScrollingTop() int {
	if doc.regionTop < 0 {
		return 0
	}
	return doc.regionTop
}

// ScrollingBottom returns the bottom row offset of the region, inclusive;
// height-1 when no region is set.
func (doc *Document) ScrollingBottom() int {
	if doc.regionBottom < 0 {
		return doc.height - 1
	}
	return doc.regionBottom
}

// SetScrollingRegion installs a region from window-relative inclusive
// offsets, swapping an inverted pair and clamping into the window.
func (doc *Document) SetScrollingRegion(top, bottom int) {
	if top > bottom {
		top, bottom = bottom, top
	}
	doc.regionTop = max(0, top)
	doc.regionBottom = min(doc.height-1, bottom)
	if doc.regionTop == 0 && doc.regionBottom == doc.height-1 {
		doc.ClearScrollingRegion()
	}
}

func (doc *Document) ClearScrollingRegion() {
	doc.regionTop = -1
	doc.regionBottom = -1
}

func (doc *Document) HasScrollingRegion() bool {
	return doc.regionTop >= 0
}

func (doc *Document) TopLineNumber() int64     { return doc.lines[doc.top].id }
func (doc *Document) CurrentLineNumber() int64 { return doc.lines[doc.cur].id }

// CursorRow returns the cursor row offset within the window.
func (doc *Document) CursorRow() int { return doc.cur - doc.top }

// SetCursorRow moves the cursor to a window-relative row, clamped.
func (doc *Document) SetCursorRow(row int) {
	row = max(0, min(row, doc.height-1))
	doc.cur = doc.top + row
}

func (doc *Document) CurrentLine() *Row { return doc.lines[doc.cur] }

// Line returns the window-relative row, clamped into the window.
func (doc *Document) Line(row int) *Row {
	row = max(0, min(row, doc.height-1))
	return doc.lines[doc.top+row]
}

// FindLineOrEdge returns the row with the given id, or the closest
// retained row when the id has scrolled away or does not exist yet.
func (doc *Document) FindLineOrEdge(id int64) *Row {
	first := doc.lines[0].id
	last := doc.lines[len(doc.lines)-1].id
	id = max(first, min(id, last))
	return doc.lines[id-first]
}

// EnsureLine appends blank rows until a row with the given id exists, then
// returns it. The window advances as rows are added.
func (doc *Document) EnsureLine(id int64, rend Renditions) *Row {
	for doc.lines[len(doc.lines)-1].id < id {
		doc.appendLine(rend)
	}
	doc.cur = max(doc.cur, doc.top)
	return doc.FindLineOrEdge(id)
}

// appendLine adds a blank row after the last one and advances the window.
func (doc *Document) appendLine(rend Renditions) {
	doc.lines = append(doc.lines, doc.newLine(rend))
	doc.top++
	doc.trimHistory()
}

// LineFeed advances the cursor one row. At the bottom of the scrolling
// region the region content scrolls up instead; at the bottom of an
// unregioned window a fresh row enters from below, pushing the top row
// into scrollback (suppressed in application mode).
func (doc *Document) LineFeed(rend Renditions) {
	row := doc.CursorRow()
	bottom := doc.ScrollingBottom()

	switch {
	case row < bottom:
		doc.cur++
	case doc.HasScrollingRegion() || doc.appMode:
		doc.ScrollUp(doc.ScrollingTop(), bottom, 1, rend)
	default:
		doc.appendLine(rend)
		doc.cur++
		doc.InvalidateAll()
	}
}

// ScrollUp moves the rows of [top,bottom] up by count, blanking the
// vacated bottom rows. Content moves; row ids stay in place.
func (doc *Document) ScrollUp(top, bottom, count int, rend Renditions) {
	count = min(count, bottom-top+1)
	if count <= 0 {
		return
	}
	for r := top; r <= bottom-count; r++ {
		doc.copyRowContent(r, r+count)
	}
	for r := bottom - count + 1; r <= bottom; r++ {
		doc.Line(r).Reset(rend)
	}
	doc.invalidateRows(top, bottom)
}

// ScrollDown moves the rows of [top,bottom] down by count, blanking the
// vacated top rows.
func (doc *Document) ScrollDown(top, bottom, count int, rend Renditions) {
	count = min(count, bottom-top+1)
	if count <= 0 {
		return
	}
	for r := bottom; r >= top+count; r-- {
		doc.copyRowContent(r, r-count)
	}
	for r := top; r < top+count; r++ {
		doc.Line(r).Reset(rend)
	}
	doc.invalidateRows(top, bottom)
}

// copyRowContent copies cells and EOL tag between window rows, keeping the
// destination row id.
func (doc *Document) copyRowContent(dst, src int) {
	d := doc.Line(dst)
	s := doc.Line(src)
	copy(d.cells, s.cells)
	d.eol = s.eol
}

// ClearRange blanks the window rows [startRow, endRow] inclusive.
func (doc *Document) ClearRange(startRow, endRow int, rend Renditions) {
	for r := startRow; r <= endRow; r++ {
		doc.Line(r).Reset(rend)
	}
	doc.invalidateRows(startRow, endRow)
}

// Replace swaps in new content for a window row, keeping its id.
func (doc *Document) Replace(row int, src *Row) {
	dst := doc.Line(row)
	dst.cells = dst.cells[:0]
	dst.cells = append(dst.cells, src.cells...)
	dst.eol = src.eol
	dst.Resize(doc.width, Renditions{})
	doc.invalidateRows(row, row)
}

// AddLine appends a blank row below the window and returns it.
func (doc *Document) AddLine(rend Renditions) *Row {
	doc.appendLine(rend)
	return doc.lines[len(doc.lines)-1]
}

// RemoveAfter drops every row with id greater than the given one, then
// re-pads the window to full height. Used to trim tail-empty lines when
// leaving application mode.
func (doc *Document) RemoveAfter(id int64) {
	first := doc.lines[0].id
	keep := int(id - first + 1)
	if keep < 1 {
		keep = 1
	}
	if keep >= len(doc.lines) {
		return
	}
	doc.lines = doc.lines[:keep]
	doc.top = max(0, len(doc.lines)-doc.height)
	for len(doc.lines)-doc.top < doc.height {
		doc.lines = append(doc.lines, doc.newLine(Renditions{}))
	}
	doc.cur = min(doc.cur, len(doc.lines)-1)
	doc.cur = max(doc.cur, doc.top)
	doc.InvalidateAll()
}

// UpdateCurrentLine writes edited cells and EOL tag back to the cursor row.
func (doc *Document) UpdateCurrentLine(cells []Cell, eol EOLKind) {
	r := doc.lines[doc.cur]
	n := copy(r.cells, cells)
	for ; n < len(r.cells); n++ {
		r.cells[n].Reset(Renditions{})
	}
	r.eol = eol
	doc.invalidateRows(doc.CursorRow(), doc.CursorRow())
}

func (doc *Document) trimHistory() {
	limit := doc.maxHistory
	if doc.appMode {
		limit = 0
	}
	excess := doc.top - limit
	if excess <= 0 {
		return
	}
	doc.lines = doc.lines[excess:]
	doc.top -= excess
	doc.cur -= excess
}

// HistoryRows returns the number of scrollback rows above the window.
func (doc *Document) HistoryRows() int { return doc.top }

func (doc *Document) SetApplicationMode(on bool) { doc.appMode = on }
func (doc *Document) IsApplicationMode() bool    { return doc.appMode }

func (doc *Document) ApplicationModeBackColor() Color { return doc.appBackColor }
func (doc *Document) SetApplicationModeBackColor(c Color) {
	doc.appBackColor = c
}

// Resize changes the window geometry, preserving content where possible.
func (doc *Document) Resize(width, height int, rend Renditions) {
	if width == doc.width && height == doc.height {
		return
	}

	doc.width = width
	for _, r := range doc.lines {
		r.Resize(width, rend)
	}

	if height < doc.height {
		// fold surplus rows into scrollback, keeping the cursor visible
		doc.top += doc.height - height
		doc.cur = max(doc.cur, doc.top)
	} else {
		// reclaim scrollback first, then pad with blank rows
		doc.top -= min(height-doc.height, doc.top)
		for len(doc.lines)-doc.top < height {
			doc.lines = append(doc.lines, doc.newLine(rend))
		}
	}
	doc.height = height

	doc.ClearScrollingRegion()
	doc.trimHistory()
	doc.InvalidateAll()
}

// RingBell increments the bell indicator.
func (doc *Document) RingBell() { doc.bellCount++ }

// BellCount returns and clears the pending bell count.
func (doc *Document) BellCount() (count int) {
	count = doc.bellCount
	doc.bellCount = 0
	return count
}

func (doc *Document) invalidateRows(top, bottom int) {
	if doc.invSet {
		doc.inv.Top = min(doc.inv.Top, top)
		doc.inv.Bottom = max(doc.inv.Bottom, bottom)
		return
	}
	doc.inv = InvalidRect{Top: top, Bottom: bottom}
	doc.invSet = true
}

// InvalidateAll marks the whole window dirty.
func (doc *Document) InvalidateAll() {
	doc.inv = InvalidRect{Top: 0, Bottom: doc.height - 1, All: true}
	doc.invSet = true
}

// InvalidatedRegion returns and clears the pending repaint span.
func (doc *Document) InvalidatedRegion() (rect InvalidRect, ok bool) {
	rect, ok = doc.inv, doc.invSet
	doc.inv = InvalidRect{}
	doc.invSet = false
	return rect, ok
}
