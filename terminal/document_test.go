// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "testing"

func docRowText(doc *Document, row int) string {
	return doc.Line(row).String()
}

func fillRow(doc *Document, row int, text string) {
	r := doc.Line(row)
	for i, ch := range text {
		cell := r.At(i)
		cell.Reset(Renditions{})
		cell.Append(ch)
	}
}

func TestDocumentLineFeedScrollback(t *testing.T) {
	doc := NewDocument(10, 3, 50)
	fillRow(doc, 0, "first")
	doc.SetCursorRow(2)

	doc.LineFeed(Renditions{})

	if doc.HistoryRows() != 1 {
		t.Errorf("expect one scrollback row, got %d", doc.HistoryRows())
	}
	if doc.CursorRow() != 2 {
		t.Errorf("expect the cursor pinned to the bottom, got %d", doc.CursorRow())
	}
	// "first" moved above the window
	if got := docRowText(doc, 0); got == "first" {
		t.Error("expect the top row advanced past the old content")
	}
}

func TestDocumentHistoryLimit(t *testing.T) {
	doc := NewDocument(10, 2, 3)
	doc.SetCursorRow(1)
	for i := 0; i < 10; i++ {
		doc.LineFeed(Renditions{})
	}

	if got := doc.HistoryRows(); got != 3 {
		t.Errorf("expect history capped at 3, got %d", got)
	}
}

func TestDocumentMonotonicLineIDs(t *testing.T) {
	doc := NewDocument(10, 3, 50)
	first := doc.TopLineNumber()
	doc.SetCursorRow(2)
	doc.LineFeed(Renditions{})
	doc.LineFeed(Renditions{})

	if got := doc.TopLineNumber(); got != first+2 {
		t.Errorf("expect the top id advanced by 2, got %d (from %d)", got, first)
	}
	if doc.CurrentLineNumber() <= first {
		t.Error("expect the current id beyond the initial top")
	}
}

func TestDocumentFindLineOrEdge(t *testing.T) {
	doc := NewDocument(10, 3, 1)
	doc.SetCursorRow(2)
	for i := 0; i < 5; i++ {
		doc.LineFeed(Renditions{})
	}

	// ids below the retained range clamp to the oldest row
	oldest := doc.lines[0]
	if got := doc.FindLineOrEdge(-100); got != oldest {
		t.Error("expect the oldest retained row for an ancient id")
	}
	last := doc.lines[len(doc.lines)-1]
	if got := doc.FindLineOrEdge(1 << 40); got != last {
		t.Error("expect the newest row for a future id")
	}
	if got := doc.FindLineOrEdge(doc.CurrentLineNumber()); got != doc.CurrentLine() {
		t.Error("expect an exact hit for the current id")
	}
}

func TestDocumentEnsureLine(t *testing.T) {
	doc := NewDocument(10, 3, 50)
	want := doc.CurrentLineNumber() + 4
	r := doc.EnsureLine(want, Renditions{})

	if r.ID() != want {
		t.Errorf("expect row id %d, got %d", want, r.ID())
	}
}

func TestDocumentScrollRegionBounds(t *testing.T) {
	doc := NewDocument(10, 6, 0)

	doc.SetScrollingRegion(4, 1) // inverted: swapped
	if doc.ScrollingTop() != 1 || doc.ScrollingBottom() != 4 {
		t.Errorf("expect [1,4], got [%d,%d]", doc.ScrollingTop(), doc.ScrollingBottom())
	}

	doc.SetScrollingRegion(-5, 99) // clamped to the full window: unset
	if doc.HasScrollingRegion() {
		t.Error("expect a full-window region to clear the setting")
	}
}

func TestDocumentRemoveAfter(t *testing.T) {
	doc := NewDocument(10, 3, 10)
	doc.SetCursorRow(2)
	for i := 0; i < 4; i++ {
		doc.LineFeed(Renditions{})
	}
	keep := doc.TopLineNumber()
	doc.RemoveAfter(keep)

	if got := doc.lines[len(doc.lines)-1].id; got < keep {
		t.Errorf("expect re-padded rows after %d, got last id %d", keep, got)
	}
	if doc.CursorRow() < 0 || doc.CursorRow() >= doc.TerminalHeight() {
		t.Errorf("expect the cursor clamped into the window, got %d", doc.CursorRow())
	}
}

func TestDocumentInvalidation(t *testing.T) {
	doc := NewDocument(10, 5, 0)

	if _, ok := doc.InvalidatedRegion(); ok {
		t.Error("expect no pending invalidation on a fresh document")
	}

	doc.ClearRange(1, 2, Renditions{})
	rect, ok := doc.InvalidatedRegion()
	if !ok || rect.Top != 1 || rect.Bottom != 2 {
		t.Errorf("expect rows [1,2] dirty, got %+v ok=%t", rect, ok)
	}

	// the region accumulates and drains
	doc.ClearRange(0, 0, Renditions{})
	doc.ClearRange(4, 4, Renditions{})
	rect, _ = doc.InvalidatedRegion()
	if rect.Top != 0 || rect.Bottom != 4 {
		t.Errorf("expect the union [0,4], got %+v", rect)
	}
	if _, ok := doc.InvalidatedRegion(); ok {
		t.Error("expect the region drained")
	}

	doc.InvalidateAll()
	rect, _ = doc.InvalidatedRegion()
	if !rect.All {
		t.Error("expect the all flag")
	}
}

func TestDocumentResizeNarrowAndWiden(t *testing.T) {
	doc := NewDocument(10, 3, 10)
	fillRow(doc, 0, "0123456789")

	doc.Resize(5, 3, Renditions{})
	if got := docRowText(doc, 0); got != "01234" {
		t.Errorf("expect truncation to the new width, got %q", got)
	}

	doc.Resize(12, 3, Renditions{})
	if got := docRowText(doc, 0); got != "01234" {
		t.Errorf("expect content preserved on widening, got %q", got)
	}
	if got := doc.Line(0).Width(); got != 12 {
		t.Errorf("expect 12 columns, got %d", got)
	}
}
