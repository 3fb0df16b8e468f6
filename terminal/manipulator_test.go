// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "testing"

func manipText(m *Manipulator) string {
	cells, _ := m.Export()
	out := ""
	for i := range cells {
		out += cells[i].display()
	}
	for len(out) > 0 && out[len(out)-1] == ' ' {
		out = out[:len(out)-1]
	}
	return out
}

func loadText(m *Manipulator, text string, width int) {
	r := newRow(0, width, Renditions{})
	for i, ch := range text {
		r.At(i).Append(ch)
	}
	m.Load(r, width)
	m.SetCaretColumn(0)
}

func TestManipulatorPutChar(t *testing.T) {
	m := NewManipulator()
	m.Reset(10, Renditions{})

	for _, r := range "abc" {
		m.PutChar([]rune{r}, 1, Renditions{}, false)
	}
	if got := manipText(m); got != "abc" {
		t.Errorf("expect %q, got %q", "abc", got)
	}
	if m.CaretColumn() != 3 {
		t.Errorf("expect caret 3, got %d", m.CaretColumn())
	}
}

func TestManipulatorInsertShiftsTail(t *testing.T) {
	m := NewManipulator()
	loadText(m, "abcdef", 6)
	m.SetCaretColumn(2)
	m.PutChar([]rune{'X'}, 1, Renditions{}, true)

	if got := manipText(m); got != "abXcde" {
		t.Errorf("expect %q, got %q", "abXcde", got)
	}
}

func TestManipulatorDeleteChars(t *testing.T) {
	m := NewManipulator()
	loadText(m, "abcdef", 6)
	m.SetCaretColumn(1)
	m.DeleteChars(2, Renditions{})

	if got := manipText(m); got != "adef" {
		t.Errorf("expect %q, got %q", "adef", got)
	}
}

func TestManipulatorFillSpace(t *testing.T) {
	m := NewManipulator()
	loadText(m, "abcdef", 6)
	m.FillSpace(1, 4, Renditions{})

	if got := manipText(m); got != "a   ef" {
		t.Errorf("expect %q, got %q", "a   ef", got)
	}
}

func TestManipulatorWideOverwrite(t *testing.T) {
	m := NewManipulator()
	m.Reset(10, Renditions{})
	m.PutChar([]rune{'中'}, 2, Renditions{}, false)

	if m.CaretColumn() != 2 {
		t.Errorf("expect caret 2 after a wide char, got %d", m.CaretColumn())
	}

	// overwriting the lead cell blanks the orphan half
	m.SetCaretColumn(0)
	m.PutChar([]rune{'x'}, 1, Renditions{}, false)
	cells, _ := m.Export()
	if cells[0].String() != "x" {
		t.Errorf("expect x at 0, got %q", cells[0].String())
	}
	if cells[1].String() != "" {
		t.Errorf("expect the trailing half blanked, got %q", cells[1].String())
	}
}

func TestManipulatorExpandBuffer(t *testing.T) {
	m := NewManipulator()
	m.Reset(4, Renditions{})
	m.ExpandBuffer(8)

	if got := m.BufferSize(); got != 8 {
		t.Errorf("expect 8 columns, got %d", got)
	}
}

func TestManipulatorBackCaretFloor(t *testing.T) {
	m := NewManipulator()
	m.Reset(4, Renditions{})
	m.BackCaret()

	if m.CaretColumn() != 0 {
		t.Errorf("expect the caret floored at 0, got %d", m.CaretColumn())
	}
}
