// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Cell is one column of screen content: a grapheme (base scalar plus any
// combining marks) and its decoration. A wide character occupies two
// columns; the lead cell carries the contents and the wide flag, the
// trailing cell stays empty.
type Cell struct {
	contents   string
	renditions Renditions
	wide       bool
}

func (c *Cell) Append(r rune) {
	var b strings.Builder
	b.WriteString(c.contents)
	b.WriteRune(r)
	c.contents = b.String()
}

func (c Cell) String() string { return c.contents }

func (c *Cell) SetRenditions(rend Renditions) { c.renditions = rend }
func (c Cell) GetRenditions() Renditions      { return c.renditions }

func (c *Cell) SetWide(wide bool) { c.wide = wide }
func (c Cell) IsWide() bool       { return c.wide }

// Reset blanks the cell, keeping the given decoration for erased regions.
func (c *Cell) Reset(rend Renditions) {
	c.contents = ""
	c.wide = false
	c.renditions = rend
}

// IsBlank reports an empty or space-only cell with no inverse video.
func (c *Cell) IsBlank() bool {
	return (c.contents == "" || c.contents == " ") && !c.renditions.inverse
}

// display returns the cell contents, substituting a space for empty cells.
func (c *Cell) display() string {
	if c.contents == "" {
		return " "
	}
	return c.contents
}

// runesWidth returns the column width of a grapheme. The quick path covers
// ISO 8859-1; everything else goes through go-runewidth with east-asian
// width enabled.
func runesWidth(runes []rune) (width int) {
	if len(runes) == 1 && runes[0] <= 0x00ff {
		return 1
	}

	cond := runewidth.NewCondition()
	cond.StrictEmojiNeutral = false
	cond.EastAsianWidth = true

	width = 0
	for i := 0; i < len(runes); i++ {
		width += cond.RuneWidth(runes[i])
	}
	return width
}
