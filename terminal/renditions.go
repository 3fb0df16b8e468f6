// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// Renditions is the decoration applied to printed cells: foreground and
// background color plus the character attributes. It is comparable; the
// zero value is the terminal default.
type Renditions struct {
	fgColor Color
	bgColor Color

	bold      bool
	underline bool
	blink     bool
	inverse   bool
	invisible bool
}

// SetForegroundColor sets an indexed foreground color, index 0..255.
func (rend *Renditions) SetForegroundColor(index int) {
	rend.fgColor = PaletteColor(index)
}

// SetBackgroundColor sets an indexed background color, index 0..255.
func (rend *Renditions) SetBackgroundColor(index int) {
	rend.bgColor = PaletteColor(index)
}

// SetFgColor sets a direct 24-bit foreground color.
func (rend *Renditions) SetFgColor(r, g, b int) {
	rend.fgColor = NewRGBColor(int32(r), int32(g), int32(b))
}

// SetBgColor sets a direct 24-bit background color.
func (rend *Renditions) SetBgColor(r, g, b int) {
	rend.bgColor = NewRGBColor(int32(r), int32(g), int32(b))
}

func (rend Renditions) GetFgColor() Color { return rend.fgColor }
func (rend Renditions) GetBgColor() Color { return rend.bgColor }

func (rend *Renditions) ClearAttributes() {
	rend.bold = false
	rend.underline = false
	rend.blink = false
	rend.inverse = false
	rend.invisible = false
}

// buildRendition applies one single-valued SGR attribute parameter and
// reports whether it was recognized. The multi-parameter color forms
// (38/48) are threaded through the state machine in hdl_csi_sgr.
func (rend *Renditions) buildRendition(attribute int) (processed bool) {
	processed = true
	switch attribute {
	case 0, 22:
		// 22 resets the full decoration here, matching the historic
		// behavior of the upstream terminal rather than ECMA-48.
		rend.ClearAttributes()
		rend.fgColor = ColorDefault
		rend.bgColor = ColorDefault
	case 1:
		rend.bold = true
	case 4:
		rend.underline = true
	case 5, 6:
		rend.blink = true
	case 7:
		rend.inverse = true
	case 8:
		rend.invisible = true

	case 24:
		rend.underline = false
	case 25:
		rend.blink = false
	case 27:
		rend.inverse = false
	case 28:
		rend.invisible = false

	case 30, 31, 32, 33, 34, 35, 36, 37:
		rend.SetForegroundColor(attribute - 30)
	case 39:
		rend.fgColor = ColorDefault
	case 40, 41, 42, 43, 44, 45, 46, 47:
		rend.SetBackgroundColor(attribute - 40)
	case 49:
		rend.bgColor = ColorDefault

	case 90, 91, 92, 93, 94, 95, 96, 97:
		rend.SetForegroundColor(attribute - 90 + 8)
	case 100, 101, 102, 103, 104, 105, 106, 107:
		rend.SetBackgroundColor(attribute - 100 + 8)
	default:
		processed = false
	}
	return processed
}
