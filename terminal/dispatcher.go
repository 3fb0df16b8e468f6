// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import (
	"strconv"
	"strings"
)

// PARAM_MAX caps one numeric parameter.
const PARAM_MAX = 65535

// csiParams holds the parsed numeric parameters of a CSI sequence.
// Missing and empty parameters are recorded so defaults apply per-slot.
type csiParams struct {
	values  []int
	present []bool
}

// parseCSIParams splits body on ';' and parses each slot. A slot that
// fails to parse poisons the whole sequence.
func parseCSIParams(body string) (p csiParams, err error) {
	if body == "" {
		return p, nil
	}
	for _, slot := range strings.Split(body, ";") {
		if slot == "" {
			p.values = append(p.values, 0)
			p.present = append(p.present, false)
			continue
		}
		v, convErr := strconv.Atoi(slot)
		if convErr == nil && v < 0 {
			convErr = strconv.ErrSyntax
		}
		if convErr != nil {
			return p, convErr
		}
		if v > PARAM_MAX {
			v = PARAM_MAX
		}
		p.values = append(p.values, v)
		p.present = append(p.present, true)
	}
	return p, nil
}

// item returns parameter n; a missing slot or a value below 1 yields the
// default.
func (p csiParams) item(n, defaultVal int) int {
	ret := defaultVal
	if n < len(p.values) {
		ret = p.values[n]
	}
	if ret < 1 {
		ret = defaultVal
	}
	return ret
}

// itemOrZero returns parameter n with 0 for a missing slot, for selectors
// where 0 is meaningful (ED, EL, TBC).
func (p csiParams) itemOrZero(n int) int {
	if n < len(p.values) {
		return p.values[n]
	}
	return 0
}

func (p csiParams) count() int { return len(p.values) }

// dispatchSequence interprets one terminated accumulator. The leading
// character selects the family; the ESC that introduced it is not part of
// the accumulator.
func dispatchSequence(emu *Emulator, seq string) error {
	if seq == "" {
		return unknownSeq(seq)
	}

	switch seq[0] {
	case '[':
		return dispatchCSI(emu, seq)
	case ']':
		return dispatchOSC(emu, seq)
	case 'P':
		// DCS: terminated upstream; the device string itself is not
		// interpreted
		return nil
	case ' ':
		return dispatchEscSpace(emu, seq)
	case '#':
		return dispatchEscHash(emu, seq)
	case '@':
		// ISO 2022 coding-system announcements, accepted
		return nil
	}

	if len(seq) > 1 {
		return unknownSeq(seq)
	}

	switch seq[0] {
	case '=':
		emu.terminalMode = TerminalModeApplication
	case '>':
		emu.terminalMode = TerminalModeNormal
	case 'E':
		hdl_esc_nel(emu)
	case 'D':
		hdl_esc_ind(emu)
	case 'M':
		hdl_esc_ri(emu)
	case '7':
		hdl_esc_decsc(emu)
	case '8':
		hdl_esc_decrc(emu)
	case 'c':
		hdl_esc_ris(emu)
	case 'H':
		hdl_esc_hts(emu)
	case 'F':
		// parameterless form: cursor home
		emu.moveCursorTo(0, 0)
	default:
		return unknownSeq(seq)
	}
	return nil
}

// dispatchEscSpace accepts ESC SP F/G/L, the 7/8-bit control
// announcements. Always supported, nothing to change.
func dispatchEscSpace(emu *Emulator, seq string) error {
	if len(seq) == 2 {
		switch seq[1] {
		case 'F', 'G', 'L':
			return nil
		}
	}
	return unsupportedSeq(seq)
}

func dispatchEscHash(emu *Emulator, seq string) error {
	if seq == "#8" {
		hdl_esc_decaln(emu)
		return nil
	}
	return unsupportedSeq(seq)
}

// dispatchCSI splits off the private-prefix byte and the final byte, then
// dispatches on the final.
func dispatchCSI(emu *Emulator, seq string) error {
	body := seq[1 : len(seq)-1]
	final := seq[len(seq)-1]

	var prefix byte
	if len(body) > 0 && (body[0] == '?' || body[0] == '>' || body[0] == '!') {
		prefix = body[0]
		body = body[1:]
	}
	// DECSTR style "!p" arrives with the bang trailing the params
	if strings.HasSuffix(body, "!") && final == 'p' {
		prefix = '!'
		body = strings.TrimSuffix(body, "!")
	}

	params, err := parseCSIParams(body)
	if err != nil {
		return &UnknownSequenceError{Seq: seq, Err: err}
	}

	if prefix == '?' {
		return dispatchCSIPrivate(emu, final, params, seq)
	}
	if prefix == '>' && final != 'c' {
		return unsupportedSeq(seq)
	}

	switch final {
	case 'A':
		hdl_csi_cuu(emu, params.item(0, 1))
	case 'B':
		hdl_csi_cud(emu, params.item(0, 1))
	case 'C':
		hdl_csi_cuf(emu, params.item(0, 1))
	case 'D':
		hdl_csi_cub(emu, params.item(0, 1))
	case 'E':
		hdl_csi_cnl(emu, params.item(0, 1))
	case 'F':
		hdl_csi_cpl(emu, params.item(0, 1))
	case 'H', 'f':
		hdl_csi_cup(emu, params.item(0, 1), params.item(1, 1))
	case 'd':
		hdl_csi_vpa(emu, params.item(0, 1))
	case 'G', '`':
		hdl_csi_cha(emu, params.item(0, 1))
	case 'J':
		hdl_csi_ed(emu, params.itemOrZero(0))
	case 'K':
		hdl_csi_el(emu, params.itemOrZero(0))
	case 'L':
		hdl_csi_il(emu, params.item(0, 1))
	case 'M':
		hdl_csi_dl(emu, params.item(0, 1))
	case 'S':
		hdl_csi_su(emu, params.item(0, 1))
	case 'T':
		hdl_csi_sd(emu, params.item(0, 1))
	case 'X':
		hdl_csi_ech(emu, params.item(0, 1))
	case 'P':
		hdl_csi_dch(emu, params.item(0, 1))
	case '@':
		hdl_csi_ich(emu, params.item(0, 1))
	case 'I':
		hdl_csi_cht(emu, params.item(0, 1))
	case 'Z':
		hdl_csi_cbt(emu, params.item(0, 1))
	case 'g':
		hdl_csi_tbc(emu, params.itemOrZero(0))
	case 'm':
		hdl_csi_sgr(emu, params)
	case 'h':
		return hdl_csi_sm(emu, params, seq)
	case 'l':
		return hdl_csi_rm(emu, params, seq)
	case 'r':
		hdl_csi_decstbm(emu, params)
	case 's':
		hdl_csi_scosc(emu)
	case 'u':
		hdl_csi_scorc(emu)
	case 'c':
		if prefix == '>' {
			return hdl_csi_da2(emu, params, seq)
		}
		hdl_csi_da1(emu)
	case 'n':
		return hdl_csi_dsr(emu, params.itemOrZero(0), seq)
	case 'p':
		if prefix == '!' {
			emu.FullReset()
			return nil
		}
		return unsupportedSeq(seq)
	case 'U':
		emu.moveCursorTo(emu.doc.TerminalHeight()-1, 0)
	case 't':
		// window manipulation: accepted without a reply
		return nil
	default:
		return unknownSeq(seq)
	}
	return nil
}

// dispatchCSIPrivate handles the "?"-prefixed finals.
func dispatchCSIPrivate(emu *Emulator, final byte, params csiParams, seq string) error {
	switch final {
	case 'h':
		return hdl_csi_decset(emu, params, seq)
	case 'l':
		return hdl_csi_decrst(emu, params, seq)
	case 's':
		hdl_csi_decsave(emu, params)
		return nil
	case 'r':
		hdl_csi_decrestore(emu, params)
		return nil
	case 'n':
		return hdl_csi_dsr(emu, params.itemOrZero(0), seq)
	}
	return unknownSeq(seq)
}

// dispatchOSC splits "]Ps;Pt" on the first ';' and strips the terminator.
func dispatchOSC(emu *Emulator, seq string) error {
	body := strings.TrimSuffix(seq[1:], "\x07")
	body = strings.TrimSuffix(body, string(ST))

	code := body
	arg := ""
	if idx := strings.IndexByte(body, ';'); idx >= 0 {
		code = body[:idx]
		arg = body[idx+1:]
	}

	cmd, err := strconv.Atoi(code)
	if err != nil {
		return &UnknownSequenceError{Seq: seq, Err: err}
	}

	switch cmd {
	case 0, 2:
		hdl_osc_title(emu, arg)
	case 1:
		hdl_osc_icon(emu, arg)
	case 4:
		hdl_osc_palette(emu, arg)
	default:
		return unsupportedSeq(seq)
	}
	return nil
}
