// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

import "github.com/digilog/poderosa/util"

// CSI Pm h  Set Mode (ANSI).
func hdl_csi_sm(emu *Emulator, params csiParams, seq string) error {
	return ansiMode(emu, params, true, seq)
}

// CSI Pm l  Reset Mode (ANSI).
func hdl_csi_rm(emu *Emulator, params csiParams, seq string) error {
	return ansiMode(emu, params, false, seq)
}

func ansiMode(emu *Emulator, params csiParams, set bool, seq string) error {
	var err error
	for i := 0; i < params.count(); i++ {
		switch params.itemOrZero(i) {
		case 4:
			emu.insertMode = set
		case 12:
			// SRM: local echo lives in shared settings; queue the flip
			echo := !set
			emu.deferAction(func() {
				emu.settings.LocalEcho = echo
			})
		case 20, 25, 34:
			// accepted, nothing to change
		default:
			err = unsupportedSeq(seq)
		}
	}
	return err
}

// CSI ? Pm h  DEC Private Mode Set (DECSET).
func hdl_csi_decset(emu *Emulator, params csiParams, seq string) error {
	return decMode(emu, params, true, seq)
}

// CSI ? Pm l  DEC Private Mode Reset (DECRST).
func hdl_csi_decrst(emu *Emulator, params csiParams, seq string) error {
	return decMode(emu, params, false, seq)
}

func decMode(emu *Emulator, params csiParams, set bool, seq string) error {
	var err error
	for i := 0; i < params.count(); i++ {
		switch params.itemOrZero(i) {
		case 1: // DECCKM
			if set {
				emu.cursorKeyMode = CursorKeyModeApplication
			} else {
				emu.cursorKeyMode = CursorKeyModeNormal
			}
		case 5: // DECSCNM, whole-screen inversion
			if emu.reverseVideo != set {
				emu.reverseVideo = set
				emu.doc.InvalidateAll()
			}
		case 6: // DECOM
			emu.originMode = set
		case 7: // DECAWM
			emu.autoWrapMode = set
		case 25: // DECTCEM: visibility is the renderer's concern
			emu.showCursorMode = set
		case 47:
			emu.switchScreenBuffer(set, false)
		case 1047:
			if set {
				emu.switchScreenBuffer(true, false)
			} else {
				if emu.altScreenBufferMode {
					hdl_csi_ed(emu, 2)
				}
				emu.switchScreenBuffer(false, false)
			}
		case 1048:
			if set {
				emu.saveCursor()
			} else {
				emu.restoreCursor()
			}
		case 1049:
			if set {
				emu.saveCursor()
				emu.switchScreenBuffer(true, true)
			} else {
				emu.switchScreenBuffer(false, true)
				emu.restoreCursor()
			}
		case 1000:
			emu.setMouseTrackingMode(MouseModeNormal, set)
		case 1001:
			// highlight tracking would deadlock a non-cooperating peer;
			// accepted and left off
			emu.setMouseTrackingMode(MouseModeOff, false)
		case 1002:
			emu.setMouseTrackingMode(MouseModeDrag, set)
		case 1003:
			emu.setMouseTrackingMode(MouseModeAny, set)
		case 1004:
			emu.focusReporting = set
		case 1005:
			emu.setMouseTrackingProtocol(MouseProtoUtf8, set)
		case 1006:
			emu.setMouseTrackingProtocol(MouseProtoSgr, set)
		case 1015:
			emu.setMouseTrackingProtocol(MouseProtoUrxvt, set)
		case 2004:
			emu.bracketedPasteMode = set
		case 12:
			// cursor blink: deliberately not implemented; the ANSI form
			// 12 is the one that routes local echo
			err = unsupportedSeq(seq)
		default:
			err = unsupportedSeq(seq)
		}
	}
	return err
}

// CSI ? Pm s  Save DEC Private Mode values. Only the buffer-mode flag
// (47/1047) is retained.
func hdl_csi_decsave(emu *Emulator, params csiParams) {
	for i := 0; i < params.count(); i++ {
		switch params.itemOrZero(i) {
		case 47, 1047:
			emu.savedIsAlternateBuffer = emu.altScreenBufferMode
		default:
			util.Logger.Trace("DECSET save: ignored mode", "mode", params.itemOrZero(i))
		}
	}
}

// CSI ? Pm r  Restore DEC Private Mode values.
func hdl_csi_decrestore(emu *Emulator, params csiParams) {
	for i := 0; i < params.count(); i++ {
		switch params.itemOrZero(i) {
		case 47, 1047:
			emu.switchScreenBuffer(emu.savedIsAlternateBuffer, false)
		default:
			util.Logger.Trace("DECSET restore: ignored mode", "mode", params.itemOrZero(i))
		}
	}
}
