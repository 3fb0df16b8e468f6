// Copyright (c) 2026 The Poderosa Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package terminal

// LineFeedRule selects how bare CR and LF behave, for peers that send
// only one of the pair.
type LineFeedRule int

const (
	LineFeedRuleNormal LineFeedRule = iota
	LineFeedRuleLFOnly
	LineFeedRuleCROnly
)

// Settings is the mutable per-terminal configuration shared with the
// embedding application. The dispatcher never writes it directly during
// input processing; changes are queued and applied after the parse step
// returns (see Emulator.deferAction).
type Settings struct {
	LineFeedRule LineFeedRule
	LocalEcho    bool
	Caption      string
}

func NewSettings() *Settings {
	return &Settings{}
}
