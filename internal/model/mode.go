package model

import (
	"fmt"
	"strings"
)

// Mode is the game mode partitioning leaderboards and scores.
type Mode int

const (
	ModeStandard Mode = 0
	ModeTaiko    Mode = 1
	ModeCatch    Mode = 2
	ModeMania    Mode = 3
)

// CustomMode is the server-side play-style variant.
type CustomMode int

const (
	CustomModeVanilla   CustomMode = 0
	CustomModeRelax     CustomMode = 1
	CustomModeAutopilot CustomMode = 2
)

type modeKey struct {
	text string
	mode Mode
}

type customModeKey struct {
	text string
	mode CustomMode
}

// Ordered so option listings stay stable across runs.
var modeTable = []modeKey{
	{"std", ModeStandard},
	{"standard", ModeStandard},
	{"taiko", ModeTaiko},
	{"ctb", ModeCatch},
	{"catch", ModeCatch},
	{"mania", ModeMania},
	{"piano tiles", ModeMania},
}

var customModeTable = []customModeKey{
	{"vn", CustomModeVanilla},
	{"rx", CustomModeRelax},
	{"ap", CustomModeAutopilot},
}

// ParseMode matches text exactly (case-sensitive, no trimming) against the mode table.
func ParseMode(text string) (Mode, bool) {
	for _, k := range modeTable {
		if k.text == text {
			return k.mode, true
		}
	}
	return 0, false
}

// ParseCustomMode matches text exactly (case-sensitive, no trimming) against the custom mode table.
func ParseCustomMode(text string) (CustomMode, bool) {
	for _, k := range customModeTable {
		if k.text == text {
			return k.mode, true
		}
	}
	return 0, false
}

func ModeOptions() []string {
	out := make([]string, 0, len(modeTable))
	for _, k := range modeTable {
		out = append(out, k.text)
	}
	return out
}

func CustomModeOptions() []string {
	out := make([]string, 0, len(customModeTable))
	for _, k := range customModeTable {
		out = append(out, k.text)
	}
	return out
}

func (m Mode) Valid() bool {
	switch m {
	case ModeStandard, ModeTaiko, ModeCatch, ModeMania:
		return true
	default:
		return false
	}
}

func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeTaiko:
		return "taiko"
	case ModeCatch:
		return "catch"
	case ModeMania:
		return "mania"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func (m CustomMode) Valid() bool {
	switch m {
	case CustomModeVanilla, CustomModeRelax, CustomModeAutopilot:
		return true
	default:
		return false
	}
}

func (m CustomMode) String() string {
	switch m {
	case CustomModeVanilla:
		return "vanilla"
	case CustomModeRelax:
		return "relax"
	case CustomModeAutopilot:
		return "autopilot"
	default:
		return fmt.Sprintf("custom_mode(%d)", int(m))
	}
}

// JoinOptions renders an option list the way prompts and validation notices show it.
func JoinOptions(options []string) string {
	return strings.Join(options, ", ")
}
