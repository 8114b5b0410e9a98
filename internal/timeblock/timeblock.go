// Package timeblock implements the value type behind every service time
// window: a half-open minute range on the 1440-minute day clock, parsed
// from the "HH:MM" / "HH:MM-HH:MM" strings operators type into the daily
// entry screens. Ranges whose end falls before their start wrap past
// midnight (a 23:50-00:10 night run is one window, not two).
package timeblock

import (
	"fmt"
	"strconv"
	"strings"
)

// NominalWidthMin is assumed for single-point windows ("08:00" without
// an explicit end): the slot occupies [start, start+15).
const NominalWidthMin = 15

const minutesPerDay = 24 * 60

// Range is a half-open [Start, End) window in minutes since midnight.
// End < Start means the window wraps past midnight.
type Range struct {
	Start int
	End   int
}

// Wraps reports whether the window crosses midnight.
func (r Range) Wraps() bool { return r.End < r.Start }

func (r Range) String() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", r.Start/60, r.Start%60, r.End/60, r.End%60)
}

// Parse resolves the effective time window for a slot. The free-text
// time wins when present; otherwise the time-block label itself is
// parsed. Returns ok == false for anything that is not a well-formed
// "HH:MM" or "HH:MM-HH:MM" — callers must treat that as "window cannot
// be evaluated, skip the conflict check", never as a hard error:
// contracts using legacy free-form block names are exempt from overlap
// validation on purpose.
func Parse(timeBlock, freeText string) (Range, bool) {
	spec := strings.TrimSpace(freeText)
	if spec == "" {
		spec = strings.TrimSpace(timeBlock)
	}
	if spec == "" {
		return Range{}, false
	}
	return parseSpec(spec)
}

// ParseWithCustom is Parse with an extra indirection: when the block
// label matches one of the contract's per-month custom block codes
// (e.g. "C1" anchored at "06:45"), the anchor text replaces the label
// before parsing. Free text still takes precedence over everything.
func ParseWithCustom(timeBlock, freeText string, custom map[string]string) (Range, bool) {
	if strings.TrimSpace(freeText) == "" && custom != nil {
		if anchor, ok := custom[strings.TrimSpace(timeBlock)]; ok {
			return Parse(anchor, "")
		}
	}
	return Parse(timeBlock, freeText)
}

func parseSpec(spec string) (Range, bool) {
	var startTok, endTok string
	if i := strings.Index(spec, "-"); i >= 0 {
		startTok = strings.TrimSpace(spec[:i])
		endTok = strings.TrimSpace(spec[i+1:])
	} else {
		startTok = spec
	}

	start, ok := parseClock(startTok)
	if !ok {
		return Range{}, false
	}

	end := start
	if endTok != "" {
		if end, ok = parseClock(endTok); !ok {
			return Range{}, false
		}
	}

	// Single point, or identical endpoints: assume the nominal width.
	if end == start {
		end = (start + NominalWidthMin) % minutesPerDay
	}
	return Range{Start: start, End: end}, true
}

// parseClock parses one "HH:MM" token into minutes since midnight.
func parseClock(tok string) (int, bool) {
	parts := strings.Split(tok, ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// segments splits the window into non-wrapping half-open intervals.
// A wrapping window contributes [Start, 1440) and [0, End).
func (r Range) segments() [][2]int {
	if r.Wraps() {
		return [][2]int{{r.Start, minutesPerDay}, {0, r.End}}
	}
	return [][2]int{{r.Start, r.End}}
}

// Overlaps reports whether two windows share at least one minute.
// Intervals are half-open, so windows that merely touch (08:00-08:15
// vs 08:15-08:30) do not overlap. Symmetric in its arguments.
func (r Range) Overlaps(other Range) bool {
	for _, a := range r.segments() {
		for _, b := range other.segments() {
			lo := a[0]
			if b[0] > lo {
				lo = b[0]
			}
			hi := a[1]
			if b[1] < hi {
				hi = b[1]
			}
			if lo < hi {
				return true
			}
		}
	}
	return false
}
