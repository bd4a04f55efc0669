package engine

import (
	"fmt"
	"strings"
)

// RectChoice selects which (free rectangle, candidate) pair wins when
// several placements are possible. Scores are penalties: smaller is better.
type RectChoice int

const (
	BestAreaFit       RectChoice = iota // -BAF
	BestShortSideFit                    // -BSSF
	BestLongSideFit                     // -BLSF
	WorstAreaFit                        // -WAF
	WorstShortSideFit                   // -WSSF
	WorstLongSideFit                    // -WLSF
)

var rectChoiceNames = []struct {
	name  string
	short string
}{
	{"best-area-fit", "baf"},
	{"best-short-side-fit", "bssf"},
	{"best-long-side-fit", "blsf"},
	{"worst-area-fit", "waf"},
	{"worst-short-side-fit", "wssf"},
	{"worst-long-side-fit", "wlsf"},
}

// RectChoices lists every choice heuristic in declaration order.
func RectChoices() []RectChoice {
	return []RectChoice{
		BestAreaFit, BestShortSideFit, BestLongSideFit,
		WorstAreaFit, WorstShortSideFit, WorstLongSideFit,
	}
}

func (c RectChoice) String() string {
	if c < 0 || int(c) >= len(rectChoiceNames) {
		return fmt.Sprintf("RectChoice(%d)", int(c))
	}
	return rectChoiceNames[c].name
}

// ParseRectChoice accepts either the long kebab-case name or the short code
// (e.g. "best-short-side-fit" or "bssf"), case-insensitively.
func ParseRectChoice(s string) (RectChoice, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range rectChoiceNames {
		if key == n.name || key == n.short {
			return RectChoice(i), nil
		}
	}
	return BestShortSideFit, fmt.Errorf("unknown rect choice heuristic %q", s)
}

// score returns the penalty of placing a width x height rectangle into free.
// The caller has already checked that it fits.
func (c RectChoice) score(width, height int, free Rect) int {
	switch c {
	case BestAreaFit:
		return scoreBestArea(width, height, free)
	case BestShortSideFit:
		return scoreBestShortSide(width, height, free)
	case BestLongSideFit:
		return scoreBestLongSide(width, height, free)
	case WorstAreaFit:
		return -scoreBestArea(width, height, free)
	case WorstShortSideFit:
		return -scoreBestShortSide(width, height, free)
	case WorstLongSideFit:
		return -scoreBestLongSide(width, height, free)
	}
	return scoreBestShortSide(width, height, free)
}

func scoreBestArea(width, height int, free Rect) int {
	return free.Width*free.Height - width*height
}

func scoreBestShortSide(width, height int, free Rect) int {
	return min(abs(free.Width-width), abs(free.Height-height))
}

func scoreBestLongSide(width, height int, free Rect) int {
	return max(abs(free.Width-width), abs(free.Height-height))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// SplitRule decides whether the L-shaped leftover of a placement is cut
// horizontally or vertically.
type SplitRule int

const (
	SplitShorterLeftoverAxis SplitRule = iota // -SLAS
	SplitLongerLeftoverAxis                   // -LLAS
	SplitMinimizeArea                         // -MINAS, one big rectangle and one small one
	SplitMaximizeArea                         // -MAXAS, two rectangles as even as possible
	SplitShorterAxis                          // -SAS
	SplitLongerAxis                           // -LAS
)

var splitRuleNames = []struct {
	name  string
	short string
}{
	{"shorter-leftover-axis", "slas"},
	{"longer-leftover-axis", "llas"},
	{"minimize-area", "minas"},
	{"maximize-area", "maxas"},
	{"shorter-axis", "sas"},
	{"longer-axis", "las"},
}

// SplitRules lists every split rule in declaration order.
func SplitRules() []SplitRule {
	return []SplitRule{
		SplitShorterLeftoverAxis, SplitLongerLeftoverAxis,
		SplitMinimizeArea, SplitMaximizeArea,
		SplitShorterAxis, SplitLongerAxis,
	}
}

func (s SplitRule) String() string {
	if s < 0 || int(s) >= len(splitRuleNames) {
		return fmt.Sprintf("SplitRule(%d)", int(s))
	}
	return splitRuleNames[s].name
}

// ParseSplitRule accepts the long name or the short code ("slas", "minas", ...).
func ParseSplitRule(s string) (SplitRule, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for i, n := range splitRuleNames {
		if key == n.name || key == n.short {
			return SplitRule(i), nil
		}
	}
	return SplitShorterLeftoverAxis, fmt.Errorf("unknown split rule %q", s)
}

// splitHorizontal reports whether the leftover of placing placed into free
// should be cut with a horizontal line, which gives the bottom fragment the
// full width of free.
func (s SplitRule) splitHorizontal(free, placed Rect) bool {
	w := free.Width - placed.Width
	h := free.Height - placed.Height

	switch s {
	case SplitLongerLeftoverAxis:
		return w > h
	case SplitMinimizeArea:
		// Maximize the larger fragment.
		return placed.Width*h > w*placed.Height
	case SplitMaximizeArea:
		// Maximize the smaller fragment.
		return placed.Width*h <= w*placed.Height
	case SplitShorterAxis:
		return free.Width <= free.Height
	case SplitLongerAxis:
		return free.Width > free.Height
	default: // SplitShorterLeftoverAxis
		return w <= h
	}
}
