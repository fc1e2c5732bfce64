package fund

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// TimeRange is a trailing window over a NAV history.
type TimeRange struct {
	Label  string
	Months int
}

var (
	OneMonth    = TimeRange{Label: "1M", Months: 1}
	ThreeMonths = TimeRange{Label: "3M", Months: 3}
	SixMonths   = TimeRange{Label: "6M", Months: 6}
	OneYear     = TimeRange{Label: "1Y", Months: 12}
)

// TimeRanges lists the selectable ranges in display order.
var TimeRanges = []TimeRange{OneMonth, ThreeMonths, SixMonths, OneYear}

// ParseTimeRange resolves a label such as "3M" (case-insensitive).
func ParseTimeRange(s string) (TimeRange, error) {
	for _, tr := range TimeRanges {
		if strings.EqualFold(strings.TrimSpace(s), tr.Label) {
			return tr, nil
		}
	}
	return TimeRange{}, fmt.Errorf("unknown time range %q (want one of 1M, 3M, 6M, 1Y)", s)
}

func (tr TimeRange) String() string {
	return tr.Label
}

// Cutoff returns the instant the window starts at, relative to now.
func (tr TimeRange) Cutoff(now time.Time) time.Time {
	return now.AddDate(0, -tr.Months, 0)
}

// Window returns the points dated strictly after the range cutoff, oldest
// first. history is expected newest first, as the upstream sends it.
// Points with malformed dates are dropped.
func Window(history []NavPoint, tr TimeRange, now time.Time) []NavPoint {
	cutoff := tr.Cutoff(now)

	out := make([]NavPoint, 0, len(history))
	for _, p := range history {
		t, ok := p.Time()
		if !ok || !t.After(cutoff) {
			continue
		}
		out = append(out, p)
	}
	slices.Reverse(out)
	return out
}
