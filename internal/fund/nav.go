package fund

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the layout of NavPoint dates (dd-mm-yyyy).
const DateLayout = "02-01-2006"

// NavPoint is a NAV quote on a given date, both kept as the upstream sent them.
type NavPoint struct {
	Date string
	NAV  string
}

// Time parses the point's date. ok is false when the date is malformed.
func (p NavPoint) Time() (t time.Time, ok bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(p.Date))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Value parses the point's NAV. ok is false when the value is malformed.
func (p NavPoint) Value() (v decimal.Decimal, ok bool) {
	v, err := decimal.NewFromString(strings.TrimSpace(p.NAV))
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

func (p NavPoint) String() string {
	return fmt.Sprintf("%s %s", p.Date, p.NAV)
}
