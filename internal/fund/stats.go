package fund

import (
	"github.com/shopspring/decimal"
)

// percentScale is the number of decimal places kept by divisions.
const percentScale = 8

var hundred = decimal.NewFromInt(100)

// Stats summarises a NAV series.
type Stats struct {
	Start   NavPoint
	Latest  NavPoint
	Min     decimal.Decimal
	Max     decimal.Decimal
	Average decimal.Decimal
	// Returns is the percentage change from the first to the last parsable
	// value. HasReturns is false when the first value is zero.
	Returns    decimal.Decimal
	HasReturns bool
	// Points counts the values that parsed, Skipped the ones that did not.
	Points  int
	Skipped int
}

// ComputeStats summarises points, which must be ordered oldest first.
// Values that fail to parse are skipped and counted. ok is false when no
// value parsed at all.
func ComputeStats(points []NavPoint) (s Stats, ok bool) {
	var values []decimal.Decimal
	for _, p := range points {
		v, parsed := p.Value()
		if !parsed {
			s.Skipped++
			continue
		}
		if len(values) == 0 {
			s.Start = p
		}
		s.Latest = p
		values = append(values, v)
	}

	if len(values) == 0 {
		return s, false
	}

	s.Points = len(values)
	s.Min = decimal.Min(values[0], values[1:]...)
	s.Max = decimal.Max(values[0], values[1:]...)
	s.Average = decimal.Sum(values[0], values[1:]...).DivRound(decimal.NewFromInt(int64(len(values))), percentScale)

	first, last := values[0], values[len(values)-1]
	if !first.IsZero() {
		s.Returns = last.Sub(first).DivRound(first, percentScale).Mul(hundred)
		s.HasReturns = true
	}

	return s, true
}
