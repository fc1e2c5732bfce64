package fund

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestComputeStats(t *testing.T) {
	points := []NavPoint{
		{Date: "01-01-2024", NAV: "100"},
		{Date: "02-01-2024", NAV: "bad"},
		{Date: "03-01-2024", NAV: "90"},
		{Date: "04-01-2024", NAV: "125.5"},
		{Date: "05-01-2024", NAV: "110"},
	}

	s, ok := ComputeStats(points)
	if !ok {
		t.Fatal("ComputeStats() ok = false, want true")
	}

	tests := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"Min", s.Min, "90"},
		{"Max", s.Max, "125.5"},
		{"Average", s.Average, "106.375"},
		{"Returns", s.Returns, "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("%s = %s, want %s", tt.name, tt.got, tt.want)
			}
		})
	}

	if s.Points != 4 || s.Skipped != 1 {
		t.Errorf("Points, Skipped = %d, %d, want 4, 1", s.Points, s.Skipped)
	}
	if s.Start.Date != "01-01-2024" || s.Latest.Date != "05-01-2024" {
		t.Errorf("Start, Latest = %v, %v, want 01-01-2024 and 05-01-2024", s.Start, s.Latest)
	}
	if !s.HasReturns {
		t.Error("HasReturns = false, want true")
	}
}

func TestComputeStats_NoParsableValues(t *testing.T) {
	s, ok := ComputeStats([]NavPoint{{Date: "01-01-2024", NAV: "N.A."}})
	if ok {
		t.Error("ComputeStats() ok = true, want false")
	}
	if s.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", s.Skipped)
	}

	if _, ok := ComputeStats(nil); ok {
		t.Error("ComputeStats(nil) ok = true, want false")
	}
}

func TestComputeStats_ZeroStart(t *testing.T) {
	s, ok := ComputeStats([]NavPoint{{NAV: "0"}, {NAV: "5"}})
	if !ok {
		t.Fatal("ComputeStats() ok = false, want true")
	}
	if s.HasReturns {
		t.Error("HasReturns = true for a zero starting value, want false")
	}
}

func TestNavPoint_Parse(t *testing.T) {
	if _, ok := (NavPoint{Date: "31-12-2023"}).Time(); !ok {
		t.Error("Time() ok = false for 31-12-2023, want true")
	}
	if _, ok := (NavPoint{Date: "2023-12-31"}).Time(); ok {
		t.Error("Time() ok = true for ISO date, want false")
	}
	if v, ok := (NavPoint{NAV: " 12.34500 "}).Value(); !ok || !v.Equal(decimal.RequireFromString("12.345")) {
		t.Errorf("Value() = %s, %v, want 12.345, true", v, ok)
	}
}
