package fund

import (
	"testing"
	"time"
)

func TestParseTimeRange(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeRange
		wantErr bool
	}{
		{"1M", OneMonth, false},
		{"3m", ThreeMonths, false},
		{" 6M ", SixMonths, false},
		{"1y", OneYear, false},
		{"5Y", TimeRange{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeRange(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeRange(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTimeRange(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	history := []NavPoint{
		{Date: "14-03-2024", NAV: "110"},
		{Date: "01-03-2024", NAV: "108"},
		{Date: "not-a-date", NAV: "107"},
		{Date: "16-02-2024", NAV: "105"},
		{Date: "15-02-2024", NAV: "104"},
		{Date: "01-01-2024", NAV: "100"},
	}

	tests := []struct {
		tr    TimeRange
		dates []string
	}{
		{OneMonth, []string{"16-02-2024", "01-03-2024", "14-03-2024"}},
		{ThreeMonths, []string{"01-01-2024", "15-02-2024", "16-02-2024", "01-03-2024", "14-03-2024"}},
	}

	for _, tt := range tests {
		t.Run(tt.tr.Label, func(t *testing.T) {
			got := Window(history, tt.tr, now)
			if len(got) != len(tt.dates) {
				t.Fatalf("Window() returned %d points (%v), want %d", len(got), got, len(tt.dates))
			}
			for i, d := range tt.dates {
				if got[i].Date != d {
					t.Errorf("Window()[%d].Date = %q, want %q", i, got[i].Date, d)
				}
			}
		})
	}

	if history[0].Date != "14-03-2024" {
		t.Error("Window() modified the input history")
	}
}
