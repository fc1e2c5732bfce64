package fund

import (
	"testing"

	"fundexplorer/internal/fetcher"
)

func TestIsTopFundHouse(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"SBI Bluechip Growth", true},
		{"hdfc mid-cap", true},
		{"Aditya Birla Sun Life Liquid", true},
		{"UTI Nifty Index", true},
		{"Nippon India Small Cap", true},
		{"Quant Active Fund", false},
		{"XYZ Bond Fund", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTopFundHouse(tt.name); got != tt.want {
				t.Errorf("IsTopFundHouse(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestNameContains(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"ABC Growth Fund", "growth", true},
		{"xyz GROWTH plan", "growth", true},
		{"ABC Income Fund", "growth", false},
		{"ABC Income Fund", "", true},
		{"ABC Income Fund", "INCOME f", true},
	}

	for _, tt := range tests {
		t.Run(tt.name+"/"+tt.query, func(t *testing.T) {
			if got := NameContains(tt.name, tt.query); got != tt.want {
				t.Errorf("NameContains(%q, %q) = %v, want %v", tt.name, tt.query, got, tt.want)
			}
		})
	}
}

func TestSummariesFromDTOs(t *testing.T) {
	dtos := []fetcher.SchemeDTO{
		{SchemeCode: "1", SchemeName: "SBI Bluechip Growth"},
		{SchemeCode: "2", SchemeName: "XYZ Bond Fund"},
	}

	got := SummariesFromDTOs(dtos)
	want := []Summary{
		{Code: "1", Name: "SBI Bluechip Growth", Category: "Equity"},
		{Code: "2", Name: "XYZ Bond Fund", Category: "Debt"},
	}

	if len(got) != len(want) {
		t.Fatalf("SummariesFromDTOs() returned %d funds, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SummariesFromDTOs()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestDetailFromDTO(t *testing.T) {
	dto := &fetcher.DetailDTO{
		Meta: fetcher.MetaDTO{
			SchemeCode:     "118989",
			SchemeName:     "HDFC Mid-Cap Opportunities Fund - Growth",
			FundHouse:      "HDFC Mutual Fund",
			SchemeCategory: "Equity Scheme - Mid Cap Fund",
		},
		Data: []fetcher.NavDTO{
			{Date: "15-01-2024", NAV: "150.1"},
			{Date: "12-01-2024", NAV: "149.5"},
		},
	}

	t.Run("classifies when scheme type is missing", func(t *testing.T) {
		d := DetailFromDTO(dto)
		if d.Category != "Equity" {
			t.Errorf("Category = %q, want %q", d.Category, "Equity")
		}
		if d.Code != "118989" || d.FundHouse != "HDFC Mutual Fund" || d.SchemeCategory != "Equity Scheme - Mid Cap Fund" {
			t.Errorf("DetailFromDTO() = %+v, metadata not carried over", d)
		}
		if len(d.NavHistory) != 2 || d.NavHistory[0].Date != "15-01-2024" {
			t.Errorf("NavHistory = %v, want source order preserved", d.NavHistory)
		}
	})

	t.Run("prefers upstream scheme type", func(t *testing.T) {
		withType := *dto
		withType.Meta.SchemeType = "Open Ended Schemes"
		if d := DetailFromDTO(&withType); d.Category != "Open Ended Schemes" {
			t.Errorf("Category = %q, want %q", d.Category, "Open Ended Schemes")
		}
	})
}

func TestFilter_PreservesOrder(t *testing.T) {
	funds := []Summary{{Code: "1"}, {Code: "2"}, {Code: "3"}, {Code: "4"}}

	got := Filter(funds, func(s Summary) bool { return s.Code != "2" })
	if len(got) != 3 || got[0].Code != "1" || got[1].Code != "3" || got[2].Code != "4" {
		t.Errorf("Filter() = %+v, want codes 1, 3, 4 in order", got)
	}

	if empty := Filter(funds, func(Summary) bool { return false }); empty == nil || len(empty) != 0 {
		t.Errorf("Filter() = %#v, want empty non-nil slice", empty)
	}
}
