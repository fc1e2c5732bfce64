package fund

import (
	"strings"

	"fundexplorer/internal/fetcher"
)

// Summary is one entry of the fund listing.
type Summary struct {
	Code     string
	Name     string
	Category string
}

// Detail holds the metadata and NAV history of one scheme. NavHistory keeps
// the order the upstream sent, which is newest first.
type Detail struct {
	Code           string
	Name           string
	NavHistory     []NavPoint
	Category       string
	FundHouse      string
	SchemeCategory string
}

// topFundHouses are the name fragments of the well-known fund houses
var topFundHouses = []string{"sbi", "hdfc", "icici", "axis", "kotak", "birla", "reliance", "nippon", "uti"}

// IsTopFundHouse reports whether the scheme name mentions one of the
// well-known fund houses.
func IsTopFundHouse(schemeName string) bool {
	name := strings.ToLower(schemeName)
	for _, house := range topFundHouses {
		if strings.Contains(name, house) {
			return true
		}
	}
	return false
}

// NameContains reports whether the scheme name contains query, ignoring case.
func NameContains(schemeName, query string) bool {
	return strings.Contains(strings.ToLower(schemeName), strings.ToLower(query))
}

// SummaryFromDTO maps a listing entry and classifies it.
func SummaryFromDTO(dto fetcher.SchemeDTO) Summary {
	return Summary{
		Code:     dto.SchemeCode.String(),
		Name:     dto.SchemeName,
		Category: string(Classify(dto.SchemeName)),
	}
}

// SummariesFromDTOs maps a whole listing, preserving order.
func SummariesFromDTOs(dtos []fetcher.SchemeDTO) []Summary {
	funds := make([]Summary, 0, len(dtos))
	for _, dto := range dtos {
		funds = append(funds, SummaryFromDTO(dto))
	}
	return funds
}

// DetailFromDTO maps a detail payload. The upstream scheme type is used as
// the category when present; otherwise the name is classified.
func DetailFromDTO(dto *fetcher.DetailDTO) Detail {
	history := make([]NavPoint, 0, len(dto.Data))
	for _, nav := range dto.Data {
		history = append(history, NavPoint{Date: nav.Date, NAV: nav.NAV})
	}

	category := dto.Meta.SchemeType
	if category == "" {
		category = string(Classify(dto.Meta.SchemeName))
	}

	return Detail{
		Code:           dto.Meta.SchemeCode.String(),
		Name:           dto.Meta.SchemeName,
		NavHistory:     history,
		Category:       category,
		FundHouse:      dto.Meta.FundHouse,
		SchemeCategory: dto.Meta.SchemeCategory,
	}
}

// Filter returns the summaries for which keep returns true, in their original order.
func Filter(funds []Summary, keep func(Summary) bool) []Summary {
	out := make([]Summary, 0)
	for _, f := range funds {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}
