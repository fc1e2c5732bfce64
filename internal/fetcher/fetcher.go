package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
)

// DataSource is the contract every upstream fund data provider implements.
// Implementations return a *FetchError on failure so callers can tell an
// unreachable upstream from a server-side failure.
type DataSource interface {
	// FetchAllFunds retrieves the summary of every scheme the upstream knows about.
	FetchAllFunds(ctx context.Context) ([]SchemeDTO, error)

	// FetchFundDetail retrieves metadata and NAV history for a single scheme.
	FetchFundDetail(ctx context.Context, schemeCode string) (*DetailDTO, error)
}

// SchemeDTO is one entry of the all-funds listing.
type SchemeDTO struct {
	SchemeCode Code   `json:"schemeCode"`
	SchemeName string `json:"schemeName"`
}

// DetailDTO is the raw detail/history payload for one scheme.
type DetailDTO struct {
	Meta   MetaDTO  `json:"meta"`
	Data   []NavDTO `json:"data"`
	Status string   `json:"status"`
}

// MetaDTO holds the scheme metadata of a detail payload.
type MetaDTO struct {
	FundHouse      string `json:"fund_house"`
	SchemeType     string `json:"scheme_type"`
	SchemeCategory string `json:"scheme_category"`
	SchemeCode     Code   `json:"scheme_code"`
	SchemeName     string `json:"scheme_name"`
}

// NavDTO is a single dated NAV entry, kept as strings the way the upstream sends them.
type NavDTO struct {
	Date string `json:"date"`
	NAV  string `json:"nav"`
}

// Code is a scheme code. The upstream encodes it as a JSON number in some
// payloads and as a string in others, so it decodes from both.
type Code string

// UnmarshalJSON accepts a JSON string, a JSON number or null.
func (c *Code) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Code(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("scheme code is neither string nor number: %s", data)
	}
	*c = Code(n.String())
	return nil
}

// String returns the code as a plain string.
func (c Code) String() string {
	return string(c)
}
