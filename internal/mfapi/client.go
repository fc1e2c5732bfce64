package mfapi

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"resty.dev/v3"

	"fundexplorer/internal/fetcher"
	"fundexplorer/internal/ratelimit"
)

// DefaultBaseURL is the production endpoint of the public mutual fund API.
const DefaultBaseURL = "https://api.mfapi.in"

// Client fetches fund listings and NAV histories from the mfapi.in REST API.
// It implements fetcher.DataSource.
type Client struct {
	client  *resty.Client
	limiter *ratelimit.Limiter
}

var _ fetcher.DataSource = (*Client)(nil)

// NewClient creates a new fund API client. A nil limiter disables throttling.
func NewClient(baseURL string, opts fetcher.HTTPOptions, limiter *ratelimit.Limiter) *Client {
	if limiter == nil {
		limiter = ratelimit.New()
	}

	return &Client{
		client:  fetcher.NewHTTPClient(strings.TrimRight(baseURL, "/"), opts),
		limiter: limiter,
	}
}

// FetchAllFunds retrieves every scheme code and name known to the upstream
func (c *Client) FetchAllFunds(ctx context.Context) ([]fetcher.SchemeDTO, error) {
	if err := c.limiter.Wait(ctx, ratelimit.APIMFAPI); err != nil {
		return nil, fetcher.ClassifyTransportError(err)
	}

	var result []fetcher.SchemeDTO

	resp, err := c.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/mf")

	if err != nil {
		slog.Debug("fund list request failed", "error", err)
		return nil, fetcher.ClassifyTransportError(err)
	}

	if !resp.IsSuccess() {
		return nil, fetcher.ClassifyHTTPError(resp.StatusCode())
	}

	if result == nil {
		return nil, fetcher.NewValidationError("fund list missing from response")
	}

	return result, nil
}

// FetchFundDetail retrieves metadata and the NAV history of a single scheme
func (c *Client) FetchFundDetail(ctx context.Context, schemeCode string) (*fetcher.DetailDTO, error) {
	if schemeCode == "" {
		return nil, fetcher.NewValidationError("scheme code is empty")
	}

	if err := c.limiter.Wait(ctx, ratelimit.APIMFAPI); err != nil {
		return nil, fetcher.ClassifyTransportError(err)
	}

	var result fetcher.DetailDTO

	resp, err := c.client.R().
		SetContext(ctx).
		SetPathParam("schemeCode", schemeCode).
		SetResult(&result).
		Get("/mf/{schemeCode}")

	if err != nil {
		slog.Debug("fund detail request failed", "scheme_code", schemeCode, "error", err)
		return nil, fetcher.ClassifyTransportError(err)
	}

	if !resp.IsSuccess() {
		return nil, fetcher.ClassifyHTTPError(resp.StatusCode())
	}

	if result.Meta.SchemeCode == "" {
		return nil, fetcher.NewValidationError(fmt.Sprintf("scheme %s not found in response", schemeCode))
	}

	return &result, nil
}
