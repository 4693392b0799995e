// Package wbapi is the World Bank API v2 adapter. It exposes the two
// queries the pipelines need: indicator observations over a year range
// and the static country catalogue.
package wbapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DarrenConyngham/world-bank-data-project/dataset"
)

// DefaultBaseURL is the public World Bank API v2 endpoint.
const DefaultBaseURL = "https://api.worldbank.org/v2"

// LocationAll is the selector meaning every available location.
const LocationAll = "all"

// Client queries the World Bank API v2.
type Client struct {
	baseURL    string
	httpClient *http.Client
	perPage    int
	logger     *slog.Logger
}

// NewClient creates a World Bank API client. perPage controls result
// paging and must be positive.
func NewClient(baseURL string, timeout time.Duration, perPage int, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		perPage: perPage,
		logger:  logger,
	}
}

// Observations fetches the long-form observation set for an indicator
// over an inclusive year range. locations may be nil or contain the
// single sentinel "all" to select every location; otherwise entries are
// ISO3 codes. A start year after the end year yields an empty set
// without contacting the source.
func (c *Client) Observations(ctx context.Context, indicator string, locations []string, startYear, endYear int) ([]dataset.Observation, error) {
	if startYear > endYear {
		return nil, nil
	}

	path := fmt.Sprintf("%s/country/%s/indicator/%s", c.baseURL, locationSelector(locations), indicator)
	params := url.Values{
		"format": {"json"},
		"date":   {fmt.Sprintf("%d:%d", startYear, endYear)},
	}

	var out []dataset.Observation
	for page := 1; ; page++ {
		meta, body, err := c.fetchPage(ctx, path, params, page)
		if err != nil {
			return nil, fmt.Errorf("indicator %s: %w", indicator, err)
		}

		var rows []observationRow
		if len(body) > 0 {
			if err := json.Unmarshal(body, &rows); err != nil {
				return nil, fmt.Errorf("decode observations for %s: %w", indicator, err)
			}
		}
		for _, r := range rows {
			obs, ok := r.toObservation()
			if !ok {
				continue
			}
			out = append(out, obs)
		}

		if page >= int(meta.Pages) {
			break
		}
	}

	c.logger.Debug("observations fetched",
		"indicator", indicator,
		"start_year", startYear,
		"end_year", endYear,
		"rows", len(out),
	)
	return out, nil
}

// Countries fetches the location metadata catalogue.
func (c *Client) Countries(ctx context.Context) ([]dataset.Country, error) {
	path := c.baseURL + "/country"
	params := url.Values{"format": {"json"}}

	var out []dataset.Country
	for page := 1; ; page++ {
		meta, body, err := c.fetchPage(ctx, path, params, page)
		if err != nil {
			return nil, fmt.Errorf("country catalogue: %w", err)
		}

		var rows []countryRow
		if len(body) > 0 {
			if err := json.Unmarshal(body, &rows); err != nil {
				return nil, fmt.Errorf("decode country catalogue: %w", err)
			}
		}
		for _, r := range rows {
			out = append(out, dataset.Country{
				ISO2:   r.ISO2,
				Name:   r.Name,
				Region: r.Region.Value,
			})
		}

		if page >= int(meta.Pages) {
			break
		}
	}
	return out, nil
}

// fetchPage issues one paged request and splits the two-element response
// envelope into its meta header and data payload. The data payload is
// nil when the source has no rows for the query.
func (c *Client) fetchPage(ctx context.Context, path string, params url.Values, page int) (pageMeta, json.RawMessage, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("per_page", strconv.Itoa(c.perPage))
	q.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path+"?"+q.Encode(), nil)
	if err != nil {
		return pageMeta{}, nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pageMeta{}, nil, fmt.Errorf("world bank request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return pageMeta{}, nil, fmt.Errorf("world bank API error: status %d: %s", resp.StatusCode, body)
	}

	var envelope []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return pageMeta{}, nil, fmt.Errorf("decode response: %w", err)
	}
	if len(envelope) == 0 {
		return pageMeta{}, nil, fmt.Errorf("empty response envelope")
	}

	var meta pageMeta
	if err := json.Unmarshal(envelope[0], &meta); err != nil {
		return pageMeta{}, nil, fmt.Errorf("decode response meta: %w", err)
	}
	if len(meta.Message) > 0 {
		// The API reports unknown indicators and malformed requests as a
		// message envelope with a 200 status.
		m := meta.Message[0]
		return pageMeta{}, nil, fmt.Errorf("%s (id %s): %w", m.Value, m.ID, dataset.ErrDataUnavailable)
	}

	if len(envelope) < 2 || string(envelope[1]) == "null" {
		return meta, nil, nil
	}
	return meta, envelope[1], nil
}

// locationSelector formats the location selector path segment: "all",
// a single code, or codes joined by semicolons.
func locationSelector(locations []string) string {
	if len(locations) == 0 {
		return LocationAll
	}
	if len(locations) == 1 && strings.EqualFold(locations[0], LocationAll) {
		return LocationAll
	}
	return strings.Join(locations, ";")
}
