package wbapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DarrenConyngham/world-bank-data-project/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIndicator = "SP.POP.TOTL"

func testClient(baseURL string, perPage int) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		perPage:    perPage,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_Observations_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/country/USA;CAN/indicator/"+testIndicator, r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "2010:2012", r.URL.Query().Get("date"))
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `[
				{"page":1,"pages":2,"per_page":2,"total":3},
				[
					{"indicator":{"id":"SP.POP.TOTL"},"country":{"id":"US","value":"United States"},"countryiso3code":"USA","date":"2012","value":313914040},
					{"indicator":{"id":"SP.POP.TOTL"},"country":{"id":"US","value":"United States"},"countryiso3code":"USA","date":"2011","value":null}
				]
			]`)
		case "2":
			fmt.Fprint(w, `[
				{"page":2,"pages":2,"per_page":2,"total":3},
				[
					{"indicator":{"id":"SP.POP.TOTL"},"country":{"id":"CA","value":"Canada"},"countryiso3code":"CAN","date":"2012","value":34750545}
				]
			]`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	}))
	defer srv.Close()

	c := testClient(srv.URL, 2)
	obs, err := c.Observations(context.Background(), testIndicator, []string{"USA", "CAN"}, 2010, 2012)
	require.NoError(t, err)

	require.Len(t, obs, 3)
	assert.Equal(t, dataset.Observation{
		CountryCode: "USA",
		CountryName: "United States",
		Year:        2012,
		Value:       313914040,
	}, obs[0])
	assert.True(t, obs[1].Missing, "null value should be marked missing")
	assert.Equal(t, "CAN", obs[2].CountryCode)
}

func TestClient_Observations_UnknownIndicator(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"message":[{"id":"120","key":"Invalid value","value":"The provided parameter value is not valid"}]}]`)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 50)
	_, err := c.Observations(context.Background(), "NOT.A.CODE", nil, 2010, 2012)
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrDataUnavailable)
	assert.Contains(t, err.Error(), "NOT.A.CODE")
}

func TestClient_Observations_EmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"page":1,"pages":1,"per_page":50,"total":0},null]`)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 50)
	obs, err := c.Observations(context.Background(), testIndicator, []string{"USA"}, 2010, 2010)
	require.NoError(t, err)
	assert.Empty(t, obs)
}

func TestClient_Observations_InvertedYearRange(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		hits++
	}))
	defer srv.Close()

	c := testClient(srv.URL, 50)
	obs, err := c.Observations(context.Background(), testIndicator, nil, 2012, 2010)
	require.NoError(t, err)
	assert.Empty(t, obs)
	assert.Zero(t, hits, "an inverted range should not contact the source")
}

func TestClient_Observations_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 50)
	_, err := c.Observations(context.Background(), testIndicator, nil, 2010, 2012)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}

func TestClient_Countries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/country", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		// Meta fields arrive as quoted strings on this endpoint.
		fmt.Fprint(w, `[
			{"page":"1","pages":"1","per_page":"300","total":"3"},
			[
				{"id":"CAN","iso2Code":"CA","name":"Canada","region":{"id":"NAC","value":"North America"}},
				{"id":"USA","iso2Code":"US","name":"United States","region":{"id":"NAC","value":"North America"}},
				{"id":"WLD","iso2Code":"1W","name":"World","region":{"id":"NA","value":"Aggregates"}}
			]
		]`)
	}))
	defer srv.Close()

	c := testClient(srv.URL, 300)
	countries, err := c.Countries(context.Background())
	require.NoError(t, err)

	require.Len(t, countries, 3)
	assert.Equal(t, dataset.Country{ISO2: "CA", Name: "Canada", Region: "North America"}, countries[0])
	assert.Equal(t, dataset.RegionAggregates, countries[2].Region)
}

func TestLocationSelector(t *testing.T) {
	assert.Equal(t, "all", locationSelector(nil))
	assert.Equal(t, "all", locationSelector([]string{"ALL"}))
	assert.Equal(t, "USA", locationSelector([]string{"USA"}))
	assert.Equal(t, "USA;CAN;MEX", locationSelector([]string{"USA", "CAN", "MEX"}))
}
