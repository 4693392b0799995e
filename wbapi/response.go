package wbapi

import (
	"strconv"
	"strings"

	"github.com/DarrenConyngham/world-bank-data-project/dataset"
)

// World Bank API v2 response types. The envelope is a two-element JSON
// array: a meta object, then the data rows (null when there are none).

type pageMeta struct {
	Page    flexInt      `json:"page"`
	Pages   flexInt      `json:"pages"`
	PerPage flexInt      `json:"per_page"`
	Total   flexInt      `json:"total"`
	Message []apiMessage `json:"message"`
}

type apiMessage struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

type observationRow struct {
	Country struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"country"`
	CountryISO3 string   `json:"countryiso3code"`
	Date        string   `json:"date"`
	Value       *float64 `json:"value"`
}

// toObservation converts an API row to the domain form. Rows with a
// non-annual date (e.g. "2015Q3") are skipped.
func (r observationRow) toObservation() (dataset.Observation, bool) {
	year, err := strconv.Atoi(r.Date)
	if err != nil {
		return dataset.Observation{}, false
	}

	code := r.CountryISO3
	if code == "" {
		code = r.Country.ID
	}

	obs := dataset.Observation{
		CountryCode: code,
		CountryName: r.Country.Value,
		Year:        year,
	}
	if r.Value == nil {
		obs.Missing = true
	} else {
		obs.Value = *r.Value
	}
	return obs, true
}

type countryRow struct {
	ID     string `json:"id"`
	ISO2   string `json:"iso2Code"`
	Name   string `json:"name"`
	Region struct {
		ID    string `json:"id"`
		Value string `json:"value"`
	} `json:"region"`
}

// flexInt tolerates the API's habit of returning numeric meta fields as
// either JSON numbers or quoted strings depending on the endpoint.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}
