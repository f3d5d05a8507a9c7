// file: internal/cerl/reader.go
// version: 1.1.0
// guid: 8b9c0d1e-2f3a-4b5c-6d7e-8f9a0b1c2d3e

// Package cerl implements the reader backend for databases hosted on
// the CERL portal REST API (data.cerl.org).
package cerl

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/httpx"
	"github.com/edpop/explorer/internal/reader"
)

// Convert turns one result row into a normalized record.
type Convert func(row map[string]any) (*edpoprec.Record, error)

// Config describes one CERL-hosted database.
type Config struct {
	Catalog *edpoprec.Catalog
	// BaseURL is the database root, such as
	// https://data.cerl.org/sbti. The adapter appends /_search for
	// queries and /{id} for single-record lookups.
	BaseURL  string
	Convert  Convert
	PageSize int
}

type searchResponse struct {
	Hits struct {
		Value int `json:"value"`
	} `json:"hits"`
	Rows []map[string]any `json:"rows"`
}

type backend struct {
	cfg      Config
	doer     httpx.Doer
	prepared string
}

// NewSession builds a reader session for one CERL database.
func NewSession(cfg Config, doer httpx.Doer) *reader.Session {
	b := &backend{cfg: cfg, doer: doer}
	var opts []reader.Option
	if cfg.PageSize > 0 {
		opts = append(opts, reader.WithPageSize(cfg.PageSize))
	}
	return reader.NewSession(cfg.Catalog, b, opts...)
}

func (b *backend) TransformQuery(query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", &reader.MalformedQueryError{Query: query, Detail: "query must not be empty"}
	}
	b.prepared = query
	return query, nil
}

func (b *backend) FetchRange(rng reader.Range, put reader.RecordSink) (reader.FetchResult, error) {
	var zero reader.FetchResult
	vs := url.Values{}
	vs.Set("query", b.prepared)
	// The search API counts from as a 0-based offset.
	vs.Set("from", strconv.Itoa(rng.Start))
	vs.Set("size", strconv.Itoa(rng.Len()))
	vs.Set("mode", "default")
	vs.Set("sort", "default")
	vs.Set("format", "json")

	req, err := http.NewRequest(http.MethodGet, b.cfg.BaseURL+"/_search?"+vs.Encode(), nil)
	if err != nil {
		return zero, &reader.ReaderError{Catalog: b.name(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := b.doer.Do(req)
	if err != nil {
		return zero, &reader.BackendUnavailableError{Catalog: b.name(), Err: err}
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return zero, &reader.MalformedQueryError{Query: b.prepared, Detail: resp.Status}
	case resp.StatusCode >= 500:
		return zero, &reader.BackendUnavailableError{
			Catalog: b.name(),
			Err:     fmt.Errorf("server returned %s", resp.Status),
		}
	case resp.StatusCode != http.StatusOK:
		return zero, &reader.ReaderError{
			Catalog: b.name(),
			Err:     fmt.Errorf("server returned %s", resp.Status),
		}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, &reader.ReaderError{Catalog: b.name(), Err: err}
	}
	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return zero, &reader.ReaderError{
			Catalog: b.name(),
			Err:     fmt.Errorf("parsing search response: %w", err),
		}
	}
	count := 0
	for _, row := range sr.Rows {
		rec, err := b.cfg.Convert(row)
		if err != nil {
			return zero, &reader.ReaderError{Catalog: b.name(), Err: err}
		}
		put(rng.Start+count, rec)
		count++
	}
	return reader.FetchResult{
		Total:   sr.Hits.Value,
		Fetched: reader.Range{Start: rng.Start, Stop: rng.Start + count},
	}, nil
}

func (b *backend) name() string {
	if b.cfg.Catalog != nil {
		return b.cfg.Catalog.ShortName
	}
	return "CERL"
}

// GetByIdentifier fetches one record directly by its database
// identifier, outside of any query session.
func GetByIdentifier(cfg Config, doer httpx.Doer, id string) (*edpoprec.Record, error) {
	name := "CERL"
	if cfg.Catalog != nil {
		name = cfg.Catalog.ShortName
	}
	req, err := http.NewRequest(http.MethodGet, cfg.BaseURL+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, &reader.ReaderError{Catalog: name, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	resp, err := doer.Do(req)
	if err != nil {
		return nil, &reader.BackendUnavailableError{Catalog: name, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, &reader.NotFoundError{Identifier: id}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &reader.ReaderError{
			Catalog: name,
			Err:     fmt.Errorf("server returned %s", resp.Status),
		}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &reader.ReaderError{Catalog: name, Err: err}
	}
	var row map[string]any
	if err := json.Unmarshal(body, &row); err != nil {
		return nil, &reader.ReaderError{
			Catalog: name,
			Err:     fmt.Errorf("parsing record response: %w", err),
		}
	}
	rec, err := cfg.Convert(row)
	if err != nil {
		return nil, &reader.ReaderError{Catalog: name, Err: err}
	}
	if rec.Identifier == "" {
		rec.Identifier = id
	}
	return rec, nil
}
