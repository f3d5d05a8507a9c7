// file: internal/sru/reader.go
// version: 1.1.0
// guid: 5e6f7a8b-9c0d-1e2f-3a4b-5c6d7e8f9a0b

package sru

import (
	"errors"
	"net/url"
	"strings"

	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/httpx"
	"github.com/edpop/explorer/internal/reader"
)

// Convert turns one raw SRU record into a normalized record. Each
// catalogue supplies its own converter for its record schema.
type Convert func(raw RawRecord) (*edpoprec.Record, error)

// Config describes one SRU catalogue.
type Config struct {
	Catalog      *edpoprec.Catalog
	Endpoint     string
	Version      string
	RecordSchema string
	Extra        url.Values
	// Transform rewrites the user query into the endpoint's CQL
	// dialect. Nil means the query is passed through unchanged.
	Transform func(query string) string
	Convert   Convert
	// PageSize is the preferred page size; MaxPageSize caps what the
	// endpoint accepts per request.
	PageSize    int
	MaxPageSize int
}

type backend struct {
	cfg      Config
	client   *Client
	prepared string
}

// NewSession builds a reader session for one SRU catalogue.
func NewSession(cfg Config, doer httpx.Doer) *reader.Session {
	b := &backend{
		cfg: cfg,
		client: &Client{
			Doer:         doer,
			Endpoint:     cfg.Endpoint,
			Version:      cfg.Version,
			RecordSchema: cfg.RecordSchema,
			Extra:        cfg.Extra,
		},
	}
	var opts []reader.Option
	if cfg.PageSize > 0 {
		opts = append(opts, reader.WithPageSize(cfg.PageSize))
	}
	if cfg.MaxPageSize > 0 {
		opts = append(opts, reader.WithMaxPageSize(cfg.MaxPageSize))
	}
	return reader.NewSession(cfg.Catalog, b, opts...)
}

func (b *backend) TransformQuery(query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", &reader.MalformedQueryError{Query: query, Detail: "query must not be empty"}
	}
	b.prepared = query
	if b.cfg.Transform != nil {
		b.prepared = b.cfg.Transform(query)
	}
	return b.prepared, nil
}

func (b *backend) FetchRange(rng reader.Range, put reader.RecordSink) (reader.FetchResult, error) {
	var zero reader.FetchResult
	resp, err := b.client.SearchRetrieve(b.query(), rng.Start+1, rng.Len())
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return zero, &reader.BackendUnavailableError{Catalog: b.name(), Err: err}
		}
		return zero, &reader.ReaderError{Catalog: b.name(), Err: err}
	}
	for _, d := range resp.Diagnostics {
		if d.IsQueryError() {
			return zero, &reader.MalformedQueryError{Query: b.query(), Detail: d.Message}
		}
		return zero, &reader.ReaderError{Catalog: b.name(), Err: errors.New(d.Message)}
	}
	count := 0
	for _, raw := range resp.Records {
		rec, err := b.cfg.Convert(raw)
		if err != nil {
			return zero, &reader.ReaderError{Catalog: b.name(), Err: err}
		}
		put(rng.Start+count, rec)
		count++
	}
	return reader.FetchResult{
		Total:   resp.NumberOfRecords,
		Fetched: reader.Range{Start: rng.Start, Stop: rng.Start + count},
	}, nil
}

// query returns the transformed query of the current session. The
// session guarantees TransformQuery ran before FetchRange; the backend
// keeps its own copy so the client stays stateless.
func (b *backend) query() string { return b.prepared }

func (b *backend) name() string {
	if b.cfg.Catalog != nil {
		return b.cfg.Catalog.ShortName
	}
	return "SRU"
}

// GenericHooks customize the flattened-XML converter.
type GenericHooks struct {
	// Identifier picks the record identifier out of the flattened
	// element map; required.
	Identifier func(elems map[string][]string) string
	// Link builds the public URL; optional.
	Link func(elems map[string][]string, identifier string) string
	// Fields maps flattened elements onto normalized fields; optional.
	Fields func(elems map[string][]string, rec *edpoprec.Record)
}

// GenericConverter builds a Convert for record schemas that deliver a
// flat list of repeatable elements, Dublin Core style.
func GenericConverter(cat *edpoprec.Catalog, hooks GenericHooks) Convert {
	return func(raw RawRecord) (*edpoprec.Record, error) {
		elems, err := Flatten(raw.Inner)
		if err != nil {
			return nil, err
		}
		rec := edpoprec.NewRecord(cat)
		rec.Raw = flatData(elems)
		if hooks.Identifier != nil {
			rec.Identifier = hooks.Identifier(elems)
		}
		if hooks.Link != nil {
			rec.Link = hooks.Link(elems, rec.Identifier)
		}
		if hooks.Fields != nil {
			hooks.Fields(elems, rec)
		}
		return rec, nil
	}
}

type flatData map[string][]string

func (d flatData) ToMap() map[string]any {
	m := make(map[string]any, len(d))
	for k, vs := range d {
		if len(vs) == 1 {
			m[k] = vs[0]
			continue
		}
		m[k] = vs
	}
	return m
}
