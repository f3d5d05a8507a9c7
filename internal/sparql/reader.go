// file: internal/sparql/reader.go
// version: 1.2.0
// guid: 7a8b9c0d-1e2f-3a4b-5c6d-7e8f9a0b1c2d

// Package sparql implements the reader backend for catalogues exposed
// as SPARQL endpoints.
package sparql

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/knakk/sparql"

	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/reader"
)

// Config describes one SPARQL catalogue.
type Config struct {
	Catalog  *edpoprec.Catalog
	Endpoint string
	// Filter is an extra graph pattern restricting the dataset, such
	// as a type constraint. It is inserted verbatim into the WHERE
	// clause.
	Filter string
	// Prefixes are PREFIX declarations prepended to every query.
	Prefixes string
	// NameProperty is the predicate delivering a display name for each
	// subject, schema:name by default.
	NameProperty string
	Timeout      time.Duration
	PageSize     int
}

type backend struct {
	cfg      Config
	repo     *sparql.Repo
	prepared string
}

// NewSession builds a reader session for one SPARQL catalogue.
func NewSession(cfg Config) *reader.Session {
	if cfg.NameProperty == "" {
		cfg.NameProperty = "<http://schema.org/name>"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	b := &backend{cfg: cfg}
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
	b.prepared = regexEscape(query)
	return b.selectQuery(10, 0), nil
}

// selectQuery builds the paged subject listing. Every subject whose
// properties match the query text by case-insensitive regex is
// returned with its display name.
func (b *backend) selectQuery(limit, offset int) string {
	return fmt.Sprintf(`%sSELECT DISTINCT ?s ?name WHERE {
  ?s ?p ?o .
  ?s %s ?name .
  %s
  FILTER (regex(?o, %s, "i"))
} ORDER BY ?s LIMIT %d OFFSET %d`,
		b.cfg.Prefixes, b.cfg.NameProperty, b.cfg.Filter,
		strconv.Quote(b.prepared), limit, offset)
}

func (b *backend) countQuery() string {
	return fmt.Sprintf(`%sSELECT (COUNT(DISTINCT ?s) AS ?count) WHERE {
  ?s ?p ?o .
  ?s %s ?name .
  %s
  FILTER (regex(?o, %s, "i"))
}`, b.cfg.Prefixes, b.cfg.NameProperty, b.cfg.Filter, strconv.Quote(b.prepared))
}

func (b *backend) FetchRange(rng reader.Range, put reader.RecordSink) (reader.FetchResult, error) {
	var zero reader.FetchResult
	repo, err := b.connect()
	if err != nil {
		return zero, &reader.BackendUnavailableError{Catalog: b.name(), Err: err}
	}

	countRes, err := repo.Query(b.countQuery())
	if err != nil {
		return zero, b.classify(err)
	}
	total := 0
	for _, sol := range countRes.Solutions() {
		if term, ok := sol["count"]; ok {
			total, _ = strconv.Atoi(term.String())
		}
	}

	res, err := repo.Query(b.selectQuery(rng.Len(), rng.Start))
	if err != nil {
		return zero, b.classify(err)
	}
	count := 0
	for _, sol := range res.Solutions() {
		subject, ok := sol["s"]
		if !ok {
			continue
		}
		rec := edpoprec.NewRecord(b.cfg.Catalog)
		if id, err := b.cfg.Catalog.IRIToIdentifier(subject.String()); err == nil {
			rec.Identifier = id
		} else {
			rec.Identifier = subject.String()
		}
		rec.Link = subject.String()
		if name, ok := sol["name"]; ok {
			rec.SetField(edpoprec.FieldTitle, edpoprec.NewField(name.String()))
		}
		put(rng.Start+count, rec)
		count++
	}
	return reader.FetchResult{
		Total:   total,
		Fetched: reader.Range{Start: rng.Start, Stop: rng.Start + count},
	}, nil
}

func (b *backend) connect() (*sparql.Repo, error) {
	if b.repo != nil {
		return b.repo, nil
	}
	repo, err := sparql.NewRepo(b.cfg.Endpoint, sparql.Timeout(b.cfg.Timeout))
	if err != nil {
		return nil, err
	}
	b.repo = repo
	return repo, nil
}

func (b *backend) classify(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return &reader.BackendUnavailableError{Catalog: b.name(), Err: err}
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "malformed") || strings.Contains(msg, "badformed") ||
		strings.Contains(msg, "parse error") {
		return &reader.MalformedQueryError{Query: b.prepared, Detail: err.Error()}
	}
	return &reader.ReaderError{Catalog: b.name(), Err: err}
}

func (b *backend) name() string {
	if b.cfg.Catalog != nil {
		return b.cfg.Catalog.ShortName
	}
	return "SPARQL"
}

// regexEscape neutralizes regex metacharacters so the user query is
// matched literally by the FILTER regex.
func regexEscape(s string) string {
	const meta = `\.+*?()|[]{}^$`
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(meta, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FetchDetails loads every property of the record's subject and stores
// the result as the record's raw data. Listing queries only deliver the
// display name; details are fetched on demand.
func FetchDetails(endpoint string, timeout time.Duration, rec *edpoprec.Record) error {
	if rec.Catalog == nil || rec.Identifier == "" {
		return errors.New("record has no resolvable subject IRI")
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	repo, err := sparql.NewRepo(endpoint, sparql.Timeout(timeout))
	if err != nil {
		return &reader.BackendUnavailableError{Catalog: rec.Catalog.ShortName, Err: err}
	}
	subject, err := rec.Catalog.IdentifierToIRI(rec.Identifier)
	if err != nil {
		// Listing may have stored the bare IRI when it fell outside
		// the catalogue prefix.
		subject = rec.Identifier
	}
	res, err := repo.Query(fmt.Sprintf("SELECT ?p ?o WHERE { <%s> ?p ?o }", subject))
	if err != nil {
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return &reader.BackendUnavailableError{Catalog: rec.Catalog.ShortName, Err: err}
		}
		return &reader.ReaderError{Catalog: rec.Catalog.ShortName, Err: err}
	}
	props := make(map[string][]string)
	for _, sol := range res.Solutions() {
		p, pok := sol["p"]
		o, ook := sol["o"]
		if !pok || !ook {
			continue
		}
		props[p.String()] = append(props[p.String()], o.String())
	}
	raw := make(edpoprec.MapData, len(props))
	for k, vs := range props {
		if len(vs) == 1 {
			raw[k] = vs[0]
			continue
		}
		raw[k] = vs
	}
	rec.Raw = raw
	return nil
}
