// file: internal/readers/readers.go
// version: 1.2.0
// guid: 3a4b5c6d-7e8f-9a0b-1c2d-3e4f5a6b7c8d

// Package readers defines the supported catalogues and wires each one
// to its protocol adapter.
package readers

import (
	"sort"
	"time"

	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/httpx"
	"github.com/edpop/explorer/internal/reader"
)

// Env carries the runtime dependencies a catalogue session needs.
type Env struct {
	Doer httpx.Doer
	// DataDir is where local database files live.
	DataDir string
	Timeout time.Duration
	// PageSize overrides the per-catalogue default when positive.
	PageSize int
	// Endpoints overrides catalogue endpoint URLs by catalogue name.
	Endpoints map[string]string
}

func (e Env) endpoint(name, fallback string) string {
	if url, ok := e.Endpoints[name]; ok && url != "" {
		return url
	}
	return fallback
}

// Entry is one searchable catalogue.
type Entry struct {
	// Name is the command name the catalogue is addressed by.
	Name        string
	Aliases     []string
	Description string
	Catalog     *edpoprec.Catalog
	// New opens a fresh query session.
	New func(env Env) (*reader.Session, error)
	// Enrich loads the full detail view of a record for catalogues
	// whose listings are sparse. Nil when listings are complete.
	Enrich func(env Env, rec *edpoprec.Record) error
	// GetByIdentifier fetches a single record outside of a query
	// session. Nil when the catalogue has no direct lookup.
	GetByIdentifier func(env Env, id string) (*edpoprec.Record, error)
	// Download fetches the catalogue's local database file. Nil for
	// remote catalogues.
	Download func(env Env) (string, error)
}

var registry = map[string]Entry{}

func register(e Entry) {
	registry[e.Name] = e
}

// All returns every catalogue, sorted by name.
func All() []Entry {
	out := make([]Entry, 0, len(registry))
	for _, e := range registry {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get looks a catalogue up by name or alias.
func Get(name string) (Entry, bool) {
	if e, ok := registry[name]; ok {
		return e, true
	}
	for _, e := range registry {
		for _, a := range e.Aliases {
			if a == name {
				return e, true
			}
		}
	}
	return Entry{}, false
}

// Lookup fetches one record by identifier. Catalogues with a direct
// lookup endpoint use it; for the rest the identifier is run as a
// query and the first record carrying it is returned.
func (e Entry) Lookup(env Env, id string) (*edpoprec.Record, error) {
	if e.GetByIdentifier != nil {
		return e.GetByIdentifier(env, id)
	}
	session, err := e.New(env)
	if err != nil {
		return nil, err
	}
	if err := session.SetQuery(id); err != nil {
		return nil, err
	}
	if _, err := session.Fetch(0); err != nil {
		return nil, err
	}
	for _, rec := range session.Records() {
		if rec.Identifier == id {
			return rec, nil
		}
	}
	return nil, &reader.NotFoundError{Identifier: id}
}

// catalog is a shorthand constructor for the catalogue descriptions
// below. slug doubles as the last segment of the catalogue URI and as
// the record IRI prefix.
func catalog(slug, shortName, description string, kind edpoprec.Kind) *edpoprec.Catalog {
	return &edpoprec.Catalog{
		URI:         "https://edpop.hum.uu.nl/readers/" + slug,
		ShortName:   shortName,
		Description: description,
		Kind:        kind,
		IRIPrefix:   "https://edpop.hum.uu.nl/readers/" + slug + "/",
	}
}
