// file: internal/edpoprec/record.go
// version: 1.2.0
// guid: 5d6e7f8a-9b0c-1d2e-3f4a-5b6c7d8e9f0a

package edpoprec

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/knakk/rdf"
)

// Kind distinguishes the two record ontologies.
type Kind int

const (
	Bibliographical Kind = iota
	Biographical
	// Generic is for sources whose records are neither clearly
	// bibliographic nor biographic, such as authority files.
	Generic
)

// RawData is the untouched upstream payload of a record. ToMap gives a
// generic nested representation for display and export; it must not drop
// or alter any value of the original payload.
type RawData interface {
	ToMap() map[string]any
}

// MapData is RawData for sources that already deliver a generic mapping
// (JSON objects, SQL rows, CSV rows).
type MapData map[string]any

func (m MapData) ToMap() map[string]any { return m }

// Catalog describes one source catalogue.
type Catalog struct {
	URI         string
	ShortName   string
	Description string
	Kind        Kind
	// IRIPrefix turns a record identifier into a dereferenceable IRI.
	// Empty if the catalogue has no stable record IRIs.
	IRIPrefix string
}

// Slug returns the last path segment of the catalogue URI.
func (c *Catalog) Slug() string {
	parts := strings.Split(c.URI, "/")
	return parts[len(parts)-1]
}

// IdentifierToIRI builds the record IRI for an identifier.
func (c *Catalog) IdentifierToIRI(identifier string) (string, error) {
	if c.IRIPrefix == "" {
		return "", fmt.Errorf("catalog %s has no IRI prefix", c.ShortName)
	}
	return c.IRIPrefix + url.PathEscape(identifier), nil
}

// IRIToIdentifier is the inverse of IdentifierToIRI.
func (c *Catalog) IRIToIdentifier(iri string) (string, error) {
	if c.IRIPrefix == "" {
		return "", fmt.Errorf("catalog %s has no IRI prefix", c.ShortName)
	}
	if !strings.HasPrefix(iri, c.IRIPrefix) {
		return "", fmt.Errorf("IRI %s does not start with %s", iri, c.IRIPrefix)
	}
	id, err := url.PathUnescape(strings.TrimPrefix(iri, c.IRIPrefix))
	if err != nil {
		return "", fmt.Errorf("IRI %s contains invalid escapes: %w", iri, err)
	}
	return id, nil
}

// Triples renders the catalogue as an instance of edpoprec:Catalog.
func (c *Catalog) Triples() ([]rdf.Triple, error) {
	subj, err := rdf.NewIRI(c.URI)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog URI %q: %w", c.URI, err)
	}
	class := ClassBibliographicalCatalog
	switch c.Kind {
	case Biographical:
		class = ClassBiographicalCatalog
	case Generic:
		class = ClassCatalog
	}
	ts := []rdf.Triple{{Subj: subj, Pred: RDFType, Obj: class}}
	if c.ShortName != "" {
		lit, _ := rdf.NewLiteral(c.ShortName)
		ts = append(ts, rdf.Triple{Subj: subj, Pred: SchemaName, Obj: lit})
	}
	if c.Description != "" {
		lit, _ := rdf.NewLiteral(c.Description)
		ts = append(ts, rdf.Triple{Subj: subj, Pred: SchemaDescription, Obj: lit})
	}
	if slug := c.Slug(); slug != "" {
		lit, _ := rdf.NewLiteral(slug)
		ts = append(ts, rdf.Triple{Subj: subj, Pred: SchemaIdentifier, Obj: lit})
	}
	return ts, nil
}

type fieldEntry struct {
	name  FieldName
	field Field
}

// Record is one bibliographic or biographical item: normalized fields
// plus the raw original payload. Records are built by an adapter during a
// fetch and are read-only afterwards.
type Record struct {
	Identifier string
	// Link is a user-friendly URL where the record can be inspected.
	Link    string
	Catalog *Catalog
	Raw     RawData

	fields []fieldEntry
}

// NewRecord creates an empty record for a catalogue.
func NewRecord(cat *Catalog) *Record {
	return &Record{Catalog: cat}
}

// SetField sets a single-valued field. Empty fields are ignored so that
// absent source data simply stays absent.
func (r *Record) SetField(name FieldName, f Field) {
	if f.IsZero() {
		return
	}
	for i, e := range r.fields {
		if e.name == name {
			r.fields[i].field = f
			return
		}
	}
	r.fields = append(r.fields, fieldEntry{name: name, field: f})
}

// AddField appends a value to a repeatable field.
func (r *Record) AddField(name FieldName, f Field) {
	if f.IsZero() {
		return
	}
	r.fields = append(r.fields, fieldEntry{name: name, field: f})
}

// Field returns the first value of a field. The zero Field is returned
// for fields the source did not provide.
func (r *Record) Field(name FieldName) Field {
	for _, e := range r.fields {
		if e.name == name {
			return e.field
		}
	}
	return Field{}
}

// FieldValues returns all values of a repeatable field, in insertion order.
func (r *Record) FieldValues(name FieldName) []Field {
	var out []Field
	for _, e := range r.fields {
		if e.name == name {
			out = append(out, e.field)
		}
	}
	return out
}

// NormalizedFields returns the full field mapping. The result is a copy;
// mutating it does not affect the record.
func (r *Record) NormalizedFields() map[FieldName][]Field {
	out := make(map[FieldName][]Field, len(r.fields))
	for _, e := range r.fields {
		out[e.name] = append(out[e.name], e.field)
	}
	return out
}

// RawMap returns the raw payload as a generic nested structure, or nil if
// the adapter did not attach raw data.
func (r *Record) RawMap() map[string]any {
	if r.Raw == nil {
		return nil
	}
	return r.Raw.ToMap()
}

// Title returns a display title for the record: the title or name field
// if set, else the identifier.
func (r *Record) Title() string {
	for _, n := range []FieldName{FieldTitle, FieldPersonName} {
		if f := r.Field(n); !f.IsZero() {
			return f.String()
		}
	}
	if r.Identifier != "" {
		return fmt.Sprintf("(record %s)", r.Identifier)
	}
	return "(untitled record)"
}

// Triples renders the record as an edpoprec graph. Unset fields are
// omitted entirely; each set field becomes a blank edpoprec:Field node
// with its originalText (and normalizedText, if any).
func (r *Record) Triples() ([]rdf.Triple, error) {
	subj, err := r.subjectNode()
	if err != nil {
		return nil, err
	}
	class := ClassRecord
	if r.Catalog != nil {
		switch r.Catalog.Kind {
		case Biographical:
			class = ClassBiographicalRecord
		case Bibliographical:
			class = ClassBibliographicalRecord
		}
	}
	ts := []rdf.Triple{{Subj: subj, Pred: RDFType, Obj: class}}
	if r.Catalog != nil && r.Catalog.URI != "" {
		cat, err := rdf.NewIRI(r.Catalog.URI)
		if err != nil {
			return nil, fmt.Errorf("invalid catalog URI %q: %w", r.Catalog.URI, err)
		}
		ts = append(ts, rdf.Triple{Subj: subj, Pred: PropFromCatalog, Obj: cat})
	}
	if r.Identifier != "" {
		lit, _ := rdf.NewLiteral(r.Identifier)
		ts = append(ts, rdf.Triple{Subj: subj, Pred: PropIdentifier, Obj: lit})
	}
	if r.Link != "" {
		lit, _ := rdf.NewLiteral(r.Link)
		ts = append(ts, rdf.Triple{Subj: subj, Pred: PropPublicURL, Obj: lit})
	}
	for i, e := range r.fields {
		node, err := rdf.NewBlank(fmt.Sprintf("f%d", i))
		if err != nil {
			return nil, err
		}
		ts = append(ts, rdf.Triple{Subj: subj, Pred: e.name.Property(), Obj: node})
		ts = append(ts, e.field.triples(node)...)
	}
	return ts, nil
}

// subjectNode is the record IRI if one can be derived, else a blank node.
func (r *Record) subjectNode() (rdf.Subject, error) {
	if r.Catalog != nil && r.Catalog.IRIPrefix != "" && r.Identifier != "" {
		iri, err := r.Catalog.IdentifierToIRI(r.Identifier)
		if err == nil {
			return rdf.NewIRI(iri)
		}
	}
	return rdf.NewBlank("record")
}

// WriteGraph serializes the record graph to w in the given RDF format.
func (r *Record) WriteGraph(w io.Writer, format rdf.Format) error {
	ts, err := r.Triples()
	if err != nil {
		return err
	}
	enc := rdf.NewTripleEncoder(w, format)
	for _, t := range ts {
		if err := enc.Encode(t); err != nil {
			return err
		}
	}
	return enc.Close()
}
