// file: internal/edpoprec/field.go
// version: 1.1.0
// guid: 9c0d1e2f-3a4b-5c6d-7e8f-9a0b1c2d3e4f

package edpoprec

import "github.com/knakk/rdf"

// FieldName identifies a normalized metadata field on a record.
type FieldName string

// Bibliographical field names.
const (
	FieldTitle               FieldName = "title"
	FieldAlternativeTitle    FieldName = "alternativeTitle"
	FieldContributor         FieldName = "contributor"
	FieldPublisherOrPrinter  FieldName = "publisherOrPrinter"
	FieldPlaceOfPublication  FieldName = "placeOfPublication"
	FieldPlaceOfPrinting     FieldName = "placeOfPrinting"
	FieldBookseller          FieldName = "bookseller"
	FieldDating              FieldName = "dating"
	FieldLanguage            FieldName = "language"
	FieldExtent              FieldName = "extent"
	FieldSize                FieldName = "size"
	FieldPhysicalDescription FieldName = "physicalDescription"
	FieldFingerprint         FieldName = "fingerprint"
	FieldHolding             FieldName = "holding"
	FieldLocation            FieldName = "location"
)

// Biographical field names.
const (
	FieldPersonName       FieldName = "name"
	FieldVariantName      FieldName = "variantName"
	FieldGender           FieldName = "gender"
	FieldPlaceOfBirth     FieldName = "placeOfBirth"
	FieldPlaceOfDeath     FieldName = "placeOfDeath"
	FieldPlaceOfActivity  FieldName = "placeOfActivity"
	FieldTimespan         FieldName = "timespan"
	FieldActivityTimespan FieldName = "activityTimespan"
	FieldActivity         FieldName = "activity"
)

// Property returns the edpoprec property IRI for this field name. A
// person's name is expressed as edpoprec:title, the record's display
// title, like any other record.
func (n FieldName) Property() rdf.IRI {
	if n == FieldPersonName {
		return Prop("title")
	}
	return Prop(string(n))
}

// Field is one normalized metadata value. Original always carries the
// source text unmodified; Normalized is empty when no interpretation
// exists. A Field is a value type and is never mutated after creation.
type Field struct {
	Original   string
	Normalized string
	Unknown    bool
}

// NewField creates a Field from raw source text.
func NewField(original string) Field {
	return Field{Original: original}
}

// WithNormalized returns a copy of the field carrying an interpreted form.
func (f Field) WithNormalized(text string) Field {
	f.Normalized = text
	return f
}

// IsZero reports whether the field carries no text at all.
func (f Field) IsZero() bool {
	return f.Original == "" && f.Normalized == "" && !f.Unknown
}

// String prefers the normalized form and falls back to the original text.
func (f Field) String() string {
	if f.Normalized != "" {
		return f.Normalized
	}
	return f.Original
}

// triples renders the field as an edpoprec:Field value object rooted at
// the given blank node.
func (f Field) triples(node rdf.Blank) []rdf.Triple {
	ts := []rdf.Triple{
		{Subj: node, Pred: RDFType, Obj: ClassField},
	}
	if f.Original != "" {
		lit, _ := rdf.NewLiteral(f.Original)
		ts = append(ts, rdf.Triple{Subj: node, Pred: PropOriginalText, Obj: lit})
	}
	if f.Normalized != "" {
		lit, _ := rdf.NewLiteral(f.Normalized)
		ts = append(ts, rdf.Triple{Subj: node, Pred: PropNormalizedText, Obj: lit})
	}
	if f.Unknown {
		lit, _ := rdf.NewLiteral(true)
		ts = append(ts, rdf.Triple{Subj: node, Pred: PropUnknown, Obj: lit})
	}
	return ts
}
