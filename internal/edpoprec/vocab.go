// file: internal/edpoprec/vocab.go
// version: 1.0.0
// guid: 3f8a1c2d-4b5e-6f7a-8b9c-0d1e2f3a4b5c

package edpoprec

import "github.com/knakk/rdf"

// Namespaces used across the package.
const (
	NS         = "https://dhstatic.hum.uu.nl/edpop-records/latest/"
	NSRelators = "http://id.loc.gov/vocabulary/relators/"
	NSSchema   = "https://schema.org/"
	nsRDF      = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
)

func mustIRI(s string) rdf.IRI {
	iri, err := rdf.NewIRI(s)
	if err != nil {
		panic("edpoprec: invalid IRI constant: " + s)
	}
	return iri
}

// Prop returns the edpoprec property IRI for a local name.
func Prop(local string) rdf.IRI {
	return mustIRI(NS + local)
}

// RDF classes and properties of the EDPOP Record Ontology.
var (
	RDFType = mustIRI(nsRDF + "type")

	ClassRecord                 = Prop("Record")
	ClassBibliographicalRecord  = Prop("BibliographicalRecord")
	ClassBiographicalRecord     = Prop("BiographicalRecord")
	ClassField                  = Prop("Field")
	ClassCatalog                = Prop("Catalog")
	ClassBibliographicalCatalog = Prop("BibliographicalCatalog")
	ClassBiographicalCatalog    = Prop("BiographicalCatalog")

	PropFromCatalog    = Prop("fromCatalog")
	PropIdentifier     = Prop("identifier")
	PropPublicURL      = Prop("publicURL")
	PropOriginalText   = Prop("originalText")
	PropNormalizedText = Prop("normalizedText")
	PropUnknown        = Prop("unknown")

	SchemaName        = mustIRI(NSSchema + "name")
	SchemaDescription = mustIRI(NSSchema + "description")
	SchemaIdentifier  = mustIRI(NSSchema + "identifier")
)
