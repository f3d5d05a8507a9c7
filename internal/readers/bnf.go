// file: internal/readers/bnf.go
// version: 1.1.0
// guid: 6d7e8f9a-0b1c-2d3e-4f5a-6b7c8d9e0f1a

package readers

import (
	"fmt"

	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/reader"
	"github.com/edpop/explorer/internal/sru"
)

// bnfMapping adjusts the default table to the Intermarc layout the BnF
// catalogue delivers.
func bnfMapping() sru.Mapping {
	m := sru.DefaultMarc21Mapping()
	m[edpoprec.FieldTitle] = sru.FieldRule{Tag: "200", Subfield: "a"}
	m[edpoprec.FieldAlternativeTitle] = sru.FieldRule{Tag: "500", Subfield: "a"}
	m[edpoprec.FieldPublisherOrPrinter] = sru.FieldRule{Tag: "201", Subfield: "c"}
	m[edpoprec.FieldPlaceOfPublication] = sru.FieldRule{Tag: "210", Subfield: "a"}
	m[edpoprec.FieldDating] = sru.FieldRule{Tag: "210", Subfield: "d"}
	m[edpoprec.FieldLanguage] = sru.FieldRule{Tag: "101", Subfield: "a"}
	delete(m, edpoprec.FieldFingerprint)
	return m
}

func init() {
	cat := catalog("bnf", "Bibliothèque nationale de France",
		"General catalogue of the French national library",
		edpoprec.Bibliographical)
	register(Entry{
		Name:        "bnf",
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return sru.NewSession(sru.Config{
				Catalog:  cat,
				Endpoint: env.endpoint("bnf", "http://catalogue.bnf.fr/api/SRU"),
				Version:  "1.2",
				Transform: func(q string) string {
					return fmt.Sprintf("bib.anywhere all (%s)", q)
				},
				Convert: sru.Marc21Converter(cat, bnfMapping(), sru.Marc21Hooks{
					// Control field 003 holds the permalink; the
					// catalogue exposes no separate identifier.
					Link: func(d *sru.Marc21Data, _ string) string {
						return d.ControlFields["003"]
					},
				}),
				PageSize: env.PageSize,
			}, env.Doer), nil
		},
	})
}
