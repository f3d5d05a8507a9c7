// file: internal/readers/stcn.go
// version: 1.1.0
// guid: 0b1c2d3e-4f5a-6b7c-8d9e-0f1a2b3c4d5e

package readers

import (
	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/reader"
	"github.com/edpop/explorer/internal/sparql"
)

const stcnEndpoint = "http://data.bibliotheken.nl/sparql"

func init() {
	cat := &edpoprec.Catalog{
		URI:         "https://edpop.hum.uu.nl/readers/stcn",
		ShortName:   "Short-Title Catalogue Netherlands (STCN)",
		Description: "National bibliography of The Netherlands until 1801",
		Kind:        edpoprec.Bibliographical,
		// STCN records have stable IRIs in the national dataset.
		IRIPrefix: "http://data.bibliotheken.nl/id/nbt/",
	}
	register(Entry{
		Name:        "stcn",
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return sparql.NewSession(sparql.Config{
				Catalog:  cat,
				Endpoint: env.endpoint("stcn", stcnEndpoint),
				Prefixes: "PREFIX schema: <http://schema.org/>\n",
				Filter: "?s schema:mainEntityOfPage/schema:isPartOf " +
					"<http://data.bibliotheken.nl/id/dataset/stcn> .",
				Timeout:  env.Timeout,
				PageSize: env.PageSize,
			}), nil
		},
		Enrich: func(env Env, rec *edpoprec.Record) error {
			return sparql.FetchDetails(env.endpoint("stcn", stcnEndpoint), env.Timeout, rec)
		},
	})
}
