// file: internal/readers/cerlthesaurus.go
// version: 1.1.0
// guid: 9a0b1c2d-3e4f-5a6b-7c8d-9e0f1a2b3c4d

package readers

import (
	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/reader"
	"github.com/edpop/explorer/internal/sru"
)

func init() {
	cat := catalog("ct", "CERL Thesaurus",
		"Authority file of place, printer and author names as found in "+
			"early printed material",
		edpoprec.Generic)
	register(Entry{
		Name:        "ct",
		Aliases:     []string{"cerlthesaurus"},
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return sru.NewSession(sru.Config{
				Catalog:  cat,
				Endpoint: env.endpoint("ct", "https://data.cerl.org/thesaurus/_sru"),
				Version:  "1.2",
				Convert: sru.GenericConverter(cat, sru.GenericHooks{
					Identifier: func(elems map[string][]string) string {
						if ids := elems["id"]; len(ids) > 0 {
							return ids[0]
						}
						return ""
					},
					Link: func(_ map[string][]string, id string) string {
						if id == "" {
							return ""
						}
						return "https://data.cerl.org/thesaurus/" + id
					},
				}),
				PageSize: env.PageSize,
			}, env.Doer), nil
		},
	})
}
