// file: internal/readers/estc.go
// version: 1.1.0
// guid: 2d3e4f5a-6b7c-8d9e-0f1a-2b3c4d5e6f7a

package readers

import (
	"github.com/edpop/explorer/internal/cerl"
	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/reader"
)

const estcBaseURL = "https://datb.cerl.org/estc"

func estcConvert(cat *edpoprec.Catalog) cerl.Convert {
	return func(row map[string]any) (*edpoprec.Record, error) {
		rec := edpoprec.NewRecord(cat)
		rec.Raw = edpoprec.MapData(row)
		rec.Identifier, _ = row["id"].(string)
		if rec.Identifier != "" {
			rec.Link = estcBaseURL + "/" + rec.Identifier
		}
		return rec, nil
	}
}

func init() {
	cat := catalog("estc", "English Short Title Catalogue",
		"Catalogue of works published between 1473 and 1800 in the British "+
			"Isles and North America",
		edpoprec.Bibliographical)
	cfg := func(env Env) cerl.Config {
		return cerl.Config{
			Catalog:  cat,
			BaseURL:  env.endpoint("estc", estcBaseURL),
			Convert:  estcConvert(cat),
			PageSize: env.PageSize,
		}
	}
	register(Entry{
		Name:        "estc",
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return cerl.NewSession(cfg(env), env.Doer), nil
		},
		GetByIdentifier: func(env Env, id string) (*edpoprec.Record, error) {
			return cerl.GetByIdentifier(cfg(env), env.Doer, id)
		},
	})
}
