// file: internal/readers/kvcs.go
// version: 1.1.0
// guid: 7c8d9e0f-1a2b-3c4d-5e6f-7a8b9c0d1e2f

package readers

import (
	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/localdb"
	"github.com/edpop/explorer/internal/reader"
)

var kvcsSpec = localdb.FileSpec{
	Catalog:     "KVCS",
	Filename:    "biblio_kvcs.csv",
	DownloadURL: "https://dhstatic.hum.uu.nl/edpop/biblio_kvcs.csv",
}

func kvcsConvert(cat *edpoprec.Catalog) localdb.CSVConvert {
	return func(row map[string]string, _ int) (*edpoprec.Record, error) {
		rec := edpoprec.NewRecord(cat)
		rec.Raw = csvRaw(row)
		rec.Identifier = row["ID"]
		rec.SetField(edpoprec.FieldPersonName, edpoprec.NewField(row["Name"]))
		rec.SetField(edpoprec.FieldGender, edpoprec.NewField(row["Gender"]))
		rec.SetField(edpoprec.FieldTimespan, edpoprec.NewField(row["Years of life"]))
		rec.SetField(edpoprec.FieldPlaceOfActivity, edpoprec.NewField(row["City"]))
		rec.SetField(edpoprec.FieldActivityTimespan, edpoprec.NewField(row["Years of activity"]))
		rec.SetField(edpoprec.FieldActivity,
			edpoprec.NewField(row["Kind of print and sales activities"]))
		return rec, nil
	}
}

func init() {
	cat := catalog("kvcs", "KVCS",
		"Drukkers & Uitgevers in KVCS",
		edpoprec.Biographical)
	cfg := func(env Env) localdb.CSVConfig {
		return localdb.CSVConfig{
			Catalog: cat,
			Spec:    kvcsSpec,
			DataDir: env.DataDir,
			Comma:   ';',
			Convert: kvcsConvert(cat),
		}
	}
	register(Entry{
		Name:        "kvcs",
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return localdb.NewCSVSession(cfg(env)), nil
		},
		GetByIdentifier: func(env Env, id string) (*edpoprec.Record, error) {
			return localdb.CSVLookup(cfg(env), "ID", id)
		},
		Download: func(env Env) (string, error) {
			return kvcsSpec.Download(env.DataDir, env.Doer)
		},
	})
}
