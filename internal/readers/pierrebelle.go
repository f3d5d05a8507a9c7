// file: internal/readers/pierrebelle.go
// version: 1.1.0
// guid: 6b7c8d9e-0f1a-2b3c-4d5e-6f7a8b9c0d1e

package readers

import (
	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/localdb"
	"github.com/edpop/explorer/internal/reader"
)

var pierreBelleSpec = localdb.FileSpec{
	Catalog:     "Pierre and Belle",
	Filename:    "biblio_pierrebelle.csv",
	DownloadURL: "https://dhstatic.hum.uu.nl/edpop/biblio_pierrebelle.csv",
}

func pierreBelleConvert(cat *edpoprec.Catalog) localdb.CSVConvert {
	return func(row map[string]string, _ int) (*edpoprec.Record, error) {
		rec := edpoprec.NewRecord(cat)
		rec.Raw = csvRaw(row)
		rec.Identifier = row["ID"]
		rec.SetField(edpoprec.FieldTitle, edpoprec.NewField(row["Shortened title"]))
		rec.SetField(edpoprec.FieldLanguage, edpoprec.NewField(row["Language"]))
		rec.SetField(edpoprec.FieldPublisherOrPrinter, edpoprec.NewField(row["Publisher"]))
		rec.SetField(edpoprec.FieldPlaceOfPublication, edpoprec.NewField(row["Place of publication"]))
		rec.SetField(edpoprec.FieldDating, edpoprec.NewField(row["Date"]))
		return rec, nil
	}
}

func init() {
	cat := catalog("pierre_belle", "Pierre and Belle",
		"Bibliography of early modern editions of Pierre de Provence et la "+
			"Belle Maguelonne (ca. 1470-ca. 1800)",
		edpoprec.Bibliographical)
	cfg := func(env Env) localdb.CSVConfig {
		return localdb.CSVConfig{
			Catalog: cat,
			Spec:    pierreBelleSpec,
			DataDir: env.DataDir,
			Comma:   ';',
			Convert: pierreBelleConvert(cat),
		}
	}
	register(Entry{
		Name:        "pb",
		Aliases:     []string{"pierrebelle"},
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return localdb.NewCSVSession(cfg(env)), nil
		},
		GetByIdentifier: func(env Env, id string) (*edpoprec.Record, error) {
			return localdb.CSVLookup(cfg(env), "ID", id)
		},
		Download: func(env Env) (string, error) {
			return pierreBelleSpec.Download(env.DataDir, env.Doer)
		},
	})
}
