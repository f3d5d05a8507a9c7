// file: internal/readers/dutchalmanacs.go
// version: 1.1.0
// guid: 5a6b7c8d-9e0f-1a2b-3c4d-5e6f7a8b9c0d

package readers

import (
	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/localdb"
	"github.com/edpop/explorer/internal/reader"
)

var dutchAlmanacsSpec = localdb.FileSpec{
	Catalog:     "Dutch Almanacs",
	Filename:    "biblio_dutchalmanacs.csv",
	DownloadURL: "https://dhstatic.hum.uu.nl/edpop/biblio_dutchalmanacs.csv",
}

func dutchAlmanacsConvert(cat *edpoprec.Catalog) localdb.CSVConvert {
	return func(row map[string]string, _ int) (*edpoprec.Record, error) {
		rec := edpoprec.NewRecord(cat)
		rec.Raw = csvRaw(row)
		rec.Identifier = row["ID"]
		rec.SetField(edpoprec.FieldDating, edpoprec.NewField(row["Jaar"]))
		rec.SetField(edpoprec.FieldPlaceOfPublication, edpoprec.NewField(row["Plaats uitgave"]))
		rec.SetField(edpoprec.FieldBookseller, edpoprec.NewField(row["Boekverkoper"]))
		rec.SetField(edpoprec.FieldContributor, edpoprec.NewField(row["Auteur"]))
		rec.SetField(edpoprec.FieldTitle, edpoprec.NewField(row["Titel"]))
		rec.SetField(edpoprec.FieldPhysicalDescription, edpoprec.NewField(row["Formaat"]))
		rec.SetField(edpoprec.FieldLocation, edpoprec.NewField(row["Vindplaats"]))
		rec.SetField(edpoprec.FieldPlaceOfPrinting, edpoprec.NewField(row["Plaats druk"]))
		rec.SetField(edpoprec.FieldPublisherOrPrinter, edpoprec.NewField(row["Drukker"]))
		return rec, nil
	}
}

// csvRaw keeps the full row as the record's raw payload.
func csvRaw(row map[string]string) edpoprec.MapData {
	raw := make(edpoprec.MapData, len(row))
	for k, v := range row {
		raw[k] = v
	}
	return raw
}

func init() {
	cat := catalog("dutch_almanacs", "Dutch Almanacs",
		"Bibliography of Dutch Almanacs 1570-1710",
		edpoprec.Bibliographical)
	cfg := func(env Env) localdb.CSVConfig {
		return localdb.CSVConfig{
			Catalog: cat,
			Spec:    dutchAlmanacsSpec,
			DataDir: env.DataDir,
			Comma:   ';',
			Convert: dutchAlmanacsConvert(cat),
		}
	}
	register(Entry{
		Name:        "dutalm",
		Aliases:     []string{"dutchalmanacs"},
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return localdb.NewCSVSession(cfg(env)), nil
		},
		GetByIdentifier: func(env Env, id string) (*edpoprec.Record, error) {
			return localdb.CSVLookup(cfg(env), "ID", id)
		},
		Download: func(env Env) (string, error) {
			return dutchAlmanacsSpec.Download(env.DataDir, env.Doer)
		},
	})
}
