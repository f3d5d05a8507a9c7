// file: internal/readers/ustc.go
// version: 1.1.0
// guid: 4f5a6b7c-8d9e-0f1a-2b3c-4d5e6f7a8b9c

package readers

import (
	"fmt"

	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/localdb"
	"github.com/edpop/explorer/internal/normalize"
	"github.com/edpop/explorer/internal/reader"
)

var ustcSpec = localdb.FileSpec{
	Catalog:  "USTC",
	Filename: "ustc.sqlite3",
	Hint:     "Obtain the file from the project team and place it there.",
}

// Substring search over title and all author columns. Full text search
// would serve better, but the flat LIKE matches how the data is
// actually explored.
const ustcSelect = `SELECT E.* FROM editions E
WHERE E.std_title LIKE ?1 ESCAPE '\'
OR E.author_name_1 LIKE ?1 ESCAPE '\'
OR E.author_name_2 LIKE ?1 ESCAPE '\'
OR E.author_name_3 LIKE ?1 ESCAPE '\'
OR E.author_name_4 LIKE ?1 ESCAPE '\'
OR E.author_name_5 LIKE ?1 ESCAPE '\'
OR E.author_name_6 LIKE ?1 ESCAPE '\'
OR E.author_name_7 LIKE ?1 ESCAPE '\'
OR E.author_name_8 LIKE ?1 ESCAPE '\'
ORDER BY E.id LIMIT ?2 OFFSET ?3`

const ustcCount = `SELECT COUNT(*) FROM editions E
WHERE E.std_title LIKE ?1 ESCAPE '\'
OR E.author_name_1 LIKE ?1 ESCAPE '\'
OR E.author_name_2 LIKE ?1 ESCAPE '\'
OR E.author_name_3 LIKE ?1 ESCAPE '\'
OR E.author_name_4 LIKE ?1 ESCAPE '\'
OR E.author_name_5 LIKE ?1 ESCAPE '\'
OR E.author_name_6 LIKE ?1 ESCAPE '\'
OR E.author_name_7 LIKE ?1 ESCAPE '\'
OR E.author_name_8 LIKE ?1 ESCAPE '\'`

func ustcConvert(cat *edpoprec.Catalog) localdb.SQLConvert {
	return func(row map[string]any) (*edpoprec.Record, error) {
		rec := edpoprec.NewRecord(cat)
		rec.Raw = edpoprec.MapData(row)
		str := func(col string) string {
			switch v := row[col].(type) {
			case string:
				return v
			case int64:
				return fmt.Sprintf("%d", v)
			}
			return ""
		}
		rec.Identifier = str("sn")
		if rec.Identifier != "" {
			rec.Link = "https://www.ustc.ac.uk/editions/" + rec.Identifier
		}
		rec.SetField(edpoprec.FieldTitle, edpoprec.NewField(str("std_title")))
		for i := 1; i <= 8; i++ {
			rec.AddField(edpoprec.FieldContributor,
				edpoprec.NewField(str(fmt.Sprintf("author_name_%d", i))))
		}
		rec.SetField(edpoprec.FieldPublisherOrPrinter, edpoprec.NewField(str("printer_name_1")))
		rec.SetField(edpoprec.FieldPlaceOfPublication, edpoprec.NewField(str("place")))
		rec.SetField(edpoprec.FieldDating,
			normalize.Apply(edpoprec.FieldDating, edpoprec.NewField(str("year"))))
		for i := 1; i <= 4; i++ {
			rec.AddField(edpoprec.FieldLanguage,
				normalize.Apply(edpoprec.FieldLanguage,
					edpoprec.NewField(str(fmt.Sprintf("language_%d", i)))))
		}
		rec.SetField(edpoprec.FieldExtent, edpoprec.NewField(str("pagination")))
		return rec, nil
	}
}

func init() {
	cat := &edpoprec.Catalog{
		URI:         "https://dhstatic.hum.uu.nl/edpop-explorer/catalogs/ustc",
		ShortName:   "Universal Short Title Catalogue (USTC)",
		Description: "Collective database of European print to 1700",
		Kind:        edpoprec.Bibliographical,
	}
	register(Entry{
		Name:        "ustc",
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return localdb.NewSQLSession(localdb.SQLConfig{
				Catalog:     cat,
				Spec:        ustcSpec,
				DataDir:     env.DataDir,
				CountQuery:  ustcCount,
				SelectQuery: ustcSelect,
				Convert:     ustcConvert(cat),
				PageSize:    env.PageSize,
			}), nil
		},
	})
}
