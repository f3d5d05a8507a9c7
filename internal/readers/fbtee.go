// file: internal/readers/fbtee.go
// version: 1.1.0
// guid: 3e4f5a6b-7c8d-9e0f-1a2b-3c4d5e6f7a8b

package readers

import (
	"fmt"
	"strings"

	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/localdb"
	"github.com/edpop/explorer/internal/normalize"
	"github.com/edpop/explorer/internal/reader"
)

const fbteeLink = "http://fbtee.uws.edu.au/stn/interface/browse.php?t=book&id=%s"

var fbteeSpec = localdb.FileSpec{
	Catalog:     "FBTEE",
	Filename:    "cl.sqlite3",
	DownloadURL: "https://dhstatic.hum.uu.nl/edpop/cl.sqlite3",
	LicenseURL:  "https://dhstatic.hum.uu.nl/edpop/LICENSE.txt",
}

// Books repeat once per author in the join; aggregate the author names
// so each book is one row.
const fbteeSelect = `SELECT B.*, GROUP_CONCAT(A.author_name, '; ') AS authors
FROM books B
LEFT OUTER JOIN books_authors BA ON B.book_code = BA.book_code
LEFT OUTER JOIN authors A ON BA.author_code = A.author_code
WHERE B.full_book_title LIKE ?1 ESCAPE '\'
GROUP BY B.book_code ORDER BY B.book_code LIMIT ?2 OFFSET ?3`

const fbteeCount = `SELECT COUNT(*) FROM books
WHERE full_book_title LIKE ?1 ESCAPE '\'`

const fbteeByID = `SELECT B.*, GROUP_CONCAT(A.author_name, '; ') AS authors
FROM books B
LEFT OUTER JOIN books_authors BA ON B.book_code = BA.book_code
LEFT OUTER JOIN authors A ON BA.author_code = A.author_code
WHERE B.book_code = ?1
GROUP BY B.book_code`

func fbteeConvert(cat *edpoprec.Catalog) localdb.SQLConvert {
	return func(row map[string]any) (*edpoprec.Record, error) {
		rec := edpoprec.NewRecord(cat)
		rec.Raw = edpoprec.MapData(row)
		code, _ := row["book_code"].(string)
		rec.Identifier = code
		if code != "" {
			rec.Link = fmt.Sprintf(fbteeLink, code)
		}
		str := func(col string) string {
			s, _ := row[col].(string)
			return s
		}
		rec.SetField(edpoprec.FieldTitle, edpoprec.NewField(str("full_book_title")))
		for _, lang := range splitList(str("languages"), ", ") {
			rec.AddField(edpoprec.FieldLanguage,
				normalize.Apply(edpoprec.FieldLanguage, edpoprec.NewField(lang)))
		}
		rec.SetField(edpoprec.FieldExtent, edpoprec.NewField(str("pages")))
		rec.SetField(edpoprec.FieldPlaceOfPublication, edpoprec.NewField(str("stated_publication_places")))
		rec.SetField(edpoprec.FieldDating,
			normalize.Apply(edpoprec.FieldDating, edpoprec.NewField(str("stated_publication_years"))))
		rec.SetField(edpoprec.FieldPublisherOrPrinter, edpoprec.NewField(str("stated_publishers")))
		for _, author := range splitList(str("authors"), "; ") {
			rec.AddField(edpoprec.FieldContributor, edpoprec.NewField(author))
		}
		return rec, nil
	}
}

func splitList(s, sep string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, sep)
}

func init() {
	cat := catalog("fbtee", "French Book Trade in Enlightenment Europe (FBTEE)",
		"Database mapping the trade of the Société Typographique de "+
			"Neuchâtel, 1769-1794",
		edpoprec.Bibliographical)
	register(Entry{
		Name:        "fbtee",
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return localdb.NewSQLSession(localdb.SQLConfig{
				Catalog:     cat,
				Spec:        fbteeSpec,
				DataDir:     env.DataDir,
				CountQuery:  fbteeCount,
				SelectQuery: fbteeSelect,
				Convert:     fbteeConvert(cat),
				PageSize:    env.PageSize,
			}), nil
		},
		GetByIdentifier: func(env Env, id string) (*edpoprec.Record, error) {
			path, err := fbteeSpec.Resolve(env.DataDir)
			if err != nil {
				return nil, err
			}
			db, err := localdb.OpenSQLite(path)
			if err != nil {
				return nil, &reader.ReaderError{Catalog: "FBTEE", Err: err}
			}
			defer db.Close()
			rows, err := localdb.QueryRows(db, fbteeByID, id)
			if err != nil {
				return nil, &reader.ReaderError{Catalog: "FBTEE", Err: err}
			}
			if len(rows) == 0 {
				return nil, &reader.NotFoundError{Identifier: id}
			}
			return fbteeConvert(cat)(rows[0])
		},
		Download: func(env Env) (string, error) {
			return fbteeSpec.Download(env.DataDir, env.Doer)
		},
	})
}
