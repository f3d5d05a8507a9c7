// file: internal/readers/gallica.go
// version: 1.1.0
// guid: 6f7a8b9c-0d1e-2f3a-4b5c-6d7e8f901234

package readers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/normalize"
	"github.com/edpop/explorer/internal/reader"
	"github.com/edpop/explorer/internal/sru"
)

var mimeTypeRe = regexp.MustCompile(`^[a-z]+/[a-z]+$`)

// joined flattens repeated elements into one display string.
func joined(vs []string) string {
	return strings.Join(vs, " ; ")
}

func init() {
	cat := catalog("gallica", "Gallica",
		"Digital library of the Bibliothèque nationale de France and its partners",
		edpoprec.Bibliographical)
	register(Entry{
		Name:        "gallica",
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return sru.NewSession(sru.Config{
				Catalog:  cat,
				Endpoint: env.endpoint("gallica", "https://gallica.bnf.fr/SRU"),
				Version:  "1.2",
				Transform: func(q string) string {
					return fmt.Sprintf("gallica all %s", q)
				},
				Convert: sru.GenericConverter(cat, sru.GenericHooks{
					// The identifier elements mix visitable Gallica
					// URLs with other identifier types; the URL is
					// both the identifier and the link.
					Identifier: func(elems map[string][]string) string {
						for _, id := range elems["identifier"] {
							if strings.HasPrefix(id, "https://") {
								return id
							}
						}
						return ""
					},
					Link: func(_ map[string][]string, id string) string {
						return id
					},
					Fields: gallicaFields,
				}),
				PageSize: env.PageSize,
			}, env.Doer), nil
		},
	})
}

func gallicaFields(elems map[string][]string, rec *edpoprec.Record) {
	rec.SetField(edpoprec.FieldTitle, edpoprec.NewField(joined(elems["title"])))
	for _, creator := range elems["creator"] {
		rec.AddField(edpoprec.FieldContributor, edpoprec.NewField(creator))
	}
	rec.SetField(edpoprec.FieldDating,
		normalize.Apply(edpoprec.FieldDating, edpoprec.NewField(joined(elems["date"]))))
	for _, lang := range elems["language"] {
		rec.AddField(edpoprec.FieldLanguage,
			normalize.Apply(edpoprec.FieldLanguage, edpoprec.NewField(lang)))
	}
	rec.SetField(edpoprec.FieldPublisherOrPrinter, edpoprec.NewField(joined(elems["publisher"])))

	// The format elements mix the number of views, the MIME type and
	// the extent; keep the first entry that is neither of the former.
	for _, format := range elems["format"] {
		if strings.HasPrefix(format, "Nombre total de vues") || mimeTypeRe.MatchString(format) {
			continue
		}
		rec.SetField(edpoprec.FieldExtent, edpoprec.NewField(format))
		break
	}
}
