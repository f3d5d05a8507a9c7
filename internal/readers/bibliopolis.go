// file: internal/readers/bibliopolis.go
// version: 1.0.0
// guid: 8b9c0d1e-2f3a-4b5c-6d7e-8f9012345678

package readers

import (
	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/reader"
	"github.com/edpop/explorer/internal/sru"
)

func init() {
	cat := catalog("bibliopolis", "Bibliopolis",
		"History of the printed book in the Netherlands",
		edpoprec.Bibliographical)
	register(Entry{
		Name:        "bibliopolis",
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return sru.NewSession(sru.Config{
				Catalog:  cat,
				Endpoint: env.endpoint("bibliopolis", "http://jsru.kb.nl/sru/sru"),
				Version:  "1.2",
				// Same KB SRU server as the general catalogue, with
				// its own collection parameter.
				Extra: kbCollection("Bibliopolis"),
				Convert: sru.GenericConverter(cat, sru.GenericHooks{
					Fields: bibliopolisFields,
				}),
				PageSize: env.PageSize,
			}, env.Doer), nil
		},
	})
}

// bibliopolisFields picks the display title. Records carry it either in
// the telterms mainEntry element or in a plain title element.
func bibliopolisFields(elems map[string][]string, rec *edpoprec.Record) {
	for _, name := range []string{"mainEntry", "title"} {
		if vs := elems[name]; len(vs) > 0 {
			rec.SetField(edpoprec.FieldTitle, edpoprec.NewField(vs[0]))
			return
		}
	}
}
