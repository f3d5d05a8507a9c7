// file: internal/readers/kb.go
// version: 1.1.0
// guid: 8f9a0b1c-2d3e-4f5a-6b7c-8d9e0f1a2b3c

package readers

import (
	"net/url"
	"strings"

	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/reader"
	"github.com/edpop/explorer/internal/sru"
)

const kbPPNPrefix = "GGC:AC:"

// kbCollection selects one collection on the shared KB SRU server.
func kbCollection(name string) url.Values {
	return url.Values{"x-collection": []string{name}}
}

// kbPPN derives the PPN from the OAI-PMH identifier element.
func kbPPN(elems map[string][]string) string {
	for _, id := range elems["OaiPmhIdentifier"] {
		if strings.HasPrefix(id, kbPPNPrefix) {
			return strings.TrimPrefix(id, kbPPNPrefix)
		}
	}
	return ""
}

func init() {
	cat := catalog("kb", "Koninklijke Bibliotheek",
		"General catalogue of the Dutch national library",
		edpoprec.Bibliographical)
	register(Entry{
		Name:        "kb",
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return sru.NewSession(sru.Config{
				Catalog:  cat,
				Endpoint: env.endpoint("kb", "http://jsru.kb.nl/sru"),
				Version:  "1.2",
				// The KB SRU requires x-collection as an additional
				// GET parameter.
				Extra: kbCollection("GGC"),
				Convert: sru.GenericConverter(cat, sru.GenericHooks{
					Identifier: kbPPN,
					Link: func(_ map[string][]string, id string) string {
						if id == "" {
							return ""
						}
						return "https://webggc.oclc.org/cbs/DB=2.37/PPN?PPN=" + id
					},
					Fields: func(elems map[string][]string, rec *edpoprec.Record) {
						// A multi-part title arrives as repeated
						// elements.
						rec.SetField(edpoprec.FieldTitle,
							edpoprec.NewField(strings.Join(elems["title"], " : ")))
					},
				}),
				PageSize: env.PageSize,
			}, env.Doer), nil
		},
	})
}
