// file: internal/readers/hpb.go
// version: 1.1.0
// guid: 4b5c6d7e-8f9a-0b1c-2d3e-4f5a6b7c8d9e

package readers

import (
	"strings"

	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/reader"
	"github.com/edpop/explorer/internal/sru"
)

const (
	hpbEndpoint = "http://sru.k10plus.de/hpb"
	hpbLink     = "http://hpb.cerl.org/record/"
)

// hpbIdentifier finds the CERL record id. It lives in field 035
// subfield a with a (CERL) prefix; the field occurs more than once.
func hpbIdentifier(d *sru.Marc21Data) string {
	for _, f := range d.All("035") {
		if v := f.Subfield("a"); strings.HasPrefix(v, "(CERL)") {
			return strings.TrimPrefix(v, "(CERL)")
		}
	}
	return ""
}

func init() {
	cat := catalog("hpb", "Heritage of the Printed Book Database",
		"Bibliographic records from major European and North American "+
			"research libraries covering the hand-press period, ca. 1455-1830",
		edpoprec.Bibliographical)
	register(Entry{
		Name:        "hpb",
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return sru.NewSession(sru.Config{
				Catalog:  cat,
				Endpoint: env.endpoint("hpb", hpbEndpoint),
				Version:  "1.1",
				Convert: sru.Marc21Converter(cat, sru.DefaultMarc21Mapping(), sru.Marc21Hooks{
					Identifier: hpbIdentifier,
					Link: func(d *sru.Marc21Data, id string) string {
						if id == "" {
							return ""
						}
						return hpbLink + id
					},
				}),
				PageSize: env.PageSize,
			}, env.Doer), nil
		},
	})
}
