// file: internal/readers/vd.go
// version: 1.1.0
// guid: 5c6d7e8f-9a0b-1c2d-3e4f-5a6b7c8d9e0f

package readers

import (
	"fmt"
	"strings"

	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/reader"
	"github.com/edpop/explorer/internal/sru"
)

// The four VD catalogues (Verzeichnis der Drucke) share the MARC21
// layout but differ in endpoint and in how record links are built.

func init() {
	registerVD16()
	registerVD17()
	registerVD18()
	registerVDLied()
}

func registerVD16() {
	cat := catalog("vd16", "Verzeichnis Deutscher Drucke des 16. Jahrhunderts (VD16)",
		"Bibliography of sixteenth century prints from the German speaking countries",
		edpoprec.Bibliographical)
	register(Entry{
		Name:        "vd16",
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return sru.NewSession(sru.Config{
				Catalog:  cat,
				Endpoint: env.endpoint("vd16", "http://bvbr.bib-bvb.de:5661/bvb01sru"),
				Version:  "1.1",
				// The endpoint combines multiple databases; restrict
				// to VD16.
				Transform: func(q string) string {
					return fmt.Sprintf("VD16 and (%s)", q)
				},
				Convert: sru.Marc21Converter(cat, sru.DefaultMarc21Mapping(), sru.Marc21Hooks{
					Identifier: func(d *sru.Marc21Data) string {
						if f, ok := d.First("024"); ok {
							return f.Subfield("a")
						}
						return ""
					},
					Link: func(d *sru.Marc21Data, id string) string {
						if id == "" {
							return ""
						}
						return "http://gateway-bayern.de/" + strings.ReplaceAll(id, " ", "+")
					},
				}),
				PageSize: env.PageSize,
			}, env.Doer), nil
		},
	})
}

func registerVD17() {
	cat := catalog("vd17", "Verzeichnis Deutscher Drucke des 17. Jahrhunderts (VD17)",
		"Bibliography of seventeenth century prints from the German speaking countries",
		edpoprec.Bibliographical)
	register(Entry{
		Name:        "vd17",
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return sru.NewSession(sru.Config{
				Catalog:  cat,
				Endpoint: env.endpoint("vd17", "http://sru.k10plus.de/vd17"),
				Version:  "1.1",
				Convert: sru.Marc21Converter(cat, sru.DefaultMarc21Mapping(), sru.Marc21Hooks{
					Identifier: func(d *sru.Marc21Data) string {
						if f, ok := d.First("024"); ok {
							return f.Subfield("a")
						}
						return ""
					},
					Link: func(d *sru.Marc21Data, id string) string {
						if id == "" {
							return ""
						}
						return "https://kxp.k10plus.de/DB=1.28/CMD?ACT=SRCHA&IKT=8079&TRM=%27" +
							id + "%27"
					},
				}),
				PageSize: env.PageSize,
			}, env.Doer), nil
		},
	})
}

func registerVD18() {
	cat := catalog("vd18", "Verzeichnis Deutscher Drucke des 18. Jahrhunderts (VD18)",
		"Bibliography of eighteenth century prints from the German speaking countries",
		edpoprec.Bibliographical)
	register(Entry{
		Name:        "vd18",
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return sru.NewSession(sru.Config{
				Catalog:  cat,
				Endpoint: env.endpoint("vd18", "http://sru.k10plus.de/vd18"),
				Version:  "1.1",
				Convert: sru.Marc21Converter(cat, sru.DefaultMarc21Mapping(), sru.Marc21Hooks{
					Identifier: vd18Identifier,
					Link: func(d *sru.Marc21Data, id string) string {
						if id == "" {
							return ""
						}
						return "https://kxp.k10plus.de/DB=1.65/SET=1/TTL=1/CMD?ACT=SRCHA&" +
							"IKT=1016&SRT=YOP&TRM=" + id +
							"&ADI_MAT=B&MATCFILTER=Y&MATCSET=Y&ADI_MAT=T&REC=*"
					},
				}),
				PageSize: env.PageSize,
			}, env.Doer), nil
		},
	})
}

// vd18Identifier finds the VD18 number. Field 024 repeats; the right
// occurrence has subfield 2 set to "vd18" and carries the number in
// subfield a with a "VD18 " prefix.
func vd18Identifier(d *sru.Marc21Data) string {
	for _, f := range d.All("024") {
		if f.Subfield("2") != "vd18" {
			continue
		}
		if v := f.Subfield("a"); len(v) > 5 {
			return v[5:]
		}
	}
	return ""
}

func registerVDLied() {
	cat := catalog("vdlied", "Verzeichnis der deutschsprachigen Liedflugschriften (VDLied)",
		"Bibliography of German song pamphlets",
		edpoprec.Bibliographical)
	register(Entry{
		Name:        "vdlied",
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return sru.NewSession(sru.Config{
				Catalog:  cat,
				Endpoint: env.endpoint("vdlied", "http://sru.gbv.de/vdlied"),
				Version:  "1.1",
				Convert: sru.Marc21Converter(cat, sru.DefaultMarc21Mapping(), sru.Marc21Hooks{
					Identifier: func(d *sru.Marc21Data) string {
						return d.ControlFields["001"]
					},
					Link: func(d *sru.Marc21Data, id string) string {
						if id == "" {
							return ""
						}
						return "https://gso.gbv.de/DB=1.60/PPNSET?PPN=" + id
					},
				}),
				PageSize: env.PageSize,
			}, env.Doer), nil
		},
	})
}
