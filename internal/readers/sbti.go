// file: internal/readers/sbti.go
// version: 1.1.0
// guid: 1c2d3e4f-5a6b-7c8d-9e0f-1a2b3c4d5e6f

package readers

import (
	"fmt"

	"github.com/edpop/explorer/internal/cerl"
	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/reader"
)

const sbtiBaseURL = "https://data.cerl.org/sbti"

// sbtiName builds a display name from a heading or variant name
// object, which splits the name over firstname and name keys.
func sbtiName(obj map[string]any) string {
	firstname, _ := obj["firstname"].(string)
	name, _ := obj["name"].(string)
	switch {
	case firstname != "" && name != "":
		return fmt.Sprintf("%s %s", firstname, name)
	case name != "":
		return name
	}
	return ""
}

func sbtiConvert(cat *edpoprec.Catalog) cerl.Convert {
	return func(row map[string]any) (*edpoprec.Record, error) {
		rec := edpoprec.NewRecord(cat)
		rec.Raw = edpoprec.MapData(row)
		rec.Identifier, _ = row["id"].(string)
		if rec.Identifier == "" {
			rec.Identifier, _ = row["_id"].(string)
		}
		if rec.Identifier != "" {
			rec.Link = sbtiBaseURL + "/" + rec.Identifier
		}
		if headings, ok := row["heading"].([]any); ok && len(headings) > 0 {
			if obj, ok := headings[0].(map[string]any); ok {
				rec.SetField(edpoprec.FieldPersonName, edpoprec.NewField(sbtiName(obj)))
			}
		}
		if variants, ok := row["variantName"].([]any); ok {
			for _, v := range variants {
				if obj, ok := v.(map[string]any); ok {
					rec.AddField(edpoprec.FieldVariantName, edpoprec.NewField(sbtiName(obj)))
				}
			}
		}
		// sic: the upstream data misspells the key.
		if places, ok := row["placeOfActitivty"].([]any); ok {
			for _, p := range places {
				if obj, ok := p.(map[string]any); ok {
					if name, _ := obj["name"].(string); name != "" {
						rec.AddField(edpoprec.FieldPlaceOfActivity, edpoprec.NewField(name))
					}
				}
			}
		}
		if dates, ok := row["activityDates"].([]any); ok {
			for _, d := range dates {
				if obj, ok := d.(map[string]any); ok {
					if text := fmt.Sprintf("%v", obj["text"]); text != "" && text != "<nil>" {
						rec.AddField(edpoprec.FieldActivityTimespan, edpoprec.NewField(text))
					}
				}
			}
		}
		if activities, ok := row["activity"].([]any); ok {
			for _, a := range activities {
				if s, ok := a.(string); ok {
					rec.AddField(edpoprec.FieldActivity, edpoprec.NewField(s))
				}
			}
		}
		return rec, nil
	}
}

func init() {
	cat := catalog("sbti", "Scottish Book Trade Index (SBTI)",
		"An index of the names, trades and addresses of people involved "+
			"in printing in Scotland up to 1850",
		edpoprec.Biographical)
	cfg := func(env Env) cerl.Config {
		return cerl.Config{
			Catalog:  cat,
			BaseURL:  env.endpoint("sbti", sbtiBaseURL),
			Convert:  sbtiConvert(cat),
			PageSize: env.PageSize,
		}
	}
	register(Entry{
		Name:        "sbti",
		Description: cat.Description,
		Catalog:     cat,
		New: func(env Env) (*reader.Session, error) {
			return cerl.NewSession(cfg(env), env.Doer), nil
		},
		GetByIdentifier: func(env Env, id string) (*edpoprec.Record, error) {
			return cerl.GetByIdentifier(cfg(env), env.Doer, id)
		},
	})
}
