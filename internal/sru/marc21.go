// file: internal/sru/marc21.go
// version: 1.3.0
// guid: 6f7a8b9c-0d1e-2f3a-4b5c-6d7e8f9a0b1c

package sru

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/normalize"
)

// Marc21Subfield is one $-coded subfield of a data field.
type Marc21Subfield struct {
	Code  string
	Value string
}

// Marc21DataField is one tagged variable field of a MARC21 record.
type Marc21DataField struct {
	Tag       string
	Ind1      string
	Ind2      string
	Subfields []Marc21Subfield
}

// Subfield returns the first subfield with the given code, or "".
func (f Marc21DataField) Subfield(code string) string {
	for _, sf := range f.Subfields {
		if sf.Code == code {
			return sf.Value
		}
	}
	return ""
}

// Subfields returns all values of the given subfield code, in order.
func (f Marc21DataField) AllSubfields(code string) []string {
	var out []string
	for _, sf := range f.Subfields {
		if sf.Code == code {
			out = append(out, sf.Value)
		}
	}
	return out
}

func (f Marc21DataField) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s%s", f.Tag, orHash(f.Ind1), orHash(f.Ind2))
	for _, sf := range f.Subfields {
		fmt.Fprintf(&b, " $%s %s", sf.Code, sf.Value)
	}
	return b.String()
}

func orHash(ind string) string {
	if strings.TrimSpace(ind) == "" {
		return "#"
	}
	return ind
}

// Marc21Data is a parsed MARC21 record.
type Marc21Data struct {
	Leader        string
	ControlFields map[string]string
	DataFields    []Marc21DataField
}

// First returns the first data field with the given tag.
func (d *Marc21Data) First(tag string) (Marc21DataField, bool) {
	for _, f := range d.DataFields {
		if f.Tag == tag {
			return f, true
		}
	}
	return Marc21DataField{}, false
}

// All returns all data fields with the given tag, in record order.
func (d *Marc21Data) All(tag string) []Marc21DataField {
	var out []Marc21DataField
	for _, f := range d.DataFields {
		if f.Tag == tag {
			out = append(out, f)
		}
	}
	return out
}

// ToMap implements edpoprec.RawData with the full parsed record,
// including fields the normalized view does not cover.
func (d *Marc21Data) ToMap() map[string]any {
	fields := make([]map[string]any, 0, len(d.DataFields))
	for _, f := range d.DataFields {
		subs := make(map[string][]string)
		for _, sf := range f.Subfields {
			subs[sf.Code] = append(subs[sf.Code], sf.Value)
		}
		entry := map[string]any{
			"tag":       f.Tag,
			"ind1":      f.Ind1,
			"ind2":      f.Ind2,
			"subfields": subs,
		}
		if desc, ok := marc21FieldNames[f.Tag]; ok {
			entry["description"] = desc
		}
		fields = append(fields, entry)
	}
	m := map[string]any{
		"leader":     d.Leader,
		"datafields": fields,
	}
	if len(d.ControlFields) > 0 {
		cf := make(map[string]any, len(d.ControlFields))
		for k, v := range d.ControlFields {
			cf[k] = v
		}
		m["controlfields"] = cf
	}
	return m
}

// marc21FieldNames labels the tags that commonly occur in the
// catalogues served here, for raw display purposes.
var marc21FieldNames = map[string]string{
	"020": "International Standard Book Number",
	"026": "Fingerprint Identifier",
	"035": "System Control Number",
	"040": "Cataloging Source",
	"041": "Language Code",
	"100": "Main Entry - Personal Name",
	"110": "Main Entry - Corporate Name",
	"240": "Uniform Title",
	"245": "Title Statement",
	"246": "Varying Form of Title",
	"264": "Production, Publication, Distribution, Manufacture, and Copyright Notice",
	"300": "Physical Description",
	"500": "General Note",
	"700": "Added Entry - Personal Name",
	"710": "Added Entry - Corporate Name",
	"852": "Location",
}

type marcXMLRecord struct {
	XMLName       xml.Name `xml:"record"`
	Leader        string   `xml:"leader"`
	ControlFields []struct {
		Tag   string `xml:"tag,attr"`
		Value string `xml:",chardata"`
	} `xml:"controlfield"`
	DataFields []struct {
		Tag       string `xml:"tag,attr"`
		Ind1      string `xml:"ind1,attr"`
		Ind2      string `xml:"ind2,attr"`
		Subfields []struct {
			Code  string `xml:"code,attr"`
			Value string `xml:",chardata"`
		} `xml:"subfield"`
	} `xml:"datafield"`
}

// ParseMarc21 parses the MARCXML payload of one SRU record.
func ParseMarc21(inner []byte) (*Marc21Data, error) {
	var raw marcXMLRecord
	if err := xml.Unmarshal(inner, &raw); err != nil {
		return nil, fmt.Errorf("parsing MARC21 record: %w", err)
	}
	d := &Marc21Data{
		Leader:        strings.TrimSpace(raw.Leader),
		ControlFields: make(map[string]string, len(raw.ControlFields)),
	}
	for _, cf := range raw.ControlFields {
		d.ControlFields[cf.Tag] = strings.TrimSpace(cf.Value)
	}
	for _, df := range raw.DataFields {
		f := Marc21DataField{Tag: df.Tag, Ind1: df.Ind1, Ind2: df.Ind2}
		for _, sf := range df.Subfields {
			f.Subfields = append(f.Subfields, Marc21Subfield{
				Code:  sf.Code,
				Value: strings.TrimSpace(sf.Value),
			})
		}
		d.DataFields = append(d.DataFields, f)
	}
	return d, nil
}

// FieldRule maps one normalized field onto a MARC21 tag and subfield.
type FieldRule struct {
	Tag      string
	Subfield string
	// Repeatable emits one normalized field per occurrence instead of
	// only the first.
	Repeatable bool
}

// Mapping is a declarative table from normalized field names to MARC21
// locations. Catalogues start from DefaultMarc21Mapping and override
// entries where their cataloguing practice differs.
type Mapping map[edpoprec.FieldName]FieldRule

// DefaultMarc21Mapping covers the common MARC21 bibliographic layout.
func DefaultMarc21Mapping() Mapping {
	return Mapping{
		edpoprec.FieldTitle:               {Tag: "245", Subfield: "a"},
		edpoprec.FieldAlternativeTitle:    {Tag: "246", Subfield: "a"},
		edpoprec.FieldContributor:         {Tag: "100", Subfield: "a", Repeatable: true},
		edpoprec.FieldPublisherOrPrinter:  {Tag: "264", Subfield: "b"},
		edpoprec.FieldPlaceOfPublication:  {Tag: "264", Subfield: "a"},
		edpoprec.FieldDating:              {Tag: "264", Subfield: "c"},
		edpoprec.FieldLanguage:            {Tag: "041", Subfield: "a"},
		edpoprec.FieldExtent:              {Tag: "300", Subfield: "a"},
		edpoprec.FieldPhysicalDescription: {Tag: "300", Subfield: "b"},
		edpoprec.FieldSize:                {Tag: "300", Subfield: "c"},
		edpoprec.FieldFingerprint:         {Tag: "026", Subfield: "e"},
	}
}

// Marc21Hooks customize record construction beyond the mapping table.
type Marc21Hooks struct {
	// Identifier extracts the record identifier; required.
	Identifier func(d *Marc21Data) string
	// Link builds the public URL for the record; optional.
	Link func(d *Marc21Data, identifier string) string
	// After runs over the finished record for catalogue-specific
	// adjustments; optional.
	After func(d *Marc21Data, rec *edpoprec.Record)
}

// Marc21Converter builds a Convert function that parses MARCXML and
// applies a mapping table.
func Marc21Converter(cat *edpoprec.Catalog, mapping Mapping, hooks Marc21Hooks) Convert {
	return func(raw RawRecord) (*edpoprec.Record, error) {
		d, err := ParseMarc21(raw.Inner)
		if err != nil {
			return nil, err
		}
		rec := edpoprec.NewRecord(cat)
		rec.Raw = d
		if hooks.Identifier != nil {
			rec.Identifier = hooks.Identifier(d)
		}
		if hooks.Link != nil {
			rec.Link = hooks.Link(d, rec.Identifier)
		}
		for name, rule := range mapping {
			if rule.Repeatable {
				for _, f := range d.All(rule.Tag) {
					for _, v := range f.AllSubfields(rule.Subfield) {
						rec.AddField(name, normalize.Apply(name, edpoprec.NewField(v)))
					}
				}
				continue
			}
			if f, ok := d.First(rule.Tag); ok {
				if v := f.Subfield(rule.Subfield); v != "" {
					rec.SetField(name, normalize.Apply(name, edpoprec.NewField(v)))
				}
			}
		}
		if hooks.After != nil {
			hooks.After(d, rec)
		}
		return rec, nil
	}
}
