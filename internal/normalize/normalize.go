// file: internal/normalize/normalize.go
// version: 1.0.0
// guid: 8c9d0e1f-2a3b-4c5d-6e7f-8a9b0c1d2e3f

// Package normalize derives interpreted forms for field values. The
// original source text is never altered; a failed normalization simply
// leaves the field without a normalized form.
package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/language"

	"github.com/edpop/explorer/internal/edpoprec"
)

// Result reports the outcome of a normalization attempt.
type Result int

const (
	Success Result = iota
	NoData
	Fail
)

// Language interprets the field text as a language tag or code and
// normalizes it to the ISO 639-3 code.
func Language(f edpoprec.Field) (edpoprec.Field, Result) {
	text := strings.TrimSpace(f.Original)
	if text == "" {
		return f, NoData
	}
	tag, err := language.Parse(text)
	if err != nil {
		return f, Fail
	}
	base, conf := tag.Base()
	if conf == language.No {
		return f, Fail
	}
	return f.WithNormalized(base.ISO3()), Success
}

// Apply derives the normalized form appropriate for a field name.
// Fields without a normalizer pass through unchanged.
func Apply(name edpoprec.FieldName, f edpoprec.Field) edpoprec.Field {
	switch name {
	case edpoprec.FieldLanguage:
		f, _ = Language(f)
	case edpoprec.FieldDating:
		f, _ = Year(f)
	}
	return f
}

var yearRe = regexp.MustCompile(`\d{3,4}`)

// Year extracts the first plausible year from a dating string, such as
// "MDCXII [1612]" or "printed in the yeare 1648".
func Year(f edpoprec.Field) (edpoprec.Field, Result) {
	if strings.TrimSpace(f.Original) == "" {
		return f, NoData
	}
	year := yearRe.FindString(f.Original)
	if year == "" {
		return f, Fail
	}
	return f.WithNormalized(year), Success
}
