// file: internal/normalize/normalize_test.go
// version: 1.0.0
// guid: 7e8f9a0b-1c2d-3e4f-5a6b-8c9d0e1f2a3d

package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edpop/explorer/internal/edpoprec"
)

func TestLanguage(t *testing.T) {
	tests := []struct {
		in         string
		normalized string
		result     Result
	}{
		{"lat", "lat", Success},
		{"fra", "fra", Success},
		{"nl", "nld", Success},
		{"de", "deu", Success},
		{"French", "", Fail},
		{"not a language", "", Fail},
		{"", "", NoData},
		{"  ", "", NoData},
	}
	for _, tt := range tests {
		f, res := Language(edpoprec.NewField(tt.in))
		assert.Equal(t, tt.result, res, "input %q", tt.in)
		assert.Equal(t, tt.normalized, f.Normalized, "input %q", tt.in)
		assert.Equal(t, tt.in, f.Original, "input %q", tt.in)
	}
}

func TestYear(t *testing.T) {
	tests := []struct {
		in         string
		normalized string
		result     Result
	}{
		{"1612", "1612", Success},
		{"MDCXII [1612]", "1612", Success},
		{"printed in the yeare 1648", "1648", Success},
		{"ca. 1500-1510", "1500", Success},
		{"987", "987", Success},
		{"no date", "", Fail},
		{"", "", NoData},
	}
	for _, tt := range tests {
		f, res := Year(edpoprec.NewField(tt.in))
		assert.Equal(t, tt.result, res, "input %q", tt.in)
		assert.Equal(t, tt.normalized, f.Normalized, "input %q", tt.in)
	}
}

func TestApply(t *testing.T) {
	f := Apply(edpoprec.FieldLanguage, edpoprec.NewField("la"))
	assert.Equal(t, "lat", f.Normalized)

	f = Apply(edpoprec.FieldDating, edpoprec.NewField("anno 1688"))
	assert.Equal(t, "1688", f.Normalized)

	// Fields without a normalizer pass through untouched.
	f = Apply(edpoprec.FieldTitle, edpoprec.NewField("Candide"))
	assert.Empty(t, f.Normalized)
	assert.Equal(t, "Candide", f.Original)
}
