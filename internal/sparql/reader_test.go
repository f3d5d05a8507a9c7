// file: internal/sparql/reader_test.go
// version: 1.1.0
// guid: 0d1e2f3a-4b5c-6d7e-8f9a-1b2c3d4e5f6c

package sparql

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/reader"
)

func testBackend() *backend {
	return &backend{cfg: Config{
		Catalog: &edpoprec.Catalog{
			URI:       "http://example.com/test",
			ShortName: "Test",
		},
		Endpoint:     "http://example.com/sparql",
		Filter:       "?s a <http://schema.org/Book> .",
		Prefixes:     "PREFIX schema: <http://schema.org/>\n",
		NameProperty: "<http://schema.org/name>",
	}}
}

func TestTransformQuery(t *testing.T) {
	b := testBackend()
	transformed, err := b.TransformQuery("hooft")
	require.NoError(t, err)
	assert.Contains(t, transformed, "SELECT DISTINCT ?s ?name")
	assert.Contains(t, transformed, `FILTER (regex(?o, "hooft", "i"))`)
	assert.Equal(t, "hooft", b.prepared)
}

func TestTransformQueryEscapesRegex(t *testing.T) {
	b := testBackend()
	_, err := b.TransformQuery("wh?t (now)")
	require.NoError(t, err)
	assert.Equal(t, `wh\?t \(now\)`, b.prepared)
}

func TestTransformQueryRejectsEmpty(t *testing.T) {
	b := testBackend()
	_, err := b.TransformQuery(" \t ")
	var merr *reader.MalformedQueryError
	require.ErrorAs(t, err, &merr)
}

func TestSelectQuery(t *testing.T) {
	b := testBackend()
	b.prepared = "hooft"
	q := b.selectQuery(25, 50)
	assert.Contains(t, q, "PREFIX schema: <http://schema.org/>")
	assert.Contains(t, q, "?s <http://schema.org/name> ?name .")
	assert.Contains(t, q, "?s a <http://schema.org/Book> .")
	assert.Contains(t, q, "ORDER BY ?s LIMIT 25 OFFSET 50")
}

func TestCountQuery(t *testing.T) {
	b := testBackend()
	b.prepared = "hooft"
	q := b.countQuery()
	assert.Contains(t, q, "SELECT (COUNT(DISTINCT ?s) AS ?count)")
	assert.Contains(t, q, `FILTER (regex(?o, "hooft", "i"))`)
	assert.NotContains(t, q, "LIMIT")
}

func TestClassify(t *testing.T) {
	b := testBackend()
	b.prepared = "hooft"

	err := b.classify(&url.Error{Op: "Post", URL: b.cfg.Endpoint, Err: errors.New("connection refused")})
	var uerr *reader.BackendUnavailableError
	assert.ErrorAs(t, err, &uerr)

	err = b.classify(errors.New("Virtuoso 37000 Error SP030: malformed query"))
	var merr *reader.MalformedQueryError
	assert.ErrorAs(t, err, &merr)

	err = b.classify(errors.New("something else went wrong"))
	var rerr *reader.ReaderError
	assert.ErrorAs(t, err, &rerr)
}

func TestRegexEscape(t *testing.T) {
	assert.Equal(t, `a\.b`, regexEscape("a.b"))
	assert.Equal(t, `\[x\]\{2\}\$`, regexEscape("[x]{2}$"))
	assert.Equal(t, "plain words", regexEscape("plain words"))
}
