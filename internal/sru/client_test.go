// file: internal/sru/client_test.go
// version: 1.1.0
// guid: 7a8b9c0d-1e2f-3a4b-5c6d-8f9a0b1c2d3f

package sru

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gruningerResponse = `<?xml version="1.0" encoding="UTF-8"?>
<searchRetrieveResponse xmlns="http://www.loc.gov/zing/srw/">
  <version>1.1</version>
  <numberOfRecords>2134</numberOfRecords>
  <records>
    <record>
      <recordSchema>marcxml</recordSchema>
      <recordPacking>xml</recordPacking>
      <recordData>
        <record xmlns="http://www.loc.gov/MARC21/slim">
          <leader>00000nam a2200000 u 4500</leader>
          <controlfield tag="001">992121</controlfield>
          <controlfield tag="007">tu</controlfield>
          <datafield tag="035" ind1=" " ind2=" ">
            <subfield code="a">(DE-599)GBV133445659</subfield>
          </datafield>
          <datafield tag="035" ind1=" " ind2=" ">
            <subfield code="a">(CERL)HU-SzSEK.01.bibJAT603188</subfield>
          </datafield>
          <datafield tag="245" ind1="1" ind2="0">
            <subfield code="a">Das nüv schiff von Narragonia</subfield>
          </datafield>
          <datafield tag="264" ind1=" " ind2="1">
            <subfield code="a">Strassburg</subfield>
            <subfield code="b">Johann Grüninger</subfield>
            <subfield code="c">1494</subfield>
          </datafield>
          <datafield tag="041" ind1=" " ind2=" ">
            <subfield code="a">lat</subfield>
          </datafield>
        </record>
      </recordData>
      <recordPosition>1</recordPosition>
    </record>
  </records>
</searchRetrieveResponse>`

const diagnosticResponse = `<?xml version="1.0" encoding="UTF-8"?>
<searchRetrieveResponse xmlns="http://www.loc.gov/zing/srw/">
  <version>1.1</version>
  <numberOfRecords>0</numberOfRecords>
  <diagnostics>
    <diagnostic xmlns="http://www.loc.gov/zing/srw/diagnostic/">
      <uri>info:srw/diagnostic/1/10</uri>
      <message>Query syntax error</message>
    </diagnostic>
  </diagnostics>
</searchRetrieveResponse>`

func TestSearchRetrieve(t *testing.T) {
	var gotQuery, gotStart, gotMax, gotVersion string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotQuery = q.Get("query")
		gotStart = q.Get("startRecord")
		gotMax = q.Get("maximumRecords")
		gotVersion = q.Get("version")
		assert.Equal(t, "searchRetrieve", q.Get("operation"))
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(gruningerResponse))
	}))
	defer server.Close()

	c := &Client{Doer: http.DefaultClient, Endpoint: server.URL, Version: "1.1"}
	resp, err := c.SearchRetrieve("gruninger", 1, 10)
	require.NoError(t, err)

	assert.Equal(t, "gruninger", gotQuery)
	assert.Equal(t, "1", gotStart)
	assert.Equal(t, "10", gotMax)
	assert.Equal(t, "1.1", gotVersion)

	assert.Equal(t, 2134, resp.NumberOfRecords)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "marcxml", resp.Records[0].Schema)
	assert.Equal(t, 1, resp.Records[0].Position)
	assert.Contains(t, string(resp.Records[0].Inner), "Das nüv schiff von Narragonia")
	assert.Empty(t, resp.Diagnostics)
}

func TestSearchRetrieveExtraParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GGC", r.URL.Query().Get("x-collection"))
		w.Write([]byte(gruningerResponse))
	}))
	defer server.Close()

	c := &Client{
		Doer:     http.DefaultClient,
		Endpoint: server.URL,
		Version:  "1.2",
		Extra:    map[string][]string{"x-collection": {"GGC"}},
	}
	_, err := c.SearchRetrieve("gruninger", 1, 10)
	require.NoError(t, err)
}

func TestSearchRetrieveDiagnostics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(diagnosticResponse))
	}))
	defer server.Close()

	c := &Client{Doer: http.DefaultClient, Endpoint: server.URL, Version: "1.1"}
	resp, err := c.SearchRetrieve("((", 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Diagnostics, 1)
	assert.True(t, resp.Diagnostics[0].IsQueryError())
	assert.Equal(t, "Query syntax error", resp.Diagnostics[0].Message)
}

func TestSearchRetrieveServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := &Client{Doer: http.DefaultClient, Endpoint: server.URL, Version: "1.1"}
	_, err := c.SearchRetrieve("gruninger", 1, 10)
	assert.Error(t, err)
}

func TestDiagnosticIsQueryError(t *testing.T) {
	assert.True(t, Diagnostic{URI: "info:srw/diagnostic/1/10"}.IsQueryError())
	assert.True(t, Diagnostic{URI: "info:srw/diagnostic/1/49"}.IsQueryError())
	assert.False(t, Diagnostic{URI: "info:srw/diagnostic/1/2"}.IsQueryError())
	assert.False(t, Diagnostic{URI: "info:srw/diagnostic/1/64"}.IsQueryError())
	assert.True(t, Diagnostic{Message: "Unsupported query element"}.IsQueryError())
}

func TestFlatten(t *testing.T) {
	inner := []byte(`<srw_dc:dc xmlns:srw_dc="info:srw/schema/1/dc-schema" xmlns:dc="http://purl.org/dc/elements/1.1/">
	  <dc:title>Atlas Maior</dc:title>
	  <dc:creator>Blaeu, Joan</dc:creator>
	  <dc:creator>Blaeu, Willem</dc:creator>
	  <dc:date>1662</dc:date>
	</srw_dc:dc>`)
	elems, err := Flatten(inner)
	require.NoError(t, err)
	assert.Equal(t, []string{"Atlas Maior"}, elems["title"])
	assert.Equal(t, []string{"Blaeu, Joan", "Blaeu, Willem"}, elems["creator"])
	assert.Equal(t, []string{"1662"}, elems["date"])
}
