// file: internal/sru/client.go
// version: 1.2.0
// guid: 4d5e6f7a-8b9c-0d1e-2f3a-4b5c6d7e8f9a

// Package sru implements the SRU (Search/Retrieve via URL) protocol
// adapter: the searchRetrieve envelope, generic record flattening and a
// MARC21 second-stage extraction layer.
package sru

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/edpop/explorer/internal/httpx"
)

// Client issues searchRetrieve requests against one SRU endpoint.
type Client struct {
	Doer     httpx.Doer
	Endpoint string
	// Version is the SRU protocol version, "1.1" or "1.2".
	Version string
	// RecordSchema requests a specific schema; empty uses the server
	// default.
	RecordSchema string
	// Extra carries endpoint-specific parameters, such as the
	// x-collection parameter some servers require.
	Extra url.Values
}

// RawRecord is one record as delivered inside the SRU envelope. Inner
// holds the unparsed recordData payload for the second-stage converter.
type RawRecord struct {
	Schema   string
	Position int
	Inner    []byte
}

// Diagnostic is an SRU diagnostic message, returned by the server for
// query grammar errors and other request-level problems.
type Diagnostic struct {
	URI     string
	Message string
	Details string
}

// Response is a parsed searchRetrieve response.
type Response struct {
	NumberOfRecords int
	Records         []RawRecord
	Diagnostics     []Diagnostic
}

// IsQueryError reports whether the diagnostic indicates a problem with
// the query itself rather than with the server. Diagnostics 10-49 of the
// SRU diagnostic scheme cover query syntax and semantics.
func (d Diagnostic) IsQueryError() bool {
	const prefix = "info:srw/diagnostic/1/"
	if strings.HasPrefix(d.URI, prefix) {
		if n, err := strconv.Atoi(strings.TrimPrefix(d.URI, prefix)); err == nil {
			return n >= 10 && n < 50
		}
	}
	return strings.Contains(strings.ToLower(d.Message), "query")
}

type searchRetrieveResponse struct {
	XMLName         xml.Name `xml:"searchRetrieveResponse"`
	Version         string   `xml:"version"`
	NumberOfRecords int      `xml:"numberOfRecords"`
	Records         []struct {
		RecordSchema   string `xml:"recordSchema"`
		RecordPosition int    `xml:"recordPosition"`
		RecordData     struct {
			Inner []byte `xml:",innerxml"`
		} `xml:"recordData"`
	} `xml:"records>record"`
	Diagnostics []struct {
		URI     string `xml:"uri"`
		Message string `xml:"message"`
		Details string `xml:"details"`
	} `xml:"diagnostics>diagnostic"`
}

// SearchRetrieve performs one paged request. startRecord is 1-based, as
// the protocol requires.
func (c *Client) SearchRetrieve(query string, startRecord, maximumRecords int) (*Response, error) {
	vs := url.Values{}
	for k, vals := range c.Extra {
		for _, v := range vals {
			vs.Add(k, v)
		}
	}
	vs.Set("version", c.Version)
	vs.Set("operation", "searchRetrieve")
	vs.Set("query", query)
	vs.Set("startRecord", strconv.Itoa(startRecord))
	vs.Set("maximumRecords", strconv.Itoa(maximumRecords))
	if c.RecordSchema != "" {
		vs.Set("recordSchema", c.RecordSchema)
	}

	req, err := http.NewRequest(http.MethodGet, c.Endpoint+"?"+vs.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building SRU request: %w", err)
	}
	req.Header.Set("Accept-Encoding", "identity")
	resp, err := c.Doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SRU server returned %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading SRU response: %w", err)
	}
	var srr searchRetrieveResponse
	if err := xml.Unmarshal(body, &srr); err != nil {
		return nil, fmt.Errorf("parsing SRU response: %w", err)
	}
	out := &Response{NumberOfRecords: srr.NumberOfRecords}
	for _, d := range srr.Diagnostics {
		out.Diagnostics = append(out.Diagnostics, Diagnostic(d))
	}
	for _, r := range srr.Records {
		out.Records = append(out.Records, RawRecord{
			Schema:   r.RecordSchema,
			Position: r.RecordPosition,
			Inner:    r.RecordData.Inner,
		})
	}
	return out, nil
}

// Flatten parses a recordData payload into a multimap of element local
// names to their text content, ignoring nesting. This matches what
// Dublin-Core-style SRU schemas deliver: a flat list of repeatable
// elements.
func Flatten(inner []byte) (map[string][]string, error) {
	dec := xml.NewDecoder(strings.NewReader(string(inner)))
	out := make(map[string][]string)
	var name string
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parsing record data: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			name = t.Name.Local
			text.Reset()
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if t.Name.Local == name {
				if v := strings.TrimSpace(text.String()); v != "" {
					out[name] = append(out[name], v)
				}
			}
			name = ""
			text.Reset()
		}
	}
}
