// file: internal/localdb/csv.go
// version: 1.1.0
// guid: 1e2f3a4b-5c6d-7e8f-9a0b-1c2d3e4f5a6b

package localdb

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/reader"
)

// CSVConvert turns one row, keyed by header name, into a normalized
// record. The row number is the 1-based data row position in the file
// and doubles as the record identifier for files without one.
type CSVConvert func(row map[string]string, rowNumber int) (*edpoprec.Record, error)

// CSVConfig describes one catalogue stored as a delimited text file.
type CSVConfig struct {
	Catalog *edpoprec.Catalog
	Spec    FileSpec
	DataDir string
	// Comma is the field delimiter, ';' for the files served here.
	Comma rune
	// SearchColumns restricts the substring match to these columns.
	// Empty means every column is searched.
	SearchColumns []string
	Convert       CSVConvert
	PageSize      int
}

type csvBackend struct {
	cfg CSVConfig
	// matches holds the converted records of the current query. The
	// whole file is scanned once per query; paging then serves from
	// memory.
	matches  []*edpoprec.Record
	prepared string
}

// NewCSVSession builds a reader session over a local delimited file.
func NewCSVSession(cfg CSVConfig) *reader.Session {
	if cfg.Comma == 0 {
		cfg.Comma = ';'
	}
	b := &csvBackend{cfg: cfg}
	opts := []reader.Option{reader.FetchAllAtOnce()}
	if cfg.PageSize > 0 {
		opts = append(opts, reader.WithPageSize(cfg.PageSize))
	}
	return reader.NewSession(cfg.Catalog, b, opts...)
}

func (b *csvBackend) TransformQuery(query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", &reader.MalformedQueryError{Query: query, Detail: "query must not be empty"}
	}
	b.prepared = strings.ToLower(query)
	b.matches = nil
	return b.prepared, nil
}

func (b *csvBackend) scan() error {
	if b.matches != nil {
		return nil
	}
	path, err := b.cfg.Spec.Resolve(b.cfg.DataDir)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return &reader.ReaderError{Catalog: b.cfg.Spec.Catalog, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = b.cfg.Comma
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return &reader.ReaderError{
			Catalog: b.cfg.Spec.Catalog,
			Err:     fmt.Errorf("reading header of %s: %w", path, err),
		}
	}
	cleanHeader(header)

	matches := []*edpoprec.Record{}
	rowNumber := 0
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &reader.ReaderError{
				Catalog: b.cfg.Spec.Catalog,
				Err:     fmt.Errorf("reading %s: %w", path, err),
			}
		}
		rowNumber++
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(fields) {
				row[h] = fields[i]
			}
		}
		if !b.rowMatches(row) {
			continue
		}
		rec, err := b.cfg.Convert(row, rowNumber)
		if err != nil {
			return &reader.ReaderError{Catalog: b.cfg.Spec.Catalog, Err: err}
		}
		matches = append(matches, rec)
	}
	b.matches = matches
	return nil
}

// cleanHeader trims whitespace and the UTF-8 byte order mark some of
// the source files carry.
func cleanHeader(header []string) {
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
}

// CSVLookup finds one row by its value in the identifier column,
// outside of any query session.
func CSVLookup(cfg CSVConfig, idColumn, id string) (*edpoprec.Record, error) {
	if cfg.Comma == 0 {
		cfg.Comma = ';'
	}
	path, err := cfg.Spec.Resolve(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &reader.ReaderError{Catalog: cfg.Spec.Catalog, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = cfg.Comma
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, &reader.ReaderError{
			Catalog: cfg.Spec.Catalog,
			Err:     fmt.Errorf("reading header of %s: %w", path, err),
		}
	}
	cleanHeader(header)
	rowNumber := 0
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &reader.ReaderError{
				Catalog: cfg.Spec.Catalog,
				Err:     fmt.Errorf("reading %s: %w", path, err),
			}
		}
		rowNumber++
		row := make(map[string]string, len(header))
		for i, h := range header {
			if i < len(fields) {
				row[h] = fields[i]
			}
		}
		if row[idColumn] != id {
			continue
		}
		rec, err := cfg.Convert(row, rowNumber)
		if err != nil {
			return nil, &reader.ReaderError{Catalog: cfg.Spec.Catalog, Err: err}
		}
		return rec, nil
	}
	return nil, &reader.NotFoundError{Identifier: id}
}

func (b *csvBackend) rowMatches(row map[string]string) bool {
	if len(b.cfg.SearchColumns) > 0 {
		for _, c := range b.cfg.SearchColumns {
			if strings.Contains(strings.ToLower(row[c]), b.prepared) {
				return true
			}
		}
		return false
	}
	for _, v := range row {
		if strings.Contains(strings.ToLower(v), b.prepared) {
			return true
		}
	}
	return false
}

// FetchRange delivers everything from the start of the requested range
// to the end of the result set. The file has already been scanned in
// full, so withholding the tail would only force pointless re-fetches.
func (b *csvBackend) FetchRange(rng reader.Range, put reader.RecordSink) (reader.FetchResult, error) {
	var zero reader.FetchResult
	if err := b.scan(); err != nil {
		return zero, err
	}
	start := rng.Start
	if start > len(b.matches) {
		start = len(b.matches)
	}
	for i := start; i < len(b.matches); i++ {
		put(i, b.matches[i])
	}
	return reader.FetchResult{
		Total:   len(b.matches),
		Fetched: reader.Range{Start: start, Stop: len(b.matches)},
	}, nil
}
