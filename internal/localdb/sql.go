// file: internal/localdb/sql.go
// version: 1.1.0
// guid: 0d1e2f3a-4b5c-6d7e-8f9a-0b1c2d3e4f5a

package localdb

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/reader"
)

// SQLConvert turns one result row, scanned into a column map, into a
// normalized record.
type SQLConvert func(row map[string]any) (*edpoprec.Record, error)

// SQLConfig describes one SQLite-backed catalogue.
type SQLConfig struct {
	Catalog *edpoprec.Catalog
	Spec    FileSpec
	DataDir string
	// CountQuery and SelectQuery both take the search pattern as their
	// only placeholder; SelectQuery additionally takes LIMIT and
	// OFFSET placeholders, in that order.
	CountQuery  string
	SelectQuery string
	Convert     SQLConvert
	PageSize    int
}

type sqlBackend struct {
	cfg      SQLConfig
	db       *sql.DB
	prepared string
}

// NewSQLSession builds a reader session over a local SQLite database.
// The database file is resolved lazily, on the first fetch, so a
// session can be constructed before the file exists.
func NewSQLSession(cfg SQLConfig) *reader.Session {
	b := &sqlBackend{cfg: cfg}
	var opts []reader.Option
	if cfg.PageSize > 0 {
		opts = append(opts, reader.WithPageSize(cfg.PageSize))
	}
	return reader.NewSession(cfg.Catalog, b, opts...)
}

func (b *sqlBackend) TransformQuery(query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", &reader.MalformedQueryError{Query: query, Detail: "query must not be empty"}
	}
	// Substring match; escape the LIKE wildcards in the user input.
	esc := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(query)
	b.prepared = "%" + esc + "%"
	return b.prepared, nil
}

// OpenSQLite opens a database file read-only.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return db, nil
}

// QueryRows runs a query and scans every result row into a column map.
// BLOB and TEXT values both come back as strings.
func QueryRows(db *sql.DB, query string, args ...any) ([]map[string]any, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []map[string]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, c := range cols {
			if bs, ok := vals[i].([]byte); ok {
				row[c] = string(bs)
				continue
			}
			row[c] = vals[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (b *sqlBackend) open() (*sql.DB, error) {
	if b.db != nil {
		return b.db, nil
	}
	path, err := b.cfg.Spec.Resolve(b.cfg.DataDir)
	if err != nil {
		return nil, err
	}
	db, err := OpenSQLite(path)
	if err != nil {
		return nil, err
	}
	b.db = db
	return db, nil
}

func (b *sqlBackend) FetchRange(rng reader.Range, put reader.RecordSink) (reader.FetchResult, error) {
	var zero reader.FetchResult
	db, err := b.open()
	if err != nil {
		return zero, err
	}

	var total int
	if err := db.QueryRow(b.cfg.CountQuery, b.prepared).Scan(&total); err != nil {
		return zero, &reader.ReaderError{Catalog: b.cfg.Spec.Catalog, Err: err}
	}

	rows, err := QueryRows(db, b.cfg.SelectQuery, b.prepared, rng.Len(), rng.Start)
	if err != nil {
		return zero, &reader.ReaderError{Catalog: b.cfg.Spec.Catalog, Err: err}
	}
	count := 0
	for _, row := range rows {
		rec, err := b.cfg.Convert(row)
		if err != nil {
			return zero, &reader.ReaderError{Catalog: b.cfg.Spec.Catalog, Err: err}
		}
		put(rng.Start+count, rec)
		count++
	}
	return reader.FetchResult{
		Total:   total,
		Fetched: reader.Range{Start: rng.Start, Stop: rng.Start + count},
	}, nil
}
