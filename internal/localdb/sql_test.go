// file: internal/localdb/sql_test.go
// version: 1.1.0
// guid: 4b5c6d7e-8f9a-0b1c-2d3e-5f6a7b8c9d0a

package localdb

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edpop/explorer/internal/edpoprec"
	"github.com/edpop/explorer/internal/reader"
)

const (
	testCount = `SELECT COUNT(*) FROM books WHERE title LIKE ?1 ESCAPE '\' OR author LIKE ?1 ESCAPE '\'`
	testSelect = `SELECT id, title, author FROM books
WHERE title LIKE ?1 ESCAPE '\' OR author LIKE ?1 ESCAPE '\'
ORDER BY id LIMIT ?2 OFFSET ?3`
)

func writeBooksDB(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "books.sqlite3")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE books (id TEXT PRIMARY KEY, title TEXT, author TEXT)`)
	require.NoError(t, err)
	for i, row := range [][2]string{
		{"Candide, ou l'optimisme", "Voltaire"},
		{"De l'esprit des lois", "Montesquieu"},
		{"Lettres persanes", "Montesquieu"},
		{"100% proof", "Anonymous"},
	} {
		_, err = db.Exec(`INSERT INTO books VALUES (?, ?, ?)`,
			fmt.Sprintf("bk%04d", i+1), row[0], row[1])
		require.NoError(t, err)
	}
	return dir
}

func booksConfig(dir string) SQLConfig {
	cat := &edpoprec.Catalog{URI: "http://example.com/test", ShortName: "Test"}
	return SQLConfig{
		Catalog:     cat,
		Spec:        FileSpec{Catalog: "Test", Filename: "books.sqlite3"},
		DataDir:     dir,
		CountQuery:  testCount,
		SelectQuery: testSelect,
		Convert: func(row map[string]any) (*edpoprec.Record, error) {
			rec := edpoprec.NewRecord(cat)
			rec.Raw = edpoprec.MapData(row)
			rec.Identifier, _ = row["id"].(string)
			if title, ok := row["title"].(string); ok {
				rec.SetField(edpoprec.FieldTitle, edpoprec.NewField(title))
			}
			return rec, nil
		},
		PageSize: 2,
	}
}

func TestSQLSearchPaging(t *testing.T) {
	dir := writeBooksDB(t)
	sess := NewSQLSession(booksConfig(dir))

	require.NoError(t, sess.SetQuery("montesquieu"))
	rng, err := sess.Fetch(1)
	require.NoError(t, err)
	assert.Equal(t, reader.Range{Start: 0, Stop: 1}, rng)
	total, known := sess.NumberOfResults()
	assert.True(t, known)
	assert.Equal(t, 2, total)

	require.NoError(t, sess.FetchAll())
	assert.Equal(t, reader.Complete, sess.Status())

	recs := sess.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, "bk0002", recs[0].Identifier)
	assert.Equal(t, "De l'esprit des lois", recs[0].Field(edpoprec.FieldTitle).Original)
	assert.Equal(t, "Lettres persanes", recs[1].Field(edpoprec.FieldTitle).Original)
}

func TestSQLEscapesLikeWildcards(t *testing.T) {
	dir := writeBooksDB(t)
	sess := NewSQLSession(booksConfig(dir))

	// A literal percent sign must not act as a wildcard.
	require.NoError(t, sess.SetQuery("100%"))
	require.NoError(t, sess.FetchAll())
	require.Equal(t, 1, sess.NumberFetched())
	rec, err := sess.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "100% proof", rec.Field(edpoprec.FieldTitle).Original)

	// Without a literal match the wildcard characters find nothing.
	require.NoError(t, sess.SetQuery("C_ndide"))
	require.NoError(t, sess.FetchAll())
	assert.Equal(t, 0, sess.NumberFetched())
}

func TestSQLMissingDatabase(t *testing.T) {
	cfg := booksConfig(t.TempDir())
	sess := NewSQLSession(cfg)

	require.NoError(t, sess.SetQuery("voltaire"))
	_, err := sess.Fetch(0)
	var merr *reader.MissingLocalResourceError
	require.ErrorAs(t, err, &merr)
	assert.Contains(t, merr.Path, "books.sqlite3")
}

func TestQueryRows(t *testing.T) {
	dir := writeBooksDB(t)
	db, err := OpenSQLite(filepath.Join(dir, "books.sqlite3"))
	require.NoError(t, err)
	defer db.Close()

	rows, err := QueryRows(db, `SELECT id, title FROM books WHERE author = ?`, "Voltaire")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "bk0001", rows[0]["id"])
	assert.Equal(t, "Candide, ou l'optimisme", rows[0]["title"])
}
