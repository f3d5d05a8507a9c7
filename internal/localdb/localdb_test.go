// file: internal/localdb/localdb_test.go
// version: 1.1.0
// guid: 2f3a4b5c-6d7e-8f9a-0b1c-3d4e5f6a7b8e

package localdb

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edpop/explorer/internal/reader"
)

func TestResolveMissingFile(t *testing.T) {
	dir := t.TempDir()
	spec := FileSpec{
		Catalog:     "FBTEE",
		Filename:    "cl.sqlite3",
		DownloadURL: "https://example.com/cl.sqlite3",
	}
	_, err := spec.Resolve(dir)
	var merr *reader.MissingLocalResourceError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, filepath.Join(dir, "cl.sqlite3"), merr.Path)
	assert.Contains(t, err.Error(), filepath.Join(dir, "cl.sqlite3"))
	assert.Contains(t, err.Error(), "download command")
}

func TestResolveMissingFileWithHint(t *testing.T) {
	spec := FileSpec{
		Catalog:  "USTC",
		Filename: "ustc.sqlite3",
		Hint:     "Contact the USTC team for a copy of the database.",
	}
	_, err := spec.Resolve(t.TempDir())
	var merr *reader.MissingLocalResourceError
	require.ErrorAs(t, err, &merr)
	assert.Contains(t, err.Error(), "Contact the USTC team")
}

func TestResolveExistingFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(p, []byte("a;b\n"), 0o644))

	spec := FileSpec{Catalog: "Test", Filename: "data.csv"}
	got, err := spec.Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("database contents"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	spec := FileSpec{
		Catalog:     "Test",
		Filename:    "test.sqlite3",
		DownloadURL: srv.URL + "/test.sqlite3",
	}
	got, err := spec.Download(dir, srv.Client())
	require.NoError(t, err)
	assert.Equal(t, spec.Path(dir), got)

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "database contents", string(data))

	// No temporary file left behind.
	_, err = os.Stat(got + ".part")
	assert.True(t, os.IsNotExist(err))
}

func TestDownloadServerError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	spec := FileSpec{
		Catalog:     "Test",
		Filename:    "test.sqlite3",
		DownloadURL: srv.URL + "/missing",
	}
	_, err := spec.Download(t.TempDir(), srv.Client())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestDownloadWithoutURL(t *testing.T) {
	spec := FileSpec{Catalog: "USTC", Filename: "ustc.sqlite3", Hint: "ask the maintainers"}
	_, err := spec.Download(t.TempDir(), http.DefaultClient)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ask the maintainers")
}

func TestEnsureDownloadsWhenMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	spec := FileSpec{
		Catalog:     "Test",
		Filename:    "test.db",
		DownloadURL: srv.URL + "/test.db",
	}
	p, err := spec.Ensure(dir, srv.Client())
	require.NoError(t, err)
	assert.FileExists(t, p)

	// Second call resolves without touching the network.
	srv.Close()
	p2, err := spec.Ensure(dir, srv.Client())
	require.NoError(t, err)
	assert.Equal(t, p, p2)
}
