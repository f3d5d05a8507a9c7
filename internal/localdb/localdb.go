// file: internal/localdb/localdb.go
// version: 1.2.0
// guid: 7a8b9c0d-1e2f-3a4b-5c6d-7e8f90123456

// Package localdb implements reader backends over local database
// files: SQLite databases and delimited text files that must be
// present on disk before a catalogue can be searched.
package localdb

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/edpop/explorer/internal/httpx"
	"github.com/edpop/explorer/internal/reader"
)

// FileSpec names the database file one catalogue needs.
type FileSpec struct {
	// Catalog is the catalogue short name, used in error messages.
	Catalog  string
	Filename string
	// DownloadURL is where the file can be fetched, empty if the
	// file has to be obtained manually.
	DownloadURL string
	// LicenseURL points at the licensing terms of the downloaded
	// data, logged before a download starts.
	LicenseURL string
	// Hint tells the user how to obtain the file when no download
	// URL exists.
	Hint string
}

// Path returns where the file is expected under the data directory.
func (s FileSpec) Path(dataDir string) string {
	return filepath.Join(dataDir, s.Filename)
}

// Resolve returns the file path if the file exists. A missing file
// yields a MissingLocalResourceError naming the expected path.
func (s FileSpec) Resolve(dataDir string) (string, error) {
	p := s.Path(dataDir)
	if _, err := os.Stat(p); err != nil {
		hint := s.Hint
		if hint == "" && s.DownloadURL != "" {
			hint = fmt.Sprintf("Run the download command to fetch it from %s.", s.DownloadURL)
		}
		return "", &reader.MissingLocalResourceError{
			Catalog: s.Catalog,
			Path:    p,
			Hint:    hint,
		}
	}
	return p, nil
}

// Download fetches the database file into the data directory. The file
// is written to a temporary name first so an interrupted download never
// leaves a half-written database behind.
func (s FileSpec) Download(dataDir string, doer httpx.Doer) (string, error) {
	if s.DownloadURL == "" {
		return "", fmt.Errorf("%s has no download location: %s", s.Catalog, s.Hint)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data dir: %w", err)
	}
	if s.LicenseURL != "" {
		log.Printf("[INFO] The %s database is subject to the license at %s", s.Catalog, s.LicenseURL)
	}
	log.Printf("[INFO] Downloading %s database from %s", s.Catalog, s.DownloadURL)

	req, err := http.NewRequest(http.MethodGet, s.DownloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := doer.Do(req)
	if err != nil {
		return "", &reader.BackendUnavailableError{Catalog: s.Catalog, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, s.DownloadURL)
	}

	target := s.Path(dataDir)
	tmp := target + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("failed to open target file: %w", err)
	}
	bar := progressbar.DefaultBytes(resp.ContentLength, "downloading "+s.Filename)
	_, err = io.Copy(io.MultiWriter(f, bar), resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return "", fmt.Errorf("failed to move download into place: %w", err)
	}
	log.Printf("[INFO] Saved %s database to %s", s.Catalog, target)
	return target, nil
}

// Ensure resolves the file, downloading it first when it is missing
// and a download location is known.
func (s FileSpec) Ensure(dataDir string, doer httpx.Doer) (string, error) {
	p, err := s.Resolve(dataDir)
	if err == nil {
		return p, nil
	}
	if s.DownloadURL == "" {
		return "", err
	}
	return s.Download(dataDir, doer)
}
