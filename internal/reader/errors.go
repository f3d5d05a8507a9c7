// file: internal/reader/errors.go
// version: 1.0.0
// guid: 7e8f9a0b-1c2d-3e4f-5a6b-7c8d9e0f1a2b

package reader

import (
	"errors"
	"fmt"
)

// ErrNoQuery is returned by Fetch when no query has been set.
var ErrNoQuery = errors.New("no query has been set")

// MalformedQueryError signals that the backend rejected the query syntax.
// The caller can re-prompt and set a new query.
type MalformedQueryError struct {
	Query  string
	Detail string
}

func (e *MalformedQueryError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("malformed query %q", e.Query)
	}
	return fmt.Sprintf("malformed query %q: %s", e.Query, e.Detail)
}

// ReaderError wraps a backend or parse fault. The session state is
// preserved and the fetch may be retried.
type ReaderError struct {
	Catalog string
	Err     error
}

func (e *ReaderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Catalog, e.Err)
}

func (e *ReaderError) Unwrap() error { return e.Err }

// BackendUnavailableError signals that the backend could not be reached
// at all. The session enters the Failed state until a new query is set.
type BackendUnavailableError struct {
	Catalog string
	Err     error
}

func (e *BackendUnavailableError) Error() string {
	return fmt.Sprintf("%s: backend unavailable: %v", e.Catalog, e.Err)
}

func (e *BackendUnavailableError) Unwrap() error { return e.Err }

// MissingLocalResourceError signals that a required local database file
// is absent. The message names the expected location and how to obtain
// the file.
type MissingLocalResourceError struct {
	Catalog string
	Path    string
	Hint    string
}

func (e *MissingLocalResourceError) Error() string {
	msg := fmt.Sprintf(
		"%s database not found: expected file at %s", e.Catalog, e.Path)
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

// IndexError signals a record index outside the fetched range.
type IndexError struct {
	Index   int
	Fetched int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf(
		"record index %d out of range [1, %d]", e.Index, e.Fetched)
}

// ConcurrentFetchError signals a reentrant Fetch on a busy session.
type ConcurrentFetchError struct{}

func (e *ConcurrentFetchError) Error() string {
	return "a fetch is already in progress on this reader"
}

// NotFoundError signals that a record with a requested identifier does
// not exist in the catalogue.
type NotFoundError struct {
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record with identifier %q not found", e.Identifier)
}
