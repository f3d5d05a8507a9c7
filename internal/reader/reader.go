// file: internal/reader/reader.go
// version: 1.3.0
// guid: 1a2b3c4d-5e6f-7a8b-9c0d-1e2f3a4b5c6d

// Package reader implements the paging state machine shared by all
// catalogue adapters. A Session owns one search against one catalogue;
// the protocol-specific work (query transformation and response parsing)
// is delegated to a pluggable Backend.
package reader

import (
	"errors"
	"sync"

	"github.com/edpop/explorer/internal/edpoprec"
)

// Status describes the lifecycle of a Session.
type Status int

const (
	// NoQuery: freshly created, SetQuery has not been called.
	NoQuery Status = iota
	// Ready: a query is set; more results may be available.
	Ready
	// Fetching: a Fetch call is in progress.
	Fetching
	// Complete: all results for the query have been fetched.
	Complete
	// Failed: the backend was unreachable; set a query to retry.
	Failed
)

func (s Status) String() string {
	switch s {
	case NoQuery:
		return "no query"
	case Ready:
		return "ready"
	case Fetching:
		return "fetching"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Range is a half-open interval of 0-based absolute result indices.
type Range struct {
	Start int
	Stop  int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.Stop <= r.Start {
		return 0
	}
	return r.Stop - r.Start
}

// RecordSink receives one parsed record at its absolute result index.
type RecordSink func(index int, rec *edpoprec.Record)

// FetchResult reports the outcome of a Backend.FetchRange call.
type FetchResult struct {
	// Total is the backend-reported total number of results.
	Total int
	// Fetched is the range of indices that was actually delivered. It
	// may be shorter than requested when the result set ends.
	Fetched Range
}

// Backend is the protocol-specific half of a reader: it transforms the
// user query into the backend's native syntax and fetches ranges of
// records. A Backend instance belongs to exactly one Session and keeps
// its prepared query between calls.
type Backend interface {
	// TransformQuery prepares the query and returns a display form of
	// the transformed query. Backends that cannot validate synchronously
	// report grammar rejections from FetchRange instead.
	TransformQuery(query string) (string, error)
	// FetchRange fetches the records in rng, delivering each through
	// put. Errors must be one of the reader error kinds.
	FetchRange(rng Range, put RecordSink) (FetchResult, error)
}

const defaultPageSize = 10

// Session is a stateful query/paging controller over a Backend.
// A Session is not safe for concurrent use; a reentrant Fetch fails
// fast with ConcurrentFetchError instead of corrupting state.
type Session struct {
	backend  Backend
	catalog  *edpoprec.Catalog
	pageSize int
	// maxPage caps a single backend request; larger fetches are
	// re-chunked transparently. 0 means no cap.
	maxPage int
	// allAtOnce marks backends that deliver the entire result set on
	// the first FetchRange (local scans).
	allAtOnce bool

	mu          sync.Mutex
	busy        bool
	status      Status
	query       string
	transformed string
	total       int // -1 while unknown
	records     map[int]*edpoprec.Record
	pos         int
}

// Option configures a Session.
type Option func(*Session)

// WithPageSize sets the default number of records per Fetch.
func WithPageSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithMaxPageSize caps single backend requests; larger fetches are
// re-chunked.
func WithMaxPageSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxPage = n
		}
	}
}

// FetchAllAtOnce marks the backend as delivering everything on the first
// fetch, as local database scans do.
func FetchAllAtOnce() Option {
	return func(s *Session) { s.allAtOnce = true }
}

// NewSession creates a Session for a catalogue backend.
func NewSession(cat *edpoprec.Catalog, b Backend, opts ...Option) *Session {
	s := &Session{
		backend:  b,
		catalog:  cat,
		pageSize: defaultPageSize,
		status:   NoQuery,
		total:    -1,
		records:  make(map[int]*edpoprec.Record),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Catalog returns the catalogue this session reads from.
func (s *Session) Catalog() *edpoprec.Catalog { return s.catalog }

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Query returns the raw query as set by the caller.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// TransformedQuery returns the backend-native form of the query.
func (s *Session) TransformedQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transformed
}

// NumberOfResults returns the backend-reported total, and whether it is
// known yet (it becomes known on the first successful Fetch).
func (s *Session) NumberOfResults() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.total < 0 {
		return 0, false
	}
	return s.total, true
}

// NumberFetched returns how many records have been fetched so far.
func (s *Session) NumberFetched() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// SetQuery validates and transforms the user query, resets all fetched
// state and moves the session to Ready. Backends that validate lazily
// may still reject the query on the first Fetch.
func (s *Session) SetQuery(query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return &ConcurrentFetchError{}
	}
	transformed, err := s.backend.TransformQuery(query)
	if err != nil {
		return err
	}
	s.query = query
	s.transformed = transformed
	s.total = -1
	s.records = make(map[int]*edpoprec.Record)
	s.pos = 0
	s.status = Ready
	return nil
}

// Fetch requests the next n unfetched results. n <= 0 selects the
// adapter's default page size. The first call also discovers the total
// number of results. Fetching past the end is a no-op. On failure no
// already-fetched record is touched and the pre-call state is restored;
// only an unreachable backend moves the session to Failed.
func (s *Session) Fetch(n int) (Range, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return Range{}, &ConcurrentFetchError{}
	}
	if s.status == NoQuery {
		s.mu.Unlock()
		return Range{}, ErrNoQuery
	}
	if s.exhaustedLocked() {
		s.status = Complete
		r := Range{Start: s.pos, Stop: s.pos}
		s.mu.Unlock()
		return r, nil
	}
	if n <= 0 {
		n = s.pageSize
	}
	prevStatus := s.status
	start := s.pos
	s.busy = true
	s.status = Fetching
	s.mu.Unlock()

	fetched, total, staged, err := s.fetchChunks(start, n)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		// Leave fetched records untouched and restore the pre-call
		// state; an unreachable backend is terminal until a new query.
		var unavailable *BackendUnavailableError
		if errors.As(err, &unavailable) {
			s.status = Failed
		} else {
			s.status = prevStatus
		}
		return Range{}, err
	}
	for idx, rec := range staged {
		// Idempotent paging: indices already populated are never
		// overwritten by later fetches.
		if _, ok := s.records[idx]; !ok {
			s.records[idx] = rec
		}
	}
	s.total = total
	s.pos = fetched.Stop
	if s.exhaustedLocked() {
		s.status = Complete
	} else {
		s.status = Ready
	}
	return fetched, nil
}

// fetchChunks performs one or more backend requests covering n records
// from start, respecting the per-request cap. Records are staged and
// only committed by the caller on full success.
func (s *Session) fetchChunks(start, n int) (Range, int, map[int]*edpoprec.Record, error) {
	staged := make(map[int]*edpoprec.Record)
	sink := func(index int, rec *edpoprec.Record) {
		staged[index] = rec
	}
	total := -1
	pos := start
	remaining := n
	for remaining > 0 {
		size := remaining
		if s.maxPage > 0 && size > s.maxPage {
			size = s.maxPage
		}
		res, err := s.backend.FetchRange(Range{Start: pos, Stop: pos + size}, sink)
		if err != nil {
			return Range{}, 0, nil, err
		}
		total = res.Total
		pos = res.Fetched.Stop
		remaining -= size
		if s.allAtOnce || res.Fetched.Len() < size || pos >= total {
			break
		}
	}
	return Range{Start: start, Stop: pos}, total, staged, nil
}

// FetchAll fetches until the session is Complete, using the adapter's
// page size for each step.
func (s *Session) FetchAll() error {
	for {
		s.mu.Lock()
		done := s.status == Complete || s.exhaustedLocked()
		s.mu.Unlock()
		if done {
			return nil
		}
		if _, err := s.Fetch(0); err != nil {
			return err
		}
	}
}

// GetByID returns the record at a 1-based absolute result index. The
// index must be within [1, NumberFetched].
func (s *Session) GetByID(index int) (*edpoprec.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[index-1]
	if index < 1 || !ok {
		return nil, &IndexError{Index: index, Fetched: len(s.records)}
	}
	return rec, nil
}

// Records returns the fetched records in index order.
func (s *Session) Records() []*edpoprec.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*edpoprec.Record, 0, len(s.records))
	for i := 0; i < s.pos; i++ {
		if rec, ok := s.records[i]; ok {
			out = append(out, rec)
		}
	}
	return out
}

func (s *Session) exhaustedLocked() bool {
	return s.total >= 0 && s.pos >= s.total
}
