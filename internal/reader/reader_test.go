// file: internal/reader/reader_test.go
// version: 1.1.0
// guid: 4d5e6f7a-8b9c-0d1e-2f3a-5c6d7e8f9a0c

package reader

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edpop/explorer/internal/edpoprec"
)

// simpleBackend always yields 20 items whose identifier is their index
// number.
type simpleBackend struct {
	items      int
	calls      int
	failAt     int   // fail when a fetch touches this index, -1 to disable
	failWith   error // error to return at failAt
	allAtOnce  bool
	catalog    *edpoprec.Catalog
	lastPrep   string
	perFetched []Range
}

func newSimpleBackend() *simpleBackend {
	return &simpleBackend{
		items:  20,
		failAt: -1,
		catalog: &edpoprec.Catalog{
			URI:       "http://example.com/reader",
			ShortName: "Simple",
			IRIPrefix: "http://example.com/records/reader/",
		},
	}
}

func (b *simpleBackend) TransformQuery(query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", &MalformedQueryError{Query: query, Detail: "query must not be empty"}
	}
	b.lastPrep = strings.ToUpper(query)
	return b.lastPrep, nil
}

func (b *simpleBackend) FetchRange(rng Range, put RecordSink) (FetchResult, error) {
	b.calls++
	stop := rng.Stop
	if b.allAtOnce {
		stop = b.items
	}
	if stop > b.items {
		stop = b.items
	}
	if b.failAt >= 0 && b.failAt < stop && b.failAt >= rng.Start {
		return FetchResult{}, b.failWith
	}
	for i := rng.Start; i < stop; i++ {
		rec := edpoprec.NewRecord(b.catalog)
		rec.Identifier = strconv.Itoa(i)
		put(i, rec)
	}
	fetched := Range{Start: rng.Start, Stop: stop}
	b.perFetched = append(b.perFetched, fetched)
	return FetchResult{Total: b.items, Fetched: fetched}, nil
}

func TestSetQueryTransformsAndResets(t *testing.T) {
	b := newSimpleBackend()
	s := NewSession(b.catalog, b)

	assert.Equal(t, NoQuery, s.Status())
	require.NoError(t, s.SetQuery("plato"))
	assert.Equal(t, Ready, s.Status())
	assert.Equal(t, "plato", s.Query())
	assert.Equal(t, "PLATO", s.TransformedQuery())
	_, known := s.NumberOfResults()
	assert.False(t, known)

	_, err := s.Fetch(0)
	require.NoError(t, err)
	assert.Equal(t, 10, s.NumberFetched())

	// A new query discards all fetched state.
	require.NoError(t, s.SetQuery("aristotle"))
	assert.Equal(t, 0, s.NumberFetched())
	_, known = s.NumberOfResults()
	assert.False(t, known)
}

func TestSetQueryRejectsMalformed(t *testing.T) {
	b := newSimpleBackend()
	s := NewSession(b.catalog, b)

	err := s.SetQuery("   ")
	var malformed *MalformedQueryError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, NoQuery, s.Status())
}

func TestFetchWithoutQuery(t *testing.T) {
	b := newSimpleBackend()
	s := NewSession(b.catalog, b)

	_, err := s.Fetch(0)
	assert.ErrorIs(t, err, ErrNoQuery)
}

func TestFetchPagesToCompletion(t *testing.T) {
	b := newSimpleBackend()
	s := NewSession(b.catalog, b)
	require.NoError(t, s.SetQuery("plato"))

	rng, err := s.Fetch(0)
	require.NoError(t, err)
	assert.Equal(t, Range{Start: 0, Stop: 10}, rng)
	total, known := s.NumberOfResults()
	assert.True(t, known)
	assert.Equal(t, 20, total)
	assert.Equal(t, Ready, s.Status())

	rng, err = s.Fetch(0)
	require.NoError(t, err)
	assert.Equal(t, Range{Start: 10, Stop: 20}, rng)
	assert.Equal(t, Complete, s.Status())
	assert.Equal(t, 20, s.NumberFetched())

	// Fetching past the end is a no-op.
	calls := b.calls
	rng, err = s.Fetch(0)
	require.NoError(t, err)
	assert.Equal(t, 0, rng.Len())
	assert.Equal(t, calls, b.calls)
	assert.Equal(t, Complete, s.Status())
}

func TestFetchShortFinalPage(t *testing.T) {
	b := newSimpleBackend()
	b.items = 13
	s := NewSession(b.catalog, b)
	require.NoError(t, s.SetQuery("plato"))

	_, err := s.Fetch(0)
	require.NoError(t, err)
	rng, err := s.Fetch(0)
	require.NoError(t, err)
	assert.Equal(t, Range{Start: 10, Stop: 13}, rng)
	assert.Equal(t, Complete, s.Status())
}

func TestFetchRechunksLargeRequests(t *testing.T) {
	b := newSimpleBackend()
	s := NewSession(b.catalog, b, WithMaxPageSize(6))
	require.NoError(t, s.SetQuery("plato"))

	rng, err := s.Fetch(20)
	require.NoError(t, err)
	assert.Equal(t, Range{Start: 0, Stop: 20}, rng)
	// 6+6+6+2
	assert.Equal(t, 4, b.calls)
	assert.Equal(t, Complete, s.Status())
}

func TestFetchAll(t *testing.T) {
	b := newSimpleBackend()
	b.items = 35
	s := NewSession(b.catalog, b)
	require.NoError(t, s.SetQuery("plato"))

	require.NoError(t, s.FetchAll())
	assert.Equal(t, Complete, s.Status())
	assert.Equal(t, 35, s.NumberFetched())
	recs := s.Records()
	require.Len(t, recs, 35)
	assert.Equal(t, "0", recs[0].Identifier)
	assert.Equal(t, "34", recs[34].Identifier)
}

func TestFetchAllAtOnceDeliversEverything(t *testing.T) {
	b := newSimpleBackend()
	b.allAtOnce = true
	s := NewSession(b.catalog, b, FetchAllAtOnce())
	require.NoError(t, s.SetQuery("plato"))

	rng, err := s.Fetch(0)
	require.NoError(t, err)
	assert.Equal(t, Range{Start: 0, Stop: 20}, rng)
	assert.Equal(t, 1, b.calls)
	assert.Equal(t, Complete, s.Status())
}

func TestFailedFetchLeavesRecordsUntouched(t *testing.T) {
	b := newSimpleBackend()
	s := NewSession(b.catalog, b)
	require.NoError(t, s.SetQuery("plato"))

	_, err := s.Fetch(0)
	require.NoError(t, err)
	require.Equal(t, 10, s.NumberFetched())

	b.failAt = 15
	b.failWith = &ReaderError{Catalog: "Simple", Err: errors.New("boom")}
	_, err = s.Fetch(0)
	var rerr *ReaderError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 10, s.NumberFetched())
	assert.Equal(t, Ready, s.Status())

	// Recovery: the same range can be fetched again.
	b.failAt = -1
	require.NoError(t, s.FetchAll())
	assert.Equal(t, 20, s.NumberFetched())
}

func TestUnavailableBackendFailsSession(t *testing.T) {
	b := newSimpleBackend()
	s := NewSession(b.catalog, b)
	require.NoError(t, s.SetQuery("plato"))

	b.failAt = 0
	b.failWith = &BackendUnavailableError{Catalog: "Simple", Err: errors.New("connection refused")}
	_, err := s.Fetch(0)
	var unavailable *BackendUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, Failed, s.Status())

	// A new query resets the failure.
	require.NoError(t, s.SetQuery("aristotle"))
	assert.Equal(t, Ready, s.Status())
}

// reentrantBackend calls back into its own session from FetchRange,
// the way a misbehaving converter or hook could.
type reentrantBackend struct {
	catalog     *edpoprec.Catalog
	session     *Session
	fetchErr    error
	setQueryErr error
}

func (b *reentrantBackend) TransformQuery(query string) (string, error) {
	return query, nil
}

func (b *reentrantBackend) FetchRange(rng Range, put RecordSink) (FetchResult, error) {
	_, b.fetchErr = b.session.Fetch(1)
	b.setQueryErr = b.session.SetQuery("other")

	rec := edpoprec.NewRecord(b.catalog)
	rec.Identifier = "only"
	put(rng.Start, rec)
	return FetchResult{Total: 1, Fetched: Range{Start: rng.Start, Stop: rng.Start + 1}}, nil
}

func TestReentrantFetchFailsFast(t *testing.T) {
	cat := &edpoprec.Catalog{URI: "http://example.com/reader", ShortName: "Simple"}
	b := &reentrantBackend{catalog: cat}
	s := NewSession(cat, b)
	b.session = s

	require.NoError(t, s.SetQuery("plato"))
	_, err := s.Fetch(0)
	require.NoError(t, err)

	// The nested calls were refused instead of corrupting the session.
	var busy *ConcurrentFetchError
	require.ErrorAs(t, b.fetchErr, &busy)
	require.ErrorAs(t, b.setQueryErr, &busy)

	assert.Equal(t, Complete, s.Status())
	assert.Equal(t, 1, s.NumberFetched())
	assert.Equal(t, "plato", s.Query())
}

func TestGetByID(t *testing.T) {
	b := newSimpleBackend()
	s := NewSession(b.catalog, b)
	require.NoError(t, s.SetQuery("plato"))
	_, err := s.Fetch(0)
	require.NoError(t, err)

	rec, err := s.GetByID(1)
	require.NoError(t, err)
	assert.Equal(t, "0", rec.Identifier)
	rec, err = s.GetByID(10)
	require.NoError(t, err)
	assert.Equal(t, "9", rec.Identifier)

	var idxErr *IndexError
	_, err = s.GetByID(0)
	require.ErrorAs(t, err, &idxErr)
	_, err = s.GetByID(11)
	require.ErrorAs(t, err, &idxErr)
	assert.Contains(t, idxErr.Error(), "11")
}

func TestRangeLen(t *testing.T) {
	assert.Equal(t, 5, Range{Start: 3, Stop: 8}.Len())
	assert.Equal(t, 0, Range{Start: 8, Stop: 8}.Len())
	assert.Equal(t, 0, Range{Start: 9, Stop: 8}.Len())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "no query", NoQuery.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "fetching", Fetching.String())
	assert.Equal(t, "complete", Complete.String())
	assert.Equal(t, "failed", Failed.String())
}
