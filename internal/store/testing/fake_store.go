// Package testing provides test doubles for the store package.
package testing

import (
	"context"
	"sync"

	"github.com/rileyhilliard/tremor/internal/store"
	"github.com/rileyhilliard/tremor/internal/tremor"
)

// LatestResult is one scripted FetchLatest response.
type LatestResult struct {
	Record tremor.SensorRecord
	Err    error
}

// RecentResult is one scripted FetchRecent response.
type RecentResult struct {
	Records []tremor.SensorRecord
	Err     error
}

// FakeStore is an in-memory store.Store. By default it serves Records
// (newest first) the way a real table would. Scripted results queued with
// QueueLatest/QueueRecent take precedence and are consumed in order.
type FakeStore struct {
	mu sync.Mutex

	// Records backs the default behavior, newest first.
	Records []tremor.SensorRecord

	// Errors returned by every call while set.
	LatestErr error
	RecentErr error
	PingErr   error

	// Call tracking
	LatestCalls  int
	RecentCalls  int
	RecentLimits []int
	PingCalls    int
	Closed       bool

	latestQueue []LatestResult
	recentQueue []RecentResult

	// gate blocks fetches until released; nil means no blocking.
	gate chan struct{}
}

// NewFakeStore creates a fake serving the given records (newest first).
func NewFakeStore(records ...tremor.SensorRecord) *FakeStore {
	return &FakeStore{Records: records}
}

// FetchLatest returns the next scripted result, or the first record.
func (f *FakeStore) FetchLatest(ctx context.Context) (tremor.SensorRecord, error) {
	if err := f.wait(ctx); err != nil {
		return tremor.SensorRecord{}, &store.QueryError{Op: store.OpFetchLatest, Table: "fake", Err: err}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.LatestCalls++

	if len(f.latestQueue) > 0 {
		res := f.latestQueue[0]
		f.latestQueue = f.latestQueue[1:]
		return res.Record, res.Err
	}
	if f.LatestErr != nil {
		return tremor.SensorRecord{}, f.LatestErr
	}
	if len(f.Records) == 0 {
		return tremor.SensorRecord{}, &store.QueryError{Op: store.OpFetchLatest, Table: "fake", Err: store.ErrNoRows}
	}
	return f.Records[0], nil
}

// FetchRecent returns the next scripted result, or up to limit records.
func (f *FakeStore) FetchRecent(ctx context.Context, limit int) ([]tremor.SensorRecord, error) {
	if err := f.wait(ctx); err != nil {
		return nil, &store.QueryError{Op: store.OpFetchRecent, Table: "fake", Err: err}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.RecentCalls++
	f.RecentLimits = append(f.RecentLimits, limit)

	if len(f.recentQueue) > 0 {
		res := f.recentQueue[0]
		f.recentQueue = f.recentQueue[1:]
		return res.Records, res.Err
	}
	if f.RecentErr != nil {
		return nil, f.RecentErr
	}

	limit = store.NormalizeLimit(limit)
	if limit > len(f.Records) {
		limit = len(f.Records)
	}
	out := make([]tremor.SensorRecord, limit)
	copy(out, f.Records[:limit])
	return out, nil
}

// Ping returns PingErr.
func (f *FakeStore) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.PingCalls++
	return f.PingErr
}

// Close marks the store closed.
func (f *FakeStore) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// QueueLatest scripts the next FetchLatest response.
func (f *FakeStore) QueueLatest(rec tremor.SensorRecord, err error) *FakeStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latestQueue = append(f.latestQueue, LatestResult{Record: rec, Err: err})
	return f
}

// QueueRecent scripts the next FetchRecent response.
func (f *FakeStore) QueueRecent(records []tremor.SensorRecord, err error) *FakeStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recentQueue = append(f.recentQueue, RecentResult{Records: records, Err: err})
	return f
}

// SetLatestError makes every FetchLatest fail with err (nil clears it).
func (f *FakeStore) SetLatestError(err error) *FakeStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LatestErr = err
	return f
}

// SetRecentError makes every FetchRecent fail with err (nil clears it).
func (f *FakeStore) SetRecentError(err error) *FakeStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RecentErr = err
	return f
}

// Block makes subsequent fetches wait until Release is called or their
// context ends.
func (f *FakeStore) Block() *FakeStore {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gate == nil {
		f.gate = make(chan struct{})
	}
	return f
}

// Release unblocks every waiting fetch.
func (f *FakeStore) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gate != nil {
		close(f.gate)
		f.gate = nil
	}
}

// Calls returns the FetchLatest and FetchRecent call counts.
func (f *FakeStore) Calls() (latest, recent int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.LatestCalls, f.RecentCalls
}

func (f *FakeStore) wait(ctx context.Context) error {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()

	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ store.Store = (*FakeStore)(nil)
