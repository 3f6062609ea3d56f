package client

import (
	"context"
	"sync"
)

// ResultSet collects the results of one request. The request runs on the first call to All and
// keeps running if the caller gives up.
type ResultSet struct {
	requestID string
	fetch     func() ([]any, error)

	once    sync.Once
	done    chan struct{}
	results []any
	err     error
}

// NewResultSet wraps fetch, which blocks until every result has arrived.
func NewResultSet(requestID string, fetch func() ([]any, error)) *ResultSet {
	return &ResultSet{requestID: requestID, fetch: fetch, done: make(chan struct{})}
}

// RequestID is empty for traversals.
func (rs *ResultSet) RequestID() string { return rs.requestID }

// All waits for every result or for ctx to end.
func (rs *ResultSet) All(ctx context.Context) ([]any, error) {
	rs.once.Do(func() {
		go func() {
			defer close(rs.done)
			rs.results, rs.err = rs.fetch()
		}()
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-rs.done:
		return rs.results, rs.err
	}
}
