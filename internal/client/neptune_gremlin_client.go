package client

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"

	gremlingo "github.com/apache/tinkerpop/gremlin-go/v3/driver"
	"github.com/sirupsen/logrus"

	"evalgo.org/neptuneexport/internal/helpers"
)

// DefaultBatchSize is the result iteration batch size used for exports.
const DefaultBatchSize = helpers.DefaultBatchSize

var (
	ErrClientClosed      = errors.New("gremlin client is closed")
	ErrQueryClientClosed = errors.New("query client is closed")
)

// NeptuneGremlinClient owns one connection pool per endpoint. Requests rotate over the pools.
type NeptuneGremlinClient struct {
	endpoints []string
	conns     []Connection
	batchSize int
	log       logrus.FieldLogger

	next   atomic.Uint64
	closed atomic.Bool
}

func (c *NeptuneGremlinClient) connection() Connection {
	i := c.next.Add(1) - 1
	return c.conns[i%uint64(len(c.conns))]
}

// NewTraversalSource returns a traversal source bound to the next endpoint.
func (c *NeptuneGremlinClient) NewTraversalSource() *gremlingo.GraphTraversalSource {
	return c.connection().TraversalSource()
}

// Traverse runs the traversal built by build on the next endpoint and returns every result.
func (c *NeptuneGremlinClient) Traverse(ctx context.Context, build func(g *gremlingo.GraphTraversalSource) *gremlingo.GraphTraversal) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	conn := c.connection()
	return conn.Traverse(build(conn.TraversalSource())).All(ctx)
}

// QueryClient returns a client for raw Gremlin scripts.
func (c *NeptuneGremlinClient) QueryClient() *QueryClient {
	return &QueryClient{owner: c}
}

// Endpoints lists the hosts connected to.
func (c *NeptuneGremlinClient) Endpoints() []string {
	return slices.Clone(c.endpoints)
}

func (c *NeptuneGremlinClient) IsClosed() bool {
	return c.closed.Load()
}

// Close closes every pool. Later calls do nothing.
func (c *NeptuneGremlinClient) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.log.Debug("Closing Gremlin cluster")
	for _, conn := range c.conns {
		conn.Close()
	}
	return nil
}

// QueryClient submits Gremlin scripts.
type QueryClient struct {
	owner  *NeptuneGremlinClient
	closed atomic.Bool
}

// Submit sends gremlinQuery. A non-nil timeoutMillis is sent as the evaluation timeout.
func (q *QueryClient) Submit(ctx context.Context, gremlinQuery string, timeoutMillis *int64) (*ResultSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q.closed.Load() {
		return nil, ErrQueryClientClosed
	}
	if q.owner.IsClosed() {
		return nil, ErrClientClosed
	}
	return q.owner.connection().Submit(gremlinQuery, SubmitOptions{
		TimeoutMillis: timeoutMillis,
		BatchSize:     q.owner.batchSize,
	})
}

// Close closes this client only.
func (q *QueryClient) Close() error {
	q.closed.Store(true)
	return nil
}
