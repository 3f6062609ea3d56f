package client

import (
	"crypto/tls"
	"net"
	"strconv"
	"sync"
	"time"

	gremlingo "github.com/apache/tinkerpop/gremlin-go/v3/driver"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"evalgo.org/neptuneexport/internal/helpers"
)

// DriverSettings is what the factory hands the driver for a single endpoint.
type DriverSettings struct {
	Endpoint                     string
	URL                          string
	UseSSL                       bool
	ConnectionTimeout            time.Duration
	InitialConcurrentConnections int
	MaximumConcurrentConnections int
	NewConnectionThreshold       int
	BatchSize                    int
	Serializer                   string
	Signing                      StrategyKind
	Auth                         *HandshakeAuth
	Logger                       logrus.FieldLogger
}

// SubmitOptions are sent with a script request.
type SubmitOptions struct {
	TimeoutMillis *int64
	BatchSize     int
}

// Connection is an open connection pool to one endpoint.
type Connection interface {
	TraversalSource() *gremlingo.GraphTraversalSource
	Traverse(t *gremlingo.GraphTraversal) *ResultSet
	Submit(query string, opts SubmitOptions) (*ResultSet, error)
	Close()
}

// ConnectFunc opens a Connection.
type ConnectFunc func(s DriverSettings) (Connection, error)

// GremlinURL returns the websocket URL of the Gremlin endpoint on host:port.
func GremlinURL(host string, port int, useSSL bool) string {
	scheme := "ws"
	if useSSL {
		scheme = "wss"
	}
	return scheme + "://" + net.JoinHostPort(host, strconv.Itoa(port)) + helpers.DefaultGremlinPath
}

type gremlinConnection struct {
	settings DriverSettings
	remote   *gremlingo.DriverRemoteConnection

	mu     sync.Mutex
	client *gremlingo.Client
}

// connectGremlin dials the traversal pool eagerly. The script client is opened on first use.
func connectGremlin(s DriverSettings) (Connection, error) {
	remote, err := gremlingo.NewDriverRemoteConnection(s.URL, func(d *gremlingo.DriverRemoteConnectionSettings) {
		d.TraversalSource = "g"
		d.LogVerbosity = gremlingo.Debug
		d.Logger = newDriverLogger(s.Logger, s.Endpoint)
		d.TlsConfig = s.tlsConfig()
		d.ConnectionTimeout = s.ConnectionTimeout
		d.InitialConcurrentConnections = s.InitialConcurrentConnections
		d.MaximumConcurrentConnections = s.MaximumConcurrentConnections
		d.NewConnectionThreshold = s.NewConnectionThreshold
		if s.Auth != nil {
			d.AuthInfo = s.Auth
		}
	})
	if err != nil {
		return nil, s.dialError(err)
	}
	return &gremlinConnection{settings: s, remote: remote}, nil
}

func (s DriverSettings) tlsConfig() *tls.Config {
	if !s.UseSSL {
		return nil
	}
	return &tls.Config{MinVersion: tls.VersionTLS12}
}

// dialError prefers the signing failure recorded during the handshake over the driver's error.
func (s DriverSettings) dialError(err error) error {
	if s.Auth != nil {
		if authErr := s.Auth.Err(); authErr != nil {
			return authErr
		}
	}
	return err
}

func (c *gremlinConnection) TraversalSource() *gremlingo.GraphTraversalSource {
	return gremlingo.Traversal_().WithRemote(c.remote)
}

func (c *gremlinConnection) Traverse(t *gremlingo.GraphTraversal) *ResultSet {
	return NewResultSet("", func() ([]any, error) {
		results, err := t.ToList()
		if err != nil {
			return nil, err
		}
		return interfaces(results), nil
	})
}

func (c *gremlinConnection) Submit(query string, opts SubmitOptions) (*ResultSet, error) {
	client, err := c.scriptClient()
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	builder := new(gremlingo.RequestOptionsBuilder).SetRequestId(id)
	if opts.BatchSize > 0 {
		builder = builder.SetBatchSize(opts.BatchSize)
	}
	if opts.TimeoutMillis != nil {
		builder = builder.SetEvaluationTimeout(int(*opts.TimeoutMillis))
	}

	rs, err := client.SubmitWithOptions(query, builder.Create())
	if err != nil {
		return nil, c.settings.dialError(err)
	}
	return NewResultSet(id.String(), func() ([]any, error) {
		results, err := rs.All()
		if err != nil {
			return nil, err
		}
		return interfaces(results), nil
	}), nil
}

func (c *gremlinConnection) scriptClient() (*gremlingo.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client, nil
	}

	s := c.settings
	client, err := gremlingo.NewClient(s.URL, func(d *gremlingo.ClientSettings) {
		d.TraversalSource = "g"
		d.LogVerbosity = gremlingo.Debug
		d.Logger = newDriverLogger(s.Logger, s.Endpoint)
		d.TlsConfig = s.tlsConfig()
		d.ConnectionTimeout = s.ConnectionTimeout
		d.InitialConcurrentConnections = s.InitialConcurrentConnections
		d.MaximumConcurrentConnections = s.MaximumConcurrentConnections
		d.NewConnectionThreshold = s.NewConnectionThreshold
		if s.Auth != nil {
			d.AuthInfo = s.Auth
		}
	})
	if err != nil {
		return nil, s.dialError(err)
	}
	c.client = client
	return client, nil
}

func (c *gremlinConnection) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		c.client.Close()
		c.client = nil
	}
	c.remote.Close()
}

func interfaces(results []*gremlingo.Result) []any {
	out := make([]any, 0, len(results))
	for _, r := range results {
		out = append(out, r.GetInterface())
	}
	return out
}

// driverLogger forwards driver log lines to logrus.
type driverLogger struct {
	entry *logrus.Entry
}

func newDriverLogger(l logrus.FieldLogger, endpoint string) driverLogger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return driverLogger{entry: l.WithField("endpoint", endpoint)}
}

func (l driverLogger) Log(verbosity gremlingo.LogVerbosity, v ...interface{}) {
	if level, ok := logrusLevel(verbosity); ok {
		l.entry.Log(level, v...)
	}
}

func (l driverLogger) Logf(verbosity gremlingo.LogVerbosity, format string, v ...interface{}) {
	if level, ok := logrusLevel(verbosity); ok {
		l.entry.Logf(level, format, v...)
	}
}

func logrusLevel(v gremlingo.LogVerbosity) (logrus.Level, bool) {
	switch v {
	case gremlingo.Debug:
		return logrus.DebugLevel, true
	case gremlingo.Info:
		return logrus.InfoLevel, true
	case gremlingo.Warning:
		return logrus.WarnLevel, true
	case gremlingo.Error:
		return logrus.ErrorLevel, true
	default:
		return 0, false
	}
}
