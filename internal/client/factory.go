// Package client builds authenticated Gremlin clients for Neptune clusters.
package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"evalgo.org/neptuneexport/internal/cluster"
	"evalgo.org/neptuneexport/internal/sigv4"
)

// MaxWaitForConnection bounds how long opening a connection may take.
const MaxWaitForConnection = 10 * time.Second

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the sink for connection warnings.
func WithLogger(l logrus.FieldLogger) Option {
	return func(f *Factory) { f.log = l }
}

// WithPropertiesProvider overrides region resolution. By default the cluster's configured region
// is tried first, then the environment.
func WithPropertiesProvider(p sigv4.PropertiesProvider) Option {
	return func(f *Factory) { f.properties = p }
}

// WithCredentialsProvider overrides the default AWS credential chain.
func WithCredentialsProvider(c aws.CredentialsProvider) Option {
	return func(f *Factory) { f.credentials = c }
}

// WithConnectFunc replaces the function that opens driver connections.
func WithConnectFunc(fn ConnectFunc) Option {
	return func(f *Factory) { f.connect = fn }
}

// Factory creates NeptuneGremlinClients. The default credentials provider is resolved on first
// IAM use and cached.
type Factory struct {
	log         logrus.FieldLogger
	properties  sigv4.PropertiesProvider
	credentials aws.CredentialsProvider
	connect     ConnectFunc
	mu          sync.RWMutex
}

// NewFactory creates a new connection factory
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		log:     logrus.StandardLogger(),
		connect: connectGremlin,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create opens one connection pool per endpoint, in parallel, and wraps them. When any endpoint
// fails the pools that did open are closed again.
func (f *Factory) Create(ctx context.Context, c *cluster.Cluster, serialization cluster.SerializationConfig) (*NeptuneGremlinClient, error) {
	conn := c.ConnectionConfig()
	if !conn.UseSSL() {
		f.log.Warn("SSL has been disabled")
	}

	if serialization.Serializer() == "" {
		serialization = cluster.DefaultSerializationConfig()
	}

	strategy, err := f.ResolveSigningStrategy(ctx, conn)
	if err != nil {
		return nil, err
	}

	endpoints := conn.Endpoints()
	sizes := c.ConcurrencyConfig().PoolSizes(len(endpoints))

	conns := make([]Connection, len(endpoints))
	var g errgroup.Group
	for i, endpoint := range endpoints {
		url := GremlinURL(endpoint, conn.Port(), conn.UseSSL())
		settings := DriverSettings{
			Endpoint:                     endpoint,
			URL:                          url,
			UseSSL:                       conn.UseSSL(),
			ConnectionTimeout:            MaxWaitForConnection,
			InitialConcurrentConnections: sizes.MinConnectionPoolSize,
			MaximumConcurrentConnections: sizes.MaxConnectionPoolSize,
			NewConnectionThreshold:       sizes.NewConnectionThreshold(),
			BatchSize:                    serialization.BatchSize(),
			Serializer:                   serialization.Serializer(),
			Signing:                      strategy.Kind(),
			Auth:                         newHandshakeAuth(url, strategy.signer(), f.log),
			Logger:                       f.log,
		}
		i := i
		g.Go(func() error {
			driverConn, err := f.connect(settings)
			if err != nil {
				return fmt.Errorf("failed to connect to %s: %w", url, err)
			}
			conns[i] = driverConn
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, opened := range conns {
			if opened != nil {
				opened.Close()
			}
		}
		return nil, err
	}

	f.log.WithFields(logrus.Fields{
		"endpoints": endpoints,
		"port":      conn.Port(),
		"ssl":       conn.UseSSL(),
		"signing":   strategy.Kind(),
	}).Debug("Created Gremlin cluster")

	return &NeptuneGremlinClient{
		endpoints: endpoints,
		conns:     conns,
		batchSize: serialization.BatchSize(),
		log:       f.log,
	}, nil
}

// ResolveSigningStrategy picks how handshakes are signed for conn. IAM region resolution failures
// surface here rather than on the first request.
func (f *Factory) ResolveSigningStrategy(ctx context.Context, conn cluster.ConnectionConfig) (SigningStrategy, error) {
	if !conn.UseIAMAuth() {
		return NoSigning{}, nil
	}

	props := f.propertiesProvider(conn)
	if _, err := props.SigV4Properties(); err != nil {
		return nil, err
	}
	creds, err := f.credentialsProvider(ctx)
	if err != nil {
		return nil, err
	}

	newSigner := func() (RequestSigner, error) {
		signer, err := sigv4.NewSignerFromProviders(props, creds)
		if err != nil {
			return nil, err
		}
		return signer, nil
	}

	if conn.IsDirectConnection() {
		return PerRequestSigning{NewSigner: newSigner}, nil
	}
	channelizer := NewLBAwareSigV4Channelizer(newSigner)
	authProperty := conn.HandshakeRequestConfig().Value()
	if err := channelizer.Validate(authProperty); err != nil {
		return nil, err
	}
	return StaticHandshake{AuthProperty: authProperty, Channelizer: channelizer}, nil
}

func (f *Factory) propertiesProvider(conn cluster.ConnectionConfig) sigv4.PropertiesProvider {
	if f.properties != nil {
		return f.properties
	}
	return sigv4.DefaultPropertiesProvider(conn.ServiceRegion())
}

func (f *Factory) credentialsProvider(ctx context.Context) (aws.CredentialsProvider, error) {
	f.mu.RLock()
	if f.credentials != nil {
		creds := f.credentials
		f.mu.RUnlock()
		return creds, nil
	}
	f.mu.RUnlock()

	creds, err := sigv4.DefaultCredentialsProvider(ctx)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.credentials = creds
	f.mu.Unlock()

	return creds, nil
}
