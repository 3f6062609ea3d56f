package cluster

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/neptuneexport/internal/domain"
)

func settings(mutate func(*Settings)) Settings {
	s := DefaultSettings()
	s.Endpoints = []string{"db-1.cluster.neptune.amazonaws.com", "db-2.cluster.neptune.amazonaws.com"}
	if mutate != nil {
		mutate(&s)
	}
	return s
}

func TestNewConnectionConfigDirect(t *testing.T) {
	cfg, err := NewConnectionConfig(settings(func(s *Settings) {
		s.Endpoints = append(s.Endpoints, "wss://db-1.cluster.neptune.amazonaws.com:8182/gremlin")
		s.UseIAMAuth = true
		s.ServiceRegion = "eu-west-1"
	}))
	require.NoError(t, err)

	assert.Equal(t, []string{"db-1.cluster.neptune.amazonaws.com", "db-2.cluster.neptune.amazonaws.com"}, cfg.Endpoints())
	assert.Equal(t, 8182, cfg.Port())
	assert.True(t, cfg.UseSSL())
	assert.True(t, cfg.UseIAMAuth())
	assert.True(t, cfg.IsDirectConnection())
	assert.True(t, cfg.HandshakeRequestConfig().IsZero())
	assert.Equal(t, "eu-west-1", cfg.ServiceRegion())
}

func TestNewConnectionConfigLoadBalancers(t *testing.T) {
	tests := []struct {
		name             string
		mutate           func(*Settings)
		proxy            string
		removeHostHeader bool
	}{
		{
			name:   "Network load balancer",
			mutate: func(s *Settings) { s.NLBEndpoint = "nlb.example.com"; s.LBPort = 8182 },
			proxy:  "nlb.example.com",
		},
		{
			name:             "Application load balancer",
			mutate:           func(s *Settings) { s.ALBEndpoint = "https://alb.example.com"; s.LBPort = 443 },
			proxy:            "alb.example.com",
			removeHostHeader: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := settings(tt.mutate)
			cfg, err := NewConnectionConfig(s)
			require.NoError(t, err)

			assert.False(t, cfg.IsDirectConnection())
			assert.Equal(t, []string{tt.proxy}, cfg.Endpoints())
			assert.Equal(t, s.LBPort, cfg.Port())

			hs := cfg.HandshakeRequestConfig()
			assert.Equal(t, []string{"db-1.cluster.neptune.amazonaws.com", "db-2.cluster.neptune.amazonaws.com"}, hs.Endpoints())
			assert.Equal(t, 8182, hs.Port())
			assert.Equal(t, tt.removeHostHeader, hs.RemoveHostHeader())
			assert.Equal(t, "db-1.cluster.neptune.amazonaws.com:8182", hs.HostHeader())
		})
	}
}

func TestNewConnectionConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		setting string
	}{
		{name: "No endpoints", mutate: func(s *Settings) { s.Endpoints = nil }, setting: "endpoint"},
		{name: "Blank endpoint", mutate: func(s *Settings) { s.Endpoints = []string{" "} }, setting: "endpoint"},
		{name: "Port out of range", mutate: func(s *Settings) { s.Port = 0 }, setting: "port"},
		{name: "Both load balancers", mutate: func(s *Settings) {
			s.NLBEndpoint = "nlb.example.com"
			s.ALBEndpoint = "alb.example.com"
		}, setting: "nlb-endpoint"},
		{name: "Bad lb port", mutate: func(s *Settings) { s.NLBEndpoint = "nlb.example.com"; s.LBPort = -1 }, setting: "lb-port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConnectionConfig(settings(tt.mutate))
			var cfgErr *domain.ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
			assert.Equal(t, tt.setting, cfgErr.Setting)
		})
	}
}

func TestHandshakeRequestConfigRoundTrip(t *testing.T) {
	hs := NewHandshakeRequestConfig([]string{"a.example.com", "b.example.com"}, 8182, true)
	assert.Equal(t, "a.example.com,b.example.com,8182,true", hs.Value())

	parsed, err := ParseHandshakeRequestConfig(hs.Value())
	require.NoError(t, err)
	assert.Equal(t, hs, parsed)
}

func TestParseHandshakeRequestConfigErrors(t *testing.T) {
	for _, value := range []string{"", "a,8182", "a,port,true", "a,8182,maybe", ",8182,false"} {
		t.Run(value, func(t *testing.T) {
			_, err := ParseHandshakeRequestConfig(value)
			var cfgErr *domain.ConfigurationError
			assert.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
		})
	}
}

func TestConcurrencyConfigPoolSizes(t *testing.T) {
	tests := []struct {
		name         string
		concurrency  int
		endpoints    int
		min, max     int
		simultaneous int
		inProcess    int
		threshold    int
	}{
		{name: "Concurrency one keeps defaults", concurrency: 1, endpoints: 1, min: 2, max: 8, simultaneous: 16, inProcess: 4, threshold: 4},
		{name: "Small concurrency", concurrency: 4, endpoints: 2, min: 3, max: 8, simultaneous: 16, inProcess: 4, threshold: 4},
		{name: "Large concurrency", concurrency: 64, endpoints: 2, min: 33, max: 33, simultaneous: 33, inProcess: 33, threshold: 33},
		{name: "Zero endpoints treated as one", concurrency: 10, endpoints: 0, min: 11, max: 11, simultaneous: 16, inProcess: 11, threshold: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConcurrencyConfig(tt.concurrency)
			require.NoError(t, err)

			sizes := cfg.PoolSizes(tt.endpoints)
			assert.Equal(t, tt.min, sizes.MinConnectionPoolSize)
			assert.Equal(t, tt.max, sizes.MaxConnectionPoolSize)
			assert.Equal(t, tt.simultaneous, sizes.MaxSimultaneousUsagePerConnection)
			assert.Equal(t, tt.inProcess, sizes.MaxInProcessPerConnection)
			assert.Equal(t, tt.threshold, sizes.NewConnectionThreshold())
		})
	}

	_, err := NewConcurrencyConfig(0)
	var cfgErr *domain.ConfigurationError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, DefaultPoolSizes, ConcurrencyConfig{}.PoolSizes(3))
}

func TestSerializationConfig(t *testing.T) {
	def := DefaultSerializationConfig()
	assert.Equal(t, SerializerGraphBinaryV1, def.Serializer())
	assert.Equal(t, 64, def.BatchSize())

	cfg, err := NewSerializationConfig(SerializerGraphBinaryV1, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.BatchSize())

	var cfgErr *domain.ConfigurationError
	_, err = NewSerializationConfig("graphson-v3", 0)
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "serializer", cfgErr.Setting)

	_, err = NewSerializationConfig("", -1)
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "batch-size", cfgErr.Setting)
}

func TestFromSettings(t *testing.T) {
	c, ser, err := FromSettings(settings(func(s *Settings) { s.Concurrency = 8 }))
	require.NoError(t, err)
	assert.Equal(t, 8, c.ConcurrencyConfig().Concurrency())
	assert.Len(t, c.ConnectionConfig().Endpoints(), 2)
	assert.Equal(t, SerializerGraphBinaryV1, ser.Serializer())

	_, _, err = FromSettings(settings(func(s *Settings) { s.Concurrency = 0 }))
	assert.Error(t, err)
}
