package cluster

import (
	"slices"

	"evalgo.org/neptuneexport/internal/domain"
	"evalgo.org/neptuneexport/internal/helpers"
)

// ConnectionConfig describes where the driver connects and how it authenticates.
type ConnectionConfig struct {
	endpoints     []string
	port          int
	useSSL        bool
	useIAMAuth    bool
	direct        bool
	handshake     HandshakeRequestConfig
	serviceRegion string
}

// NewConnectionConfig validates s. With a load balancer configured the driver connects to the
// balancer on the lb port, and the cluster endpoints travel in the handshake request config.
func NewConnectionConfig(s Settings) (ConnectionConfig, error) {
	if len(s.Endpoints) == 0 {
		return ConnectionConfig{}, domain.NewConfigurationError("endpoint", "at least one endpoint is required", nil)
	}
	endpoints := make([]string, 0, len(s.Endpoints))
	for _, ep := range s.Endpoints {
		host, err := helpers.EndpointHost(ep)
		if err != nil {
			return ConnectionConfig{}, domain.NewConfigurationError("endpoint", err.Error(), nil)
		}
		endpoints = append(endpoints, host)
	}
	endpoints = helpers.DeduplicateHosts(endpoints)

	if err := helpers.ValidatePort("port", s.Port); err != nil {
		return ConnectionConfig{}, domain.NewConfigurationError("port", "invalid port", err)
	}

	cfg := ConnectionConfig{
		endpoints:     endpoints,
		port:          s.Port,
		useSSL:        s.UseSSL,
		useIAMAuth:    s.UseIAMAuth,
		direct:        true,
		serviceRegion: s.ServiceRegion,
	}

	if s.NLBEndpoint != "" && s.ALBEndpoint != "" {
		return ConnectionConfig{}, domain.NewConfigurationError("nlb-endpoint",
			"a network and an application load balancer cannot both be configured", nil)
	}

	proxy, removeHostHeader := s.NLBEndpoint, false
	if s.ALBEndpoint != "" {
		proxy, removeHostHeader = s.ALBEndpoint, true
	}
	if proxy == "" {
		return cfg, nil
	}

	proxyHost, err := helpers.EndpointHost(proxy)
	if err != nil {
		return ConnectionConfig{}, domain.NewConfigurationError("lb-endpoint", err.Error(), nil)
	}
	if err := helpers.ValidatePort("lb-port", s.LBPort); err != nil {
		return ConnectionConfig{}, domain.NewConfigurationError("lb-port", "invalid load balancer port", err)
	}

	cfg.handshake = NewHandshakeRequestConfig(endpoints, s.Port, removeHostHeader)
	cfg.endpoints = []string{proxyHost}
	cfg.port = s.LBPort
	cfg.direct = false
	return cfg, nil
}

// Endpoints returns the hosts the driver connects to.
func (c ConnectionConfig) Endpoints() []string { return slices.Clone(c.endpoints) }

func (c ConnectionConfig) Port() int { return c.port }

func (c ConnectionConfig) UseSSL() bool { return c.useSSL }

func (c ConnectionConfig) UseIAMAuth() bool { return c.useIAMAuth }

// IsDirectConnection is false when a load balancer sits between the driver and the cluster.
func (c ConnectionConfig) IsDirectConnection() bool { return c.direct }

func (c ConnectionConfig) HandshakeRequestConfig() HandshakeRequestConfig { return c.handshake }

// ServiceRegion is the region configured explicitly, or empty.
func (c ConnectionConfig) ServiceRegion() string { return c.serviceRegion }
