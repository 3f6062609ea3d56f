package cluster

import (
	"fmt"
	"net"
	"slices"
	"strconv"
	"strings"

	"evalgo.org/neptuneexport/internal/domain"
)

// HandshakeRequestConfig tells a load balancer aware channelizer which cluster the proxy fronts, so
// the upgrade request can be signed for the cluster rather than for the proxy.
type HandshakeRequestConfig struct {
	endpoints        []string
	port             int
	removeHostHeader bool
}

func NewHandshakeRequestConfig(endpoints []string, port int, removeHostHeader bool) HandshakeRequestConfig {
	return HandshakeRequestConfig{
		endpoints:        slices.Clone(endpoints),
		port:             port,
		removeHostHeader: removeHostHeader,
	}
}

func (h HandshakeRequestConfig) Endpoints() []string { return slices.Clone(h.endpoints) }

func (h HandshakeRequestConfig) Port() int { return h.port }

// RemoveHostHeader is set behind an application load balancer, which routes on its own Host.
func (h HandshakeRequestConfig) RemoveHostHeader() bool { return h.removeHostHeader }

// IsZero reports whether the config is empty, as it is for direct connections.
func (h HandshakeRequestConfig) IsZero() bool {
	return len(h.endpoints) == 0
}

// HostHeader is the Host value the request is signed with: the first cluster endpoint and port.
func (h HandshakeRequestConfig) HostHeader() string {
	if len(h.endpoints) == 0 {
		return ""
	}
	return net.JoinHostPort(h.endpoints[0], strconv.Itoa(h.port))
}

// Value encodes the config as ep1,ep2,...,port,removeHostHeader.
func (h HandshakeRequestConfig) Value() string {
	parts := make([]string, 0, len(h.endpoints)+2)
	parts = append(parts, h.endpoints...)
	parts = append(parts, strconv.Itoa(h.port), strconv.FormatBool(h.removeHostHeader))
	return strings.Join(parts, ",")
}

func (h HandshakeRequestConfig) String() string {
	return h.Value()
}

// ParseHandshakeRequestConfig decodes a value produced by Value.
func ParseHandshakeRequestConfig(value string) (HandshakeRequestConfig, error) {
	parts := strings.Split(value, ",")
	if len(parts) < 3 {
		return HandshakeRequestConfig{}, domain.NewConfigurationError("handshake-request",
			fmt.Sprintf("expected endpoints, port and host header flag but got %q", value), nil)
	}

	n := len(parts)
	removeHostHeader, err := strconv.ParseBool(strings.TrimSpace(parts[n-1]))
	if err != nil {
		return HandshakeRequestConfig{}, domain.NewConfigurationError("handshake-request",
			fmt.Sprintf("invalid host header flag %q", parts[n-1]), err)
	}
	port, err := strconv.Atoi(strings.TrimSpace(parts[n-2]))
	if err != nil {
		return HandshakeRequestConfig{}, domain.NewConfigurationError("handshake-request",
			fmt.Sprintf("invalid port %q", parts[n-2]), err)
	}

	endpoints := make([]string, 0, n-2)
	for _, ep := range parts[:n-2] {
		ep = strings.TrimSpace(ep)
		if ep == "" {
			return HandshakeRequestConfig{}, domain.NewConfigurationError("handshake-request",
				fmt.Sprintf("empty endpoint in %q", value), nil)
		}
		endpoints = append(endpoints, ep)
	}

	return HandshakeRequestConfig{endpoints: endpoints, port: port, removeHostHeader: removeHostHeader}, nil
}
