// Package sigv4 signs Neptune websocket handshakes with AWS Signature Version 4.
package sigv4

import (
	"os"
	"strings"

	"evalgo.org/neptuneexport/internal/domain"
)

// Properties are the signing settings that do not come from credentials.
type Properties struct {
	ServiceRegion string
}

// PropertiesProvider resolves signing properties.
type PropertiesProvider interface {
	SigV4Properties() (Properties, error)
}

// StaticPropertiesProvider always returns the same properties.
type StaticPropertiesProvider Properties

func (p StaticPropertiesProvider) SigV4Properties() (Properties, error) {
	if strings.TrimSpace(p.ServiceRegion) == "" {
		return Properties{}, domain.NewConfigurationError("service-region", "no service region configured", nil)
	}
	return Properties(p), nil
}

// EnvPropertiesProvider reads SERVICE_REGION, then AWS_REGION.
type EnvPropertiesProvider struct {
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

func (p EnvPropertiesProvider) SigV4Properties() (Properties, error) {
	getenv := p.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	for _, key := range []string{"SERVICE_REGION", "AWS_REGION"} {
		if region := strings.TrimSpace(getenv(key)); region != "" {
			return Properties{ServiceRegion: region}, nil
		}
	}
	return Properties{}, domain.NewConfigurationError("service-region",
		"neither SERVICE_REGION nor AWS_REGION is set", nil)
}

// ChainedPropertiesProvider returns the first provider's properties that resolve.
type ChainedPropertiesProvider []PropertiesProvider

func NewChainedPropertiesProvider(providers ...PropertiesProvider) ChainedPropertiesProvider {
	return ChainedPropertiesProvider(providers)
}

func (c ChainedPropertiesProvider) SigV4Properties() (Properties, error) {
	for _, p := range c {
		props, err := p.SigV4Properties()
		if err == nil {
			return props, nil
		}
	}
	return Properties{}, domain.NewConfigurationError("service-region",
		"unable to determine the service region; set --service-region, SERVICE_REGION or AWS_REGION", nil)
}

// DefaultPropertiesProvider prefers an explicitly configured region over the environment.
func DefaultPropertiesProvider(region string) PropertiesProvider {
	if region == "" {
		return NewChainedPropertiesProvider(EnvPropertiesProvider{})
	}
	return NewChainedPropertiesProvider(StaticPropertiesProvider{ServiceRegion: region}, EnvPropertiesProvider{})
}
