// Package cluster holds the immutable connection, concurrency and serialization settings used to
// build a Gremlin cluster against Neptune.
package cluster

import (
	"evalgo.org/neptuneexport/internal/helpers"
)

// Settings is the flat, user facing configuration. It is unmarshalled by viper from flags,
// environment and the config file.
type Settings struct {
	Endpoints     []string `mapstructure:"endpoint"`
	Port          int      `mapstructure:"port"`
	UseSSL        bool     `mapstructure:"use-ssl"`
	UseIAMAuth    bool     `mapstructure:"use-iam-auth"`
	NLBEndpoint   string   `mapstructure:"nlb-endpoint"`
	ALBEndpoint   string   `mapstructure:"alb-endpoint"`
	LBPort        int      `mapstructure:"lb-port"`
	ServiceRegion string   `mapstructure:"service-region"`
	Concurrency   int      `mapstructure:"concurrency"`
	Serializer    string   `mapstructure:"serializer"`
	BatchSize     int      `mapstructure:"batch-size"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Port:        helpers.DefaultPort,
		UseSSL:      true,
		LBPort:      helpers.DefaultLBPort,
		Concurrency: 1,
		Serializer:  DefaultSerializer,
		BatchSize:   helpers.DefaultBatchSize,
	}
}

// FromSettings builds the cluster and serialization configuration described by s.
func FromSettings(s Settings) (*Cluster, SerializationConfig, error) {
	conn, err := NewConnectionConfig(s)
	if err != nil {
		return nil, SerializationConfig{}, err
	}
	concurrency, err := NewConcurrencyConfig(s.Concurrency)
	if err != nil {
		return nil, SerializationConfig{}, err
	}
	serialization, err := NewSerializationConfig(s.Serializer, s.BatchSize)
	if err != nil {
		return nil, SerializationConfig{}, err
	}
	return New(conn, concurrency), serialization, nil
}
