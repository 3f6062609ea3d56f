package cluster

import (
	"fmt"
	"slices"

	"evalgo.org/neptuneexport/internal/domain"
	"evalgo.org/neptuneexport/internal/helpers"
)

// Serializers understood by the Gremlin driver.
const (
	SerializerGraphBinaryV1 = "graphbinary-v1"
)

// DefaultSerializer is used when none is configured.
const DefaultSerializer = SerializerGraphBinaryV1

var serializers = []string{SerializerGraphBinaryV1}

// SerializationConfig selects the wire format and the result batch size.
type SerializationConfig struct {
	serializer string
	batchSize  int
}

// NewSerializationConfig fills zero values with defaults and rejects unknown serializers.
func NewSerializationConfig(serializer string, batchSize int) (SerializationConfig, error) {
	if serializer == "" {
		serializer = DefaultSerializer
	}
	if !slices.Contains(serializers, serializer) {
		return SerializationConfig{}, domain.NewConfigurationError("serializer",
			fmt.Sprintf("unknown serializer %q, expected one of %v", serializer, serializers), nil)
	}
	if batchSize == 0 {
		batchSize = helpers.DefaultBatchSize
	}
	if batchSize < 0 {
		return SerializationConfig{}, domain.NewConfigurationError("batch-size", "must be positive", nil)
	}

	return SerializationConfig{serializer: serializer, batchSize: batchSize}, nil
}

// DefaultSerializationConfig returns GraphBinary with the default batch size.
func DefaultSerializationConfig() SerializationConfig {
	cfg, _ := NewSerializationConfig("", 0)
	return cfg
}

func (s SerializationConfig) Serializer() string { return s.serializer }

func (s SerializationConfig) BatchSize() int { return s.batchSize }
