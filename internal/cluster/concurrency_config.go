package cluster

import (
	"fmt"

	"evalgo.org/neptuneexport/internal/domain"
)

// PoolSizes bounds the connection pool kept for one endpoint.
type PoolSizes struct {
	MinConnectionPoolSize             int
	MaxConnectionPoolSize             int
	MaxSimultaneousUsagePerConnection int
	MaxInProcessPerConnection         int
}

// DefaultPoolSizes are used when the export runs with a concurrency of 1.
var DefaultPoolSizes = PoolSizes{
	MinConnectionPoolSize:             2,
	MaxConnectionPoolSize:             8,
	MaxSimultaneousUsagePerConnection: 16,
	MaxInProcessPerConnection:         4,
}

// ConcurrencyConfig sizes the driver's connection pools for the number of parallel requests.
type ConcurrencyConfig struct {
	concurrency int
}

func NewConcurrencyConfig(concurrency int) (ConcurrencyConfig, error) {
	if concurrency < 1 {
		return ConcurrencyConfig{}, domain.NewConfigurationError("concurrency",
			fmt.Sprintf("concurrency must be at least 1, got %d", concurrency), nil)
	}
	return ConcurrencyConfig{concurrency: concurrency}, nil
}

func (c ConcurrencyConfig) Concurrency() int { return c.concurrency }

// effective treats the zero value as concurrency 1.
func (c ConcurrencyConfig) effective() int {
	if c.concurrency < 1 {
		return 1
	}
	return c.concurrency
}

// PoolSizes spreads the requested concurrency over endpointCount hosts. A concurrency of 1 keeps
// DefaultPoolSizes.
func (c ConcurrencyConfig) PoolSizes(endpointCount int) PoolSizes {
	concurrency := c.effective()
	if concurrency == 1 {
		return DefaultPoolSizes
	}
	if endpointCount < 1 {
		endpointCount = 1
	}

	size := concurrency/endpointCount + 1
	return PoolSizes{
		MinConnectionPoolSize:             max(size, DefaultPoolSizes.MinConnectionPoolSize),
		MaxConnectionPoolSize:             max(size, DefaultPoolSizes.MaxConnectionPoolSize),
		MaxSimultaneousUsagePerConnection: max(size, DefaultPoolSizes.MaxSimultaneousUsagePerConnection),
		MaxInProcessPerConnection:         max(size, DefaultPoolSizes.MaxInProcessPerConnection),
	}
}

// NewConnectionThreshold is the number of in-flight requests on a connection at which the pool
// opens another one.
func (p PoolSizes) NewConnectionThreshold() int {
	return min(p.MaxSimultaneousUsagePerConnection, p.MaxInProcessPerConnection)
}
