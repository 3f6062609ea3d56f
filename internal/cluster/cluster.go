package cluster

// Cluster pairs where to connect with how many requests to run at once. It is immutable.
type Cluster struct {
	connection  ConnectionConfig
	concurrency ConcurrencyConfig
}

func New(connection ConnectionConfig, concurrency ConcurrencyConfig) *Cluster {
	return &Cluster{connection: connection, concurrency: concurrency}
}

func (c *Cluster) ConnectionConfig() ConnectionConfig {
	return c.connection
}

func (c *Cluster) ConcurrencyConfig() ConcurrencyConfig {
	return c.concurrency
}
