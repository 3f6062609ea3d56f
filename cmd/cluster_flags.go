package cmd

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"evalgo.org/neptuneexport/internal/cluster"
)

var clusterFlagNames = []string{
	"endpoint", "port", "use-ssl", "use-iam-auth", "nlb-endpoint", "alb-endpoint", "lb-port",
	"service-region", "concurrency", "serializer", "batch-size",
}

// addClusterFlags registers the Neptune connection flags on fs and binds them to v so they can
// also come from the config file or NEPTUNE_EXPORT_* variables.
func addClusterFlags(fs *pflag.FlagSet, v *viper.Viper) {
	def := cluster.DefaultSettings()

	fs.StringSliceP("endpoint", "e", nil, "Neptune endpoint(s), repeat or comma separate for several instances")
	fs.Int("port", def.Port, "Neptune port")
	fs.Bool("use-ssl", def.UseSSL, "connect using TLS")
	fs.Bool("use-iam-auth", false, "sign requests with IAM SigV4")
	fs.String("nlb-endpoint", "", "network load balancer in front of Neptune")
	fs.String("alb-endpoint", "", "application load balancer in front of Neptune")
	fs.Int("lb-port", def.LBPort, "load balancer port")
	fs.String("service-region", "", "AWS region used for SigV4 signing (defaults to SERVICE_REGION or AWS_REGION)")
	fs.Int("concurrency", def.Concurrency, "number of concurrent export workers the connection pool is sized for")
	fs.String("serializer", def.Serializer, "Gremlin serializer (graphbinary-v1)")
	fs.Int("batch-size", def.BatchSize, "result iteration batch size")

	for _, name := range clusterFlagNames {
		_ = v.BindPFlag(name, fs.Lookup(name))
	}
}

// clusterSettings reads the bound connection settings from v.
func clusterSettings(v *viper.Viper) (cluster.Settings, error) {
	s := cluster.DefaultSettings()
	if err := v.Unmarshal(&s); err != nil {
		return cluster.Settings{}, fmt.Errorf("failed to read cluster settings: %w", err)
	}
	return s, nil
}
