package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	gremlingo "github.com/apache/tinkerpop/gremlin-go/v3/driver"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"evalgo.org/neptuneexport/internal/client"
	"evalgo.org/neptuneexport/internal/cluster"
	"evalgo.org/neptuneexport/internal/helpers"
)

// queryOptions holds the flags of the query command.
type queryOptions struct {
	gremlin       string
	countLabel    string
	timeoutMillis int64
	outputFile    string
	runLogDir     string
	keepDays      int
}

var (
	queryOpts = queryOptions{}

	queryCmd = &cobra.Command{
		Use:   "query",
		Short: "Run a Gremlin query against a Neptune cluster",
		Long: `Open a Gremlin connection to Neptune and run a single query.

Connections can go directly to the cluster or through a network or
application load balancer. With several endpoints requests rotate over them. With --use-iam-auth every WebSocket handshake is
signed with SigV4 for the neptune-db service; behind a load balancer the
signature is computed for the Neptune endpoint rather than the balancer.

Connection flags can also be set in the config file or as NEPTUNE_EXPORT_*
environment variables (for example NEPTUNE_EXPORT_ENDPOINT).

Examples:
  # Count all vertices
  neptune-export query -e db.cluster.neptune.amazonaws.com --gremlin "g.V().count()"

  # Count vertices with a label through an ALB, signing with IAM
  neptune-export query -e db.cluster.neptune.amazonaws.com \
    --alb-endpoint alb.example.com --lb-port 443 --use-iam-auth \
    --service-region us-east-1 --count-label Person

  # Write the results to a file
  neptune-export query -e db.cluster.neptune.amazonaws.com \
    --gremlin "g.V().limit(10).valueMap()" --output-file results.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := clusterSettings(viper.GetViper())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			factory := client.NewFactory(client.WithLogger(logger))
			return runQuery(ctx, cmd.OutOrStdout(), factory, settings, queryOpts)
		},
	}
)

func init() {
	addClusterFlags(queryCmd.Flags(), viper.GetViper())

	queryCmd.Flags().StringVar(&queryOpts.gremlin, "gremlin", "", "Gremlin script to run")
	queryCmd.Flags().StringVar(&queryOpts.countLabel, "count-label", "", "count the vertices with this label")
	queryCmd.Flags().Int64Var(&queryOpts.timeoutMillis, "timeout-millis", 0, "server side evaluation timeout in milliseconds (0 uses the server default)")
	queryCmd.Flags().StringVar(&queryOpts.outputFile, "output-file", "", "write results to this file instead of stdout")
	addRunLogFlags(queryCmd.Flags(), &queryOpts.runLogDir, &queryOpts.keepDays)
	rootCmd.AddCommand(queryCmd)
}

func (o queryOptions) validate() error {
	switch {
	case o.gremlin == "" && o.countLabel == "":
		return fmt.Errorf("one of --gremlin or --count-label is required")
	case o.gremlin != "" && o.countLabel != "":
		return fmt.Errorf("--gremlin and --count-label cannot be combined")
	case o.timeoutMillis < 0:
		return fmt.Errorf("--timeout-millis must not be negative")
	}
	return nil
}

func runQuery(ctx context.Context, out io.Writer, factory *client.Factory, settings cluster.Settings, opts queryOptions) (err error) {
	if err := opts.validate(); err != nil {
		return err
	}

	var results []any
	var endpoints []string

	if opts.runLogDir != "" {
		journal, jerr := openJournal(opts.runLogDir, opts.keepDays)
		if jerr != nil {
			return jerr
		}
		run, jerr := journal.Start("query", "", queryArgs(opts))
		if jerr != nil {
			return jerr
		}
		defer func() {
			run.Metadata = map[string]interface{}{"results": len(results), "endpoints": endpoints}
			recordRun(journal, run, err)
		}()
	}

	c, serialization, err := cluster.FromSettings(settings)
	if err != nil {
		return err
	}

	neptune, err := factory.Create(ctx, c, serialization)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := neptune.Close(); cerr != nil {
			logger.WithError(cerr).Warn("Failed to close Gremlin cluster")
		}
	}()

	endpoints = neptune.Endpoints()

	if opts.countLabel != "" {
		results, err = neptune.Traverse(ctx, func(g *gremlingo.GraphTraversalSource) *gremlingo.GraphTraversal {
			return g.V().HasLabel(opts.countLabel).Count()
		})
		if err != nil {
			return err
		}
	} else {
		q := neptune.QueryClient()
		defer q.Close()

		var timeout *int64
		if opts.timeoutMillis > 0 {
			timeout = &opts.timeoutMillis
		}
		rs, serr := q.Submit(ctx, opts.gremlin, timeout)
		if serr != nil {
			return serr
		}
		if results, err = rs.All(ctx); err != nil {
			return err
		}
	}

	if results == nil {
		results = []any{}
	}

	logger.WithFields(logrus.Fields{
		"results":   len(results),
		"endpoints": endpoints,
	}).Info("Query completed")

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	data = append(data, '\n')

	if opts.outputFile != "" {
		return helpers.WriteFileLocked(opts.outputFile, data)
	}
	_, err = out.Write(data)
	return err
}

func queryArgs(opts queryOptions) []string {
	if opts.countLabel != "" {
		return []string{"--count-label", opts.countLabel}
	}
	return []string{"--gremlin", opts.gremlin}
}
