// Package main provides the entry point for neptune-export.
//
// neptune-export prepares exports from Amazon Neptune: it normalises export arguments for the
// NeptuneML property graph and RDF data models, validates training targets and opens
// IAM-signed Gremlin connections, directly or through a network or application load balancer.
//
// Usage:
//
//	neptune-export apply-profile --data-model pg -- export-pg -e <endpoint>
//	neptune-export query -e <endpoint> --use-iam-auth --gremlin "g.V().count()"
//
// Environment Variables:
//   - NEPTUNE_EXPORT_*: Any flag, e.g. NEPTUNE_EXPORT_ENDPOINT or NEPTUNE_EXPORT_USE_IAM_AUTH
//   - SERVICE_REGION / AWS_REGION: Region used for SigV4 signing
//   - AWS_ACCESS_KEY_ID, AWS_PROFILE, ...: Standard AWS credential chain
package main

import (
	"os"

	"evalgo.org/neptuneexport/cmd"
)

// main is the application entry point that delegates to the cobra command structure.
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
