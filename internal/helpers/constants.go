// Package helpers provides constants and small utilities shared by the export profile,
// connection and CLI layers.
package helpers

// Export subcommands
const (
	CommandExportPG           = "export-pg"
	CommandExportPGFromConfig = "export-pg-from-config"
	CommandExportRDF          = "export-rdf"
)

// Export flags (no value)
const (
	FlagExcludeTypeDefinitions = "--exclude-type-definitions"
	FlagMergeFiles             = "--merge-files"
)

// Export options (name followed by a value)
const (
	OptionEdgeLabelStrategy = "--edge-label-strategy"
	OptionFormat            = "--format"
	OptionRDFExportScope    = "--rdf-export-scope"
)

// ConfigOptions are the options that make export-pg read a config or filter, which requires
// the export-pg-from-config variant of the command.
var ConfigOptions = []string{"--config", "--filter", "-c", "--config-file", "--filter-config-file"}

// Edge label strategies
const (
	EdgeLabelsOnly      = "edge-labels-only"
	EdgeAndVertexLabels = "edge-and-vertex-labels"
)

// RDF export formats
const (
	FormatTurtle   = "turtle"
	FormatNTriples = "ntriples"
	FormatNQuads   = "nquads"
	FormatNeptune  = "neptuneStreamsJson"
)

// RDF export scopes
const (
	RDFExportScopeGraph = "graph"
	RDFExportScopeEdges = "edges"
	RDFExportScopeQuery = "query"
)

// Connection defaults
const (
	DefaultPort        = 8182
	DefaultLBPort      = 80
	DefaultGremlinPath = "/gremlin"
	NeptuneSigningName = "neptune-db"
	DefaultBatchSize   = 64
)
