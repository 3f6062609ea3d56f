// Package neptuneml implements the Neptune ML export profile: the per-data-model argument
// normalisation applied before an export runs, and the parsers that read training targets
// (task types and properties) from a profile configuration document.
//
// Two data models exist, PropertyGraph and RDF. DataModel is a closed interface; callers obtain
// a value through the package variables or ParseDataModel and dispatch through the interface.
package neptuneml

import (
	"slices"
	"strings"

	"evalgo.org/neptuneexport/internal/args"
	"evalgo.org/neptuneexport/internal/domain"
	"evalgo.org/neptuneexport/internal/helpers"
)

// DataModel is the graph data model an export runs against.
type DataModel interface {
	// Name returns the canonical data model name.
	Name() string

	// NormalizeArguments rewrites the argument set in place so the export engine runs with a
	// configuration consistent with this data model. It never rejects input.
	NormalizeArguments(a *args.ArgumentSet)

	// NodeTypeName labels the node type in generated documents ("Label" or "Class").
	NodeTypeName() string
	// NodeAttributeNameSingular labels a node attribute ("Property" or "Predicate").
	NodeAttributeNameSingular() string
	// NodeAttributeNamePlural labels node attributes ("Properties" or "Predicates").
	NodeAttributeNamePlural() string

	// ParseTaskType reads the task type of a training target.
	ParseTaskType(doc any, ctx ParsingContext, nodeType Label, property string) (string, error)
	// ParseProperty reads the property (or predicate) a training target applies to.
	ParseProperty(doc any, ctx ParsingContext, nodeType Label) (string, error)

	dataModel()
}

var (
	// PropertyGraph is the labelled property graph data model (Gremlin).
	PropertyGraph DataModel = propertyGraph{}
	// RDF is the RDF data model (SPARQL).
	RDF DataModel = rdf{}
)

// ParseDataModel resolves a data model by name.
func ParseDataModel(name string) (DataModel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "pg", "propertygraph", "property-graph", "property_graph":
		return PropertyGraph, nil
	case "rdf":
		return RDF, nil
	default:
		return nil, domain.NewConfigurationError("data-model", "unknown data model '"+name+"', expected pg or rdf", nil)
	}
}

type propertyGraph struct{}

func (propertyGraph) dataModel() {}

func (propertyGraph) Name() string { return "propertygraph" }

func (propertyGraph) NormalizeArguments(a *args.ArgumentSet) {
	a.AddFlag(helpers.FlagExcludeTypeDefinitions)

	if slices.Contains(a.OptionValues(helpers.OptionEdgeLabelStrategy), helpers.EdgeLabelsOnly) {
		a.RemoveOptions(helpers.OptionEdgeLabelStrategy)
	}
	a.SetOption(helpers.OptionEdgeLabelStrategy, helpers.EdgeAndVertexLabels)

	a.AddFlag(helpers.FlagMergeFiles)

	if a.Contains(helpers.CommandExportPG) && a.ContainsAny(helpers.ConfigOptions...) {
		a.Replace(helpers.CommandExportPG, helpers.CommandExportPGFromConfig)
	}
}

func (propertyGraph) NodeTypeName() string              { return "Label" }
func (propertyGraph) NodeAttributeNameSingular() string { return "Property" }
func (propertyGraph) NodeAttributeNamePlural() string   { return "Properties" }

func (propertyGraph) ParseTaskType(doc any, ctx ParsingContext, _ Label, _ string) (string, error) {
	taskType, err := parseNodeTaskType(doc, ctx)
	if err != nil {
		return "", err
	}
	return string(taskType), nil
}

func (m propertyGraph) ParseProperty(doc any, ctx ParsingContext, nodeType Label) (string, error) {
	return newPropertyParser(doc, ctx.WithLabel(nodeType), m).parseSingleProperty()
}

type rdf struct{}

func (rdf) dataModel() {}

func (rdf) Name() string { return "rdf" }

func (rdf) NormalizeArguments(a *args.ArgumentSet) {
	a.SetOption(helpers.OptionFormat, helpers.FormatNTriples)
	a.SetOption(helpers.OptionRDFExportScope, helpers.RDFExportScopeEdges)
}

func (rdf) NodeTypeName() string              { return "Class" }
func (rdf) NodeAttributeNameSingular() string { return "Predicate" }
func (rdf) NodeAttributeNamePlural() string   { return "Predicates" }

func (rdf) ParseTaskType(doc any, ctx ParsingContext, nodeType Label, predicate string) (string, error) {
	taskType, err := parseRDFTaskType(doc, ctx)
	if err != nil {
		return "", err
	}
	if err := taskType.Validate(predicate, nodeType); err != nil {
		return "", err
	}
	return string(taskType), nil
}

func (m rdf) ParseProperty(doc any, ctx ParsingContext, nodeType Label) (string, error) {
	return newPropertyParser(doc, ctx.WithLabel(nodeType), m).parseNullableSingleProperty()
}
