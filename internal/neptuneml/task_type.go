package neptuneml

import (
	"fmt"
	"strings"

	"evalgo.org/neptuneexport/internal/domain"
)

// NodeTaskType is the machine learning task of a property graph node target.
type NodeTaskType string

const (
	NodeClassification NodeTaskType = "classification"
	NodeRegression     NodeTaskType = "regression"
)

var nodeTaskTypes = map[string]NodeTaskType{
	"classification":      NodeClassification,
	"regression":          NodeRegression,
	"node_classification": NodeClassification,
	"node_regression":     NodeRegression,
}

// RDFTaskType is the machine learning task of an RDF target.
type RDFTaskType string

const (
	RDFClassification RDFTaskType = "classification"
	RDFRegression     RDFTaskType = "regression"
	RDFLinkPrediction RDFTaskType = "link_prediction"
)

var rdfTaskTypes = map[string]RDFTaskType{
	"classification":  RDFClassification,
	"regression":      RDFRegression,
	"link_prediction": RDFLinkPrediction,
}

// RequiresPredicate reports whether targets of this task type must name a predicate.
func (t RDFTaskType) RequiresPredicate() bool {
	return t == RDFClassification || t == RDFRegression
}

// Validate checks the task type against the predicate and node type it was declared with.
// Classification and regression need a predicate; link prediction must not have one.
func (t RDFTaskType) Validate(predicate string, nodeType Label) error {
	switch {
	case t.RequiresPredicate() && predicate == "":
		return domain.NewValidationError("predicate",
			fmt.Sprintf("predicate is missing for %s target for %s", t, nodeType.FullyQualifiedLabel()))
	case !t.RequiresPredicate() && predicate != "":
		return domain.NewValidationError("predicate",
			fmt.Sprintf("predicate %q is not allowed for %s target for %s", predicate, t, nodeType.FullyQualifiedLabel()))
	}
	return nil
}

func parseNodeTaskType(doc any, ctx ParsingContext) (NodeTaskType, error) {
	value, ok := stringField(doc, "type")
	if ok {
		if taskType, known := nodeTaskTypes[strings.ToLower(value)]; known {
			return taskType, nil
		}
	}
	return "", domain.NewParseError("type", ctx.String(), "one of: classification, regression")
}

func parseRDFTaskType(doc any, ctx ParsingContext) (RDFTaskType, error) {
	value, ok := stringField(doc, "type")
	if ok {
		if taskType, known := rdfTaskTypes[strings.ToLower(value)]; known {
			return taskType, nil
		}
	}
	return "", domain.NewParseError("type", ctx.String(), "one of: classification, regression, link_prediction")
}
