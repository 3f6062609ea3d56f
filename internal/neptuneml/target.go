package neptuneml

import (
	"encoding/json"
	"fmt"

	"evalgo.org/neptuneexport/internal/domain"
)

// Target is one training target of a NeptuneML data processing config.
type Target struct {
	NodeType Label
	Property string
	TaskType string
}

// ParseTarget reads the node type, then the property and finally the task type of a target
// document, each step narrowing the parsing context used in error messages.
func ParseTarget(model DataModel, doc any, ctx ParsingContext) (Target, error) {
	nodeType, err := ParseLabel(doc, ctx)
	if err != nil {
		return Target{}, err
	}
	ctx = ctx.WithLabel(nodeType)

	property, err := model.ParseProperty(doc, ctx, nodeType)
	if err != nil {
		return Target{}, err
	}
	if property != "" {
		ctx = ctx.WithProperty(property)
	}

	taskType, err := model.ParseTaskType(doc, ctx, nodeType, property)
	if err != nil {
		return Target{}, err
	}

	return Target{NodeType: nodeType, Property: property, TaskType: taskType}, nil
}

// ParseTargets decodes a JSON array of targets, or an object holding one under "targets".
func ParseTargets(model DataModel, data []byte) ([]Target, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, domain.NewParseError("targets", "training targets", "a JSON document")
	}

	items, ok := raw.([]any)
	if !ok {
		obj, isObject := raw.(map[string]any)
		if isObject {
			items, ok = obj["targets"].([]any)
		}
		if !ok {
			return nil, domain.NewParseError("targets", "training targets", "an array of targets")
		}
	}

	targets := make([]Target, 0, len(items))
	for i, item := range items {
		target, err := ParseTarget(model, item, NewParsingContext(fmt.Sprintf("target %d", i+1)))
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil
}
