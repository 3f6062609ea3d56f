package neptuneml

import (
	"fmt"
	"strings"

	"evalgo.org/neptuneexport/internal/domain"
)

// propertyParser reads the attribute a training target applies to. The field names follow the data
// model: "property"/"properties" for property graphs, "predicate"/"predicates" for RDF.
type propertyParser struct {
	doc      any
	ctx      ParsingContext
	singular string
	plural   string
}

func newPropertyParser(doc any, ctx ParsingContext, model DataModel) propertyParser {
	return propertyParser{
		doc:      doc,
		ctx:      ctx,
		singular: strings.ToLower(model.NodeAttributeNameSingular()),
		plural:   strings.ToLower(model.NodeAttributeNamePlural()),
	}
}

// parseSingleProperty requires exactly one candidate value.
func (p propertyParser) parseSingleProperty() (string, error) {
	candidates, err := p.candidates()
	if err != nil {
		return "", err
	}
	if len(candidates) != 1 {
		return "", p.errExpectedOne()
	}
	return candidates[0], nil
}

// parseNullableSingleProperty allows the value to be absent, returning "".
func (p propertyParser) parseNullableSingleProperty() (string, error) {
	candidates, err := p.candidates()
	if err != nil {
		return "", err
	}
	switch len(candidates) {
	case 0:
		return "", nil
	case 1:
		return candidates[0], nil
	default:
		return "", p.errExpectedOne()
	}
}

func (p propertyParser) candidates() ([]string, error) {
	obj, _ := p.doc.(map[string]any)

	if raw, ok := obj[p.singular]; ok && raw != nil {
		value, ok := raw.(string)
		if !ok {
			return nil, p.errExpectedOne()
		}
		if value == "" {
			return nil, nil
		}
		return []string{value}, nil
	}

	if raw, ok := obj[p.plural]; ok && raw != nil {
		values, ok := stringOrStrings(raw)
		if !ok {
			return nil, domain.NewParseError(p.plural, p.ctx.String(), fmt.Sprintf("a '%s' field with an array of strings value", p.plural))
		}
		return values, nil
	}

	return nil, nil
}

func (p propertyParser) errExpectedOne() error {
	return domain.NewParseError(p.singular, p.ctx.String(),
		fmt.Sprintf("a '%s' field with a string value, or a '%s' field with an array value containing a single string", p.singular, p.plural))
}
