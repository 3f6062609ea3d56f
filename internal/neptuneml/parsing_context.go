package neptuneml

import (
	"fmt"
	"strings"
)

// ParsingContext describes where in a profile document a parser is working, for error messages.
type ParsingContext struct {
	description string
	label       *Label
	property    string
}

// NewParsingContext creates a context with the given description, e.g. "node classification target".
func NewParsingContext(description string) ParsingContext {
	return ParsingContext{description: description}
}

// WithLabel returns a copy of the context scoped to a node type.
func (c ParsingContext) WithLabel(l Label) ParsingContext {
	c.label = &l
	return c
}

// WithProperty returns a copy of the context scoped to a property.
func (c ParsingContext) WithProperty(property string) ParsingContext {
	c.property = property
	return c
}

func (c ParsingContext) String() string {
	var details []string
	if c.label != nil && !c.label.IsZero() {
		details = append(details, "Label: "+c.label.FullyQualifiedLabel())
	}
	if c.property != "" {
		details = append(details, "Property: "+c.property)
	}
	if len(details) == 0 {
		return c.description
	}
	return fmt.Sprintf("%s (%s)", c.description, strings.Join(details, ", "))
}
