package neptuneml

import (
	"fmt"
	"sort"
	"strings"

	"evalgo.org/neptuneexport/internal/domain"
)

// Label identifies a node type (one or more vertex labels, or an RDF class) or an edge type
// (an edge label plus the labels of the vertices it connects).
type Label struct {
	labels     []string
	fromLabels []string
	toLabels   []string
	edge       bool
}

// NewLabel creates a node type label. Multiple labels describe a multi-label vertex.
func NewLabel(labels ...string) Label {
	return Label{labels: sortedCopy(labels)}
}

// NewEdgeLabel creates an edge type label.
func NewEdgeLabel(label string, fromLabels, toLabels []string) Label {
	return Label{
		labels:     []string{label},
		fromLabels: sortedCopy(fromLabels),
		toLabels:   sortedCopy(toLabels),
		edge:       true,
	}
}

// Labels returns the vertex labels, or the edge label for an edge type.
func (l Label) Labels() []string {
	return append([]string(nil), l.labels...)
}

// IsEdge reports whether l describes an edge type.
func (l Label) IsEdge() bool {
	return l.edge
}

// IsZero reports whether l carries no labels.
func (l Label) IsZero() bool {
	return len(l.labels) == 0
}

// FullyQualifiedLabel renders the label the way it appears in exported file names and messages:
// "A;B" for a multi-label vertex and "(from)-label-(to)" for an edge.
func (l Label) FullyQualifiedLabel() string {
	if l.edge {
		return fmt.Sprintf("(%s)-%s-(%s)",
			strings.Join(l.fromLabels, ";"),
			strings.Join(l.labels, ";"),
			strings.Join(l.toLabels, ";"))
	}
	return strings.Join(l.labels, ";")
}

func (l Label) String() string {
	return l.FullyQualifiedLabel()
}

// ParseLabel reads the node type of a training target. A "node" field holds a label or an array of
// labels; an "edge" field holds a [from, label, to] triple whose vertex parts are a label or an array
// of labels.
func ParseLabel(doc any, ctx ParsingContext) (Label, error) {
	obj, _ := doc.(map[string]any)

	if node, ok := obj["node"]; ok {
		labels, ok := stringOrStrings(node)
		if !ok || len(labels) == 0 {
			return Label{}, domain.NewParseError("node", ctx.String(), "a 'node' field with a string or array of strings value")
		}
		return NewLabel(labels...), nil
	}

	if edge, ok := obj["edge"]; ok {
		parts, ok := edge.([]any)
		if !ok || len(parts) != 3 {
			return Label{}, domain.NewParseError("edge", ctx.String(), "an 'edge' field with an array value of [from, label, to]")
		}
		from, fromOK := stringOrStrings(parts[0])
		label, labelOK := parts[1].(string)
		to, toOK := stringOrStrings(parts[2])
		if !fromOK || !labelOK || !toOK || label == "" {
			return Label{}, domain.NewParseError("edge", ctx.String(), "an 'edge' field with an array value of [from, label, to]")
		}
		return NewEdgeLabel(label, from, to), nil
	}

	return Label{}, domain.NewParseError("node", ctx.String(), "a 'node' or 'edge' field")
}

func sortedCopy(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	return out
}
