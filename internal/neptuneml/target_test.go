package neptuneml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/neptuneexport/internal/domain"
)

func TestParseTargets(t *testing.T) {
	data := []byte(`{"targets": [
		{"node": "Person", "property": "age", "type": "regression"},
		{"edge": ["Person", "knows", "Person"], "properties": ["since"], "type": "classification"}
	]}`)

	targets, err := ParseTargets(PropertyGraph, data)
	require.NoError(t, err)
	require.Len(t, targets, 2)

	assert.Equal(t, "Person", targets[0].NodeType.FullyQualifiedLabel())
	assert.Equal(t, "age", targets[0].Property)
	assert.Equal(t, "regression", targets[0].TaskType)
	assert.True(t, targets[1].NodeType.IsEdge())
	assert.Equal(t, "since", targets[1].Property)
}

func TestParseTargetsRDF(t *testing.T) {
	data := []byte(`[
		{"node": "http://example.org/Movie", "predicate": "http://example.org/genre", "type": "classification"},
		{"node": "http://example.org/Movie", "type": "link_prediction"}
	]`)

	targets, err := ParseTargets(RDF, data)
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, "", targets[1].Property)
	assert.Equal(t, "link_prediction", targets[1].TaskType)
}

func TestParseTargetsErrors(t *testing.T) {
	tests := []struct {
		name  string
		model DataModel
		data  string
		check func(t *testing.T, err error)
	}{
		{name: "Not JSON", model: PropertyGraph, data: `{`, check: isParseError},
		{name: "Wrong shape", model: PropertyGraph, data: `{"node": "Person"}`, check: isParseError},
		{name: "Missing property", model: PropertyGraph, data: `[{"node": "Person", "type": "regression"}]`,
			check: func(t *testing.T, err error) {
				var parseErr *domain.ParseError
				require.True(t, errors.As(err, &parseErr))
				assert.Equal(t, "target 1 (Label: Person)", parseErr.Context)
			}},
		{name: "RDF predicate mismatch", model: RDF, data: `[{"node": "C", "type": "regression"}]`,
			check: func(t *testing.T, err error) {
				var validationErr *domain.ValidationError
				assert.True(t, errors.As(err, &validationErr))
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTargets(tt.model, []byte(tt.data))
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func isParseError(t *testing.T, err error) {
	var parseErr *domain.ParseError
	assert.True(t, errors.As(err, &parseErr))
}
