package helpers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/neptuneexport/internal/domain"
)

func TestEndpointHost(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "db.cluster-abc.us-east-1.neptune.amazonaws.com", want: "db.cluster-abc.us-east-1.neptune.amazonaws.com"},
		{input: "db.example.com:8182", want: "db.example.com"},
		{input: "wss://db.example.com:8182/gremlin", want: "db.example.com"},
		{input: "https://db.example.com/", want: "db.example.com"},
		{input: "  db.example.com  ", want: "db.example.com"},
		{input: "", wantErr: true},
		{input: "http://", wantErr: true},
		{input: "wss://", wantErr: true},
		{input: "https:///gremlin", wantErr: true},
		{input: "/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := EndpointHost(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort("port", 8182))

	err := ValidatePort("lb-port", 0)
	var validationErr *domain.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "lb-port", validationErr.Field)
}

func TestDeduplicateHosts(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, DeduplicateHosts([]string{"a", "b", "a"}))
}

func TestWriteFileLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.json")

	require.NoError(t, WriteFileLocked(path, []byte(`["a"]`)))
	require.NoError(t, WriteFileLocked(path, []byte(`["b"]`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `["b"]`, string(data))
	assert.NoError(t, VerifyFileNotEmpty(path))
	assert.Equal(t, int64(5), GetFileSize(path))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "temporary files are removed")
	}
}

func TestFileCleanupIgnoresMissingFiles(t *testing.T) {
	fc := NewFileCleanup()
	fc.Add(filepath.Join(t.TempDir(), "missing"))
	assert.NoError(t, fc.Cleanup())
	assert.Equal(t, int64(-1), GetFileSize(filepath.Join(t.TempDir(), "missing")))
}
