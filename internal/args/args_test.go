package args

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/neptuneexport/internal/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		cmdline string
		want    []string
		wantErr bool
	}{
		{
			name:    "Plain tokens",
			cmdline: "export-pg -e endpoint -d /tmp/out",
			want:    []string{"export-pg", "-e", "endpoint", "-d", "/tmp/out"},
		},
		{
			name:    "Extra whitespace",
			cmdline: "  export-rdf \t --format   turtle ",
			want:    []string{"export-rdf", "--format", "turtle"},
		},
		{
			name:    "Double quoted value",
			cmdline: `export-pg --filter "it's quoted"`,
			want:    []string{"export-pg", "--filter", "it's quoted"},
		},
		{
			name:    "Single quoted value with spaces",
			cmdline: `export-pg --tag 'my export'`,
			want:    []string{"export-pg", "--tag", "my export"},
		},
		{
			name:    "Empty quoted value",
			cmdline: `--tag ""`,
			want:    []string{"--tag", ""},
		},
		{
			name:    "Unterminated quote",
			cmdline: `export-pg --tag 'oops`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.cmdline)
			if tt.wantErr {
				var cfgErr *domain.ConfigurationError
				require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Values())
		})
	}
}

func TestContains(t *testing.T) {
	a := New("export-pg", "--format", "json", "--merge-files")

	assert.True(t, a.Contains("--merge-files"))
	assert.True(t, a.Contains("json"))
	assert.False(t, a.Contains("--exclude-type-definitions"))

	assert.True(t, a.ContainsOption("--format", "json"))
	assert.False(t, a.ContainsOption("--format", "csv"))
	assert.False(t, a.ContainsOption("--merge-files", "export-pg"))

	assert.True(t, a.ContainsAny("--config", "--merge-files"))
	assert.False(t, a.ContainsAny("--config", "--filter"))
	assert.False(t, a.ContainsAny())
}

func TestAddFlagIsNoOpWhenPresent(t *testing.T) {
	a := New("export-pg")
	a.AddFlag("--merge-files")
	a.AddFlag("--merge-files")

	assert.Equal(t, []string{"export-pg", "--merge-files"}, a.Values())
}

func TestAddOptionIsNoOpWhenPairPresent(t *testing.T) {
	a := New("export-pg")
	a.AddOption("--format", "json")
	a.AddOption("--format", "json")
	a.AddOption("--format", "csv")

	assert.Equal(t, []string{"export-pg", "--format", "json", "--format", "csv"}, a.Values())
}

func TestRemoveOptionsRemovesAllOccurrences(t *testing.T) {
	a := New("export-pg", "--format", "json", "-e", "host", "--format", "csv", "--merge-files")
	a.RemoveOptions("--format")

	assert.Equal(t, []string{"export-pg", "-e", "host", "--merge-files"}, a.Values())
	assert.False(t, a.Contains("--format"))
}

func TestRemoveOptionsTrailingNameWithoutValue(t *testing.T) {
	a := New("export-pg", "--format")
	a.RemoveOptions("--format")

	assert.Equal(t, []string{"export-pg"}, a.Values())
}

func TestRemoveOptionsKeepsFollowingName(t *testing.T) {
	a := New("--format", "--merge-files", "-e", "host")
	a.RemoveOptions("--format")

	assert.Equal(t, []string{"--merge-files", "-e", "host"}, a.Values())
}

func TestSetOption(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   []string
	}{
		{
			name:   "Absent option is appended",
			tokens: []string{"export-rdf", "-e", "host"},
			want:   []string{"export-rdf", "-e", "host", "--format", "ntriples"},
		},
		{
			name:   "Existing option keeps its position",
			tokens: []string{"export-rdf", "--format", "turtle", "-e", "host"},
			want:   []string{"export-rdf", "--format", "ntriples", "-e", "host"},
		},
		{
			name:   "Duplicates collapse to one",
			tokens: []string{"export-rdf", "--format", "turtle", "-e", "host", "--format", "nquads"},
			want:   []string{"export-rdf", "--format", "ntriples", "-e", "host"},
		},
		{
			name:   "Valueless occurrence is replaced without eating the next name",
			tokens: []string{"--format", "--rdf-export-scope", "edges"},
			want:   []string{"--format", "ntriples", "--rdf-export-scope", "edges"},
		},
		{
			name:   "Already canonical is unchanged",
			tokens: []string{"export-rdf", "--format", "ntriples"},
			want:   []string{"export-rdf", "--format", "ntriples"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(tt.tokens...)
			a.SetOption("--format", "ntriples")
			assert.Equal(t, tt.want, a.Values())
			assert.Equal(t, []string{"ntriples"}, a.OptionValues("--format"))
		})
	}
}

func TestReplace(t *testing.T) {
	a := New("export-pg", "--tag", "export-pg-copy", "export-pg")

	assert.True(t, a.Replace("export-pg", "export-pg-from-config"))
	assert.Equal(t, []string{"export-pg-from-config", "--tag", "export-pg-copy", "export-pg-from-config"}, a.Values())

	assert.False(t, a.Replace("export-rdf", "anything"))
}

func TestOptionValues(t *testing.T) {
	a := New("export-pg", "-e", "one", "-e", "two", "-e", "--merge-files")

	assert.Equal(t, []string{"one", "two"}, a.OptionValues("-e"))
	assert.Empty(t, a.OptionValues("--format"))
}

func TestValuesReturnsCopy(t *testing.T) {
	a := New("export-pg")
	values := a.Values()
	values[0] = "changed"

	assert.Equal(t, "export-pg", a.Values()[0])
	assert.Equal(t, 1, a.Len())
}

func TestString(t *testing.T) {
	a := New("export-pg", "--tag", "my export", "--empty", "")
	assert.Equal(t, `export-pg --tag "my export" --empty ""`, a.String())
}
