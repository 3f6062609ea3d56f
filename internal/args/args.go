// Package args holds the ordered command-line token list handed to the export engine.
//
// Tokens are kept exactly as given. A flag is a single token (e.g. "--merge-files"); an option is a
// name token immediately followed by its value token (e.g. "--format ntriples").
package args

import (
	"strings"
	"unicode"

	"evalgo.org/neptuneexport/internal/domain"
)

// ArgumentSet is an ordered, mutable collection of CLI tokens.
type ArgumentSet struct {
	tokens []string
}

// New creates an ArgumentSet from already-split tokens.
func New(tokens ...string) *ArgumentSet {
	a := &ArgumentSet{tokens: make([]string, 0, len(tokens))}
	a.tokens = append(a.tokens, tokens...)
	return a
}

// Parse splits a command line on whitespace, honouring single and double quotes.
func Parse(cmdline string) (*ArgumentSet, error) {
	var (
		tokens  []string
		current strings.Builder
		quote   rune
		inToken bool
	)

	for _, r := range cmdline {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			if inToken {
				tokens = append(tokens, current.String())
				current.Reset()
				inToken = false
			}
		default:
			current.WriteRune(r)
			inToken = true
		}
	}

	if quote != 0 {
		return nil, domain.NewConfigurationError("arguments", "unterminated quote in command line", nil)
	}
	if inToken {
		tokens = append(tokens, current.String())
	}

	return New(tokens...), nil
}

// Contains reports whether any token equals name.
func (a *ArgumentSet) Contains(name string) bool {
	return a.indexOf(name, 0) >= 0
}

// ContainsOption reports whether name is immediately followed by value.
func (a *ArgumentSet) ContainsOption(name, value string) bool {
	for i := 0; i < len(a.tokens)-1; i++ {
		if a.tokens[i] == name && a.tokens[i+1] == value {
			return true
		}
	}
	return false
}

// ContainsAny reports whether any of the given names is present.
func (a *ArgumentSet) ContainsAny(names ...string) bool {
	for _, name := range names {
		if a.Contains(name) {
			return true
		}
	}
	return false
}

// AddFlag appends a flag unless it is already present.
func (a *ArgumentSet) AddFlag(name string) {
	if a.Contains(name) {
		return
	}
	a.tokens = append(a.tokens, name)
}

// AddOption appends a name/value pair unless the same pair is already present.
func (a *ArgumentSet) AddOption(name, value string) {
	if a.ContainsOption(name, value) {
		return
	}
	a.tokens = append(a.tokens, name, value)
}

// RemoveOptions removes every occurrence of each named option together with its value.
func (a *ArgumentSet) RemoveOptions(names ...string) {
	for _, name := range names {
		a.removeOption(name)
	}
}

// SetOption leaves exactly one name/value pair in the set. The pair takes the position of the first
// existing occurrence of name, or is appended when name is absent.
func (a *ArgumentSet) SetOption(name, value string) {
	first := a.indexOf(name, 0)
	if first < 0 {
		a.tokens = append(a.tokens, name, value)
		return
	}

	a.removeOption(name)
	if first > len(a.tokens) {
		first = len(a.tokens)
	}

	tokens := make([]string, 0, len(a.tokens)+2)
	tokens = append(tokens, a.tokens[:first]...)
	tokens = append(tokens, name, value)
	tokens = append(tokens, a.tokens[first:]...)
	a.tokens = tokens
}

// Replace substitutes every token exactly equal to original. Partial matches are left alone.
// It reports whether a substitution took place.
func (a *ArgumentSet) Replace(original, replacement string) bool {
	replaced := false
	for i, t := range a.tokens {
		if t == original {
			a.tokens[i] = replacement
			replaced = true
		}
	}
	return replaced
}

// OptionValues returns the values of every occurrence of the named option, in order. An occurrence
// followed by another flag or option has no value.
func (a *ArgumentSet) OptionValues(name string) []string {
	var values []string
	for i := 0; i < len(a.tokens)-1; i++ {
		if a.tokens[i] == name && !isName(a.tokens[i+1]) {
			values = append(values, a.tokens[i+1])
			i++
		}
	}
	return values
}

// Values returns a copy of the tokens.
func (a *ArgumentSet) Values() []string {
	out := make([]string, len(a.tokens))
	copy(out, a.tokens)
	return out
}

// Len returns the number of tokens.
func (a *ArgumentSet) Len() int {
	return len(a.tokens)
}

func (a *ArgumentSet) String() string {
	quoted := make([]string, len(a.tokens))
	for i, t := range a.tokens {
		if t == "" || strings.ContainsFunc(t, unicode.IsSpace) {
			quoted[i] = `"` + t + `"`
		} else {
			quoted[i] = t
		}
	}
	return strings.Join(quoted, " ")
}

func (a *ArgumentSet) indexOf(token string, from int) int {
	for i := from; i < len(a.tokens); i++ {
		if a.tokens[i] == token {
			return i
		}
	}
	return -1
}

// removeOption drops name and its value. A name followed by another flag or option, or by nothing,
// is dropped alone.
func (a *ArgumentSet) removeOption(name string) {
	kept := make([]string, 0, len(a.tokens))
	for i := 0; i < len(a.tokens); i++ {
		if a.tokens[i] == name {
			if i+1 < len(a.tokens) && !isName(a.tokens[i+1]) {
				i++
			}
			continue
		}
		kept = append(kept, a.tokens[i])
	}
	a.tokens = kept
}

// isName reports whether token is a flag or option name rather than a value.
func isName(token string) bool {
	return strings.HasPrefix(token, "-")
}
