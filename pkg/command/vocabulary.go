package command

import (
	"slices"
	"strings"
)

// DefaultTokens is the vocabulary used when none is configured:
// play/pause, forward, rewind and out.
var DefaultTokens = []string{"pp", "fwd", "rew", "out"}

// Vocabulary is an immutable set of permitted command tokens.
// The zero value permits nothing.
type Vocabulary struct {
	tokens map[string]struct{}
}

// NewVocabulary builds a vocabulary from tokens. Surrounding whitespace is
// trimmed and empty tokens are skipped. Matching is case-sensitive.
func NewVocabulary(tokens ...string) Vocabulary {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if t = strings.TrimSpace(t); t != "" {
			set[t] = struct{}{}
		}
	}
	return Vocabulary{tokens: set}
}

// DefaultVocabulary returns a vocabulary of DefaultTokens.
func DefaultVocabulary() Vocabulary {
	return NewVocabulary(DefaultTokens...)
}

// Contains reports whether token is permitted.
func (v Vocabulary) Contains(token string) bool {
	_, ok := v.tokens[token]
	return ok
}

// Tokens returns the permitted tokens in sorted order.
func (v Vocabulary) Tokens() []string {
	out := make([]string, 0, len(v.tokens))
	for t := range v.tokens {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of accepted tokens.
func (v Vocabulary) Len() int {
	return len(v.tokens)
}
