package vectorizer

import (
	"fmt"
	"regexp"
	"strings"
)

// scikit-learn's default token pattern. Go's \w and \b are ASCII-only, so the
// default is rewritten to the Unicode class it matches under (?u).
const (
	DEFAULT_TOKEN_PATTERN = `(?u)\b\w\w+\b`
	unicodeTokenPattern   = `[\p{L}\p{N}_]{2,}`
)

func compileTokenPattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" || pattern == DEFAULT_TOKEN_PATTERN || pattern == `\b\w\w+\b` {
		return regexp.MustCompile(unicodeTokenPattern), nil
	}

	re, err := regexp.Compile(strings.TrimPrefix(pattern, "(?u)"))
	if err != nil {
		return nil, fmt.Errorf("invalid token_pattern %q: %w", pattern, err)
	}
	return re, nil
}

// nGrams expands tokens into word n-grams for n in [minN, maxN], joined by a
// single space, in the order scikit-learn produces them.
func nGrams(tokens []string, minN, maxN int) []string {
	if maxN == 1 {
		return tokens
	}

	out := make([]string, 0, len(tokens)*(maxN-minN+1))
	if minN == 1 {
		out = append(out, tokens...)
		minN = 2
	}

	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}
