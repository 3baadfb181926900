// Package namekey builds order-independent fingerprints of free-text names.
//
// A Key is the set of lower-cased name tokens, stored canonically as the
// sorted, de-duplicated tokens joined by a single space. Two names yielding
// the same Key are considered the same person.
package namekey

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// junk is trimmed from both ends of a name before tokenizing.
const junk = ".# \t\n\r\v\f"

// Key is a canonical name fingerprint.
type Key string

// Parse lower-cases name, trims the junk set from both ends and splits it on
// runs of '.', '_', '-' and whitespace.
func Parse(name string) Key {
	return FromTokens(strings.FieldsFunc(Normalize(name), isDelimiter))
}

// Normalize lower-cases name and strips leading and trailing junk. A fresh
// caser is used per call.
func Normalize(name string) string {
	lower := cases.Lower(language.Und).String(name)
	return strings.Trim(lower, junk)
}

// FromTokens canonicalizes already split tokens. Tokens are lower-cased and
// split further on delimiters so the result shares the Parse key space.
func FromTokens(tokens []string) Key {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		for _, part := range strings.FieldsFunc(Normalize(tok), isDelimiter) {
			if _, dup := seen[part]; dup {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	sort.Strings(out)
	return Key(strings.Join(out, " "))
}

// Tokens returns the sorted tokens of k.
func (k Key) Tokens() []string {
	if k == "" {
		return nil
	}
	return strings.Split(string(k), " ")
}

// Label returns the synthetic label used for names missing from the roster.
func (k Key) Label() string { return string(k) }

// IsZero reports whether k holds no tokens.
func (k Key) IsZero() bool { return k == "" }

func isDelimiter(r rune) bool {
	switch r {
	case '.', '_', '-':
		return true
	}
	return unicode.IsSpace(r)
}
