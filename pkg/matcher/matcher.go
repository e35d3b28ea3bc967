// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import "regexp"

type (
	// Matcher is an interface that wraps MatchString method.
	Matcher interface {
		// Match performs match against given []byte
		Match(b []byte) bool
		// MatchString performs match against given string
		MatchString(string) bool
	}

	// Filter is a Matcher that also exposes the capture groups of a match.
	Filter interface {
		Matcher
		// FindSubmatch returns nil when s doesn't match. Index 0 holds the whole match,
		// groups that did not participate in the match are nil.
		FindSubmatch(s string) []any
	}
)

var reJSLiteral = regexp.MustCompile(`^/(.+)/(\w*)$`)

// ParseFilter compiles a definition filter: "/body/flags" is a regular expression,
// any other string is an exact case-insensitive match.
func ParseFilter(pattern string) (Filter, error) {
	if m := reJSLiteral.FindStringSubmatch(pattern); m != nil {
		return NewRegExpFilter(m[1], m[2])
	}
	return stringFoldMatcher(pattern), nil
}

// MustParseFilter is like ParseFilter but panics if the pattern cannot be compiled.
func MustParseFilter(pattern string) Filter {
	f, err := ParseFilter(pattern)
	if err != nil {
		panic(err)
	}
	return f
}
