// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import (
	"bytes"
	"strings"
)

type (
	// stringFullMatcher implements Filter, it uses "==" to match.
	stringFullMatcher string

	// stringFoldMatcher implements Filter, it uses strings.EqualFold to match.
	stringFoldMatcher string

	// stringPartialMatcher implements Filter, it uses strings.Contains to match.
	stringPartialMatcher string

	// stringPrefixMatcher implements Filter, it uses strings.HasPrefix to match.
	stringPrefixMatcher string

	// stringSuffixMatcher implements Filter, it uses strings.HasSuffix to match.
	stringSuffixMatcher string
)

// NewStringMatcher create a new matcher with string format
func NewStringMatcher(s string, startWith, endWith bool) Filter {
	if startWith {
		if endWith {
			return stringFullMatcher(s)
		}
		return stringPrefixMatcher(s)
	}
	if endWith {
		return stringSuffixMatcher(s)
	}
	return stringPartialMatcher(s)
}

func (m stringFullMatcher) Match(b []byte) bool          { return string(m) == string(b) }
func (m stringFullMatcher) MatchString(line string) bool { return string(m) == line }
func (m stringFullMatcher) FindSubmatch(line string) []any {
	return literalSubmatch(m.MatchString(line), line)
}

func (m stringFoldMatcher) Match(b []byte) bool          { return bytes.EqualFold([]byte(m), b) }
func (m stringFoldMatcher) MatchString(line string) bool { return strings.EqualFold(string(m), line) }
func (m stringFoldMatcher) FindSubmatch(line string) []any {
	return literalSubmatch(m.MatchString(line), line)
}

func (m stringPartialMatcher) Match(b []byte) bool          { return bytes.Contains(b, []byte(m)) }
func (m stringPartialMatcher) MatchString(line string) bool { return strings.Contains(line, string(m)) }
func (m stringPartialMatcher) FindSubmatch(line string) []any {
	return literalSubmatch(m.MatchString(line), string(m))
}

func (m stringPrefixMatcher) Match(b []byte) bool          { return bytes.HasPrefix(b, []byte(m)) }
func (m stringPrefixMatcher) MatchString(line string) bool { return strings.HasPrefix(line, string(m)) }
func (m stringPrefixMatcher) FindSubmatch(line string) []any {
	return literalSubmatch(m.MatchString(line), string(m))
}

func (m stringSuffixMatcher) Match(b []byte) bool          { return bytes.HasSuffix(b, []byte(m)) }
func (m stringSuffixMatcher) MatchString(line string) bool { return strings.HasSuffix(line, string(m)) }
func (m stringSuffixMatcher) FindSubmatch(line string) []any {
	return literalSubmatch(m.MatchString(line), string(m))
}

func literalSubmatch(ok bool, whole string) []any {
	if !ok {
		return nil
	}
	return []any{whole}
}
