// SPDX-License-Identifier: GPL-3.0-or-later

package matcher

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// regexpMatchTimeout bounds catastrophic backtracking in user-authored patterns.
const regexpMatchTimeout = time.Second

type regexpFilter struct {
	re *regexp2.Regexp
	// groups holds the regexp2 group names in the order of the opening parens in the pattern.
	// regexp2 numbers named groups after the unnamed ones, browsers number them by position.
	groups []string
}

// NewRegExpFilter compiles a browser-flavoured regular expression body with its flags.
func NewRegExpFilter(body, flags string) (Filter, error) {
	opts, err := parseFlags(flags)
	if err != nil {
		return nil, err
	}

	if opts == regexp2.None {
		if f, ok := newLiteralFilter(body); ok {
			return f, nil
		}
	}

	expr := translateBody(body)
	re, err := regexp2.Compile(expr, opts|regexp2.ECMAScript)
	if err != nil {
		return nil, fmt.Errorf("invalid regular expression /%s/%s: %v", body, flags, err)
	}
	re.MatchTimeout = regexpMatchTimeout

	return &regexpFilter{re: re, groups: sourceOrderGroups(re, expr)}, nil
}

func (m *regexpFilter) Match(b []byte) bool { return m.MatchString(string(b)) }

func (m *regexpFilter) MatchString(s string) bool {
	ok, err := m.re.MatchString(s)
	return err == nil && ok
}

func (m *regexpFilter) FindSubmatch(s string) []any {
	match, err := m.re.FindStringMatch(s)
	if err != nil || match == nil {
		return nil
	}

	out := make([]any, len(m.groups)+1)
	out[0] = match.String()
	for i, name := range m.groups {
		if g := match.GroupByName(name); g != nil && len(g.Captures) > 0 {
			out[i+1] = g.String()
		}
	}
	return out
}

// sourceOrderGroups maps capture positions (1, 2, ...) to regexp2 group names.
func sourceOrderGroups(re *regexp2.Regexp, expr string) []string {
	names := re.GetGroupNames()[1:]

	var unnamed []string
	for _, name := range names {
		if _, err := strconv.Atoi(name); err == nil {
			unnamed = append(unnamed, name)
		}
	}

	parens := captureParens(expr)
	if len(parens) != len(names) {
		return names
	}

	groups := make([]string, 0, len(parens))
	for _, name := range parens {
		if name == "" {
			name, unnamed = unnamed[0], unnamed[1:]
		}
		groups = append(groups, name)
	}
	return groups
}

// captureParens lists the capturing groups of a pattern in the order of their opening parens.
// Unnamed groups are "".
func captureParens(expr string) []string {
	var names []string
	inClass := false

	for i := 0; i < len(expr); i++ {
		switch c := expr[i]; {
		case c == '\\':
			i++
		case inClass:
			inClass = c != ']'
		case c == '[':
			inClass = true
		case c == '(':
			rest := expr[i+1:]
			if !strings.HasPrefix(rest, "?") {
				names = append(names, "")
				continue
			}
			if !strings.HasPrefix(rest, "?<") || strings.HasPrefix(rest, "?<=") || strings.HasPrefix(rest, "?<!") {
				continue
			}
			if end := strings.IndexByte(rest, '>'); end > 2 {
				names = append(names, rest[2:end])
			}
		}
	}
	return names
}

func parseFlags(flags string) (regexp2.RegexOptions, error) {
	opts := regexp2.None
	seen := make(map[rune]bool, len(flags))

	for _, f := range flags {
		if seen[f] {
			return 0, fmt.Errorf("invalid regular expression flags '%s': duplicate '%c'", flags, f)
		}
		seen[f] = true

		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		case 'g', 'y', 'u', 'd':
		default:
			return 0, fmt.Errorf("invalid regular expression flags '%s'", flags)
		}
	}
	return opts, nil
}

// translateBody rewrites the browser-only "[^]" class (any character, newlines included).
func translateBody(body string) string {
	return strings.ReplaceAll(body, "[^]", `[\s\S]`)
}

// newLiteralFilter reduces a pattern without metacharacters to a string matcher.
func newLiteralFilter(expr string) (Filter, bool) {
	switch expr {
	case "^", "$":
		return stringPartialMatcher(""), true
	case "^$", "$^":
		return stringFullMatcher(""), true
	}

	chars := []rune(expr)
	size := len(chars)
	var startWith, endWith bool
	startIdx := 0
	endIdx := size - 1
	if chars[startIdx] == '^' {
		startWith = true
		startIdx = 1
	}
	if chars[endIdx] == '$' && (endIdx == 0 || chars[endIdx-1] != '\\') {
		endWith = true
		endIdx--
	}

	unescaped := make([]rune, 0, endIdx-startIdx+1)
	for i := startIdx; i <= endIdx; i++ {
		ch := chars[i]
		if ch == '\\' {
			if i == endIdx {
				return nil, false
			}
			next := chars[i+1]
			if !isRegExpMeta(next) {
				return nil, false
			}
			unescaped = append(unescaped, next)
			i++
		} else if isRegExpMeta(ch) {
			return nil, false
		} else {
			unescaped = append(unescaped, ch)
		}
	}

	return NewStringMatcher(string(unescaped), startWith, endWith), true
}

// isRegExpMeta reports whether the rune needs to be escaped to be taken literally.
func isRegExpMeta(b rune) bool {
	switch b {
	case '\\', '.', '+', '*', '?', '(', ')', '|', '[', ']', '{', '}', '^', '$', '/':
		return true
	default:
		return false
	}
}
