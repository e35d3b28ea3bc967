// SPDX-License-Identifier: GPL-3.0-or-later

package pseudocss

import (
	"errors"
	"regexp"
	"strings"

	"github.com/valyala/fastjson"
)

var (
	ErrTooManyOpening = errors.New("pseudo-css contains too many opening braces")
	ErrTooManyClosing = errors.New("pseudo-css contains too many closing braces")
	ErrUnparsable     = errors.New("pseudo-css couldn't be parsed correctly")
)

var messages = map[error]string{
	ErrTooManyOpening: "Pseudo-CSS contains too many opening braces.",
	ErrTooManyClosing: "Pseudo-CSS contains too many closing braces.",
	ErrUnparsable:     "Pseudo-CSS couldn't be parsed correctly.",
}

// Message returns the text shown to the user for a translation error in err's chain.
func Message(err error) (string, bool) {
	for sentinel, msg := range messages {
		if errors.Is(err, sentinel) {
			return msg, true
		}
	}
	return "", false
}

var (
	reComment       = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reConstruct     = regexp.MustCompile(`([^{};]+)\{|([^:{}]+):([^;]+);|\}`)
	reTrailingComma = regexp.MustCompile(`,\s*(\}|$)`)
)

// Translate converts a pseudo-CSS block into a 2-space indented JSON object keyed by selector:
//
//	td.warn { color: red; }  =>  {"td.warn": {"color": "red"}}
//
// Nested blocks become nested objects.
func Translate(src string) (string, error) {
	fragment, opened, closed := rewrite(src)

	var p fastjson.Parser
	v, err := p.Parse("{" + fragment + "}")
	if err != nil {
		switch {
		case opened > closed:
			return "", ErrTooManyOpening
		case opened < closed:
			return "", ErrTooManyClosing
		default:
			return "", ErrUnparsable
		}
	}

	return string(appendIndented(nil, v, 0)), nil
}

// rewrite turns the pseudo-CSS constructs into JSON fragment text and counts the braces it saw.
func rewrite(src string) (fragment string, opened, closed int) {
	src = reComment.ReplaceAllString(src, "")

	var sb strings.Builder
	last := 0
	for _, m := range reConstruct.FindAllStringSubmatchIndex(src, -1) {
		sb.WriteString(src[last:m[0]])
		last = m[1]

		switch {
		case m[2] >= 0:
			opened++
			sb.Write(appendString(nil, strings.TrimSpace(src[m[2]:m[3]])))
			sb.WriteString(":{")
		case m[4] >= 0:
			sb.Write(appendString(nil, strings.TrimSpace(src[m[4]:m[5]])))
			sb.WriteByte(':')
			sb.Write(appendString(nil, strings.TrimSpace(src[m[6]:m[7]])))
			sb.WriteByte(',')
		default:
			closed++
			sb.WriteString("},")
		}
	}
	sb.WriteString(src[last:])

	return reTrailingComma.ReplaceAllString(sb.String(), "$1"), opened, closed
}
