// SPDX-License-Identifier: GPL-3.0-or-later

package placeholder

import "strings"

// Lex splits a template into text and placeholder tokens.
// A "${" that does not start a well-formed placeholder is kept as text.
func Lex(template string) []Token {
	var tokens []Token
	textStart := 0

	flushText := func(end int) {
		if end > textStart {
			tokens = append(tokens, Token{Kind: TokenText, Text: template[textStart:end], Pos: textStart, End: end})
		}
	}

	for i := 0; i < len(template); {
		j := strings.Index(template[i:], "${")
		if j < 0 {
			break
		}
		start := i + j

		tok, ok := lexPlaceholder(template, start)
		if !ok {
			i = start + 1
			continue
		}

		flushText(start)
		tokens = append(tokens, tok)
		textStart = tok.End
		i = tok.End
	}
	flushText(len(template))

	return tokens
}

// lexPlaceholder reads "${...}" at pos.
func lexPlaceholder(s string, pos int) (Token, bool) {
	lx := &lexer{src: s, pos: pos + 2}
	tok := Token{Pos: pos}

	ref, ok := lx.word()
	if !ok {
		return tok, false
	}

	switch {
	case ref == "value" || ref == "cell" || ref == "0" || isPositiveInt(ref):
		tok.Kind, tok.Name = TokenMatch, ref
	case ref == "time" || ref == "time-from" || ref == "time-to":
		tok.Kind, tok.Name = TokenTime, ref
	case ref == "col" || ref == "var":
		if !lx.accept(':') {
			return tok, false
		}
		name, ok := lx.name()
		if !ok {
			return tok, false
		}
		tok.Kind, tok.Name = TokenColumn, name
		if ref == "var" {
			tok.Kind = TokenVariable
		}
	default:
		return tok, false
	}

	if lx.accept(':') {
		suffix, ok := lx.word()
		if !ok {
			return tok, false
		}
		switch suffix {
		case "raw":
			tok.Format = FormatRaw
		case "escape":
			tok.Format = FormatEscape
		case "param":
			tok.Format = FormatParam
			if lx.accept(':') {
				if tok.ParamName, ok = lx.name(); !ok {
					return tok, false
				}
				tok.HasParamName = true
			}
		default:
			return tok, false
		}
	}

	if !lx.accept('}') {
		return tok, false
	}

	tok.End = lx.pos
	tok.Text = s[pos:tok.End]
	return tok, true
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) accept(c byte) bool {
	if l.pos < len(l.src) && l.src[l.pos] == c {
		l.pos++
		return true
	}
	return false
}

// word reads up to the next ':' or '}' with no escapes allowed.
func (l *lexer) word() (string, bool) {
	start := l.pos
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ':', '}':
			return l.src[start:l.pos], l.pos > start
		case '\\', '$', '{':
			return "", false
		}
		l.pos++
	}
	return "", false
}

// name reads a column/variable/param name: any characters but ':', '}' and '\',
// which must be escaped with a backslash.
func (l *lexer) name() (string, bool) {
	var sb strings.Builder
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case ':', '}':
			return sb.String(), l.pos > start
		case '\\':
			if l.pos+1 >= len(l.src) {
				return "", false
			}
			sb.WriteByte(l.src[l.pos+1])
			l.pos += 2
			continue
		}
		sb.WriteByte(c)
		l.pos++
	}
	return "", false
}

func isPositiveInt(s string) bool {
	if s == "" || s[0] < '1' || s[0] > '9' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
