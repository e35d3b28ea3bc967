// SPDX-License-Identifier: GPL-3.0-or-later

package placeholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex(t *testing.T) {
	tests := map[string]struct {
		template string
		expected []Token
	}{
		"plain text": {
			template: "abc",
			expected: []Token{{Kind: TokenText, Text: "abc", Pos: 0, End: 3}},
		},
		"value": {
			template: "a${value}b",
			expected: []Token{
				{Kind: TokenText, Text: "a", Pos: 0, End: 1},
				{Kind: TokenMatch, Text: "${value}", Name: "value", Pos: 1, End: 9},
				{Kind: TokenText, Text: "b", Pos: 9, End: 10},
			},
		},
		"group with suffix": {
			template: "${12:escape}",
			expected: []Token{
				{Kind: TokenMatch, Text: "${12:escape}", Name: "12", Format: FormatEscape, Pos: 0, End: 12},
			},
		},
		"column with escaped colon": {
			template: `${col:a\:b}`,
			expected: []Token{
				{Kind: TokenColumn, Text: `${col:a\:b}`, Name: "a:b", Pos: 0, End: 11},
			},
		},
		"variable with named param": {
			template: "${var:host:param:h}",
			expected: []Token{
				{Kind: TokenVariable, Text: "${var:host:param:h}", Name: "host", Format: FormatParam,
					ParamName: "h", HasParamName: true, Pos: 0, End: 19},
			},
		},
		"time range": {
			template: "${time-from:raw}",
			expected: []Token{
				{Kind: TokenTime, Text: "${time-from:raw}", Name: "time-from", Format: FormatRaw, Pos: 0, End: 16},
			},
		},
		"malformed placeholders stay text": {
			template: "${01}${col:}${value:bogus}${cell",
			expected: []Token{
				{Kind: TokenText, Text: "${01}${col:}${value:bogus}${cell", Pos: 0, End: 32},
			},
		},
		"dollar before placeholder": {
			template: "$${cell}",
			expected: []Token{
				{Kind: TokenText, Text: "$", Pos: 0, End: 1},
				{Kind: TokenMatch, Text: "${cell}", Name: "cell", Pos: 1, End: 8},
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, Lex(test.template))
		})
	}
}

func TestLex_PositionsCoverTemplate(t *testing.T) {
	template := `x ${col:A} ${bad} ${var:v:param} ${time} y`

	tokens := Lex(template)
	require.NotEmpty(t, tokens)

	var rebuilt string
	pos := 0
	for _, tok := range tokens {
		assert.Equal(t, pos, tok.Pos)
		assert.Equal(t, template[tok.Pos:tok.End], tok.Text)
		rebuilt += tok.Text
		pos = tok.End
	}
	assert.Equal(t, template, rebuilt)
}
