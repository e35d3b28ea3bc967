// SPDX-License-Identifier: GPL-3.0-or-later

package placeholder

// TokenKind identifies what a template token refers to.
type TokenKind uint8

const (
	// TokenText is literal template text, including malformed placeholders.
	TokenText TokenKind = iota
	// TokenMatch is ${value}, ${cell}, ${0} or ${N}: the cell value or a capture group.
	TokenMatch
	// TokenColumn is ${col:<name>}: a value of the current row by column header.
	TokenColumn
	// TokenVariable is ${var:<name>}: the values of an external variable.
	TokenVariable
	// TokenTime is ${time}, ${time-from} or ${time-to}: query-string fragments of the time range.
	TokenTime
)

func (k TokenKind) String() string {
	switch k {
	case TokenMatch:
		return "match"
	case TokenColumn:
		return "column"
	case TokenVariable:
		return "variable"
	case TokenTime:
		return "time"
	default:
		return "text"
	}
}

// Format is the output shaping requested by a placeholder suffix.
type Format uint8

const (
	// FormatDefault leaves the shaping to the expansion Mode.
	FormatDefault Format = iota
	// FormatRaw (":raw") joins values with "," unencoded.
	FormatRaw
	// FormatEscape (":escape") joins values with "," and URL-encodes the result.
	FormatEscape
	// FormatParam (":param[:name]") emits "name=value" pairs joined with "&".
	FormatParam
)

func (f Format) String() string {
	switch f {
	case FormatRaw:
		return "raw"
	case FormatEscape:
		return "escape"
	case FormatParam:
		return "param"
	default:
		return "default"
	}
}

// Token is one lexed piece of a template.
type Token struct {
	Kind TokenKind
	// Text is the source text of the token.
	Text string
	// Name is the unescaped reference: the match key, column name, variable name
	// or "time", "time-from", "time-to".
	Name   string
	Format Format
	// ParamName overrides the key of FormatParam pairs when HasParamName is set.
	ParamName    string
	HasParamName bool
	// Pos and End delimit Text in the template.
	Pos, End int
}
