// SPDX-License-Identifier: GPL-3.0-or-later

package placeholder

import (
	"strconv"
	"strings"

	"github.com/willyd61/grafana-customTables-panel/pkg/tabledata"
)

// Mode selects the default shaping of placeholders without a suffix.
type Mode uint8

const (
	// ModeRaw is used for class name lists: values are joined unencoded.
	ModeRaw Mode = iota
	// ModeDisplay is used for display templates: values are joined unencoded
	// and the caller escapes the HTML.
	ModeDisplay
	// ModeLink is used for URL templates: values are joined and URL-encoded.
	ModeLink
)

// TimeRange is the dashboard time range as the host puts it in URLs
// (epoch milliseconds or relative expressions such as "now-6h").
type TimeRange struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// Context is everything a template can reference while one cell or header is expanded.
type Context struct {
	// Value is addressed by ${value} and ${cell}.
	Value any
	// Groups are addressed by ${0}, ${1}... Group 0 is the whole match.
	Groups []any
	// Columns holds the current row by header name.
	Columns map[string]any
	// Vars holds external variables by name.
	Vars map[string][]string
	// TimeRange is addressed by ${time}, ${time-from} and ${time-to}.
	TimeRange *TimeRange
}

// Expand replaces every placeholder of template. Placeholders that resolve to nothing are
// left in place verbatim.
func Expand(template string, ctx *Context, mode Mode) string {
	if !strings.Contains(template, "${") {
		return template
	}
	if ctx == nil {
		ctx = &Context{}
	}

	var sb strings.Builder
	sb.Grow(len(template))

	for _, tok := range Lex(template) {
		switch tok.Kind {
		case TokenText:
			sb.WriteString(tok.Text)
		case TokenTime:
			sb.WriteString(expandTime(tok, ctx.TimeRange))
		default:
			sb.WriteString(expandValues(tok, ctx, mode))
		}
	}

	return sb.String()
}

func expandValues(tok Token, ctx *Context, mode Mode) string {
	values, ok := lookup(tok, ctx)
	if !ok || len(values) == 0 {
		return tok.Text
	}
	values = unique(values)

	format := tok.Format
	if format == FormatDefault {
		format = FormatRaw
		if mode == ModeLink {
			format = FormatEscape
		}
	}

	switch format {
	case FormatEscape:
		return EncodeURIComponent(join(values))
	case FormatParam:
		key := paramKey(tok)
		pairs := make([]string, len(values))
		for i, v := range values {
			pairs[i] = EncodeURIComponent(key) + "=" + EncodeURIComponent(tabledata.Stringify(v))
		}
		return strings.Join(pairs, "&")
	default:
		return join(values)
	}
}

func lookup(tok Token, ctx *Context) ([]any, bool) {
	switch tok.Kind {
	case TokenMatch:
		switch tok.Name {
		case "value", "cell":
			return []any{ctx.Value}, true
		}
		idx, err := strconv.Atoi(tok.Name)
		if err != nil {
			return nil, false
		}
		if idx == 0 && len(ctx.Groups) == 0 {
			return []any{ctx.Value}, true
		}
		if idx >= len(ctx.Groups) {
			return nil, false
		}
		return []any{ctx.Groups[idx]}, true
	case TokenColumn:
		v, ok := ctx.Columns[tok.Name]
		if !ok {
			return nil, false
		}
		return []any{v}, true
	case TokenVariable:
		vs, ok := ctx.Vars[tok.Name]
		if !ok {
			return nil, false
		}
		values := make([]any, len(vs))
		for i, v := range vs {
			values[i] = v
		}
		return values, true
	default:
		return nil, false
	}
}

func paramKey(tok Token) string {
	switch {
	case tok.HasParamName:
		return tok.ParamName
	case tok.Kind == TokenVariable:
		return "var-" + tok.Name
	default:
		return tok.Name
	}
}

func expandTime(tok Token, tr *TimeRange) string {
	if tr == nil {
		return tok.Text
	}

	enc := EncodeURIComponent
	if tok.Format == FormatRaw {
		enc = func(s string) string { return s }
	}

	from, to := "from="+enc(tr.From), "to="+enc(tr.To)
	switch tok.Name {
	case "time-from":
		return from
	case "time-to":
		return to
	default:
		return from + "&" + to
	}
}

// unique drops repeated values, keeping the first occurrence.
func unique(values []any) []any {
	if len(values) < 2 {
		return values
	}
	out := make([]any, 0, len(values))
	for _, v := range values {
		dup := false
		for _, seen := range out {
			if tabledata.Equal(v, seen) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

func join(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = tabledata.Text(v)
	}
	return strings.Join(parts, ",")
}
