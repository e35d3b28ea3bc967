// SPDX-License-Identifier: GPL-3.0-or-later

package engine

import (
	"fmt"
	"html"

	"github.com/willyd61/grafana-customTables-panel/pkg/matcher"
	"github.com/willyd61/grafana-customTables-panel/pkg/placeholder"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/settings"
)

// compiledDef holds the filters of one column definition, compiled once per draw
// and shared by every column and cell.
type compiledDef struct {
	def    *settings.ColumnDef
	header matcher.Filter
	// rules has one entry per content rule, nil for rules that are not FILTER rules.
	rules []matcher.Filter
}

func compileDefs(defs []settings.ColumnDef) ([]compiledDef, error) {
	compiled := make([]compiledDef, len(defs))

	for i := range defs {
		def := &defs[i]

		header, err := matcher.ParseFilter(def.Filter)
		if err != nil {
			return nil, fmt.Errorf("column definition %d: %v", i+1, err)
		}

		rules := make([]matcher.Filter, len(def.ContentRules))
		for j, rule := range def.ContentRules {
			if rule.Type != settings.RuleFilter {
				continue
			}
			f, err := matcher.ParseFilter(rule.Filter)
			if err != nil {
				return nil, fmt.Errorf("column definition %d, content rule %d: %v", i+1, j+1, err)
			}
			rules[j] = matcher.WithCache(f)
		}

		compiled[i] = compiledDef{def: def, header: header, rules: rules}
	}

	return compiled, nil
}

// matchColumns gives every header its column. The first definition whose filter matches
// a header wins. Unmatched columns stay visible with their header escaped.
func matchColumns(headers []string, defs []compiledDef, env Env) []*Column {
	columns := make([]*Column, len(headers))

	for i, text := range headers {
		col := &Column{Text: text, Visible: true, defIndex: -1}

		for j, cd := range defs {
			groups := cd.header.FindSubmatch(text)
			if groups == nil {
				continue
			}

			ctx := &placeholder.Context{
				Value:     text,
				Groups:    groups,
				Columns:   map[string]any{},
				Vars:      env.Vars,
				TimeRange: env.TimeRange,
			}
			def := cd.def

			col.Text = placeholder.Expand(def.Display, ctx, placeholder.ModeDisplay)
			col.HTML = col.Text
			if !def.DisplayIsHTML {
				col.HTML = html.EscapeString(col.Text)
			}
			if def.URL != "" {
				url := html.EscapeString(placeholder.Expand(def.URL, ctx, placeholder.ModeLink))
				col.HTML = fmt.Sprintf(`<a href="%s" target="%s" onclick="event.stopPropagation()">%s</a>`,
					url, target(def.OpenNewWindow), col.HTML)
			}
			col.Visible = def.IsVisible
			col.Def = def
			col.defIndex = j
			break
		}

		if col.Def == nil {
			col.HTML = html.EscapeString(text)
		}
		columns[i] = col
	}

	return columns
}

func target(newWindow bool) string {
	if newWindow {
		return "_blank"
	}
	return ""
}
