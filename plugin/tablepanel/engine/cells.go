// SPDX-License-Identifier: GPL-3.0-or-later

package engine

import (
	"html"

	"github.com/willyd61/grafana-customTables-panel/pkg/placeholder"
	"github.com/willyd61/grafana-customTables-panel/pkg/tabledata"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/settings"
)

// ProcessRows turns the values of every unprocessed row into cells. Rows are processed once.
func (d *Data) ProcessRows(rows []*Row) {
	for _, row := range rows {
		if !row.Processed {
			d.processRow(row)
			row.Processed = true
		}
	}
}

// ProcessAll processes every row.
func (d *Data) ProcessAll() {
	d.ProcessRows(d.Rows)
}

func (d *Data) processRow(row *Row) {
	row.Cells = make([]Cell, len(row.Values))

	var byName map[string]any

	for ci, value := range row.Values {
		cell := Cell{Raw: value, Visible: true}

		var col *Column
		if ci < len(d.Columns) {
			col = d.Columns[ci]
			cell.Visible = col.Visible
		}

		applied := false
		if col != nil && col.Def != nil {
			if byName == nil {
				byName = d.cellsByColName(row)
			}
			applied = d.applyRules(&cell, col, byName)
		}
		if !applied {
			cell.HTML = html.EscapeString(tabledata.Text(value))
		}

		row.Cells[ci] = cell
	}
}

// cellsByColName maps the original headers to the row values. The first column wins
// when headers repeat.
func (d *Data) cellsByColName(row *Row) map[string]any {
	m := make(map[string]any, len(d.Headers))
	for i, h := range d.Headers {
		if i >= len(row.Values) {
			break
		}
		if _, ok := m[h]; !ok {
			m[h] = row.Values[i]
		}
	}
	return m
}

// applyRules applies the first matching content rule of the column to the cell.
func (d *Data) applyRules(cell *Cell, col *Column, byName map[string]any) bool {
	cd := d.defs[col.defIndex]

	for ri := range col.Def.ContentRules {
		rule := &col.Def.ContentRules[ri]
		filter := cd.rules[ri]

		if !matchRule(rule, filter, cell.Raw) {
			continue
		}

		value := formatValue(rule, cell.Raw)
		groups := []any{value}
		if rule.Type == settings.RuleFilter {
			groups = filterGroups(filter, cell.Raw)
		}
		ctx := &placeholder.Context{
			Value:     value,
			Groups:    groups,
			Columns:   byName,
			Vars:      d.env.Vars,
			TimeRange: d.env.TimeRange,
		}

		if rule.ClassNames != "" {
			cell.Class = &CellClass{
				Names: placeholder.Expand(rule.ClassNames, ctx, placeholder.ModeRaw),
				Level: rule.ClassLevel,
			}
		}

		display := placeholder.Expand(rule.Display, ctx, placeholder.ModeDisplay)
		if !rule.DisplayIsHTML {
			display = html.EscapeString(display)
		}
		if rule.URL != "" {
			url := html.EscapeString(placeholder.Expand(rule.URL, ctx, placeholder.ModeLink))
			display = `<a href="` + url + `" target="` + target(rule.OpenNewWindow) + `">` + display + `</a>`
		}
		if rule.Tooltip.IsVisible {
			cell.Tooltip = &Tooltip{
				Display:   placeholder.Expand(rule.Tooltip.Display, ctx, placeholder.ModeDisplay),
				Placement: rule.Tooltip.Placement.Lower(),
			}
		}

		cell.HTML = display
		return true
	}

	return false
}
