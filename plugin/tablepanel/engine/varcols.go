// SPDX-License-Identifier: GPL-3.0-or-later

package engine

import (
	"cmp"
	"slices"

	"github.com/willyd61/grafana-customTables-panel/pkg/tabledata"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/settings"
)

// JoinVarCols widens main with one column per distinct name found in the name column of aux.
// A main row gets the value column of the aux rows whose join column equals its own join
// column, other rows get nil. The existing columns and the row order of main are unchanged.
//
// Both sides are walked once in ascending join key order and the scan never rewinds,
// so the main rows of one aux row must form a single run in that order.
// The join is a no-op when a configured column is missing.
func JoinVarCols(main *tabledata.Dataset, cfg settings.VarCols, aux *tabledata.Dataset) {
	if main == nil || aux == nil {
		return
	}

	mainJoinIdx := main.ColumnIndex(cfg.MainJoinColumn)
	joinIdx := aux.ColumnIndex(cfg.JoinColumn)
	nameIdx := aux.ColumnIndex(cfg.NameColumn)
	valueIdx := aux.ColumnIndex(cfg.ValueColumn)
	if mainJoinIdx < 0 || joinIdx < 0 || nameIdx < 0 || valueIdx < 0 {
		return
	}

	mainOrder := sortedBy(main.Rows, mainJoinIdx)
	auxOrder := sortedBy(aux.Rows, joinIdx)

	var names []any
	joined := make([]map[int]any, len(main.Rows))
	cursor := 0

	for _, ai := range auxOrder {
		auxRow := aux.Rows[ai]
		name, key := cellAt(auxRow, nameIdx), cellAt(auxRow, joinIdx)

		slot := slices.IndexFunc(names, func(n any) bool { return tabledata.Equal(n, name) })
		isNew := slot < 0
		if isNew {
			names = append(names, name)
			slot = len(names) - 1
		}

		matched := false
		for i := cursor; i < len(mainOrder); i++ {
			mi := mainOrder[i]
			if !tabledata.Equal(key, cellAt(main.Rows[mi], mainJoinIdx)) {
				if matched {
					break
				}
				continue
			}
			if joined[mi] == nil {
				joined[mi] = make(map[int]any)
			}
			joined[mi][slot] = cellAt(auxRow, valueIdx)
			cursor = i
			matched = true
		}

		if isNew && !matched {
			names = names[:len(names)-1]
		}
	}

	if len(names) == 0 {
		return
	}

	// new columns follow the order their names first appear in aux
	slots := make([]int, len(names))
	first := make([]int, len(names))
	for slot, name := range names {
		slots[slot] = slot
		first[slot] = slices.IndexFunc(aux.Rows, func(row tabledata.Row) bool {
			return tabledata.Equal(cellAt(row, nameIdx), name)
		})
	}
	slices.SortStableFunc(slots, func(a, b int) int { return cmp.Compare(first[a], first[b]) })

	width := len(main.Columns)
	for _, slot := range slots {
		main.Columns = append(main.Columns, tabledata.Column{Text: tabledata.Text(names[slot])})
	}
	for i, row := range main.Rows {
		if len(row) < width {
			row = append(row, make(tabledata.Row, width-len(row))...)
		}
		for _, slot := range slots {
			row = append(row, joined[i][slot])
		}
		main.Rows[i] = row
	}
}

// sortedBy returns the row indexes in ascending order of a column, ties keep their order.
func sortedBy(rows []tabledata.Row, col int) []int {
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		va, vb := cellAt(rows[a], col), cellAt(rows[b], col)
		switch {
		case tabledata.Less(va, vb):
			return -1
		case tabledata.Less(vb, va):
			return 1
		default:
			return 0
		}
	})
	return idx
}

func cellAt(row tabledata.Row, i int) any {
	if i < len(row) {
		return row[i]
	}
	return nil
}
