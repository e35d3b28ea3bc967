// SPDX-License-Identifier: GPL-3.0-or-later

package engine

import (
	"github.com/willyd61/grafana-customTables-panel/pkg/htmltext"
)

// Records processes every row and returns the text of the visible headers and cells,
// as they appear on screen. Empty cells holding nil stay nil.
func (d *Data) Records() (headers []string, rows [][]any) {
	d.ProcessAll()

	for _, col := range d.Columns {
		if col.Visible {
			headers = append(headers, htmltext.Text(col.HTML))
		}
	}

	rows = make([][]any, 0, len(d.Rows))
	for _, row := range d.Rows {
		record := make([]any, 0, len(row.Cells))
		for _, cell := range row.Cells {
			switch {
			case !cell.Visible:
			case cell.Raw == nil && cell.HTML == "":
				record = append(record, nil)
			default:
				record = append(record, htmltext.Text(cell.HTML))
			}
		}
		rows = append(rows, record)
	}

	return headers, rows
}
