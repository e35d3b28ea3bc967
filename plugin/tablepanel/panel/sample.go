// SPDX-License-Identifier: GPL-3.0-or-later

package panel

import (
	"fmt"
	"math/rand/v2"

	"github.com/willyd61/grafana-customTables-panel/pkg/tabledata"
)

const (
	sampleRows      = 150
	sampleExtraCols = 2
)

// sampleData is the table shown while the panel has no data, so the settings can be tried out.
func sampleData() []*tabledata.Dataset {
	ds := &tabledata.Dataset{
		Type: tabledata.TypeTable,
		Columns: []tabledata.Column{
			{Text: "X"},
			{Text: "X * X"},
			{Text: "X + X"},
		},
	}
	for y := 0; y < sampleExtraCols; y++ {
		ds.Columns = append(ds.Columns, tabledata.Column{Text: fmt.Sprintf("%d / Math.random()", y)})
	}

	ds.Rows = make([]tabledata.Row, sampleRows)
	for x := range sampleRows {
		row := tabledata.Row{float64(x), float64(x * x), float64(x + x)}
		for y := 0; y < sampleExtraCols; y++ {
			row = append(row, float64(y)/(1-rand.Float64()))
		}
		ds.Rows[x] = row
	}

	return []*tabledata.Dataset{ds}
}
