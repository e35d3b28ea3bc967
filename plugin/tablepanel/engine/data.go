// SPDX-License-Identifier: GPL-3.0-or-later

package engine

import (
	"github.com/willyd61/grafana-customTables-panel/pkg/placeholder"
	"github.com/willyd61/grafana-customTables-panel/pkg/tabledata"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/settings"
)

// Env is what templates can reference besides the current row.
type Env struct {
	Vars      map[string][]string
	TimeRange *placeholder.TimeRange
}

// Data is the main dataset of a draw with its columns matched against the column definitions.
// Rows are turned into cells lazily, see ProcessRows.
type Data struct {
	RefID   string    `json:"refId"`
	Type    string    `json:"type"`
	Columns []*Column `json:"columns"`
	// Headers are the column texts before any definition re-templated them.
	Headers []string `json:"headers"`
	Rows    []*Row   `json:"rows"`

	defs []compiledDef
	env  Env
}

type Column struct {
	Text    string `json:"text"`
	HTML    string `json:"html"`
	Visible bool   `json:"visible"`
	// Def is the first column definition whose filter matched the header, or nil.
	Def *settings.ColumnDef `json:"-"`

	defIndex int
}

type Row struct {
	Values    []any  `json:"values"`
	Cells     []Cell `json:"cells,omitempty"`
	Processed bool   `json:"-"`
}

type Cell struct {
	Raw     any        `json:"raw"`
	HTML    string     `json:"html"`
	Visible bool       `json:"visible"`
	Class   *CellClass `json:"class,omitempty"`
	Tooltip *Tooltip   `json:"tooltip,omitempty"`
}

type CellClass struct {
	Names string              `json:"names"`
	Level settings.ClassLevel `json:"level"`
}

type Tooltip struct {
	Display   string `json:"display"`
	Placement string `json:"placement"`
}

// Prepare builds the Data of a draw from the host datasets. The first dataset is the main one;
// it is cloned, widened with the variable columns and its columns are matched.
// An empty list gives empty Data.
func Prepare(list []*tabledata.Dataset, s *settings.Settings, env Env) (*Data, error) {
	if len(list) == 0 || list[0] == nil {
		return &Data{env: env}, nil
	}

	defs, err := compileDefs(s.ColumnDefs)
	if err != nil {
		return nil, err
	}

	ds := list[0].Clone()
	if s.VarCols.IsSet() {
		if aux, ok := tabledata.Find(list, s.VarCols.DataRefID); ok {
			JoinVarCols(ds, s.VarCols, aux)
		}
	}

	data := &Data{
		RefID:   ds.RefID,
		Type:    ds.Type,
		Headers: ds.Headers(),
		Rows:    make([]*Row, len(ds.Rows)),
		defs:    defs,
		env:     env,
	}
	data.Columns = matchColumns(data.Headers, defs, env)
	for i, values := range ds.Rows {
		data.Rows[i] = &Row{Values: values}
	}

	return data, nil
}

// HasRows reports whether there is anything to draw.
func (d *Data) HasRows() bool {
	return d != nil && len(d.Rows) > 0
}

// IsTable reports whether the main dataset is a table.
func (d *Data) IsTable() bool {
	return d != nil && d.Type == tabledata.TypeTable
}
