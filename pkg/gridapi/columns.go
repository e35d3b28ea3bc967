// SPDX-License-Identifier: GPL-3.0-or-later

package gridapi

// Column defines the grid options of one table column.
type Column struct {
	Index      int
	Title      string
	Visible    bool
	Orderable  bool
	Searchable bool
	Width      string
	ClassName  string
}

// BuildColumn converts a Column definition to the JSON map used by the grid.
func (c Column) BuildColumn() map[string]any {
	col := map[string]any{
		"targets":    c.Index,
		"title":      c.Title,
		"visible":    c.Visible,
		"orderable":  c.Orderable,
		"searchable": c.Searchable,
	}

	if c.Width != "" {
		col["width"] = c.Width
	}
	if c.ClassName != "" {
		col["className"] = c.ClassName
	}

	return col
}
