// SPDX-License-Identifier: GPL-3.0-or-later

package gridapi

import (
	"encoding/json"
	"strconv"
)

// Order is one entry of the initial table ordering.
type Order struct {
	Column int
	Dir    SortDir
}

// Options defines the table-level grid settings.
type Options struct {
	Paging         bool
	Ordering       bool
	Searching      bool
	LengthChange   bool
	PageLength     int
	PageLengths    []int
	ScrollX        bool
	ScrollCollapse bool
	DeferRender    bool
	Order          []Order
	Columns        []Column
}

// BuildOptions converts Options to the JSON map used by the grid.
func (o Options) BuildOptions() map[string]any {
	opts := map[string]any{
		"paging":         o.Paging,
		"ordering":       o.Ordering,
		"searching":      o.Searching,
		"lengthChange":   o.LengthChange,
		"scrollX":        o.ScrollX,
		"scrollCollapse": o.ScrollCollapse,
		"deferRender":    o.DeferRender,
	}

	if o.PageLength != 0 {
		opts["pageLength"] = o.PageLength
	}
	if len(o.PageLengths) > 0 {
		opts["lengthMenu"] = LengthMenu(o.PageLengths)
	}

	order := make([][]any, 0, len(o.Order))
	for _, ord := range o.Order {
		order = append(order, []any{ord.Column, ord.Dir.String()})
	}
	opts["order"] = order

	columns := make([]map[string]any, 0, len(o.Columns))
	for _, col := range o.Columns {
		columns = append(columns, col.BuildColumn())
	}
	opts["columnDefs"] = columns

	return opts
}

// JSON encodes the built options.
func (o Options) JSON() ([]byte, error) {
	return json.Marshal(o.BuildOptions())
}

// LengthMenu builds the grid's [values, labels] page length menu. PageLengthAll is labelled "All".
func LengthMenu(lengths []int) [2][]any {
	var menu [2][]any
	for _, n := range lengths {
		menu[0] = append(menu[0], n)
		if n == PageLengthAll {
			menu[1] = append(menu[1], "All")
		} else {
			menu[1] = append(menu[1], strconv.Itoa(n))
		}
	}
	return menu
}
