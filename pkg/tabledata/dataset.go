// SPDX-License-Identifier: GPL-3.0-or-later

package tabledata

import (
	"encoding/json"
	"slices"
)

// TypeTable is the only dataset type the table view draws.
const TypeTable = "table"

type (
	// Dataset is one query result as delivered by the host.
	Dataset struct {
		RefID   string   `json:"refId"`
		Type    string   `json:"type"`
		Columns []Column `json:"columns"`
		Rows    []Row    `json:"rows"`
	}

	// Column is a dataset header. It decodes from a plain string or a {"text": ...} object.
	Column struct {
		Text string `json:"text"`
	}

	// Row holds raw scalar values: nil, float64, int64, string, bool or time.Time.
	Row []any
)

func (c *Column) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		c.Text = s
		return nil
	}

	var v struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	c.Text = v.Text
	return nil
}

// Clone returns a copy that shares no slices with d.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}

	c := &Dataset{
		RefID:   d.RefID,
		Type:    d.Type,
		Columns: slices.Clone(d.Columns),
		Rows:    make([]Row, len(d.Rows)),
	}
	for i, row := range d.Rows {
		c.Rows[i] = slices.Clone(row)
	}
	return c
}

// Headers returns the column texts in order.
func (d *Dataset) Headers() []string {
	headers := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		headers[i] = col.Text
	}
	return headers
}

// ColumnIndex returns the index of the first column with the given text, or -1.
func (d *Dataset) ColumnIndex(text string) int {
	return slices.IndexFunc(d.Columns, func(c Column) bool { return c.Text == text })
}

// Find returns the dataset with the given refId.
func Find(list []*Dataset, refID string) (*Dataset, bool) {
	for _, d := range list {
		if d != nil && d.RefID == refID {
			return d, true
		}
	}
	return nil, false
}
