// SPDX-License-Identifier: GPL-3.0-or-later

package gridapi

import "encoding/json"

// SortDir is the direction of an initial ordering.
type SortDir uint8

const (
	// SortAscending orders from the smallest value.
	SortAscending SortDir = iota
	// SortDescending orders from the largest value.
	SortDescending
)

// String returns the grid keyword used for this direction.
func (d SortDir) String() string {
	if d == SortDescending {
		return "desc"
	}
	return "asc"
}

// MarshalJSON encodes the direction as a grid keyword.
func (d SortDir) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// PageLengthAll is the page length that shows every row.
const PageLengthAll = -1
