// SPDX-License-Identifier: GPL-3.0-or-later

package engine

import (
	"encoding/json"
	"math"

	"github.com/willyd61/grafana-customTables-panel/pkg/tabledata"
)

func (r Row) MarshalJSON() ([]byte, error) {
	type plain Row
	values := make([]any, len(r.Values))
	for i, v := range r.Values {
		values[i] = jsonValue(v)
	}
	r.Values = values
	return json.Marshal(plain(r))
}

func (c Cell) MarshalJSON() ([]byte, error) {
	type plain Cell
	c.Raw = jsonValue(c.Raw)
	return json.Marshal(plain(c))
}

// jsonValue replaces the numbers JSON can't represent with their dashboard text.
func jsonValue(v any) any {
	switch f := v.(type) {
	case float64:
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return tabledata.Stringify(f)
		}
	case float32:
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return tabledata.Stringify(f)
		}
	}
	return v
}
