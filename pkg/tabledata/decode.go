// SPDX-License-Identifier: GPL-3.0-or-later

package tabledata

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// Decode reads host query results. It accepts a single dataset object, an array of them,
// or an envelope with the array under "data".
func Decode(data []byte) ([]*Dataset, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}

	res := gjson.ParseBytes(data)
	if res.IsObject() && res.Get("data").IsArray() {
		res = res.Get("data")
	}

	switch {
	case res.IsArray():
		var list []*Dataset
		var err error
		res.ForEach(func(key, value gjson.Result) bool {
			var d *Dataset
			if d, err = decodeDataset(value); err != nil {
				err = fmt.Errorf("dataset %d: %w", key.Int(), err)
				return false
			}
			list = append(list, d)
			return true
		})
		return list, err
	case res.IsObject():
		d, err := decodeDataset(res)
		if err != nil {
			return nil, err
		}
		return []*Dataset{d}, nil
	default:
		return nil, fmt.Errorf("unexpected JSON %s, want an object or an array", res.Type)
	}
}

func decodeDataset(res gjson.Result) (*Dataset, error) {
	if !res.IsObject() {
		return nil, fmt.Errorf("unexpected JSON %s, want an object", res.Type)
	}

	d := &Dataset{
		RefID: res.Get("refId").String(),
		Type:  res.Get("type").String(),
	}
	if d.Type == "" {
		d.Type = TypeTable
	}

	for _, col := range res.Get("columns").Array() {
		switch {
		case col.IsObject():
			d.Columns = append(d.Columns, Column{Text: col.Get("text").String()})
		default:
			d.Columns = append(d.Columns, Column{Text: col.String()})
		}
	}

	for i, row := range res.Get("rows").Array() {
		if !row.IsArray() {
			return nil, fmt.Errorf("row %d: unexpected JSON %s, want an array", i, row.Type)
		}
		values := row.Array()
		r := make(Row, len(values))
		for j, v := range values {
			r[j] = decodeValue(v)
		}
		d.Rows = append(d.Rows, r)
	}

	return d, nil
}

func decodeValue(v gjson.Result) any {
	switch v.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num
	case gjson.String:
		return v.Str
	default:
		return v.Value()
	}
}
