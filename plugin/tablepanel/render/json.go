// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"encoding/json"
	"io"
)

// JSON renders the processed data of every row as a JSON document.
type JSON struct {
	out io.Writer
}

func NewJSON(out io.Writer) *JSON {
	return &JSON{out: out}
}

func (j *JSON) Table(v *View) error {
	v.Data.ProcessAll()

	return j.encode(struct {
		Scope   string          `json:"scope"`
		Data    any             `json:"data"`
		Style   json.RawMessage `json:"style"`
		Options map[string]any  `json:"options"`
	}{
		Scope:   v.Scope,
		Data:    v.Data,
		Style:   json.RawMessage(v.Style),
		Options: v.GridOptions().BuildOptions(),
	})
}

func (j *JSON) Message(text string, isError bool) error {
	return j.encode(struct {
		Message string `json:"message"`
		IsError bool   `json:"isError"`
	}{text, isError})
}

func (j *JSON) encode(v any) error {
	enc := json.NewEncoder(j.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
