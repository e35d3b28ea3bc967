// SPDX-License-Identifier: GPL-3.0-or-later

package settings

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/invopop/jsonschema"
)

// Bound is a range rule limit. It decodes from a string, a number or null.
type Bound struct {
	Text  string
	Valid bool
}

func NewBound(text string) Bound {
	return Bound{Text: text, Valid: true}
}

// Value returns the bound as the editor stored it: nil when unset.
func (b Bound) Value() any {
	if !b.Valid {
		return nil
	}
	return b.Text
}

func (b Bound) String() string {
	if !b.Valid {
		return "null"
	}
	return b.Text
}

func (b *Bound) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	return b.set(v)
}

func (b Bound) MarshalJSON() ([]byte, error) {
	if !b.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(b.Text)
}

func (b *Bound) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	return b.set(v)
}

func (b Bound) MarshalYAML() (any, error) {
	return b.Value(), nil
}

// JSONSchema describes the accepted encodings.
func (Bound) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "string"},
			{Type: "number"},
			{Type: "null"},
		},
	}
}

func (b *Bound) set(v any) error {
	switch v := v.(type) {
	case nil:
		*b = Bound{}
	case string:
		*b = NewBound(v)
	case float64:
		*b = NewBound(strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		*b = NewBound(strconv.Itoa(v))
	case bool:
		*b = NewBound(strconv.FormatBool(v))
	default:
		return fmt.Errorf("unsupported range bound '%v'", v)
	}
	return nil
}
