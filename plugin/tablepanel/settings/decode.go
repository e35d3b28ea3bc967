// SPDX-License-Identifier: GPL-3.0-or-later

package settings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"
)

// Format is the encoding of a settings document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf guesses the format from a file name extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads a settings file. A non-empty path selects the panel inside a larger JSON
// document, see DecodeAt.
func Load(filename, path string) (Settings, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Settings{}, err
	}

	var s Settings
	if path != "" {
		s, err = DecodeAt(data, path)
	} else {
		s, err = Decode(data, FormatOf(filename))
	}
	if err != nil {
		return Settings{}, fmt.Errorf("'%s': %v", filename, err)
	}
	return s, nil
}

// Decode parses a settings document. Keys that are missing keep their Default value,
// except allowRedrawOnModify which panels saved before it existed must not get.
func Decode(data []byte, format Format) (Settings, error) {
	s := Default()
	s.AllowRedrawOnModify = false

	if len(bytes.TrimSpace(data)) == 0 {
		return s, nil
	}

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &s)
	default:
		err = json.Unmarshal(data, &s)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("decode %s settings: %v", format, err)
	}
	if s.ColumnDefs == nil {
		s.ColumnDefs = []ColumnDef{}
	}
	return s, nil
}

// DecodeAt decodes the JSON object found at a gjson path, for example
// `panels.#(type=="datatable")` in a dashboard model.
func DecodeAt(data []byte, path string) (Settings, error) {
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return Settings{}, fmt.Errorf("no panel at path '%s'", path)
	}
	if !res.IsObject() {
		return Settings{}, fmt.Errorf("value at path '%s' is not an object", path)
	}
	return Decode([]byte(res.Raw), FormatJSON)
}

func (c *ColumnDef) UnmarshalJSON(data []byte) error {
	type plain ColumnDef
	v := plain(NewColumnDef())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = ColumnDef(v)
	return nil
}

func (c *ColumnDef) UnmarshalYAML(unmarshal func(any) error) error {
	type plain ColumnDef
	v := plain(NewColumnDef())
	if err := unmarshal(&v); err != nil {
		return err
	}
	*c = ColumnDef(v)
	return nil
}

func (r *ContentRule) UnmarshalJSON(data []byte) error {
	type plain ContentRule
	v := plain(NewContentRule())
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = ContentRule(v)
	return nil
}

func (r *ContentRule) UnmarshalYAML(unmarshal func(any) error) error {
	type plain ContentRule
	v := plain(NewContentRule())
	if err := unmarshal(&v); err != nil {
		return err
	}
	*r = ContentRule(v)
	return nil
}
