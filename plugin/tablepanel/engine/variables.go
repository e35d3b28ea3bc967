// SPDX-License-Identifier: GPL-3.0-or-later

package engine

// AllValue is the value of a variable whose "All" option is selected.
const AllValue = "$__all"

// Variable is a dashboard template variable with its current selection.
type Variable struct {
	Name string `yaml:"name" json:"name"`
	// Values are the selected values. A single value is a one element list.
	Values []string `yaml:"values" json:"values"`
	// Text is the display text of the selection.
	Text       string `yaml:"text" json:"text"`
	IncludeAll bool   `yaml:"includeAll" json:"includeAll"`
}

// VarsByName indexes the variables by name. A variable with the "All" option selected
// resolves to its display text instead of the AllValue sentinel.
func VarsByName(vars []Variable) map[string][]string {
	m := make(map[string][]string, len(vars))
	for _, v := range vars {
		if v.IncludeAll && len(v.Values) == 1 && v.Values[0] == AllValue {
			m[v.Name] = []string{v.Text}
			continue
		}
		m[v.Name] = v.Values
	}
	return m
}
