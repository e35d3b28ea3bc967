// SPDX-License-Identifier: GPL-3.0-or-later

package datasource

import (
	"fmt"
	"strings"

	"github.com/willyd61/grafana-customTables-panel/pkg/placeholder"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/engine"
)

// StaticVariables provides a fixed set of variables and time range.
type StaticVariables struct {
	Vars  []engine.Variable      `yaml:"variables" json:"variables"`
	Range *placeholder.TimeRange `yaml:"timeRange,omitempty" json:"timeRange,omitempty"`
}

func (s StaticVariables) Variables() []engine.Variable      { return s.Vars }
func (s StaticVariables) TimeRange() *placeholder.TimeRange { return s.Range }

// ParseVariable parses "name=value1,value2". A value of $__all selects the "All" option.
func ParseVariable(s string) (engine.Variable, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return engine.Variable{}, fmt.Errorf("invalid variable '%s', want name=value[,value]", s)
	}

	v := engine.Variable{Name: name, Values: []string{}}
	if value != "" {
		v.Values = strings.Split(value, ",")
	}
	v.Text = strings.Join(v.Values, " + ")

	if len(v.Values) == 1 && v.Values[0] == engine.AllValue {
		v.IncludeAll = true
		v.Text = "All"
	}

	return v, nil
}
