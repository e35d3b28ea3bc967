// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/willyd61/grafana-customTables-panel/pkg/placeholder"
	"github.com/willyd61/grafana-customTables-panel/pkg/web"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/datasource"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/engine"
)

// HostConfig is what the dashboard would provide to the panel: where the data comes from,
// the template variables and the time range.
type HostConfig struct {
	Files     *datasource.Files      `yaml:"files,omitempty" json:"files,omitempty"`
	SQL       *datasource.SQLConfig  `yaml:"sql,omitempty" json:"sql,omitempty"`
	HTTP      *web.HTTPConfig        `yaml:"http,omitempty" json:"http,omitempty"`
	Variables []engine.Variable      `yaml:"variables,omitempty" json:"variables,omitempty"`
	TimeRange *placeholder.TimeRange `yaml:"timeRange,omitempty" json:"timeRange,omitempty"`
}

// LoadHostConfig reads a yaml host config.
func LoadHostConfig(filename string) (HostConfig, error) {
	var cfg HostConfig

	bs, err := os.ReadFile(filename)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(bs, &cfg); err != nil {
		return cfg, fmt.Errorf("decode '%s': %v", filename, err)
	}

	return cfg, nil
}

// HostConfig merges the config file, when set, with the command line options.
// Options win over the file.
func (o *Option) HostConfig() (HostConfig, error) {
	var cfg HostConfig
	if o.Config != "" {
		var err error
		if cfg, err = LoadHostConfig(o.Config); err != nil {
			return cfg, err
		}
	}

	if len(o.Data) > 0 {
		cfg.Files = &datasource.Files{Patterns: o.Data}
	}
	if o.URL != "" {
		cfg.HTTP = &web.HTTPConfig{RequestConfig: web.RequestConfig{URL: o.URL}}
	}
	if o.SQLDriver != "" || o.SQLDSN != "" || len(o.SQLQueries) > 0 {
		if cfg.SQL == nil {
			cfg.SQL = &datasource.SQLConfig{}
		}
		if o.SQLDriver != "" {
			cfg.SQL.Driver = o.SQLDriver
		}
		if o.SQLDSN != "" {
			cfg.SQL.DSN = o.SQLDSN
		}
		for _, s := range o.SQLQueries {
			q, err := ParseQuery(s)
			if err != nil {
				return cfg, err
			}
			cfg.SQL.Queries = append(cfg.SQL.Queries, q)
		}
	}

	for _, s := range o.Vars {
		v, err := datasource.ParseVariable(s)
		if err != nil {
			return cfg, err
		}
		cfg.Variables = append(cfg.Variables, v)
	}

	if o.From != "" || o.To != "" {
		cfg.TimeRange = &placeholder.TimeRange{From: o.From, To: o.To}
	}

	return cfg, nil
}

// ParseQuery parses "refId=query".
func ParseQuery(s string) (datasource.SQLQuery, error) {
	refID, query, ok := strings.Cut(s, "=")
	refID, query = strings.TrimSpace(refID), strings.TrimSpace(query)
	if !ok || refID == "" || query == "" {
		return datasource.SQLQuery{}, fmt.Errorf("invalid query '%s', want refId=query", s)
	}
	return datasource.SQLQuery{RefID: refID, Query: query}, nil
}
