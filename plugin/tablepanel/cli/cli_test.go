// SPDX-License-Identifier: GPL-3.0-or-later

package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/willyd61/grafana-customTables-panel/pkg/confopt"
	"github.com/willyd61/grafana-customTables-panel/pkg/placeholder"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/datasource"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/engine"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		args    []string
		want    *Option
		wantErr bool
	}{
		"defaults": {
			args: []string{},
			want: &Option{Format: "html"},
		},
		"all": {
			args: []string{
				"-s", "panel.yaml", "-p", "panels.0", "-f", "data/*.json", "-f", "more/**/*.json",
				"--sql-driver", "mysql", "--sql-dsn", "dsn", "-q", "A=SELECT 1",
				"--var", "env=prod", "--from", "now-1h", "--to", "now",
				"-o", "csv", "--output", "out.csv", "-w", "-l", ":8080", "-d",
			},
			want: &Option{
				Settings:     "panel.yaml",
				SettingsPath: "panels.0",
				Data:         []string{"data/*.json", "more/**/*.json"},
				SQLDriver:    "mysql",
				SQLDSN:       "dsn",
				SQLQueries:   []string{"A=SELECT 1"},
				Vars:         []string{"env=prod"},
				From:         "now-1h",
				To:           "now",
				Format:       "csv",
				Output:       "out.csv",
				Watch:        true,
				Listen:       ":8080",
				Debug:        true,
			},
		},
		"unknown format": {
			args:    []string{"-o", "xml"},
			wantErr: true,
		},
		"unknown driver": {
			args:    []string{"--sql-driver", "oracle"},
			wantErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			opt, err := Parse(test.args)

			if test.wantErr {
				assert.Error(t, err)
				assert.False(t, IsHelp(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, opt)
		})
	}
}

func TestParse_Help(t *testing.T) {
	_, err := Parse([]string{"-h"})

	require.Error(t, err)
	assert.True(t, IsHelp(err))
}

func TestParse_ExpandsHomeDir(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	opt, err := Parse([]string{"-s", "~/panel.yaml", "-f", "~/data/*.json", "--output", "/tmp/out.html"})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "panel.yaml"), opt.Settings)
	assert.Equal(t, []string{filepath.Join(home, "data", "*.json")}, opt.Data)
	assert.Equal(t, "/tmp/out.html", opt.Output)
}

func TestOption_HostConfig(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "host.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`
sql:
  driver: postgres
  dsn: postgres://localhost/db
  timeout: 2s
  queries:
    - refId: A
      query: SELECT 1
http:
  url: http://127.0.0.1/data
  timeout: 3
  headers:
    X-Api-Key: secret
variables:
  - name: env
    values: [prod]
    text: prod
timeRange:
  from: now-6h
  to: now
`), 0o644))

	opt := &Option{
		Config:     cfgFile,
		SQLQueries: []string{"B = SELECT 2"},
		Vars:       []string{"host=$__all"},
		From:       "now-1h",
		To:         "now",
	}

	cfg, err := opt.HostConfig()
	require.NoError(t, err)

	require.NotNil(t, cfg.SQL)
	assert.Equal(t, "postgres", cfg.SQL.Driver)
	assert.Equal(t, confopt.Duration(2*time.Second), cfg.SQL.Timeout)
	assert.Equal(t, []datasource.SQLQuery{{RefID: "A", Query: "SELECT 1"}, {RefID: "B", Query: "SELECT 2"}}, cfg.SQL.Queries)

	require.NotNil(t, cfg.HTTP)
	assert.Equal(t, "http://127.0.0.1/data", cfg.HTTP.URL)
	assert.Equal(t, confopt.Duration(3*time.Second), cfg.HTTP.Timeout)
	assert.Equal(t, "secret", cfg.HTTP.Headers["X-Api-Key"])

	assert.Nil(t, cfg.Files)
	assert.Equal(t, []engine.Variable{
		{Name: "env", Values: []string{"prod"}, Text: "prod"},
		{Name: "host", Values: []string{"$__all"}, Text: "All", IncludeAll: true},
	}, cfg.Variables)
	assert.Equal(t, &placeholder.TimeRange{From: "now-1h", To: "now"}, cfg.TimeRange)
}

func TestOption_HostConfig_Errors(t *testing.T) {
	tests := map[string]*Option{
		"missing config file": {Config: filepath.Join(t.TempDir(), "missing.yaml")},
		"invalid query":       {SQLQueries: []string{"SELECT 1"}},
		"invalid variable":    {Vars: []string{"env"}},
	}

	for name, opt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := opt.HostConfig()

			assert.Error(t, err)
		})
	}
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery("A=SELECT a FROM t WHERE b = 1")

	require.NoError(t, err)
	assert.Equal(t, datasource.SQLQuery{RefID: "A", Query: "SELECT a FROM t WHERE b = 1"}, q)

	_, err = ParseQuery("=SELECT 1")
	assert.Error(t, err)
}
