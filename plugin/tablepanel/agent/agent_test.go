// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/willyd61/grafana-customTables-panel/pkg/pseudocss"
	"github.com/willyd61/grafana-customTables-panel/pkg/web"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/cli"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/datasource"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/panel"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/render"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/settings"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDataset = `{"refId": "A", "columns": ["host"], "rows": [["web1"], ["web2"]]}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestAgent(cfg Config) (*Agent, *bytes.Buffer) {
	var buf bytes.Buffer
	a := New(cfg)
	a.Mute()
	a.Out = &buf
	return a, &buf
}

func TestAgent_Run(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "a.json")
	writeFile(t, dataFile, testDataset)
	files := &datasource.Files{Patterns: []string{dataFile}}

	defaultStyle, err := pseudocss.Translate(settings.DefaultPseudoCSS)
	require.NoError(t, err)

	tests := map[string]struct {
		cfg   Config
		check func(t *testing.T, out string)
	}{
		"schema": {
			cfg: Config{Format: FormatSchema},
			check: func(t *testing.T, out string) {
				assert.True(t, json.Valid([]byte(out)))
				assert.Contains(t, out, "pseudoCSS")
			},
		},
		"style": {
			cfg: Config{Format: FormatStyle},
			check: func(t *testing.T, out string) {
				assert.Equal(t, defaultStyle, out)
			},
		},
		"csv": {
			cfg: Config{Format: FormatCSV, Host: cli.HostConfig{Files: files}},
			check: func(t *testing.T, out string) {
				assert.Equal(t, "host\nweb1\nweb2", out)
			},
		},
		"html": {
			cfg: Config{Host: cli.HostConfig{Files: files}},
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "table-panel")
				assert.Contains(t, out, "web2")
			},
		},
		"html without source shows the sample table": {
			cfg: Config{Format: FormatHTML},
			check: func(t *testing.T, out string) {
				assert.Contains(t, out, "X * X")
			},
		},
		"json": {
			cfg: Config{Format: FormatJSON, Host: cli.HostConfig{Files: files}},
			check: func(t *testing.T, out string) {
				var v map[string]any
				require.NoError(t, json.Unmarshal([]byte(out), &v))
				assert.Contains(t, v, "scope")
				assert.Contains(t, v, "data")
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			a, buf := newTestAgent(test.cfg)

			require.NoError(t, a.Run(context.Background()))
			test.check(t, buf.String())
		})
	}
}

func TestAgent_Run_Errors(t *testing.T) {
	dir := t.TempDir()
	badSettings := filepath.Join(dir, "panel.json")
	writeFile(t, badSettings, `{"title": `)

	tests := map[string]Config{
		"missing settings file": {SettingsFile: filepath.Join(dir, "missing.json")},
		"invalid settings file": {SettingsFile: badSettings},
		"unknown format":        {Format: "xml"},
		"invalid sql config":    {Host: cli.HostConfig{SQL: &datasource.SQLConfig{Driver: "oracle"}}},
		"http without url":      {Host: cli.HostConfig{HTTP: &web.HTTPConfig{}}},
		"watch without files":   {Watch: true},
	}

	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			a, _ := newTestAgent(cfg)

			assert.Error(t, a.Run(context.Background()))
		})
	}
}

func TestAgent_Run_SettingsFile(t *testing.T) {
	dir := t.TempDir()
	settingsFile := filepath.Join(dir, "panel.yaml")
	writeFile(t, settingsFile, "title: Hosts\npseudoCSS: \"td { color: red; }\"\n")

	a, buf := newTestAgent(Config{SettingsFile: settingsFile, Format: FormatStyle})

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, buf.String(), `"color": "red"`)
}

func TestAgent_Run_OutputFile(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "a.json")
	writeFile(t, dataFile, testDataset)
	outFile := filepath.Join(dir, "out.csv")
	writeFile(t, outFile, "previous content that is longer than the export")

	a := New(Config{
		Format: FormatCSV,
		Output: outFile,
		Host:   cli.HostConfig{Files: &datasource.Files{Patterns: []string{dataFile}}},
	})
	a.Mute()

	require.NoError(t, a.Run(context.Background()))

	bs, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, "host\nweb1\nweb2", string(bs))
}

func TestAgent_Run_OutputLocked(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "out.html")

	other := flock.New(outFile + ".lock")
	locked, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer func() { _ = other.Close() }()

	a := New(Config{Format: FormatSchema, Output: outFile})
	a.Mute()

	assert.Error(t, a.Run(context.Background()))
	assert.NoFileExists(t, outFile)
}

func TestAgent_Run_ListenStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a, buf := newTestAgent(Config{Listen: "127.0.0.1:0"})

	require.NoError(t, a.Run(ctx))
	assert.NotEmpty(t, buf.String())
}

func TestAgent_newSource(t *testing.T) {
	files := &datasource.Files{Patterns: []string{"*.json"}}
	sqlCfg := &datasource.SQLConfig{
		Driver:  "sqlite",
		DSN:     ":memory:",
		Queries: []datasource.SQLQuery{{RefID: "A", Query: "SELECT 1"}},
	}
	httpCfg := &web.HTTPConfig{RequestConfig: web.RequestConfig{URL: "http://127.0.0.1"}}

	tests := map[string]struct {
		host cli.HostConfig
		want string
	}{
		"none":            {want: "<nil>"},
		"files":           {host: cli.HostConfig{Files: files}, want: "datasource.Files"},
		"http over files": {host: cli.HostConfig{Files: files, HTTP: httpCfg}, want: "*datasource.HTTP"},
		"sql over all":    {host: cli.HostConfig{Files: files, HTTP: httpCfg, SQL: sqlCfg}, want: "*datasource.SQL"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			a, _ := newTestAgent(Config{Host: test.host})

			src, err := a.newSource()
			require.NoError(t, err)
			if test.want == "<nil>" {
				assert.Nil(t, src)
				return
			}
			assert.Equal(t, test.want, typeName(src))
		})
	}
}

func TestAgent_isSettingsFile(t *testing.T) {
	dir := t.TempDir()
	a, _ := newTestAgent(Config{SettingsFile: filepath.Join(dir, "panel.json")})

	assert.True(t, a.isSettingsFile(filepath.Join(dir, ".", "panel.json")))
	assert.False(t, a.isSettingsFile(filepath.Join(dir, "data.json")))

	b, _ := newTestAgent(Config{})
	assert.False(t, b.isSettingsFile(filepath.Join(dir, "panel.json")))
}

func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}

func TestRenderers(t *testing.T) {
	var htmlBuf, jsonBuf bytes.Buffer
	rs := renderers{render.NewHTML(&htmlBuf), render.NewJSON(&jsonBuf)}

	require.NoError(t, rs.Message("No data.", false))

	assert.Contains(t, htmlBuf.String(), "No data.")
	assert.Contains(t, jsonBuf.String(), `"message": "No data."`)
}

func TestAgent_onFileChanged(t *testing.T) {
	dir := t.TempDir()
	settingsFile := filepath.Join(dir, "panel.yaml")
	dataFile := filepath.Join(dir, "a.json")
	writeFile(t, settingsFile, "title: Hosts\n")
	writeFile(t, dataFile, testDataset)

	a, _ := newTestAgent(Config{SettingsFile: settingsFile})

	page := render.NewHTML(nil)
	p := panel.New(panel.Config{
		Settings: settings.Default(),
		Source:   datasource.Files{Patterns: []string{dataFile}},
		Renderer: page,
	})
	p.Mute()
	defer p.Close()

	ctx := context.Background()
	require.NoError(t, p.Refresh(ctx))
	require.Contains(t, string(page.Last()), "web2")

	writeFile(t, dataFile, `{"refId": "A", "columns": ["host"], "rows": [["web3"]]}`)
	a.onFileChanged(ctx, p, dataFile)
	assert.Contains(t, string(page.Last()), "web3")

	writeFile(t, settingsFile, "title: Hosts\ndrawDelay: 10ms\npseudoCSS: \"td { color: red; }\"\n")
	a.onFileChanged(ctx, p, settingsFile)

	assert.Equal(t, "Hosts", p.Settings().Title)
	assert.Eventually(t, func() bool {
		return strings.Contains(string(page.Last()), "color: red;")
	}, time.Second, 10*time.Millisecond)
}
