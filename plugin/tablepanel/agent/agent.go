// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sourcegraph/conc"

	"github.com/willyd61/grafana-customTables-panel/logger"
	"github.com/willyd61/grafana-customTables-panel/pkg/pseudocss"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/cli"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/datasource"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/panel"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/render"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/server"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/settings"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/watch"
)

// Output formats.
const (
	FormatHTML   = "html"
	FormatJSON   = "json"
	FormatCSV    = "csv"
	FormatStyle  = "style"
	FormatSchema = "schema"
)

// Config is an Agent configuration.
type Config struct {
	SettingsFile string
	SettingsPath string
	Host         cli.HostConfig
	Format       string
	Output       string
	Watch        bool
	Listen       string
}

// Agent wires a panel to its data source, renderer and, optionally, file watcher and HTTP server.
type Agent struct {
	*logger.Logger

	SettingsFile string
	SettingsPath string
	Host         cli.HostConfig
	Format       string
	Output       string
	Watch        bool
	Listen       string
	Out          io.Writer
}

// New creates a new Agent.
func New(cfg Config) *Agent {
	a := &Agent{
		Logger: logger.New().With(
			slog.String("component", "agent"),
		),
		SettingsFile: cfg.SettingsFile,
		SettingsPath: cfg.SettingsPath,
		Host:         cfg.Host,
		Format:       cfg.Format,
		Output:       cfg.Output,
		Watch:        cfg.Watch,
		Listen:       cfg.Listen,
		Out:          os.Stdout,
	}
	if cfg.Output != "" {
		a.Out = fileWriter(cfg.Output)
	}
	if a.Format == "" {
		a.Format = FormatHTML
	}
	return a
}

// Run draws the panel once and, in watch or listen mode, keeps it up to date until the
// context is done.
func (a *Agent) Run(ctx context.Context) error {
	a.Info("instance is started")
	defer func() { a.Info("instance is stopped") }()

	if a.Output != "" {
		locker, err := lockOutput(a.Output)
		if err != nil {
			return err
		}
		defer func() { _ = locker.Close() }()
	}

	s, err := a.loadSettings()
	if err != nil {
		return err
	}

	switch a.Format {
	case FormatSchema:
		bs, err := settings.Schema()
		if err != nil {
			return err
		}
		_, err = a.Out.Write(bs)
		return err
	case FormatStyle:
		style, err := pseudocss.Translate(s.PseudoCSS)
		if err != nil {
			return err
		}
		_, err = io.WriteString(a.Out, style)
		return err
	}

	src, err := a.newSource()
	if err != nil {
		return err
	}
	if c, ok := src.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}

	var page *render.HTML
	var renderer panel.Renderer
	switch a.Format {
	case FormatHTML:
		page = render.NewHTML(a.Out)
		renderer = page
	case FormatJSON:
		page = render.NewHTML(nil)
		renderer = renderers{render.NewJSON(a.Out), page}
	case FormatCSV:
		page = render.NewHTML(nil)
		renderer = page
	default:
		return fmt.Errorf("unknown format '%s'", a.Format)
	}

	p := panel.New(panel.Config{
		Settings: s,
		Source:   src,
		Vars:     datasource.StaticVariables{Vars: a.Host.Variables, Range: a.Host.TimeRange},
		Renderer: renderer,
	})
	defer p.Close()

	if err := p.Refresh(ctx); err != nil {
		a.Warning(err)
	}

	if a.Format == FormatCSV {
		if _, err := p.ExportCSV(a.Out); err != nil {
			return err
		}
	}

	if !a.Watch && a.Listen == "" {
		return nil
	}

	var wg conc.WaitGroup
	var srvErr error

	if a.Watch {
		w, err := a.newWatcher()
		if err != nil {
			return err
		}
		defer func() { _ = w.Close() }()

		wg.Go(func() { w.Run(ctx, func(path string) { a.onFileChanged(ctx, p, path) }) })
	}
	if a.Listen != "" {
		srv := server.New(a.Listen, p, page)
		wg.Go(func() { srvErr = srv.Run(ctx) })
	}

	wg.Wait()

	return srvErr
}

func (a *Agent) loadSettings() (settings.Settings, error) {
	if a.SettingsFile == "" {
		return settings.Default(), nil
	}

	s, err := settings.Load(a.SettingsFile, a.SettingsPath)
	if err != nil {
		return s, err
	}
	if err := s.Validate(); err != nil {
		a.Warningf("settings '%s': %v", a.SettingsFile, err)
	}
	return s, nil
}

// newSource picks the first configured source: sql, http, then files.
func (a *Agent) newSource() (panel.DataSource, error) {
	switch {
	case a.Host.SQL != nil:
		db, err := datasource.NewSQL(*a.Host.SQL)
		if err != nil {
			return nil, err
		}
		return db, nil
	case a.Host.HTTP != nil:
		h, err := datasource.NewHTTP(*a.Host.HTTP)
		if err != nil {
			return nil, err
		}
		h.TimeRange = a.Host.TimeRange
		return h, nil
	case a.Host.Files != nil:
		return *a.Host.Files, nil
	default:
		return nil, nil
	}
}

func (a *Agent) newWatcher() (*watch.Watcher, error) {
	var paths []string
	if a.SettingsFile != "" {
		paths = append(paths, a.SettingsFile)
	}
	if a.Host.SQL == nil && a.Host.HTTP == nil && a.Host.Files != nil {
		files, err := a.Host.Files.Paths()
		if err != nil {
			return nil, err
		}
		paths = append(paths, files...)
	}
	if len(paths) == 0 {
		return nil, errors.New("nothing to watch: no settings or dataset files")
	}
	return watch.New(paths...)
}

func (a *Agent) onFileChanged(ctx context.Context, p *panel.Panel, path string) {
	if a.isSettingsFile(path) {
		s, err := a.loadSettings()
		if err != nil {
			a.Warningf("reload settings: %v", err)
			return
		}
		p.UpdateSettings(s)
		if !s.AllowRedrawOnModify {
			p.ScheduleDraw()
		}
		return
	}

	if err := p.Refresh(ctx); err != nil {
		a.Warningf("refresh after '%s' changed: %v", path, err)
	}
}

func (a *Agent) isSettingsFile(path string) bool {
	if a.SettingsFile == "" {
		return false
	}
	return sameFile(a.SettingsFile, path)
}
