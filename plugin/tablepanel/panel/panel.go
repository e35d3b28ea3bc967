// SPDX-License-Identifier: GPL-3.0-or-later

package panel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/willyd61/grafana-customTables-panel/logger"
	"github.com/willyd61/grafana-customTables-panel/pkg/placeholder"
	"github.com/willyd61/grafana-customTables-panel/pkg/pseudocss"
	"github.com/willyd61/grafana-customTables-panel/pkg/tabledata"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/engine"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/render"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/settings"
)

type (
	// DataSource runs the panel queries.
	DataSource interface {
		Fetch(ctx context.Context) ([]*tabledata.Dataset, error)
	}
	// VariableProvider exposes the dashboard state templates can reference.
	VariableProvider interface {
		Variables() []engine.Variable
		TimeRange() *placeholder.TimeRange
	}
	Renderer interface {
		Table(v *render.View) error
		Message(text string, isError bool) error
	}
)

type Config struct {
	Settings settings.Settings
	Source   DataSource
	Vars     VariableProvider
	Renderer Renderer
}

func New(cfg Config) *Panel {
	p := &Panel{
		Logger: logger.New().With(
			slog.String("component", "table panel"),
		),
		src:      cfg.Source,
		vars:     cfg.Vars,
		renderer: cfg.Renderer,
		settings: cfg.Settings,
	}

	p.redraw = newDebouncer(cfg.Settings.RedrawDelay.Duration(), p.autoRedraw)
	p.draw = newDebouncer(cfg.Settings.DrawDelay.Duration(), p.scheduledDraw)

	return p
}

type Panel struct {
	*logger.Logger

	src      DataSource
	vars     VariableProvider
	renderer Renderer

	mux       sync.Mutex
	settings  settings.Settings
	list      []*tabledata.Dataset
	isReal    bool
	drawn     bool
	drawnHash uint64

	// drawMux serializes draws.
	drawMux sync.Mutex

	redraw *debouncer
	draw   *debouncer
}

// Settings returns a copy of the current settings.
func (p *Panel) Settings() settings.Settings {
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.settings
}

// IsRealData reports whether the panel shows query results rather than the sample table.
func (p *Panel) IsRealData() bool {
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.isReal
}

// RefIDs lists the datasets available as variable column sources.
func (p *Panel) RefIDs() []string {
	p.mux.Lock()
	defer p.mux.Unlock()

	if !p.isReal {
		return nil
	}
	ids := make([]string, 0, len(p.list))
	for _, ds := range p.list {
		ids = append(ids, ds.RefID)
	}
	return ids
}

// Refresh fetches the data and draws it.
func (p *Panel) Refresh(ctx context.Context) error {
	if p.src == nil {
		return p.OnDataReceived(nil)
	}

	list, err := p.src.Fetch(ctx)
	if err != nil {
		if derr := p.OnDataError(err); derr != nil {
			p.Warningf("draw after data error: %v", derr)
		}
		return fmt.Errorf("fetch data: %w", err)
	}

	return p.OnDataReceived(list)
}

// OnDataReceived replaces the data and draws it. No datasets installs the sample table.
func (p *Panel) OnDataReceived(list []*tabledata.Dataset) error {
	p.mux.Lock()
	if len(list) > 0 {
		p.list, p.isReal = list, true
	} else {
		p.list, p.isReal = sampleData(), false
	}
	p.mux.Unlock()

	return p.Draw()
}

// OnDataError draws the data the panel already has.
func (p *Panel) OnDataError(err error) error {
	p.Errorf("data error: %v", err)
	return p.Draw()
}

// Draw renders the table, or a message when there is no table to show.
// The error of a failed draw is shown in the message and returned.
func (p *Panel) Draw() error {
	p.drawMux.Lock()
	defer p.drawMux.Unlock()

	s, list := p.snapshot()
	id := uuid.NewString()

	p.Debugf("draw %s: %s", id, s.String())

	hash, herr := settings.Hash(s)
	if herr != nil {
		p.Warningf("draw %s: hash settings: %v", id, herr)
	}

	ok, err := p.drawTable(&s, list)
	if ok {
		p.mux.Lock()
		p.drawn, p.drawnHash = herr == nil, hash
		p.mux.Unlock()
		return nil
	}

	msg := "No data."
	if err != nil {
		msg = "No data:  \r\n" + errorText(err)
		p.Warningf("draw %s: %v", id, err)
	}
	if merr := p.renderer.Message(msg, err != nil); merr != nil {
		p.Errorf("draw %s: render message: %v", id, merr)
		if err == nil {
			err = merr
		}
	}

	return err
}

func errorText(err error) string {
	if msg, ok := pseudocss.Message(err); ok {
		return msg
	}
	return err.Error()
}

func (p *Panel) drawTable(s *settings.Settings, list []*tabledata.Dataset) (bool, error) {
	data, err := engine.Prepare(list, s, p.env())
	if err != nil {
		return false, err
	}
	if !data.HasRows() || !data.IsTable() {
		return false, nil
	}

	view, err := render.NewView(data, s)
	if err != nil {
		return false, err
	}
	if err := p.renderer.Table(view); err != nil {
		return false, err
	}

	return true, nil
}

// DrawIfChanged draws when the settings differ from the ones of the last successful draw.
func (p *Panel) DrawIfChanged() error {
	s, _ := p.snapshot()

	hash, err := settings.Hash(s)
	if err == nil {
		p.mux.Lock()
		unchanged := p.drawn && p.drawnHash == hash
		p.mux.Unlock()
		if unchanged {
			p.Debug("settings unchanged, skipping draw")
			return nil
		}
	}

	return p.Draw()
}

// UpdateSettings replaces the settings. Panels allowing redraw on modify redraw once the
// updates settle.
func (p *Panel) UpdateSettings(s settings.Settings) {
	p.mux.Lock()
	p.settings = s
	p.mux.Unlock()

	p.redraw.setDelay(s.RedrawDelay.Duration())
	p.draw.setDelay(s.DrawDelay.Duration())

	if s.AllowRedrawOnModify {
		p.redraw.trigger()
	}
}

// ScheduleDraw draws once the calls settle.
func (p *Panel) ScheduleDraw() {
	p.draw.trigger()
}

// Close drops pending draws.
func (p *Panel) Close() {
	p.redraw.stop()
	p.draw.stop()
}

// PageLengthOptions returns the page lengths the table offers.
func (p *Panel) PageLengthOptions() []int {
	s, _ := p.snapshot()
	return s.PageLengthOptions()
}

func (p *Panel) autoRedraw() {
	if s, _ := p.snapshot(); !s.AllowRedrawOnModify {
		return
	}
	if err := p.DrawIfChanged(); err != nil {
		p.Debugf("auto redraw: %v", err)
	}
}

func (p *Panel) scheduledDraw() {
	if err := p.Draw(); err != nil {
		p.Debugf("scheduled draw: %v", err)
	}
}

func (p *Panel) snapshot() (settings.Settings, []*tabledata.Dataset) {
	p.mux.Lock()
	defer p.mux.Unlock()
	return p.settings, p.list
}

func (p *Panel) env() engine.Env {
	if p.vars == nil {
		return engine.Env{}
	}
	return engine.Env{
		Vars:      engine.VarsByName(p.vars.Variables()),
		TimeRange: p.vars.TimeRange(),
	}
}
