// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"strings"

	"github.com/google/uuid"

	"github.com/willyd61/grafana-customTables-panel/pkg/gridapi"
	"github.com/willyd61/grafana-customTables-panel/pkg/htmltext"
	"github.com/willyd61/grafana-customTables-panel/pkg/pseudocss"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/engine"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/settings"
)

// View is everything a renderer needs to draw a table.
type View struct {
	// Scope is the class name the stylesheet is scoped to.
	Scope    string
	Data     *engine.Data
	Settings *settings.Settings
	// Style is the translated pseudo-CSS.
	Style string
}

// NewView translates the pseudo-CSS of the settings and assigns a fresh scope.
func NewView(data *engine.Data, s *settings.Settings) (*View, error) {
	style, err := pseudocss.Translate(s.PseudoCSS)
	if err != nil {
		return nil, err
	}

	return &View{
		Scope:    newScope(),
		Data:     data,
		Settings: s,
		Style:    style,
	}, nil
}

func newScope() string {
	return "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// PageRows returns the rows of the first page. Every row is on it when paging is off
// or the initial page length shows all.
func (v *View) PageRows() []*engine.Row {
	rows := v.Data.Rows
	n := v.Settings.InitialPageLength
	if !v.Settings.AllowPaging || n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

// GridOptions builds the grid options of the table.
func (v *View) GridOptions() gridapi.Options {
	s := v.Settings

	opts := gridapi.Options{
		Paging:         s.AllowPaging,
		Ordering:       s.AllowOrdering,
		Searching:      s.AllowSearching,
		LengthChange:   s.AllowLengthChange,
		PageLength:     s.InitialPageLength,
		PageLengths:    s.PageLengthOptions(),
		ScrollX:        true,
		ScrollCollapse: true,
		DeferRender:    true,
		Order:          []gridapi.Order{},
	}

	for i, col := range v.Data.Columns {
		gc := gridapi.Column{
			Index:      i,
			Title:      htmltext.Text(col.HTML),
			Visible:    col.Visible,
			Orderable:  true,
			Searchable: true,
		}
		if def := col.Def; def != nil && col.Visible {
			gc.Width = def.Width
			gc.ClassName = def.ClassNames
			gc.Orderable = def.IsOrderable
			gc.Searchable = def.IsSearchable
		}
		opts.Columns = append(opts.Columns, gc)
	}

	return opts
}

// StyleSheet returns the pseudo-CSS as a stylesheet scoped to the view.
func (v *View) StyleSheet() (string, error) {
	return StyleSheet(v.Style, v.Scope)
}
