// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"html"
	"html/template"
	"io"
	"strings"
	"sync"

	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/engine"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/settings"
)

var (
	tmplTable = template.Must(template.New("table").Parse(`<div class="table-panel {{.Scope}}">
<style>
{{.StyleSheet}}</style>
<table class="display"{{if .FullWidth}} style="width: 100%"{{end}}>
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr{{with .Class}} class="{{.}}"{{end}}>{{range .Cells}}<td{{with .Class}} class="{{.}}"{{end}}>{{.HTML}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
<script type="application/json" class="grid-options">{{.Options}}</script>
</div>
`))

	tmplMessage = template.Must(template.New("message").Parse(`<div class="table-panel" style="display: flex; align-items: center; text-align: center; height: 100%">
<div class="alert {{if .IsError}}alert-error{{else}}alert-info{{end}}" style="margin: 0px auto">{{.Text}}</div>
</div>
`))
)

type (
	tablePage struct {
		Scope      string
		FullWidth  bool
		StyleSheet template.CSS
		Headers    []template.HTML
		Rows       []pageRow
		Options    map[string]any
	}
	pageRow struct {
		Class string
		Cells []pageCell
	}
	pageCell struct {
		Class string
		HTML  template.HTML
	}
)

// HTML renders to HTML documents. The last rendered page is kept, see Last.
type HTML struct {
	out io.Writer

	mux  sync.RWMutex
	last []byte
}

// NewHTML returns a renderer that also writes every page to out. out may be nil.
func NewHTML(out io.Writer) *HTML {
	return &HTML{out: out}
}

// Table renders the first page of the view. Only the rows on it are processed.
func (h *HTML) Table(v *View) error {
	css, err := v.StyleSheet()
	if err != nil {
		return err
	}

	rows := v.PageRows()
	v.Data.ProcessRows(rows)

	page := tablePage{
		Scope:      v.Scope,
		FullWidth:  v.Settings.IsFullWidth,
		StyleSheet: template.CSS(css),
		Options:    v.GridOptions().BuildOptions(),
	}
	for _, col := range v.Data.Columns {
		if col.Visible {
			page.Headers = append(page.Headers, template.HTML(col.HTML))
		}
	}
	for _, row := range rows {
		page.Rows = append(page.Rows, newPageRow(v.Data.Columns, row))
	}

	var buf bytes.Buffer
	if err := tmplTable.Execute(&buf, page); err != nil {
		return err
	}
	return h.flush(buf.Bytes())
}

// Message renders a centered alert in place of the table.
func (h *HTML) Message(text string, isError bool) error {
	var buf bytes.Buffer
	err := tmplMessage.Execute(&buf, struct {
		Text    string
		IsError bool
	}{text, isError})
	if err != nil {
		return err
	}
	return h.flush(buf.Bytes())
}

// Last returns the last rendered page.
func (h *HTML) Last() []byte {
	h.mux.RLock()
	defer h.mux.RUnlock()
	return h.last
}

func (h *HTML) flush(bs []byte) error {
	h.mux.Lock()
	h.last = bs
	h.mux.Unlock()

	if h.out == nil {
		return nil
	}
	_, err := h.out.Write(bs)
	return err
}

func newPageRow(columns []*engine.Column, row *engine.Row) pageRow {
	var pr pageRow
	var rowClasses []string

	for ci, cell := range row.Cells {
		if cell.Class != nil && cell.Class.Level == settings.ClassLevelRow {
			rowClasses = append(rowClasses, cell.Class.Names)
		}
		if !cell.Visible {
			continue
		}

		var classes []string
		if cell.Class != nil && cell.Class.Level == settings.ClassLevelCell {
			classes = append(classes, cell.Class.Names)
		}
		if ci < len(columns) && columns[ci].Def != nil && columns[ci].Def.ClassNames != "" {
			classes = append(classes, columns[ci].Def.ClassNames)
		}

		s := cell.HTML
		if cell.Tooltip != nil {
			s = `<div data-tooltip data-original-title="` + html.EscapeString(cell.Tooltip.Display) +
				`" data-placement="` + cell.Tooltip.Placement + `" class="d-inline-block">` + s + `</div>`
		}

		pr.Cells = append(pr.Cells, pageCell{
			Class: strings.TrimSpace(strings.Join(classes, " ")),
			HTML:  template.HTML(s),
		})
	}

	pr.Class = strings.TrimSpace(strings.Join(rowClasses, " "))

	return pr
}
