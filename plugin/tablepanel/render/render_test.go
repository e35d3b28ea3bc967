// SPDX-License-Identifier: GPL-3.0-or-later

package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/willyd61/grafana-customTables-panel/pkg/pseudocss"
	"github.com/willyd61/grafana-customTables-panel/pkg/tabledata"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/engine"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newView(t *testing.T, s settings.Settings, headers []string, rows ...tabledata.Row) *View {
	t.Helper()

	ds := &tabledata.Dataset{RefID: "A", Type: tabledata.TypeTable, Rows: rows}
	for _, h := range headers {
		ds.Columns = append(ds.Columns, tabledata.Column{Text: h})
	}

	data, err := engine.Prepare([]*tabledata.Dataset{ds}, &s, engine.Env{})
	require.NoError(t, err)

	v, err := NewView(data, &s)
	require.NoError(t, err)

	return v
}

func TestStyleSheet(t *testing.T) {
	tests := map[string]struct {
		style   string
		want    string
		wantErr bool
	}{
		"top level declarations": {
			style: `{"color": "white"}`,
			want:  "._x {\n  color: white;\n}\n",
		},
		"nested with parent reference and lists": {
			style: `{"td": {"color": "red", "&.warn, &.bad": {"color": "orange"}}, "&": {"margin": 0}}`,
			want: "._x td {\n  color: red;\n}\n" +
				"._x td.warn, ._x td.bad {\n  color: orange;\n}\n" +
				"._x {\n  margin: 0;\n}\n",
		},
		"descendant of a parent reference": {
			style: `{".theme-dark &": {"th": {"color": "white"}}}`,
			want:  ".theme-dark ._x th {\n  color: white;\n}\n",
		},
		"fallback values": {
			style: `{"div": {"display": ["block", "flex"]}}`,
			want:  "._x div {\n  display: block;\n  display: flex;\n}\n",
		},
		"closing tag is escaped": {
			style: `{"div": {"content": "'</style>'"}}`,
			want:  "._x div {\n  content: '<\\/style>';\n}\n",
		},
		"empty": {
			style: `{}`,
			want:  "",
		},
		"not an object": {
			style:   `[]`,
			wantErr: true,
		},
		"invalid json": {
			style:   `{`,
			wantErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			css, err := StyleSheet(test.style, "_x")

			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, css)
		})
	}
}

func TestNewView_InvalidPseudoCSS(t *testing.T) {
	s := settings.Default()
	s.PseudoCSS = "td { color: red;"

	_, err := NewView(&engine.Data{}, &s)

	assert.ErrorIs(t, err, pseudocss.ErrTooManyOpening)
}

func TestView_PageRows(t *testing.T) {
	rows := []tabledata.Row{{1}, {2}, {3}}

	tests := map[string]struct {
		paging     bool
		pageLength int
		want       int
	}{
		"first page":        {paging: true, pageLength: 2, want: 2},
		"page holds all":    {paging: true, pageLength: 10, want: 3},
		"all":               {paging: true, pageLength: -1, want: 3},
		"paging turned off": {paging: false, pageLength: 2, want: 3},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			s := settings.Default()
			s.AllowPaging = test.paging
			s.InitialPageLength = test.pageLength

			v := newView(t, s, []string{"N"}, rows...)

			assert.Len(t, v.PageRows(), test.want)
		})
	}
}

func TestView_GridOptions(t *testing.T) {
	s := settings.Default()
	def := settings.NewColumnDef()
	def.Filter = "/^B$/"
	def.Width = "10px"
	def.ClassNames = "num"
	def.IsOrderable = false
	s.ColumnDefs = []settings.ColumnDef{def}

	v := newView(t, s, []string{"A", "B"}, tabledata.Row{1, 2})
	opts := v.GridOptions()

	require.Len(t, opts.Columns, 2)
	assert.Equal(t, "A", opts.Columns[0].Title)
	assert.True(t, opts.Columns[0].Orderable)
	assert.Equal(t, "10px", opts.Columns[1].Width)
	assert.Equal(t, "num", opts.Columns[1].ClassName)
	assert.False(t, opts.Columns[1].Orderable)
	assert.True(t, opts.Columns[1].Searchable)
	assert.Equal(t, []int{10, 15, 20, 25, 50, 100}, opts.PageLengths)
	assert.Equal(t, 25, opts.PageLength)
}

func TestHTML_Table(t *testing.T) {
	s := settings.Default()
	s.PseudoCSS = "td { color: red; }"
	s.InitialPageLength = 2

	hot := settings.NewContentRule()
	hot.Filter = "/hot/"
	hot.ClassNames = "is-hot"
	hot.Display = "${value}!"
	hot.Tooltip = settings.Tooltip{IsVisible: true, Display: "tip <b>", Placement: settings.PlacementLeft}

	cold := settings.NewContentRule()
	cold.Filter = "/cold/"
	cold.ClassNames = "row-cold"
	cold.ClassLevel = settings.ClassLevelRow

	def := settings.NewColumnDef()
	def.Filter = "/^State$/"
	def.ContentRules = []settings.ContentRule{hot, cold}

	hidden := settings.NewColumnDef()
	hidden.Filter = "/^Hidden$/"
	hidden.IsVisible = false

	s.ColumnDefs = []settings.ColumnDef{def, hidden}

	v := newView(t, s, []string{"State", "Hidden"},
		tabledata.Row{"hot", "secret"},
		tabledata.Row{"cold", "secret"},
		tabledata.Row{"warm", "secret"},
	)

	var out bytes.Buffer
	r := NewHTML(&out)
	require.NoError(t, r.Table(v))
	page := out.String()

	assert.Contains(t, page, `class="table-panel `+v.Scope+`"`)
	assert.Contains(t, page, "."+v.Scope+" td {\n  color: red;\n}")
	assert.Contains(t, page, `style="width: 100%"`)
	assert.Contains(t, page, "<th>State</th>")
	assert.NotContains(t, page, "<th>Hidden</th>")
	assert.NotContains(t, page, "secret")
	assert.Contains(t, page, `<td class="is-hot"><div data-tooltip data-original-title="tip &lt;b&gt;" data-placement="left" class="d-inline-block">hot!</div></td>`)
	assert.Contains(t, page, `<tr class="row-cold"><td>cold</td></tr>`)
	assert.NotContains(t, page, "warm")
	assert.Contains(t, page, `class="grid-options"`)
	assert.Contains(t, page, `"lengthMenu"`)

	assert.True(t, v.Data.Rows[1].Processed)
	assert.False(t, v.Data.Rows[2].Processed)
	assert.Equal(t, out.Bytes(), r.Last())
}

func TestHTML_Message(t *testing.T) {
	tests := map[string]struct {
		text    string
		isError bool
		want    string
	}{
		"no data": {text: "No data.", want: `<div class="alert alert-info" style="margin: 0px auto">No data.</div>`},
		"error": {
			text:    "No data:  \r\nboom <b>",
			isError: true,
			want:    `<div class="alert alert-error" style="margin: 0px auto">No data:  ` + "\r\n" + `boom &lt;b&gt;</div>`,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			r := NewHTML(nil)

			require.NoError(t, r.Message(test.text, test.isError))

			assert.Contains(t, string(r.Last()), test.want)
		})
	}
}

func TestJSON_Table(t *testing.T) {
	s := settings.Default()
	s.PseudoCSS = "td { color: red; }"
	v := newView(t, s, []string{"A"}, tabledata.Row{"x"}, tabledata.Row{"y"})

	var out bytes.Buffer
	require.NoError(t, NewJSON(&out).Table(v))

	var doc struct {
		Scope string `json:"scope"`
		Data  struct {
			RefID string `json:"refId"`
			Rows  []struct {
				Cells []struct {
					HTML string `json:"html"`
				} `json:"cells"`
			} `json:"rows"`
		} `json:"data"`
		Style   map[string]map[string]string `json:"style"`
		Options map[string]any               `json:"options"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))

	assert.Equal(t, v.Scope, doc.Scope)
	assert.Equal(t, "A", doc.Data.RefID)
	require.Len(t, doc.Data.Rows, 2)
	assert.Equal(t, "y", doc.Data.Rows[1].Cells[0].HTML)
	assert.Equal(t, "red", doc.Style["td"]["color"])
	assert.Equal(t, true, doc.Options["paging"])
}

func TestJSON_Message(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, NewJSON(&out).Message("No data.", false))

	assert.Equal(t, "{\n  \"message\": \"No data.\",\n  \"isError\": false\n}", strings.TrimSpace(out.String()))
}
