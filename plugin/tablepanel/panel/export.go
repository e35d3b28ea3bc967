// SPDX-License-Identifier: GPL-3.0-or-later

package panel

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	"github.com/willyd61/grafana-customTables-panel/pkg/tablecsv"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/engine"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/settings"
)

var now = time.Now

// ExportCSV writes every row as it appears on screen to w and returns the name of the file.
func (p *Panel) ExportCSV(w io.Writer) (string, error) {
	s, list := p.snapshot()

	filename, err := ExportFilename(&s, now())
	if err != nil {
		return "", err
	}

	data, err := engine.Prepare(list, &s, p.env())
	if err != nil {
		return "", err
	}

	headers, rows := data.Records()
	csv, err := tablecsv.ToCSV(rows, tablecsv.Options{Headers: headers, NullString: s.ExportNullString})
	if err != nil {
		return "", fmt.Errorf("export: %v", err)
	}
	if _, err := io.WriteString(w, csv); err != nil {
		return "", fmt.Errorf("export: %v", err)
	}

	p.Debugf("exported %d rows as '%s'", len(rows), filename)

	return filename, nil
}

// ExportFilename renders the export filename template of the settings.
func ExportFilename(s *settings.Settings, t time.Time) (string, error) {
	text := s.ExportFilename
	if text == "" {
		text = settings.DefaultExportFilename
	}

	tmpl, err := template.New("filename").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse export filename: %v", err)
	}

	var sb strings.Builder
	err = tmpl.Execute(&sb, struct {
		Title string
		Time  time.Time
	}{s.Title, t})
	if err != nil {
		return "", fmt.Errorf("execute export filename: %v", err)
	}

	return sb.String(), nil
}
