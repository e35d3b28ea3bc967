// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"errors"

	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/panel"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/render"
)

// renderers draws to every renderer, e.g. JSON to the output and HTML for the HTTP server.
type renderers []panel.Renderer

func (rs renderers) Table(v *render.View) error {
	var errs []error
	for _, r := range rs {
		errs = append(errs, r.Table(v))
	}
	return errors.Join(errs...)
}

func (rs renderers) Message(text string, isError bool) error {
	var errs []error
	for _, r := range rs {
		errs = append(errs, r.Message(text, isError))
	}
	return errors.Join(errs...)
}
