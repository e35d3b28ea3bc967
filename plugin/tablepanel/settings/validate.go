// SPDX-License-Identifier: GPL-3.0-or-later

package settings

import (
	"errors"
	"fmt"

	"github.com/willyd61/grafana-customTables-panel/pkg/matcher"
	"github.com/willyd61/grafana-customTables-panel/pkg/pseudocss"
	"github.com/willyd61/grafana-customTables-panel/pkg/unitfmt"
)

// Validate reports every setting that would make drawing fail or silently misbehave.
func (s *Settings) Validate() error {
	var errs []error

	if s.InitialPageLength == 0 || s.InitialPageLength < -1 {
		errs = append(errs, fmt.Errorf("invalid initial page length '%d'", s.InitialPageLength))
	}
	if len(s.PageLengthOptions()) == 0 {
		errs = append(errs, fmt.Errorf("no valid page length in '%s'", s.PageLengths))
	}
	if _, err := pseudocss.Translate(s.PseudoCSS); err != nil {
		errs = append(errs, fmt.Errorf("pseudoCSS: %w", err))
	}

	for i, def := range s.ColumnDefs {
		if err := def.validate(); err != nil {
			errs = append(errs, fmt.Errorf("columnDefs[%d]: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

func (c *ColumnDef) validate() error {
	var errs []error

	if _, err := matcher.ParseFilter(c.Filter); err != nil {
		errs = append(errs, fmt.Errorf("filter: %w", err))
	}
	for i, rule := range c.ContentRules {
		if err := rule.validate(); err != nil {
			errs = append(errs, fmt.Errorf("contentRules[%d]: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

func (r *ContentRule) validate() error {
	errs := []error{
		r.Type.validate(),
		r.ClassLevel.validate(),
		r.MinValueOp.validate(),
		r.MaxValueOp.validate(),
		r.Tooltip.Placement.validate(),
	}

	if r.Type == RuleFilter {
		if _, err := matcher.ParseFilter(r.Filter); err != nil {
			errs = append(errs, fmt.Errorf("filter: %w", err))
		}
	}
	if !unitfmt.IsKnown(r.UnitFormat) {
		errs = append(errs, fmt.Errorf("unknown unit format '%s'", r.UnitFormat))
	}

	return errors.Join(errs...)
}
