// SPDX-License-Identifier: GPL-3.0-or-later

package engine

import (
	"regexp"

	"github.com/willyd61/grafana-customTables-panel/pkg/matcher"
	"github.com/willyd61/grafana-customTables-panel/pkg/tabledata"
	"github.com/willyd61/grafana-customTables-panel/pkg/unitfmt"
	"github.com/willyd61/grafana-customTables-panel/plugin/tablepanel/settings"
)

var reSimpleNumber = regexp.MustCompile(`^\d+(\.\d+)?$`)

// matchRule evaluates the predicate of a rule for a value, negation included.
func matchRule(rule *settings.ContentRule, filter matcher.Filter, value any) bool {
	var ok bool

	switch rule.Type {
	case settings.RuleFilter:
		ok = filter != nil && filter.MatchString(tabledata.Stringify(value))
	case settings.RuleRange:
		ok = matchRange(rule, value)
	default:
		ok = value == nil
	}

	return ok != rule.NegateCriteria
}

// matchRange compares the value with the rule bounds. A bound that is a plain numeral turns
// the comparison numeric, otherwise values compare like the dashboard compares them.
// Each bound is only enforced when its operator is set.
func matchRange(rule *settings.ContentRule, value any) bool {
	lo, hi := rule.MinValue.Value(), rule.MaxValue.Value()

	loIsNum := rule.MinValue.Valid && reSimpleNumber.MatchString(rule.MinValue.Text)
	hiIsNum := rule.MaxValue.Valid && reSimpleNumber.MatchString(rule.MaxValue.Text)
	if loIsNum {
		lo = tabledata.ToNumber(lo)
	}
	if hiIsNum {
		hi = tabledata.ToNumber(hi)
	}
	if loIsNum || hiIsNum {
		value = tabledata.ToNumber(value)
	}

	ok := true
	switch rule.MinValueOp {
	case settings.MinOpNone:
	case settings.MinOpLessEqual:
		ok = tabledata.LessOrEqual(lo, value)
	default:
		ok = tabledata.Less(lo, value)
	}
	switch rule.MaxValueOp {
	case settings.MaxOpNone:
	case settings.MaxOpGreaterEqual:
		ok = ok && tabledata.LessOrEqual(value, hi)
	default:
		ok = ok && tabledata.Less(value, hi)
	}
	return ok
}

// filterGroups returns what ${0}, ${1}... resolve to when a FILTER rule matched.
func filterGroups(filter matcher.Filter, value any) []any {
	if value == nil {
		return []any{"null"}
	}
	s := tabledata.Stringify(value)
	if filter != nil {
		if groups := filter.FindSubmatch(s); groups != nil {
			return groups
		}
	}
	// a negated filter matched because the pattern didn't
	return []any{s}
}

// formatValue applies the unit format of a rule to the value ${value} and ${cell} resolve to.
func formatValue(rule *settings.ContentRule, value any) any {
	if value == nil {
		return nil
	}
	if (rule.UnitFormat == "" || rule.UnitFormat == unitfmt.FormatNone) && rule.UnitFormatDecimals <= 0 {
		return value
	}
	return unitfmt.Format(value, unitfmt.Options{
		Format:   rule.UnitFormat,
		Decimals: rule.UnitFormatDecimals,
		Layout:   rule.UnitFormatString,
		TZ:       rule.UnitFormatTZ,
	})
}
