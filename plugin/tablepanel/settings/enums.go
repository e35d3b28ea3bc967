// SPDX-License-Identifier: GPL-3.0-or-later

package settings

import (
	"fmt"
	"strings"
)

// RuleType is the predicate kind of a content rule.
type RuleType string

const (
	// RuleFilter matches the stringified value against an exact text or a /pattern/flags regexp.
	RuleFilter RuleType = "FILTER"
	// RuleRange matches values between the rule bounds.
	RuleRange RuleType = "RANGE"
	// RuleNull matches missing values.
	RuleNull RuleType = "NULL"
)

func (t RuleType) validate() error {
	switch t {
	case RuleFilter, RuleRange, RuleNull:
		return nil
	}
	return fmt.Errorf("unknown rule type '%s'", t)
}

// ClassLevel is the element that receives the class names of a matched rule.
type ClassLevel string

const (
	ClassLevelCell ClassLevel = "CELL"
	ClassLevelRow  ClassLevel = "ROW"
)

func (l ClassLevel) validate() error {
	switch l {
	case ClassLevelCell, ClassLevelRow:
		return nil
	}
	return fmt.Errorf("unknown class level '%s'", l)
}

// Placement is the side of the cell a tooltip opens on.
type Placement string

const (
	PlacementTop    Placement = "TOP"
	PlacementLeft   Placement = "LEFT"
	PlacementRight  Placement = "RIGHT"
	PlacementBottom Placement = "BOTTOM"
)

// Lower returns the placement keyword used in markup.
func (p Placement) Lower() string {
	return strings.ToLower(string(p))
}

func (p Placement) validate() error {
	switch p {
	case PlacementTop, PlacementLeft, PlacementRight, PlacementBottom:
		return nil
	}
	return fmt.Errorf("unknown tooltip placement '%s'", p)
}

// MinOp compares the lower bound with the value. Empty means the bound is not enforced.
type MinOp string

const (
	MinOpNone      MinOp = ""
	MinOpLess      MinOp = "<"
	MinOpLessEqual MinOp = "<="
)

func (op MinOp) validate() error {
	switch op {
	case MinOpNone, MinOpLess, MinOpLessEqual:
		return nil
	}
	return fmt.Errorf("unknown min value operator '%s'", op)
}

// MaxOp compares the upper bound with the value. Empty means the bound is not enforced.
type MaxOp string

const (
	MaxOpNone         MaxOp = ""
	MaxOpGreater      MaxOp = ">"
	MaxOpGreaterEqual MaxOp = ">="
)

func (op MaxOp) validate() error {
	switch op {
	case MaxOpNone, MaxOpGreater, MaxOpGreaterEqual:
		return nil
	}
	return fmt.Errorf("unknown max value operator '%s'", op)
}
