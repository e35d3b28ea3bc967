// SPDX-License-Identifier: GPL-3.0-or-later

package settings

import (
	"fmt"
	"time"

	"github.com/willyd61/grafana-customTables-panel/pkg/confopt"
)

const (
	DefaultInitialPageLength = 25
	DefaultPageLengths       = "10,15,20,25,50,100"
	DefaultRedrawDelay       = confopt.Duration(500 * time.Millisecond)
	DefaultDrawDelay         = confopt.Duration(time.Second)
	DefaultExportFilename    = `{{ .Title }} ({{ .Time | date "2006-01-02" }} at {{ .Time | date "15.04.05" }}).csv`
)

const DefaultPseudoCSS = `
.theme-dark & {
  color: white;
  
  .dataTables_filter input[type=search] {
    border: 1px solid #262628;
  }
}
.dataTables_filter input[type=search] {
  border: 1px solid #dde4ed;
  height: 35px;
  line-height: 35px;
  border-radius: 5px;
  padding: 0 8px;
}
table.dataTable tbody tr {
  &:hover td {
    background-image: linear-gradient(0deg, rgba(128,128,128,0.1), rgba(128,128,128,0.1));
  }
  &, &.even, &.odd {
    background-color: transparent;
    td {
      border-color: transparent;
    }
  }
  &.odd {
    background-color: rgba(128,128,128,0.3);
  }
  &.even {
    background-color: rgba(128,128,128,0.15);
  }
}
`

// Settings is the persisted panel configuration.
type Settings struct {
	Title               string           `yaml:"title" json:"title"`
	AllowLengthChange   bool             `yaml:"allowLengthChange" json:"allowLengthChange"`
	AllowOrdering       bool             `yaml:"allowOrdering" json:"allowOrdering"`
	AllowSearching      bool             `yaml:"allowSearching" json:"allowSearching"`
	AllowRedrawOnModify bool             `yaml:"allowRedrawOnModify" json:"allowRedrawOnModify"`
	AllowPaging         bool             `yaml:"allowPaging" json:"allowPaging"`
	IsFullWidth         bool             `yaml:"isFullWidth" json:"isFullWidth"`
	InitialPageLength   int              `yaml:"initialPageLength" json:"initialPageLength"`
	PageLengths         string           `yaml:"pageLengths" json:"pageLengths"`
	ColumnDefs          []ColumnDef      `yaml:"columnDefs" json:"columnDefs"`
	PseudoCSS           string           `yaml:"pseudoCSS" json:"pseudoCSS"`
	VarCols             VarCols          `yaml:"varCols" json:"varCols"`
	ExportNullString    *string          `yaml:"exportNullString,omitempty" json:"exportNullString,omitempty"`
	ExportFilename      string           `yaml:"exportFilename,omitempty" json:"exportFilename,omitempty"`
	RedrawDelay         confopt.Duration `yaml:"redrawDelay,omitempty" json:"redrawDelay,omitempty"`
	DrawDelay           confopt.Duration `yaml:"drawDelay,omitempty" json:"drawDelay,omitempty"`
}

// Default returns the settings of a newly created panel.
func Default() Settings {
	return Settings{
		AllowLengthChange:   true,
		AllowOrdering:       true,
		AllowSearching:      true,
		AllowRedrawOnModify: true,
		AllowPaging:         true,
		IsFullWidth:         true,
		InitialPageLength:   DefaultInitialPageLength,
		PageLengths:         DefaultPageLengths,
		ColumnDefs:          []ColumnDef{},
		PseudoCSS:           DefaultPseudoCSS,
		RedrawDelay:         DefaultRedrawDelay,
		DrawDelay:           DefaultDrawDelay,
	}
}

func (s *Settings) String() string {
	return fmt.Sprintf("title '%s', column definitions '%d', page lengths '%s', var cols '%s'",
		s.Title, len(s.ColumnDefs), s.PageLengths, s.VarCols.DataRefID)
}

// PageLengthOptions parses PageLengths, see ParsePageLengths.
func (s *Settings) PageLengthOptions() []int {
	return ParsePageLengths(s.PageLengths)
}

// ColumnDef matches columns by header and decides how their header and cells are shown.
type ColumnDef struct {
	Filter        string        `yaml:"filter" json:"filter"`
	Display       string        `yaml:"display" json:"display"`
	DisplayIsHTML bool          `yaml:"displayIsHTML" json:"displayIsHTML"`
	URL           string        `yaml:"url" json:"url"`
	OpenNewWindow bool          `yaml:"openNewWindow" json:"openNewWindow"`
	Width         string        `yaml:"width" json:"width"`
	ClassNames    string        `yaml:"classNames" json:"classNames"`
	IsVisible     bool          `yaml:"isVisible" json:"isVisible"`
	IsOrderable   bool          `yaml:"isOrderable" json:"isOrderable"`
	IsSearchable  bool          `yaml:"isSearchable" json:"isSearchable"`
	ContentRules  []ContentRule `yaml:"contentRules" json:"contentRules"`
}

// NewColumnDef returns a definition that matches every column and changes nothing.
func NewColumnDef() ColumnDef {
	return ColumnDef{
		Filter:        "/[^]*/",
		Display:       "${value}",
		OpenNewWindow: true,
		IsVisible:     true,
		IsOrderable:   true,
		IsSearchable:  true,
		ContentRules:  []ContentRule{},
	}
}

// ContentRule decides the presentation of the cells it matches.
type ContentRule struct {
	Type               RuleType   `yaml:"type" json:"type"`
	ClassNames         string     `yaml:"classNames" json:"classNames"`
	ClassLevel         ClassLevel `yaml:"classLevel" json:"classLevel"`
	Filter             string     `yaml:"filter" json:"filter"`
	NegateCriteria     bool       `yaml:"negateCriteria" json:"negateCriteria"`
	Display            string     `yaml:"display" json:"display"`
	DisplayIsHTML      bool       `yaml:"displayIsHTML" json:"displayIsHTML"`
	UnitFormat         string     `yaml:"unitFormat" json:"unitFormat"`
	UnitFormatDecimals int        `yaml:"unitFormatDecimals" json:"unitFormatDecimals"`
	UnitFormatString   string     `yaml:"unitFormatString" json:"unitFormatString"`
	UnitFormatTZ       string     `yaml:"unitFormatTZ,omitempty" json:"unitFormatTZ,omitempty"`
	MinValue           Bound      `yaml:"minValue" json:"minValue"`
	MaxValue           Bound      `yaml:"maxValue" json:"maxValue"`
	MinValueOp         MinOp      `yaml:"minValueOp" json:"minValueOp"`
	MaxValueOp         MaxOp      `yaml:"maxValueOp" json:"maxValueOp"`
	URL                string     `yaml:"url" json:"url"`
	OpenNewWindow      bool       `yaml:"openNewWindow" json:"openNewWindow"`
	Tooltip            Tooltip    `yaml:"tooltip" json:"tooltip"`
}

// NewContentRule returns the rule the editor adds: a FILTER rule showing the value.
func NewContentRule() ContentRule {
	return ContentRule{
		Type:          RuleFilter,
		ClassLevel:    ClassLevelCell,
		Display:       "${value}",
		UnitFormat:    "none",
		OpenNewWindow: true,
		Tooltip: Tooltip{
			Placement: PlacementTop,
		},
	}
}

type Tooltip struct {
	IsVisible bool      `yaml:"isVisible" json:"isVisible"`
	Display   string    `yaml:"display" json:"display"`
	Placement Placement `yaml:"placement" json:"placement"`
}

// VarCols configures the join of a name/value dataset into the main dataset.
type VarCols struct {
	DataRefID      string `yaml:"dataRefId" json:"dataRefId"`
	MainJoinColumn string `yaml:"mainJoinColumn" json:"mainJoinColumn"`
	JoinColumn     string `yaml:"joinColumn" json:"joinColumn"`
	NameColumn     string `yaml:"nameColumn" json:"nameColumn"`
	ValueColumn    string `yaml:"valueColumn" json:"valueColumn"`
}

// IsSet reports whether an auxiliary dataset is selected.
func (v VarCols) IsSet() bool {
	return v.DataRefID != ""
}
