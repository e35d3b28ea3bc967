// SPDX-License-Identifier: GPL-3.0-or-later

package tabledata

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStringify(t *testing.T) {
	tests := map[string]struct {
		value    any
		expected string
	}{
		"nil":            {value: nil, expected: "null"},
		"string":         {value: "abc", expected: "abc"},
		"integral float": {value: 15.0, expected: "15"},
		"fraction":       {value: 1.5, expected: "1.5"},
		"negative":       {value: -0.25, expected: "-0.25"},
		"large":          {value: 1e21, expected: "1e+21"},
		"tiny":           {value: 1e-7, expected: "1e-7"},
		"int64":          {value: int64(42), expected: "42"},
		"bool":           {value: true, expected: "true"},
		"bytes":          {value: []byte("raw"), expected: "raw"},
		"nan":            {value: math.NaN(), expected: "NaN"},
		"time":           {value: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), expected: "2024-01-02T03:04:05Z"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, Stringify(test.value))
		})
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "", Text(nil))
	assert.Equal(t, "7", Text(7.0))
}

func TestToNumber(t *testing.T) {
	tests := map[string]struct {
		value    any
		expected float64
		nan      bool
	}{
		"nil":           {value: nil, expected: 0},
		"blank":         {value: "  ", expected: 0},
		"numeric":       {value: " 12.5 ", expected: 12.5},
		"exponent":      {value: "1e3", expected: 1000},
		"hex":           {value: "0x1F", expected: 31},
		"true":          {value: true, expected: 1},
		"int":           {value: 3, expected: 3},
		"infinity":      {value: "Infinity", expected: math.Inf(1)},
		"word":          {value: "abc", nan: true},
		"go inf":        {value: "inf", nan: true},
		"go separators": {value: "1_000", nan: true},
		"struct":        {value: struct{}{}, nan: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := ToNumber(test.value)
			if test.nan {
				assert.True(t, math.IsNaN(got), "got %v", got)
				return
			}
			assert.Equal(t, test.expected, got)
		})
	}
}

func TestEqual(t *testing.T) {
	tests := map[string]struct {
		a, b     any
		expected bool
	}{
		"same string":           {a: "a", b: "a", expected: true},
		"string vs number":      {a: "1", b: 1.0, expected: false},
		"numbers across types":  {a: int64(1), b: 1.0, expected: true},
		"nil":                   {a: nil, b: nil, expected: true},
		"nil vs empty":          {a: nil, b: "", expected: false},
		"nan":                   {a: math.NaN(), b: math.NaN(), expected: false},
		"bools":                 {a: true, b: true, expected: true},
		"slices compare deeply": {a: []any{1.0}, b: []any{1.0}, expected: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, Equal(test.a, test.b))
		})
	}
}

func TestLess(t *testing.T) {
	tests := map[string]struct {
		a, b     any
		expected bool
	}{
		"strings lexically": {a: "10", b: "9", expected: true},
		"numbers":           {a: 9.0, b: 10.0, expected: true},
		"string and number": {a: "9", b: 10.0, expected: true},
		"nil is zero":       {a: nil, b: 1.0, expected: true},
		"nan never less":    {a: "abc", b: 1.0, expected: false},
		"nan never greater": {a: 1.0, b: "abc", expected: false},
		"equal is not less": {a: 2.0, b: int64(2), expected: false},
		"times numerically": {a: time.Unix(1, 0), b: time.Unix(2, 0), expected: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, Less(test.a, test.b))
		})
	}
}

func TestLessOrEqual(t *testing.T) {
	tests := map[string]struct {
		a, b     any
		expected bool
	}{
		"equal numbers":     {a: 2.0, b: int64(2), expected: true},
		"equal strings":     {a: "b", b: "b", expected: true},
		"numeric string":    {a: "10", b: 10.0, expected: true},
		"greater":           {a: 3.0, b: 2.0, expected: false},
		"strings lexically": {a: "abc", b: "abd", expected: true},
		"nan with number":   {a: "abc", b: 1.0, expected: false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expected, LessOrEqual(test.a, test.b))
		})
	}
}
