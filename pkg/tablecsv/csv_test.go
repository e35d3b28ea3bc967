// SPDX-License-Identifier: GPL-3.0-or-later

package tablecsv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCSV(t *testing.T) {
	dash := "-"

	tests := map[string]struct {
		rows     [][]any
		opts     Options
		expected string
	}{
		"quoting and null": {
			rows:     [][]any{{"a,b", `He said "hi"`, nil}},
			expected: `"a,b","He said ""hi""",(NULL)`,
		},
		"custom null string": {
			rows:     [][]any{{nil, 1.5}},
			opts:     Options{NullString: &dash},
			expected: "-,1.5",
		},
		"headers first": {
			rows:     [][]any{{"x", float64(2)}, {"y", true}},
			opts:     Options{Headers: []string{"Name", "Count"}},
			expected: "Name,Count\nx,2\ny,true",
		},
		"line breaks are quoted": {
			rows:     [][]any{{"a\nb", "c\rd"}},
			expected: "\"a\nb\",\"c\rd\"",
		},
		"leading spaces and tabs stay bare": {
			rows:     [][]any{{" a", "b\tc", `\.`, "\td"}},
			expected: " a,b\tc,\\.,\td",
		},
		"empty fields": {
			rows:     [][]any{{"", "x", ""}},
			expected: ",x,",
		},
		"empty": {
			rows:     nil,
			expected: "",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := ToCSV(test.rows, test.opts)
			require.NoError(t, err)

			assert.Equal(t, test.expected, out)
		})
	}
}
