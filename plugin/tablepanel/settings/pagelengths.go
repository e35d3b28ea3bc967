// SPDX-License-Identifier: GPL-3.0-or-later

package settings

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/willyd61/grafana-customTables-panel/pkg/gridapi"
)

var reIntegral = regexp.MustCompile(`^[+-]?\d+(\.0*)?$`)

// ParsePageLengths parses a comma separated page length list. Whitespace is ignored,
// tokens that are not integers >= -1 are dropped and -1 stands for all rows
// (gridapi.PageLengthAll).
func ParsePageLengths(s string) []int {
	s = strings.Join(strings.Fields(s), "")

	var lengths []int
	for _, tok := range strings.Split(s, ",") {
		if !reIntegral.MatchString(tok) {
			continue
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil || f < -1 {
			continue
		}
		n := int(f)
		if n == -1 {
			n = gridapi.PageLengthAll
		}
		lengths = append(lengths, n)
	}
	return lengths
}
