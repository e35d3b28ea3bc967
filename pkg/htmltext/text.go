// SPDX-License-Identifier: GPL-3.0-or-later

package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// Text returns the text content of an HTML fragment: tags are dropped and entities decoded.
func Text(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return fragment
	}

	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}
