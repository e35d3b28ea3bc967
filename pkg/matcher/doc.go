// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package matcher compiles the filter strings authored in column definitions and content
rules.

Supported formats

	/body/flags     a regular expression (browser flavour: lookaround, backreferences,
	                named groups, the [^] "any character" class). Flags i, m and s
	                change matching; g, y, u and d are accepted and ignored.
	anything else   an exact, case-insensitive comparison with the whole value

Regular expressions without metacharacters and flags are reduced to plain string
comparisons, the same way a literal "^abc$" never reaches the regexp engine.

The classes \d, \w and \s match ASCII only.

Every compiled filter also reports capture groups, which templates address as ${0}, ${1}...
Groups are numbered by the position of their opening parenthesis, named or not. A group
that took no part in the match is reported as nil.
*/
package matcher
