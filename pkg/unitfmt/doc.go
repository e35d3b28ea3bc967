// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package unitfmt formats cell values for content rules before they are placed into templates.

Numeric formats:

	none        plain number, fixed decimals when Decimals > 0
	short       SI prefixes: 1.5 k, 2.3 M
	locale      digit grouping: 1,234,567.8
	percent     value as percent: 42%
	percentunit fraction as percent: 0.42 => 42%
	sci         scientific notation
	hex, hex0x  hexadecimal integer
	bytes, kbytes, mbytes     IEC sizes: 1.5 KiB
	decbytes, deckbytes       SI sizes: 1.5 kB
	bits        SI bits
	ns, us, ms, s, m, h, d    durations

Date formats take epoch milliseconds, time.Time or a date string:

	dateTimeAsIso    2006-01-02 15:04:05
	dateTimeAsUS     01/02/2006 3:04:05 pm
	dateTimeFromNow  3 hours ago
	date             strftime layout from Options.Layout

Unknown formats and values that can't be converted are stringified unchanged.
*/
package unitfmt
