// SPDX-License-Identifier: GPL-3.0-or-later

package unitfmt

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/willyd61/grafana-customTables-panel/pkg/tabledata"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	FormatNone = "none"
	FormatDate = "date"
)

type Options struct {
	// Format is the unit format id, see the package documentation.
	Format string
	// Decimals is the number of fraction digits. Negative means as many as needed.
	Decimals int
	// Layout is the strftime layout of the "date" format.
	Layout string
	// TZ selects the zone of date formats: "" or "local", "none" or "utc", or a fixed "+hh:mm" offset.
	TZ string
}

type numberFunc func(f float64, decimals int) string

var numberFormats = map[string]numberFunc{
	"short":       formatShort,
	"locale":      formatLocale,
	"percent":     func(f float64, d int) string { return formatFixed(f, d) + "%" },
	"percentunit": func(f float64, d int) string { return formatFixed(f*100, d) + "%" },
	"sci":         formatSci,
	"hex":         func(f float64, _ int) string { return formatHex(f, "") },
	"hex0x":       func(f float64, _ int) string { return formatHex(f, "0x") },
	"bytes":       func(f float64, _ int) string { return formatBytes(f, 1, humanize.IBytes) },
	"kbytes":      func(f float64, _ int) string { return formatBytes(f, 1024, humanize.IBytes) },
	"mbytes":      func(f float64, _ int) string { return formatBytes(f, 1024*1024, humanize.IBytes) },
	"decbytes":    func(f float64, _ int) string { return formatBytes(f, 1, humanize.Bytes) },
	"deckbytes":   func(f float64, _ int) string { return formatBytes(f, 1000, humanize.Bytes) },
	"bits":        func(f float64, d int) string { return formatSI(f, d, "b") },
	"ns":          durationFormat(time.Nanosecond),
	"us":          durationFormat(time.Microsecond),
	"ms":          durationFormat(time.Millisecond),
	"s":           durationFormat(time.Second),
	"m":           durationFormat(time.Minute),
	"h":           durationFormat(time.Hour),
	"d":           durationFormat(24 * time.Hour),
}

// IsKnown reports whether format is a supported unit format id.
func IsKnown(format string) bool {
	if format == "" || format == FormatNone {
		return true
	}
	if _, ok := numberFormats[format]; ok {
		return true
	}
	_, ok := dateLayouts[format]
	return ok || format == FormatDate || format == formatFromNow
}

// Format renders v with the unit format of opts. A nil value renders as an empty string.
func Format(v any, opts Options) string {
	if v == nil {
		return ""
	}

	switch opts.Format {
	case "", FormatNone:
		if f, ok := toNumber(v); ok && opts.Decimals > 0 {
			return formatFixed(f, opts.Decimals)
		}
		return tabledata.Stringify(v)
	case FormatDate, formatFromNow:
		return formatDate(v, opts)
	}
	if _, ok := dateLayouts[opts.Format]; ok {
		return formatDate(v, opts)
	}

	fn, ok := numberFormats[opts.Format]
	if !ok {
		return tabledata.Stringify(v)
	}
	f, ok := toNumber(v)
	if !ok {
		return tabledata.Stringify(v)
	}
	return fn(f, opts.Decimals)
}

// toNumber converts numbers and numeric strings. Booleans, blank strings and infinities don't count.
func toNumber(v any) (float64, bool) {
	switch v := v.(type) {
	case bool:
		return 0, false
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, false
		}
	default:
		if !tabledata.IsNumeric(v) {
			return 0, false
		}
	}
	f := tabledata.ToNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func formatFixed(f float64, decimals int) string {
	if decimals < 0 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', decimals, 64)
}

func formatSci(f float64, decimals int) string {
	if decimals < 0 {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'e', decimals, 64)
}

func formatShort(f float64, decimals int) string {
	return formatSI(f, decimals, "")
}

func formatSI(f float64, decimals int, unit string) string {
	if decimals < 0 {
		decimals = 3
	}
	return strings.TrimSpace(humanize.SIWithDigits(f, decimals, unit))
}

func formatLocale(f float64, decimals int) string {
	p := message.NewPrinter(language.English)
	if decimals < 0 {
		return p.Sprint(number.Decimal(f))
	}
	return p.Sprint(number.Decimal(f, number.MinFractionDigits(decimals), number.MaxFractionDigits(decimals)))
}

func formatHex(f float64, prefix string) string {
	n := int64(math.Round(f))
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	return sign + prefix + strings.ToUpper(strconv.FormatInt(n, 16))
}

func formatBytes(f, scale float64, fn func(uint64) string) string {
	f *= scale
	if f < 0 {
		return "-" + fn(uint64(-f))
	}
	return fn(uint64(f))
}

var durationUnits = []struct {
	size   time.Duration
	suffix string
}{
	{365 * 24 * time.Hour, "year"},
	{7 * 24 * time.Hour, "week"},
	{24 * time.Hour, "day"},
	{time.Hour, "hour"},
	{time.Minute, "min"},
	{time.Second, "s"},
	{time.Millisecond, "ms"},
	{time.Microsecond, "µs"},
	{time.Nanosecond, "ns"},
}

func durationFormat(unit time.Duration) numberFunc {
	return func(f float64, decimals int) string {
		if decimals < 0 {
			decimals = 1
		}
		ns := f * float64(unit)
		abs := math.Abs(ns)
		for _, u := range durationUnits {
			if abs >= float64(u.size) {
				return humanize.FtoaWithDigits(ns/float64(u.size), decimals) + " " + u.suffix
			}
		}
		return humanize.FtoaWithDigits(ns, decimals) + " ns"
	}
}
