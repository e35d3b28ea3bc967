// SPDX-License-Identifier: GPL-3.0-or-later

package unitfmt

import (
	"regexp"
	"strconv"
	"time"

	"github.com/willyd61/grafana-customTables-panel/pkg/tabledata"

	"github.com/araddon/dateparse"
	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"
)

const (
	formatFromNow = "dateTimeFromNow"

	defaultDateLayout = "%Y-%m-%d %H:%M:%S"
)

var dateLayouts = map[string]string{
	"dateTimeAsIso": "2006-01-02 15:04:05",
	"dateTimeAsUS":  "01/02/2006 3:04:05 pm",
}

var reOffset = regexp.MustCompile(`^([+-])(\d{1,2}):?(\d{2})$`)

// now is replaced in tests.
var now = time.Now

func formatDate(v any, opts Options) string {
	t, ok := toTime(v)
	if !ok {
		return tabledata.Stringify(v)
	}
	t = t.In(Location(opts.TZ))

	switch opts.Format {
	case formatFromNow:
		return humanize.RelTime(t, now(), "ago", "from now")
	case FormatDate:
		layout := opts.Layout
		if layout == "" {
			layout = defaultDateLayout
		}
		return strftime.Format(layout, t)
	default:
		return t.Format(dateLayouts[opts.Format])
	}
}

func toTime(v any) (time.Time, bool) {
	switch v := v.(type) {
	case time.Time:
		return v, true
	case string:
		if ms, ok := toNumber(v); ok {
			return time.UnixMilli(int64(ms)), true
		}
		t, err := dateparse.ParseIn(v, time.UTC)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	ms, ok := toNumber(v)
	if !ok {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(ms)), true
}

// Location resolves a rule time zone setting. Unknown settings fall back to the local zone.
func Location(tz string) *time.Location {
	switch tz {
	case "", "local":
		return time.Local
	case "none", "utc", "UTC":
		return time.UTC
	}

	m := reOffset.FindStringSubmatch(tz)
	if m == nil {
		return time.Local
	}
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	offset := hours*3600 + minutes*60
	if m[1] == "-" {
		offset = -offset
	}
	return time.FixedZone(tz, offset)
}
