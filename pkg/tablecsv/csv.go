// SPDX-License-Identifier: GPL-3.0-or-later

package tablecsv

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/willyd61/grafana-customTables-panel/pkg/tabledata"
)

const DefaultNullString = "(NULL)"

type Options struct {
	// Headers, when set, are written as the first record.
	Headers []string
	// NullString replaces nil cells. Nil means DefaultNullString.
	NullString *string
}

// ToCSV renders rows as CSV text. Records are separated by "\n" and there is no trailing newline.
func ToCSV(rows [][]any, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, rows, opts); err != nil {
		return "", err
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// Write streams rows as CSV records, each terminated by "\n". A field is quoted only when it
// holds a quote, a comma or a line break.
func Write(w io.Writer, rows [][]any, opts Options) error {
	null := DefaultNullString
	if opts.NullString != nil {
		null = *opts.NullString
	}

	bw := bufio.NewWriter(w)
	if opts.Headers != nil {
		writeRecord(bw, opts.Headers)
	}

	var record []string
	for _, row := range rows {
		record = record[:0]
		for _, cell := range row {
			if cell == nil {
				record = append(record, null)
				continue
			}
			record = append(record, tabledata.Stringify(cell))
		}
		writeRecord(bw, record)
	}

	return bw.Flush()
}

func writeRecord(w *bufio.Writer, record []string) {
	for i, field := range record {
		if i > 0 {
			_ = w.WriteByte(',')
		}
		if !strings.ContainsAny(field, "\",\r\n") {
			_, _ = w.WriteString(field)
			continue
		}
		_ = w.WriteByte('"')
		_, _ = w.WriteString(strings.ReplaceAll(field, `"`, `""`))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('\n')
}
