// SPDX-License-Identifier: GPL-3.0-or-later

package datasource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/willyd61/grafana-customTables-panel/logger"
	"github.com/willyd61/grafana-customTables-panel/pkg/confopt"
	"github.com/willyd61/grafana-customTables-panel/pkg/tabledata"
)

// Drivers maps the accepted driver names to the registered database/sql drivers.
var Drivers = map[string]string{
	"postgres": "pgx",
	"pgx":      "pgx",
	"mysql":    "mysql",
	"sqlite":   "sqlite",
}

type (
	SQLConfig struct {
		Driver  string           `yaml:"driver" json:"driver"`
		DSN     string           `yaml:"dsn" json:"dsn"`
		Timeout confopt.Duration `yaml:"timeout,omitempty" json:"timeout"`
		Queries []SQLQuery       `yaml:"queries" json:"queries"`
	}
	// SQLQuery is one panel query. Its result becomes the dataset RefID.
	SQLQuery struct {
		RefID string `yaml:"refId" json:"refId"`
		Query string `yaml:"query" json:"query"`
	}
)

func (c SQLConfig) validate() error {
	var errs []error

	if c.Driver == "" {
		errs = append(errs, errors.New("driver required"))
	} else if _, ok := Drivers[c.Driver]; !ok {
		errs = append(errs, fmt.Errorf("unsupported driver %q", c.Driver))
	}
	if c.DSN == "" {
		errs = append(errs, errors.New("dsn required"))
	}
	if len(c.Queries) == 0 {
		errs = append(errs, errors.New("missing queries"))
	}

	seen := map[string]bool{}
	for i, q := range c.Queries {
		switch {
		case q.RefID == "":
			errs = append(errs, fmt.Errorf("queries[%d] missing refId", i+1))
		case q.Query == "":
			errs = append(errs, fmt.Errorf("queries[%d] missing query", i+1))
		case seen[q.RefID]:
			errs = append(errs, fmt.Errorf("queries[%d] duplicate refId %q", i+1, q.RefID))
		}
		seen[q.RefID] = true
	}

	return errors.Join(errs...)
}

// SQL runs the panel queries against a database. The connection is opened on the first fetch.
type SQL struct {
	*logger.Logger
	SQLConfig

	mux sync.Mutex
	db  *sql.DB
}

func NewSQL(cfg SQLConfig) (*SQL, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = confopt.Duration(5 * time.Second)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &SQL{
		Logger: logger.New().With(
			slog.String("component", "sql source"),
			slog.String("driver", cfg.Driver),
		),
		SQLConfig: cfg,
	}, nil
}

func (s *SQL) Fetch(ctx context.Context) ([]*tabledata.Dataset, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*tabledata.Dataset, 0, len(s.Queries))
	for _, q := range s.Queries {
		ds, err := s.runQuery(ctx, db, q)
		if err != nil {
			return nil, fmt.Errorf("query %q failed: %w", q.RefID, err)
		}
		list = append(list, ds)
	}

	return list, nil
}

func (s *SQL) Close() error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQL) conn(ctx context.Context) (*sql.DB, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	if s.db != nil {
		return s.db, nil
	}

	db, err := sql.Open(Drivers[s.Driver], s.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w (dsn=%s)", s.Driver, err, redactDSN(s.DSN))
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, s.Timeout.Duration())
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w (dsn=%s)", s.Driver, err, redactDSN(s.DSN))
	}

	s.Debugf("connected to %s", redactDSN(s.DSN))
	s.db = db

	return db, nil
}

func (s *SQL) runQuery(ctx context.Context, db *sql.DB, q SQLQuery) (*tabledata.Dataset, error) {
	qctx, cancel := context.WithTimeout(ctx, s.Timeout.Duration())
	defer cancel()

	start := time.Now()
	rows, err := db.QueryContext(qctx, q.Query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	numeric := numericColumns(rows, len(columns))

	ds := &tabledata.Dataset{RefID: q.RefID, Type: tabledata.TypeTable}
	for _, name := range columns {
		ds.Columns = append(ds.Columns, tabledata.Column{Text: name})
	}

	scan := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range scan {
		dest[i] = &scan[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		row := make(tabledata.Row, len(columns))
		for i, v := range scan {
			row[i] = cellValue(v, numeric[i])
		}
		ds.Rows = append(ds.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.Debugf("query %q: %d rows in %s", q.RefID, len(ds.Rows), time.Since(start))

	return ds, nil
}

func numericColumns(rows *sql.Rows, n int) []bool {
	numeric := make([]bool, n)

	types, err := rows.ColumnTypes()
	if err != nil {
		return numeric
	}
	for i, ct := range types {
		if i < n {
			numeric[i] = isNumericType(ct.DatabaseTypeName())
		}
	}
	return numeric
}

func isNumericType(name string) bool {
	name = strings.TrimPrefix(strings.ToUpper(name), "UNSIGNED ")
	switch name {
	case "INT", "INTEGER", "TINYINT", "SMALLINT", "MEDIUMINT", "BIGINT",
		"INT2", "INT4", "INT8", "DECIMAL", "NUMERIC", "FLOAT", "FLOAT4", "FLOAT8", "DOUBLE", "REAL":
		return true
	default:
		return false
	}
}

// cellValue converts a scanned value to a dataset value. Drivers return text columns
// as bytes, numeric text is parsed when the column type is numeric.
func cellValue(v any, numeric bool) any {
	bs, ok := v.([]byte)
	if !ok {
		return v
	}
	if numeric {
		if f, err := strconv.ParseFloat(string(bs), 64); err == nil {
			return f
		}
	}
	return string(bs)
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}

	authStart := 0
	if i := strings.Index(dsn, "://"); i != -1 {
		authStart = i + 3
	}

	rel := strings.LastIndex(dsn[authStart:], "@")
	if rel == -1 {
		return dsn
	}
	at := authStart + rel

	userinfo := dsn[authStart:at]
	if userinfo == "" {
		return dsn
	}
	if colon := strings.IndexByte(userinfo, ':'); colon >= 0 {
		return dsn[:authStart] + userinfo[:colon] + ":****" + dsn[at:]
	}
	return dsn[:authStart] + "****" + dsn[at:]
}
