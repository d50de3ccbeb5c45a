package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

var schemas = map[string][]string{
	"postgres": {
		`CREATE TABLE IF NOT EXISTS worksheet_rows (id BIGSERIAL PRIMARY KEY, sheet TEXT NOT NULL, cells TEXT NOT NULL)`,
		`CREATE INDEX IF NOT EXISTS worksheet_rows_sheet_idx ON worksheet_rows (sheet, id)`,
	},
	"sqlite3": {
		`CREATE TABLE IF NOT EXISTS worksheet_rows (id INTEGER PRIMARY KEY AUTOINCREMENT, sheet TEXT NOT NULL, cells TEXT NOT NULL)`,
		`CREATE INDEX IF NOT EXISTS worksheet_rows_sheet_idx ON worksheet_rows (sheet, id)`,
	},
}

// SQLWorksheet stores one named worksheet as rows of JSON-encoded cells.
type SQLWorksheet struct {
	db    *sqlx.DB
	sheet string
	log   *logrus.Logger
}

func NewSQLWorksheet(db *sqlx.DB, sheet string, log *logrus.Logger) *SQLWorksheet {
	return &SQLWorksheet{db: db, sheet: sheet, log: log}
}

// OpenSQL connects, pings and creates the schema. Supported drivers are
// "postgres" and "sqlite3".
func OpenSQL(ctx context.Context, driver, dsn, sheet string, log *logrus.Logger) (*SQLWorksheet, error) {
	if _, ok := schemas[driver]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}
	if driver == "sqlite3" {
		// every ":memory:" connection is its own database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}
	ws := NewSQLWorksheet(db, sheet, log)
	if err := ws.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return ws, nil
}

func (w *SQLWorksheet) EnsureSchema(ctx context.Context) error {
	stmts, ok := schemas[w.db.DriverName()]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, w.db.DriverName())
	}
	for _, s := range stmts {
		if _, err := w.db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

type sheetRow struct {
	ID    int64  `db:"id"`
	Cells string `db:"cells"`
}

func (w *SQLWorksheet) Values(ctx context.Context) ([][]any, error) {
	rows := []sheetRow{}
	q := w.db.Rebind(`SELECT id, cells FROM worksheet_rows WHERE sheet = ? ORDER BY id`)
	if err := w.db.SelectContext(ctx, &rows, q, w.sheet); err != nil {
		return nil, err
	}
	res := make([][]any, 0, len(rows))
	for _, r := range rows {
		cells, err := decodeCells(r.Cells)
		if err != nil {
			// keep the slot so row indexes still line up with DeleteRow
			w.log.Warnf("decode row %d of sheet %s failed: %v", r.ID, w.sheet, err)
			cells = []any{}
		}
		res = append(res, cells)
	}
	return res, nil
}

func (w *SQLWorksheet) AppendRow(ctx context.Context, row []any) error {
	b, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	q := w.db.Rebind(`INSERT INTO worksheet_rows (sheet, cells) VALUES (?, ?)`)
	_, err = w.db.ExecContext(ctx, q, w.sheet, string(b))
	return err
}

func (w *SQLWorksheet) Clear(ctx context.Context) error {
	_, err := w.db.ExecContext(ctx, w.db.Rebind(`DELETE FROM worksheet_rows WHERE sheet = ?`), w.sheet)
	return err
}

func (w *SQLWorksheet) Find(ctx context.Context, value string, column int) ([]Cell, error) {
	values, err := w.Values(ctx)
	if err != nil {
		return nil, err
	}
	return findIn(values, value, column), nil
}

func (w *SQLWorksheet) DeleteRow(ctx context.Context, index int) error {
	if index < 1 {
		return ErrRowOutOfRange
	}
	var id int64
	q := w.db.Rebind(`SELECT id FROM worksheet_rows WHERE sheet = ? ORDER BY id LIMIT 1 OFFSET ?`)
	if err := w.db.GetContext(ctx, &id, q, w.sheet, index-1); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRowOutOfRange
		}
		return err
	}
	_, err := w.db.ExecContext(ctx, w.db.Rebind(`DELETE FROM worksheet_rows WHERE id = ?`), id)
	return err
}

func (w *SQLWorksheet) Close() error {
	return w.db.Close()
}

func decodeCells(s string) ([]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var cells []any
	if err := dec.Decode(&cells); err != nil {
		return nil, err
	}
	return cells, nil
}
