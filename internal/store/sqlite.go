package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/incubazar/venture-calc/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// sqlitePragmas run on every pooled connection the driver opens.
var sqlitePragmas = []string{
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
}

// sqliteDSN appends the connection pragmas to path.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	params := make([]string, len(sqlitePragmas))
	for i, p := range sqlitePragmas {
		params[i] = "_pragma=" + p
	}
	return path + sep + strings.Join(params, "&")
}

// NewSQLite opens a SQLite database at the given path in WAL mode.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	if err := db.Ping(); err != nil {
		db.Close() //nolint:errcheck
		return nil, eris.Wrap(err, "sqlite: ping")
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS calculations (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	label      TEXT NOT NULL DEFAULT '',
	input      TEXT NOT NULL,
	output     TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_calculations_kind ON calculations(kind);
CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const sqliteInsert = `INSERT INTO calculations (id, kind, label, input, output, created_at) VALUES (?, ?, ?, ?, ?, ?)`

func (s *SQLiteStore) SaveCalculation(ctx context.Context, c *model.Calculation) error {
	if err := prepare(c); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, sqliteInsert,
		c.ID, string(c.Kind), c.Label, string(c.Input), string(c.Output), c.CreatedAt,
	)
	return eris.Wrapf(err, "sqlite: insert calculation %s", c.ID)
}

func (s *SQLiteStore) GetCalculation(ctx context.Context, id string) (*model.Calculation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, label, input, output, created_at FROM calculations WHERE id = ?`, id,
	)
	c, err := scanCalculation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: get calculation %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get calculation %s", id)
	}
	return c, nil
}

func (s *SQLiteStore) ListCalculations(ctx context.Context, filter CalculationFilter) ([]model.Calculation, error) {
	query := `SELECT id, kind, label, input, output, created_at FROM calculations WHERE 1=1`
	var args []any

	if filter.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(filter.Kind))
	}
	if filter.Label != "" {
		query += ` AND label = ?`
		args = append(args, filter.Label)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ?`
	args = append(args, filter.limit())

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list calculations")
	}
	defer rows.Close() //nolint:errcheck

	calcs := []model.Calculation{}
	for rows.Next() {
		c, err := scanCalculation(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan calculation")
		}
		calcs = append(calcs, *c)
	}
	return calcs, eris.Wrap(rows.Err(), "sqlite: list calculations iterate")
}

func (s *SQLiteStore) DeleteCalculation(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM calculations WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete calculation %s", id)
	}
	return checkRowsAffected(res, id)
}

// ImportCalculations inserts calcs in one transaction. Records whose ID
// already exists are skipped.
func (s *SQLiteStore) ImportCalculations(ctx context.Context, calcs []model.Calculation) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin import")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO calculations (id, kind, label, input, output, created_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare import")
	}
	defer stmt.Close() //nolint:errcheck

	var n int64
	for i := range calcs {
		c := calcs[i]
		if err := prepare(&c); err != nil {
			return 0, eris.Wrapf(err, "sqlite: import record %d", i)
		}
		res, err := stmt.ExecContext(ctx, c.ID, string(c.Kind), c.Label, string(c.Input), string(c.Output), c.CreatedAt)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: import calculation %s", c.ID)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, eris.Wrap(err, "sqlite: rows affected")
		}
		n += affected
	}
	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit import")
	}
	return n, nil
}

// helpers

func checkRowsAffected(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "sqlite: calculation %s", id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanCalculation(row scannable) (*model.Calculation, error) {
	var c model.Calculation
	var kind, input, output string
	var createdAt time.Time
	if err := row.Scan(&c.ID, &kind, &c.Label, &input, &output, &createdAt); err != nil {
		return nil, err
	}
	c.Kind = model.CalculationKind(kind)
	c.Input = []byte(input)
	c.Output = []byte(output)
	c.CreatedAt = createdAt.UTC()
	return &c, nil
}
