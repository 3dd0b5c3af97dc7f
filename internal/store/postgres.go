package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/incubazar/venture-calc/internal/db"
	"github.com/incubazar/venture-calc/internal/model"
)

// PostgresStore implements Store on a pgx pool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres wraps an open pool. The store owns the pool and closes it on Close.
func NewPostgres(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Pool returns the underlying pool.
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS calculations (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	kind       TEXT NOT NULL,
	label      TEXT NOT NULL DEFAULT '',
	input      JSONB NOT NULL,
	output     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_calculations_kind ON calculations(kind);
CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations(created_at DESC);
`

var calculationColumns = []string{"id", "kind", "label", "input", "output", "created_at"}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveCalculation(ctx context.Context, c *model.Calculation) error {
	if err := prepare(c); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO calculations (id, kind, label, input, output, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, string(c.Kind), c.Label, []byte(c.Input), []byte(c.Output), c.CreatedAt,
	)
	return eris.Wrapf(err, "postgres: insert calculation %s", c.ID)
}

func (s *PostgresStore) GetCalculation(ctx context.Context, id string) (*model.Calculation, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, kind, label, input, output, created_at FROM calculations WHERE id = $1`, id,
	)
	c, err := scanPgCalculation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: get calculation %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get calculation %s", id)
	}
	return c, nil
}

func (s *PostgresStore) ListCalculations(ctx context.Context, filter CalculationFilter) ([]model.Calculation, error) {
	query := `SELECT id, kind, label, input, output, created_at FROM calculations WHERE 1=1`
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Kind != "" {
		query += ` AND kind = ` + next(string(filter.Kind))
	}
	if filter.Label != "" {
		query += ` AND label = ` + next(filter.Label)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ` + next(filter.limit())
	if filter.Offset > 0 {
		query += ` OFFSET ` + next(filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list calculations")
	}
	defer rows.Close()

	calcs := []model.Calculation{}
	for rows.Next() {
		c, err := scanPgCalculation(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan calculation")
		}
		calcs = append(calcs, *c)
	}
	return calcs, eris.Wrap(rows.Err(), "postgres: list calculations iterate")
}

func (s *PostgresStore) DeleteCalculation(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM calculations WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete calculation %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "postgres: calculation %s", id)
	}
	return nil
}

// ImportCalculations loads calcs with COPY. Unlike the SQLite store, a
// duplicate ID fails the whole import.
func (s *PostgresStore) ImportCalculations(ctx context.Context, calcs []model.Calculation) (int64, error) {
	rows := make([][]any, 0, len(calcs))
	for i := range calcs {
		c := calcs[i]
		if err := prepare(&c); err != nil {
			return 0, eris.Wrapf(err, "postgres: import record %d", i)
		}
		rows = append(rows, []any{c.ID, string(c.Kind), c.Label, []byte(c.Input), []byte(c.Output), c.CreatedAt})
	}
	n, err := db.CopyFrom(ctx, s.pool, "calculations", calculationColumns, rows)
	return n, eris.Wrap(err, "postgres: import calculations")
}

func scanPgCalculation(row pgx.Row) (*model.Calculation, error) {
	var c model.Calculation
	var kind string
	var input, output []byte
	if err := row.Scan(&c.ID, &kind, &c.Label, &input, &output, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Kind = model.CalculationKind(kind)
	c.Input = input
	c.Output = output
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}
