package db

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/incubazar/venture-calc/internal/resilience"
)

func TestCopyFrom_NoRows(t *testing.T) {
	t.Parallel()
	n, err := CopyFrom(context.Background(), nil, "calculations", []string{"id"}, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCopyFrom(t *testing.T) {
	t.Parallel()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"calculations"}, []string{"id", "kind"}).WillReturnResult(2)

	n, err := CopyFrom(context.Background(), mock, "calculations", []string{"id", "kind"},
		[][]any{{"a", "runway"}, {"b", "valuation"}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFrom_Error(t *testing.T) {
	t.Parallel()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"calculations"}, []string{"id"}).WillReturnError(errors.New("copy failed"))

	_, err = CopyFrom(context.Background(), mock, "calculations", []string{"id"}, [][]any{{"a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db: copy into calculations")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnect_BadConnString(t *testing.T) {
	t.Parallel()
	_, err := Connect(context.Background(), "postgres://%zz", PoolConfig{}, resilience.RetryConfig{MaxAttempts: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db: parse config")
}

func TestPool_SatisfiedByMock(t *testing.T) {
	t.Parallel()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	var _ Pool = mock
}
