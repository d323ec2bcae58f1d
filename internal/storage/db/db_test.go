package db_test

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

func newMockClient(t *testing.T) (*db.Client, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return db.NewClient(mock), mock
}

func TestClient_WithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("Should commit when function succeeds", func(t *testing.T) {
		client, mock := newMockClient(t)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM products").WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()

		err := client.WithTx(ctx, func(tx db.DB) error {
			_, err := tx.Exec(ctx, "DELETE FROM products")
			return err
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should rollback and return function error", func(t *testing.T) {
		client, mock := newMockClient(t)
		fnErr := errors.New("boom")

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := client.WithTx(ctx, func(db.DB) error { return fnErr })

		assert.ErrorIs(t, err, fnErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should rollback and repanic when function panics", func(t *testing.T) {
		client, mock := newMockClient(t)

		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.PanicsWithValue(t, "boom", func() {
			_ = client.WithTx(ctx, func(db.DB) error { panic("boom") })
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should join rollback error", func(t *testing.T) {
		client, mock := newMockClient(t)
		fnErr := errors.New("boom")
		rbErr := errors.New("connection reset")

		mock.ExpectBegin()
		mock.ExpectRollback().WillReturnError(rbErr)

		err := client.WithTx(ctx, func(db.DB) error { return fnErr })

		assert.ErrorIs(t, err, fnErr)
		assert.ErrorIs(t, err, rbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should report begin failure without calling function", func(t *testing.T) {
		client, mock := newMockClient(t)
		mock.ExpectBegin().WillReturnError(errors.New("no connection"))

		called := false
		err := client.WithTx(ctx, func(db.DB) error {
			called = true
			return nil
		})

		assert.ErrorContains(t, err, "begin transaction")
		assert.False(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Should reuse the outer transaction when nested", func(t *testing.T) {
		client, mock := newMockClient(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE products").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		mock.ExpectCommit()

		err := client.WithTx(ctx, func(tx db.DB) error {
			return tx.WithTx(ctx, func(inner db.DB) error {
				_, err := inner.Exec(ctx, "UPDATE products")
				return err
			})
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// pingPool answers every ping with err.
type pingPool struct {
	pgxmock.PgxPoolIface
	err error
}

func (p pingPool) Ping(context.Context) error {
	return p.err
}

func TestClient_IsHealthy(t *testing.T) {
	ctx := context.Background()

	t.Run("Should report healthy when ping succeeds", func(t *testing.T) {
		_, mock := newMockClient(t)
		client := db.NewClient(pingPool{PgxPoolIface: mock})

		ok, err := client.IsHealthy(ctx)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Should report unhealthy when ping fails", func(t *testing.T) {
		_, mock := newMockClient(t)
		client := db.NewClient(pingPool{PgxPoolIface: mock, err: errors.New("down")})

		ok, err := client.IsHealthy(ctx)
		assert.ErrorContains(t, err, "ping database")
		assert.False(t, ok)
	})
}
