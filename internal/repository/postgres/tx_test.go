package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestTransactor_WithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits when fn succeeds", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectCommit()

		tx := NewTransactor(db)
		err = tx.WithTx(ctx, func(ctx context.Context) error {
			require.NotNil(t, txFromContext(ctx))
			return nil
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when fn fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectRollback()

		tx := NewTransactor(db)
		wantErr := errors.New("boom")
		err = tx.WithTx(ctx, func(ctx context.Context) error {
			return wantErr
		})
		require.ErrorIs(t, err, wantErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested call reuses the enclosing transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		// One Begin, one Commit: the inner WithTx must not open its own.
		mock.ExpectBegin()
		mock.ExpectCommit()

		tx := NewTransactor(db)
		err = tx.WithTx(ctx, func(outerCtx context.Context) error {
			outer := txFromContext(outerCtx)
			return tx.WithTx(outerCtx, func(innerCtx context.Context) error {
				require.Same(t, outer, txFromContext(innerCtx))
				return nil
			})
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("repository call inside fn joins the transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\)`).
			WithArgs("ev-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
		mock.ExpectCommit()

		tx := NewTransactor(db)
		repo := NewTicketRepository(db)
		err = tx.WithTx(ctx, func(ctx context.Context) error {
			count, err := repo.CountActiveByEventID(ctx, "ev-1")
			if err != nil {
				return err
			}
			require.Equal(t, 7, count)
			return nil
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure is returned", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		wantErr := errors.New("no connection")
		mock.ExpectBegin().WillReturnError(wantErr)

		tx := NewTransactor(db)
		err = tx.WithTx(ctx, func(ctx context.Context) error { return nil })
		require.ErrorIs(t, err, wantErr)
	})
}
