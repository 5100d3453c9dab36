package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestList_ScanErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"key"}).AddRow("only-one-column")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, value FROM storage`)).WillReturnRows(rows)

	_, err = NewSQLiteRepository(db).List(context.Background())
	require.ErrorContains(t, err, "failed to scan storage row")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_RowsErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"key", "value"}).
		AddRow("a", []byte("1")).
		RowError(0, errors.New("disk I/O error"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT key, value FROM storage`)).WillReturnRows(rows)

	_, err = NewSQLiteRepository(db).List(context.Background())
	require.ErrorContains(t, err, "failed to iterate storage rows")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_PassesKeyAndValue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO storage`).
		WithArgs("auth-storage", []byte("payload")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, NewSQLiteRepository(db).Set(context.Background(), "auth-storage", []byte("payload")))
	require.NoError(t, mock.ExpectationsWereMet())
}
