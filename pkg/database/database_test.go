package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPing(t *testing.T) {
	old := SQLDB
	t.Cleanup(func() { SQLDB = old })

	SQLDB = nil
	assert.Error(t, Ping(context.Background()))

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	SQLDB = db

	mock.ExpectPing()
	assert.NoError(t, Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.EqualError(t, Ping(context.Background()), "connection refused")

	assert.NoError(t, mock.ExpectationsWereMet())
}
