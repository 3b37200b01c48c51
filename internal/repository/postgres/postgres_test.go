package postgres_test

import (
	"context"
	"testing"

	"charlymatloc-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	store := postgres.NewStore(db)
	mock.ExpectPing()

	assert.NoError(t, store.Ping(context.Background()))
	assert.NotNil(t, store.ToolRepository)
	assert.NotNil(t, store.UserRepository)
	assert.NoError(t, mock.ExpectationsWereMet())
}
