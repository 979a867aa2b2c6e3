package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLDB_QueryCancelled(t *testing.T) {
	db, err := sql.Open("postgres", "host=127.0.0.1 port=1 sslmode=disable")
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows, err := NewSQLDB(db).QueryContext(ctx, selectRecapsSQL)
	require.Error(t, err)
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "query recaps")
}

func TestOpen_PingFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	db, err := Open(ctx, "host=127.0.0.1 port=1 sslmode=disable", PoolOptions{MaxOpenConns: 1})
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "ping postgres")
}
