package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	committed bool
}

func (f *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (f *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (f *fakeTx) Commit() error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback() error {
	return nil
}

func TestGetExecutor(t *testing.T) {
	db := Wrap(nil, nil)
	ctx := context.Background()

	assert.Same(t, db, GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(ctx))

	tx := &fakeTx{}
	txCtx := WithTx(ctx, tx)

	assert.Same(t, tx, GetExecutor(txCtx, db))
	assert.True(t, IsInTransaction(txCtx))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("  SELECT id FROM barbers"))
	assert.Equal(t, "insert", operation("INSERT\nINTO appointments"))
	assert.Equal(t, "begin", operation("begin"))
}
