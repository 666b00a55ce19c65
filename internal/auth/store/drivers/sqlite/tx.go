package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/recipebox/internal/auth/store"
)

// txStore is the Store view handed to WithTx callbacks. Every repository
// it returns runs on the same *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Users() store.Users { return &usersRepo{db: t.tx} }

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op. The owner of the transaction ends it with Commit or
// Rollback and the database stays open.
func (t *txStore) Close() error { return nil }

// Ping checks the transaction is still usable.
func (t *txStore) Ping(ctx context.Context) error {
	var one int
	return t.tx.QueryRowContext(ctx, `SELECT 1`).Scan(&one)
}

// SQLite has a single writer; nesting would need SAVEPOINTs, which no
// caller needs.
func (t *txStore) Tx(context.Context) (store.Tx, error) {
	return nil, store.ErrNestedTx
}

func (t *txStore) WithTx(context.Context, func(tx store.Tx) error) error {
	return store.ErrNestedTx
}

// ApplyMigrations is a no-op. Migrations run on the Store before serving.
func (t *txStore) ApplyMigrations() error { return nil }
