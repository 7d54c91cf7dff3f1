package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

const dialect = "postgres"

// Repository shares one goqu handle between the state and audit stores.
// A nil *sql.DB still yields a usable builder for rendering SQL in tests.
type Repository struct {
	DB      *sql.DB
	Builder *goqu.Database
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		DB:      db,
		Builder: goqu.New(dialect, db),
	}
}

// InTx runs fn inside a transaction bound to ctx. The transaction commits when
// fn returns nil and rolls back on error or panic.
func (r *Repository) InTx(ctx context.Context, fn func(tx *goqu.TxDatabase) error) error {
	tx, err := r.Builder.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	return tx.Wrap(func() error {
		return fn(tx)
	})
}
