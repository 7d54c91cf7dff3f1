package notifications

import (
	"context"
	"fmt"

	"warehouse-dashboard/internal/repository"

	"github.com/doug-martin/goqu/v9"
)

const stateTable = "dashboard_state"

// KVRepository stores the blobs in the dashboard_state table, one row per key.
type KVRepository struct {
	repository *repository.Repository
}

func NewKVRepository(r *repository.Repository) *KVRepository {
	return &KVRepository{repository: r}
}

func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	found, err := r.selectQuery(key).ScanValContext(ctx, &value)
	if err != nil {
		return nil, false, fmt.Errorf("error executing SQL statement: %w", err)
	}
	if !found {
		return nil, false, nil
	}

	return []byte(value), true, nil
}

// Set upserts every entry in one transaction.
func (r *KVRepository) Set(ctx context.Context, entries map[string][]byte) error {
	return r.repository.InTx(ctx, func(tx *goqu.TxDatabase) error {
		for key, value := range entries {
			if _, err := upsertQuery(tx, key, value).Executor().ExecContext(ctx); err != nil {
				return fmt.Errorf("failed to upsert %s: %w", key, err)
			}
		}
		return nil
	})
}

func (r *KVRepository) selectQuery(key string) *goqu.SelectDataset {
	return r.repository.Builder.
		From(stateTable).
		Select("value").
		Where(goqu.Ex{"key": key})
}

type inserter interface {
	Insert(table interface{}) *goqu.InsertDataset
}

func upsertQuery(db inserter, key string, value []byte) *goqu.InsertDataset {
	return db.Insert(stateTable).
		Rows(goqu.Record{
			"key":        key,
			"value":      string(value),
			"updated_at": goqu.L("NOW()"),
		}).
		OnConflict(goqu.DoUpdate("key", goqu.Record{
			"value":      goqu.L("EXCLUDED.value"),
			"updated_at": goqu.L("NOW()"),
		}))
}
