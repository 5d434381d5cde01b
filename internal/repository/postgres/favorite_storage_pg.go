package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/thirdplace_finder_web/internal/repository/ports"
)

const browserStorageTable = "browser_storage"

// FavoriteStorage keeps each list as one bigint[] row keyed by storage_key.
type FavoriteStorage struct {
	db *sqlx.DB
}

func NewFavoriteStorage(db *sqlx.DB) *FavoriteStorage {
	return &FavoriteStorage{db: db}
}

func (s *FavoriteStorage) EnsureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS browser_storage (
			storage_key TEXT PRIMARY KEY,
			place_ids   BIGINT[] NOT NULL DEFAULT '{}',
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *FavoriteStorage) Get(ctx context.Context, key string) ([]int64, error) {
	query, args, err := selectFavoritesQuery(key)
	if err != nil {
		return nil, err
	}

	var ids pq.Int64Array
	if err := s.db.QueryRowxContext(ctx, query, args...).Scan(&ids); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	out := make([]int64, len(ids))
	copy(out, ids)
	return out, nil
}

func (s *FavoriteStorage) Put(ctx context.Context, key string, placeIDs []int64) error {
	query, args, err := upsertFavoritesQuery(key, placeIDs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func selectFavoritesQuery(key string) (string, []interface{}, error) {
	return builder().
		Select("place_ids").
		From(browserStorageTable).
		Where("storage_key = ?", key).
		ToSql()
}

// upsertFavoritesQuery replaces the whole stored list for key.
func upsertFavoritesQuery(key string, placeIDs []int64) (string, []interface{}, error) {
	if placeIDs == nil {
		placeIDs = []int64{}
	}
	return builder().
		Insert(browserStorageTable).
		Columns("storage_key", "place_ids").
		Values(key, pq.Int64Array(placeIDs)).
		Suffix("ON CONFLICT (storage_key) DO UPDATE SET place_ids = EXCLUDED.place_ids, updated_at = now()").
		ToSql()
}

var _ ports.FavoriteStorage = (*FavoriteStorage)(nil)
