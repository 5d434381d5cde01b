package ports

import "context"

// FavoriteStorage persists one serialized list of place IDs per key. Put
// replaces the whole list.
type FavoriteStorage interface {
	Get(ctx context.Context, key string) ([]int64, error)
	Put(ctx context.Context, key string, placeIDs []int64) error
}
