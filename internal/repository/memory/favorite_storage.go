package memory

import (
	"context"
	"sync"

	"github.com/njprem/thirdplace_finder_web/internal/repository/ports"
)

type FavoriteStorage struct {
	mu    sync.RWMutex
	lists map[string][]int64
}

func NewFavoriteStorage() *FavoriteStorage {
	return &FavoriteStorage{lists: make(map[string][]int64)}
}

func (s *FavoriteStorage) Get(_ context.Context, key string) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids, ok := s.lists[key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	out := make([]int64, len(ids))
	copy(out, ids)
	return out, nil
}

func (s *FavoriteStorage) Put(_ context.Context, key string, placeIDs []int64) error {
	stored := make([]int64, len(placeIDs))
	copy(stored, placeIDs)
	s.mu.Lock()
	s.lists[key] = stored
	s.mu.Unlock()
	return nil
}

var _ ports.FavoriteStorage = (*FavoriteStorage)(nil)
