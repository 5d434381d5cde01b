package service

import (
	"context"
	"errors"
	"sync"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
	"github.com/njprem/thirdplace_finder_web/internal/repository/ports"
)

// FavoritesKey is the fixed storage key every backend keeps the list under.
const FavoritesKey = "favorites"

// FavoriteService caches one favorites list in memory and writes the whole
// list back on every toggle. A service bound to a shared backend is used
// from many requests at once; the mutex serialises Load and Toggle.
type FavoriteService struct {
	storage ports.FavoriteStorage
	hub     *FavoriteHub
	scope   string

	mu     sync.Mutex
	cache  domain.FavoriteSet
	loaded bool
}

func NewFavoriteService(storage ports.FavoriteStorage, hub *FavoriteHub, scope string) *FavoriteService {
	return &FavoriteService{
		storage: storage,
		hub:     hub,
		scope:   scope,
	}
}

func (s *FavoriteService) Scope() string { return s.scope }

func (s *FavoriteService) Load(ctx context.Context) (domain.FavoriteSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return s.cache.Clone(), nil
}

func (s *FavoriteService) Contains(ctx context.Context, placeID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return false, err
	}
	return s.cache.Contains(placeID), nil
}

// Toggle adds placeID when absent and removes it otherwise. It reports
// whether the place is a favorite afterwards.
func (s *FavoriteService) Toggle(ctx context.Context, placeID int64) (domain.FavoriteSet, bool, error) {
	if placeID <= 0 {
		return nil, false, ErrInvalidPlaceID
	}

	s.mu.Lock()
	if err := s.ensureLoaded(ctx); err != nil {
		s.mu.Unlock()
		return nil, false, err
	}
	next := s.cache.Toggle(placeID)
	if err := s.storage.Put(ctx, FavoritesKey, next); err != nil {
		s.mu.Unlock()
		return nil, false, err
	}
	s.cache = next
	snapshot := next.Clone()
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.Publish(s.scope, snapshot)
	}
	return snapshot, snapshot.Contains(placeID), nil
}

// Invalidate drops the cached list so the next read goes to storage.
func (s *FavoriteService) Invalidate() {
	s.mu.Lock()
	s.cache = nil
	s.loaded = false
	s.mu.Unlock()
}

func (s *FavoriteService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	ids, err := s.storage.Get(ctx, FavoritesKey)
	switch {
	case errors.Is(err, ports.ErrNotFound):
		ids = nil
	case err != nil:
		return err
	}
	s.cache = dedupe(ids)
	s.loaded = true
	return nil
}

func dedupe(ids []int64) domain.FavoriteSet {
	out := make(domain.FavoriteSet, 0, len(ids))
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
