package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
	"github.com/njprem/thirdplace_finder_web/internal/logging"
	"github.com/njprem/thirdplace_finder_web/internal/repository/ports"
	"github.com/njprem/thirdplace_finder_web/internal/slug"
)

// Catalog groups the backend collections the views join together.
type Catalog struct {
	Places     ports.PlaceRepository
	Categories ports.CategoryRepository
	Regions    ports.RegionRepository
	Events     ports.EventRepository
}

// FavoriteReader is the read side of the favorites store.
type FavoriteReader interface {
	Load(ctx context.Context) (domain.FavoriteSet, error)
}

type catalogSnapshot struct {
	places     []domain.Place
	categories []domain.Category
	regions    []domain.Region
	events     []domain.Event
}

type fetchSet struct {
	places, categories, regions, events bool
}

// fetch loads the requested collections concurrently. The first failure
// cancels the rest and is returned.
func (c Catalog) fetch(ctx context.Context, want fetchSet) (catalogSnapshot, error) {
	var snap catalogSnapshot
	eg, egCtx := errgroup.WithContext(ctx)

	if want.places {
		eg.Go(func() error {
			places, err := c.Places.List(egCtx)
			if err != nil {
				return fmt.Errorf("fetch places: %w", err)
			}
			snap.places = places
			return nil
		})
	}
	if want.categories {
		eg.Go(func() error {
			categories, err := c.Categories.List(egCtx)
			if err != nil {
				return fmt.Errorf("fetch categories: %w", err)
			}
			snap.categories = categories
			return nil
		})
	}
	if want.regions {
		eg.Go(func() error {
			regions, err := c.Regions.List(egCtx)
			if err != nil {
				return fmt.Errorf("fetch regions: %w", err)
			}
			snap.regions = regions
			return nil
		})
	}
	if want.events {
		eg.Go(func() error {
			events, err := c.Events.List(egCtx)
			if err != nil {
				return fmt.Errorf("fetch events: %w", err)
			}
			snap.events = events
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return catalogSnapshot{}, err
	}
	return snap, nil
}

// PlaceSummary is one joined row of the list and favorites pages.
type PlaceSummary struct {
	PlaceID    int64   `json:"place_ID"`
	Name       string  `json:"place_name"`
	Category   string  `json:"category"`
	Address    string  `json:"place_address"`
	Slug       string  `json:"slug"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	IsFavorite bool    `json:"is_favorite"`
}

func summarize(places []domain.Place, labels domain.CategoryLabels, favorites domain.FavoriteSet) []PlaceSummary {
	out := make([]PlaceSummary, 0, len(places))
	for _, p := range places {
		out = append(out, PlaceSummary{
			PlaceID:    p.PlaceID,
			Name:       p.PlaceName,
			Category:   labels.Label(p.CategoryID),
			Address:    p.PlaceAddress,
			Slug:       slug.Make(p.PlaceName),
			Latitude:   p.Latitude,
			Longitude:  p.Longitude,
			IsFavorite: favorites.Contains(p.PlaceID),
		})
	}
	return out
}

// sortByKey orders items by key under English collation. Ties keep their
// input order.
func sortByKey[T any](items []T, key func(T) string) {
	col := collate.New(language.English)
	sort.SliceStable(items, func(i, j int) bool {
		return col.CompareString(key(items[i]), key(items[j])) < 0
	})
}

func reverse[T any](items []T) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}

// placeIndex builds the slug index for places. Shared slugs are logged since
// those places can only be reached by ID.
func placeIndex(ctx context.Context, places []domain.Place) *slug.Index[domain.Place] {
	idx := slug.NewIndex(places, func(p domain.Place) string { return p.PlaceName })
	if shared := idx.Collisions(); len(shared) > 0 {
		sort.Strings(shared)
		logging.FromContext(ctx).Warn("places share a slug",
			zap.Strings("slugs", shared),
			zap.Int("indexed", idx.Len()))
	}
	return idx
}
