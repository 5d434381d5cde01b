package service

import (
	"context"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
)

const NoFavoritesMessage = "You haven't added any favorites yet."

type FavoritesView struct {
	Places []PlaceSummary
}

func (v FavoritesView) Empty() bool { return len(v.Places) == 0 }

type FavoritesViewService struct {
	catalog Catalog
}

func NewFavoritesViewService(catalog Catalog) *FavoritesViewService {
	return &FavoritesViewService{catalog: catalog}
}

// Load returns the favorited places ordered by name.
func (s *FavoritesViewService) Load(ctx context.Context, favorites FavoriteReader) Outcome[FavoritesView] {
	empty := FavoritesView{Places: []PlaceSummary{}}

	favs, err := favorites.Load(ctx)
	if err != nil {
		return Failed(empty, err, "Failed to load favorites")
	}

	snap, err := s.catalog.fetch(ctx, fetchSet{places: true, categories: true})
	if err != nil {
		return Failed(empty, err, "Failed to fetch favorites")
	}

	all := summarize(snap.places, domain.NewCategoryLabels(snap.categories), favs)
	sortByKey(all, func(p PlaceSummary) string { return p.Name })

	out := make([]PlaceSummary, 0, len(favs))
	for _, item := range all {
		if item.IsFavorite {
			out = append(out, item)
		}
	}
	return Ready(FavoritesView{Places: out})
}
