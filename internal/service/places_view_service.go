package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
	"github.com/njprem/thirdplace_finder_web/internal/logging"
)

// FavoritesUnavailable is the notice shown when the list renders without
// favorite flags.
const FavoritesUnavailable = "Favorites are unavailable"

type SearchField string

const (
	SearchByName     SearchField = "name"
	SearchByCategory SearchField = "category"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// PlaceFilter selects and orders the list page. The sort key is the same
// field the term is matched against.
type PlaceFilter struct {
	Term  string
	By    SearchField
	Order SortOrder
}

// ParsePlaceFilter normalises raw query values, falling back to name
// ascending for anything unrecognised.
func ParsePlaceFilter(term, by, order string) PlaceFilter {
	filter := PlaceFilter{Term: term, By: SearchByName, Order: SortAsc}
	if strings.EqualFold(strings.TrimSpace(by), string(SearchByCategory)) {
		filter.By = SearchByCategory
	}
	if strings.EqualFold(strings.TrimSpace(order), string(SortDesc)) {
		filter.Order = SortDesc
	}
	return filter
}

func (f PlaceFilter) key(p PlaceSummary) string {
	if f.By == SearchByCategory {
		return p.Category
	}
	return p.Name
}

// Apply filters items by a case-insensitive substring match and sorts them.
// Descending order is the exact reverse of ascending.
func (f PlaceFilter) Apply(items []PlaceSummary) []PlaceSummary {
	needle := strings.ToLower(f.Term)
	out := make([]PlaceSummary, 0, len(items))
	for _, item := range items {
		if needle == "" || strings.Contains(strings.ToLower(f.key(item)), needle) {
			out = append(out, item)
		}
	}
	sortByKey(out, f.key)
	if f.Order == SortDesc {
		reverse(out)
	}
	return out
}

type PlacesView struct {
	Filter PlaceFilter
	Places []PlaceSummary
}

type PlacesService struct {
	catalog Catalog
}

func NewPlacesService(catalog Catalog) *PlacesService {
	return &PlacesService{catalog: catalog}
}

func (s *PlacesService) List(ctx context.Context, filter PlaceFilter, favorites FavoriteReader) Outcome[PlacesView] {
	empty := PlacesView{Filter: filter, Places: []PlaceSummary{}}

	snap, err := s.catalog.fetch(ctx, fetchSet{places: true, categories: true})
	if err != nil {
		return Failed(empty, err, "Failed to fetch places")
	}

	var (
		favs   domain.FavoriteSet
		notice string
	)
	if favorites != nil {
		if favs, err = favorites.Load(ctx); err != nil {
			logging.FromContext(ctx).Warn("load favorites", zap.Error(err))
			favs, notice = nil, FavoritesUnavailable
		}
	}

	items := summarize(snap.places, domain.NewCategoryLabels(snap.categories), favs)
	out := Ready(PlacesView{Filter: filter, Places: filter.Apply(items)})
	out.Notice = notice
	return out
}
