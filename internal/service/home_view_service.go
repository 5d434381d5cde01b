package service

import (
	"context"

	"github.com/njprem/thirdplace_finder_web/internal/slug"
)

type MapMarker struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Slug    string  `json:"slug"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type HomeView struct {
	Markers []MapMarker
}

type HomeService struct {
	catalog Catalog
}

func NewHomeService(catalog Catalog) *HomeService {
	return &HomeService{catalog: catalog}
}

// Load returns one marker per place. A failed fetch still yields a view with
// no markers so the page can render.
func (s *HomeService) Load(ctx context.Context) Outcome[HomeView] {
	snap, err := s.catalog.fetch(ctx, fetchSet{places: true})
	if err != nil {
		return Failed(HomeView{Markers: []MapMarker{}}, err, "Failed to fetch places")
	}

	markers := make([]MapMarker, 0, len(snap.places))
	for _, p := range snap.places {
		markers = append(markers, MapMarker{
			Name:    p.PlaceName,
			Address: p.PlaceAddress,
			Slug:    slug.Make(p.PlaceName),
			Lat:     p.Latitude,
			Lng:     p.Longitude,
		})
	}
	return Ready(HomeView{Markers: markers})
}
