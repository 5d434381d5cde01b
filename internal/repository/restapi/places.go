package restapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
	"github.com/njprem/thirdplace_finder_web/internal/repository/ports"
)

type PlaceRepository struct {
	client *Client
}

func (r *PlaceRepository) List(ctx context.Context) ([]domain.Place, error) {
	places := make([]domain.Place, 0)
	if err := r.client.do(ctx, http.MethodGet, []string{"places"}, nil, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// Create posts a new place. Identifiers are left to the backend.
func (r *PlaceRepository) Create(ctx context.Context, place domain.Place) (*domain.Place, error) {
	place.ID = 0
	place.PlaceID = 0
	var created domain.Place
	if err := r.client.do(ctx, http.MethodPost, []string{"places"}, place, &created); err != nil {
		return nil, err
	}
	if created.PlaceName == "" {
		created.PlaceName = place.PlaceName
	}
	return &created, nil
}

func (r *PlaceRepository) Update(ctx context.Context, placeID int64, place domain.Place) (*domain.Place, error) {
	updated := place
	if err := r.client.do(ctx, http.MethodPut, []string{"places", strconv.FormatInt(placeID, 10)}, place, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *PlaceRepository) Delete(ctx context.Context, placeID int64) error {
	return r.client.do(ctx, http.MethodDelete, []string{"places", strconv.FormatInt(placeID, 10)}, nil, nil)
}

var _ ports.PlaceRepository = (*PlaceRepository)(nil)
