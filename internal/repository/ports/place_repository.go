package ports

import (
	"context"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
)

type PlaceRepository interface {
	List(ctx context.Context) ([]domain.Place, error)
	Create(ctx context.Context, place domain.Place) (*domain.Place, error)
	Update(ctx context.Context, placeID int64, place domain.Place) (*domain.Place, error)
	Delete(ctx context.Context, placeID int64) error
}
