package ports

import (
	"context"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type RegionRepository interface {
	List(ctx context.Context) ([]domain.Region, error)
}
