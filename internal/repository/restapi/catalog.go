package restapi

import (
	"context"
	"net/http"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
	"github.com/njprem/thirdplace_finder_web/internal/repository/ports"
)

type CategoryRepository struct {
	client *Client
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	categories := make([]domain.Category, 0)
	if err := r.client.do(ctx, http.MethodGet, []string{"categories"}, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

type RegionRepository struct {
	client *Client
}

func (r *RegionRepository) List(ctx context.Context) ([]domain.Region, error) {
	regions := make([]domain.Region, 0)
	if err := r.client.do(ctx, http.MethodGet, []string{"regions"}, nil, &regions); err != nil {
		return nil, err
	}
	return regions, nil
}

var (
	_ ports.CategoryRepository = (*CategoryRepository)(nil)
	_ ports.RegionRepository   = (*RegionRepository)(nil)
)
