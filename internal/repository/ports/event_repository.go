package ports

import (
	"context"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
)

type EventRepository interface {
	List(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, id int64, event domain.Event) (*domain.Event, error)
	Delete(ctx context.Context, id int64) error
}
