package restapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
	"github.com/njprem/thirdplace_finder_web/internal/repository/ports"
)

type EventRepository struct {
	client *Client
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	events := make([]domain.Event, 0)
	if err := r.client.do(ctx, http.MethodGet, []string{"events"}, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) Update(ctx context.Context, id int64, event domain.Event) (*domain.Event, error) {
	updated := event
	if err := r.client.do(ctx, http.MethodPut, []string{"events", strconv.FormatInt(id, 10)}, event, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	return r.client.do(ctx, http.MethodDelete, []string{"events", strconv.FormatInt(id, 10)}, nil, nil)
}

var _ ports.EventRepository = (*EventRepository)(nil)
