package service

import (
	"context"
	"errors"
	"sync"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
	"github.com/njprem/thirdplace_finder_web/internal/repository/ports"
)

var errBackendDown = errors.New("places api returned 500")

type placeRepoStub struct {
	mu        sync.Mutex
	items     []domain.Place
	listErr   error
	writeErr  error
	created   []domain.Place
	updated   []domain.Place
	deleted   []int64
	nextID    int64
	listCalls int
}

func (r *placeRepoStub) List(context.Context) ([]domain.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.Place, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *placeRepoStub) Create(_ context.Context, place domain.Place) (*domain.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, place)
	if r.writeErr != nil {
		return nil, r.writeErr
	}
	r.nextID++
	place.ID = r.nextID
	place.PlaceID = r.nextID
	return &place, nil
}

func (r *placeRepoStub) Update(_ context.Context, placeID int64, place domain.Place) (*domain.Place, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, place)
	if r.writeErr != nil {
		return nil, r.writeErr
	}
	for i := range r.items {
		if r.items[i].PlaceID == placeID {
			r.items[i] = place
			return &place, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *placeRepoStub) Delete(_ context.Context, placeID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	r.deleted = append(r.deleted, placeID)
	return nil
}

type categoryRepoStub struct {
	items []domain.Category
	err   error
}

func (r *categoryRepoStub) List(context.Context) ([]domain.Category, error) {
	return r.items, r.err
}

type regionRepoStub struct {
	items []domain.Region
	err   error
}

func (r *regionRepoStub) List(context.Context) ([]domain.Region, error) {
	return r.items, r.err
}

type eventRepoStub struct {
	mu       sync.Mutex
	items    []domain.Event
	listErr  error
	writeErr error
	updated  []domain.Event
	deleted  []int64
}

func (r *eventRepoStub) List(context.Context) ([]domain.Event, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.items, nil
}

func (r *eventRepoStub) Update(_ context.Context, id int64, event domain.Event) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, event)
	if r.writeErr != nil {
		return nil, r.writeErr
	}
	event.ID = id
	return &event, nil
}

func (r *eventRepoStub) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	r.deleted = append(r.deleted, id)
	return nil
}

type favoriteStorageStub struct {
	mu       sync.Mutex
	lists    map[string][]int64
	getErr   error
	putErr   error
	getCalls int
	putCalls int
}

func (s *favoriteStorageStub) Get(_ context.Context, key string) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getCalls++
	if s.getErr != nil {
		return nil, s.getErr
	}
	ids, ok := s.lists[key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return append([]int64(nil), ids...), nil
}

func (s *favoriteStorageStub) Put(_ context.Context, key string, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putCalls++
	if s.putErr != nil {
		return s.putErr
	}
	if s.lists == nil {
		s.lists = make(map[string][]int64)
	}
	s.lists[key] = append([]int64(nil), ids...)
	return nil
}

type staticFavorites domain.FavoriteSet

func (f staticFavorites) Load(context.Context) (domain.FavoriteSet, error) {
	return domain.FavoriteSet(f).Clone(), nil
}

func sampleCatalog() (Catalog, *placeRepoStub, *eventRepoStub) {
	places := &placeRepoStub{
		nextID: 100,
		items: []domain.Place{
			{ID: 1, PlaceID: 1, PlaceName: "Blue Bottle", PlaceAddress: "1 Main St", CategoryID: 1, Latitude: 34.07, Longitude: -118.27, Atmosphere: domain.AtmosphereCasual},
			{ID: 2, PlaceID: 2, PlaceName: "Echo Park Lake", PlaceAddress: "751 Echo Park Ave", CategoryID: 2, Latitude: 34.08, Longitude: -118.26, Atmosphere: domain.AtmosphereNature},
			{ID: 3, PlaceID: 3, PlaceName: "atelier", PlaceAddress: "3 Art Way", CategoryID: 9, Latitude: 34.05, Longitude: -118.24, Atmosphere: domain.AtmosphereArtistic},
		},
	}
	events := &eventRepoStub{
		items: []domain.Event{
			{ID: 10, PlaceID: 1, EventName: "Latte Art Night", EventDate: "2024-03-05", EventTime: "19:00", EventDescription: "Pour."},
			{ID: 11, PlaceID: 2, EventName: "Morning Walk", EventDate: "2024-03-06", EventTime: "07:30"},
			{ID: 12, PlaceID: 2, EventName: "Latte Art Night", EventDate: "2024-03-07", EventTime: "18:00"},
		},
	}
	catalog := Catalog{
		Places: places,
		Categories: &categoryRepoStub{items: []domain.Category{
			{CategoryID: 1, Category: "Cafe"},
			{CategoryID: 2, Category: "Park"},
		}},
		Regions: &regionRepoStub{items: []domain.Region{{RegionID: 1, Region: "Eastside"}}},
		Events:  events,
	}
	return catalog, places, events
}

type failingFavorites struct{ err error }

func (f failingFavorites) Load(context.Context) (domain.FavoriteSet, error) {
	return nil, f.err
}
