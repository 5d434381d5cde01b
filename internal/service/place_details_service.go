package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
	"github.com/njprem/thirdplace_finder_web/internal/slug"
)

type EventSummary struct {
	ID          int64
	Name        string
	Slug        string
	Date        string
	Time        string
	Description string
}

type PlaceDetailView struct {
	Place    domain.Place
	Slug     string
	Category string
	Events   []EventSummary
	Errors   ValidationErrors
}

type PlaceDetailService struct {
	catalog  Catalog
	validate *validator.Validate
}

func NewPlaceDetailService(catalog Catalog) *PlaceDetailService {
	return &PlaceDetailService{catalog: catalog, validate: newFormValidator()}
}

func (s *PlaceDetailService) Load(ctx context.Context, placeSlug string) Outcome[PlaceDetailView] {
	snap, err := s.catalog.fetch(ctx, fetchSet{places: true, categories: true, events: true})
	if err != nil {
		return Failed(PlaceDetailView{}, err, "Failed to fetch data")
	}

	place, err := placeIndex(ctx, snap.places).Lookup(placeSlug)
	if err != nil {
		err = placeLookupError(err)
		return Failed(PlaceDetailView{}, err, lookupNotice(err))
	}

	events := make([]EventSummary, 0)
	for _, ev := range snap.events {
		if ev.PlaceID != place.PlaceID {
			continue
		}
		events = append(events, EventSummary{
			ID:          ev.ID,
			Name:        ev.EventName,
			Slug:        slug.Make(ev.EventName),
			Date:        ev.DisplayDate(),
			Time:        ev.EventTime,
			Description: ev.EventDescription,
		})
	}

	return Ready(PlaceDetailView{
		Place:    place,
		Slug:     slug.Make(place.PlaceName),
		Category: domain.NewCategoryLabels(snap.categories).Label(place.CategoryID),
		Events:   events,
	})
}

// Save merges the edited fields into the resolved place and sends the whole
// record. The returned view reflects the backend's answer, so Slug changes
// when the name did.
func (s *PlaceDetailService) Save(ctx context.Context, placeSlug string, form PlaceEditForm) Outcome[PlaceDetailView] {
	current := s.Load(ctx, placeSlug)
	if !current.OK() {
		return current
	}
	view := current.Data
	view.Place = form.edit().Apply(view.Place)

	if err := validateForm(s.validate, view.editForm()); err != nil {
		var fields ValidationErrors
		if errors.As(err, &fields) {
			view.Errors = fields
		}
		return Failed(view, err, "Please correct the errors in the form")
	}

	updated, err := s.catalog.Places.Update(ctx, view.Place.PlaceID, view.Place)
	if err != nil {
		return Failed(view, fmt.Errorf("update place %d: %w", view.Place.PlaceID, err), "Failed to update place")
	}

	view.Place = *updated
	view.Slug = slug.Make(updated.PlaceName)
	out := Ready(view)
	out.Notice = "Place updated successfully"
	return out
}

func (s *PlaceDetailService) Delete(ctx context.Context, placeSlug string) Outcome[domain.Place] {
	snap, err := s.catalog.fetch(ctx, fetchSet{places: true})
	if err != nil {
		return Failed(domain.Place{}, err, "Failed to fetch data")
	}
	place, err := placeIndex(ctx, snap.places).Lookup(placeSlug)
	if err != nil {
		err = placeLookupError(err)
		return Failed(domain.Place{}, err, lookupNotice(err))
	}
	if err := s.catalog.Places.Delete(ctx, place.PlaceID); err != nil {
		return Failed(place, fmt.Errorf("delete place %d: %w", place.PlaceID, err), "Failed to delete place")
	}
	out := Ready(place)
	out.Notice = "Place deleted successfully"
	return out
}

func (v PlaceDetailView) editForm() PlaceEditForm {
	return PlaceEditForm{
		PlaceName:        v.Place.PlaceName,
		PlaceAddress:     v.Place.PlaceAddress,
		PlaceDescription: v.Place.PlaceDescription,
	}
}

func lookupNotice(err error) string {
	switch {
	case errors.Is(err, ErrAmbiguousSlug):
		return "More than one record matches this address"
	case errors.Is(err, ErrEventNotFound):
		return "Event not found"
	case errors.Is(err, ErrPlaceNotFound):
		return "Place not found"
	default:
		return "Failed to fetch data"
	}
}
