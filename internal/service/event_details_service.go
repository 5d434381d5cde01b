package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
	"github.com/njprem/thirdplace_finder_web/internal/slug"
)

type EventDetailView struct {
	Place     domain.Place
	PlaceSlug string
	Event     domain.Event
	EventSlug string
	Errors    ValidationErrors
}

// Path is the canonical address of the event page.
func (v EventDetailView) Path() string {
	return "/places/" + v.PlaceSlug + "/events/" + v.EventSlug
}

type EventDetailService struct {
	catalog  Catalog
	validate *validator.Validate
}

func NewEventDetailService(catalog Catalog) *EventDetailService {
	return &EventDetailService{catalog: catalog, validate: newFormValidator()}
}

// Load resolves the place by slug, then the event by slug among that
// place's events only.
func (s *EventDetailService) Load(ctx context.Context, placeSlug, eventSlug string) Outcome[EventDetailView] {
	snap, err := s.catalog.fetch(ctx, fetchSet{places: true, events: true})
	if err != nil {
		return Failed(EventDetailView{}, err, "Failed to fetch event details")
	}

	place, err := placeIndex(ctx, snap.places).Lookup(placeSlug)
	if err != nil {
		err = placeLookupError(err)
		return Failed(EventDetailView{}, err, lookupNotice(err))
	}

	own := make([]domain.Event, 0)
	for _, ev := range snap.events {
		if ev.PlaceID == place.PlaceID {
			own = append(own, ev)
		}
	}
	event, err := slug.NewIndex(own, func(e domain.Event) string { return e.EventName }).Lookup(eventSlug)
	if err != nil {
		err = eventLookupError(err)
		return Failed(EventDetailView{Place: place, PlaceSlug: slug.Make(place.PlaceName)}, err, lookupNotice(err))
	}

	return Ready(EventDetailView{
		Place:     place,
		PlaceSlug: slug.Make(place.PlaceName),
		Event:     event,
		EventSlug: slug.Make(event.EventName),
	})
}

func (s *EventDetailService) Save(ctx context.Context, placeSlug, eventSlug string, form EventEditForm) Outcome[EventDetailView] {
	current := s.Load(ctx, placeSlug, eventSlug)
	if !current.OK() {
		return current
	}
	view := current.Data
	view.Event = form.edit().Apply(view.Event)

	if err := validateForm(s.validate, view.editForm()); err != nil {
		var fields ValidationErrors
		if errors.As(err, &fields) {
			view.Errors = fields
		}
		return Failed(view, err, "Please correct the errors in the form")
	}

	updated, err := s.catalog.Events.Update(ctx, view.Event.ID, view.Event)
	if err != nil {
		return Failed(view, fmt.Errorf("update event %d: %w", view.Event.ID, err), "Failed to update event")
	}

	view.Event = *updated
	view.EventSlug = slug.Make(updated.EventName)
	out := Ready(view)
	out.Notice = "Event updated successfully"
	return out
}

func (s *EventDetailService) Delete(ctx context.Context, placeSlug, eventSlug string) Outcome[EventDetailView] {
	current := s.Load(ctx, placeSlug, eventSlug)
	if !current.OK() {
		return current
	}
	view := current.Data
	if err := s.catalog.Events.Delete(ctx, view.Event.ID); err != nil {
		return Failed(view, fmt.Errorf("delete event %d: %w", view.Event.ID, err), "Failed to delete event")
	}
	out := Ready(view)
	out.Notice = "Event deleted successfully"
	return out
}

func (v EventDetailView) editForm() EventEditForm {
	return EventEditForm{
		EventName:        v.Event.EventName,
		EventDate:        v.Event.EventDate,
		EventTime:        v.Event.EventTime,
		EventDescription: v.Event.EventDescription,
	}
}
