package service

import (
	"context"
	"errors"
	"testing"
)

func TestEventDetailService_Load_ScopesEventToPlace(t *testing.T) {
	catalog, _, _ := sampleCatalog()
	svc := NewEventDetailService(catalog)

	out := svc.Load(context.Background(), "echo-park-lake", "latte-art-night")
	if !out.OK() {
		t.Fatalf("expected ready outcome, got %v", out.Err)
	}
	if out.Data.Event.ID != 12 {
		t.Fatalf("expected the event of place 2, got %+v", out.Data.Event)
	}
	if out.Data.Path() != "/places/echo-park-lake/events/latte-art-night" {
		t.Fatalf("unexpected path %q", out.Data.Path())
	}

	out = svc.Load(context.Background(), "atelier", "latte-art-night")
	if !errors.Is(out.Err, ErrEventNotFound) || out.Notice != "Event not found" {
		t.Fatalf("expected event not found, got %+v", out)
	}
	if out.Data.PlaceSlug != "atelier" {
		t.Fatalf("expected the resolved place to be kept, got %+v", out.Data)
	}
}

func TestEventDetailService_Load_FetchFailure(t *testing.T) {
	catalog, _, events := sampleCatalog()
	events.listErr = errBackendDown

	out := NewEventDetailService(catalog).Load(context.Background(), "blue-bottle", "latte-art-night")
	if !errors.Is(out.Err, errBackendDown) || out.Notice != "Failed to fetch event details" {
		t.Fatalf("expected fetch failure, got %+v", out)
	}
}

func TestEventDetailService_Save_RenameChangesPath(t *testing.T) {
	catalog, _, events := sampleCatalog()
	svc := NewEventDetailService(catalog)

	out := svc.Save(context.Background(), "blue-bottle", "latte-art-night", EventEditForm{
		EventName:        "Latte Art Workshop",
		EventDate:        "2024-04-01",
		EventTime:        "18:30",
		EventDescription: "Bring a mug.",
	})
	if !out.OK() {
		t.Fatalf("expected ready outcome, got %v", out.Err)
	}
	if len(events.updated) != 1 || events.updated[0].ID != 10 || events.updated[0].PlaceID != 1 {
		t.Fatalf("expected PUT of event 10, got %+v", events.updated)
	}
	if out.Data.Path() != "/places/blue-bottle/events/latte-art-workshop" {
		t.Fatalf("unexpected path %q", out.Data.Path())
	}
}

func TestEventDetailService_Save_ValidatesDateAndTime(t *testing.T) {
	catalog, _, events := sampleCatalog()
	out := NewEventDetailService(catalog).Save(context.Background(), "blue-bottle", "latte-art-night", EventEditForm{
		EventName: "Latte Art Night",
		EventDate: "04/01/2024",
		EventTime: "7pm",
	})

	var fields ValidationErrors
	if !errors.As(out.Err, &fields) || !fields.Has("event_date") || !fields.Has("event_time") {
		t.Fatalf("expected date and time errors, got %v", out.Err)
	}
	if len(events.updated) != 0 {
		t.Fatalf("expected no PUT, got %d", len(events.updated))
	}
}

func TestEventDetailService_Save_RejectsNameWithoutAddress(t *testing.T) {
	catalog, _, events := sampleCatalog()
	out := NewEventDetailService(catalog).Save(context.Background(), "blue-bottle", "latte-art-night", EventEditForm{
		EventName: "???",
		EventDate: "2024-04-01",
		EventTime: "19:00",
	})

	var fields ValidationErrors
	if !errors.As(out.Err, &fields) || !fields.Has("event_name") || fields.Has("event_date") {
		t.Fatalf("expected only an event_name error, got %v", out.Err)
	}
	if len(events.updated) != 0 {
		t.Fatalf("expected no PUT, got %d", len(events.updated))
	}
}

func TestEventDetailService_Delete(t *testing.T) {
	catalog, _, events := sampleCatalog()
	out := NewEventDetailService(catalog).Delete(context.Background(), "echo-park-lake", "morning-walk")
	if !out.OK() || len(events.deleted) != 1 || events.deleted[0] != 11 {
		t.Fatalf("expected event 11 deleted, got %+v", out)
	}
	if out.Data.PlaceSlug != "echo-park-lake" {
		t.Fatalf("unexpected place slug %q", out.Data.PlaceSlug)
	}
}
