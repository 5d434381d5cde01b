package service

import (
	"context"
	"errors"
	"testing"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
)

func validPlaceForm() PlaceForm {
	return PlaceForm{
		PlaceName:        "Joe's Café!",
		PlaceDescription: "Cozy",
		PlaceEmail:       "joe@example.com",
		PlacePhoneNumber: "555-0100",
		PlaceWebsite:     "https://joe.example.com",
		PlaceInstagram:   "https://instagram.com/joe",
		PlaceAddress:     "1 Main St",
		PlaceCity:        "Los Angeles",
		CategoryID:       "1",
		RegionID:         "1",
		Latitude:         "34.07",
		Longitude:        "-118.27",
		Atmosphere:       "Casual",
		RequiresPayment:  "on",
	}
}

func TestAddPlaceService_Submit_EmptyNameBlocksPost(t *testing.T) {
	catalog, places, _ := sampleCatalog()
	form := validPlaceForm()
	form.PlaceName = "  "

	out := NewAddPlaceService(catalog).Submit(context.Background(), form)
	var fields ValidationErrors
	if !errors.As(out.Err, &fields) {
		t.Fatalf("expected validation errors, got %v", out.Err)
	}
	if fields["place_name"] != "Name is required" || len(fields) != 1 {
		t.Fatalf("unexpected field errors %v", fields)
	}
	if len(places.created) != 0 {
		t.Fatalf("expected no POST, got %d", len(places.created))
	}
}

func TestAddPlaceService_Validate_ReportsEveryField(t *testing.T) {
	catalog, _, _ := sampleCatalog()
	_, err := NewAddPlaceService(catalog).Validate(PlaceForm{CategoryID: "0", Latitude: "north", Atmosphere: "Loud"})

	var fields ValidationErrors
	if !errors.As(err, &fields) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	expect := map[string]string{
		"place_name":         "Name is required",
		"place_description":  "Description is required",
		"place_email":        "Email is required",
		"place_phone_number": "Phone number is required",
		"place_website":      "Website is required",
		"place_instagram":    "Instagram is required",
		"place_address":      "Address is required",
		"place_city":         "City is required",
		"category_ID":        "Category is required",
		"region_ID":          "Region is required",
		"latitude":           "Latitude must be a number",
		"longitude":          "Longitude is required",
		"atmosphere":         "Atmosphere must be one of Casual, Nature, Artistic, Academic",
	}
	for field, msg := range expect {
		if fields[field] != msg {
			t.Fatalf("field %s: expected %q, got %q", field, msg, fields[field])
		}
	}
}

func TestAddPlaceService_Submit_LeavesIdentifiersToBackend(t *testing.T) {
	catalog, places, _ := sampleCatalog()

	out := NewAddPlaceService(catalog).Submit(context.Background(), validPlaceForm())
	if !out.OK() {
		t.Fatalf("expected ready outcome, got %v", out.Err)
	}
	if len(places.created) != 1 {
		t.Fatalf("expected one POST, got %d", len(places.created))
	}
	sent := places.created[0]
	if sent.ID != 0 || sent.PlaceID != 0 {
		t.Fatalf("expected no client-side ids, got %+v", sent)
	}
	if sent.Latitude != 34.07 || sent.CategoryID != 1 || sent.Atmosphere != domain.AtmosphereCasual || !sent.RequiresPayment {
		t.Fatalf("unexpected payload %+v", sent)
	}
	if out.Data.Slug != "joe-s-caf" || out.Data.Place.PlaceID != 101 {
		t.Fatalf("unexpected created place %+v", out.Data)
	}
}

func TestAddPlaceService_Submit_BackendFailure(t *testing.T) {
	catalog, places, _ := sampleCatalog()
	places.writeErr = errBackendDown

	out := NewAddPlaceService(catalog).Submit(context.Background(), validPlaceForm())
	if !errors.Is(out.Err, errBackendDown) || out.Notice != "Failed to add place" {
		t.Fatalf("expected backend failure, got %+v", out)
	}
	if errors.Is(out.Err, ErrValidation) {
		t.Fatalf("backend failure must not look like a validation error")
	}
}

func TestAddPlaceService_Load_FetchesOptions(t *testing.T) {
	catalog, places, _ := sampleCatalog()
	out := NewAddPlaceService(catalog).Load(context.Background())
	if !out.OK() || len(out.Data.Categories) != 2 || len(out.Data.Regions) != 1 || len(out.Data.Atmospheres) != 4 {
		t.Fatalf("unexpected view %+v", out)
	}
	if places.listCalls != 0 {
		t.Fatalf("expected places not to be fetched, got %d calls", places.listCalls)
	}
}
