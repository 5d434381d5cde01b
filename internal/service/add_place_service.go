package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
	"github.com/njprem/thirdplace_finder_web/internal/slug"
)

type AddPlaceView struct {
	Categories  []domain.Category
	Regions     []domain.Region
	Atmospheres []domain.Atmosphere
	Form        PlaceForm
	Errors      ValidationErrors
}

type CreatedPlace struct {
	Place domain.Place
	Slug  string
}

type AddPlaceService struct {
	catalog  Catalog
	validate *validator.Validate
}

func NewAddPlaceService(catalog Catalog) *AddPlaceService {
	return &AddPlaceService{catalog: catalog, validate: newFormValidator()}
}

// Load fetches the select options. Identifiers are assigned by the backend,
// so places are not needed here.
func (s *AddPlaceService) Load(ctx context.Context) Outcome[AddPlaceView] {
	view := AddPlaceView{
		Categories:  []domain.Category{},
		Regions:     []domain.Region{},
		Atmospheres: domain.Atmospheres(),
	}
	snap, err := s.catalog.fetch(ctx, fetchSet{categories: true, regions: true})
	if err != nil {
		return Failed(view, err, "Failed to load necessary data")
	}
	view.Categories = snap.categories
	view.Regions = snap.regions
	return Ready(view)
}

// Validate reports every failing field at once. Nothing is sent.
func (s *AddPlaceService) Validate(form PlaceForm) (domain.Place, error) {
	form.normalize()
	if err := validateForm(s.validate, form); err != nil {
		return domain.Place{}, err
	}
	return form.place()
}

func (s *AddPlaceService) Submit(ctx context.Context, form PlaceForm) Outcome[CreatedPlace] {
	place, err := s.Validate(form)
	if err != nil {
		return Failed(CreatedPlace{}, err, "Please correct the errors in the form")
	}

	created, err := s.catalog.Places.Create(ctx, place)
	if err != nil {
		return Failed(CreatedPlace{Place: place}, fmt.Errorf("create place: %w", err), "Failed to add place")
	}

	out := Ready(CreatedPlace{Place: *created, Slug: slug.Make(created.PlaceName)})
	out.Notice = "Place added successfully"
	return out
}
