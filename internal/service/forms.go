package service

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/njprem/thirdplace_finder_web/internal/domain"
	"github.com/njprem/thirdplace_finder_web/internal/slug"
)

var fieldLabels = map[string]string{
	"place_name":         "Name",
	"place_description":  "Description",
	"place_email":        "Email",
	"place_phone_number": "Phone number",
	"place_website":      "Website",
	"place_instagram":    "Instagram",
	"place_address":      "Address",
	"place_city":         "City",
	"category_ID":        "Category",
	"region_ID":          "Region",
	"latitude":           "Latitude",
	"longitude":          "Longitude",
	"atmosphere":         "Atmosphere",
	"event_name":         "Event name",
	"event_date":         "Date",
	"event_time":         "Time",
	"event_description":  "Description",
}

// PlaceForm is the add-place form as posted by the browser. Every value
// stays a string until it has passed validation.
type PlaceForm struct {
	PlaceName        string `form:"place_name" validate:"required,sluggable"`
	PlaceDescription string `form:"place_description" validate:"required"`
	PlaceEmail       string `form:"place_email" validate:"required"`
	PlacePhoneNumber string `form:"place_phone_number" validate:"required"`
	PlaceWebsite     string `form:"place_website" validate:"required"`
	PlaceInstagram   string `form:"place_instagram" validate:"required"`
	PlaceAddress     string `form:"place_address" validate:"required"`
	PlaceCity        string `form:"place_city" validate:"required"`
	CategoryID       string `form:"category_ID" validate:"selected"`
	RegionID         string `form:"region_ID" validate:"selected"`
	Latitude         string `form:"latitude" validate:"required,numeric"`
	Longitude        string `form:"longitude" validate:"required,numeric"`
	Atmosphere       string `form:"atmosphere" validate:"required,oneof=Casual Nature Artistic Academic"`
	RequiresPayment  string `form:"requires_payment"`
}

func (f *PlaceForm) normalize() {
	f.PlaceName = strings.TrimSpace(f.PlaceName)
	f.PlaceDescription = strings.TrimSpace(f.PlaceDescription)
	f.PlaceEmail = strings.TrimSpace(f.PlaceEmail)
	f.PlacePhoneNumber = strings.TrimSpace(f.PlacePhoneNumber)
	f.PlaceWebsite = strings.TrimSpace(f.PlaceWebsite)
	f.PlaceInstagram = strings.TrimSpace(f.PlaceInstagram)
	f.PlaceAddress = strings.TrimSpace(f.PlaceAddress)
	f.PlaceCity = strings.TrimSpace(f.PlaceCity)
	f.CategoryID = strings.TrimSpace(f.CategoryID)
	f.RegionID = strings.TrimSpace(f.RegionID)
	f.Latitude = strings.TrimSpace(f.Latitude)
	f.Longitude = strings.TrimSpace(f.Longitude)
	f.Atmosphere = strings.TrimSpace(f.Atmosphere)
}

func (f PlaceForm) Paid() bool {
	switch strings.ToLower(strings.TrimSpace(f.RequiresPayment)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// place converts a validated form. Identifiers are left for the backend.
func (f PlaceForm) place() (domain.Place, error) {
	categoryID, err := strconv.ParseInt(f.CategoryID, 10, 64)
	if err != nil {
		return domain.Place{}, err
	}
	regionID, err := strconv.ParseInt(f.RegionID, 10, 64)
	if err != nil {
		return domain.Place{}, err
	}
	lat, err := strconv.ParseFloat(f.Latitude, 64)
	if err != nil {
		return domain.Place{}, err
	}
	lng, err := strconv.ParseFloat(f.Longitude, 64)
	if err != nil {
		return domain.Place{}, err
	}
	atmosphere, err := domain.ParseAtmosphere(f.Atmosphere)
	if err != nil {
		return domain.Place{}, err
	}
	return domain.Place{
		PlaceName:        f.PlaceName,
		PlaceDescription: f.PlaceDescription,
		PlaceEmail:       f.PlaceEmail,
		PlacePhoneNumber: f.PlacePhoneNumber,
		PlaceWebsite:     f.PlaceWebsite,
		PlaceInstagram:   f.PlaceInstagram,
		PlaceAddress:     f.PlaceAddress,
		PlaceCity:        f.PlaceCity,
		CategoryID:       categoryID,
		RegionID:         regionID,
		Latitude:         lat,
		Longitude:        lng,
		Atmosphere:       atmosphere,
		RequiresPayment:  f.Paid(),
	}, nil
}

// PlaceEditForm carries the inline edit of a place detail page.
type PlaceEditForm struct {
	PlaceName        string `form:"place_name" validate:"required,sluggable"`
	PlaceAddress     string `form:"place_address"`
	PlaceDescription string `form:"place_description"`
}

func (f PlaceEditForm) edit() domain.PlaceEdit {
	return domain.PlaceEdit{
		PlaceName:        strings.TrimSpace(f.PlaceName),
		PlaceAddress:     strings.TrimSpace(f.PlaceAddress),
		PlaceDescription: strings.TrimSpace(f.PlaceDescription),
	}
}

type EventEditForm struct {
	EventName        string `form:"event_name" validate:"required,sluggable"`
	EventDate        string `form:"event_date" validate:"required,datetime=2006-01-02"`
	EventTime        string `form:"event_time" validate:"required,datetime=15:04"`
	EventDescription string `form:"event_description"`
}

func (f EventEditForm) edit() domain.EventEdit {
	return domain.EventEdit{
		EventName:        strings.TrimSpace(f.EventName),
		EventDate:        strings.TrimSpace(f.EventDate),
		EventTime:        strings.TrimSpace(f.EventTime),
		EventDescription: strings.TrimSpace(f.EventDescription),
	}
}

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("selected", func(fl validator.FieldLevel) bool {
		id, err := strconv.ParseInt(strings.TrimSpace(fl.Field().String()), 10, 64)
		return err == nil && id > 0
	})
	// Names become page addresses, so they need at least one letter or digit.
	_ = v.RegisterValidation("sluggable", func(fl validator.FieldLevel) bool {
		return slug.Make(fl.Field().String()) != ""
	})
	return v
}

// validateForm runs the struct rules and converts failures into a
// field-keyed ValidationErrors.
func validateForm(v *validator.Validate, form any) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = fieldMessage(fe)
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required", "selected":
		return label + " is required"
	case "sluggable":
		return label + " must contain a letter or digit"
	case "numeric":
		return label + " must be a number"
	case "oneof":
		return label + " must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return label + " is not valid"
	default:
		return label + " is invalid"
	}
}
