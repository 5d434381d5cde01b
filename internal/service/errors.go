package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/njprem/thirdplace_finder_web/internal/slug"
)

var (
	ErrPlaceNotFound   = errors.New("place not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrAmbiguousSlug   = errors.New("more than one record shares this address")
	ErrValidation      = errors.New("validation failed")
	ErrInvalidPlaceID  = errors.New("place id must be positive")
	ErrFeatureDisabled = errors.New("feature disabled")
)

// ValidationErrors maps a form field name to its message. It matches
// ErrValidation with errors.Is.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+v[field])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() error { return ErrValidation }

func (v ValidationErrors) Has(field string) bool {
	_, ok := v[field]
	return ok
}

func placeLookupError(err error) error {
	switch {
	case errors.Is(err, slug.ErrAmbiguous):
		return ErrAmbiguousSlug
	case errors.Is(err, slug.ErrNotFound):
		return ErrPlaceNotFound
	default:
		return err
	}
}

func eventLookupError(err error) error {
	switch {
	case errors.Is(err, slug.ErrAmbiguous):
		return ErrAmbiguousSlug
	case errors.Is(err, slug.ErrNotFound):
		return ErrEventNotFound
	default:
		return err
	}
}
