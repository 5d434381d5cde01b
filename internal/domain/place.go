package domain

import (
	"fmt"
	"strings"
)

type Atmosphere string

const (
	AtmosphereCasual   Atmosphere = "Casual"
	AtmosphereNature   Atmosphere = "Nature"
	AtmosphereArtistic Atmosphere = "Artistic"
	AtmosphereAcademic Atmosphere = "Academic"
)

var atmospheresOrdered = []Atmosphere{
	AtmosphereCasual,
	AtmosphereNature,
	AtmosphereArtistic,
	AtmosphereAcademic,
}

// Atmospheres lists the accepted atmosphere values in display order.
func Atmospheres() []Atmosphere {
	out := make([]Atmosphere, len(atmospheresOrdered))
	copy(out, atmospheresOrdered)
	return out
}

func ParseAtmosphere(raw string) (Atmosphere, error) {
	trimmed := strings.TrimSpace(raw)
	for _, a := range atmospheresOrdered {
		if strings.EqualFold(string(a), trimmed) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown atmosphere %q", raw)
}

// Place mirrors the backend payload. ID and PlaceID are assigned by the
// backend and omitted on create.
type Place struct {
	ID               int64      `json:"id,omitempty"`
	PlaceID          int64      `json:"place_ID,omitempty"`
	PlaceName        string     `json:"place_name"`
	PlaceDescription string     `json:"place_description"`
	PlaceEmail       string     `json:"place_email"`
	PlacePhoneNumber string     `json:"place_phone_number"`
	PlaceWebsite     string     `json:"place_website"`
	PlaceInstagram   string     `json:"place_instagram"`
	PlaceAddress     string     `json:"place_address"`
	PlaceCity        string     `json:"place_city"`
	CategoryID       int64      `json:"category_ID"`
	RegionID         int64      `json:"region_ID"`
	Latitude         float64    `json:"latitude"`
	Longitude        float64    `json:"longitude"`
	Atmosphere       Atmosphere `json:"atmosphere"`
	RequiresPayment  bool       `json:"requires_payment"`
}

// PlaceEdit carries the fields editable inline on the place detail page.
type PlaceEdit struct {
	PlaceName        string
	PlaceAddress     string
	PlaceDescription string
}

// Apply returns a copy of p with the edited fields replaced.
func (e PlaceEdit) Apply(p Place) Place {
	p.PlaceName = e.PlaceName
	p.PlaceAddress = e.PlaceAddress
	p.PlaceDescription = e.PlaceDescription
	return p
}
