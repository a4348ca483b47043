package response

import (
	"github.com/cafeandwifi/cafe-directory/internal/domain"
)

// Cafe mirrors domain.Cafe field by field so the JSON payload is pinned
// by the type rather than by reflection over schema columns.
type Cafe struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	MapURL       string `json:"map_url"`
	ImgURL       string `json:"img_url"`
	Location     string `json:"location"`
	Seats        string `json:"seats"`
	HasToilet    bool   `json:"has_toilet"`
	HasWifi      bool   `json:"has_wifi"`
	HasSockets   bool   `json:"has_sockets"`
	CanTakeCalls bool   `json:"can_take_calls"`
	CoffeePrice  string `json:"coffee_price"`
}

func NewCafe(c domain.Cafe) Cafe {
	return Cafe{
		ID:           c.ID,
		Name:         c.Name,
		MapURL:       c.MapURL,
		ImgURL:       c.ImgURL,
		Location:     c.Location,
		Seats:        c.Seats,
		HasToilet:    c.HasToilet,
		HasWifi:      c.HasWifi,
		HasSockets:   c.HasSockets,
		CanTakeCalls: c.CanTakeCalls,
		CoffeePrice:  c.CoffeePrice,
	}
}

// CafeEnvelope is the {"cafe": {...}} wrapper used by /random and /search.
type CafeEnvelope struct {
	Cafe Cafe `json:"cafe"`
}

func NewCafeEnvelope(c domain.Cafe) CafeEnvelope {
	return CafeEnvelope{
		Cafe: NewCafe(c),
	}
}

// SearchNotFound is the structured miss payload returned with HTTP 200.
type SearchNotFound struct {
	Error map[string]string `json:"error"`
}

func NewSearchNotFound() SearchNotFound {
	return SearchNotFound{
		Error: map[string]string{
			"Not Found": "Sorry, we don't have a cafe at this location.",
		},
	}
}
