package domain

import (
	"fmt"
	"time"
)

// Cafe is one directory entry. Seats stays a string because entries
// record ranges like "20-30" rather than exact counts.
type Cafe struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	MapURL       string    `json:"map_url"`
	ImgURL       string    `json:"img_url"`
	Location     string    `json:"location"`
	Seats        string    `json:"seats"`
	HasToilet    bool      `json:"has_toilet"`
	HasWifi      bool      `json:"has_wifi"`
	HasSockets   bool      `json:"has_sockets"`
	CanTakeCalls bool      `json:"can_take_calls"`
	CoffeePrice  string    `json:"coffee_price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Summary is the printable one-line form embedded in closure report emails.
func (c Cafe) Summary() string {
	return fmt.Sprintf("<%v, %v, %v, %v>", c.ID, c.Name, c.Location, c.MapURL)
}
