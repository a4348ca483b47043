package form

import (
	"errors"
	"strings"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/cafeandwifi/cafe-directory/internal/domain"
)

const (
	amenityYes = "YES"
	amenityNo  = "NO"
)

// pricePattern needs a lookahead ('£' followed by at least one digit
// somewhere), which the stdlib regexp engine cannot compile.
var pricePattern = regexp2.MustCompile(`^£(?=.*\d).+$`, regexp2.None)

var errPriceMissingGlyph = errors.New("price must start with '£' followed by an amount")

// AddCafeForm collects a new directory entry. Amenity fields arrive as
// YES/NO selections and are converted to booleans by ToCafe.
type AddCafeForm struct {
	Name         string `form:"name" json:"name"`
	MapURL       string `form:"map_url" json:"map_url"`
	ImgURL       string `form:"img_url" json:"img_url"`
	Location     string `form:"location" json:"location"`
	Seats        string `form:"seats" json:"seats"`
	HasToilet    string `form:"has_toilet" json:"has_toilet"`
	HasWifi      string `form:"has_wifi" json:"has_wifi"`
	HasSockets   string `form:"has_sockets" json:"has_sockets"`
	CanTakeCalls string `form:"can_take_calls" json:"can_take_calls"`
	CoffeePrice  string `form:"coffee_price" json:"coffee_price"`
}

func (f *AddCafeForm) Validate() error {
	return validation.ValidateStruct(
		f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.MapURL, validation.Required, is.URL),
		validation.Field(&f.ImgURL, validation.Required, is.URL),
		validation.Field(&f.Location, validation.Required),
		validation.Field(&f.Seats, validation.Required),
		validation.Field(&f.HasToilet, validation.Required, validation.In(amenityYes, amenityNo)),
		validation.Field(&f.HasWifi, validation.Required, validation.In(amenityYes, amenityNo)),
		validation.Field(&f.HasSockets, validation.Required, validation.In(amenityYes, amenityNo)),
		validation.Field(&f.CanTakeCalls, validation.Required, validation.In(amenityYes, amenityNo)),
		validation.Field(&f.CoffeePrice, validation.Required),
	)
}

// ToCafe maps the validated form onto a domain record. The price is
// passed through untouched; the service prepends the currency glyph.
func (f *AddCafeForm) ToCafe() domain.Cafe {
	return domain.Cafe{
		Name:         strings.TrimSpace(f.Name),
		MapURL:       f.MapURL,
		ImgURL:       f.ImgURL,
		Location:     f.Location,
		Seats:        f.Seats,
		HasToilet:    f.HasToilet == amenityYes,
		HasWifi:      f.HasWifi == amenityYes,
		HasSockets:   f.HasSockets == amenityYes,
		CanTakeCalls: f.CanTakeCalls == amenityYes,
		CoffeePrice:  f.CoffeePrice,
	}
}

// UpdateCafeForm edits an existing entry. Unlike AddCafeForm the price
// must already carry the currency glyph; nothing is prepended on save.
type UpdateCafeForm struct {
	Name         string `form:"name" json:"name"`
	MapURL       string `form:"map_url" json:"map_url"`
	ImgURL       string `form:"img_url" json:"img_url"`
	Location     string `form:"location" json:"location"`
	Seats        string `form:"seats" json:"seats"`
	HasToilet    string `form:"has_toilet" json:"has_toilet"`
	HasWifi      string `form:"has_wifi" json:"has_wifi"`
	HasSockets   string `form:"has_sockets" json:"has_sockets"`
	CanTakeCalls string `form:"can_take_calls" json:"can_take_calls"`
	CoffeePrice  string `form:"coffee_price" json:"coffee_price"`
}

func (f *UpdateCafeForm) Validate() error {
	return validation.ValidateStruct(
		f,
		validation.Field(&f.Name, validation.Required),
		validation.Field(&f.MapURL, validation.Required, is.URL),
		validation.Field(&f.ImgURL, validation.Required, is.URL),
		validation.Field(&f.Location, validation.Required),
		validation.Field(&f.Seats, validation.Required),
		validation.Field(&f.HasToilet, validation.Required, validation.In(amenityYes, amenityNo)),
		validation.Field(&f.HasWifi, validation.Required, validation.In(amenityYes, amenityNo)),
		validation.Field(&f.HasSockets, validation.Required, validation.In(amenityYes, amenityNo)),
		validation.Field(&f.CanTakeCalls, validation.Required, validation.In(amenityYes, amenityNo)),
		validation.Field(&f.CoffeePrice, validation.Required, validation.By(priceHasGlyph)),
	)
}

func (f *UpdateCafeForm) ToCafe() domain.Cafe {
	return domain.Cafe{
		Name:         strings.TrimSpace(f.Name),
		MapURL:       f.MapURL,
		ImgURL:       f.ImgURL,
		Location:     f.Location,
		Seats:        f.Seats,
		HasToilet:    f.HasToilet == amenityYes,
		HasWifi:      f.HasWifi == amenityYes,
		HasSockets:   f.HasSockets == amenityYes,
		CanTakeCalls: f.CanTakeCalls == amenityYes,
		CoffeePrice:  f.CoffeePrice,
	}
}

// UpdateFormFromCafe hydrates the edit form from a persisted record,
// mapping booleans back onto the YES/NO choice set.
func UpdateFormFromCafe(c domain.Cafe) UpdateCafeForm {
	return UpdateCafeForm{
		Name:         c.Name,
		MapURL:       c.MapURL,
		ImgURL:       c.ImgURL,
		Location:     c.Location,
		Seats:        c.Seats,
		HasToilet:    amenityFromBool(c.HasToilet),
		HasWifi:      amenityFromBool(c.HasWifi),
		HasSockets:   amenityFromBool(c.HasSockets),
		CanTakeCalls: amenityFromBool(c.CanTakeCalls),
		CoffeePrice:  c.CoffeePrice,
	}
}

func amenityFromBool(b bool) string {
	if b {
		return amenityYes
	}

	return amenityNo
}

func priceHasGlyph(value interface{}) error {
	price, _ := value.(string)

	matched, err := pricePattern.MatchString(price)
	if err != nil || !matched {
		return errPriceMissingGlyph
	}

	return nil
}

// DeleteCafeForm authorizes an unconditional delete with the admin key.
type DeleteCafeForm struct {
	APIKey string `form:"api_key" json:"api_key"`
}

func (f *DeleteCafeForm) Validate() error {
	return validation.ValidateStruct(
		f,
		validation.Field(&f.APIKey, validation.Required),
	)
}

// ReportClosedForm is a visitor's notice that a cafe looks permanently
// closed. It never deletes anything; it only gets mailed to the admin.
type ReportClosedForm struct {
	Sender  string `form:"sender" json:"sender"`
	Message string `form:"message" json:"message"`
}

func (f *ReportClosedForm) Validate() error {
	return validation.ValidateStruct(
		f,
		validation.Field(&f.Sender, validation.Required),
		validation.Field(&f.Message, validation.Required),
	)
}
