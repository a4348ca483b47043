package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafeandwifi/cafe-directory/internal/domain"
)

func validAddCafeForm() AddCafeForm {
	return AddCafeForm{
		Name:         "Brew & Bytes",
		MapURL:       "https://maps.example.com/brew-and-bytes",
		ImgURL:       "https://img.example.com/brew-and-bytes.jpg",
		Location:     "Peckham",
		Seats:        "20-30",
		HasToilet:    "YES",
		HasWifi:      "YES",
		HasSockets:   "NO",
		CanTakeCalls: "NO",
		CoffeePrice:  "3.50",
	}
}

func TestAddCafeForm_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(f *AddCafeForm)
		wantField string
	}{
		{
			name:   "valid form passes",
			mutate: func(f *AddCafeForm) {},
		},
		{
			name:      "missing name fails",
			mutate:    func(f *AddCafeForm) { f.Name = "" },
			wantField: "name",
		},
		{
			name:      "malformed map URL fails",
			mutate:    func(f *AddCafeForm) { f.MapURL = "not a url" },
			wantField: "map_url",
		},
		{
			name:      "malformed image URL fails",
			mutate:    func(f *AddCafeForm) { f.ImgURL = "://broken" },
			wantField: "img_url",
		},
		{
			name:      "missing location fails",
			mutate:    func(f *AddCafeForm) { f.Location = "" },
			wantField: "location",
		},
		{
			name:      "missing seats fails",
			mutate:    func(f *AddCafeForm) { f.Seats = "" },
			wantField: "seats",
		},
		{
			name:      "amenity outside YES/NO fails",
			mutate:    func(f *AddCafeForm) { f.HasWifi = "MAYBE" },
			wantField: "has_wifi",
		},
		{
			name:      "lowercase amenity fails",
			mutate:    func(f *AddCafeForm) { f.HasToilet = "yes" },
			wantField: "has_toilet",
		},
		{
			name:      "missing price fails",
			mutate:    func(f *AddCafeForm) { f.CoffeePrice = "" },
			wantField: "coffee_price",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validAddCafeForm()
			tt.mutate(&f)

			err := f.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantField)
		})
	}
}

func TestAddCafeForm_PriceDoesNotRequireGlyph(t *testing.T) {
	f := validAddCafeForm()
	f.CoffeePrice = "3.50"

	assert.NoError(t, f.Validate())
}

func TestAddCafeForm_ToCafe(t *testing.T) {
	f := validAddCafeForm()

	cafe := f.ToCafe()

	assert.Equal(t, "Brew & Bytes", cafe.Name)
	assert.Equal(t, "https://maps.example.com/brew-and-bytes", cafe.MapURL)
	assert.Equal(t, "Peckham", cafe.Location)
	assert.Equal(t, "20-30", cafe.Seats)
	assert.True(t, cafe.HasToilet)
	assert.True(t, cafe.HasWifi)
	assert.False(t, cafe.HasSockets)
	assert.False(t, cafe.CanTakeCalls)
	// The glyph is the service's job, not the form's.
	assert.Equal(t, "3.50", cafe.CoffeePrice)
}

func validUpdateCafeForm() UpdateCafeForm {
	return UpdateCafeForm{
		Name:         "Brew & Bytes",
		MapURL:       "https://maps.example.com/brew-and-bytes",
		ImgURL:       "https://img.example.com/brew-and-bytes.jpg",
		Location:     "Peckham",
		Seats:        "20-30",
		HasToilet:    "YES",
		HasWifi:      "NO",
		HasSockets:   "YES",
		CanTakeCalls: "NO",
		CoffeePrice:  "£3.50",
	}
}

func TestUpdateCafeForm_PriceRequiresGlyph(t *testing.T) {
	tests := []struct {
		name    string
		price   string
		wantErr bool
	}{
		{name: "glyph with decimals passes", price: "£3.50", wantErr: false},
		{name: "glyph with whole amount passes", price: "£4", wantErr: false},
		{name: "bare number fails", price: "3.50", wantErr: true},
		{name: "glyph without amount fails", price: "£", wantErr: true},
		{name: "glyph without digits fails", price: "£free", wantErr: true},
		{name: "glyph not leading fails", price: "3.50£", wantErr: true},
		{name: "empty fails", price: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validUpdateCafeForm()
			f.CoffeePrice = tt.price

			err := f.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "coffee_price")

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestUpdateCafeForm_ToCafe_KeepsPriceVerbatim(t *testing.T) {
	f := validUpdateCafeForm()

	cafe := f.ToCafe()

	assert.Equal(t, "£3.50", cafe.CoffeePrice)
	assert.True(t, cafe.HasToilet)
	assert.False(t, cafe.HasWifi)
	assert.True(t, cafe.HasSockets)
	assert.False(t, cafe.CanTakeCalls)
}

func TestUpdateFormFromCafe(t *testing.T) {
	cafe := domain.Cafe{
		ID:           7,
		Name:         "Brew & Bytes",
		MapURL:       "https://maps.example.com/brew-and-bytes",
		ImgURL:       "https://img.example.com/brew-and-bytes.jpg",
		Location:     "Peckham",
		Seats:        "20-30",
		HasToilet:    true,
		HasWifi:      false,
		HasSockets:   true,
		CanTakeCalls: false,
		CoffeePrice:  "£3.50",
	}

	f := UpdateFormFromCafe(cafe)

	assert.Equal(t, "YES", f.HasToilet)
	assert.Equal(t, "NO", f.HasWifi)
	assert.Equal(t, "YES", f.HasSockets)
	assert.Equal(t, "NO", f.CanTakeCalls)
	assert.Equal(t, "£3.50", f.CoffeePrice)

	// Hydrated forms must validate so the edit page round-trips.
	assert.NoError(t, f.Validate())
}

func TestDeleteCafeForm_Validate(t *testing.T) {
	f := DeleteCafeForm{}
	require.Error(t, f.Validate())

	f.APIKey = "TopSecretAPIKey"
	assert.NoError(t, f.Validate())
}

func TestReportClosedForm_Validate(t *testing.T) {
	f := ReportClosedForm{}
	require.Error(t, f.Validate())

	f.Sender = "visitor@example.com"
	require.Error(t, f.Validate())

	f.Message = "This cafe is gone, the shopfront is empty."
	assert.NoError(t, f.Validate())
}
