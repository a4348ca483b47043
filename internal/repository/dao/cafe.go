package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrCafeNameExists = errors.New("a cafe with this name already exists")
	ErrCafeNotFound   = errors.New("cafe not found")
)

type Cafe struct {
	ID uint `gorm:"primaryKey"`

	Name         string `gorm:"size:250;unique;not null"`
	MapURL       string `gorm:"size:500;not null"`
	ImgURL       string `gorm:"size:500;not null"`
	Location     string `gorm:"size:250;not null;index"`
	Seats        string `gorm:"size:250;not null"`
	HasToilet    bool   `gorm:"not null"`
	HasWifi      bool   `gorm:"not null"`
	HasSockets   bool   `gorm:"not null"`
	CanTakeCalls bool   `gorm:"not null"`
	CoffeePrice  string `gorm:"size:250"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CafeDAO struct {
	db *gorm.DB
}

func NewCafeDAO(db *gorm.DB) *CafeDAO {
	return &CafeDAO{
		db: db,
	}
}

func (d *CafeDAO) Insert(ctx context.Context, cafe Cafe) (Cafe, error) {
	result := d.db.WithContext(ctx).Create(&cafe)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_cafes_name"`) {
			return Cafe{}, ErrCafeNameExists
		}

		return Cafe{}, result.Error
	}

	return cafe, nil
}

func (d *CafeDAO) FindAll(ctx context.Context) ([]Cafe, error) {
	var cafes []Cafe

	result := d.db.WithContext(ctx).Order("id").Find(&cafes)
	if result.Error != nil {
		return nil, result.Error
	}

	return cafes, nil
}

func (d *CafeDAO) FindByID(ctx context.Context, id uint) (Cafe, error) {
	var cafe Cafe

	result := d.db.WithContext(ctx).First(&cafe, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Cafe{}, ErrCafeNotFound
		}

		return Cafe{}, result.Error
	}

	return cafe, nil
}

// FindFirstByLocation returns the first row whose location matches exactly.
func (d *CafeDAO) FindFirstByLocation(ctx context.Context, location string) (Cafe, error) {
	var cafe Cafe

	result := d.db.WithContext(ctx).Order("id").First(&cafe, "location = ?", location)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Cafe{}, ErrCafeNotFound
		}

		return Cafe{}, result.Error
	}

	return cafe, nil
}

func (d *CafeDAO) DeleteByID(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Cafe{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCafeNotFound
	}

	return nil
}

// Update overwrites every column of the row in a transaction. gorm rolls
// the transaction back when the closure returns an error.
func (d *CafeDAO) Update(ctx context.Context, cafe Cafe) (Cafe, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Updates with a map so false amenity flags are not skipped as
		// zero values.
		result := tx.Model(&Cafe{}).Where("id = ?", cafe.ID).Updates(map[string]interface{}{
			"name":           cafe.Name,
			"map_url":        cafe.MapURL,
			"img_url":        cafe.ImgURL,
			"location":       cafe.Location,
			"seats":          cafe.Seats,
			"has_toilet":     cafe.HasToilet,
			"has_wifi":       cafe.HasWifi,
			"has_sockets":    cafe.HasSockets,
			"can_take_calls": cafe.CanTakeCalls,
			"coffee_price":   cafe.CoffeePrice,
		})
		if result.Error != nil {
			var pgErr *pgconn.PgError
			if errors.As(result.Error, &pgErr) &&
				pgErr.Code == pgerrcode.UniqueViolation &&
				strings.Contains(pgErr.Message, `unique constraint "uni_cafes_name"`) {
				return ErrCafeNameExists
			}

			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrCafeNotFound
		}

		return nil
	})
	if err != nil {
		return Cafe{}, err
	}

	return d.FindByID(ctx, cafe.ID)
}
