package repository

import (
	"context"
	"fmt"

	"github.com/cafeandwifi/cafe-directory/internal/domain"
	"github.com/cafeandwifi/cafe-directory/internal/repository/dao"
)

var (
	ErrCafeNameExists = dao.ErrCafeNameExists
	ErrCafeNotFound   = dao.ErrCafeNotFound
)

type CafeDAO interface {
	Insert(ctx context.Context, cafe dao.Cafe) (dao.Cafe, error)
	FindAll(ctx context.Context) ([]dao.Cafe, error)
	FindByID(ctx context.Context, id uint) (dao.Cafe, error)
	FindFirstByLocation(ctx context.Context, location string) (dao.Cafe, error)
	DeleteByID(ctx context.Context, id uint) error
	Update(ctx context.Context, cafe dao.Cafe) (dao.Cafe, error)
}

type CafeRepository struct {
	dao CafeDAO
}

func NewCafeRepository(dao CafeDAO) *CafeRepository {
	return &CafeRepository{
		dao: dao,
	}
}

func (r *CafeRepository) Create(ctx context.Context, cafe domain.Cafe) (domain.Cafe, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(cafe))
	if err != nil {
		return domain.Cafe{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CafeRepository) FindAll(ctx context.Context) ([]domain.Cafe, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	cafes := make([]domain.Cafe, 0, len(found))
	for _, c := range found {
		cafes = append(cafes, r.daoToDomain(c))
	}

	return cafes, nil
}

func (r *CafeRepository) FindByID(ctx context.Context, id uint) (domain.Cafe, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Cafe{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CafeRepository) FindByLocation(ctx context.Context, location string) (domain.Cafe, error) {
	found, err := r.dao.FindFirstByLocation(ctx, location)
	if err != nil {
		return domain.Cafe{}, fmt.Errorf("r.dao.FindFirstByLocation -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CafeRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteByID -> %w", err)
	}

	return nil
}

func (r *CafeRepository) Update(ctx context.Context, cafe domain.Cafe) (domain.Cafe, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(cafe))
	if err != nil {
		return domain.Cafe{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *CafeRepository) daoToDomain(c dao.Cafe) domain.Cafe {
	return domain.Cafe{
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
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (r *CafeRepository) domainToDAO(c domain.Cafe) dao.Cafe {
	return dao.Cafe{
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
