package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/cafeandwifi/cafe-directory/internal/domain"
	"github.com/cafeandwifi/cafe-directory/internal/repository"
)

// CurrencyGlyph prefixes every stored coffee price.
const CurrencyGlyph = "£"

var (
	ErrCafeNameExists = repository.ErrCafeNameExists
	ErrCafeNotFound   = repository.ErrCafeNotFound

	// ErrNoCafes is returned when a random pick is requested from an
	// empty directory.
	ErrNoCafes = errors.New("no cafes in the directory")
)

type CafeRepository interface {
	Create(ctx context.Context, cafe domain.Cafe) (domain.Cafe, error)
	FindAll(ctx context.Context) ([]domain.Cafe, error)
	FindByID(ctx context.Context, id uint) (domain.Cafe, error)
	FindByLocation(ctx context.Context, location string) (domain.Cafe, error)
	Delete(ctx context.Context, id uint) error
	Update(ctx context.Context, cafe domain.Cafe) (domain.Cafe, error)
}

// ReportDispatcher delivers a closure report to the site admin.
type ReportDispatcher interface {
	DispatchReport(ctx context.Context, sender, message string) error
}

type CafeService struct {
	repo   CafeRepository
	mailer ReportDispatcher
}

func NewCafeService(repo CafeRepository, mailer ReportDispatcher) *CafeService {
	return &CafeService{
		repo:   repo,
		mailer: mailer,
	}
}

// AddCafe stores a new entry. The coffee price is stored with the
// currency glyph prepended regardless of how it was submitted.
func (s *CafeService) AddCafe(ctx context.Context, cafe domain.Cafe) (domain.Cafe, error) {
	cafe.CoffeePrice = CurrencyGlyph + cafe.CoffeePrice

	created, err := s.repo.Create(ctx, cafe)
	if err != nil {
		return domain.Cafe{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CafeService) ListCafes(ctx context.Context) ([]domain.Cafe, error) {
	cafes, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return cafes, nil
}

func (s *CafeService) GetCafe(ctx context.Context, id uint) (domain.Cafe, error) {
	cafe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Cafe{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return cafe, nil
}

// RandomCafe picks one entry uniformly at random. An empty directory is
// a defined error, not a crash.
func (s *CafeService) RandomCafe(ctx context.Context) (domain.Cafe, error) {
	cafes, err := s.repo.FindAll(ctx)
	if err != nil {
		return domain.Cafe{}, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	if len(cafes) == 0 {
		return domain.Cafe{}, ErrNoCafes
	}

	return cafes[rand.Intn(len(cafes))], nil
}

// SearchByLocation returns the first entry whose location matches exactly.
func (s *CafeService) SearchByLocation(ctx context.Context, location string) (domain.Cafe, error) {
	cafe, err := s.repo.FindByLocation(ctx, location)
	if err != nil {
		return domain.Cafe{}, fmt.Errorf("s.repo.FindByLocation -> %w", err)
	}

	return cafe, nil
}

// UpdateCafe overwrites every field of the row identified by cafe.ID.
// The price is stored verbatim; the update form validates the glyph
// prefix instead of adding it.
func (s *CafeService) UpdateCafe(ctx context.Context, cafe domain.Cafe) (domain.Cafe, error) {
	updated, err := s.repo.Update(ctx, cafe)
	if err != nil {
		return domain.Cafe{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *CafeService) DeleteCafe(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// ReportClosure mails a visitor's closure report for the given cafe to
// the site admin. The targeted cafe is returned even when dispatch
// fails so callers can still name it in the notice they show.
func (s *CafeService) ReportClosure(ctx context.Context, id uint, sender, message string) (domain.Cafe, error) {
	cafe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Cafe{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	body := fmt.Sprintf("%v\n-----\nCafe's Info: %v", message, cafe.Summary())
	if err = s.mailer.DispatchReport(ctx, sender, body); err != nil {
		return cafe, fmt.Errorf("s.mailer.DispatchReport -> %w", err)
	}

	return cafe, nil
}
