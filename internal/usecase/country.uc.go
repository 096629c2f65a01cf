package usecase

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"country-service/internal/domain"
	"country-service/internal/repository"
	xerrors "country-service/pkg/xerrors"
)

type CountryUsecase struct {
	countryRepo repository.CountryRepository
}

// NewCountryUsecase initializes a new CountryUsecase
func NewCountryUsecase(countryRepo repository.CountryRepository) *CountryUsecase {
	return &CountryUsecase{
		countryRepo: countryRepo,
	}
}

// GetCountry returns the full record stored under name
func (u *CountryUsecase) GetCountry(ctx context.Context, name string) (domain.Country, error) {
	return u.countryRepo.Get(ctx, name)
}

// GetField returns one scalar field of the record as text
func (u *CountryUsecase) GetField(ctx context.Context, name string, field domain.Field) (string, error) {
	c, err := u.countryRepo.Get(ctx, name)
	if err != nil {
		return "", err
	}
	return c.Value(field)
}

// ListCountries returns records whose population lies within [gt, lt].
// Bounds come straight from the query string; blank means the default.
func (u *CountryUsecase) ListCountries(ctx context.Context, gt, lt string) ([]domain.Country, error) {
	lo, err := parseBound("gt", gt, domain.DefaultLowerBound)
	if err != nil {
		return nil, err
	}
	hi, err := parseBound("lt", lt, domain.DefaultUpperBound)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	countries := slices.Collect(u.countryRepo.FilterByPopulation(lo, hi))
	if countries == nil {
		countries = []domain.Country{}
	}
	return countries, nil
}

func parseBound(param, raw string, fallback int64) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &xerrors.ParamError{Param: param, Value: raw}
	}
	return v, nil
}
