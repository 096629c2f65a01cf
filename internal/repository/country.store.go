package repository

import (
	"context"
	"fmt"
	"iter"

	"country-service/internal/domain"
	xerrors "country-service/pkg/xerrors"
)

type CountryRepository interface {
	Get(ctx context.Context, name string) (domain.Country, error)
	All() iter.Seq[domain.Country]
	FilterByPopulation(lo, hi int64) iter.Seq[domain.Country]
	Len() int
}

// Store is the in-memory country catalogue. It is never written after
// NewStore returns, so concurrent readers need no locking.
type Store struct {
	byName map[string]int
	rows   []domain.Country
}

var _ CountryRepository = (*Store)(nil)

func NewStore(countries []domain.Country) (*Store, error) {
	s := &Store{
		byName: make(map[string]int, len(countries)),
		rows:   make([]domain.Country, 0, len(countries)),
	}
	for _, c := range countries {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := s.byName[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", xerrors.ErrInvalidRecord, c.Name)
		}
		s.byName[c.Name] = len(s.rows)
		s.rows = append(s.rows, c)
	}
	return s, nil
}

// Get returns the record stored under name. Matching is exact and case-sensitive.
func (s *Store) Get(_ context.Context, name string) (domain.Country, error) {
	i, ok := s.byName[name]
	if !ok {
		return domain.Country{}, xerrors.ErrNotFound
	}
	return s.rows[i], nil
}

func (s *Store) All() iter.Seq[domain.Country] {
	return func(yield func(domain.Country) bool) {
		for _, c := range s.rows {
			if !yield(c) {
				return
			}
		}
	}
}

// FilterByPopulation yields, in load order, every record with lo <= population <= hi.
func (s *Store) FilterByPopulation(lo, hi int64) iter.Seq[domain.Country] {
	return func(yield func(domain.Country) bool) {
		for c := range s.All() {
			if c.Population < lo || c.Population > hi {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

func (s *Store) Len() int {
	return len(s.rows)
}
