// Package catalog loads the breed catalog the scoring engine ranks against.
package catalog

import (
	"context"
	"errors"
	"strings"

	"dogmatch-workers/internal/scoring"
)

var ErrBreedNotFound = errors.New("breed not found")

// Fetcher returns the full breed catalog.
type Fetcher interface {
	FetchBreeds(ctx context.Context) ([]scoring.Breed, error)
}

// StaticFetcher serves a fixed, in-memory catalog.
type StaticFetcher struct {
	breeds []scoring.Breed
}

func NewStaticFetcher(breeds []scoring.Breed) *StaticFetcher {
	return &StaticFetcher{breeds: breeds}
}

// FetchBreeds returns a copy so callers cannot mutate the fixture.
func (f *StaticFetcher) FetchBreeds(ctx context.Context) ([]scoring.Breed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]scoring.Breed, len(f.breeds))
	copy(out, f.breeds)
	return out, nil
}

// FindByName returns the index of the breed whose name matches
// case-insensitively, ignoring surrounding whitespace.
func FindByName(breeds []scoring.Breed, name string) (int, error) {
	name = strings.TrimSpace(name)
	for i, b := range breeds {
		if strings.EqualFold(b.Name, name) {
			return i, nil
		}
	}
	return -1, ErrBreedNotFound
}
