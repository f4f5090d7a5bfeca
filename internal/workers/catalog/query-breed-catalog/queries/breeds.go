package queries

import (
	"context"
	"fmt"
	"time"

	"dogmatch-workers/internal/scoring"
)

func AllBreeds(ctx context.Context, store Store, _ map[string]interface{}) (interface{}, int, int64, error) {
	start := time.Now()
	breeds, err := store.AllBreeds(ctx)
	if err != nil {
		return nil, 0, 0, err
	}
	return breeds, len(breeds), time.Since(start).Milliseconds(), nil
}

func BreedByName(ctx context.Context, store Store, params map[string]interface{}) (interface{}, int, int64, error) {
	name, err := stringParam(params, "breedName")
	if err != nil {
		return nil, 0, 0, err
	}

	start := time.Now()
	breed, err := store.BreedByName(ctx, name)
	if err != nil {
		return nil, 0, 0, err
	}
	return breed, 1, time.Since(start).Milliseconds(), nil
}

func BreedsByGroup(ctx context.Context, store Store, params map[string]interface{}) (interface{}, int, int64, error) {
	raw, err := stringParam(params, "breedGroup")
	if err != nil {
		return nil, 0, 0, err
	}
	group, err := scoring.ParseBreedGroup(raw)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrInvalidParam, err)
	}

	start := time.Now()
	breeds, err := store.BreedsByGroup(ctx, group)
	if err != nil {
		return nil, 0, 0, err
	}
	return breeds, len(breeds), time.Since(start).Milliseconds(), nil
}

func BreedsBySize(ctx context.Context, store Store, params map[string]interface{}) (interface{}, int, int64, error) {
	raw, err := stringParam(params, "size")
	if err != nil {
		return nil, 0, 0, err
	}
	size, err := scoring.ParseSize(raw)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %v", ErrInvalidParam, err)
	}

	start := time.Now()
	breeds, err := store.BreedsBySize(ctx, size)
	if err != nil {
		return nil, 0, 0, err
	}
	return breeds, len(breeds), time.Since(start).Milliseconds(), nil
}
