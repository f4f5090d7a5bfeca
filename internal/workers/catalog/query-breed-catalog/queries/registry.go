package queries

import (
	"context"
	"errors"
	"fmt"

	"dogmatch-workers/internal/scoring"
)

var (
	ErrMissingParam     = errors.New("missing required parameter")
	ErrInvalidParam     = errors.New("invalid parameter")
	ErrUnknownQueryType = errors.New("unknown query type")
)

type QueryType string

const (
	QueryTypeAllBreeds     QueryType = "all_breeds"
	QueryTypeBreedByName   QueryType = "breed_by_name"
	QueryTypeBreedsByGroup QueryType = "breeds_by_group"
	QueryTypeBreedsBySize  QueryType = "breeds_by_size"
)

// Store is the read side of catalog.PostgresStore.
type Store interface {
	AllBreeds(ctx context.Context) ([]scoring.Breed, error)
	BreedByName(ctx context.Context, name string) (*scoring.Breed, error)
	BreedsByGroup(ctx context.Context, group scoring.BreedGroup) ([]scoring.Breed, error)
	BreedsBySize(ctx context.Context, size scoring.Size) ([]scoring.Breed, error)
}

// QueryFunc returns: data, rowCount, executionTime (ms), error
type QueryFunc func(ctx context.Context, store Store, params map[string]interface{}) (interface{}, int, int64, error)

var Registry = map[QueryType]QueryFunc{
	QueryTypeAllBreeds:     AllBreeds,
	QueryTypeBreedByName:   BreedByName,
	QueryTypeBreedsByGroup: BreedsByGroup,
	QueryTypeBreedsBySize:  BreedsBySize,
}

func Execute(ctx context.Context, store Store, queryType QueryType, params map[string]interface{}) (interface{}, int, int64, error) {
	fn, exists := Registry[queryType]
	if !exists {
		return nil, 0, 0, fmt.Errorf("%w: %s", ErrUnknownQueryType, queryType)
	}
	return fn(ctx, store, params)
}

func stringParam(params map[string]interface{}, key string) (string, error) {
	v, ok := params[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, key)
	}
	return v, nil
}
