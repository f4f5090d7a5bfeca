package recommendation

import (
	"context"
	stderrors "errors"

	"dogmatch-workers/internal/catalog"
	"dogmatch-workers/internal/common/errors"
	"dogmatch-workers/internal/scoring"
)

// LoadCatalog fetches the catalog and maps failures onto worker errors. An
// empty catalog is EMPTY_CATALOG.
func LoadCatalog(ctx context.Context, f catalog.Fetcher) ([]scoring.Breed, error) {
	breeds, err := f.FetchBreeds(ctx)
	if err != nil {
		return nil, CatalogError(err)
	}
	if len(breeds) == 0 {
		return nil, errors.FromScoringError(scoring.ErrEmptyCatalog)
	}
	return breeds, nil
}

func CatalogError(err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.NewQueryTimeoutError("all_breeds")
	}
	return errors.NewCatalogUnavailableError(err)
}
