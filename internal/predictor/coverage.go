package predictor

import (
	"context"

	"dogmatch-workers/internal/catalog"
	"dogmatch-workers/internal/scoring"

	"golang.org/x/sync/errgroup"
)

// Coverage compares the remote model with the local catalog.
type Coverage struct {
	Model       *ModelInfo
	Features    int
	ModelBreeds int
	// Unresolved lists model breeds the catalog lacks. Predictions naming
	// one of them fall back to local scoring.
	Unresolved []string
}

func (c *Client) Coverage(ctx context.Context, breeds []scoring.Breed) (*Coverage, error) {
	var (
		info     *ModelInfo
		features *FeatureInfo
		names    []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		info, err = c.ModelInfo(gctx)
		return err
	})
	g.Go(func() (err error) {
		features, err = c.Features(gctx)
		return err
	})
	g.Go(func() (err error) {
		names, err = c.BreedNames(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cov := &Coverage{Model: info, Features: features.Features.Total, ModelBreeds: len(names)}
	for _, name := range names {
		if _, err := catalog.FindByName(breeds, name); err != nil {
			cov.Unresolved = append(cov.Unresolved, name)
		}
	}
	return cov, nil
}
