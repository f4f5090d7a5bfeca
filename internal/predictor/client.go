// Package predictor talks to the remote DogMatch prediction API.
package predictor

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dogmatch-workers/internal/common/config"
	apphttp "dogmatch-workers/internal/common/http"
	"dogmatch-workers/internal/common/logger"
	"dogmatch-workers/internal/scoring"

	gobreaker "github.com/sony/gobreaker/v2"
)

// ErrUnavailable covers transport failures, non-2xx answers, undecodable
// bodies and an open circuit breaker.
var ErrUnavailable = errors.New("prediction service unavailable")

type Client struct {
	baseURL string
	http    *apphttp.Client
	breaker *gobreaker.CircuitBreaker[any]
	logger  logger.Logger
}

func NewClient(cfg config.PredictorConfig, log logger.Logger) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    apphttp.NewClient(config.GetDuration(cfg.Timeout)),
		logger:  log.WithFields(map[string]interface{}{"component": "predictor"}),
	}

	threshold := cfg.Breaker.FailureThreshold
	c.breaker = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "dogmatch-predictor",
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    config.GetDuration(cfg.Breaker.Interval),
		Timeout:     config.GetDuration(cfg.Breaker.OpenTimeout),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// 4xx means we sent something the API rejects, not that it is down.
		IsSuccessful: func(err error) bool {
			var se *apphttp.StatusError
			if errors.As(err, &se) {
				return se.StatusCode < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed", map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			})
		},
	})
	return c
}

// State reports the circuit breaker state.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var out HealthStatus
	if err := c.get(ctx, "/api/health", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping fails unless the API reports a loaded model.
func (c *Client) Ping(ctx context.Context) error {
	h, err := c.Health(ctx)
	if err != nil {
		return err
	}
	if !h.ModelLoaded {
		return fmt.Errorf("%w: model not loaded (status %s)", ErrUnavailable, h.Status)
	}
	return nil
}

func (c *Client) ModelInfo(ctx context.Context) (*ModelInfo, error) {
	var out modelInfoResponse
	if err := c.get(ctx, "/api/model-info", &out); err != nil {
		return nil, err
	}
	return &out.Model, nil
}

// BreedNames lists the breeds the model can predict.
func (c *Client) BreedNames(ctx context.Context) ([]string, error) {
	var out breedsResponse
	if err := c.get(ctx, "/api/breeds", &out); err != nil {
		return nil, err
	}
	return out.Breeds, nil
}

func (c *Client) Features(ctx context.Context) (*FeatureInfo, error) {
	var out FeatureInfo
	if err := c.get(ctx, "/api/features", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Recommend(ctx context.Context, prefs scoring.UserPreferences) (*RecommendResponse, error) {
	var out RecommendResponse
	start := time.Now()
	err := c.call(ctx, func() error {
		return c.http.PostJSON(ctx, c.baseURL+"/api/recommend", NewRecommendRequest(prefs), &out)
	})
	if err != nil {
		return nil, err
	}
	if len(out.Predictions) == 0 {
		return nil, fmt.Errorf("%w: empty prediction list", ErrUnavailable)
	}

	c.logger.Debug("prediction received", map[string]interface{}{
		"breed":      out.Predictions[0].Breed,
		"similar":    len(out.SimilarBreeds),
		"durationMs": time.Since(start).Milliseconds(),
	})
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.call(ctx, func() error {
		return c.http.GetJSON(ctx, c.baseURL+path, out)
	})
}

func (c *Client) call(ctx context.Context, fn func() error) error {
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, fn()
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: circuit %s", ErrUnavailable, c.breaker.State())
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, ctxErr)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
