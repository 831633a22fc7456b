package cache

import (
	"context"

	"shelfboard/backend/internal/domain"
)

// PredictionCache stores discount predictions keyed by a digest of the
// request. A miss is (zero value, false, nil); errors are reserved for
// backend failures.
type PredictionCache interface {
	Get(ctx context.Context, key string) (domain.PredictionResponse, bool, error)
	Set(ctx context.Context, key string, value domain.PredictionResponse) error
}

// NoopPredictionCache always misses. It keeps the predictor path identical
// when no Redis is configured.
type NoopPredictionCache struct{}

func (NoopPredictionCache) Get(context.Context, string) (domain.PredictionResponse, bool, error) {
	return domain.PredictionResponse{}, false, nil
}

func (NoopPredictionCache) Set(context.Context, string, domain.PredictionResponse) error {
	return nil
}
