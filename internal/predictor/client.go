package predictor

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"shelfboard/backend/internal/cache"
	"shelfboard/backend/internal/domain"
)

// ErrPredictionUnavailable wraps any failure to get an answer out of the
// discount model service: network errors, non-2xx statuses, undecodable
// bodies. The caller shows one message for all of them.
var ErrPredictionUnavailable = errors.New("prediction service unavailable")

// Client calls the external discount model service.
type Client struct {
	baseURL string
	http    *http.Client
	cache   cache.PredictionCache
}

func NewClient(baseURL string, httpClient *http.Client, predictionCache cache.PredictionCache) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if predictionCache == nil {
		predictionCache = cache.NoopPredictionCache{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		cache:   predictionCache,
	}
}

// Validate rejects requests with an empty category or any numeric field equal
// to zero. Zero days-to-expiry and zero remaining stock are arguably valid
// inputs but have always been rejected by the form, so the check is kept
// as-is.
func (c *Client) Validate(req domain.PredictionRequest) error {
	if strings.TrimSpace(req.Category) == "" ||
		req.DaysToExpiry == 0 ||
		req.Price == 0 ||
		req.DemandScore == 0 ||
		req.RemainingStock == 0 {
		return domain.ErrMissingFields
	}
	return nil
}

// PredictDiscount validates, checks the cache, then posts to the model
// service. Cache failures are logged and never block the prediction.
func (c *Client) PredictDiscount(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResponse, error) {
	if err := c.Validate(req); err != nil {
		return domain.PredictionResponse{}, err
	}

	key := buildCacheKey(req)
	if cached, ok, err := c.cache.Get(ctx, key); err != nil {
		log.Printf("[predictor] cache get failed key=%s err=%v", key, err)
	} else if ok {
		return cached, nil
	}

	body, err := json.Marshal(req)
	if err != nil {
		return domain.PredictionResponse{}, fmt.Errorf("marshal prediction request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict_discount", bytes.NewReader(body))
	if err != nil {
		return domain.PredictionResponse{}, fmt.Errorf("build prediction request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return domain.PredictionResponse{}, fmt.Errorf("%w: %v", ErrPredictionUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return domain.PredictionResponse{}, fmt.Errorf("%w: status %d", ErrPredictionUnavailable, resp.StatusCode)
	}

	var prediction domain.PredictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return domain.PredictionResponse{}, fmt.Errorf("%w: decode response: %v", ErrPredictionUnavailable, err)
	}

	if err := c.cache.Set(ctx, key, prediction); err != nil {
		log.Printf("[predictor] cache set failed key=%s err=%v", key, err)
	}
	return prediction, nil
}

func buildCacheKey(req domain.PredictionRequest) string {
	raw := fmt.Sprintf("%s|%g|%g|%g|%g",
		strings.ToLower(strings.TrimSpace(req.Category)),
		req.DaysToExpiry, req.Price, req.DemandScore, req.RemainingStock)
	sum := sha1.Sum([]byte(raw))
	return "prediction:" + hex.EncodeToString(sum[:])
}
