package predictor

import (
	"context"
	"log"
	"math"
	"time"

	"shelfboard/backend/internal/domain"
	"shelfboard/backend/internal/ledger"
)

// SuggestStrategy asks the model service for a discount when an item first
// enters the ledger, deriving days-to-expiry from the item's expiry date and
// remaining stock from its quantity. Any failure falls back to the random
// placeholder, so inserts never block on the model service being down.
//
// This is opt-in wiring; the default server setup keeps the random strategy.
type SuggestStrategy struct {
	Client   *Client
	Category string
	Fallback ledger.DiscountStrategy
	Now      func() time.Time
}

func (s SuggestStrategy) SuggestDiscount(ctx context.Context, item domain.ItemInput) int {
	fallback := s.Fallback
	if fallback == nil {
		fallback = ledger.RandomDiscount{}
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	expiry, err := time.Parse("2006-01-02", item.ExpiryDate)
	if err != nil {
		return fallback.SuggestDiscount(ctx, item)
	}
	days := expiry.Sub(now()).Hours() / 24
	if days < 1 {
		days = 1
	}

	resp, err := s.Client.PredictDiscount(ctx, domain.PredictionRequest{
		Category:       s.Category,
		DaysToExpiry:   days,
		Price:          1,
		DemandScore:    1,
		RemainingStock: float64(item.Quantity),
	})
	if err != nil {
		log.Printf("[predictor] suggest fallback id=%s err=%v", item.ID, err)
		return fallback.SuggestDiscount(ctx, item)
	}
	return int(math.Round(resp.DiscountPercentage))
}
