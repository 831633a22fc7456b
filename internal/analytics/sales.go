package analytics

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"shelfboard/backend/internal/domain"
)

// dateLayouts covers the formats the retail exports have been seen using.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

func parseRecordDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// parseAmount parses a monetary cell. Non-numeric values become NaN and
// propagate into the sums, matching how the dashboard always behaved; callers
// that care use math.IsNaN.
func parseAmount(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return value
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// AggregateSales derives the previous-month report from raw sales records.
// The window is the full calendar month preceding referenceDate's month,
// inclusive on both ends; records with unparsable dates are excluded. The
// function is pure: same records and reference date, same summary.
func AggregateSales(records []domain.SalesRecord, referenceDate time.Time) domain.SalesSummary {
	windowStart := time.Date(referenceDate.Year(), referenceDate.Month()-1, 1, 0, 0, 0, 0, time.UTC)
	windowEnd := time.Date(referenceDate.Year(), referenceDate.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	summary := domain.SalesSummary{
		WindowLabel:    windowStart.Format("January 2006"),
		CategoryTotals: []domain.CategoryAmount{},
		DailySeries:    []domain.DailyAmount{},
		TopSellers:     []domain.ProductAmount{},
		BottomSellers:  []domain.ProductAmount{},
	}

	categoryIndex := make(map[string]int)
	productIndex := make(map[string]int)
	products := []domain.ProductAmount{}
	daily := make(map[string]float64)

	for _, record := range records {
		saleDate, ok := parseRecordDate(record.Date)
		if !ok {
			continue
		}
		day := dateOnly(saleDate)
		if day.Before(windowStart) || day.After(windowEnd) {
			continue
		}

		amount := parseAmount(record.ActualDiscountPrice)
		summary.TotalRevenue += amount

		if idx, seen := categoryIndex[record.Category]; seen {
			summary.CategoryTotals[idx].Amount += amount
		} else {
			categoryIndex[record.Category] = len(summary.CategoryTotals)
			summary.CategoryTotals = append(summary.CategoryTotals, domain.CategoryAmount{
				Category: record.Category,
				Amount:   amount,
			})
		}

		daily[day.Format("2006-01-02")] += amount

		if idx, seen := productIndex[record.ProductName]; seen {
			products[idx].Amount += amount
		} else {
			productIndex[record.ProductName] = len(products)
			products = append(products, domain.ProductAmount{
				ProductName: record.ProductName,
				Amount:      amount,
			})
		}
	}

	dates := make([]string, 0, len(daily))
	for date := range daily {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	for _, date := range dates {
		summary.DailySeries = append(summary.DailySeries, domain.DailyAmount{Date: date, Amount: daily[date]})
	}

	// Stable sort keeps first-seen order between revenue ties.
	ranked := make([]domain.ProductAmount, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount > ranked[j].Amount
	})

	topCount := len(ranked)
	if topCount > 5 {
		topCount = 5
	}
	summary.TopSellers = append(summary.TopSellers, ranked[:topCount]...)

	tailStart := len(ranked) - 5
	if tailStart < 0 {
		tailStart = 0
	}
	tail := ranked[tailStart:]
	for i := len(tail) - 1; i >= 0; i-- {
		summary.BottomSellers = append(summary.BottomSellers, tail[i])
	}

	return summary
}
