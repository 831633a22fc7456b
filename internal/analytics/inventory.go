package analytics

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"shelfboard/backend/internal/domain"
)

const (
	DefaultLowStockThreshold = 100
	DefaultExpiryHorizonDays = 30
)

// InventoryOptions tunes the inventory health checks. The zero value is not
// useful; start from DefaultInventoryOptions.
type InventoryOptions struct {
	LowStockThreshold int
	ExpiryHorizonDays int
}

func DefaultInventoryOptions() InventoryOptions {
	return InventoryOptions{
		LowStockThreshold: DefaultLowStockThreshold,
		ExpiryHorizonDays: DefaultExpiryHorizonDays,
	}
}

// AnalyzeInventory flags low-stock and expiring products. Low stock is
// strictly below the threshold, sorted by stock ascending. Expiring is any
// expiry date up to and including referenceDate plus the horizon; items
// already past their date are included, sorted by expiry ascending. Rows
// whose stock or expiry cell does not parse are left out of the respective
// set rather than guessed at.
func AnalyzeInventory(records []domain.InventoryRecord, referenceDate time.Time, opts InventoryOptions) domain.InventorySummary {
	summary := domain.InventorySummary{
		LowStockItems:     []domain.InventoryRecord{},
		ExpiringSoon:      []domain.InventoryRecord{},
		LowStockThreshold: opts.LowStockThreshold,
		ExpiryHorizonDays: opts.ExpiryHorizonDays,
	}

	horizon := dateOnly(referenceDate).AddDate(0, 0, opts.ExpiryHorizonDays)

	type stockEntry struct {
		record domain.InventoryRecord
		stock  int
	}
	type expiryEntry struct {
		record domain.InventoryRecord
		expiry time.Time
	}
	lowStock := []stockEntry{}
	expiring := []expiryEntry{}

	for _, record := range records {
		if stock, err := strconv.Atoi(strings.TrimSpace(record.StockAvailable)); err == nil {
			if stock < opts.LowStockThreshold {
				lowStock = append(lowStock, stockEntry{record: record, stock: stock})
			}
		}
		if expiry, ok := parseRecordDate(record.ExpiryDate); ok {
			if !dateOnly(expiry).After(horizon) {
				expiring = append(expiring, expiryEntry{record: record, expiry: dateOnly(expiry)})
			}
		}
	}

	sort.SliceStable(lowStock, func(i, j int) bool {
		return lowStock[i].stock < lowStock[j].stock
	})
	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].expiry.Before(expiring[j].expiry)
	})

	for _, entry := range lowStock {
		summary.LowStockItems = append(summary.LowStockItems, entry.record)
	}
	for _, entry := range expiring {
		summary.ExpiringSoon = append(summary.ExpiringSoon, entry.record)
	}
	return summary
}
