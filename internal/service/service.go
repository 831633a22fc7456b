package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"shelfboard/backend/internal/analytics"
	"shelfboard/backend/internal/csvtable"
	"shelfboard/backend/internal/dataset"
	"shelfboard/backend/internal/domain"
	"shelfboard/backend/internal/ledger"
	"shelfboard/backend/internal/predictor"
)

// Service wires the datasets, the ledger and the predictor behind one API.
// Dashboard figures are recomputed from the source data on every call; there
// is no incremental state to drift.
type Service struct {
	sales     *dataset.Loader
	inventory *dataset.Loader
	ledger    *ledger.Ledger
	predictor *predictor.Client
	opts      analytics.InventoryOptions
}

func New(sales, inventory *dataset.Loader, l *ledger.Ledger, p *predictor.Client, opts analytics.InventoryOptions) *Service {
	return &Service{
		sales:     sales,
		inventory: inventory,
		ledger:    l,
		predictor: p,
		opts:      opts,
	}
}

func (s *Service) SalesSummary(ctx context.Context, referenceDate time.Time) domain.SalesSummary {
	rows := s.sales.Load(ctx)
	return analytics.AggregateSales(salesRecords(rows), referenceDate)
}

func (s *Service) InventorySummary(ctx context.Context, referenceDate time.Time) domain.InventorySummary {
	rows := s.inventory.Load(ctx)
	return analytics.AnalyzeInventory(inventoryRecords(rows), referenceDate, s.opts)
}

// DashboardOverview loads both datasets concurrently. Loaders never return
// errors, so the group exists purely for the fan-out.
func (s *Service) DashboardOverview(ctx context.Context, referenceDate time.Time) domain.DashboardOverview {
	var overview domain.DashboardOverview

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		overview.Sales = s.SalesSummary(ctx, referenceDate)
		return nil
	})
	g.Go(func() error {
		overview.Inventory = s.InventorySummary(ctx, referenceDate)
		return nil
	})
	_ = g.Wait()

	return overview
}

// AddItems validates then upserts the batch, returning the full ledger state.
func (s *Service) AddItems(ctx context.Context, inputs []domain.ItemInput) ([]domain.InventoryItem, error) {
	for _, input := range inputs {
		if strings.TrimSpace(input.ID) == "" ||
			strings.TrimSpace(input.Name) == "" ||
			input.Quantity == 0 ||
			strings.TrimSpace(input.ExpiryDate) == "" {
			return nil, domain.ErrMissingFields
		}
	}
	return s.ledger.BulkUpsert(ctx, inputs), nil
}

func (s *Service) RemoveItems(removals []domain.RemovalInput) ([]domain.InventoryItem, error) {
	for _, removal := range removals {
		if strings.TrimSpace(removal.ID) == "" || removal.Quantity == 0 {
			return nil, domain.ErrMissingFields
		}
	}
	return s.ledger.BulkRemove(removals), nil
}

func (s *Service) SearchItems(query string) []domain.InventoryItem {
	return s.ledger.Search(query)
}

func (s *Service) PredictDiscount(ctx context.Context, req domain.PredictionRequest) (domain.PredictionResponse, error) {
	return s.predictor.PredictDiscount(ctx, req)
}

func salesRecords(rows []csvtable.Row) []domain.SalesRecord {
	records := make([]domain.SalesRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.SalesRecordFromRow(row))
	}
	return records
}

func inventoryRecords(rows []csvtable.Row) []domain.InventoryRecord {
	records := make([]domain.InventoryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, domain.InventoryRecordFromRow(row))
	}
	return records
}
