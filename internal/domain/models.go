package domain

import (
	"errors"

	"shelfboard/backend/internal/csvtable"
)

// ErrMissingFields is returned when a form submission is missing a required
// field. The HTTP layer translates it into the inline message the frontend
// shows next to the form.
var ErrMissingFields = errors.New("missing required fields")

// SalesRecord is the logical view over one row of sales_data.csv. Values stay
// raw strings here; numeric and date fields are parsed on demand by the
// aggregator so one malformed cell degrades a single figure instead of
// aborting the batch.
type SalesRecord struct {
	ProductID           string `json:"product_id"`
	ProductName         string `json:"product_name"`
	Category            string `json:"category"`
	Brand               string `json:"brand"`
	Price               string `json:"price"`
	MRP                 string `json:"mrp"`
	Date                string `json:"date"`
	ActualDiscountPrice string `json:"actual_discount_price"`
	Margin              string `json:"margin"`
	DiscountPercentage  string `json:"discount_percentage"`
}

// InventoryRecord is the logical view over one row of static_data.csv.
type InventoryRecord struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Category       string `json:"category"`
	Brand          string `json:"brand"`
	Price          string `json:"price"`
	MRP            string `json:"mrp"`
	ExpiryDate     string `json:"expiry_date"`
	StockAvailable string `json:"stock_available"`
}

func SalesRecordFromRow(row csvtable.Row) SalesRecord {
	return SalesRecord{
		ProductID:           row["product_id"],
		ProductName:         row["product_name"],
		Category:            row["category"],
		Brand:               row["brand"],
		Price:               row["price"],
		MRP:                 row["mrp"],
		Date:                row["date"],
		ActualDiscountPrice: row["actual_discount_price"],
		Margin:              row["margin"],
		DiscountPercentage:  row["discount_percentage"],
	}
}

func InventoryRecordFromRow(row csvtable.Row) InventoryRecord {
	return InventoryRecord{
		ProductID:      row["product_id"],
		ProductName:    row["product_name"],
		Category:       row["category"],
		Brand:          row["brand"],
		Price:          row["price"],
		MRP:            row["mrp"],
		ExpiryDate:     row["expiry_date"],
		StockAvailable: row["stock_available"],
	}
}

type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type DailyAmount struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type ProductAmount struct {
	ProductName string  `json:"product_name"`
	Amount      float64 `json:"amount"`
}

// SalesSummary is the previous-month aggregate the dashboard charts render.
// CategoryTotals keeps first-seen accumulation order, DailySeries is sorted
// ascending by date, TopSellers is descending by amount and BottomSellers
// ascending. Everything is recomputed in full on every request.
type SalesSummary struct {
	TotalRevenue   float64          `json:"total_revenue"`
	WindowLabel    string           `json:"window_label"`
	CategoryTotals []CategoryAmount `json:"category_totals"`
	DailySeries    []DailyAmount    `json:"daily_series"`
	TopSellers     []ProductAmount  `json:"top_sellers"`
	BottomSellers  []ProductAmount  `json:"bottom_sellers"`
}

type InventorySummary struct {
	LowStockItems     []InventoryRecord `json:"low_stock_items"`
	ExpiringSoon      []InventoryRecord `json:"expiring_soon"`
	LowStockThreshold int               `json:"low_stock_threshold"`
	ExpiryHorizonDays int               `json:"expiry_horizon_days"`
}

type DashboardOverview struct {
	Sales     SalesSummary     `json:"sales"`
	Inventory InventorySummary `json:"inventory"`
}

// InventoryItem is one entry of the in-memory product ledger. At most one
// item exists per ID, and Quantity never rests at zero or below: a removal
// that would do so deletes the item instead.
type InventoryItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	ExpiryDate string `json:"expiry_date"`
	Discount   int    `json:"discount"`
}

type ItemInput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	ExpiryDate string `json:"expiry_date"`
}

type RemovalInput struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

type AddItemsRequest struct {
	Items []ItemInput `json:"items"`
}

type RemoveItemsRequest struct {
	Items []RemovalInput `json:"items"`
}

type ItemListResponse struct {
	Items []InventoryItem `json:"items"`
}

// PredictionRequest is the payload forwarded to the discount model service.
type PredictionRequest struct {
	Category       string  `json:"category"`
	DaysToExpiry   float64 `json:"days_to_expiry"`
	Price          float64 `json:"price"`
	DemandScore    float64 `json:"demand_score"`
	RemainingStock float64 `json:"remaining_stock"`
}

type PredictionResponse struct {
	DiscountPercentage float64 `json:"discount_percentage"`
}
