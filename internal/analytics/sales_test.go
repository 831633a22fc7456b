package analytics

import (
	"fmt"
	"math"
	"reflect"
	"testing"
	"time"

	"shelfboard/backend/internal/domain"
)

func ref(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestAggregateSalesPreviousMonthWindow(t *testing.T) {
	records := []domain.SalesRecord{
		{ProductName: "Milk", Category: "Dairy", Date: "2024-05-03", ActualDiscountPrice: "10.00"},
		{ProductName: "Milk", Category: "Dairy", Date: "2024-05-10", ActualDiscountPrice: "5.00"},
		{ProductName: "Milk", Category: "Dairy", Date: "2024-06-01", ActualDiscountPrice: "99.00"},
		{ProductName: "Milk", Category: "Dairy", Date: "2024-04-30", ActualDiscountPrice: "99.00"},
	}

	summary := AggregateSales(records, ref(2024, time.June, 15))

	if summary.TotalRevenue != 15.00 {
		t.Fatalf("expected total revenue 15.00, got %v", summary.TotalRevenue)
	}
	if summary.WindowLabel != "May 2024" {
		t.Fatalf("expected window label May 2024, got %q", summary.WindowLabel)
	}
	if len(summary.CategoryTotals) != 1 || summary.CategoryTotals[0].Category != "Dairy" || summary.CategoryTotals[0].Amount != 15.00 {
		t.Fatalf("unexpected category totals: %v", summary.CategoryTotals)
	}

	wantSeries := []domain.DailyAmount{
		{Date: "2024-05-03", Amount: 10.00},
		{Date: "2024-05-10", Amount: 5.00},
	}
	if !reflect.DeepEqual(summary.DailySeries, wantSeries) {
		t.Fatalf("unexpected daily series: %v", summary.DailySeries)
	}
}

func TestAggregateSalesWindowBoundsInclusive(t *testing.T) {
	records := []domain.SalesRecord{
		{ProductName: "A", Category: "X", Date: "2024-05-01", ActualDiscountPrice: "1"},
		{ProductName: "B", Category: "X", Date: "2024-05-31", ActualDiscountPrice: "2"},
	}
	summary := AggregateSales(records, ref(2024, time.June, 15))
	if summary.TotalRevenue != 3 {
		t.Fatalf("expected both boundary days included, total %v", summary.TotalRevenue)
	}
}

func TestAggregateSalesEmptyWindow(t *testing.T) {
	records := []domain.SalesRecord{
		{ProductName: "Milk", Category: "Dairy", Date: "2024-01-15", ActualDiscountPrice: "10.00"},
	}
	summary := AggregateSales(records, ref(2024, time.June, 15))

	if summary.TotalRevenue != 0 {
		t.Fatalf("expected zero revenue, got %v", summary.TotalRevenue)
	}
	if len(summary.CategoryTotals) != 0 || len(summary.DailySeries) != 0 {
		t.Fatalf("expected empty aggregates, got %v / %v", summary.CategoryTotals, summary.DailySeries)
	}
	if len(summary.TopSellers) != 0 || len(summary.BottomSellers) != 0 {
		t.Fatalf("expected empty rankings")
	}
}

func TestAggregateSalesIdempotent(t *testing.T) {
	records := []domain.SalesRecord{
		{ProductName: "Milk", Category: "Dairy", Date: "2024-05-03", ActualDiscountPrice: "10.00"},
		{ProductName: "Eggs", Category: "Dairy", Date: "2024-05-04", ActualDiscountPrice: "4.00"},
	}
	first := AggregateSales(records, ref(2024, time.June, 1))
	second := AggregateSales(records, ref(2024, time.June, 1))
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input produced different summaries")
	}
}

func TestAggregateSalesTopBottomSellers(t *testing.T) {
	var records []domain.SalesRecord
	for i := 1; i <= 12; i++ {
		records = append(records, domain.SalesRecord{
			ProductName:         fmt.Sprintf("P%02d", i),
			Category:            "X",
			Date:                "2024-05-10",
			ActualDiscountPrice: fmt.Sprintf("%d", i),
		})
	}

	summary := AggregateSales(records, ref(2024, time.June, 15))

	if len(summary.TopSellers) != 5 || len(summary.BottomSellers) != 5 {
		t.Fatalf("expected 5 and 5, got %d and %d", len(summary.TopSellers), len(summary.BottomSellers))
	}

	// Top is descending from the highest amount.
	wantTop := []string{"P12", "P11", "P10", "P09", "P08"}
	for i, want := range wantTop {
		if summary.TopSellers[i].ProductName != want {
			t.Fatalf("top[%d] = %s, want %s", i, summary.TopSellers[i].ProductName, want)
		}
	}

	// Bottom is ascending from the lowest amount.
	wantBottom := []string{"P01", "P02", "P03", "P04", "P05"}
	for i, want := range wantBottom {
		if summary.BottomSellers[i].ProductName != want {
			t.Fatalf("bottom[%d] = %s, want %s", i, summary.BottomSellers[i].ProductName, want)
		}
	}

	// With 12 products the two sets never overlap.
	seen := map[string]bool{}
	for _, p := range summary.TopSellers {
		seen[p.ProductName] = true
	}
	for _, p := range summary.BottomSellers {
		if seen[p.ProductName] {
			t.Fatalf("product %s in both rankings", p.ProductName)
		}
	}
}

func TestAggregateSalesCategoryFirstSeenOrder(t *testing.T) {
	records := []domain.SalesRecord{
		{ProductName: "A", Category: "Dairy", Date: "2024-05-01", ActualDiscountPrice: "1"},
		{ProductName: "B", Category: "Bakery", Date: "2024-05-02", ActualDiscountPrice: "2"},
		{ProductName: "C", Category: "Dairy", Date: "2024-05-03", ActualDiscountPrice: "3"},
	}
	summary := AggregateSales(records, ref(2024, time.June, 15))

	if len(summary.CategoryTotals) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(summary.CategoryTotals))
	}
	if summary.CategoryTotals[0].Category != "Dairy" || summary.CategoryTotals[1].Category != "Bakery" {
		t.Fatalf("first-seen order lost: %v", summary.CategoryTotals)
	}
	if summary.CategoryTotals[0].Amount != 4 {
		t.Fatalf("expected Dairy total 4, got %v", summary.CategoryTotals[0].Amount)
	}
}

func TestAggregateSalesNonNumericPricePropagatesNaN(t *testing.T) {
	records := []domain.SalesRecord{
		{ProductName: "A", Category: "X", Date: "2024-05-01", ActualDiscountPrice: "10"},
		{ProductName: "A", Category: "X", Date: "2024-05-02", ActualDiscountPrice: "oops"},
	}
	summary := AggregateSales(records, ref(2024, time.June, 15))

	if !math.IsNaN(summary.TotalRevenue) {
		t.Fatalf("expected NaN total, got %v", summary.TotalRevenue)
	}
	if !math.IsNaN(summary.CategoryTotals[0].Amount) {
		t.Fatalf("expected NaN category total, got %v", summary.CategoryTotals[0].Amount)
	}
}

func TestAggregateSalesUnparsableDateExcluded(t *testing.T) {
	records := []domain.SalesRecord{
		{ProductName: "A", Category: "X", Date: "not-a-date", ActualDiscountPrice: "10"},
		{ProductName: "A", Category: "X", Date: "2024-05-02", ActualDiscountPrice: "5"},
	}
	summary := AggregateSales(records, ref(2024, time.June, 15))
	if summary.TotalRevenue != 5 {
		t.Fatalf("expected 5, got %v", summary.TotalRevenue)
	}
}

func TestAggregateSalesJanuaryReference(t *testing.T) {
	records := []domain.SalesRecord{
		{ProductName: "A", Category: "X", Date: "2023-12-15", ActualDiscountPrice: "7"},
	}
	summary := AggregateSales(records, ref(2024, time.January, 10))
	if summary.TotalRevenue != 7 {
		t.Fatalf("expected December of prior year in window, got %v", summary.TotalRevenue)
	}
	if summary.WindowLabel != "December 2023" {
		t.Fatalf("unexpected window label %q", summary.WindowLabel)
	}
}
