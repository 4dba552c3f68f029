package accounting

import (
	"sort"

	"github.com/SscSPs/finreport_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

type salesBucket struct {
	sales     decimal.Decimal
	sushi     decimal.Decimal
	locations map[string]struct{}
	openDays  map[[2]string]struct{}
}

// PrepareAverageSales groups labelled sales rows by period in one pass. Every sale
// counts towards the total, sushi quantity is summed over all units, and a location
// is open on a day when it sold sushi by the kilogram. Periods are returned ascending.
func PrepareAverageSales(rows []domain.SalesRow) []domain.AverageSalesRow {
	buckets := make(map[string]*salesBucket)
	for _, row := range rows {
		b, ok := buckets[row.Period]
		if !ok {
			b = &salesBucket{
				locations: make(map[string]struct{}),
				openDays:  make(map[[2]string]struct{}),
			}
			buckets[row.Period] = b
		}
		b.sales = b.sales.Add(row.Amount)
		b.locations[row.LocationName] = struct{}{}
		if row.ProductCategory == domain.ProductCategorySushi {
			b.sushi = b.sushi.Add(row.Quantity)
		}
		if row.IsWeighedSushi() {
			b.openDays[[2]string{row.LocationName, row.Date.Format("2006-01-02")}] = struct{}{}
		}
	}

	out := make([]domain.AverageSalesRow, 0, len(buckets))
	for period, b := range buckets {
		days := decimal.NewFromInt(int64(len(b.openDays)))
		out = append(out, domain.AverageSalesRow{
			Period:             period,
			TotalSales:         b.sales,
			TotalQuantitySushi: b.sushi,
			UniqueLocations:    len(b.locations),
			OperationalDays:    len(b.openDays),
			AverageDailySales:  safeRatio(b.sales, days),
			AverageDailySushi:  safeRatio(b.sushi, days),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}
