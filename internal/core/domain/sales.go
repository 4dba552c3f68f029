package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product category and unit that mark weighed sushi sales.
const (
	ProductCategorySushi = "Sushi"
	UnitKilogram         = "KG"
)

// SalesRow is one point-of-sale record joined to its location and department.
type SalesRow struct {
	Date            time.Time       `json:"date"`
	Period          string          `json:"period"`
	LocationName    string          `json:"locationName"`
	DepartmentName  string          `json:"departmentName"`
	Country         string          `json:"country"`
	ProductCategory string          `json:"productCategory"`
	Unit            string          `json:"unit"`
	Amount          decimal.Decimal `json:"amount"`
	Quantity        decimal.Decimal `json:"quantity"`
}

// IsWeighedSushi reports whether the sale counts towards a location's opening days.
func (r SalesRow) IsWeighedSushi() bool {
	return r.ProductCategory == ProductCategorySushi && r.Unit == UnitKilogram
}

// NormalizeSalesPeriods stamps the period label of every sale. The input is left untouched.
func NormalizeSalesPeriods(rows []SalesRow, tf Timeframe) []SalesRow {
	out := make([]SalesRow, len(rows))
	for i, row := range rows {
		row.Period = PeriodLabel(row.Date.Year(), int(row.Date.Month()), tf)
		out[i] = row
	}
	return out
}

// AverageSalesRow summarises one period of point-of-sale data.
// OperationalDays counts distinct (location, day) pairs with weighed sushi sales;
// both averages are zero when it is zero.
type AverageSalesRow struct {
	Period             string          `json:"period"`
	TotalSales         decimal.Decimal `json:"totalSales"`
	TotalQuantitySushi decimal.Decimal `json:"totalQuantitySushi"`
	UniqueLocations    int             `json:"uniqueLocations"`
	OperationalDays    int             `json:"operationalDays"`
	AverageDailySales  decimal.Decimal `json:"averageDailySales"`
	AverageDailySushi  decimal.Decimal `json:"averageDailySushi"`
}

// SalesParams selects the sales data summarised by a sales report.
type SalesParams struct {
	Department string
	Start      string
	End        string
}

// SalesReport is the per-period average sales summary.
type SalesReport struct {
	Params      SalesParams
	Timeframe   Timeframe
	Averages    []AverageSalesRow
	RowCount    int
	Notices     []Notice
	GeneratedAt time.Time
}
