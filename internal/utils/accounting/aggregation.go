package accounting

import (
	"sort"

	"github.com/SscSPs/finreport_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

type periodAccumulator struct {
	sales, material, staff, other decimal.Decimal
}

// AggregateByPeriod sums amount_calc per period into the four category buckets and the
// net result. Every period that has at least one row appears; empty buckets are zero.
// Ratios are left zero, see DeriveRatios.
func AggregateByPeriod(rows []domain.AdjustedRow) []domain.WideAggregateRow {
	acc := make(map[string]*periodAccumulator)
	var periods []string
	for _, row := range rows {
		a, ok := acc[row.Period]
		if !ok {
			a = &periodAccumulator{}
			acc[row.Period] = a
			periods = append(periods, row.Period)
		}
		switch row.AccountType.Category() {
		case domain.CategorySales:
			a.sales = a.sales.Add(row.AmountCalc)
		case domain.CategoryMaterial:
			a.material = a.material.Add(row.AmountCalc)
		case domain.CategoryStaff:
			a.staff = a.staff.Add(row.AmountCalc)
		case domain.CategoryOther:
			a.other = a.other.Add(row.AmountCalc)
		case domain.CategoryNone:
		}
	}
	sort.SliceStable(periods, func(i, j int) bool { return periods[i] < periods[j] })

	out := make([]domain.WideAggregateRow, 0, len(periods))
	for _, p := range periods {
		a := acc[p]
		out = append(out, domain.WideAggregateRow{
			Period:     p,
			AmountCalc: a.sales.Sub(a.material).Sub(a.staff).Sub(a.other),
			Sales:      a.sales,
			Material:   a.material,
			Staff:      a.staff,
			Other:      a.other,
		})
	}
	return out
}

// DeriveRatios fills the cost ratios and profit rate of each row.
// Cost ratios are absolute values over sales or over total costs; profit rate is
// always net over sales and keeps its sign. A zero denominator yields zero.
func DeriveRatios(rows []domain.WideAggregateRow, denominator domain.Denominator) []domain.WideAggregateRow {
	out := make([]domain.WideAggregateRow, len(rows))
	for i, r := range rows {
		var den decimal.Decimal
		switch denominator {
		case domain.DenominatorCosts:
			den = r.Material.Add(r.Staff).Add(r.Other)
		default:
			den = r.Sales
		}
		r.MaterialRate = safeRatio(r.Material, den).Abs()
		r.StaffRate = safeRatio(r.Staff, den).Abs()
		r.OtherRate = safeRatio(r.Other, den).Abs()
		r.ProfitRate = safeRatio(r.AmountCalc, r.Sales)
		out[i] = r
	}
	return out
}

// PreparePerformanceOverview aggregates rows per period and derives the ratios.
func PreparePerformanceOverview(rows []domain.AdjustedRow, denominator domain.Denominator) []domain.WideAggregateRow {
	return DeriveRatios(AggregateByPeriod(rows), denominator)
}

// PrepareDepartmentBreakdown runs the sales-denominated overview once per department,
// ordered by department name.
func PrepareDepartmentBreakdown(rows []domain.AdjustedRow) []domain.DepartmentBreakdown {
	departments := DistinctDepartments(rows)
	out := make([]domain.DepartmentBreakdown, 0, len(departments))
	for _, dept := range departments {
		out = append(out, domain.DepartmentBreakdown{
			Department: dept,
			Rows:       PreparePerformanceOverview(FilterAdjustedByDepartment(rows, dept), domain.DenominatorSales),
		})
	}
	return out
}

// DistinctDepartments returns the sorted unique department names in rows.
func DistinctDepartments(rows []domain.AdjustedRow) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range rows {
		if _, ok := seen[row.DepartmentName]; ok {
			continue
		}
		seen[row.DepartmentName] = struct{}{}
		out = append(out, row.DepartmentName)
	}
	sort.Strings(out)
	return out
}
