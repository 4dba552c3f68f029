package accounting

import (
	"github.com/SscSPs/finreport_backend/internal/core/domain"
)

// CumulativeCostSummary totals cost rows over the whole input, overall and for each of
// the known departments. Cost rows booked on a department outside the known set count
// towards the overall totals only. A non-empty department restricts the cost rows first;
// the Departments list always reflects the unrestricted input.
func CumulativeCostSummary(rows []domain.AdjustedRow, department string) domain.DepartmentCostSummary {
	summary := domain.DepartmentCostSummary{
		Departments:  DistinctDepartments(rows),
		ByDepartment: make(map[string]domain.CategoryTotals, len(domain.KnownDepartments)),
	}
	for _, d := range domain.KnownDepartments {
		summary.ByDepartment[d.Key] = domain.CategoryTotals{}
	}

	for _, row := range FilterAdjustedByDepartment(CostRows(rows), department) {
		summary.Total = addToTotals(summary.Total, row)
		if key, ok := domain.DepartmentKey(row.DepartmentName); ok {
			summary.ByDepartment[key] = addToTotals(summary.ByDepartment[key], row)
		}
	}
	return summary
}

func addToTotals(t domain.CategoryTotals, row domain.AdjustedRow) domain.CategoryTotals {
	t.Total = t.Total.Add(row.AmountCalc)
	switch row.AccountType.Category() {
	case domain.CategoryMaterial:
		t.Material = t.Material.Add(row.AmountCalc)
	case domain.CategoryStaff:
		t.Staff = t.Staff.Add(row.AmountCalc)
	case domain.CategoryOther:
		t.Other = t.Other.Add(row.AmountCalc)
	}
	return t
}
