package accounting

import (
	"sort"

	"github.com/SscSPs/finreport_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PrepareTurnover pivots sales and other income per period by the given dimension.
// Rate-adjusted amounts are used only for the unscoped department pivot; every other
// combination reports raw amounts.
func PrepareTurnover(rows []domain.AdjustedRow, department string, pivot domain.TurnoverPivot) domain.TurnoverTable {
	useCalc := department == "" && pivot == domain.PivotDepartment

	values := make(map[string]map[string]decimal.Decimal)
	columns := make(map[string]struct{})
	for _, row := range rows {
		if !row.AccountType.IsIncome() {
			continue
		}
		key := pivotKey(row, pivot)
		amount := row.Amount
		if useCalc {
			amount = row.AmountCalc
		}
		if values[row.Period] == nil {
			values[row.Period] = make(map[string]decimal.Decimal)
		}
		values[row.Period][key] = values[row.Period][key].Add(amount)
		columns[key] = struct{}{}
	}

	table := domain.TurnoverTable{Pivot: pivot, Columns: make([]string, 0, len(columns))}
	for c := range columns {
		table.Columns = append(table.Columns, c)
	}
	sort.Strings(table.Columns)

	periods := make([]string, 0, len(values))
	for p := range values {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	for _, p := range periods {
		table.Rows = append(table.Rows, domain.TurnoverRow{Period: p, Values: values[p]})
	}
	return table
}

func pivotKey(row domain.AdjustedRow, pivot domain.TurnoverPivot) string {
	switch pivot {
	case domain.PivotLocation:
		return row.LocationName
	case domain.PivotClass:
		return row.ClassName
	default:
		return row.DepartmentName
	}
}
