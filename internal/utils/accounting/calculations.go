package accounting

import (
	"fmt"

	"github.com/SscSPs/finreport_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApplyRates resolves the rate selected by the report type for every row and computes
// amount_calc = amount * rate. Rows whose rate is exactly zero are dropped.
// A missing rate column on any account aborts the whole run.
func ApplyRates(rows []domain.TransactionRow, reportType domain.ReportType) ([]domain.AdjustedRow, error) {
	if err := reportType.Validate(); err != nil {
		return nil, err
	}

	out := make([]domain.AdjustedRow, 0, len(rows))
	for _, row := range rows {
		rate, err := row.Rates.For(reportType)
		if err != nil {
			return nil, fmt.Errorf("account %s (%s): %w", row.AccountID, row.AccountName, err)
		}
		if rate.IsZero() {
			continue
		}
		out = append(out, domain.AdjustedRow{
			TransactionRow: row,
			Rate:           rate,
			AmountCalc:     row.Amount.Mul(rate),
		})
	}
	return out, nil
}

// safeRatio divides num by den, yielding zero for a zero denominator.
func safeRatio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

// CostRows keeps rows of the three known cost categories.
func CostRows(rows []domain.AdjustedRow) []domain.AdjustedRow {
	out := make([]domain.AdjustedRow, 0, len(rows))
	for _, row := range rows {
		if row.AccountType.IsCost() {
			out = append(out, row)
		}
	}
	return out
}

// FilterAdjustedByDepartment keeps rows of one department; an empty name keeps all rows.
func FilterAdjustedByDepartment(rows []domain.AdjustedRow, department string) []domain.AdjustedRow {
	if department == "" {
		return rows
	}
	out := make([]domain.AdjustedRow, 0, len(rows))
	for _, row := range rows {
		if row.DepartmentName == department {
			out = append(out, row)
		}
	}
	return out
}
