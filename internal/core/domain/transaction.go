package domain

import (
	"github.com/shopspring/decimal"
)

// TransactionRow is one ledger entry joined to its account, location and department.
type TransactionRow struct {
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	Period         string          `json:"period"`    // bucket label, see PeriodLabel
	YearMonth      string          `json:"yearMonth"` // month-level calendar key
	LocationID     int64           `json:"locationID"`
	LocationName   string          `json:"locationName"`
	DepartmentName string          `json:"departmentName"`
	ClassName      string          `json:"className"`
	Country        string          `json:"country"`
	Currency       string          `json:"currency"`
	AccountID      string          `json:"accountID"`
	AccountName    string          `json:"accountName"`
	AccountType    AccountType     `json:"accountType"`
	Amount         decimal.Decimal `json:"amount"`
	Rates          AccountRates    `json:"rates"`
	// AllocatedFrom is the department the row was booked on before the office cost split.
	AllocatedFrom string `json:"allocatedFrom,omitempty"`
}

// BookingDepartment is the department the row was originally booked on.
func (r TransactionRow) BookingDepartment() string {
	if r.AllocatedFrom != "" {
		return r.AllocatedFrom
	}
	return r.DepartmentName
}

// AdjustedRow is a TransactionRow after the adjustment stage and rate resolution.
// AmountCalc is Amount multiplied by Rate.
type AdjustedRow struct {
	TransactionRow
	Rate       decimal.Decimal `json:"rate"`
	AmountCalc decimal.Decimal `json:"amountCalc"`
}

// NormalizePeriods stamps the period label and calendar key on every row.
// It returns a new slice; the input is left untouched.
func NormalizePeriods(rows []TransactionRow, tf Timeframe) []TransactionRow {
	out := make([]TransactionRow, len(rows))
	for i, row := range rows {
		row.Period = PeriodLabel(row.Year, row.Month, tf)
		row.YearMonth = YearMonthKey(row.Year, row.Month)
		out[i] = row
	}
	return out
}

// FilterByDepartment keeps only rows booked on the named department. An empty name keeps everything.
func FilterByDepartment(rows []TransactionRow, department string) []TransactionRow {
	if department == "" {
		return rows
	}
	out := make([]TransactionRow, 0, len(rows))
	for _, row := range rows {
		if row.DepartmentName == department {
			out = append(out, row)
		}
	}
	return out
}
