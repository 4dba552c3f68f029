package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialRow is one financial_data record joined to its account, location,
// department and class. Rate columns are nullable.
type FinancialRow struct {
	Year           int              `db:"year"`
	Month          int              `db:"month"`
	LocationID     int64            `db:"location_id"`
	LocationName   string           `db:"location_name"`
	DepartmentName string           `db:"department_name"`
	ClassName      string           `db:"class_name"`
	Country        string           `db:"country"`
	Currency       string           `db:"currency"`
	AccountID      string           `db:"account_id"`
	AccountName    string           `db:"account_name"`
	AccountType    string           `db:"account_type"`
	Amount         decimal.Decimal  `db:"amount"`
	StdRate        *decimal.Decimal `db:"std_rate"`
	AdjRate        *decimal.Decimal `db:"adj_rate"`
	AdjCoefRate    *decimal.Decimal `db:"adj_coef_rate"`
}

// PeriodKey is a distinct (year, month) pair present in financial_data.
type PeriodKey struct {
	Year  int `db:"year"`
	Month int `db:"month"`
}

// SalesRow is one sales_data record joined to its location and department.
type SalesRow struct {
	SaleDate        time.Time       `db:"sale_date"`
	LocationName    string          `db:"location_name"`
	DepartmentName  string          `db:"department_name"`
	Country         string          `db:"country"`
	ProductCategory string          `db:"product_category"`
	Unit            string          `db:"unit"`
	Amount          decimal.Decimal `db:"amount"`
	Quantity        decimal.Decimal `db:"quantity"`
}
