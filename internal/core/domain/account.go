package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/finreport_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// AccountType is the reporting classification of a ledger account.
type AccountType string

const (
	AccountTypeSales       AccountType = "sales"
	AccountTypeOtherIncome AccountType = "other income"
	AccountTypeMaterial    AccountType = "material"
	AccountTypeStaff       AccountType = "staff"
	AccountTypeOtherCost   AccountType = "other cost"
)

// NormalizeAccountType lowercases and trims a raw account type. Unknown values are kept
// as-is so that they can be excluded from cost totals downstream.
func NormalizeAccountType(s string) AccountType {
	return AccountType(strings.ToLower(strings.TrimSpace(s)))
}

// Category is the bucket an account type contributes to in the category aggregation.
type Category int

const (
	CategoryNone Category = iota
	CategorySales
	CategoryMaterial
	CategoryStaff
	CategoryOther
)

// Category maps the account type onto its aggregation bucket.
// Sales and other income share the sales bucket; unrecognised types map to CategoryNone.
func (t AccountType) Category() Category {
	switch t {
	case AccountTypeSales, AccountTypeOtherIncome:
		return CategorySales
	case AccountTypeMaterial:
		return CategoryMaterial
	case AccountTypeStaff:
		return CategoryStaff
	case AccountTypeOtherCost:
		return CategoryOther
	default:
		return CategoryNone
	}
}

// IsIncome reports whether the type is sales or other income.
func (t AccountType) IsIncome() bool {
	return t.Category() == CategorySales
}

// IsCost reports whether the type is one of the three known cost categories.
func (t AccountType) IsCost() bool {
	switch t.Category() {
	case CategoryMaterial, CategoryStaff, CategoryOther:
		return true
	}
	return false
}

// ReportType selects which rate column is applied to the raw amounts.
type ReportType string

const (
	ReportTypeStandard     ReportType = "standard"
	ReportTypeAdjusted     ReportType = "adjusted"
	ReportTypeAdjustedCoef ReportType = "adjusted_coef"
)

// ParseReportType validates a user supplied report type.
func ParseReportType(s string) (ReportType, error) {
	rt := ReportType(strings.ToLower(strings.TrimSpace(s)))
	if err := rt.Validate(); err != nil {
		return "", err
	}
	return rt, nil
}

// Validate returns ErrUnknownReportType for anything outside the closed set.
func (rt ReportType) Validate() error {
	switch rt {
	case ReportTypeStandard, ReportTypeAdjusted, ReportTypeAdjustedCoef:
		return nil
	}
	return fmt.Errorf("%w: %q", apperrors.ErrUnknownReportType, string(rt))
}

// AccountRates holds the three rate columns of a financial account. A nil rate means
// the column is not populated for the account.
type AccountRates struct {
	Standard     *decimal.Decimal `json:"stdRate,omitempty"`
	Adjusted     *decimal.Decimal `json:"adjRate,omitempty"`
	AdjustedCoef *decimal.Decimal `json:"adjCoefRate,omitempty"`
}

// For resolves the rate used by a report type.
func (r AccountRates) For(rt ReportType) (decimal.Decimal, error) {
	var rate *decimal.Decimal
	switch rt {
	case ReportTypeStandard:
		rate = r.Standard
	case ReportTypeAdjusted:
		rate = r.Adjusted
	case ReportTypeAdjustedCoef:
		rate = r.AdjustedCoef
	default:
		return decimal.Zero, rt.Validate()
	}
	if rate == nil {
		return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrUnknownRateColumn, rt)
	}
	return *rate, nil
}
