package mapping

import (
	"strings"

	"github.com/SscSPs/finreport_backend/internal/core/domain"
	"github.com/SscSPs/finreport_backend/internal/models"
)

// ToDomainTransactionRow converts a joined database row to a domain TransactionRow.
// The period label is filled in later by domain.NormalizePeriods.
func ToDomainTransactionRow(m models.FinancialRow) domain.TransactionRow {
	return domain.TransactionRow{
		Year:           m.Year,
		Month:          m.Month,
		LocationID:     m.LocationID,
		LocationName:   m.LocationName,
		DepartmentName: m.DepartmentName,
		ClassName:      m.ClassName,
		Country:        m.Country,
		Currency:       m.Currency,
		AccountID:      m.AccountID,
		AccountName:    m.AccountName,
		AccountType:    domain.NormalizeAccountType(m.AccountType),
		Amount:         m.Amount,
		Rates: domain.AccountRates{
			Standard:     m.StdRate,
			Adjusted:     m.AdjRate,
			AdjustedCoef: m.AdjCoefRate,
		},
	}
}

// ToDomainTransactionRows converts a slice of joined rows.
func ToDomainTransactionRows(ms []models.FinancialRow) []domain.TransactionRow {
	out := make([]domain.TransactionRow, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransactionRow(m)
	}
	return out
}

// ToDomainSalesRows converts joined sales records. Period labels are filled in
// later by domain.NormalizeSalesPeriods.
func ToDomainSalesRows(ms []models.SalesRow) []domain.SalesRow {
	out := make([]domain.SalesRow, len(ms))
	for i, m := range ms {
		out[i] = domain.SalesRow{
			Date:            m.SaleDate,
			LocationName:    m.LocationName,
			DepartmentName:  m.DepartmentName,
			Country:         m.Country,
			ProductCategory: strings.TrimSpace(m.ProductCategory),
			Unit:            strings.ToUpper(strings.TrimSpace(m.Unit)),
			Amount:          m.Amount,
			Quantity:        m.Quantity,
		}
	}
	return out
}
