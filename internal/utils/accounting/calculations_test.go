package accounting_test

import (
	"testing"

	"github.com/SscSPs/finreport_backend/internal/apperrors"
	"github.com/SscSPs/finreport_backend/internal/core/domain"
	"github.com/SscSPs/finreport_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// txn builds a ledger row with a standard rate.
func txn(period, dept string, accountType domain.AccountType, accountName, amount, rate string) domain.TransactionRow {
	return domain.TransactionRow{
		Period:         period,
		DepartmentName: dept,
		AccountID:      accountName,
		AccountName:    accountName,
		AccountType:    accountType,
		Amount:         dec(amount),
		Rates:          domain.AccountRates{Standard: decimalPtr(dec(rate))},
	}
}

func mustApply(t *testing.T, rows ...domain.TransactionRow) []domain.AdjustedRow {
	t.Helper()
	out, err := accounting.ApplyRates(rows, domain.ReportTypeStandard)
	require.NoError(t, err)
	return out
}

func TestApplyRates(t *testing.T) {
	rows := []domain.TransactionRow{
		txn("2024-Q1", domain.DepartmentRestaurant, domain.AccountTypeSales, "Sales", "1000", "0.5"),
		txn("2024-Q1", domain.DepartmentRestaurant, domain.AccountTypeStaff, "Wages", "300", "0"),
		txn("2024-Q1", domain.DepartmentRestaurant, domain.AccountTypeMaterial, "Food", "200", "1"),
	}

	out, err := accounting.ApplyRates(rows, domain.ReportTypeStandard)
	require.NoError(t, err)
	require.Len(t, out, 2, "zero-rate rows are dropped")
	assert.True(t, out[0].AmountCalc.Equal(dec("500")))
	assert.True(t, out[0].Rate.Equal(dec("0.5")))
	assert.True(t, out[1].AmountCalc.Equal(dec("200")))
}

func TestApplyRates_Errors(t *testing.T) {
	rows := []domain.TransactionRow{
		txn("2024-Q1", domain.DepartmentRestaurant, domain.AccountTypeSales, "Sales", "1000", "1"),
	}

	_, err := accounting.ApplyRates(rows, domain.ReportTypeAdjusted)
	assert.ErrorIs(t, err, apperrors.ErrUnknownRateColumn)

	_, err = accounting.ApplyRates(nil, domain.ReportType("weird"))
	assert.ErrorIs(t, err, apperrors.ErrUnknownReportType)
}

func TestCostRows(t *testing.T) {
	rows := mustApply(t,
		txn("2024-Q1", "X", domain.AccountTypeSales, "Sales", "1", "1"),
		txn("2024-Q1", "X", domain.AccountTypeOtherIncome, "Rent income", "1", "1"),
		txn("2024-Q1", "X", domain.AccountType("unmapped"), "Suspense", "1", "1"),
		txn("2024-Q1", "X", domain.AccountTypeOtherCost, "Rent", "1", "1"),
	)
	costs := accounting.CostRows(rows)
	require.Len(t, costs, 1)
	assert.Equal(t, "Rent", costs[0].AccountName)
}
