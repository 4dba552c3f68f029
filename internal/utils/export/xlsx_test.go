package export_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/SscSPs/finreport_backend/internal/core/domain"
	"github.com/SscSPs/finreport_backend/internal/utils/export"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleReport() *domain.PerformanceReport {
	return &domain.PerformanceReport{
		Params: domain.ReportParams{Start: "2024-Q1", End: "2024-Q1", ReportType: domain.ReportTypeStandard},
		Overview: []domain.WideAggregateRow{{
			Period:     "2024-Q1",
			AmountCalc: decimal.NewFromInt(500),
			Sales:      decimal.NewFromInt(1000),
			Material:   decimal.NewFromInt(200),
			Staff:      decimal.NewFromInt(300),
			ProfitRate: decimal.RequireFromString("0.5"),
		}},
		DepartmentBreakdown: []domain.DepartmentBreakdown{
			{Department: domain.DepartmentRestaurant, Rows: []domain.WideAggregateRow{
				{Period: "2024-Q1", Sales: decimal.NewFromInt(600)},
			}},
			{Department: domain.DepartmentSushibar, Rows: []domain.WideAggregateRow{
				{Period: "2024-Q1", Sales: decimal.NewFromInt(400)},
			}},
		},
		Turnover: domain.TurnoverTable{
			Pivot:   domain.PivotDepartment,
			Columns: []string{domain.DepartmentRestaurant},
			Rows: []domain.TurnoverRow{{
				Period: "2024-Q1",
				Values: map[string]decimal.Decimal{domain.DepartmentRestaurant: decimal.NewFromInt(1000)},
			}},
		},
		CostSummary: domain.DepartmentCostSummary{
			Total:        domain.CategoryTotals{Total: decimal.NewFromInt(500)},
			ByDepartment: map[string]domain.CategoryTotals{},
		},
		Hierarchy: []domain.HierarchyNode{{ID: domain.HierarchyRoot, Value: decimal.NewFromInt(500)}},
		Rows: []domain.AdjustedRow{{
			TransactionRow: domain.TransactionRow{Period: "2024-Q1", AccountName: "Sales", AccountType: domain.AccountTypeSales},
			AmountCalc:     decimal.NewFromInt(1000),
		}},
	}
}

func TestReportWorkbook(t *testing.T) {
	wb, err := export.ReportWorkbook(sampleReport())
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	assert.Equal(t, []string{
		export.SheetOverview,
		export.SheetCostStructure,
		export.SheetDepartments,
		export.SheetTurnover,
		export.SheetCostSummary,
		export.SheetHierarchy,
		export.SheetRows,
	}, wb.GetSheetList())

	v, err := wb.GetCellValue(export.SheetOverview, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-Q1", v)
	v, err = wb.GetCellValue(export.SheetOverview, "C2")
	require.NoError(t, err)
	assert.Equal(t, "1000", v)

	rows, err := wb.GetRows(export.SheetDepartments)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{domain.DepartmentSushibar, "2024-Q1", "0", "400"}, rows[2][:4])

	v, err = wb.GetCellValue(export.SheetTurnover, "B1")
	require.NoError(t, err)
	assert.Equal(t, domain.DepartmentRestaurant, v)

	rows, err = wb.GetRows(export.SheetCostSummary)
	require.NoError(t, err)
	assert.Len(t, rows, 2+len(domain.KnownDepartments))

	v, err = wb.GetCellValue(export.SheetHierarchy, "A2")
	require.NoError(t, err)
	assert.Equal(t, domain.HierarchyRoot, v)
}

func TestReportWorkbook_WriteTo(t *testing.T) {
	built, err := export.ReportWorkbook(sampleReport())
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = built.WriteTo(&buf)
	require.NoError(t, err)
	require.NoError(t, built.Close())

	wb, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = wb.Close() })

	v, err := wb.GetCellValue(export.SheetRows, "I2")
	require.NoError(t, err)
	assert.Equal(t, "Sales", v)
}

func TestReportWorkbook_TooManyColumns(t *testing.T) {
	report := sampleReport()
	report.Turnover.Columns = make([]string, excelize.MaxColumns+1)
	for i := range report.Turnover.Columns {
		report.Turnover.Columns[i] = fmt.Sprintf("location %d", i)
	}

	wb, err := export.ReportWorkbook(report)
	assert.Error(t, err)
	assert.Nil(t, wb)
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "performance_2024-Q1_2024-Q4_adjusted.xlsx", export.FileName(domain.ReportParams{
		Start: "2024-Q1", End: "2024-Q4", ReportType: domain.ReportTypeAdjusted,
	}))
}
