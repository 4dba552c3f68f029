// Package export renders performance reports as XLSX workbooks.
package export

import (
	"fmt"

	"github.com/SscSPs/finreport_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names, in workbook order.
const (
	SheetOverview      = "Overview"
	SheetCostStructure = "Cost structure"
	SheetDepartments   = "Departments"
	SheetTurnover      = "Turnover"
	SheetCostSummary   = "Cost summary"
	SheetHierarchy     = "Hierarchy"
	SheetRows          = "Rows"
)

var aggregateHeader = []any{
	"Period", "Net", "Sales", "Material", "Staff", "Other",
	"Material rate", "Staff rate", "Other rate", "Profit rate",
}

// ContentType is the MIME type of the workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FileName suggests a download name for the report.
func FileName(p domain.ReportParams) string {
	return fmt.Sprintf("performance_%s_%s_%s.xlsx", p.Start, p.End, p.ReportType)
}

// ReportWorkbook builds one sheet per report table. The department breakdown
// shares a single sheet, one block of rows per department. Callers own the
// returned file and must Close it.
func ReportWorkbook(report *domain.PerformanceReport) (*excelize.File, error) {
	wb := excelize.NewFile()
	if err := wb.SetSheetName(wb.GetSheetName(0), SheetOverview); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetCostStructure, SheetDepartments, SheetTurnover, SheetCostSummary, SheetHierarchy, SheetRows} {
		if _, err := wb.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	steps := []func(*excelize.File, *domain.PerformanceReport) error{
		func(wb *excelize.File, r *domain.PerformanceReport) error {
			return writeAggregates(wb, SheetOverview, r.Overview)
		},
		func(wb *excelize.File, r *domain.PerformanceReport) error {
			return writeAggregates(wb, SheetCostStructure, r.CostStructure)
		},
		writeDepartments,
		writeTurnover,
		writeCostSummary,
		writeHierarchy,
		writeRows,
	}
	for _, step := range steps {
		if err := step(wb, report); err != nil {
			_ = wb.Close()
			return nil, err
		}
	}
	wb.SetActiveSheet(0)
	return wb, nil
}

func setRow(wb *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := wb.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("%s row %d: %w", sheet, row, err)
	}
	return nil
}

func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func writeAggregates(wb *excelize.File, sheet string, rows []domain.WideAggregateRow) error {
	if err := setRow(wb, sheet, 1, aggregateHeader); err != nil {
		return err
	}
	for i, r := range rows {
		values := []any{
			r.Period, num(r.AmountCalc), num(r.Sales), num(r.Material), num(r.Staff), num(r.Other),
			num(r.MaterialRate), num(r.StaffRate), num(r.OtherRate), num(r.ProfitRate),
		}
		if err := setRow(wb, sheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeDepartments(wb *excelize.File, r *domain.PerformanceReport) error {
	if err := setRow(wb, SheetDepartments, 1, append([]any{"Department"}, aggregateHeader...)); err != nil {
		return err
	}
	line := 2
	for _, b := range r.DepartmentBreakdown {
		for _, row := range b.Rows {
			values := []any{
				b.Department, row.Period, num(row.AmountCalc), num(row.Sales), num(row.Material), num(row.Staff), num(row.Other),
				num(row.MaterialRate), num(row.StaffRate), num(row.OtherRate), num(row.ProfitRate),
			}
			if err := setRow(wb, SheetDepartments, line, values); err != nil {
				return err
			}
			line++
		}
	}
	return nil
}

func writeTurnover(wb *excelize.File, r *domain.PerformanceReport) error {
	header := []any{"Period"}
	for _, c := range r.Turnover.Columns {
		header = append(header, c)
	}
	if err := setRow(wb, SheetTurnover, 1, header); err != nil {
		return err
	}
	for i, row := range r.Turnover.Rows {
		values := []any{row.Period}
		for _, c := range r.Turnover.Columns {
			values = append(values, num(row.Values[c]))
		}
		if err := setRow(wb, SheetTurnover, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

func writeCostSummary(wb *excelize.File, r *domain.PerformanceReport) error {
	if err := setRow(wb, SheetCostSummary, 1, []any{"Department", "Total", "Material", "Staff", "Other"}); err != nil {
		return err
	}
	t := r.CostSummary.Total
	if err := setRow(wb, SheetCostSummary, 2, []any{"All", num(t.Total), num(t.Material), num(t.Staff), num(t.Other)}); err != nil {
		return err
	}
	for i, d := range domain.KnownDepartments {
		t := r.CostSummary.ByDepartment[d.Key]
		if err := setRow(wb, SheetCostSummary, i+3, []any{d.Name, num(t.Total), num(t.Material), num(t.Staff), num(t.Other)}); err != nil {
			return err
		}
	}
	return nil
}

func writeHierarchy(wb *excelize.File, r *domain.PerformanceReport) error {
	if err := setRow(wb, SheetHierarchy, 1, []any{"ID", "Parent", "Value", "Color"}); err != nil {
		return err
	}
	for i, n := range r.Hierarchy {
		if err := setRow(wb, SheetHierarchy, i+2, []any{n.ID, n.Parent, num(n.Value), num(n.Color)}); err != nil {
			return err
		}
	}
	return nil
}

func writeRows(wb *excelize.File, r *domain.PerformanceReport) error {
	header := []any{
		"Period", "Department", "Allocated from", "Location", "Class", "Country", "Currency",
		"Account ID", "Account name", "Account type", "Amount", "Rate", "Amount calc",
	}
	if err := setRow(wb, SheetRows, 1, header); err != nil {
		return err
	}
	for i, row := range r.Rows {
		values := []any{
			row.Period, row.DepartmentName, row.AllocatedFrom, row.LocationName, row.ClassName,
			row.Country, row.Currency, row.AccountID, row.AccountName, string(row.AccountType),
			num(row.Amount), num(row.Rate), num(row.AmountCalc),
		}
		if err := setRow(wb, SheetRows, i+2, values); err != nil {
			return err
		}
	}
	return nil
}
