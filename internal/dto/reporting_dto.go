package dto

import (
	"time"

	"github.com/SscSPs/finreport_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PerformanceReportQuery holds the query parameters shared by the performance endpoints.
type PerformanceReportQuery struct {
	Start            string `form:"start" binding:"required,period"`
	End              string `form:"end" binding:"required,period"`
	ReportType       string `form:"reportType,default=standard" binding:"oneof=standard adjusted adjusted_coef"`
	Department       string `form:"department"`
	CustomAdjustment bool   `form:"customAdjustment"`
	SplitOfficeCost  bool   `form:"splitOfficeCost"`
	TagStrategy      string `form:"tagStrategy" binding:"omitempty,oneof=stable initial"`
	Pivot            string `form:"pivot" binding:"omitempty,oneof=department location class"`
}

// ToReportParams converts the query into service parameters.
func (q PerformanceReportQuery) ToReportParams() domain.ReportParams {
	return domain.ReportParams{
		Department:       q.Department,
		ReportType:       domain.ReportType(q.ReportType),
		Start:            q.Start,
		End:              q.End,
		CustomAdjustment: q.CustomAdjustment,
		SplitOfficeCost:  q.SplitOfficeCost,
		TagStrategy:      domain.TagStrategy(q.TagStrategy),
		TurnoverPivot:    domain.TurnoverPivot(q.Pivot),
	}
}

// ListReportRowsQuery adds pagination to the performance query.
type ListReportRowsQuery struct {
	PerformanceReportQuery
	Limit     int    `form:"limit,default=100" binding:"gte=0,lte=1000"`
	PageToken string `form:"pageToken"`
}

// ListPeriodsQuery holds the query parameters of the periods endpoint.
type ListPeriodsQuery struct {
	Timeframe string `form:"timeframe,default=quarter" binding:"oneof=year quarter month"`
}

// ListPeriodsResponse lists the period labels available in the ledger.
type ListPeriodsResponse struct {
	Timeframe string   `json:"timeframe"`
	Periods   []string `json:"periods"`
}

// ReportParamsResponse echoes the canonical parameters a report was built with.
type ReportParamsResponse struct {
	Department       string `json:"department,omitempty"`
	ReportType       string `json:"reportType"`
	Start            string `json:"start"`
	End              string `json:"end"`
	CustomAdjustment bool   `json:"customAdjustment"`
	SplitOfficeCost  bool   `json:"splitOfficeCost"`
	TagStrategy      string `json:"tagStrategy"`
	Pivot            string `json:"pivot"`
}

// CostSummaryResponse is the cumulative cost summary with its flattened totals.
type CostSummaryResponse struct {
	domain.DepartmentCostSummary
	Totals map[string]decimal.Decimal `json:"totals"`
}

// PerformanceReportResponse is the JSON form of a performance report. Drill-down rows
// are served separately by the rows endpoint.
type PerformanceReportResponse struct {
	Params              ReportParamsResponse         `json:"params"`
	Timeframe           string                       `json:"timeframe"`
	Overview            []domain.WideAggregateRow    `json:"overview"`
	CostStructure       []domain.WideAggregateRow    `json:"costStructure"`
	DepartmentBreakdown []domain.DepartmentBreakdown `json:"departmentBreakdown"`
	Turnover            domain.TurnoverTable         `json:"turnover"`
	CostSummary         CostSummaryResponse          `json:"costSummary"`
	Hierarchy           []domain.HierarchyNode       `json:"hierarchy"`
	RowCount            int                          `json:"rowCount"`
	Notices             []domain.Notice              `json:"notices"`
	GeneratedAt         time.Time                    `json:"generatedAt"`
}

// ReportRowResponse is one drill-down row.
type ReportRowResponse struct {
	Period        string          `json:"period"`
	YearMonth     string          `json:"yearMonth"`
	Department    string          `json:"department"`
	AllocatedFrom string          `json:"allocatedFrom,omitempty"`
	Location      string          `json:"location"`
	Class         string          `json:"class"`
	Country       string          `json:"country"`
	Currency      string          `json:"currency"`
	AccountID     string          `json:"accountID"`
	AccountName   string          `json:"accountName"`
	AccountType   string          `json:"accountType"`
	Amount        decimal.Decimal `json:"amount"`
	Rate          decimal.Decimal `json:"rate"`
	AmountCalc    decimal.Decimal `json:"amountCalc"`
}

// ListReportRowsResponse is one page of drill-down rows.
type ListReportRowsResponse struct {
	Rows      []ReportRowResponse `json:"rows"`
	Total     int                 `json:"total"`
	NextToken *string             `json:"nextToken,omitempty"`
}

// ToPerformanceReportResponse converts a report into its JSON form.
func ToPerformanceReportResponse(r *domain.PerformanceReport) PerformanceReportResponse {
	notices := r.Notices
	if notices == nil {
		notices = []domain.Notice{}
	}
	return PerformanceReportResponse{
		Params: ReportParamsResponse{
			Department:       r.Params.Department,
			ReportType:       string(r.Params.ReportType),
			Start:            r.Params.Start,
			End:              r.Params.End,
			CustomAdjustment: r.Params.CustomAdjustment,
			SplitOfficeCost:  r.Params.SplitOfficeCost,
			TagStrategy:      string(r.Params.TagStrategy),
			Pivot:            string(r.Params.TurnoverPivot),
		},
		Timeframe:           string(r.Timeframe),
		Overview:            r.Overview,
		CostStructure:       r.CostStructure,
		DepartmentBreakdown: r.DepartmentBreakdown,
		Turnover:            r.Turnover,
		CostSummary: CostSummaryResponse{
			DepartmentCostSummary: r.CostSummary,
			Totals:                r.CostSummary.AsMap(),
		},
		Hierarchy:   r.Hierarchy,
		RowCount:    len(r.Rows),
		Notices:     notices,
		GeneratedAt: r.GeneratedAt,
	}
}

// ToReportRowResponse converts one adjusted row.
func ToReportRowResponse(row domain.AdjustedRow) ReportRowResponse {
	return ReportRowResponse{
		Period:        row.Period,
		YearMonth:     row.YearMonth,
		Department:    row.DepartmentName,
		AllocatedFrom: row.AllocatedFrom,
		Location:      row.LocationName,
		Class:         row.ClassName,
		Country:       row.Country,
		Currency:      row.Currency,
		AccountID:     row.AccountID,
		AccountName:   row.AccountName,
		AccountType:   string(row.AccountType),
		Amount:        row.Amount,
		Rate:          row.Rate,
		AmountCalc:    row.AmountCalc,
	}
}

// ToReportRowResponses converts a page of adjusted rows.
func ToReportRowResponses(rows []domain.AdjustedRow) []ReportRowResponse {
	out := make([]ReportRowResponse, len(rows))
	for i, row := range rows {
		out[i] = ToReportRowResponse(row)
	}
	return out
}
