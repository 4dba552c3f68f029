package dto

import (
	"time"

	"github.com/SscSPs/finreport_backend/internal/core/domain"
)

// SalesAveragesQuery holds the query parameters of the average sales endpoint.
type SalesAveragesQuery struct {
	Start      string `form:"start" binding:"required,period"`
	End        string `form:"end" binding:"required,period"`
	Department string `form:"department"`
}

// ToSalesParams converts the query into service parameters.
func (q SalesAveragesQuery) ToSalesParams() domain.SalesParams {
	return domain.SalesParams{Department: q.Department, Start: q.Start, End: q.End}
}

// SalesAveragesResponse is the JSON form of a sales report.
type SalesAveragesResponse struct {
	Department  string                   `json:"department,omitempty"`
	Start       string                   `json:"start"`
	End         string                   `json:"end"`
	Timeframe   string                   `json:"timeframe"`
	Periods     []domain.AverageSalesRow `json:"periods"`
	RowCount    int                      `json:"rowCount"`
	Notices     []domain.Notice          `json:"notices"`
	GeneratedAt time.Time                `json:"generatedAt"`
}

// ToSalesAveragesResponse converts a sales report into its JSON form.
func ToSalesAveragesResponse(r *domain.SalesReport) SalesAveragesResponse {
	periods := r.Averages
	if periods == nil {
		periods = []domain.AverageSalesRow{}
	}
	notices := r.Notices
	if notices == nil {
		notices = []domain.Notice{}
	}
	return SalesAveragesResponse{
		Department:  r.Params.Department,
		Start:       r.Params.Start,
		End:         r.Params.End,
		Timeframe:   string(r.Timeframe),
		Periods:     periods,
		RowCount:    r.RowCount,
		Notices:     notices,
		GeneratedAt: r.GeneratedAt,
	}
}
