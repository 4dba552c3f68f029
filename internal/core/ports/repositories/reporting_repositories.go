package repositories

import (
	"context"

	"github.com/SscSPs/finreport_backend/internal/core/domain"
)

// ReportingRepository loads joined ledger rows for the reporting pipeline.
type ReportingRepository interface {
	// FindFinancialRows returns every ledger row inside the filter's period range,
	// joined to account, location and department data, with all three rate columns.
	FindFinancialRows(ctx context.Context, filter domain.RowFilter) ([]domain.TransactionRow, error)

	// FindSalesRows returns the point-of-sale records inside the filter's period range,
	// joined to location and department data.
	FindSalesRows(ctx context.Context, filter domain.RowFilter) ([]domain.SalesRow, error)

	// ListPeriods returns the distinct period labels at the given granularity, ascending.
	ListPeriods(ctx context.Context, timeframe domain.Timeframe) ([]string, error)
}
