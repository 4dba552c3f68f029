package services

import (
	"context"

	"github.com/SscSPs/finreport_backend/internal/core/domain"
)

// ReportingService builds performance reports from the ledger.
type ReportingService interface {
	// PerformanceReport runs the full pipeline for one parameter tuple.
	PerformanceReport(ctx context.Context, params domain.ReportParams) (*domain.PerformanceReport, error)

	// SalesAverages summarises point-of-sale data per period: totals, open days and daily averages.
	SalesAverages(ctx context.Context, params domain.SalesParams) (*domain.SalesReport, error)

	// AvailablePeriods lists the distinct period labels present in the ledger, ascending.
	AvailablePeriods(ctx context.Context, timeframe domain.Timeframe) ([]string, error)
}

// ReportCache memoizes finished reports by their canonical cache key.
type ReportCache interface {
	Get(key string) (*domain.PerformanceReport, bool)
	Add(key string, report *domain.PerformanceReport)
	Len() int
}
