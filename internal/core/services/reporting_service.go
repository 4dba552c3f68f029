package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/finreport_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/finreport_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finreport_backend/internal/core/ports/services"
	"github.com/SscSPs/finreport_backend/internal/utils/accounting"
	"github.com/SscSPs/finreport_backend/internal/utils/adjustment"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Years whose ledger was booked without cost centers.
var unsplittableYears = []int{2020, 2021}

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	adjuster      *adjustment.Adjuster
	cache         portssvc.ReportCache
	now           func() time.Time
	tracer        trace.Tracer
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithAdjuster sets the adjuster used for custom adjustment and the office split.
func WithAdjuster(a *adjustment.Adjuster) ReportingServiceOption {
	return func(s *reportingService) {
		s.adjuster = a
	}
}

// WithReportCache enables memoization of finished reports.
func WithReportCache(c portssvc.ReportCache) ReportingServiceOption {
	return func(s *reportingService) {
		s.cache = c
	}
}

// WithClock overrides the clock used for the incomplete-period notice.
func WithClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// WithTracer overrides the tracer used for pipeline spans.
func WithTracer(t trace.Tracer) ReportingServiceOption {
	return func(s *reportingService) {
		s.tracer = t
	}
}

// NewReportingService creates a new reporting service with the provided options.
// Without WithAdjuster the service runs with an empty rule table.
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
		now:           time.Now,
		tracer:        otel.Tracer("finreport/services/reporting"),
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	if svc.adjuster == nil {
		svc.adjuster, _ = adjustment.NewAdjuster(nil)
	}
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// PerformanceReport loads the ledger rows for params and runs the reporting pipeline.
func (s *reportingService) PerformanceReport(ctx context.Context, params domain.ReportParams) (*domain.PerformanceReport, error) {
	params = params.Canonical()
	periods, err := domain.NewPeriodRange(params.Start, params.End)
	if err != nil {
		return nil, err
	}
	if err := params.ReportType.Validate(); err != nil {
		return nil, err
	}
	if _, err := domain.ParseTagStrategy(string(params.TagStrategy)); err != nil {
		return nil, err
	}
	if _, err := domain.ParseTurnoverPivot(string(params.TurnoverPivot)); err != nil {
		return nil, err
	}

	key := params.CacheKey()
	if s.cache != nil {
		if report, ok := s.cache.Get(key); ok {
			s.LogDebug(ctx, "Performance report served from cache", slog.String("key", key))
			return report, nil
		}
	}

	ctx, span := s.tracer.Start(ctx, "ReportingService.PerformanceReport",
		trace.WithAttributes(attribute.String("cache_key", key)))
	defer span.End()

	// The office split needs every department's sales, so scope after adjusting.
	filter := domain.RowFilter{Department: params.Department, Range: periods}
	if params.SplitOfficeCost {
		filter.Department = ""
	}
	raw, err := s.reportingRepo.FindFinancialRows(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load financial rows",
			slog.String("start", params.Start),
			slog.String("end", params.End),
			slog.String("department", params.Department))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load financial rows: %w", err)
	}

	report, err := s.runPipeline(ctx, params, periods, raw)
	if err != nil {
		s.LogError(ctx, err, "Failed to build performance report", slog.String("key", key))
		span.RecordError(err)
		return nil, err
	}

	if s.cache != nil {
		s.cache.Add(key, report)
	}
	s.LogInfo(ctx, "Performance report generated successfully",
		slog.String("key", key),
		slog.Int("row_count", len(report.Rows)),
		slog.Int("period_count", len(report.Overview)))
	return report, nil
}

func (s *reportingService) runPipeline(ctx context.Context, params domain.ReportParams, periods domain.PeriodRange, raw []domain.TransactionRow) (*domain.PerformanceReport, error) {
	_, span := s.tracer.Start(ctx, "ReportingService.runPipeline")
	defer span.End()

	rows := domain.NormalizePeriods(raw, periods.Timeframe())
	rows, err := s.adjuster.Apply(rows, params.CustomAdjustment, params.SplitOfficeCost)
	if err != nil {
		return nil, err
	}
	rows = domain.FilterByDepartment(rows, params.Department)

	adjusted, err := accounting.ApplyRates(rows, params.ReportType)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("rows", len(adjusted)))

	aggregated := accounting.AggregateByPeriod(adjusted)
	return &domain.PerformanceReport{
		Params:              params,
		Timeframe:           periods.Timeframe(),
		Overview:            accounting.DeriveRatios(aggregated, domain.DenominatorSales),
		CostStructure:       accounting.DeriveRatios(aggregated, domain.DenominatorCosts),
		DepartmentBreakdown: accounting.PrepareDepartmentBreakdown(adjusted),
		Turnover:            accounting.PrepareTurnover(adjusted, params.Department, params.TurnoverPivot),
		CostSummary:         accounting.CumulativeCostSummary(adjusted, params.Department),
		Hierarchy:           accounting.BuildCostHierarchy(adjusted, params.TagStrategy),
		Rows:                adjusted,
		Notices:             s.notices(params, periods),
		GeneratedAt:         s.now().UTC(),
	}, nil
}

// currentPeriodNotice warns when the range runs up to or past the period holding today.
func (s *reportingService) currentPeriodNotice(periods domain.PeriodRange) (domain.Notice, bool) {
	now := s.now()
	if !periods.Reaches(now.Year(), int(now.Month())) {
		return domain.Notice{}, false
	}
	return domain.Notice{
		Level: domain.NoticeWarning,
		Message: fmt.Sprintf("The current period %s is selected; its data might be incomplete.",
			domain.CurrentPeriod(now, periods.Timeframe())),
	}, true
}

func (s *reportingService) notices(params domain.ReportParams, periods domain.PeriodRange) []domain.Notice {
	var out []domain.Notice
	if n, ok := s.currentPeriodNotice(periods); ok {
		out = append(out, n)
	}
	if params.SplitOfficeCost {
		for _, year := range unsplittableYears {
			if periods.IncludesYear(year) {
				out = append(out, domain.Notice{
					Level:   domain.NoticeInfo,
					Message: "Data for 2020 and 2021 cannot be split by cost center.",
				})
				break
			}
		}
	}
	return out
}

// SalesAverages loads point-of-sale records for the range and summarises them per period.
func (s *reportingService) SalesAverages(ctx context.Context, params domain.SalesParams) (*domain.SalesReport, error) {
	params.Department = strings.TrimSpace(params.Department)
	periods, err := domain.NewPeriodRange(params.Start, params.End)
	if err != nil {
		return nil, err
	}
	params.Start, params.End = periods.Start.String(), periods.End.String()

	ctx, span := s.tracer.Start(ctx, "ReportingService.SalesAverages",
		trace.WithAttributes(
			attribute.String("department", params.Department),
			attribute.String("start", params.Start),
			attribute.String("end", params.End),
		))
	defer span.End()

	raw, err := s.reportingRepo.FindSalesRows(ctx, domain.RowFilter{Department: params.Department, Range: periods})
	if err != nil {
		s.LogError(ctx, err, "Failed to load sales rows",
			slog.String("start", params.Start),
			slog.String("end", params.End),
			slog.String("department", params.Department))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load sales rows: %w", err)
	}

	report := &domain.SalesReport{
		Params:      params,
		Timeframe:   periods.Timeframe(),
		Averages:    accounting.PrepareAverageSales(domain.NormalizeSalesPeriods(raw, periods.Timeframe())),
		RowCount:    len(raw),
		GeneratedAt: s.now().UTC(),
	}
	if n, ok := s.currentPeriodNotice(periods); ok {
		report.Notices = append(report.Notices, n)
	}

	s.LogInfo(ctx, "Sales averages generated successfully",
		slog.String("start", params.Start),
		slog.String("end", params.End),
		slog.Int("row_count", report.RowCount))
	return report, nil
}

// AvailablePeriods lists the period labels present in the ledger.
func (s *reportingService) AvailablePeriods(ctx context.Context, timeframe domain.Timeframe) ([]string, error) {
	periods, err := s.reportingRepo.ListPeriods(ctx, timeframe)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods", slog.String("timeframe", string(timeframe)))
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}
