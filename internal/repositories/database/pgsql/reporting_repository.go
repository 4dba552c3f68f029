package pgsql

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/SscSPs/finreport_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/finreport_backend/internal/core/ports/repositories"
	"github.com/SscSPs/finreport_backend/internal/models"
	"github.com/SscSPs/finreport_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("finreport/repositories/pgsql")

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: newBaseRepository(db),
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// FindFinancialRows loads the joined ledger rows for a report.
func (r *reportingRepository) FindFinancialRows(ctx context.Context, filter domain.RowFilter) ([]domain.TransactionRow, error) {
	ctx, span := tracer.Start(ctx, "ReportingRepository.FindFinancialRows",
		trace.WithAttributes(
			attribute.String("department", filter.Department),
			attribute.String("start", filter.Range.Start.String()),
			attribute.String("end", filter.Range.End.String()),
		))
	defer span.End()

	var items []models.FinancialRow
	if err := r.selectInto(ctx, &items, BuildFinancialRowsQuery(r.Builder, filter), "financial rows"); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("rows", len(items)))
	return mapping.ToDomainTransactionRows(items), nil
}

// FindSalesRows loads the joined point-of-sale records for a sales report.
func (r *reportingRepository) FindSalesRows(ctx context.Context, filter domain.RowFilter) ([]domain.SalesRow, error) {
	ctx, span := tracer.Start(ctx, "ReportingRepository.FindSalesRows",
		trace.WithAttributes(
			attribute.String("department", filter.Department),
			attribute.String("start", filter.Range.Start.String()),
			attribute.String("end", filter.Range.End.String()),
		))
	defer span.End()

	var items []models.SalesRow
	if err := r.selectInto(ctx, &items, BuildSalesRowsQuery(r.Builder, filter), "sales rows"); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("rows", len(items)))
	return mapping.ToDomainSalesRows(items), nil
}

// ListPeriods returns the distinct period labels in financial_data.
func (r *reportingRepository) ListPeriods(ctx context.Context, timeframe domain.Timeframe) ([]string, error) {
	q := r.Builder.
		Select("DISTINCT fd.year", "fd.month").
		From("financial_data fd")

	var keys []models.PeriodKey
	if err := r.selectInto(ctx, &keys, q, "periods"); err != nil {
		return nil, err
	}
	return PeriodLabels(keys, timeframe), nil
}

// BuildFinancialRowsQuery renders the loader query. The period range is compared
// numerically on (year, quarter) or (year, month).
func BuildFinancialRowsQuery(b squirrel.StatementBuilderType, filter domain.RowFilter) squirrel.SelectBuilder {
	q := b.Select(
		"fd.year",
		"fd.month",
		"fd.location_id",
		"COALESCE(l.short_name, '') AS location_name",
		"COALESCE(d.name, '') AS department_name",
		"COALESCE(c.name, '') AS class_name",
		"COALESCE(l.country, '') AS country",
		"COALESCE(l.currency, 'EUR') AS currency",
		"fa.account_id",
		"fa.account_name",
		"fa.account_type",
		"fd.amount",
		"fa.std_rate",
		"fa.adj_rate",
		"fa.adj_coef_rate",
	).
		From("financial_data fd").
		Join("financial_accounts fa ON fa.account_id = fd.account_id").
		LeftJoin("locations l ON l.id = fd.location_id").
		LeftJoin("departments d ON d.id = l.department_id").
		LeftJoin("classes c ON c.id = l.class_id").
		Where(periodRangeExpr(filter.Range, "fd.year", "fd.month")).
		OrderBy("fd.year", "fd.month", "fd.id")

	if filter.Department != "" {
		q = q.Where(squirrel.Eq{"d.name": filter.Department})
	}
	return q
}

// Integer calendar parts of a sale date.
const (
	saleYear  = "CAST(EXTRACT(YEAR FROM sd.sale_date) AS INT)"
	saleMonth = "CAST(EXTRACT(MONTH FROM sd.sale_date) AS INT)"
)

// BuildSalesRowsQuery renders the sales loader query, using the same numeric
// period range as the ledger loader.
func BuildSalesRowsQuery(b squirrel.StatementBuilderType, filter domain.RowFilter) squirrel.SelectBuilder {
	q := b.Select(
		"sd.sale_date",
		"COALESCE(l.short_name, '') AS location_name",
		"COALESCE(d.name, '') AS department_name",
		"COALESCE(l.country, '') AS country",
		"COALESCE(sd.product_category, '') AS product_category",
		"COALESCE(sd.unit, '') AS unit",
		"sd.amount",
		"sd.quantity",
	).
		From("sales_data sd").
		Join("locations l ON l.id = sd.location_id").
		LeftJoin("departments d ON d.id = l.department_id").
		Where(periodRangeExpr(filter.Range, saleYear, saleMonth)).
		OrderBy("sd.sale_date", "sd.id")

	if filter.Department != "" {
		q = q.Where(squirrel.Eq{"d.name": filter.Department})
	}
	return q
}

// periodRangeExpr compares (year, quarter) or (year, month) as a single integer,
// given integer year and month column expressions.
func periodRangeExpr(pr domain.PeriodRange, year, month string) squirrel.Sqlizer {
	switch pr.Timeframe() {
	case domain.TimeframeQuarter:
		return squirrel.Expr(fmt.Sprintf("(%s * 10 + (%s - 1) / 3 + 1) BETWEEN ? AND ?", year, month),
			pr.Start.Year*10+pr.Start.Sub, pr.End.Year*10+pr.End.Sub)
	case domain.TimeframeMonth:
		return squirrel.Expr(fmt.Sprintf("(%s * 100 + %s) BETWEEN ? AND ?", year, month),
			pr.Start.Year*100+pr.Start.Sub, pr.End.Year*100+pr.End.Sub)
	default:
		return squirrel.Expr(fmt.Sprintf("%s BETWEEN ? AND ?", year), pr.Start.Year, pr.End.Year)
	}
}

// PeriodLabels maps distinct calendar months onto sorted, de-duplicated period labels.
func PeriodLabels(keys []models.PeriodKey, timeframe domain.Timeframe) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		label := domain.PeriodLabel(k.Year, k.Month, timeframe)
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}
