package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/finreport_backend/internal/apperrors"
	"github.com/SscSPs/finreport_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/finreport_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/finreport_backend/internal/core/ports/services"
	"github.com/SscSPs/finreport_backend/internal/core/services"
	"github.com/SscSPs/finreport_backend/internal/platform/cache"
	"github.com/SscSPs/finreport_backend/internal/utils/adjustment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) FindFinancialRows(ctx context.Context, filter domain.RowFilter) ([]domain.TransactionRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionRow), args.Error(1)
}

func (m *MockReportingRepository) FindSalesRows(ctx context.Context, filter domain.RowFilter) ([]domain.SalesRow, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesRow), args.Error(1)
}

func (m *MockReportingRepository) ListPeriods(ctx context.Context, timeframe domain.Timeframe) ([]string, error) {
	args := m.Called(ctx, timeframe)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

var one = decimal.NewFromInt(1)

func ledgerRow(year, month int, dept string, accountType domain.AccountType, accountName string, amount int64) domain.TransactionRow {
	return domain.TransactionRow{
		Year:           year,
		Month:          month,
		DepartmentName: dept,
		AccountID:      accountName,
		AccountName:    accountName,
		AccountType:    accountType,
		Currency:       "EUR",
		Amount:         decimal.NewFromInt(amount),
		Rates:          domain.AccountRates{Standard: &one},
	}
}

func ledger() []domain.TransactionRow {
	return []domain.TransactionRow{
		ledgerRow(2024, 1, domain.DepartmentRestaurant, domain.AccountTypeSales, "Sales", 1000),
		ledgerRow(2024, 2, domain.DepartmentRestaurant, domain.AccountTypeMaterial, "Food", 200),
		ledgerRow(2024, 3, domain.DepartmentSushibar, domain.AccountTypeSales, "Sales", 3000),
		ledgerRow(2024, 3, domain.DepartmentHeadOffice, domain.AccountTypeStaff, "Wages", 100),
	}
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingService
	now      time.Time
	ctx      context.Context
}

func (s *ReportingServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockReportingRepository)
	s.now = time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	adjuster, err := adjustment.NewAdjuster(adjustment.DefaultRules)
	s.Require().NoError(err)
	s.service = services.NewReportingService(s.mockRepo,
		services.WithAdjuster(adjuster),
		services.WithClock(func() time.Time { return s.now }),
	)
	s.ctx = context.Background()
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

func (s *ReportingServiceTestSuite) periodRange(start, end string) domain.PeriodRange {
	pr, err := domain.NewPeriodRange(start, end)
	s.Require().NoError(err)
	return pr
}

func (s *ReportingServiceTestSuite) TestPerformanceReport_AllDepartments() {
	filter := domain.RowFilter{Range: s.periodRange("2024-Q1", "2024-Q1")}
	s.mockRepo.On("FindFinancialRows", mock.Anything, filter).Return(ledger(), nil).Once()

	report, err := s.service.PerformanceReport(s.ctx, domain.ReportParams{Start: "2024-q1", End: "2024-Q1"})
	s.Require().NoError(err)

	s.Equal(domain.TimeframeQuarter, report.Timeframe)
	s.Equal(domain.ReportTypeStandard, report.Params.ReportType)
	s.Require().Len(report.Overview, 1)
	ov := report.Overview[0]
	s.Equal("2024-Q1", ov.Period)
	s.True(ov.Sales.Equal(decimal.NewFromInt(4000)))
	s.True(ov.Material.Equal(decimal.NewFromInt(200)))
	s.True(ov.Staff.Equal(decimal.NewFromInt(100)))
	s.True(ov.AmountCalc.Equal(decimal.NewFromInt(3700)))
	s.True(ov.MaterialRate.Equal(decimal.RequireFromString("0.05")))

	s.Require().Len(report.CostStructure, 1)
	s.True(report.CostStructure[0].MaterialRate.Round(4).Equal(decimal.RequireFromString("0.6667")))

	s.Len(report.DepartmentBreakdown, 3)
	s.Len(report.Rows, 4)
	s.True(report.CostSummary.Total.Total.Equal(decimal.NewFromInt(300)))
	s.Equal(domain.HierarchyRoot, report.Hierarchy[len(report.Hierarchy)-1].ID)
	s.Empty(report.Notices)
	s.Equal(s.now, report.GeneratedAt)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *ReportingServiceTestSuite) TestPerformanceReport_SplitLoadsEveryDepartment() {
	filter := domain.RowFilter{Range: s.periodRange("2024-Q1", "2024-Q1")}
	s.mockRepo.On("FindFinancialRows", mock.Anything, filter).Return(ledger(), nil).Once()

	report, err := s.service.PerformanceReport(s.ctx, domain.ReportParams{
		Department:      domain.DepartmentRestaurant,
		Start:           "2024-Q1",
		End:             "2024-Q1",
		SplitOfficeCost: true,
	})
	s.Require().NoError(err)

	s.Require().Len(report.Overview, 1)
	ov := report.Overview[0]
	s.True(ov.Sales.Equal(decimal.NewFromInt(1000)))
	s.True(ov.Staff.Equal(decimal.NewFromInt(25)), "restaurant carries a quarter of head office wages, got %s", ov.Staff)
	s.True(ov.AmountCalc.Equal(decimal.NewFromInt(775)))
	for _, r := range report.Rows {
		s.Equal(domain.DepartmentRestaurant, r.DepartmentName)
	}
	s.mockRepo.AssertExpectations(s.T())
}

func (s *ReportingServiceTestSuite) TestPerformanceReport_DepartmentScopedLoad() {
	filter := domain.RowFilter{Department: domain.DepartmentSushibar, Range: s.periodRange("2024", "2024")}
	s.mockRepo.On("FindFinancialRows", mock.Anything, filter).
		Return([]domain.TransactionRow{ledger()[2]}, nil).Once()

	report, err := s.service.PerformanceReport(s.ctx, domain.ReportParams{
		Department: domain.DepartmentSushibar,
		Start:      "2024",
		End:        "2024",
	})
	s.Require().NoError(err)
	s.Require().Len(report.Overview, 1)
	s.Equal("2024", report.Overview[0].Period)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *ReportingServiceTestSuite) TestPerformanceReport_ValidationErrors() {
	testCases := []struct {
		name    string
		params  domain.ReportParams
		wantErr error
	}{
		{"start after end", domain.ReportParams{Start: "2024-Q3", End: "2024-Q1"}, apperrors.ErrValidation},
		{"mixed granularity", domain.ReportParams{Start: "2024-Q1", End: "2024-M03"}, apperrors.ErrValidation},
		{"malformed period", domain.ReportParams{Start: "24-Q1", End: "2024-Q1"}, apperrors.ErrInvalidPeriod},
		{"unknown report type", domain.ReportParams{Start: "2024", End: "2024", ReportType: "fancy"}, apperrors.ErrUnknownReportType},
		{"unknown tag strategy", domain.ReportParams{Start: "2024", End: "2024", TagStrategy: "emoji"}, apperrors.ErrValidation},
		{"unknown pivot", domain.ReportParams{Start: "2024", End: "2024", TurnoverPivot: "country"}, apperrors.ErrValidation},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.service.PerformanceReport(s.ctx, tc.params)
			s.ErrorIs(err, tc.wantErr)
		})
	}
	s.mockRepo.AssertNotCalled(s.T(), "FindFinancialRows", mock.Anything, mock.Anything)
}

func (s *ReportingServiceTestSuite) TestPerformanceReport_MissingRateColumn() {
	rows := ledger()
	rows[0].Rates = domain.AccountRates{}
	s.mockRepo.On("FindFinancialRows", mock.Anything, mock.Anything).Return(rows, nil).Once()

	_, err := s.service.PerformanceReport(s.ctx, domain.ReportParams{Start: "2024-Q1", End: "2024-Q1"})
	s.ErrorIs(err, apperrors.ErrUnknownRateColumn)
}

func (s *ReportingServiceTestSuite) TestPerformanceReport_RepositoryError() {
	repoErr := apperrors.NewAppError(500, "failed to query financial rows", errors.New("connection refused"))
	s.mockRepo.On("FindFinancialRows", mock.Anything, mock.Anything).Return(nil, repoErr).Once()

	_, err := s.service.PerformanceReport(s.ctx, domain.ReportParams{Start: "2024-Q1", End: "2024-Q1"})
	s.Require().Error(err)
	var appErr *apperrors.AppError
	s.True(errors.As(err, &appErr))
	s.Contains(err.Error(), "failed to load financial rows")
}

func (s *ReportingServiceTestSuite) TestPerformanceReport_Notices() {
	s.mockRepo.On("FindFinancialRows", mock.Anything, mock.Anything).Return(ledger(), nil)

	report, err := s.service.PerformanceReport(s.ctx, domain.ReportParams{Start: "2025-M05", End: "2025-M06"})
	s.Require().NoError(err)
	s.Require().Len(report.Notices, 1)
	s.Equal(domain.NoticeWarning, report.Notices[0].Level)
	s.Contains(report.Notices[0].Message, "2025-M06")

	report, err = s.service.PerformanceReport(s.ctx, domain.ReportParams{Start: "2021", End: "2022", SplitOfficeCost: true})
	s.Require().NoError(err)
	s.Require().Len(report.Notices, 1)
	s.Equal(domain.NoticeInfo, report.Notices[0].Level)

	report, err = s.service.PerformanceReport(s.ctx, domain.ReportParams{Start: "2021", End: "2022"})
	s.Require().NoError(err)
	s.Empty(report.Notices)
}

func (s *ReportingServiceTestSuite) TestPerformanceReport_FutureRangeWarns() {
	s.mockRepo.On("FindFinancialRows", mock.Anything, mock.Anything).Return([]domain.TransactionRow{}, nil).Once()

	report, err := s.service.PerformanceReport(s.ctx, domain.ReportParams{Start: "2025-Q3", End: "2025-Q4"})
	s.Require().NoError(err)
	s.Require().Len(report.Notices, 1)
	s.Equal(domain.NoticeWarning, report.Notices[0].Level)
	s.Contains(report.Notices[0].Message, "2025-Q2")
}

func salesRow(month, day int, location, category, unit string, amount, quantity int64) domain.SalesRow {
	return domain.SalesRow{
		Date:            time.Date(2024, time.Month(month), day, 0, 0, 0, 0, time.UTC),
		LocationName:    location,
		DepartmentName:  domain.DepartmentSushibar,
		ProductCategory: category,
		Unit:            unit,
		Amount:          decimal.NewFromInt(amount),
		Quantity:        decimal.NewFromInt(quantity),
	}
}

func (s *ReportingServiceTestSuite) TestSalesAverages() {
	filter := domain.RowFilter{Department: domain.DepartmentSushibar, Range: s.periodRange("2024-Q1", "2024-Q2")}
	s.mockRepo.On("FindSalesRows", mock.Anything, filter).Return([]domain.SalesRow{
		salesRow(1, 5, "Kiosk 1", "Sushi", "KG", 400, 4),
		salesRow(2, 6, "Kiosk 2", "Sushi", "KG", 200, 2),
		salesRow(5, 7, "Kiosk 1", "Sushi", "KG", 300, 3),
	}, nil).Once()

	report, err := s.service.SalesAverages(s.ctx, domain.SalesParams{
		Department: " " + domain.DepartmentSushibar + " ",
		Start:      "2024-q1",
		End:        "2024-Q2",
	})
	s.Require().NoError(err)

	s.Equal(domain.SalesParams{Department: domain.DepartmentSushibar, Start: "2024-Q1", End: "2024-Q2"}, report.Params)
	s.Equal(domain.TimeframeQuarter, report.Timeframe)
	s.Equal(3, report.RowCount)
	s.Require().Len(report.Averages, 2)
	q1 := report.Averages[0]
	s.Equal("2024-Q1", q1.Period)
	s.Equal(2, q1.UniqueLocations)
	s.Equal(2, q1.OperationalDays)
	s.True(q1.AverageDailySales.Equal(decimal.NewFromInt(300)))
	s.True(q1.AverageDailySushi.Equal(decimal.NewFromInt(3)))
	s.Equal("2024-Q2", report.Averages[1].Period)
	s.Empty(report.Notices)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *ReportingServiceTestSuite) TestSalesAverages_CurrentPeriodNotice() {
	s.mockRepo.On("FindSalesRows", mock.Anything, mock.Anything).Return([]domain.SalesRow{}, nil).Once()

	report, err := s.service.SalesAverages(s.ctx, domain.SalesParams{Start: "2025-M06", End: "2025-M08"})
	s.Require().NoError(err)
	s.Empty(report.Averages)
	s.Require().Len(report.Notices, 1)
	s.Contains(report.Notices[0].Message, "2025-M06")
}

func (s *ReportingServiceTestSuite) TestSalesAverages_Errors() {
	_, err := s.service.SalesAverages(s.ctx, domain.SalesParams{Start: "2024-Q3", End: "2024-Q1"})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "FindSalesRows", mock.Anything, mock.Anything)

	repoErr := apperrors.NewAppError(500, "failed to query sales rows", errors.New("connection refused"))
	s.mockRepo.On("FindSalesRows", mock.Anything, mock.Anything).Return(nil, repoErr).Once()
	_, err = s.service.SalesAverages(s.ctx, domain.SalesParams{Start: "2024", End: "2024"})
	s.Require().Error(err)
	var appErr *apperrors.AppError
	s.True(errors.As(err, &appErr))
	s.Contains(err.Error(), "failed to load sales rows")
}

func (s *ReportingServiceTestSuite) TestAvailablePeriods() {
	s.mockRepo.On("ListPeriods", mock.Anything, domain.TimeframeQuarter).
		Return([]string{"2024-Q1", "2024-Q2"}, nil).Once()

	periods, err := s.service.AvailablePeriods(s.ctx, domain.TimeframeQuarter)
	s.Require().NoError(err)
	s.Equal([]string{"2024-Q1", "2024-Q2"}, periods)
	s.mockRepo.AssertExpectations(s.T())
}

func TestPerformanceReport_CachedByCanonicalParams(t *testing.T) {
	repo := new(MockReportingRepository)
	repo.On("FindFinancialRows", mock.Anything, mock.Anything).Return(ledger(), nil).Once()

	reportCache := cache.NewReportCache(8, time.Minute)
	svc := services.NewReportingService(repo, services.WithReportCache(reportCache))

	first, err := svc.PerformanceReport(context.Background(), domain.ReportParams{Start: "2024-q1", End: "2024-Q1"})
	require.NoError(t, err)
	second, err := svc.PerformanceReport(context.Background(), domain.ReportParams{
		Start:      "2024-Q1",
		End:        "2024-Q1",
		ReportType: domain.ReportTypeStandard,
	})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, reportCache.Len())
	repo.AssertNumberOfCalls(t, "FindFinancialRows", 1)
}
