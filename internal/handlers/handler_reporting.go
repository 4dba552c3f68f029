package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/finreport_backend/internal/apperrors"
	"github.com/SscSPs/finreport_backend/internal/core/domain"
	portssvc "github.com/SscSPs/finreport_backend/internal/core/ports/services"
	"github.com/SscSPs/finreport_backend/internal/dto"
	"github.com/SscSPs/finreport_backend/internal/middleware"
	"github.com/SscSPs/finreport_backend/internal/utils"
	"github.com/SscSPs/finreport_backend/internal/utils/export"
	"github.com/SscSPs/finreport_backend/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	analytics        *utils.PosthogClientWrapper
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(rs portssvc.ReportingService, analytics *utils.PosthogClientWrapper) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		analytics:        analytics,
	}
}

// RegisterReportingRoutes registers routes related to financial reports.
// It fails when the custom query validators cannot be installed.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService, analytics *utils.PosthogClientWrapper) error {
	if err := registerValidators(); err != nil {
		return err
	}
	h := newReportingHandler(reportingService, analytics)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/periods", h.listPeriods)
		reportingGroup.GET("/performance", h.getPerformanceReport)
		reportingGroup.GET("/performance/rows", h.listReportRows)
		reportingGroup.GET("/performance/export", h.exportPerformanceReport)
		reportingGroup.GET("/sales/averages", h.getSalesAverages)
	}
	return nil
}

// respondReportError maps service errors to HTTP responses.
func respondReportError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case apperrors.IsConfigurationError(err):
		logger.Warn("Invalid report request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Report data not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "No data found for the requested report"})
	default:
		logger.Error("Failed to generate performance report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate performance report"})
	}
}

// listPeriods godoc
// @Summary List available periods
// @Description Lists the distinct period labels present in the ledger, ascending
// @Tags reports
// @Produce json
// @Param timeframe query string false "Granularity" Enums(year, quarter, month) default(quarter)
// @Success 200 {object} dto.ListPeriodsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Security BearerAuth
// @Router /reports/periods [get]
func (h *reportingHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.ListPeriodsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid periods query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	timeframe, err := domain.ParseTimeframe(query.Timeframe)
	if err != nil {
		respondReportError(c, logger, err)
		return
	}

	periods, err := h.reportingService.AvailablePeriods(c.Request.Context(), timeframe)
	if err != nil {
		logger.Error("Failed to list periods", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list periods"})
		return
	}
	if periods == nil {
		periods = []string{}
	}

	c.JSON(http.StatusOK, dto.ListPeriodsResponse{Timeframe: string(timeframe), Periods: periods})
}

// buildReport binds the shared report query and runs the service. It writes the error
// response itself and returns nil on failure.
func (h *reportingHandler) buildReport(c *gin.Context, query *dto.PerformanceReportQuery, logger *slog.Logger) *domain.PerformanceReport {
	params := query.ToReportParams()
	logger.Info("Received request to generate performance report",
		slog.String("start", params.Start),
		slog.String("end", params.End),
		slog.String("report_type", string(params.ReportType)),
		slog.String("department", params.Department),
		slog.Bool("custom_adjustment", params.CustomAdjustment),
		slog.Bool("split_office_cost", params.SplitOfficeCost))

	report, err := h.reportingService.PerformanceReport(c.Request.Context(), params)
	if err != nil {
		respondReportError(c, logger, err)
		return nil
	}
	return report
}

// getPerformanceReport godoc
// @Summary Generate performance report
// @Description Aggregates sales and costs per period with cost ratios, cumulative department totals, the cost hierarchy and a turnover pivot
// @Tags reports
// @Produce json
// @Param start query string true "First period (YYYY, YYYY-Qn or YYYY-Mnn)"
// @Param end query string true "Last period, same granularity as start"
// @Param reportType query string false "Rate column" Enums(standard, adjusted, adjusted_coef) default(standard)
// @Param department query string false "Department name; empty for all"
// @Param customAdjustment query bool false "Apply bookkeeping corrections"
// @Param splitOfficeCost query bool false "Allocate head office costs by sales share"
// @Param tagStrategy query string false "Hierarchy label suffix" Enums(stable, initial) default(stable)
// @Param pivot query string false "Turnover pivot" Enums(department, location, class) default(department)
// @Success 200 {object} dto.PerformanceReportResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/performance [get]
func (h *reportingHandler) getPerformanceReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.PerformanceReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid performance report query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report := h.buildReport(c, &query, logger)
	if report == nil {
		return
	}

	logger.Info("Performance report generated successfully",
		slog.Int("period_count", len(report.Overview)),
		slog.Int("row_count", len(report.Rows)))
	c.JSON(http.StatusOK, dto.ToPerformanceReportResponse(report))
}

// listReportRows godoc
// @Summary List report drill-down rows
// @Description Pages through the adjusted rows behind a performance report
// @Tags reports
// @Produce json
// @Param start query string true "First period"
// @Param end query string true "Last period"
// @Param reportType query string false "Rate column" Enums(standard, adjusted, adjusted_coef) default(standard)
// @Param department query string false "Department name; empty for all"
// @Param customAdjustment query bool false "Apply bookkeeping corrections"
// @Param splitOfficeCost query bool false "Allocate head office costs by sales share"
// @Param limit query int false "Page size" default(100)
// @Param pageToken query string false "Token from a previous page"
// @Success 200 {object} dto.ListReportRowsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/performance/rows [get]
func (h *reportingHandler) listReportRows(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.ListReportRowsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid report rows query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	scope := query.ToReportParams().CacheKey()
	offset, err := pagination.DecodeOffsetToken(query.PageToken, scope)
	if err != nil {
		logger.Warn("Invalid page token", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pageToken"})
		return
	}

	report := h.buildReport(c, &query.PerformanceReportQuery, logger)
	if report == nil {
		return
	}

	page, next := pagination.Page(report.Rows, scope, offset, pagination.ClampLimit(query.Limit))
	c.JSON(http.StatusOK, dto.ListReportRowsResponse{
		Rows:      dto.ToReportRowResponses(page),
		Total:     len(report.Rows),
		NextToken: next,
	})
}

// exportPerformanceReport godoc
// @Summary Export performance report
// @Description Downloads the performance report as an XLSX workbook, one sheet per table
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param start query string true "First period"
// @Param end query string true "Last period"
// @Param reportType query string false "Rate column" Enums(standard, adjusted, adjusted_coef) default(standard)
// @Param department query string false "Department name; empty for all"
// @Param customAdjustment query bool false "Apply bookkeeping corrections"
// @Param splitOfficeCost query bool false "Allocate head office costs by sales share"
// @Success 200 {file} file
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /reports/performance/export [get]
func (h *reportingHandler) exportPerformanceReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.PerformanceReportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid export query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report := h.buildReport(c, &query, logger)
	if report == nil {
		return
	}

	wb, err := export.ReportWorkbook(report)
	if err != nil {
		respondReportError(c, logger, fmt.Errorf("failed to build report workbook: %w", err))
		return
	}
	defer func() { _ = wb.Close() }()

	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(report.Params)))
	c.Status(http.StatusOK)
	if _, err := wb.WriteTo(c.Writer); err != nil {
		logger.Error("Failed to stream report workbook", slog.String("error", err.Error()))
		return
	}

	middleware.PosthogEvent(c, h.analytics, "report_exported", map[string]any{
		"start":       report.Params.Start,
		"end":         report.Params.End,
		"report_type": string(report.Params.ReportType),
	})
}

// getSalesAverages godoc
// @Summary Average sales per period
// @Description Summarises point-of-sale data per period: total sales, sushi quantity, locations, operational days and daily averages
// @Tags reports
// @Produce json
// @Param start query string true "First period (YYYY, YYYY-Qn or YYYY-Mnn)"
// @Param end query string true "Last period, same granularity as start"
// @Param department query string false "Department name; empty for all"
// @Success 200 {object} dto.SalesAveragesResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to summarise sales"
// @Security BearerAuth
// @Router /reports/sales/averages [get]
func (h *reportingHandler) getSalesAverages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.SalesAveragesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Invalid sales averages query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	report, err := h.reportingService.SalesAverages(c.Request.Context(), query.ToSalesParams())
	if err != nil {
		if apperrors.IsConfigurationError(err) {
			respondReportError(c, logger, err)
			return
		}
		logger.Error("Failed to summarise sales", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarise sales"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSalesAveragesResponse(report))
}
