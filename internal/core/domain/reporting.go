package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/finreport_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Denominator selects the base used when deriving cost ratios.
type Denominator string

const (
	DenominatorSales Denominator = "sales"
	DenominatorCosts Denominator = "costs"
)

// ParseDenominator validates a denominator mode.
func ParseDenominator(s string) (Denominator, error) {
	switch d := Denominator(strings.ToLower(strings.TrimSpace(s))); d {
	case DenominatorSales, DenominatorCosts:
		return d, nil
	}
	return "", fmt.Errorf("%w: unknown denominator %q", apperrors.ErrValidation, s)
}

// WideAggregateRow is one period of the category aggregation plus its derived ratios.
type WideAggregateRow struct {
	Period       string          `json:"period"`
	AmountCalc   decimal.Decimal `json:"amountCalc"` // net: sales minus all costs
	Sales        decimal.Decimal `json:"amountCalcSales"`
	Material     decimal.Decimal `json:"amountCalcMaterial"`
	Staff        decimal.Decimal `json:"amountCalcStaff"`
	Other        decimal.Decimal `json:"amountCalcOther"`
	MaterialRate decimal.Decimal `json:"materialRate"`
	StaffRate    decimal.Decimal `json:"staffRate"`
	OtherRate    decimal.Decimal `json:"otherRate"`
	ProfitRate   decimal.Decimal `json:"profitRate"`
}

// Department is one member of the closed set used by the cumulative cost summary.
type Department struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Operating department names as booked in the ledger.
const (
	DepartmentSushibar   = "Food Kiosk Sushibar"
	DepartmentPlant      = "Food Plant"
	DepartmentRestaurant = "Restaurant"
	DepartmentHeadOffice = "Head Office"
)

// KnownDepartments is the closed department set, in display order.
var KnownDepartments = []Department{
	{Key: "sushibar", Name: DepartmentSushibar},
	{Key: "plant", Name: DepartmentPlant},
	{Key: "restaurant", Name: DepartmentRestaurant},
	{Key: "office", Name: DepartmentHeadOffice},
}

// DepartmentKey returns the short code of a known department.
func DepartmentKey(name string) (string, bool) {
	for _, d := range KnownDepartments {
		if d.Name == name {
			return d.Key, true
		}
	}
	return "", false
}

// CategoryTotals is a cost total split into its three categories.
type CategoryTotals struct {
	Total    decimal.Decimal `json:"total"`
	Material decimal.Decimal `json:"material"`
	Staff    decimal.Decimal `json:"staff"`
	Other    decimal.Decimal `json:"other"`
}

// DepartmentCostSummary holds cumulative cost totals over the whole requested range.
// ByDepartment always carries an entry for every KnownDepartments key.
type DepartmentCostSummary struct {
	Departments  []string                  `json:"departments"`
	Total        CategoryTotals            `json:"total"`
	ByDepartment map[string]CategoryTotals `json:"byDepartment"`
}

// AsMap flattens the summary into the named totals used by dashboards,
// e.g. total_cost or total_restaurant_staff.
func (s DepartmentCostSummary) AsMap() map[string]decimal.Decimal {
	out := map[string]decimal.Decimal{
		"total_cost":          s.Total.Total,
		"total_material_cost": s.Total.Material,
		"total_staff_cost":    s.Total.Staff,
		"total_other_cost":    s.Total.Other,
	}
	for _, d := range KnownDepartments {
		t := s.ByDepartment[d.Key]
		out["total_"+d.Key+"_cost"] = t.Total
		out["total_"+d.Key+"_material"] = t.Material
		out["total_"+d.Key+"_staff"] = t.Staff
		out["total_"+d.Key+"_other"] = t.Other
	}
	return out
}

// HierarchyRoot is the id of the synthetic root node.
const HierarchyRoot = "total"

// HierarchyNode is one node of the account -> account type -> department tree.
type HierarchyNode struct {
	ID     string          `json:"id"`
	Parent string          `json:"parent"`
	Value  decimal.Decimal `json:"value"`
	Color  decimal.Decimal `json:"color"`
}

// TagStrategy controls how hierarchy labels are disambiguated across departments.
type TagStrategy string

const (
	// TagStableCode suffixes labels with the department short code.
	TagStableCode TagStrategy = "stable"
	// TagLastInitial suffixes labels with the first letter of the department's last word.
	// Departments sharing that letter collide; kept for dashboards built against it.
	TagLastInitial TagStrategy = "initial"
)

// ParseTagStrategy validates a tag strategy; empty selects TagStableCode.
func ParseTagStrategy(s string) (TagStrategy, error) {
	switch ts := TagStrategy(strings.ToLower(strings.TrimSpace(s))); ts {
	case "":
		return TagStableCode, nil
	case TagStableCode, TagLastInitial:
		return ts, nil
	}
	return "", fmt.Errorf("%w: unknown tag strategy %q", apperrors.ErrValidation, s)
}

// TurnoverPivot is the dimension sales are broken down by.
type TurnoverPivot string

const (
	PivotDepartment TurnoverPivot = "department"
	PivotLocation   TurnoverPivot = "location"
	PivotClass      TurnoverPivot = "class"
)

// ParseTurnoverPivot validates a pivot; empty selects PivotDepartment.
func ParseTurnoverPivot(s string) (TurnoverPivot, error) {
	switch p := TurnoverPivot(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PivotDepartment, nil
	case PivotDepartment, PivotLocation, PivotClass:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown pivot %q", apperrors.ErrValidation, s)
}

// TurnoverRow is one period of the sales pivot.
type TurnoverRow struct {
	Period string                     `json:"period"`
	Values map[string]decimal.Decimal `json:"values"`
}

// TurnoverTable is sales per period broken down by a pivot dimension.
type TurnoverTable struct {
	Pivot   TurnoverPivot `json:"pivot"`
	Columns []string      `json:"columns"`
	Rows    []TurnoverRow `json:"rows"`
}

// DepartmentBreakdown is the sales-denominated overview restricted to one department.
type DepartmentBreakdown struct {
	Department string             `json:"department"`
	Rows       []WideAggregateRow `json:"rows"`
}

// RowFilter selects the ledger rows loaded for a report. An empty Department loads every department.
type RowFilter struct {
	Department string
	Range      PeriodRange
}

// ReportParams is the full parameter tuple of one performance report.
type ReportParams struct {
	Department       string
	ReportType       ReportType
	Start            string
	End              string
	CustomAdjustment bool
	SplitOfficeCost  bool
	TagStrategy      TagStrategy
	TurnoverPivot    TurnoverPivot
}

// Canonical returns the params with defaults applied and labels normalised,
// so that equivalent requests share one cache key.
func (p ReportParams) Canonical() ReportParams {
	p.Department = strings.TrimSpace(p.Department)
	if ps, err := ParsePeriod(p.Start); err == nil {
		p.Start = ps.String()
	}
	if pe, err := ParsePeriod(p.End); err == nil {
		p.End = pe.String()
	}
	if p.ReportType == "" {
		p.ReportType = ReportTypeStandard
	}
	if p.TagStrategy == "" {
		p.TagStrategy = TagStableCode
	}
	if p.TurnoverPivot == "" {
		p.TurnoverPivot = PivotDepartment
	}
	return p
}

// CacheKey identifies the report for memoization.
func (p ReportParams) CacheKey() string {
	c := p.Canonical()
	return strings.Join([]string{
		c.Department,
		string(c.ReportType),
		c.Start,
		c.End,
		strconv.FormatBool(c.CustomAdjustment),
		strconv.FormatBool(c.SplitOfficeCost),
		string(c.TagStrategy),
		string(c.TurnoverPivot),
	}, "|")
}

// NoticeLevel is the severity of a report notice.
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
)

// Notice is a non-fatal message attached to a report.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// PerformanceReport bundles every table derived from one pipeline run.
type PerformanceReport struct {
	Params              ReportParams
	Timeframe           Timeframe
	Overview            []WideAggregateRow
	CostStructure       []WideAggregateRow
	DepartmentBreakdown []DepartmentBreakdown
	Turnover            TurnoverTable
	CostSummary         DepartmentCostSummary
	Hierarchy           []HierarchyNode
	Rows                []AdjustedRow
	Notices             []Notice
	GeneratedAt         time.Time
}
