package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/finreport_backend/internal/apperrors"
)

// Timeframe is the granularity a report is bucketed at.
type Timeframe string

const (
	TimeframeYear    Timeframe = "year"
	TimeframeQuarter Timeframe = "quarter"
	TimeframeMonth   Timeframe = "month"
)

// ParseTimeframe converts a user supplied granularity into a Timeframe.
func ParseTimeframe(s string) (Timeframe, error) {
	switch tf := Timeframe(strings.ToLower(strings.TrimSpace(s))); tf {
	case TimeframeYear, TimeframeQuarter, TimeframeMonth:
		return tf, nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownTimeframe, s)
	}
}

// QuarterOf returns the calendar quarter (1-4) a month falls in.
func QuarterOf(month int) int {
	return (month-1)/3 + 1
}

// PeriodLabel maps a calendar month onto its bucket label.
// Labels sort lexicographically in chronological order: "2024", "2024-Q1", "2024-M03".
func PeriodLabel(year, month int, tf Timeframe) string {
	switch tf {
	case TimeframeQuarter:
		return fmt.Sprintf("%d-Q%d", year, QuarterOf(month))
	case TimeframeMonth:
		return fmt.Sprintf("%d-M%02d", year, month)
	default:
		return strconv.Itoa(year)
	}
}

// YearMonthKey is the month-level calendar key carried next to the period label.
func YearMonthKey(year, month int) string {
	return PeriodLabel(year, month, TimeframeMonth)
}

// CurrentPeriod returns the label of the period containing now.
func CurrentPeriod(now time.Time, tf Timeframe) string {
	return PeriodLabel(now.Year(), int(now.Month()), tf)
}

// Period is a parsed period label. Sub is the quarter or month number and is 0 for yearly periods.
type Period struct {
	Year      int
	Sub       int
	Timeframe Timeframe
}

// ParsePeriod splits a label on "-Q" / "-M" into its numeric parts.
func ParsePeriod(label string) (Period, error) {
	s := strings.ToUpper(strings.TrimSpace(label))
	var (
		yearPart, subPart string
		tf                Timeframe
		maxSub            int
	)
	switch {
	case strings.Contains(s, "-Q"):
		parts := strings.SplitN(s, "-Q", 2)
		yearPart, subPart, tf, maxSub = parts[0], parts[1], TimeframeQuarter, 4
	case strings.Contains(s, "-M"):
		parts := strings.SplitN(s, "-M", 2)
		yearPart, subPart, tf, maxSub = parts[0], parts[1], TimeframeMonth, 12
	default:
		yearPart, tf = s, TimeframeYear
	}

	year, err := strconv.Atoi(yearPart)
	if err != nil || len(yearPart) != 4 {
		return Period{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidPeriod, label)
	}
	p := Period{Year: year, Timeframe: tf}
	if tf == TimeframeYear {
		return p, nil
	}
	sub, err := strconv.Atoi(subPart)
	if err != nil || sub < 1 || sub > maxSub {
		return Period{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidPeriod, label)
	}
	p.Sub = sub
	return p, nil
}

// String renders the canonical label.
func (p Period) String() string {
	switch p.Timeframe {
	case TimeframeQuarter:
		return fmt.Sprintf("%d-Q%d", p.Year, p.Sub)
	case TimeframeMonth:
		return fmt.Sprintf("%d-M%02d", p.Year, p.Sub)
	default:
		return strconv.Itoa(p.Year)
	}
}

// Compare orders two periods of the same granularity numerically.
func (p Period) Compare(o Period) int {
	switch {
	case p.Year != o.Year:
		if p.Year < o.Year {
			return -1
		}
		return 1
	case p.Sub < o.Sub:
		return -1
	case p.Sub > o.Sub:
		return 1
	}
	return 0
}

// InferTimeframe detects the granularity from a start/end label pair.
// A "Q" in either label means quarter, otherwise an "M" means month, otherwise year.
func InferTimeframe(start, end string) (Timeframe, error) {
	s, e := strings.ToUpper(start), strings.ToUpper(end)
	var tf Timeframe
	switch {
	case strings.Contains(s, "Q") || strings.Contains(e, "Q"):
		tf = TimeframeQuarter
	case strings.Contains(s, "M") || strings.Contains(e, "M"):
		tf = TimeframeMonth
	default:
		tf = TimeframeYear
	}
	ps, err := ParsePeriod(start)
	if err != nil {
		return "", err
	}
	pe, err := ParsePeriod(end)
	if err != nil {
		return "", err
	}
	if ps.Timeframe != tf || pe.Timeframe != tf {
		return "", fmt.Errorf("%w: start %q and end %q use different granularities", apperrors.ErrValidation, start, end)
	}
	return tf, nil
}

// PeriodRange is an inclusive [Start, End] range at a single granularity.
type PeriodRange struct {
	Start Period
	End   Period
}

// NewPeriodRange parses and validates a start/end label pair.
func NewPeriodRange(start, end string) (PeriodRange, error) {
	if _, err := InferTimeframe(start, end); err != nil {
		return PeriodRange{}, err
	}
	ps, _ := ParsePeriod(start)
	pe, _ := ParsePeriod(end)
	if ps.Compare(pe) > 0 {
		return PeriodRange{}, fmt.Errorf("%w: wrong period, start %s is after end %s", apperrors.ErrValidation, ps, pe)
	}
	return PeriodRange{Start: ps, End: pe}, nil
}

// Timeframe of the range.
func (r PeriodRange) Timeframe() Timeframe {
	return r.Start.Timeframe
}

// PeriodOf returns the period at granularity tf containing the calendar month.
func PeriodOf(year, month int, tf Timeframe) Period {
	p := Period{Year: year, Timeframe: tf}
	switch tf {
	case TimeframeQuarter:
		p.Sub = QuarterOf(month)
	case TimeframeMonth:
		p.Sub = month
	}
	return p
}

// Contains reports whether the calendar month falls inside the range.
func (r PeriodRange) Contains(year, month int) bool {
	p := PeriodOf(year, month, r.Timeframe())
	return r.Start.Compare(p) <= 0 && p.Compare(r.End) <= 0
}

// Reaches reports whether the range ends at or after the period holding the calendar month.
func (r PeriodRange) Reaches(year, month int) bool {
	return PeriodOf(year, month, r.Timeframe()).Compare(r.End) <= 0
}

// IncludesYear reports whether any part of the given calendar year is covered.
func (r PeriodRange) IncludesYear(year int) bool {
	return r.Start.Year <= year && year <= r.End.Year
}
