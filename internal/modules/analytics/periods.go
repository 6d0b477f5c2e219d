package analytics

import (
	"time"

	"github.com/yizinity/journal/internal/modules/journal"
)

// DashboardRange selects the trade subset shown on the dashboard.
// Filtering is by entry date.
type DashboardRange string

const (
	RangeToday     DashboardRange = "TODAY"
	RangeLastWeek  DashboardRange = "LAST_WEEK"
	RangeLastMonth DashboardRange = "LAST_MONTH"
	RangeAll       DashboardRange = "ALL"
)

// DashboardRangeFromString parses a dashboard range, defaulting to ALL
func DashboardRangeFromString(s string) DashboardRange {
	switch DashboardRange(s) {
	case RangeToday, RangeLastWeek, RangeLastMonth, RangeAll:
		return DashboardRange(s)
	default:
		return RangeAll
	}
}

// Contains reports whether t falls inside the range relative to now
func (r DashboardRange) Contains(now, t time.Time) bool {
	switch r {
	case RangeToday:
		return !t.Before(startOfDay(now))
	case RangeLastWeek:
		return !t.Before(now.AddDate(0, 0, -7))
	case RangeLastMonth:
		return t.Month() == now.Month() && t.Year() == now.Year()
	default:
		return true
	}
}

// FilterTrades returns the trades whose entry date passes the range
func FilterTrades(trades []journal.Trade, r DashboardRange, now time.Time) []journal.Trade {
	if r == RangeAll {
		return trades
	}
	filtered := make([]journal.Trade, 0, len(trades))
	for _, t := range trades {
		if r.Contains(now, t.EntryDate) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Period is the account-view expense window
type Period string

const (
	PeriodAll   Period = "ALL"
	PeriodToday Period = "TODAY"
	PeriodWeek  Period = "WEEK"
	PeriodMonth Period = "MONTH"
	PeriodYear  Period = "YEAR"
)

// PeriodFromString parses a period, defaulting to ALL
func PeriodFromString(s string) Period {
	switch Period(s) {
	case PeriodAll, PeriodToday, PeriodWeek, PeriodMonth, PeriodYear:
		return Period(s)
	default:
		return PeriodAll
	}
}

// Contains reports whether t falls inside the period relative to now.
// WEEK starts on the most recent Sunday.
func (p Period) Contains(now, t time.Time) bool {
	switch p {
	case PeriodToday:
		return !t.Before(startOfDay(now))
	case PeriodWeek:
		weekStart := startOfDay(now).AddDate(0, 0, -int(now.Weekday()))
		return !t.Before(weekStart)
	case PeriodMonth:
		return t.Month() == now.Month() && t.Year() == now.Year()
	case PeriodYear:
		return t.Year() == now.Year()
	default:
		return true
	}
}

// ReportRange selects the trade subset for the reports view
type ReportRange string

const (
	ReportAll        ReportRange = "ALL"
	ReportThisMonth  ReportRange = "THIS_MONTH"
	ReportLastMonth  ReportRange = "LAST_MONTH"
	ReportYearToDate ReportRange = "YTD"
	ReportLast90Days ReportRange = "LAST_90_DAYS"
)

// ReportRangeFromString parses a report range, defaulting to ALL
func ReportRangeFromString(s string) ReportRange {
	switch ReportRange(s) {
	case ReportAll, ReportThisMonth, ReportLastMonth, ReportYearToDate, ReportLast90Days:
		return ReportRange(s)
	default:
		return ReportAll
	}
}

// Contains reports whether t falls inside the report range relative to now
func (r ReportRange) Contains(now, t time.Time) bool {
	switch r {
	case ReportThisMonth:
		return t.Month() == now.Month() && t.Year() == now.Year()
	case ReportLastMonth:
		prev := now.AddDate(0, -1, 0)
		return t.Month() == prev.Month() && t.Year() == prev.Year()
	case ReportYearToDate:
		return t.Year() == now.Year()
	case ReportLast90Days:
		return !t.Before(now.AddDate(0, 0, -90))
	default:
		return true
	}
}

// FilterTradesByReportRange returns the trades whose exit date passes
// the report range.
func FilterTradesByReportRange(trades []journal.Trade, r ReportRange, now time.Time) []journal.Trade {
	if r == ReportAll {
		return trades
	}
	filtered := make([]journal.Trade, 0, len(trades))
	for _, t := range trades {
		if r.Contains(now, t.ExitDate) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
