// Package metrics derives the weekly reporting figures from reconciled calls
// and classified abandoned records: per-week call counts split by customer
// type, abandonment rates, out-of-hours totals and caller journey statistics.
package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"southside/call-report/internal/dateutils"
	"southside/call-report/internal/models"
)

// WeekMetrics holds the counts for one reporting week. Retail and trade
// counts cover the main log only; abandoned counts come from the abandoned
// log, so main + abandoned = week total without double counting.
type WeekMetrics struct {
	Start time.Time
	End   time.Time

	RetailCalls int
	TradeCalls  int

	RetailAbandoned int
	TradeAbandoned  int

	RetailAbandonmentRate decimal.Decimal
	TradeAbandonmentRate  decimal.Decimal
}

// MainCalls is the number of main-log calls in the week.
func (w WeekMetrics) MainCalls() int { return w.RetailCalls + w.TradeCalls }

// AbandonedCalls is the number of abandoned-log records in the week.
func (w WeekMetrics) AbandonedCalls() int { return w.RetailAbandoned + w.TradeAbandoned }

// TotalCalls is the week total across both logs.
func (w WeekMetrics) TotalCalls() int { return w.MainCalls() + w.AbandonedCalls() }

// Summary is the full set of reporting figures for one run.
type Summary struct {
	ThisWeek WeekMetrics
	LastWeek WeekMetrics

	AnsweredCalls  int
	AbandonedCalls int

	AbandonmentRate       decimal.Decimal
	RetailAbandonmentRate decimal.Decimal
	TradeAbandonmentRate  decimal.Decimal
}

// TotalCalls is the grand total across both reporting weeks.
func (s *Summary) TotalCalls() int { return s.ThisWeek.TotalCalls() + s.LastWeek.TotalCalls() }

// Compute builds the summary from week-labelled calls and abandoned records.
// Only weeks 1 and 2 contribute; week 3 is older residue from overlapping
// exports and is excluded from every figure. The two reporting weeks are cut
// by date range against maxDate so they can never overlap even if week
// labels and date windows disagree at the boundary.
func Compute(calls []models.Call, abandoned []models.AbandonedCall, maxDate time.Time) *Summary {
	calls = FilterReportingWeeks(calls)
	abandoned = FilterAbandonedReportingWeeks(abandoned)

	thisStart, thisEnd := dateutils.WeekDateRange(1, maxDate)
	lastStart, lastEnd := dateutils.WeekDateRange(2, maxDate)

	s := &Summary{
		ThisWeek: WeekMetrics{Start: thisStart, End: thisEnd},
		LastWeek: WeekMetrics{Start: lastStart, End: lastEnd},
	}

	retailMain := 0
	tradeMain := 0
	for _, c := range calls {
		if c.IsAnswered {
			s.AnsweredCalls++
		}
		if c.IsRetail() {
			retailMain++
		} else {
			tradeMain++
		}
		switch {
		case inRange(c.CallStart.Time, thisStart, thisEnd):
			if c.IsRetail() {
				s.ThisWeek.RetailCalls++
			} else {
				s.ThisWeek.TradeCalls++
			}
		case inRange(c.CallStart.Time, lastStart, lastEnd):
			if c.IsRetail() {
				s.LastWeek.RetailCalls++
			} else {
				s.LastWeek.TradeCalls++
			}
		}
	}

	for _, a := range abandoned {
		s.AbandonedCalls++
		switch {
		case inRange(a.CallTime.Time, thisStart, thisEnd):
			if a.IsRetail() {
				s.ThisWeek.RetailAbandoned++
			} else {
				s.ThisWeek.TradeAbandoned++
			}
		case inRange(a.CallTime.Time, lastStart, lastEnd):
			if a.IsRetail() {
				s.LastWeek.RetailAbandoned++
			} else {
				s.LastWeek.TradeAbandoned++
			}
		}
	}

	s.AbandonmentRate = rate(s.AbandonedCalls, len(calls)+s.AbandonedCalls)

	retailAbd := s.ThisWeek.RetailAbandoned + s.LastWeek.RetailAbandoned
	tradeAbd := s.ThisWeek.TradeAbandoned + s.LastWeek.TradeAbandoned
	s.RetailAbandonmentRate = rate(retailAbd, retailMain+retailAbd)
	s.TradeAbandonmentRate = rate(tradeAbd, tradeMain+tradeAbd)

	s.ThisWeek.RetailAbandonmentRate = rate(s.ThisWeek.RetailAbandoned, s.ThisWeek.RetailCalls+s.ThisWeek.RetailAbandoned)
	s.ThisWeek.TradeAbandonmentRate = rate(s.ThisWeek.TradeAbandoned, s.ThisWeek.TradeCalls+s.ThisWeek.TradeAbandoned)
	s.LastWeek.RetailAbandonmentRate = rate(s.LastWeek.RetailAbandoned, s.LastWeek.RetailCalls+s.LastWeek.RetailAbandoned)
	s.LastWeek.TradeAbandonmentRate = rate(s.LastWeek.TradeAbandoned, s.LastWeek.TradeCalls+s.LastWeek.TradeAbandoned)

	return s
}

// FilterReportingWeeks keeps only calls labelled week 1 or 2.
func FilterReportingWeeks(calls []models.Call) []models.Call {
	out := make([]models.Call, 0, len(calls))
	for _, c := range calls {
		if c.Week == 1 || c.Week == 2 {
			out = append(out, c)
		}
	}
	return out
}

// FilterAbandonedReportingWeeks keeps only abandoned records labelled week 1
// or 2.
func FilterAbandonedReportingWeeks(records []models.AbandonedCall) []models.AbandonedCall {
	out := make([]models.AbandonedCall, 0, len(records))
	for _, r := range records {
		if r.Week == 1 || r.Week == 2 {
			out = append(out, r)
		}
	}
	return out
}

// inRange reports whether t falls in [start, end] inclusive.
func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// rate is part/whole as a percentage rounded to one decimal place, zero when
// the denominator is zero.
func rate(part, whole int) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		DivRound(decimal.NewFromInt(int64(whole)), 1)
}
