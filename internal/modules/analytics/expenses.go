package analytics

import (
	"math"
	"time"

	"github.com/yizinity/journal/internal/modules/accounts"
)

// daysPerMonth is the average Gregorian month length used for
// subscription billing accrual.
const daysPerMonth = 30.44

// ExpenseSummary aggregates prop account spending against payouts
type ExpenseSummary struct {
	TotalCost    float64 `json:"total_cost"`
	TotalPayouts float64 `json:"total_payouts"`
	NetROI       float64 `json:"net_roi"`
}

// ComputeExpenseAccrual totals account costs and payouts for a period.
//
// Costs count for accounts purchased inside the period: the one-time
// cost always, the activation fee only once the account has actually
// been funded, and for subscriptions the monthly fee times the whole
// months elapsed between purchase and the account's end date (or now
// while it is still running). Billing stops accruing once an account
// has ended and never produces negative months.
//
// Payouts are filtered by each payout's own date, independent of
// whether the owning account was purchased inside the period.
func ComputeExpenseAccrual(accts []accounts.PropAccount, period Period, now time.Time) ExpenseSummary {
	var summary ExpenseSummary

	for _, a := range accts {
		if period.Contains(now, a.DateAdded) {
			summary.TotalCost += a.Cost

			if a.ActivationFee != nil && a.DateFunded != nil {
				summary.TotalCost += *a.ActivationFee
			}

			if a.IsSubscription && a.MonthlyFee != nil {
				end := now
				if a.DateEnded != nil {
					end = *a.DateEnded
				}
				months := elapsedMonths(a.DateAdded, end)
				if months > 0 {
					summary.TotalCost += *a.MonthlyFee * float64(months)
				}
			}
		}

		for _, p := range a.Payouts {
			if period.Contains(now, p.Date) {
				summary.TotalPayouts += p.Amount
			}
		}
	}

	if summary.TotalCost > 0 {
		summary.NetROI = (summary.TotalPayouts - summary.TotalCost) / summary.TotalCost * 100
	}

	return summary
}

func elapsedMonths(start, end time.Time) int {
	days := math.Abs(end.Sub(start).Hours() / 24)
	return int(math.Floor(days / daysPerMonth))
}
