package efficiency

import (
	"time"

	"github.com/vsinha/fulfillment/pkg/domain/services/calc"
)

// LeadTimePolicy decides which invoice observations define a lead time
type LeadTimePolicy int

const (
	// LeadTimeFirst locks the lead time to the first observation
	LeadTimeFirst LeadTimePolicy = iota
	// LeadTimeLast keeps the observation with the latest completion date
	LeadTimeLast
	// LeadTimeMean averages every observation
	LeadTimeMean
)

// String returns the string representation of LeadTimePolicy
func (p LeadTimePolicy) String() string {
	switch p {
	case LeadTimeFirst:
		return "FIRST"
	case LeadTimeLast:
		return "LAST"
	case LeadTimeMean:
		return "MEAN"
	default:
		return "UNKNOWN"
	}
}

// LeadTimeTracker folds lead time observations according to a policy.
// The zero value is not usable; create trackers with NewLeadTimeTracker.
type LeadTimeTracker struct {
	policy  LeadTimePolicy
	count   int
	days    int
	latest  time.Time
	samples []int
}

// NewLeadTimeTracker creates an empty tracker for the given policy
func NewLeadTimeTracker(policy LeadTimePolicy) *LeadTimeTracker {
	return &LeadTimeTracker{policy: policy}
}

// Policy returns the policy the tracker was created with
func (t *LeadTimeTracker) Policy() LeadTimePolicy {
	return t.policy
}

// Observe records the lead time from an order date to an invoice completion
// date. Observations missing either date are ignored.
func (t *LeadTimeTracker) Observe(orderDate, completedAt time.Time) {
	if orderDate.IsZero() || completedAt.IsZero() {
		return
	}
	days := calc.DaysBetween(completedAt, orderDate)

	switch t.policy {
	case LeadTimeFirst:
		if t.count == 0 {
			t.days = days
		}
	case LeadTimeLast:
		if t.count == 0 || completedAt.After(t.latest) {
			t.latest = completedAt
			t.days = days
		}
	case LeadTimeMean:
		t.samples = append(t.samples, days)
	}
	t.count++
}

// ObserveDays records an already computed lead time. Under LeadTimeLast the
// most recent call wins since no completion date is available to compare.
func (t *LeadTimeTracker) ObserveDays(days int) {
	switch t.policy {
	case LeadTimeFirst:
		if t.count == 0 {
			t.days = days
		}
	case LeadTimeLast:
		t.days = days
	case LeadTimeMean:
		t.samples = append(t.samples, days)
	}
	t.count++
}

// Empty reports whether nothing has been observed
func (t *LeadTimeTracker) Empty() bool {
	return t.count == 0
}

// Value returns the unrounded lead time in days and whether one exists
func (t *LeadTimeTracker) Value() (float64, bool) {
	if t.count == 0 {
		return 0, false
	}
	if t.policy == LeadTimeMean {
		return calc.Mean(t.samples)
	}
	return float64(t.days), true
}

// Days returns the lead time as whole days, or nil when nothing was observed
func (t *LeadTimeTracker) Days() *int {
	v, ok := t.Value()
	if !ok {
		return nil
	}
	days := int(calc.RoundFixed(v, 0))
	return &days
}

// Average returns the lead time rounded to two decimals, or nil when nothing
// was observed
func (t *LeadTimeTracker) Average() *float64 {
	v, ok := t.Value()
	if !ok {
		return nil
	}
	avg := calc.Round2(v)
	return &avg
}
