package efficiency

import "github.com/vsinha/fulfillment/pkg/domain/services/calc"

// totals holds the running ordered and invoiced sides of one aggregation key.
// Values are accumulated at full precision and only rounded on output.
type totals struct {
	orderedQty    float64
	invoicedQty   float64
	orderedValue  float64
	invoicedValue float64
}

func (t *totals) addOrdered(qty, value float64) {
	t.orderedQty += qty
	t.orderedValue += value
}

func (t *totals) addInvoiced(qty, value float64) {
	t.invoicedQty += qty
	t.invoicedValue += value
}

func (t *totals) fillRate() float64 {
	return calc.FillRate(t.invoicedQty, t.orderedQty)
}

func (t *totals) weightedFillRate() float64 {
	return calc.FillRate(t.invoicedValue, t.orderedValue)
}

// accumulator is the per-key record of a view
type accumulator struct {
	totals
	label    string
	leadTime *LeadTimeTracker
}

// accumulatorSet maps keys to accumulators created on first write and
// remembers the order in which keys were first touched
type accumulatorSet[K comparable] struct {
	policy LeadTimePolicy
	byKey  map[K]*accumulator
	keys   []K
}

func newAccumulatorSet[K comparable](policy LeadTimePolicy) *accumulatorSet[K] {
	return &accumulatorSet[K]{
		policy: policy,
		byKey:  make(map[K]*accumulator),
	}
}

// touch returns the accumulator for key, creating it with label on first use
func (s *accumulatorSet[K]) touch(key K, label string) *accumulator {
	if acc, ok := s.byKey[key]; ok {
		return acc
	}
	acc := &accumulator{label: label, leadTime: NewLeadTimeTracker(s.policy)}
	s.byKey[key] = acc
	s.keys = append(s.keys, key)
	return acc
}

func (s *accumulatorSet[K]) get(key K) (*accumulator, bool) {
	acc, ok := s.byKey[key]
	return acc, ok
}

// each visits accumulators in first-touch order
func (s *accumulatorSet[K]) each(fn func(key K, acc *accumulator)) {
	for _, key := range s.keys {
		fn(key, s.byKey[key])
	}
}
