package numeric

import (
	"github.com/shopspring/decimal"

	"github.com/gmto/dataflow/runtime"
)

// LowPassFilter is a 1:1 exponential smoothing client: y = alpha*x +
// (1-alpha)*y_prev. Ported from original_source/clients/core/src/
// low_pass_filter.rs as a demonstration of a stateful Read+Write client
// riding on the same rate machinery as the built-in adapters, rather than
// a rate transition of its own. Pair with runtime.Rates(1, 1).
type LowPassFilter struct {
	alpha decimal.Decimal
	x     decimal.Decimal
	y     decimal.Decimal
	init  bool
}

// NewLowPassFilter builds a filter with smoothing factor alpha in (0, 1];
// alpha closer to 1 tracks the input more closely, closer to 0 smooths
// harder.
func NewLowPassFilter(alpha decimal.Decimal) *LowPassFilter {
	return &LowPassFilter{alpha: alpha}
}

func (f *LowPassFilter) Read(_ Signal, d runtime.Data[decimal.Decimal]) {
	f.x = d.Value()
}

func (f *LowPassFilter) Update() {
	if !f.init {
		f.y = f.x
		f.init = true
		return
	}
	f.y = f.alpha.Mul(f.x).Add(decimal.NewFromInt(1).Sub(f.alpha).Mul(f.y))
}

func (f *LowPassFilter) Write(_ Signal) (runtime.Data[decimal.Decimal], bool) {
	return runtime.NewData(f.y), true
}
