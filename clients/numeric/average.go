package numeric

import (
	"github.com/shopspring/decimal"

	"github.com/gmto/dataflow/runtime"
)

// Average is the k:1 reduction adapter: it accumulates k reads and emits
// their elementwise mean on the single following emit tick. Pair with
// runtime.Rates(k, 1).
type Average struct {
	last  decimal.Decimal
	sum   decimal.Decimal
	count int64
	ended bool
}

func NewAverage() *Average { return &Average{} }

func (a *Average) Read(_ Signal, d runtime.Data[decimal.Decimal]) {
	a.last = d.Value()
}

// Update folds the most recently read value into the running sum; called
// once per collect tick, i.e. k times per cycle (§4.2's "Read then Update").
func (a *Average) Update() {
	a.sum = a.sum.Add(a.last)
	a.count++
}

func (a *Average) Write(_ Signal) (runtime.Data[decimal.Decimal], bool) {
	if a.ended || a.count == 0 {
		return runtime.DefaultData[decimal.Decimal](), false
	}
	mean := a.sum.Div(decimal.NewFromInt(a.count))
	a.sum = decimal.Zero
	a.count = 0
	return runtime.NewData(mean), true
}

func (a *Average) End() { a.ended = true }
