package numeric

import (
	"github.com/shopspring/decimal"

	"github.com/gmto/dataflow/runtime"
)

// FirstOrderHold is the 1:k linear-interpolation adapter: across the k
// emit ticks that follow a Read, it walks from the previously read value
// to the newly read one in equal steps. Pair with runtime.Rates(1, k) and
// construct with the same k via NewFirstOrderHold.
type FirstOrderHold struct {
	steps int
	prev  decimal.Decimal
	next  decimal.Decimal
	tick  int
	ended bool
}

// NewFirstOrderHold creates a hold that interpolates over steps emit ticks
// per collect tick; steps must match the actor's output rate.
func NewFirstOrderHold(steps int) *FirstOrderHold {
	if steps < 1 {
		steps = 1
	}
	return &FirstOrderHold{steps: steps}
}

func (f *FirstOrderHold) Read(_ Signal, d runtime.Data[decimal.Decimal]) {
	f.prev = f.next
	f.next = d.Value()
}

// Update resets the interpolation step counter for the cycle about to emit.
func (f *FirstOrderHold) Update() { f.tick = 0 }

func (f *FirstOrderHold) Write(_ Signal) (runtime.Data[decimal.Decimal], bool) {
	if f.ended {
		return runtime.DefaultData[decimal.Decimal](), false
	}
	frac := decimal.NewFromInt(int64(f.tick + 1)).Div(decimal.NewFromInt(int64(f.steps)))
	v := f.prev.Add(f.next.Sub(f.prev).Mul(frac))
	f.tick++
	return runtime.NewData(v), true
}

func (f *FirstOrderHold) End() { f.ended = true }
