package numeric

import (
	"github.com/shopspring/decimal"

	"github.com/gmto/dataflow/runtime"
)

// Timer is an initiator-only client (NI=0): it emits an increasing tick
// count on every call, optionally stopping after a fixed number of ticks.
// Ported from original_source/clients/core/src/timer.rs; used as the
// upstream of the cmd/modelctl demo model. Pair with runtime.Rates(0, n)
// for any n.
type Timer struct {
	tick  int64
	limit int64 // 0 means unbounded
}

// NewTimer creates a timer that stops after limit ticks; pass 0 for an
// unbounded timer that only an External cancellation will stop.
func NewTimer(limit int64) *Timer {
	return &Timer{limit: limit}
}

func (t *Timer) Update() {}

func (t *Timer) Write(_ Signal) (runtime.Data[decimal.Decimal], bool) {
	if t.limit > 0 && t.tick >= t.limit {
		return runtime.DefaultData[decimal.Decimal](), false
	}
	t.tick++
	return runtime.NewData(decimal.NewFromInt(t.tick)), true
}
