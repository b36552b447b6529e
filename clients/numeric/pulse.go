package numeric

import (
	"github.com/shopspring/decimal"

	"github.com/gmto/dataflow/runtime"
)

// Pulse is the pulse-then-default adapter (1:k): the first of the k emit
// ticks following a Read carries the new value, the remaining k-1 carry
// the zero value. Pair with runtime.Rates(1, k).
type Pulse struct {
	held  decimal.Decimal
	fired bool
	ended bool
}

func NewPulse() *Pulse { return &Pulse{} }

// Update marks the held value as not yet delivered for this cycle.
func (p *Pulse) Update() { p.fired = false }

func (p *Pulse) Read(_ Signal, d runtime.Data[decimal.Decimal]) {
	p.held = d.Value()
}

func (p *Pulse) Write(_ Signal) (runtime.Data[decimal.Decimal], bool) {
	if p.ended {
		return runtime.DefaultData[decimal.Decimal](), false
	}
	if p.fired {
		return runtime.DefaultData[decimal.Decimal](), true
	}
	p.fired = true
	return runtime.NewData(p.held), true
}

func (p *Pulse) End() { p.ended = true }
