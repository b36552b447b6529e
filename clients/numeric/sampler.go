package numeric

import (
	"github.com/shopspring/decimal"

	"github.com/gmto/dataflow/runtime"
)

// Sampler is the zero-order hold adapter (1:k): it reads one value per
// collect tick and re-emits it unchanged across every one of the k emit
// ticks that follow, until the next value arrives. Pair with
// runtime.Rates(1, k). Sampler is always called with its owning
// runtime.Client's lock held, so it needs no synchronization of its own.
type Sampler struct {
	held  decimal.Decimal
	ended bool
}

// NewSampler creates a sampler with a zero initial held value.
func NewSampler() *Sampler { return &Sampler{} }

func (s *Sampler) Update() {}

func (s *Sampler) Read(_ Signal, d runtime.Data[decimal.Decimal]) {
	s.held = d.Value()
}

func (s *Sampler) Write(_ Signal) (runtime.Data[decimal.Decimal], bool) {
	if s.ended {
		return runtime.DefaultData[decimal.Decimal](), false
	}
	return runtime.NewData(s.held), true
}

// End marks the sampler's output as finished; the next Write call signals
// end-of-stream to every downstream consumer.
func (s *Sampler) End() { s.ended = true }
