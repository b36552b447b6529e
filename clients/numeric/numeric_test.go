package numeric_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmto/dataflow/clients/numeric"
	"github.com/gmto/dataflow/runtime"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func fromDecimal(d decimal.Decimal) runtime.Data[decimal.Decimal] {
	return runtime.NewData(d)
}

func TestSamplerHoldsLastValueAcrossRepeatedWrites(t *testing.T) {
	s := numeric.NewSampler()
	s.Read(numeric.Signal{}, fromDecimal(dec("3")))

	for i := 0; i < 3; i++ {
		d, more := s.Write(numeric.Signal{})
		require.True(t, more)
		assert.True(t, dec("3").Equal(d.Value()))
	}
}

func TestSamplerEndSignalsEndOfStream(t *testing.T) {
	s := numeric.NewSampler()
	s.End()
	_, more := s.Write(numeric.Signal{})
	assert.False(t, more)
}

func TestPulseFiresOnceThenDefault(t *testing.T) {
	p := numeric.NewPulse()
	p.Update() // start of cycle
	p.Read(numeric.Signal{}, fromDecimal(dec("7")))

	first, more := p.Write(numeric.Signal{})
	require.True(t, more)
	assert.True(t, dec("7").Equal(first.Value()))

	second, more := p.Write(numeric.Signal{})
	require.True(t, more)
	assert.True(t, decimal.Zero.Equal(second.Value()))

	third, more := p.Write(numeric.Signal{})
	require.True(t, more)
	assert.True(t, decimal.Zero.Equal(third.Value()))
}

func TestAverageComputesElementwiseMean(t *testing.T) {
	a := numeric.NewAverage()
	for _, v := range []string{"1", "2", "3"} {
		a.Read(numeric.Signal{}, fromDecimal(dec(v)))
		a.Update()
	}
	mean, more := a.Write(numeric.Signal{})
	require.True(t, more)
	assert.True(t, dec("2").Equal(mean.Value()))
}

func TestAverageResetsAccumulatorAfterWrite(t *testing.T) {
	a := numeric.NewAverage()
	a.Read(numeric.Signal{}, fromDecimal(dec("10")))
	a.Update()
	_, _ = a.Write(numeric.Signal{})

	// With nothing accumulated since the last Write, the adapter has
	// nothing to report and should signal end-of-stream for this tick.
	_, more := a.Write(numeric.Signal{})
	assert.False(t, more)
}

func TestFirstOrderHoldInterpolatesLinearly(t *testing.T) {
	f := numeric.NewFirstOrderHold(4)
	f.Read(numeric.Signal{}, fromDecimal(dec("0")))
	f.Read(numeric.Signal{}, fromDecimal(dec("4")))
	f.Update()

	want := []string{"1", "2", "3", "4"}
	for _, w := range want {
		d, more := f.Write(numeric.Signal{})
		require.True(t, more)
		assert.True(t, dec(w).Equal(d.Value()), "got %s want %s", d.Value(), w)
	}
}

func TestLowPassFilterSmoothsTowardInput(t *testing.T) {
	lp := numeric.NewLowPassFilter(dec("0.5"))
	lp.Read(numeric.Signal{}, fromDecimal(dec("10")))
	lp.Update() // first sample seeds y = x
	first, _ := lp.Write(numeric.Signal{})
	assert.True(t, dec("10").Equal(first.Value()))

	lp.Read(numeric.Signal{}, fromDecimal(dec("0")))
	lp.Update() // y = 0.5*0 + 0.5*10 = 5
	second, _ := lp.Write(numeric.Signal{})
	assert.True(t, dec("5").Equal(second.Value()))
}

func TestTimerStopsAtLimit(t *testing.T) {
	timer := numeric.NewTimer(2)
	first, more := timer.Write(numeric.Signal{})
	require.True(t, more)
	assert.True(t, dec("1").Equal(first.Value()))

	second, more := timer.Write(numeric.Signal{})
	require.True(t, more)
	assert.True(t, dec("2").Equal(second.Value()))

	_, more = timer.Write(numeric.Signal{})
	assert.False(t, more)
}
