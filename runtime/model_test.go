package runtime_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmto/dataflow/clients/numeric"
	. "github.com/gmto/dataflow/runtime"
)

// portA is the only UID used across this file's scenarios; reusing one
// marker type across unrelated edges is safe because uidHash folds in
// the producer's rate and identity.
type portA struct{}

func (portA) PortNumber() int   { return 0 }
func (portA) ShortName() string { return "a" }

// sourceClient is an initiator (NI=0) emitting 1..n then ending.
type sourceClient struct {
	next int
	n    int
}

func (c *sourceClient) Update() {}
func (c *sourceClient) Write(portA) (Data[int], bool) {
	if c.next >= c.n {
		return DefaultData[int](), false
	}
	c.next++
	return NewData(c.next), true
}

// collectClient is a terminator (NO=0) appending every read value.
type collectClient struct {
	got []int
}

func (c *collectClient) Update() {}
func (c *collectClient) Read(_ portA, d Data[int]) {
	c.got = append(c.got, d.Value())
}

// passThroughClient is a regular NI==NO==1 relay.
type passThroughClient struct {
	value int
}

func (c *passThroughClient) Update() {}
func (c *passThroughClient) Read(_ portA, d Data[int]) { c.value = d.Value() }
func (c *passThroughClient) Write(portA) (Data[int], bool) {
	return NewData(c.value), true
}

func runWithTimeout(t *testing.T, m *ModelReady) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	running := m.Run(ctx)
	_, err := running.Wait(ctx)
	return err
}

func TestLinearChainDeliversAllValues(t *testing.T) {
	src := NewClient(&sourceClient{n: 5})
	srcActor := NewActor(src, WithName("source"), Rates(0, 1))
	srcOut := AddOutput[portA, int](srcActor, src)

	sink := NewClient(&collectClient{})
	sinkActor := NewActor(sink, WithName("sink"), Rates(1, 0))
	sinkIn := AddInput[portA, int](sinkActor, sink)

	IntoInput(srcOut, sinkIn)

	model := NewModel([]*Actor{srcActor, sinkActor})
	ready, err := model.Check()
	require.NoError(t, err)
	require.NoError(t, runWithTimeout(t, ready))

	sink.Lock()
	defer sink.Unlock()
	assert.Equal(t, []int{1, 2, 3, 4, 5}, (*sink.Value()).got)
}

func TestMultiplexFansOutToEveryConsumer(t *testing.T) {
	src := NewClient(&sourceClient{n: 3})
	srcActor := NewActor(src, WithName("source"), Rates(0, 1))
	srcOut := AddOutput[portA, int](srcActor, src)

	sinkA := NewClient(&collectClient{})
	sinkActorA := NewActor(sinkA, WithName("sinkA"), Rates(1, 0))
	sinkInA := AddInput[portA, int](sinkActorA, sinkA)

	sinkB := NewClient(&collectClient{})
	sinkActorB := NewActor(sinkB, WithName("sinkB"), Rates(1, 0))
	sinkInB := AddInput[portA, int](sinkActorB, sinkB)

	Multiplex(srcOut, sinkInA, sinkInB)

	model := NewModel([]*Actor{srcActor, sinkActorA, sinkActorB})
	ready, err := model.Check()
	require.NoError(t, err)
	require.NoError(t, runWithTimeout(t, ready))

	sinkA.Lock()
	assert.Equal(t, []int{1, 2, 3}, (*sinkA.Value()).got)
	sinkA.Unlock()

	sinkB.Lock()
	assert.Equal(t, []int{1, 2, 3}, (*sinkB.Value()).got)
	sinkB.Unlock()
}

func TestRateMismatchIsRejectedByCheck(t *testing.T) {
	src := NewClient(&sourceClient{n: 3})
	srcActor := NewActor(src, WithName("source"), Rates(0, 1))
	srcOut := AddOutput[portA, int](srcActor, src)

	sink := NewClient(&collectClient{})
	// Declares NI=2 while the producer's NO=1: a direct rate mismatch,
	// which Check must reject rather than silently under/over-collecting.
	sinkActor := NewActor(sink, WithName("sink"), Rates(2, 0))
	sinkIn := AddInput[portA, int](sinkActor, sink)

	IntoInput(srcOut, sinkIn)

	model := NewModel([]*Actor{srcActor, sinkActor})
	_, err := model.Check()
	require.Error(t, err)

	var checkErr *CheckError
	require.ErrorAs(t, err, &checkErr)
	assert.Equal(t, KindRateMismatch, checkErr.Kind)
}

func TestDisconnectedOutputIsRejectedByCheck(t *testing.T) {
	src := NewClient(&sourceClient{n: 1})
	srcActor := NewActor(src, WithName("source"), Rates(0, 1))
	AddOutput[portA, int](srcActor, src)

	model := NewModel([]*Actor{srcActor})
	_, err := model.Check()
	require.Error(t, err)

	var checkErr *CheckError
	require.ErrorAs(t, err, &checkErr)
	assert.Equal(t, KindDisconnectedOutput, checkErr.Kind)
}

func TestCycleWithoutBootstrapIsRejectedByCheck(t *testing.T) {
	clientA := NewClient(&passThroughClient{})
	actorA := NewActor(clientA, WithName("a"), Rates(1, 1))
	inA := AddInput[portA, int](actorA, clientA)
	outA := AddOutput[portA, int](actorA, clientA)

	clientB := NewClient(&passThroughClient{})
	actorB := NewActor(clientB, WithName("b"), Rates(1, 1))
	inB := AddInput[portA, int](actorB, clientB)
	outB := AddOutput[portA, int](actorB, clientB)

	IntoInput(outA, inB)
	IntoInput(outB, inA) // closes the cycle with no bootstrap edge

	model := NewModel([]*Actor{actorA, actorB})
	_, err := model.Check()
	require.Error(t, err)

	var checkErr *CheckError
	require.ErrorAs(t, err, &checkErr)
	assert.Equal(t, KindCycleWithoutBootstrap, checkErr.Kind)
}

func TestBootstrapEdgeMakesFeedbackCycleValid(t *testing.T) {
	clientA := NewClient(&passThroughClient{value: 1})
	actorA := NewActor(clientA, WithName("a"), Rates(1, 1))
	inA := AddInput[portA, int](actorA, clientA)
	outA := AddOutput[portA, int](actorA, clientA)

	clientB := NewClient(&passThroughClient{})
	actorB := NewActor(clientB, WithName("b"), Rates(1, 1))
	inB := AddInput[portA, int](actorB, clientB)
	outB := AddOutput[portA, int](actorB, clientB)

	IntoInput(outA, inB)
	IntoInput(outB, inA, WithLinkBootstrap(true))

	model := NewModel([]*Actor{actorA, actorB})
	_, err := model.Check()
	require.NoError(t, err)
}

// convergeClient halves the remaining distance to 1 on every tick, feeding
// its own output back into its input via a bootstrap edge while also
// fanning the same value out to an external sink, per §4.3.
type convergeClient struct {
	x     decimal.Decimal
	steps int
	limit int
}

func (c *convergeClient) Update() {}
func (c *convergeClient) Read(_ portA, d Data[decimal.Decimal]) { c.x = d.Value() }
func (c *convergeClient) Write(portA) (Data[decimal.Decimal], bool) {
	if c.steps >= c.limit {
		return DefaultData[decimal.Decimal](), false
	}
	half := decimal.NewFromFloat(0.5)
	next := c.x.Add(decimal.NewFromInt(1).Sub(c.x).Mul(half))
	c.x = next
	c.steps++
	return NewData(next), true
}

// decimalSink collects every value it reads, for asserting against a
// decimal.Decimal-carrying chain.
type decimalSink struct {
	got []decimal.Decimal
}

func (s *decimalSink) Update() {}
func (s *decimalSink) Read(_ portA, d Data[decimal.Decimal]) {
	s.got = append(s.got, d.Value())
}

func TestBootstrapFeedbackCycleConverges(t *testing.T) {
	loop := NewClient(&convergeClient{limit: 4})
	loopActor := NewActor(loop, WithName("converge"), Rates(1, 1))
	loopIn := AddInput[portA, decimal.Decimal](loopActor, loop)
	loopOut := AddOutput[portA, decimal.Decimal](loopActor, loop)

	sink := NewClient(&decimalSink{})
	sinkActor := NewActor(sink, WithName("sink"), Rates(1, 0))
	sinkIn := AddInput[portA, decimal.Decimal](sinkActor, sink)

	// The self-loop link carries the bootstrap flag; the external sink link
	// does not, so the bootstrap pre-send never reaches the sink directly.
	IntoInput(loopOut, loopIn, WithLinkBootstrap(true))
	IntoInput(loopOut, sinkIn)

	model := NewModel([]*Actor{loopActor, sinkActor})
	ready, err := model.Check()
	require.NoError(t, err)
	require.NoError(t, runWithTimeout(t, ready))

	sink.Lock()
	defer sink.Unlock()
	got := (*sink.Value()).got
	require.Len(t, got, 3)
	want := []string{"0.75", "0.875", "0.9375"}
	for i, w := range want {
		d, perr := decimal.NewFromString(w)
		require.NoError(t, perr)
		assert.Truef(t, d.Equal(got[i]), "step %d: got %s want %s", i, got[i], w)
	}
}

// decimalSource is an initiator over a fixed slice of decimal payloads,
// used to drive the numeric adapters under numeric.Signal.
type decimalSource struct {
	vals []decimal.Decimal
	next int
}

func (c *decimalSource) Update() {}
func (c *decimalSource) Write(numeric.Signal) (Data[decimal.Decimal], bool) {
	if c.next >= len(c.vals) {
		return DefaultData[decimal.Decimal](), false
	}
	v := c.vals[c.next]
	c.next++
	return NewData(v), true
}

// numericSink collects every numeric.Signal value it reads.
type numericSink struct {
	got []decimal.Decimal
}

func (s *numericSink) Update() {}
func (s *numericSink) Read(_ numeric.Signal, d Data[decimal.Decimal]) {
	s.got = append(s.got, d.Value())
}

func decimalsOf(ss ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(ss))
	for i, s := range ss {
		d, err := decimal.NewFromString(s)
		if err != nil {
			panic(err)
		}
		out[i] = d
	}
	return out
}

func assertDecimalsEqual(t *testing.T, want, got []decimal.Decimal) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Truef(t, want[i].Equal(got[i]), "index %d: got %s want %s", i, got[i], want[i])
	}
}

// TestSamplerBridgesRateMismatch is spec §8 Scenario 1: a 1:3 zero-order
// hold between a NO=1 initiator and a NI=3 terminator. It also exercises
// the upstream-closes cascade: once the source ends, Sampler's own task
// must close its output to B rather than leave B's recv blocked forever.
func TestSamplerBridgesRateMismatch(t *testing.T) {
	src := NewClient(&decimalSource{vals: decimalsOf("1", "2", "3", "4", "5", "6")})
	srcActor := NewActor(src, WithName("source"), Rates(0, 1))
	srcOut := AddOutput[numeric.Signal, decimal.Decimal](srcActor, src)

	sampler := NewClient(numeric.NewSampler())
	samplerActor := NewActor(sampler, WithName("sampler"), Rates(1, 3))
	samplerIn := AddInput[numeric.Signal, decimal.Decimal](samplerActor, sampler)
	samplerOut := AddOutput[numeric.Signal, decimal.Decimal](samplerActor, sampler)

	sink := NewClient(&numericSink{})
	sinkActor := NewActor(sink, WithName("sink"), Rates(3, 0))
	sinkIn := AddInput[numeric.Signal, decimal.Decimal](sinkActor, sink)

	IntoInput(srcOut, samplerIn)
	IntoInput(samplerOut, sinkIn)

	model := NewModel([]*Actor{srcActor, samplerActor, sinkActor})
	ready, err := model.Check()
	require.NoError(t, err)
	require.NoError(t, runWithTimeout(t, ready))

	sink.Lock()
	defer sink.Unlock()
	want := decimalsOf("1", "1", "1", "2", "2", "2", "3", "3", "3", "4", "4", "4", "5", "5", "5", "6", "6", "6")
	assertDecimalsEqual(t, want, (*sink.Value()).got)
}

// TestAverageBridgesRateMismatch is spec §8 Scenario 2: a 2:1 mean
// reduction. Like the sampler scenario, this also relies on the
// upstream-closes cascade: Average's last partial cycle never completes, so
// its task exits via the closed-input path and must still close its own
// output so B's Wait returns instead of blocking until ctx deadline.
func TestAverageBridgesRateMismatch(t *testing.T) {
	src := NewClient(&decimalSource{vals: decimalsOf("1.0", "3.0", "5.0", "7.0")})
	// An initiator has no upstream to match, so its NO is free to carry
	// whatever rate its first consumer declares; here that is Average's
	// NI=2, matching the 2:1 reduction (§4.4), not "values per Write call"
	// (Write always returns exactly one payload, regardless of NO).
	srcActor := NewActor(src, WithName("source"), Rates(0, 2))
	srcOut := AddOutput[numeric.Signal, decimal.Decimal](srcActor, src)

	avg := NewClient(numeric.NewAverage())
	avgActor := NewActor(avg, WithName("average"), Rates(2, 1))
	avgIn := AddInput[numeric.Signal, decimal.Decimal](avgActor, avg)
	avgOut := AddOutput[numeric.Signal, decimal.Decimal](avgActor, avg)

	sink := NewClient(&numericSink{})
	sinkActor := NewActor(sink, WithName("sink"), Rates(1, 0))
	sinkIn := AddInput[numeric.Signal, decimal.Decimal](sinkActor, sink)

	IntoInput(srcOut, avgIn)
	IntoInput(avgOut, sinkIn)

	model := NewModel([]*Actor{srcActor, avgActor, sinkActor})
	ready, err := model.Check()
	require.NoError(t, err)
	require.NoError(t, runWithTimeout(t, ready))

	sink.Lock()
	defer sink.Unlock()
	want := decimalsOf("2.0", "6.0")
	assertDecimalsEqual(t, want, (*sink.Value()).got)
}

func TestPlainProjectsActorGraph(t *testing.T) {
	src := NewClient(&sourceClient{n: 1})
	srcActor := NewActor(src, WithName("source"), Rates(0, 1))
	srcOut := AddOutput[portA, int](srcActor, src)

	sink := NewClient(&collectClient{})
	sinkActor := NewActor(sink, WithName("sink"), Rates(1, 0))
	sinkIn := AddInput[portA, int](sinkActor, sink)

	IntoInput(srcOut, sinkIn)

	model := NewModel([]*Actor{srcActor, sinkActor}, WithModelName("plain-test"))
	ready, err := model.Check()
	require.NoError(t, err)

	pm := ready.Plain()
	assert.Equal(t, "plain-test", pm.Name)
	require.Len(t, pm.Actors, 2)
	assert.Equal(t, "source", pm.Actors[0].ClientName)
	require.Len(t, pm.Actors[0].Outputs, 1)
	assert.Equal(t, "sink", pm.Actors[0].Outputs[0].Consumer)
}
