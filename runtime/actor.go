package runtime

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Actor runs one client behind its own cooperative task, driven by a
// bounded set of typed inputs and a fan-out set of typed outputs. NI and NO
// are runtime integers rather than const generic parameters: Go has no
// value type parameters, so the rate-consistency checks the Rust original
// performs at compile time are pushed to Model.Check instead (§9 accepts
// this fallback explicitly).
type Actor struct {
	Name  string
	Image string

	NI int
	NO int

	inputs  []inputHandle
	outputs []outputHandle
	client  clientHandle

	outputDone []bool

	logger *slog.Logger
}

// ActorOption configures an Actor at construction time.
type ActorOption func(*Actor)

// WithName sets the actor's diagnostic name (defaults to "actor").
func WithName(name string) ActorOption {
	return func(a *Actor) { a.Name = name }
}

// WithImage sets the actor's flowchart image/tag.
func WithImage(image string) ActorOption {
	return func(a *Actor) { a.Image = image }
}

// WithLogger attaches a structured logger; defaults to slog.Default().
func WithLogger(l *slog.Logger) ActorOption {
	return func(a *Actor) { a.logger = l }
}

// Rates sets the actor's input and output rates in base ticks.
func Rates(ni, no int) ActorOption {
	return func(a *Actor) { a.NI = ni; a.NO = no }
}

// NewActor creates an actor around client, which must satisfy Update.
// Inputs and outputs are attached afterwards with AddInput/AddOutput.
func NewActor[T Update](client *Client[T], opts ...ActorOption) *Actor {
	a := &Actor{Name: "actor", logger: slog.Default(), client: client}
	for _, o := range opts {
		o(a)
	}
	return a
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// task is the actor's cooperative loop, spawned once per actor by
// Model.Run. It runs until an input closes, every output signals
// end-of-stream, or ctx is cancelled. Whatever the reason it returns, every
// output is closed on the way out: an actor whose upstream closed must
// close its own senders in turn, or its downstream blocks on recv forever
// (§4.1's disconnection cascade). Closing is idempotent, so this is a no-op
// when the outputs already closed themselves via a false Write.
func (a *Actor) task(ctx context.Context) error {
	defer a.closeOutputs()
	switch {
	case a.NI == 0 && a.NO == 0:
		return nil
	case a.NI == 0:
		return a.runInitiator(ctx)
	case a.NO == 0:
		return a.runTerminator(ctx)
	default:
		return a.runTransition(ctx)
	}
}

// closeOutputs drops every sender this actor owns, the cascade's trigger
// for whichever downstream actor is still blocked in recv.
func (a *Actor) closeOutputs() {
	for _, out := range a.outputs {
		out.closeAll()
	}
}

// runInitiator self-clocks: no collect phase, one Update and one emit cycle
// per iteration.
func (a *Actor) runInitiator(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		a.client.Lock()
		a.client.CallUpdate()
		a.client.Unlock()
		terminate, err := a.emitAll(ctx)
		if err != nil {
			return err
		}
		if terminate {
			return nil
		}
	}
}

// runTerminator has no emit phase: it collects until an input closes.
func (a *Actor) runTerminator(ctx context.Context) error {
	for {
		closed, err := a.collectOnce(ctx)
		if err != nil {
			return err
		}
		if closed {
			return nil
		}
	}
}

// runTransition implements the general NI:NO rate-gating algebra: reduce
// the ratio to coprime (ni, no) and, per cycle, run ni collects followed by
// no emits. NI==NO reduces to ni==no==1, i.e. both phases every tick; the
// built-in adapters reduce to (1, k) or (k, 1).
func (a *Actor) runTransition(ctx context.Context) error {
	g := gcd(a.NI, a.NO)
	ni, no := a.NI/g, a.NO/g
	for {
		for i := 0; i < ni; i++ {
			closed, err := a.collectOnce(ctx)
			if err != nil {
				return err
			}
			if closed {
				return nil
			}
		}
		for j := 0; j < no; j++ {
			terminate, err := a.emitAll(ctx)
			if err != nil {
				return err
			}
			if terminate {
				return nil
			}
		}
	}
}

// collectOnce concurrently awaits one payload on every input (the "join"
// in §4.2), then sequentially performs the client-locked Read calls,
// followed by one Update. It reports true when any input has closed.
func (a *Actor) collectOnce(ctx context.Context) (closed bool, err error) {
	delivers := make([]func(), len(a.inputs))
	// Each goroutine below only ever writes its own index i, in either
	// slice, so no two goroutines touch the same memory location and
	// nothing here needs a lock: a single shared bool written from every
	// goroutine would be a data race (caught under go test -race), which
	// is why this is one flag per input, folded after g.Wait returns.
	closedFlags := make([]bool, len(a.inputs))
	g, gctx := errgroup.WithContext(ctx)
	for i, in := range a.inputs {
		i, in := i, in
		g.Go(func() error {
			deliver, ok, err := in.recv(gctx)
			if err != nil {
				return err
			}
			if !ok {
				closedFlags[i] = true
				return nil
			}
			delivers[i] = deliver
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}
	for _, c := range closedFlags {
		if c {
			return true, nil
		}
	}
	for _, d := range delivers {
		d()
	}
	a.client.Lock()
	a.client.CallUpdate()
	a.client.Unlock()
	return false, nil
}

// emitAll invokes Write on every output for this tick. An output whose
// Write returns false closes its fan-out and is excluded from future
// ticks; once every output has terminated, the actor itself terminates.
func (a *Actor) emitAll(ctx context.Context) (terminate bool, err error) {
	if len(a.outputs) == 0 {
		return false, nil
	}
	if a.outputDone == nil {
		a.outputDone = make([]bool, len(a.outputs))
	}
	allDone := true
	for i, out := range a.outputs {
		if a.outputDone[i] {
			continue
		}
		done, err := out.emit(ctx)
		if err != nil {
			return false, err
		}
		if done {
			a.outputDone[i] = true
		} else {
			allDone = false
		}
	}
	return allDone, nil
}
