package runtime

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// modelCore is the state every phase of a model's lifecycle shares. Go
// generics cannot give a single Model[State] type state-specific methods
// — a method's receiver type parameter is generic over every possible
// State, not just one — so the typestate (§6) is instead four distinct
// structs, each embedding modelCore for its common read-only accessors
// (Name, Actors, Plain) and each advancing to the next via a method only
// that struct has.
type modelCore struct {
	name    string
	actors  []*Actor
	logger  *slog.Logger
	verbose bool
}

// Name returns the model's diagnostic name, available in every phase.
func (c *modelCore) Name() string { return c.name }

// Actors exposes the underlying actors for introspection (flowcharts,
// HTTP status endpoints), available in every phase.
func (c *modelCore) Actors() []*Actor { return c.actors }

// ModelUnknown is a model that has not yet been validated. The only
// operation available is Check.
type ModelUnknown struct{ modelCore }

// ModelReady is a model that passed Check and is not yet running. The
// only operation available is Run.
type ModelReady struct{ modelCore }

// ModelRunning is a model with one task spawned per actor. The only
// operation available is Wait.
type ModelRunning struct {
	modelCore
	wait      func(context.Context) error
	startedAt time.Time
}

// ModelCompleted is a model whose tasks have all finished.
type ModelCompleted struct{ modelCore }

// ModelOption configures a model at construction time.
type ModelOption func(*modelCore)

// WithModelName sets the model's diagnostic name.
func WithModelName(name string) ModelOption {
	return func(c *modelCore) { c.name = name }
}

// WithModelLogger attaches a structured logger; defaults to slog.Default().
func WithModelLogger(l *slog.Logger) ModelOption {
	return func(c *modelCore) { c.logger = l }
}

// Verbose turns on the per-actor launch/completion banner emitted by
// Run/Wait, ported from original_source/actors/src/model/ready.rs.
func Verbose() ModelOption {
	return func(c *modelCore) { c.verbose = true }
}

// NewModel collects actors into a fresh, unchecked model.
func NewModel(actors []*Actor, opts ...ModelOption) *ModelUnknown {
	c := modelCore{name: "model", actors: actors, logger: slog.Default()}
	for _, o := range opts {
		o(&c)
	}
	return &ModelUnknown{modelCore: c}
}

// Run spawns one goroutine per actor and transitions to Running
// immediately; it never blocks. Call Wait to observe completion.
func (m *ModelReady) Run(ctx context.Context) *ModelRunning {
	running := &ModelRunning{modelCore: m.modelCore, startedAt: time.Now()}

	// Pre-send every bootstrap edge's payload before any task starts, so a
	// feedback cycle's first collect phase always has something to read
	// (§4.3): without this, every actor in the cycle would block forever
	// waiting on the others' first emit.
	for _, a := range m.actors {
		for _, out := range a.outputs {
			if err := out.sendBootstraps(ctx); err != nil {
				m.logger.Error("bootstrap send failed", "model", m.name, "actor", a.Name, "error", err)
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, a := range m.actors {
		i, a := i, a
		if m.verbose {
			m.logger.Info("actor launched", "model", m.name, "actor", a.Name, "index", i, "ni", a.NI, "no", a.NO)
		}
		g.Go(func() error {
			err := a.task(gctx)
			if err != nil {
				err = withTaskIndex(err, i)
				m.logger.Error("actor failed", "model", m.name, "actor", a.Name, "index", i, "error", err)
			}
			return err
		})
	}
	running.wait = func(context.Context) error { return g.Wait() }
	return running
}

// Wait blocks until every actor task has finished, returning the first
// error observed (already stamped with its task index by Run).
func (m *ModelRunning) Wait(ctx context.Context) (*ModelCompleted, error) {
	err := m.wait(ctx)
	if m.verbose {
		m.logger.Info("model completed", "model", m.name, "elapsed", time.Since(m.startedAt))
	}
	return &ModelCompleted{modelCore: m.modelCore}, err
}
