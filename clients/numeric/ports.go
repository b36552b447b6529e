// Package numeric collects reference clients for the rate-transition
// adapters (§4.4 of the core runtime) and a handful of supplemented
// signal-generation/sink clients, all built on shopspring/decimal so
// repeated accumulation across many ticks does not drift the way
// float64 would.
package numeric

// Signal is the single-port UID every client in this package reads and
// writes. A producer's Output[Signal, ...] and a consumer's
// Input[Signal, ...] only connect when their UID types are identical
// (the core runtime's connection rule), so every client here shares this
// one marker rather than inventing a distinct type per edge; uidHash
// still disambiguates edges by folding in the producer's rate and
// identity, so reusing Signal across unrelated wiring in the same model
// is safe. Use runtime.Alias[Signal] to give a second, distinct port the
// same shape when two signals must never be cross-wired by accident.
type Signal struct{}

func (Signal) PortNumber() int   { return 0 }
func (Signal) ShortName() string { return "signal" }
