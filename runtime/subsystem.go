package runtime

// System groups a set of internal actors behind a boundary: to the rest of
// a model, a System's ports look like the ports of its designated dispatch
// actors. Its internals are not hidden from diagnostics: System.Plain() lists
// every internal actor, and a model built from Flatten lists them too in
// Model.Plain(), with no single boundary node for the system. A System
// carries no scheduling of its own — Flatten merges its actors into the
// slice handed to NewModel, so a single
// internal task failure cancels the whole model exactly as a top-level
// actor failure would (the shared errgroup context in Model.Run makes this
// true for free; resolves spec.md's Open Question (a)).
type System struct {
	Name   string
	actors []*Actor
}

// NewSystem names a boundary around actors. DispatchIn/DispatchOut actors
// (the ones whose Output/Input ports are meant to cross the boundary) are
// just ordinary actors within actors; nothing distinguishes them internally
// beyond which ports callers choose to IntoInput/Multiplex from outside.
func NewSystem(name string, actors ...*Actor) *System {
	return &System{Name: name, actors: actors}
}

// Actors exposes the system's internal actor iterator, the same one the
// validator walks once the system has been flattened into a model.
func (s *System) Actors() []*Actor { return s.actors }

// Flatten concatenates every system's internal actors into one slice
// suitable for NewModel, preserving order. Plain actors passed alongside
// systems can be mixed in by the caller before or after calling Flatten.
func Flatten(systems ...*System) []*Actor {
	var all []*Actor
	for _, s := range systems {
		all = append(all, s.actors...)
	}
	return all
}

// Plain projects only this system's actors, independent of any model it
// has been flattened into — useful for a subsystem-scoped flowchart.
func (s *System) Plain() PlainModel {
	pm := PlainModel{Name: s.Name, Actors: make([]PlainActor, len(s.actors))}
	for i, a := range s.actors {
		pm.Actors[i] = plainActor(a)
	}
	return pm
}
