package runtime

// PlainIO is the projection of one Input port, stripped of its client type
// parameter: just enough to label a flowchart edge or diagnose a mismatch.
type PlainIO struct {
	UID  string
	Hash uint64
}

// PlainOutputKind distinguishes a steady-state fan-out link from a
// bootstrap one, the only two kinds a feedback edge can be (§4.3).
type PlainOutputKind int

const (
	PlainOutputRegular PlainOutputKind = iota
	PlainOutputBootstrap
)

func (k PlainOutputKind) String() string {
	if k == PlainOutputBootstrap {
		return "bootstrap"
	}
	return "regular"
}

// PlainOutput is one fan-out link of an output port, projected for display.
type PlainOutput struct {
	UID      string
	Kind     PlainOutputKind
	Hash     uint64
	Consumer string // consuming actor's diagnostic name
}

// PlainActor is Actor stripped of its client's concrete type, suitable for
// serialization, logging, or flowchart rendering without generics leaking
// into the consumer (named/labeled per original_source/actors/src/client.rs).
type PlainActor struct {
	ClientName string
	Image      string
	InputsRate int
	OutputsRate int
	Inputs      []PlainIO
	Outputs     []PlainOutput
}

func plainActor(a *Actor) PlainActor {
	ins := make([]PlainIO, len(a.inputs))
	for i, in := range a.inputs {
		ins[i] = PlainIO{UID: in.uidName(), Hash: in.hash()}
	}
	var outs []PlainOutput
	for _, out := range a.outputs {
		for _, e := range out.edges() {
			kind := PlainOutputRegular
			if e.bootstrap {
				kind = PlainOutputBootstrap
			}
			consumer := ""
			if e.consumer != nil {
				consumer = e.consumer.Name
			}
			outs = append(outs, PlainOutput{UID: out.uidName(), Kind: kind, Hash: e.hash, Consumer: consumer})
		}
	}
	return PlainActor{
		ClientName:  a.Name,
		Image:       a.Image,
		InputsRate:  a.NI,
		OutputsRate: a.NO,
		Inputs:      ins,
		Outputs:     outs,
	}
}

// PlainModel is a snapshot of a Model's actor graph independent of its
// typestate: it can be taken after Check, while Running, or after
// Completed, for diagnostics, logging, or the HTTP introspection surface.
type PlainModel struct {
	Name   string
	Actors []PlainActor
}

// Plain projects the model's current actor graph; available in every
// lifecycle phase since it is defined on the shared modelCore.
func (c *modelCore) Plain() PlainModel {
	pm := PlainModel{Name: c.name, Actors: make([]PlainActor, len(c.actors))}
	for i, a := range c.actors {
		pm.Actors[i] = plainActor(a)
	}
	return pm
}
