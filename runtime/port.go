package runtime

import (
	"context"
	"fmt"
	"hash/fnv"
)

// inputHandle is the actor-side, type-erased view of one Input[U,T,C]. The
// actor's task loop only needs to wait for a payload and, once it has one,
// deliver it into the client without itself being generic.
type inputHandle interface {
	hash() uint64
	uidName() string
	// recv waits for the next payload. deliver performs the client-locked
	// Read call; it is nil when ok is false (end of stream).
	recv(ctx context.Context) (deliver func(), ok bool, err error)
}

// outputHandle is the actor-side, type-erased view of one Output[U,T,C].
type outputHandle interface {
	hash() uint64
	uidName() string
	linkCount() int
	linkHashes() []uint64
	// edges exposes each fan-out link's consumer actor and bootstrap flag,
	// enough for Check to build the graph without being generic itself.
	edges() []edgeInfo
	// emit invokes Write once and fans the result out to every link,
	// reporting whether this output has terminated.
	emit(ctx context.Context) (terminate bool, err error)
	sendBootstraps(ctx context.Context) error
	closeAll()
}

// edgeInfo is one fan-out link described for graph validation purposes.
type edgeInfo struct {
	consumer  *Actor
	bootstrap bool
	hash      uint64
}

func uidHash(u UID, producerRate int, producerIdentity string) uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%T|%d|%d|%s", u, u.PortNumber(), producerRate, producerIdentity)
	return h.Sum64()
}

// --- Output -----------------------------------------------------------

type outputLink[T any] struct {
	link      *link[T]
	bootstrap bool
	h         uint64
	consumer  *Actor
}

// Output owns a fan-out of links, one per connected consumer, all carrying
// the same UID U / payload T. Output.emit invokes the client's Write once
// per tick and shares the resulting payload across every link.
type Output[U UID, T any, C Writer[U, T]] struct {
	actor     *Actor
	actorName string
	uid       U
	rate      int
	client    *Client[C]

	defaultCapacity  int
	defaultUnbounded bool
	defaultBootstrap bool

	links []*outputLink[T]
}

// OutputOption configures an Output at construction time; it becomes the
// default for every subsequent IntoInput call on that Output.
type OutputOption func(*outputDefaults)

type outputDefaults struct {
	capacity  int
	unbounded bool
	bootstrap bool
}

// WithCapacity sets the per-link buffer size (default 1).
func WithCapacity(n int) OutputOption {
	return func(d *outputDefaults) { d.capacity = n }
}

// Unbounded opts every link of this output out of back-pressure. Documented
// correctness hazard (§5): a producer that never stops emitting into an
// unbounded link can grow memory without limit.
func Unbounded() OutputOption {
	return func(d *outputDefaults) { d.unbounded = true }
}

// Bootstrap marks every link of this output as a bootstrap edge by default.
func Bootstrap() OutputOption {
	return func(d *outputDefaults) { d.bootstrap = true }
}

// AddOutput declares a new output of actor a, producing UID U with payload
// T, backed by client. The client type C is inferred from the client
// argument and must implement Writer[U, T].
func AddOutput[U UID, T any, C Writer[U, T]](a *Actor, client *Client[C], opts ...OutputOption) *Output[U, T, C] {
	d := outputDefaults{capacity: defaultCapacity}
	for _, o := range opts {
		o(&d)
	}
	var uid U
	out := &Output[U, T, C]{
		actor:            a,
		actorName:        a.Name,
		uid:              uid,
		rate:             a.NO,
		client:           client,
		defaultCapacity:  d.capacity,
		defaultUnbounded: d.unbounded,
		defaultBootstrap: d.bootstrap,
	}
	a.outputs = append(a.outputs, out)
	return out
}

// IntoInputOption overrides one fan-out link's configuration relative to
// its Output's defaults.
type IntoInputOption func(*outputDefaults)

// WithLinkBootstrap marks just this one link as a bootstrap edge.
func WithLinkBootstrap(b bool) IntoInputOption {
	return func(d *outputDefaults) { d.bootstrap = b }
}

// WithLinkCapacity overrides just this one link's buffer size.
func WithLinkCapacity(n int) IntoInputOption {
	return func(d *outputDefaults) { d.capacity = n }
}

// IntoInput completes one fan-out link from out to in. Call it once per
// consumer to fan out (Multiplex is a thin wrapper over repeated calls).
//
// It is a free function, not a method on Output, because the consumer's
// client type Ci is independent of the producer's client type Cp: Go does
// not allow a method to introduce a type parameter beyond its receiver's,
// so connecting two independently-typed ports has to be a function generic
// over both.
func IntoInput[U UID, T any, Cp Writer[U, T], Ci Reader[U, T]](out *Output[U, T, Cp], in *Input[U, T, Ci], opts ...IntoInputOption) {
	d := outputDefaults{capacity: out.defaultCapacity, unbounded: out.defaultUnbounded, bootstrap: out.defaultBootstrap}
	for _, o := range opts {
		o(&d)
	}
	var l *link[T]
	if d.unbounded {
		l = newUnboundedLink[T]()
	} else {
		l = newLink[T](d.capacity)
	}
	h := uidHash(out.uid, out.rate, out.actorName)
	out.links = append(out.links, &outputLink[T]{link: l, bootstrap: d.bootstrap, h: h, consumer: in.actor})
	in.link = l
	in.h = h
}

// Multiplex fans out to n consumers at once, in order.
func Multiplex[U UID, T any, Cp Writer[U, T], Ci Reader[U, T]](out *Output[U, T, Cp], ins ...*Input[U, T, Ci]) {
	for _, in := range ins {
		IntoInput(out, in)
	}
}

func (out *Output[U, T, C]) hash() uint64    { return uidHash(out.uid, out.rate, out.actorName) }
func (out *Output[U, T, C]) uidName() string { return out.uid.ShortName() }
func (out *Output[U, T, C]) linkCount() int  { return len(out.links) }
func (out *Output[U, T, C]) linkHashes() []uint64 {
	hs := make([]uint64, len(out.links))
	for i, l := range out.links {
		hs[i] = l.h
	}
	return hs
}

func (out *Output[U, T, C]) edges() []edgeInfo {
	es := make([]edgeInfo, len(out.links))
	for i, l := range out.links {
		es[i] = edgeInfo{consumer: l.consumer, bootstrap: l.bootstrap, hash: l.h}
	}
	return es
}

func (out *Output[U, T, C]) emit(ctx context.Context) (bool, error) {
	out.client.Lock()
	d, more := (*out.client.Value()).Write(out.uid)
	out.client.Unlock()
	if !more {
		out.closeAll()
		return true, nil
	}
	for _, ol := range out.links {
		if err := ol.link.send(ctx, d.Clone()); err != nil {
			return false, newSendError(out.actorName, out.uid.ShortName(), err)
		}
	}
	return false, nil
}

func (out *Output[U, T, C]) sendBootstraps(ctx context.Context) error {
	for _, ol := range out.links {
		if !ol.bootstrap {
			continue
		}
		out.client.Lock()
		d, more := (*out.client.Value()).Write(out.uid)
		out.client.Unlock()
		if !more {
			d = DefaultData[T]()
		}
		if err := ol.link.send(ctx, d); err != nil {
			return newSendError(out.actorName, out.uid.ShortName(), err)
		}
	}
	return nil
}

func (out *Output[U, T, C]) closeAll() {
	for _, ol := range out.links {
		ol.link.close()
	}
}

// --- Input --------------------------------------------------------------

// Input owns one receiving end, completed by a prior call to
// Output.IntoInput, which assigns link and the matching hash.
type Input[U UID, T any, C Reader[U, T]] struct {
	actor     *Actor
	actorName string
	uid       U
	client    *Client[C]
	link      *link[T]
	h         uint64
}

// AddInput declares a new input of actor a, consuming UID U carrying
// payload T via client. The client type C is inferred and must implement
// Reader[U, T].
func AddInput[U UID, T any, C Reader[U, T]](a *Actor, client *Client[C]) *Input[U, T, C] {
	var uid U
	in := &Input[U, T, C]{actor: a, actorName: a.Name, uid: uid, client: client}
	a.inputs = append(a.inputs, in)
	return in
}

func (in *Input[U, T, C]) hash() uint64    { return in.h }
func (in *Input[U, T, C]) uidName() string { return in.uid.ShortName() }

func (in *Input[U, T, C]) recv(ctx context.Context) (func(), bool, error) {
	if in.link == nil {
		return nil, false, nil
	}
	d, ok, err := in.link.recv(ctx)
	if err != nil {
		return nil, false, newRecvError(in.actorName, in.uid.ShortName(), err)
	}
	if !ok {
		return nil, false, nil
	}
	deliver := func() {
		in.client.Lock()
		(*in.client.Value()).Read(in.uid, d)
		in.client.Unlock()
	}
	return deliver, true, nil
}
