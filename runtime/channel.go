package runtime

import (
	"context"
	"sync"
)

// link is one fan-out edge: a single-producer/single-consumer typed queue.
// The bounded case is a native Go channel, which gives FIFO ordering and
// blocking back-pressure for free. The unbounded case buffers without limit
// in a pump goroutine, trading back-pressure away on purpose (§5, the
// documented escape hatch and correctness hazard).
type link[T any] struct {
	out       chan Data[T]
	in        chan Data[T]
	unbounded bool
	closeOnce sync.Once
}

// defaultCapacity matches the spec's default per-link buffer of one payload.
const defaultCapacity = 1

func newLink[T any](capacity int) *link[T] {
	if capacity < 1 {
		capacity = defaultCapacity
	}
	return &link[T]{out: make(chan Data[T], capacity)}
}

func newUnboundedLink[T any]() *link[T] {
	l := &link[T]{out: make(chan Data[T]), in: make(chan Data[T]), unbounded: true}
	go l.pump()
	return l
}

// pump forwards from in to out without ever blocking the producer on a full
// buffer; the internal slice grows to hold whatever hasn't been consumed yet.
func (l *link[T]) pump() {
	var buf []Data[T]
	for {
		if len(buf) == 0 {
			v, ok := <-l.in
			if !ok {
				close(l.out)
				return
			}
			buf = append(buf, v)
			continue
		}
		select {
		case v, ok := <-l.in:
			if !ok {
				for _, b := range buf {
					l.out <- b
				}
				close(l.out)
				return
			}
			buf = append(buf, v)
		case l.out <- buf[0]:
			buf = buf[1:]
		}
	}
}

// send delivers d, blocking until the consumer has room (bounded) or handing
// off to the pump (unbounded). Returns ctx.Err() if ctx is cancelled first.
func (l *link[T]) send(ctx context.Context, d Data[T]) error {
	target := l.out
	if l.unbounded {
		target = l.in
	}
	select {
	case target <- d:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// recv waits for the next payload. ok is false once the link has been
// closed and fully drained — the normal end-of-stream signal.
func (l *link[T]) recv(ctx context.Context) (d Data[T], ok bool, err error) {
	select {
	case d, ok = <-l.out:
		return d, ok, nil
	case <-ctx.Done():
		return d, false, ctx.Err()
	}
}

// close is terminal: once called, no further sends are accepted and the
// consumer observes closure after any already-buffered payloads drain.
func (l *link[T]) close() {
	l.closeOnce.Do(func() {
		if l.unbounded {
			close(l.in)
		} else {
			close(l.out)
		}
	})
}
