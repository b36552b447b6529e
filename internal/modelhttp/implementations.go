package modelhttp

import (
	"sync/atomic"

	"github.com/gmto/dataflow/runtime"
)

// AtomicSnapshotter is a Snapshotter a model runner updates from any
// goroutine (Model.Run's per-actor tasks never touch it, only the owning
// cmd/ main loop does, typically right after Check and again after Wait).
type AtomicSnapshotter struct {
	current atomic.Pointer[runtime.PlainModel]
}

// NewAtomicSnapshotter creates a snapshotter with nothing published yet.
func NewAtomicSnapshotter() *AtomicSnapshotter {
	return &AtomicSnapshotter{}
}

// Publish replaces the current snapshot.
func (s *AtomicSnapshotter) Publish(pm runtime.PlainModel) {
	s.current.Store(&pm)
}

// Snapshot returns the most recently published snapshot.
func (s *AtomicSnapshotter) Snapshot() (runtime.PlainModel, error) {
	p := s.current.Load()
	if p == nil {
		return runtime.PlainModel{}, ErrNoSnapshot
	}
	return *p, nil
}

// TokenAuthenticator implements Authenticator with a single shared bearer
// token; an empty expected token disables auth entirely, matching the
// teacher's TokenAuthenticator in internal/metrics/implementations.go.
type TokenAuthenticator struct {
	expectedToken string
}

func NewTokenAuthenticator(token string) *TokenAuthenticator {
	return &TokenAuthenticator{expectedToken: token}
}

func (t *TokenAuthenticator) Authenticate(token string) bool {
	if t.expectedToken == "" {
		return true
	}
	return token == t.expectedToken
}
