// Package modelhttp is the introspection HTTP surface for a running
// model: a read-only snapshot of its actor graph as JSON, and a Mermaid
// flowchart rendering, mirroring the shape of the teacher's
// internal/metrics package (Store/Service/Handler layering, Gin
// adaptation) applied to model diagnostics instead of GPU telemetry.
package modelhttp

import (
	"errors"
	"log/slog"

	"github.com/gmto/dataflow/runtime"
)

// Logger is the shared structured-logging type across this package.
type Logger = *slog.Logger

var ErrNoSnapshot = errors.New("no model snapshot available yet")

// Snapshotter exposes a point-in-time projection of whatever model a
// cmd/ binary is currently running, independent of its typestate.
type Snapshotter interface {
	Snapshot() (runtime.PlainModel, error)
}

// StatusResponse is the JSON body for GET /status.
type StatusResponse struct {
	Model  string               `json:"model"`
	Actors []runtime.PlainActor `json:"actors"`
}

// Authenticator defines the interface for authentication, matching the
// teacher's token-bearer scheme.
type Authenticator interface {
	Authenticate(token string) bool
}
