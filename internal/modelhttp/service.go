package modelhttp

import (
	"context"

	"github.com/gmto/dataflow/runtime"
)

// Service holds the business logic for the introspection endpoints,
// separated from Gin/HTTP concerns as in the teacher's metrics.Service.
type Service struct {
	snap Snapshotter
}

func NewService(snap Snapshotter) *Service {
	return &Service{snap: snap}
}

// Status returns the current model snapshot as a StatusResponse.
func (s *Service) Status(_ context.Context) (StatusResponse, error) {
	pm, err := s.snap.Snapshot()
	if err != nil {
		return StatusResponse{}, err
	}
	return StatusResponse{Model: pm.Name, Actors: pm.Actors}, nil
}

// Flowchart returns the current model snapshot rendered as Mermaid text.
func (s *Service) Flowchart(_ context.Context) (string, error) {
	pm, err := s.snap.Snapshot()
	if err != nil {
		return "", err
	}
	return runtime.RenderFlowchart(pm), nil
}
