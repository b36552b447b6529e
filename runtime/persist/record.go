// Package persist is the opt-in serialization of a model's checked plan
// and of terminal client state, grounded on the teacher's
// internal/storage/mongodb.go and internal/message/message.go. The core
// scheduler in runtime never imports this package; a model stays
// storage-agnostic unless a caller chooses to snapshot it.
package persist

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/gmto/dataflow/runtime"
)

// PlanRecord is a serializable snapshot of a ModelReady's actor graph,
// suitable for replaying or auditing which plan actually ran.
type PlanRecord struct {
	ID        string              `json:"id"`
	ModelName string              `json:"model_name"`
	Actors    []runtime.PlainActor `json:"actors"`
	Timestamp time.Time           `json:"timestamp"`
}

// NewPlanRecord stamps a fresh ID and timestamp around a PlainModel.
func NewPlanRecord(pm runtime.PlainModel) PlanRecord {
	return PlanRecord{
		ID:        uuid.NewString(),
		ModelName: pm.Name,
		Actors:    pm.Actors,
		Timestamp: time.Now().UTC(),
	}
}

// MarshalJSON formats Timestamp as RFC3339Nano, matching the teacher's
// message.Message wire format.
func (r PlanRecord) MarshalJSON() ([]byte, error) {
	type alias PlanRecord
	return json.Marshal(struct {
		alias
		Timestamp string `json:"timestamp"`
	}{
		alias:     alias(r),
		Timestamp: r.Timestamp.Format(time.RFC3339Nano),
	})
}

// UnmarshalJSON parses the RFC3339Nano timestamp back into time.Time.
func (r *PlanRecord) UnmarshalJSON(data []byte) error {
	type alias PlanRecord
	aux := struct {
		*alias
		Timestamp string `json:"timestamp"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Timestamp != "" {
		r.Timestamp, _ = time.Parse(time.RFC3339Nano, aux.Timestamp)
	}
	return nil
}

// StateRecord is a serializable snapshot of one actor's terminal client
// state, taken after a ModelCompleted transition for diagnostics.
type StateRecord struct {
	ID        string          `json:"id"`
	RunID     string          `json:"run_id"`
	Actor     string          `json:"actor"`
	State     json.RawMessage `json:"state"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewStateRecord marshals an arbitrary client value as the terminal state
// payload for actor within run runID.
func NewStateRecord(runID, actor string, clientState interface{}) (StateRecord, error) {
	raw, err := json.Marshal(clientState)
	if err != nil {
		return StateRecord{}, err
	}
	return StateRecord{
		ID:        uuid.NewString(),
		RunID:     runID,
		Actor:     actor,
		State:     raw,
		Timestamp: time.Now().UTC(),
	}, nil
}
