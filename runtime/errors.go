package runtime

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies every error the runtime can return, from the §7
// taxonomy: port/rate shape errors and hash mismatches are caught by
// Check(); Send/Recv/Task errors surface from Wait().
type ErrorKind int

const (
	KindNoInputsPositiveRate ErrorKind = iota
	KindSomeInputsZeroRate
	KindNoOutputsPositiveRate
	KindSomeOutputsZeroRate
	KindDisconnectedOutput
	KindUnmatchedHash
	KindCycleWithoutBootstrap
	KindRateMismatch
	KindSend
	KindRecv
	KindTask
)

func (k ErrorKind) String() string {
	switch k {
	case KindNoInputsPositiveRate:
		return "no_inputs_positive_rate"
	case KindSomeInputsZeroRate:
		return "some_inputs_zero_rate"
	case KindNoOutputsPositiveRate:
		return "no_outputs_positive_rate"
	case KindSomeOutputsZeroRate:
		return "some_outputs_zero_rate"
	case KindDisconnectedOutput:
		return "disconnected_output"
	case KindUnmatchedHash:
		return "unmatched_hash"
	case KindCycleWithoutBootstrap:
		return "cycle_without_bootstrap"
	case KindRateMismatch:
		return "rate_mismatch"
	case KindSend:
		return "send"
	case KindRecv:
		return "recv"
	case KindTask:
		return "task"
	default:
		return "unknown"
	}
}

// CheckError is returned by Model.Check; it never carries a task index
// because no task has been spawned yet.
type CheckError struct {
	Kind   ErrorKind
	Actor  string
	UID    string
	Detail string
}

func (e *CheckError) Error() string {
	switch {
	case e.UID != "" && e.Detail != "":
		return fmt.Sprintf("%s: actor %q, uid %q: %s", e.Kind, e.Actor, e.UID, e.Detail)
	case e.UID != "":
		return fmt.Sprintf("%s: actor %q, uid %q", e.Kind, e.Actor, e.UID)
	case e.Detail != "":
		return fmt.Sprintf("%s: actor %q: %s", e.Kind, e.Actor, e.Detail)
	default:
		return fmt.Sprintf("%s: actor %q", e.Kind, e.Actor)
	}
}

func errNoInputsPositiveRate(actor string) error {
	return &CheckError{Kind: KindNoInputsPositiveRate, Actor: actor}
}

func errSomeInputsZeroRate(actor string) error {
	return &CheckError{Kind: KindSomeInputsZeroRate, Actor: actor}
}

func errNoOutputsPositiveRate(actor string) error {
	return &CheckError{Kind: KindNoOutputsPositiveRate, Actor: actor}
}

func errSomeOutputsZeroRate(actor string) error {
	return &CheckError{Kind: KindSomeOutputsZeroRate, Actor: actor}
}

func errDisconnectedOutput(actor, uid string) error {
	return &CheckError{Kind: KindDisconnectedOutput, Actor: actor, UID: uid}
}

func errUnmatchedHash(actor, uid string) error {
	return &CheckError{Kind: KindUnmatchedHash, Actor: actor, UID: uid}
}

func errCycleWithoutBootstrap(actorsInCycle []string) error {
	return &CheckError{
		Kind:   KindCycleWithoutBootstrap,
		Actor:  actorsInCycle[0],
		Detail: fmt.Sprintf("cycle: %v", actorsInCycle),
	}
}

func errRateMismatch(producerActor string, producerNO, consumerNI int, uid string) error {
	return &CheckError{
		Kind:   KindRateMismatch,
		Actor:  producerActor,
		UID:    uid,
		Detail: fmt.Sprintf("producer NO=%d, consumer NI=%d", producerNO, consumerNI),
	}
}

// RunError is returned by Model.Wait; it carries the index of the task that
// produced it, matching §6.4's "runtime errors carry the task index".
type RunError struct {
	Kind      ErrorKind
	TaskIndex int
	Actor     string
	UID       string
	Err       error
}

func (e *RunError) Error() string {
	if e.UID != "" {
		return fmt.Sprintf("task[%d] %s: uid %q: %v", e.TaskIndex, e.Actor, e.UID, e.Err)
	}
	return fmt.Sprintf("task[%d] %s: %v", e.TaskIndex, e.Actor, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

func newSendError(actor, uid string, err error) error {
	return &RunError{Kind: KindSend, Actor: actor, UID: uid, Err: err}
}

func newRecvError(actor, uid string, err error) error {
	return &RunError{Kind: KindRecv, Actor: actor, UID: uid, Err: err}
}

func newTaskError(taskIndex int, actor string, err error) error {
	return &RunError{Kind: KindTask, TaskIndex: taskIndex, Actor: actor, Err: errors.WithStack(err)}
}

// withTaskIndex stamps the task index onto a RunError produced deeper in
// the call stack (Send/Recv kinds, which do not know their task index at
// the point they're raised).
func withTaskIndex(err error, idx int) error {
	if re, ok := err.(*RunError); ok {
		re.TaskIndex = idx
		return re
	}
	return newTaskError(idx, "", err)
}
