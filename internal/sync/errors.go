package sync

import (
	"fmt"

	"github.com/enrolsync/arlo-catalog-sync/internal/catalog"
)

// Phase names the step of a collection run that failed
type Phase string

// Phases of a collection run
const (
	PhaseCheckpoint Phase = "checkpoint"
	PhaseFetch      Phase = "fetch"
	PhaseDecode     Phase = "decode"
	PhaseReconcile  Phase = "reconcile"
	PhaseCommit     Phase = "commit"
)

// Error is returned when a collection run aborts. Err is the typed cause, such as
// *arlo.ResponseError or *arlo.TransportError.
type Error struct {
	Platform   string
	Collection catalog.CollectionType
	Phase      Phase
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("sync %s %s: %s failed: %v", e.Platform, e.Collection, e.Phase, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
