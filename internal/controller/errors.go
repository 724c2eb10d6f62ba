package controller

import (
	"errors"
	"fmt"

	"github.com/dyluth/drafter/pkg/workspace"
)

// GenerationError is the single user-facing failure for a phase generation.
// The external collaborator's cause is preserved for logs but the message
// always names the phase that failed.
type GenerationError struct {
	Phase workspace.Phase
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("Failed to generate %s: %v", e.Phase.Label(), e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// RefineError is the user-facing failure for a section refinement. The prior
// artifact content is left untouched when this is returned.
type RefineError struct {
	Section string
	Cause   error
}

func (e *RefineError) Error() string {
	return fmt.Sprintf("Refining %s failed.", e.Section)
}

func (e *RefineError) Unwrap() error {
	return e.Cause
}

// PhaseLockedError indicates a navigation target whose gating artifact is
// not yet present. Raised at the command boundary; the phase graph itself
// does not enforce unlocking.
type PhaseLockedError struct {
	Phase workspace.Phase
}

func (e *PhaseLockedError) Error() string {
	return fmt.Sprintf("phase %s is locked: its upstream artifact has not been produced yet", e.Phase.Label())
}

// ErrNoPlan indicates plan finalization was requested before any plan exists.
var ErrNoPlan = errors.New("no plan to finalize")

// ErrBoardExists indicates the plan already produced a task board. Deriving
// again would orphan the board's progress, so it requires the explicit
// regenerate action.
var ErrBoardExists = errors.New("plan already finalized: regenerating the board is a separate, explicit action")
