// internal/workflow/phase.go
//
// Phases of a create run. A run moves strictly forward through these; the
// only branches are the overwrite decision at the start and Failed, which any
// step from the clone through the install can fall into.

package workflow

// Phase represents a stage in the create pipeline
type Phase int

const (
	PhaseStart Phase = iota
	PhaseInputCollected
	PhaseAborted
	PhaseOverwritten
	PhaseCloned
	PhaseDataProvisioned
	PhaseConfigRendered
	PhaseDependenciesInstalled
	PhasePrerequisiteChecked
	PhaseDone
	PhaseFailed
)

// String returns a human-readable name for the phase
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "Start"
	case PhaseInputCollected:
		return "Input Collected"
	case PhaseAborted:
		return "Aborted"
	case PhaseOverwritten:
		return "Overwritten"
	case PhaseCloned:
		return "Cloned"
	case PhaseDataProvisioned:
		return "Data Provisioned"
	case PhaseConfigRendered:
		return "Config Rendered"
	case PhaseDependenciesInstalled:
		return "Dependencies Installed"
	case PhasePrerequisiteChecked:
		return "Prerequisite Checked"
	case PhaseDone:
		return "Done"
	case PhaseFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// IsTerminal returns true if no further transition is possible
func (p Phase) IsTerminal() bool {
	return p == PhaseDone || p == PhaseAborted || p == PhaseFailed
}

// CanFail reports whether a step running from this phase may end in PhaseFailed.
// Input I/O, target removal, and the clone, provision, render, and install
// steps are fatal on error. The prerequisite check never is.
func (p Phase) CanFail() bool {
	switch p {
	case PhaseStart, PhaseInputCollected, PhaseOverwritten, PhaseCloned, PhaseDataProvisioned, PhaseConfigRendered:
		return true
	default:
		return false
	}
}

// CanTransition reports whether moving from p to next is a legal edge.
func (p Phase) CanTransition(next Phase) bool {
	if p.IsTerminal() {
		return false
	}
	if next == PhaseFailed {
		return p.CanFail()
	}
	switch p {
	case PhaseStart:
		// a prompt cancelled before any input aborts the run outright
		return next == PhaseInputCollected || next == PhaseAborted
	case PhaseInputCollected:
		return next == PhaseAborted || next == PhaseOverwritten || next == PhaseCloned
	case PhaseOverwritten:
		return next == PhaseCloned
	case PhaseCloned:
		return next == PhaseDataProvisioned
	case PhaseDataProvisioned:
		return next == PhaseConfigRendered
	case PhaseConfigRendered:
		return next == PhaseDependenciesInstalled
	case PhaseDependenciesInstalled:
		return next == PhasePrerequisiteChecked
	case PhasePrerequisiteChecked:
		return next == PhaseDone
	}
	return false
}
