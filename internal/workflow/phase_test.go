package workflow

import "testing"

func TestHappyPathTransitions(t *testing.T) {
	path := []Phase{
		PhaseStart,
		PhaseInputCollected,
		PhaseOverwritten,
		PhaseCloned,
		PhaseDataProvisioned,
		PhaseConfigRendered,
		PhaseDependenciesInstalled,
		PhasePrerequisiteChecked,
		PhaseDone,
	}
	for i := 0; i+1 < len(path); i++ {
		if !path[i].CanTransition(path[i+1]) {
			t.Fatalf("%s -> %s should be allowed", path[i], path[i+1])
		}
	}
	if !PhaseInputCollected.CanTransition(PhaseCloned) {
		t.Fatalf("a fresh target should go straight to the clone")
	}
}

func TestFailedOnlyFromFatalSteps(t *testing.T) {
	for _, p := range []Phase{PhaseStart, PhaseInputCollected, PhaseOverwritten, PhaseCloned, PhaseDataProvisioned, PhaseConfigRendered} {
		if !p.CanTransition(PhaseFailed) {
			t.Fatalf("%s should be able to fail", p)
		}
	}
	for _, p := range []Phase{PhaseDependenciesInstalled, PhasePrerequisiteChecked, PhaseDone, PhaseAborted} {
		if p.CanTransition(PhaseFailed) {
			t.Fatalf("%s must not fail", p)
		}
	}
}

func TestTerminalPhases(t *testing.T) {
	for _, p := range []Phase{PhaseDone, PhaseAborted, PhaseFailed} {
		if !p.IsTerminal() {
			t.Fatalf("%s should be terminal", p)
		}
		if p.CanTransition(PhaseStart) {
			t.Fatalf("terminal %s should not transition", p)
		}
	}
	if !PhaseStart.CanTransition(PhaseAborted) {
		t.Fatalf("a cancelled name prompt should abort")
	}
	if PhaseCloned.CanTransition(PhaseConfigRendered) {
		t.Fatalf("steps must not be skipped")
	}
}
