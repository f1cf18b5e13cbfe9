package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kingrea/park-me-cli/internal/exec"
	"github.com/kingrea/park-me-cli/internal/pipeline"
	"github.com/kingrea/park-me-cli/internal/workflow"
)

type directRunner struct{}

func (directRunner) RunStep(ctx context.Context, step pipeline.Step, fn func(context.Context) error) error {
	return fn(ctx)
}

func runPipeline(t *testing.T, workDir string, runner *stubRunner, prompter *stubPrompter) pipeline.Result {
	t.Helper()
	svc := newTestService(t, workDir, runner, prompter)
	p := pipeline.New(svc, directRunner{}, pipeline.Options{RuntimeName: "Java"})
	return p.Run(context.Background())
}

func TestRunProducesProjectLayout(t *testing.T) {
	workDir := t.TempDir()
	runner := &stubRunner{onRun: func(c call) {
		if c.name == "git" {
			dir := c.args[len(c.args)-1]
			os.WriteFile(filepath.Join(dir, "pom.xml"), []byte("<project/>"), 0o644)
		}
	}}
	res := runPipeline(t, workDir, runner, &stubPrompter{name: "lot"})

	if res.Err != nil || res.Phase() != workflow.PhaseDone {
		t.Fatalf("run = %s, %v", res.Phase(), res.Err)
	}
	root := filepath.Join(workDir, "lot")
	for _, rel := range []string{
		"app/pom.xml",
		"app/src/main/resources/config.properties",
		"data/users.json",
		"data/bookings.json",
		"data/transactions.json",
		"data/parkingSlots.json",
	} {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
			t.Fatalf("missing %s: %v", rel, err)
		}
	}
	var names []string
	for _, c := range runner.calls {
		names = append(names, c.name)
	}
	if strings.Join(names, ",") != "git,mvn,java" {
		t.Fatalf("commands = %v", names)
	}
}

func TestRunCloneFailureLeavesDataAndConfigUnwritten(t *testing.T) {
	workDir := t.TempDir()
	runner := &stubRunner{result: exec.CmdResult{ExitCode: 128, Stderr: "fatal: could not resolve host"}}
	res := runPipeline(t, workDir, runner, &stubPrompter{name: "lot"})

	if res.Phase() != workflow.PhaseFailed || res.ExitCode() == 0 {
		t.Fatalf("run = %s exit %d", res.Phase(), res.ExitCode())
	}
	root := filepath.Join(workDir, "lot")
	if _, err := os.Stat(filepath.Join(root, "data")); !os.IsNotExist(err) {
		t.Fatalf("data dir should not exist after a failed clone")
	}
	if _, err := os.Stat(filepath.Join(root, "app", "src", "main", "resources", "config.properties")); !os.IsNotExist(err) {
		t.Fatalf("config should not exist after a failed clone")
	}
	if len(runner.calls) != 1 {
		t.Fatalf("nothing may run after the clone fails: %d calls", len(runner.calls))
	}
}

func TestRunDeclinedOverwriteLeavesTargetUntouched(t *testing.T) {
	workDir := t.TempDir()
	root := filepath.Join(workDir, "lot")
	if err := os.MkdirAll(filepath.Join(root, "data"), 0o755); err != nil {
		t.Fatal(err)
	}
	marker := filepath.Join(root, "data", "users.json")
	if err := os.WriteFile(marker, []byte("original"), 0o600); err != nil {
		t.Fatal(err)
	}
	runner := &stubRunner{}
	res := runPipeline(t, workDir, runner, &stubPrompter{name: "lot", overwrite: false})

	if res.Phase() != workflow.PhaseAborted || res.ExitCode() != 0 {
		t.Fatalf("run = %s exit %d", res.Phase(), res.ExitCode())
	}
	data, err := os.ReadFile(marker)
	if err != nil || string(data) != "original" {
		t.Fatalf("target changed: %q %v", data, err)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("no command may run after a declined overwrite")
	}
}

func TestRunAcceptedOverwriteRemovesOldContent(t *testing.T) {
	workDir := t.TempDir()
	root := filepath.Join(workDir, "lot")
	stale := filepath.Join(root, "stale.txt")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	var staleAtClone bool
	runner := &stubRunner{onRun: func(c call) {
		if c.name == "git" {
			_, err := os.Stat(stale)
			staleAtClone = err == nil
		}
	}}
	res := runPipeline(t, workDir, runner, &stubPrompter{name: "lot", overwrite: true})

	if res.Err != nil {
		t.Fatalf("run failed: %v", res.Err)
	}
	if staleAtClone {
		t.Fatalf("old content must be removed before the clone")
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale file survived overwrite")
	}
}

func TestRunMissingRuntimeStillSucceeds(t *testing.T) {
	workDir := t.TempDir()
	runner := &stubRunner{}
	runner.onRun = func(c call) {
		if c.name == "java" {
			runner.result = exec.CmdResult{ExitCode: 127}
		}
	}
	res := runPipeline(t, workDir, runner, &stubPrompter{name: "lot"})
	if res.Err != nil || res.ExitCode() != 0 || res.Phase() != workflow.PhaseDone {
		t.Fatalf("run = %s exit %d err %v", res.Phase(), res.ExitCode(), res.Err)
	}
	if len(res.State.Warnings) != 1 || res.State.Warnings[0].Step != pipeline.StepRuntime {
		t.Fatalf("expected runtime warning, got %+v", res.State.Warnings)
	}
}
