package scaffold

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kingrea/park-me-cli/internal/pipeline"
)

func TestCollectInputFreshTarget(t *testing.T) {
	workDir := t.TempDir()
	prompter := &stubPrompter{name: "garage"}
	svc := newTestService(t, workDir, &stubRunner{}, prompter)
	st := &pipeline.State{}

	if err := svc.CollectInput(context.Background(), st); err != nil {
		t.Fatalf("CollectInput: %v", err)
	}
	if st.Layout.Root() != filepath.Join(workDir, "garage") {
		t.Fatalf("root = %q", st.Layout.Root())
	}
	if st.Decision != pipeline.DecisionFresh {
		t.Fatalf("decision = %v, want fresh", st.Decision)
	}
	if len(prompter.asked) != 1 || prompter.asked[0] != "name:park-me-app" {
		t.Fatalf("unexpected prompts: %v", prompter.asked)
	}
}

func TestCollectInputBlankUsesDefault(t *testing.T) {
	workDir := t.TempDir()
	svc := newTestService(t, workDir, &stubRunner{}, &stubPrompter{name: "   "})
	st := &pipeline.State{}
	if err := svc.CollectInput(context.Background(), st); err != nil {
		t.Fatalf("CollectInput: %v", err)
	}
	if st.ProjectName != "park-me-app" || st.Layout.Root() != filepath.Join(workDir, "park-me-app") {
		t.Fatalf("expected default name, got %q at %q", st.ProjectName, st.Layout.Root())
	}
}

func TestCollectInputExistingTarget(t *testing.T) {
	tests := []struct {
		name       string
		overwrite  bool
		confirmErr error
		want       pipeline.Decision
	}{
		{"accepted", true, nil, pipeline.DecisionOverwrite},
		{"declined", false, nil, pipeline.DecisionDeclined},
		{"cancelled", true, pipeline.ErrCancelled, pipeline.DecisionDeclined},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workDir := t.TempDir()
			existing := filepath.Join(workDir, "demo")
			if err := os.MkdirAll(existing, 0o755); err != nil {
				t.Fatal(err)
			}
			keep := filepath.Join(existing, "keep.txt")
			if err := os.WriteFile(keep, []byte("mine"), 0o644); err != nil {
				t.Fatal(err)
			}
			prompter := &stubPrompter{name: "demo", overwrite: tt.overwrite, confirmErr: tt.confirmErr}
			svc := newTestService(t, workDir, &stubRunner{}, prompter)
			st := &pipeline.State{}

			if err := svc.CollectInput(context.Background(), st); err != nil {
				t.Fatalf("CollectInput: %v", err)
			}
			if st.Decision != tt.want {
				t.Fatalf("decision = %v, want %v", st.Decision, tt.want)
			}
			if len(prompter.asked) != 2 || prompter.asked[1] != "overwrite:"+existing {
				t.Fatalf("expected overwrite prompt, got %v", prompter.asked)
			}
			data, err := os.ReadFile(keep)
			if err != nil || string(data) != "mine" {
				t.Fatalf("collecting input must not touch the target: %v %q", err, data)
			}
		})
	}
}

func TestCollectInputCancelledNameAborts(t *testing.T) {
	svc := newTestService(t, t.TempDir(), &stubRunner{}, &stubPrompter{nameErr: pipeline.ErrCancelled})
	err := svc.CollectInput(context.Background(), &pipeline.State{})
	if pipeline.KindOf(err) != pipeline.KindUserAbort {
		t.Fatalf("expected user abort, got %v", err)
	}
}

func TestCollectInputPromptFailure(t *testing.T) {
	svc := newTestService(t, t.TempDir(), &stubRunner{}, &stubPrompter{nameErr: errors.New("tty gone")})
	err := svc.CollectInput(context.Background(), &pipeline.State{})
	if !pipeline.IsFatal(err) {
		t.Fatalf("expected fatal error, got %v", err)
	}
}

func TestClearTargetRemovesTree(t *testing.T) {
	workDir := t.TempDir()
	st := testState(t, workDir)
	nested := filepath.Join(st.Layout.Root(), "app", "src")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "Main.java"), []byte("class Main {}"), 0o644); err != nil {
		t.Fatal(err)
	}
	svc := newTestService(t, workDir, &stubRunner{}, &stubPrompter{})
	if err := svc.ClearTarget(context.Background(), st); err != nil {
		t.Fatalf("ClearTarget: %v", err)
	}
	if _, err := os.Stat(st.Layout.Root()); !os.IsNotExist(err) {
		t.Fatalf("expected target removed, stat err = %v", err)
	}
}

func TestCollectInputAbsoluteNameStaysUnderWorkDir(t *testing.T) {
	workDir := t.TempDir()
	outside := t.TempDir()
	prompter := &stubPrompter{name: outside, overwrite: true}
	svc := newTestService(t, workDir, &stubRunner{}, prompter)
	st := &pipeline.State{}

	if err := svc.CollectInput(context.Background(), st); err != nil {
		t.Fatalf("CollectInput: %v", err)
	}
	if want := filepath.Join(workDir, outside); st.Layout.Root() != want {
		t.Fatalf("root = %q, want %q", st.Layout.Root(), want)
	}
	if st.Decision != pipeline.DecisionFresh || len(prompter.asked) != 1 {
		t.Fatalf("existing directory outside the work dir must not be offered for overwrite: %v", prompter.asked)
	}
	if err := svc.ClearTarget(context.Background(), st); err != nil {
		t.Fatalf("ClearTarget: %v", err)
	}
	if _, err := os.Stat(outside); err != nil {
		t.Fatalf("directory outside the work dir was touched: %v", err)
	}
}

func TestCollectInputRejectsParentName(t *testing.T) {
	svc := newTestService(t, t.TempDir(), &stubRunner{}, &stubPrompter{name: ".."})
	err := svc.CollectInput(context.Background(), &pipeline.State{})
	if pipeline.KindOf(err) != pipeline.KindIO {
		t.Fatalf("expected IO failure for a name outside the work dir, got %v", err)
	}
}
