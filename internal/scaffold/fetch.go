package scaffold

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kingrea/park-me-cli/internal/exec"
	"github.com/kingrea/park-me-cli/internal/pipeline"
)

// Fetch clones the configured branch of the application repository into the
// app directory. Only that branch is fetched, without history.
func (s *Service) Fetch(ctx context.Context, st *pipeline.State) error {
	appDir := st.Layout.AppDir()
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		return pipeline.Fail(pipeline.StepClone, pipeline.KindIO, "create "+appDir, err)
	}

	repo := s.cfg.Settings.Repository
	args := cloneArgs(repo.URL, repo.Branch, appDir)
	s.log.Info("git %s", strings.Join(args, " "))

	result, err := s.runner.Run(ctx, "git", args, exec.RunOpts{})
	if err != nil {
		return pipeline.Fail(pipeline.StepClone, pipeline.KindProcess, "failed to run git", err)
	}
	if result.ExitCode != 0 {
		msg := fmt.Sprintf("git clone %s (branch %s) exited with code %d", repo.URL, repo.Branch, result.ExitCode)
		if detail := strings.TrimSpace(result.Stderr); detail != "" {
			msg += ": " + detail
		}
		return pipeline.Fail(pipeline.StepClone, pipeline.KindProcess, msg, nil)
	}
	return nil
}

func cloneArgs(url, branch, dir string) []string {
	return []string{"clone", "--branch", branch, "--single-branch", "--depth", "1", url, dir}
}
