package scaffold

import (
	"context"
	"fmt"
	"strings"

	"github.com/kingrea/park-me-cli/internal/exec"
	"github.com/kingrea/park-me-cli/internal/pipeline"
)

// Install runs the package manager in the app directory, streaming its output.
func (s *Service) Install(ctx context.Context, st *pipeline.State) error {
	argv := s.cfg.InstallCommand()
	cmdline := strings.Join(argv, " ")
	s.log.Info("%s (in %s)", cmdline, st.Layout.AppDir())

	result, err := s.runner.Run(ctx, argv[0], argv[1:], exec.RunOpts{
		Dir:    st.Layout.AppDir(),
		Env:    s.cfg.InstallEnv(),
		Stdout: s.stdout,
		Stderr: s.stderr,
	})
	if err != nil {
		return pipeline.Fail(pipeline.StepInstall, pipeline.KindProcess, "failed to run "+argv[0], err)
	}
	if result.ExitCode != 0 {
		return pipeline.Fail(pipeline.StepInstall, pipeline.KindProcess,
			fmt.Sprintf("%s exited with code %d", cmdline, result.ExitCode), nil)
	}
	return nil
}
