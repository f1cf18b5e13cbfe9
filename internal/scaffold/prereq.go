package scaffold

import (
	"context"
	"fmt"
	"strings"

	"github.com/kingrea/park-me-cli/internal/exec"
	"github.com/kingrea/park-me-cli/internal/pipeline"
)

// CheckPrerequisite runs the runtime's version command. Any failure comes back
// as an advisory error pointing at the install docs.
func (s *Service) CheckPrerequisite(ctx context.Context, st *pipeline.State) error {
	rt := s.cfg.Settings.Runtime
	argv := s.cfg.RuntimeCommand()

	result, err := s.runner.Run(ctx, argv[0], argv[1:], exec.RunOpts{Env: s.cfg.RuntimeEnv()})
	if err != nil {
		return pipeline.Advise(pipeline.StepRuntime, fmt.Sprintf("%s is not installed", rt.Name), rt.DocsURL, err)
	}
	if result.ExitCode != 0 {
		return pipeline.Advise(pipeline.StepRuntime,
			fmt.Sprintf("%s version check exited with code %d", rt.Name, result.ExitCode), rt.DocsURL, nil)
	}

	// java -version prints to stderr
	st.RuntimeVersion = firstLine(result.Stderr)
	if st.RuntimeVersion == "" {
		st.RuntimeVersion = firstLine(result.Stdout)
	}
	s.log.Info("%s: %s", rt.Name, st.RuntimeVersion)
	return nil
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
